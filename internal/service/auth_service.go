package service

import (
	"roadmap_learner_backend/internal/config"
	"roadmap_learner_backend/internal/model"
	"roadmap_learner_backend/internal/repository"
	"roadmap_learner_backend/internal/util"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

type AuthService struct {
	UserRepo *repository.UserRepository
	Cfg      *config.Config
}

func NewAuthService(userRepo *repository.UserRepository, cfg *config.Config) *AuthService {
	return &AuthService{
		UserRepo: userRepo,
		Cfg:      cfg,
	}
}

func (s *AuthService) Register(email, password string) (*model.User, error) {
	existing, err := s.UserRepo.FindByEmail(email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, util.ErrEmailRegistered
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Email:    email,
		Password: string(hashedPassword),
		IsActive: true,
	}
	if err := s.UserRepo.Create(user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *AuthService) Login(email, password string) (string, error) {
	user, err := s.UserRepo.FindByEmail(email)
	if err != nil {
		return "", err
	}
	if user == nil {
		return "", util.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", util.ErrInvalidCredentials
	}

	if !user.IsActive {
		return "", util.ErrUserDisabled
	}

	return util.GenerateJWT(user, s.Cfg.JWT.Secret, s.Cfg.JWT.ExpireTime)
}

// CurrentUser 从请求上下文的 claims 解析出完整的用户记录
func (s *AuthService) CurrentUser(c *gin.Context) (*model.User, error) {
	claims := util.GetUserFromContext(c)
	if claims == nil {
		return nil, util.ErrUnauthorized
	}

	user, err := s.UserRepo.FindByID(claims.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil || !user.IsActive {
		return nil, util.ErrUnauthorized
	}
	return user, nil
}
