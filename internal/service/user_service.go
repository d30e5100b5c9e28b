package service

import (
	"roadmap_learner_backend/internal/model"
	"roadmap_learner_backend/internal/repository"
	"roadmap_learner_backend/internal/util"

	"golang.org/x/crypto/bcrypt"
)

type UserService struct {
	repo   *repository.UserRepository
	access *AccessService
}

func NewUserService(repo *repository.UserRepository, access *AccessService) *UserService {
	return &UserService{repo: repo, access: access}
}

func (s *UserService) GetAll() ([]model.User, error) {
	return s.repo.GetAll()
}

func (s *UserService) GetByFilters(caller *model.User, filters model.UserFilters) ([]model.User, error) {
	accessedFilters, err := s.access.FilterUsersForUser(caller, filters)
	if err != nil {
		return nil, err
	}
	return s.repo.GetByFilters(accessedFilters)
}

func (s *UserService) GetByID(caller *model.User, userID string) (*model.User, error) {
	user, err := s.repo.FindByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, util.ErrNotFound
	}

	if err := s.access.EnsureCanViewUser(caller, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Update 更新用户资料；密码字段会先做哈希
func (s *UserService) Update(caller *model.User, userID string, updates map[string]interface{}) (*model.User, error) {
	if _, err := s.GetByID(caller, userID); err != nil {
		return nil, err
	}

	// is_superuser / is_active 只有超级用户能改
	if !caller.IsSuperuser {
		delete(updates, "is_superuser")
		delete(updates, "is_active")
	}

	if password, ok := updates["password"].(string); ok {
		hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		updates["password"] = string(hashed)
	}

	if len(updates) == 0 {
		return s.GetByID(caller, userID)
	}

	updated, err := s.repo.Update(userID, updates)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, util.ErrNotFound
	}
	return updated, nil
}

func (s *UserService) Delete(caller *model.User, userID string) error {
	if _, err := s.GetByID(caller, userID); err != nil {
		return err
	}

	ok, err := s.repo.Delete(userID)
	if err != nil {
		return err
	}
	if !ok {
		return util.ErrOperationFailed
	}
	return nil
}
