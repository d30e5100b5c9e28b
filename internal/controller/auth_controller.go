package controller

import (
	"roadmap_learner_backend/internal/service"
	"roadmap_learner_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AuthController struct {
	AuthService *service.AuthService
}

func NewAuthController(authService *service.AuthService) *AuthController {
	return &AuthController{AuthService: authService}
}

type registerRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Register 用户注册
// @Summary 用户注册
// @Tags 认证
// @Accept json
// @Produce json
// @Param request body registerRequest true "注册信息"
// @Success 201 {object} util.Response
// @Failure 400 {object} util.Response
// @Router /api/register [post]
func (ctrl *AuthController) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.BadRequest(c, err.Error())
		return
	}

	user, err := ctrl.AuthService.Register(req.Email, req.Password)
	if err != nil {
		if err == util.ErrEmailRegistered {
			util.BadRequest(c, err.Error())
			return
		}
		util.LogInternalError(c, err)
		return
	}

	util.Created(c, user)
}

// Login 用户登录，返回 JWT
// @Summary 用户登录
// @Tags 认证
// @Accept json
// @Produce json
// @Param request body loginRequest true "登录信息"
// @Success 200 {object} util.Response
// @Failure 401 {object} util.Response
// @Router /api/login [post]
func (ctrl *AuthController) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.BadRequest(c, err.Error())
		return
	}

	token, err := ctrl.AuthService.Login(req.Email, req.Password)
	if err != nil {
		switch err {
		case util.ErrInvalidCredentials:
			util.Error(c, 401, err.Error())
		case util.ErrUserDisabled:
			util.Forbidden(c)
		default:
			util.LogInternalError(c, err)
		}
		return
	}

	util.Success(c, gin.H{"token": token})
}

// GetProfile 获取当前登录用户信息
// @Summary 获取当前用户
// @Tags 认证
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response
// @Failure 401 {object} util.Response
// @Router /api/profile [get]
func (ctrl *AuthController) GetProfile(c *gin.Context) {
	user, err := ctrl.AuthService.CurrentUser(c)
	if err != nil {
		util.ServiceError(c, err)
		return
	}

	util.Success(c, user)
}
