package controller

import (
	"roadmap_learner_backend/internal/model"
	"roadmap_learner_backend/internal/service"
	"roadmap_learner_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type UserController struct {
	UserService *service.UserService
	AuthService *service.AuthService
}

func NewUserController(userService *service.UserService, authService *service.AuthService) *UserController {
	return &UserController{
		UserService: userService,
		AuthService: authService,
	}
}

// List 查询用户列表；非超级用户只会看到自己
// @Summary 用户列表
// @Tags 用户
// @Produce json
// @Security BearerAuth
// @Param email query string false "按邮箱过滤"
// @Success 200 {object} util.Response
// @Router /api/users [get]
func (ctrl *UserController) List(c *gin.Context) {
	caller, err := ctrl.AuthService.CurrentUser(c)
	if err != nil {
		util.ServiceError(c, err)
		return
	}

	filters := model.UserFilters{}
	if email := c.Query("email"); email != "" {
		filters.Email = &email
	}

	users, err := ctrl.UserService.GetByFilters(caller, filters)
	if err != nil {
		util.ServiceError(c, err)
		return
	}

	util.Success(c, users)
}

// Get 查询单个用户
// @Summary 用户详情
// @Tags 用户
// @Produce json
// @Security BearerAuth
// @Param userId path string true "user ID"
// @Success 200 {object} util.Response
// @Failure 403 {object} util.Response
// @Router /api/users/{userId} [get]
func (ctrl *UserController) Get(c *gin.Context) {
	caller, err := ctrl.AuthService.CurrentUser(c)
	if err != nil {
		util.ServiceError(c, err)
		return
	}

	user, err := ctrl.UserService.GetByID(caller, c.Param("userId"))
	if err != nil {
		util.ServiceError(c, err)
		return
	}

	util.Success(c, user)
}

// Update 更新用户资料；is_superuser / is_active 仅超级用户可改
// @Summary 更新用户
// @Tags 用户
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param userId path string true "user ID"
// @Param request body map[string]interface{} true "待更新字段"
// @Success 200 {object} util.Response
// @Failure 403 {object} util.Response
// @Router /api/users/{userId} [patch]
func (ctrl *UserController) Update(c *gin.Context) {
	caller, err := ctrl.AuthService.CurrentUser(c)
	if err != nil {
		util.ServiceError(c, err)
		return
	}

	var updates map[string]interface{}
	if err := c.ShouldBindJSON(&updates); err != nil {
		util.BadRequest(c, err.Error())
		return
	}
	sanitizeUpdates(updates, "email", "password", "is_superuser", "is_active")

	user, err := ctrl.UserService.Update(caller, c.Param("userId"), updates)
	if err != nil {
		util.ServiceError(c, err)
		return
	}

	util.Success(c, user)
}

// Delete 删除用户
// @Summary 删除用户
// @Tags 用户
// @Security BearerAuth
// @Param userId path string true "user ID"
// @Success 204
// @Failure 403 {object} util.Response
// @Router /api/users/{userId} [delete]
func (ctrl *UserController) Delete(c *gin.Context) {
	caller, err := ctrl.AuthService.CurrentUser(c)
	if err != nil {
		util.ServiceError(c, err)
		return
	}

	if err := ctrl.UserService.Delete(caller, c.Param("userId")); err != nil {
		util.ServiceError(c, err)
		return
	}

	util.NoContent(c)
}
