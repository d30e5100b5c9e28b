package controller

import (
	"roadmap_learner_backend/internal/service"
	"roadmap_learner_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// AdminController 聚合只有超级用户能访问的全量列表接口
type AdminController struct {
	UserService    *service.UserService
	RoadmapService *service.RoadmapService
	BlockService   *service.BlockService
	CardService    *service.CardService
	SessionService *service.SessionService
}

func NewAdminController(
	userService *service.UserService,
	roadmapService *service.RoadmapService,
	blockService *service.BlockService,
	cardService *service.CardService,
	sessionService *service.SessionService,
) *AdminController {
	return &AdminController{
		UserService:    userService,
		RoadmapService: roadmapService,
		BlockService:   blockService,
		CardService:    cardService,
		SessionService: sessionService,
	}
}

// ListUsers 全量用户列表
// @Summary 全量用户列表
// @Tags 管理
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response
// @Failure 403 {object} util.Response
// @Router /api/admin/users [get]
func (ctrl *AdminController) ListUsers(c *gin.Context) {
	users, err := ctrl.UserService.GetAll()
	if err != nil {
		util.LogInternalError(c, err)
		return
	}
	util.Success(c, users)
}

// ListRoadmaps 全量 roadmap 列表
// @Summary 全量 roadmap 列表
// @Tags 管理
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response
// @Failure 403 {object} util.Response
// @Router /api/admin/roadmaps [get]
func (ctrl *AdminController) ListRoadmaps(c *gin.Context) {
	roadmaps, err := ctrl.RoadmapService.GetAll()
	if err != nil {
		util.LogInternalError(c, err)
		return
	}
	util.Success(c, roadmaps)
}

// ListBlocks 全量 block 列表
// @Summary 全量 block 列表
// @Tags 管理
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response
// @Failure 403 {object} util.Response
// @Router /api/admin/blocks [get]
func (ctrl *AdminController) ListBlocks(c *gin.Context) {
	blocks, err := ctrl.BlockService.GetAll()
	if err != nil {
		util.LogInternalError(c, err)
		return
	}
	util.Success(c, blocks)
}

// ListCards 全量卡片列表
// @Summary 全量卡片列表
// @Tags 管理
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response
// @Failure 403 {object} util.Response
// @Router /api/admin/cards [get]
func (ctrl *AdminController) ListCards(c *gin.Context) {
	cards, err := ctrl.CardService.GetAll()
	if err != nil {
		util.LogInternalError(c, err)
		return
	}
	util.Success(c, cards)
}

// ListSessions 全量会话列表
// @Summary 全量会话列表
// @Tags 管理
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response
// @Failure 403 {object} util.Response
// @Router /api/admin/sessions [get]
func (ctrl *AdminController) ListSessions(c *gin.Context) {
	sessions, err := ctrl.SessionService.GetAll()
	if err != nil {
		util.LogInternalError(c, err)
		return
	}
	util.Success(c, sessions)
}
