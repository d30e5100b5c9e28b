package controller

import (
	"roadmap_learner_backend/internal/model"
	"roadmap_learner_backend/internal/service"
	"roadmap_learner_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type RoadmapController struct {
	RoadmapService *service.RoadmapService
	AuthService    *service.AuthService
}

func NewRoadmapController(roadmapService *service.RoadmapService, authService *service.AuthService) *RoadmapController {
	return &RoadmapController{
		RoadmapService: roadmapService,
		AuthService:    authService,
	}
}

type createRoadmapRequest struct {
	Title       string `json:"title" binding:"required,max=30"`
	Description string `json:"description" binding:"max=100"`
}

// List 查询当前用户可见的 roadmap 列表
// @Summary roadmap 列表
// @Tags 学习路线
// @Produce json
// @Security BearerAuth
// @Param title query string false "按标题过滤"
// @Param status query string false "按状态过滤"
// @Success 200 {object} util.Response
// @Router /api/roadmaps [get]
func (ctrl *RoadmapController) List(c *gin.Context) {
	caller, err := ctrl.AuthService.CurrentUser(c)
	if err != nil {
		util.ServiceError(c, err)
		return
	}

	filters := model.RoadmapFilters{}
	if title := c.Query("title"); title != "" {
		filters.Title = &title
	}
	if status := c.Query("status"); status != "" {
		s := model.RoadmapStatus(status)
		filters.Status = &s
	}
	if userID := c.Query("user_id"); userID != "" {
		filters.UserID = &userID
	}

	roadmaps, err := ctrl.RoadmapService.GetByFilters(caller, filters)
	if err != nil {
		util.ServiceError(c, err)
		return
	}

	util.Success(c, roadmaps)
}

// Get 查询单个 roadmap
// @Summary roadmap 详情
// @Tags 学习路线
// @Produce json
// @Security BearerAuth
// @Param roadmapId path string true "roadmap ID"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/roadmaps/{roadmapId} [get]
func (ctrl *RoadmapController) Get(c *gin.Context) {
	caller, err := ctrl.AuthService.CurrentUser(c)
	if err != nil {
		util.ServiceError(c, err)
		return
	}

	roadmap, err := ctrl.RoadmapService.GetByID(caller, c.Param("roadmapId"))
	if err != nil {
		util.ServiceError(c, err)
		return
	}

	util.Success(c, roadmap)
}

// Create 创建 roadmap
// @Summary 创建 roadmap
// @Tags 学习路线
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body createRoadmapRequest true "roadmap 信息"
// @Success 201 {object} util.Response
// @Router /api/roadmaps [post]
func (ctrl *RoadmapController) Create(c *gin.Context) {
	caller, err := ctrl.AuthService.CurrentUser(c)
	if err != nil {
		util.ServiceError(c, err)
		return
	}

	var req createRoadmapRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.BadRequest(c, err.Error())
		return
	}

	roadmap, err := ctrl.RoadmapService.Create(caller, req.Title, req.Description)
	if err != nil {
		util.ServiceError(c, err)
		return
	}

	util.Created(c, roadmap)
}

// Update 部分更新 roadmap
// @Summary 更新 roadmap
// @Tags 学习路线
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param roadmapId path string true "roadmap ID"
// @Param request body map[string]interface{} true "待更新字段"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/roadmaps/{roadmapId} [patch]
func (ctrl *RoadmapController) Update(c *gin.Context) {
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
	sanitizeUpdates(updates, "title", "description", "status")

	roadmap, err := ctrl.RoadmapService.Update(caller, c.Param("roadmapId"), updates)
	if err != nil {
		util.ServiceError(c, err)
		return
	}

	util.Success(c, roadmap)
}

// Delete 删除 roadmap
// @Summary 删除 roadmap
// @Tags 学习路线
// @Security BearerAuth
// @Param roadmapId path string true "roadmap ID"
// @Success 204
// @Failure 404 {object} util.Response
// @Router /api/roadmaps/{roadmapId} [delete]
func (ctrl *RoadmapController) Delete(c *gin.Context) {
	caller, err := ctrl.AuthService.CurrentUser(c)
	if err != nil {
		util.ServiceError(c, err)
		return
	}

	if err := ctrl.RoadmapService.Delete(caller, c.Param("roadmapId")); err != nil {
		util.ServiceError(c, err)
		return
	}

	util.NoContent(c)
}

// sanitizeUpdates 只保留白名单里的字段，防止通过 PATCH 改写归属列
func sanitizeUpdates(updates map[string]interface{}, allowed ...string) {
	allowedSet := make(map[string]struct{}, len(allowed))
	for _, key := range allowed {
		allowedSet[key] = struct{}{}
	}
	for key := range updates {
		if _, ok := allowedSet[key]; !ok {
			delete(updates, key)
		}
	}
}
