package controller

import (
	"roadmap_learner_backend/internal/model"
	"roadmap_learner_backend/internal/service"
	"roadmap_learner_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type BlockController struct {
	BlockService *service.BlockService
	AuthService  *service.AuthService
}

func NewBlockController(blockService *service.BlockService, authService *service.AuthService) *BlockController {
	return &BlockController{
		BlockService: blockService,
		AuthService:  authService,
	}
}

type createBlockRequest struct {
	Title       string  `json:"title" binding:"required,max=30"`
	Description string  `json:"description" binding:"max=100"`
	OrderIndex  float64 `json:"order_index"`
}

// ListByRoadmap 查询某个 roadmap 下的 block，按 order_index 升序
// @Summary block 列表
// @Tags 学习单元
// @Produce json
// @Security BearerAuth
// @Param roadmapId path string true "roadmap ID"
// @Param title query string false "按标题过滤"
// @Param status query string false "按状态过滤"
// @Success 200 {object} util.Response
// @Failure 403 {object} util.Response
// @Router /api/roadmaps/{roadmapId}/blocks [get]
func (ctrl *BlockController) ListByRoadmap(c *gin.Context) {
	caller, err := ctrl.AuthService.CurrentUser(c)
	if err != nil {
		util.ServiceError(c, err)
		return
	}

	roadmapID := c.Param("roadmapId")
	filters := model.BlockFilters{RoadmapID: &roadmapID}
	if title := c.Query("title"); title != "" {
		filters.Title = &title
	}
	if status := c.Query("status"); status != "" {
		s := model.BlockStatus(status)
		filters.Status = &s
	}

	blocks, err := ctrl.BlockService.GetByFilters(caller, filters)
	if err != nil {
		util.ServiceError(c, err)
		return
	}

	util.Success(c, blocks)
}

// Get 查询单个 block
// @Summary block 详情
// @Tags 学习单元
// @Produce json
// @Security BearerAuth
// @Param blockId path string true "block ID"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/blocks/{blockId} [get]
func (ctrl *BlockController) Get(c *gin.Context) {
	caller, err := ctrl.AuthService.CurrentUser(c)
	if err != nil {
		util.ServiceError(c, err)
		return
	}

	block, err := ctrl.BlockService.GetByID(caller, c.Param("blockId"))
	if err != nil {
		util.ServiceError(c, err)
		return
	}

	util.Success(c, block)
}

// Create 在 roadmap 下创建 block
// @Summary 创建 block
// @Tags 学习单元
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param roadmapId path string true "roadmap ID"
// @Param request body createBlockRequest true "block 信息"
// @Success 201 {object} util.Response
// @Failure 403 {object} util.Response
// @Router /api/roadmaps/{roadmapId}/blocks [post]
func (ctrl *BlockController) Create(c *gin.Context) {
	caller, err := ctrl.AuthService.CurrentUser(c)
	if err != nil {
		util.ServiceError(c, err)
		return
	}

	var req createBlockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.BadRequest(c, err.Error())
		return
	}

	block, err := ctrl.BlockService.Create(caller, c.Param("roadmapId"), req.Title, req.Description, req.OrderIndex)
	if err != nil {
		util.ServiceError(c, err)
		return
	}

	util.Created(c, block)
}

// Update 部分更新 block
// @Summary 更新 block
// @Tags 学习单元
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param blockId path string true "block ID"
// @Param request body map[string]interface{} true "待更新字段"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/blocks/{blockId} [patch]
func (ctrl *BlockController) Update(c *gin.Context) {
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
	sanitizeUpdates(updates, "title", "description", "status", "order_index")

	block, err := ctrl.BlockService.Update(caller, c.Param("blockId"), updates)
	if err != nil {
		util.ServiceError(c, err)
		return
	}

	util.Success(c, block)
}

// Delete 删除 block
// @Summary 删除 block
// @Tags 学习单元
// @Security BearerAuth
// @Param blockId path string true "block ID"
// @Success 204
// @Failure 404 {object} util.Response
// @Router /api/blocks/{blockId} [delete]
func (ctrl *BlockController) Delete(c *gin.Context) {
	caller, err := ctrl.AuthService.CurrentUser(c)
	if err != nil {
		util.ServiceError(c, err)
		return
	}

	if err := ctrl.BlockService.Delete(caller, c.Param("blockId")); err != nil {
		util.ServiceError(c, err)
		return
	}

	util.NoContent(c)
}
