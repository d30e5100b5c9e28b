package controller

import (
	"roadmap_learner_backend/internal/model"
	"roadmap_learner_backend/internal/service"
	"roadmap_learner_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type CardController struct {
	CardService *service.CardService
	AuthService *service.AuthService
}

func NewCardController(cardService *service.CardService, authService *service.AuthService) *CardController {
	return &CardController{
		CardService: cardService,
		AuthService: authService,
	}
}

type createCardRequest struct {
	Term       string `json:"term" binding:"required,max=100"`
	Definition string `json:"definition" binding:"required"`
	Example    string `json:"example"`
	Comment    string `json:"comment"`
}

// ListByBlock 查询某个 block 下的卡片
// @Summary 卡片列表
// @Tags 卡片
// @Produce json
// @Security BearerAuth
// @Param blockId path string true "block ID"
// @Param term query string false "按词条过滤"
// @Param status query string false "按学习状态过滤"
// @Success 200 {object} util.Response
// @Failure 403 {object} util.Response
// @Router /api/blocks/{blockId}/cards [get]
func (ctrl *CardController) ListByBlock(c *gin.Context) {
	caller, err := ctrl.AuthService.CurrentUser(c)
	if err != nil {
		util.ServiceError(c, err)
		return
	}

	blockID := c.Param("blockId")
	filters := model.CardFilters{BlockID: &blockID}
	if term := c.Query("term"); term != "" {
		filters.Term = &term
	}
	if status := c.Query("status"); status != "" {
		s := model.CardStatus(status)
		filters.Status = &s
	}

	cards, err := ctrl.CardService.GetByFilters(caller, filters)
	if err != nil {
		util.ServiceError(c, err)
		return
	}

	util.Success(c, cards)
}

// Get 查询单张卡片
// @Summary 卡片详情
// @Tags 卡片
// @Produce json
// @Security BearerAuth
// @Param cardId path string true "card ID"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/cards/{cardId} [get]
func (ctrl *CardController) Get(c *gin.Context) {
	caller, err := ctrl.AuthService.CurrentUser(c)
	if err != nil {
		util.ServiceError(c, err)
		return
	}

	card, err := ctrl.CardService.GetByID(caller, c.Param("cardId"))
	if err != nil {
		util.ServiceError(c, err)
		return
	}

	util.Success(c, card)
}

// Create 在 block 下创建卡片，初始状态为 unknown
// @Summary 创建卡片
// @Tags 卡片
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param blockId path string true "block ID"
// @Param request body createCardRequest true "卡片信息"
// @Success 201 {object} util.Response
// @Failure 403 {object} util.Response
// @Router /api/blocks/{blockId}/cards [post]
func (ctrl *CardController) Create(c *gin.Context) {
	caller, err := ctrl.AuthService.CurrentUser(c)
	if err != nil {
		util.ServiceError(c, err)
		return
	}

	var req createCardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.BadRequest(c, err.Error())
		return
	}

	card, err := ctrl.CardService.Create(caller, c.Param("blockId"), req.Term, req.Definition, req.Example, req.Comment)
	if err != nil {
		util.ServiceError(c, err)
		return
	}

	util.Created(c, card)
}

// Update 部分更新卡片
// @Summary 更新卡片
// @Tags 卡片
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param cardId path string true "card ID"
// @Param request body map[string]interface{} true "待更新字段"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/cards/{cardId} [patch]
func (ctrl *CardController) Update(c *gin.Context) {
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
	sanitizeUpdates(updates, "term", "definition", "example", "comment", "status")

	card, err := ctrl.CardService.Update(caller, c.Param("cardId"), updates)
	if err != nil {
		util.ServiceError(c, err)
		return
	}

	util.Success(c, card)
}

// Delete 删除卡片
// @Summary 删除卡片
// @Tags 卡片
// @Security BearerAuth
// @Param cardId path string true "card ID"
// @Success 204
// @Failure 404 {object} util.Response
// @Router /api/cards/{cardId} [delete]
func (ctrl *CardController) Delete(c *gin.Context) {
	caller, err := ctrl.AuthService.CurrentUser(c)
	if err != nil {
		util.ServiceError(c, err)
		return
	}

	if err := ctrl.CardService.Delete(caller, c.Param("cardId")); err != nil {
		util.ServiceError(c, err)
		return
	}

	util.NoContent(c)
}
