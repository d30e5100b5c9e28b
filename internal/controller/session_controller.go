package controller

import (
	"roadmap_learner_backend/internal/model"
	"roadmap_learner_backend/internal/service"
	"roadmap_learner_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type SessionController struct {
	SessionService *service.SessionService
	CardService    *service.CardService
	AuthService    *service.AuthService
}

func NewSessionController(sessionService *service.SessionService, cardService *service.CardService, authService *service.AuthService) *SessionController {
	return &SessionController{
		SessionService: sessionService,
		CardService:    cardService,
		AuthService:    authService,
	}
}

type createSessionRequest struct {
	RoadmapID string  `json:"roadmap_id" binding:"required"`
	BlockID   *string `json:"block_id"`
	Mode      string  `json:"mode" binding:"required,oneof=review exam"`
	Mix       bool    `json:"mix"`
}

type submitAnswerRequest struct {
	CardID string `json:"card_id" binding:"required"`
	Answer string `json:"answer" binding:"required,oneof=known unknown review"`
}

// List 查询当前用户的会话列表
// @Summary 会话列表
// @Tags 学习会话
// @Produce json
// @Security BearerAuth
// @Param roadmap_id query string false "按 roadmap 过滤"
// @Param mode query string false "按模式过滤"
// @Param status query string false "按状态过滤"
// @Success 200 {object} util.Response
// @Router /api/sessions [get]
func (ctrl *SessionController) List(c *gin.Context) {
	caller, err := ctrl.AuthService.CurrentUser(c)
	if err != nil {
		util.ServiceError(c, err)
		return
	}

	filters := model.SessionFilters{}
	if roadmapID := c.Query("roadmap_id"); roadmapID != "" {
		filters.RoadmapID = &roadmapID
	}
	if blockID := c.Query("block_id"); blockID != "" {
		filters.BlockID = &blockID
	}
	if mode := c.Query("mode"); mode != "" {
		m := model.SessionMode(mode)
		filters.Mode = &m
	}
	if status := c.Query("status"); status != "" {
		s := model.SessionStatus(status)
		filters.Status = &s
	}

	sessions, err := ctrl.SessionService.GetByFilters(caller, filters)
	if err != nil {
		util.ServiceError(c, err)
		return
	}

	util.Success(c, sessions)
}

// Get 查询单个会话
// @Summary 会话详情
// @Tags 学习会话
// @Produce json
// @Security BearerAuth
// @Param sessionId path string true "session ID"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/sessions/{sessionId} [get]
func (ctrl *SessionController) Get(c *gin.Context) {
	caller, err := ctrl.AuthService.CurrentUser(c)
	if err != nil {
		util.ServiceError(c, err)
		return
	}

	session, err := ctrl.SessionService.GetByID(caller, c.Param("sessionId"))
	if err != nil {
		util.ServiceError(c, err)
		return
	}

	util.Success(c, session)
}

// Create 创建学习会话，卡片队列在此刻固定
// @Summary 创建会话
// @Tags 学习会话
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body createSessionRequest true "会话参数"
// @Success 201 {object} util.Response
// @Failure 404 {object} util.Response "范围内没有可学习的卡片"
// @Router /api/sessions [post]
func (ctrl *SessionController) Create(c *gin.Context) {
	caller, err := ctrl.AuthService.CurrentUser(c)
	if err != nil {
		util.ServiceError(c, err)
		return
	}

	var req createSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.BadRequest(c, err.Error())
		return
	}

	session, err := ctrl.SessionService.Create(caller, req.RoadmapID, req.BlockID, model.SessionMode(req.Mode), req.Mix)
	if err != nil {
		util.ServiceError(c, err)
		return
	}

	util.Created(c, session)
}

// NextCard 读取队列当前位置的完整卡片，不推进指针
// @Summary 下一张卡片
// @Tags 学习会话
// @Produce json
// @Security BearerAuth
// @Param sessionId path string true "session ID"
// @Success 200 {object} util.Response
// @Failure 409 {object} util.Response "队列已耗尽"
// @Router /api/sessions/{sessionId}/next-card [get]
func (ctrl *SessionController) NextCard(c *gin.Context) {
	caller, err := ctrl.AuthService.CurrentUser(c)
	if err != nil {
		util.ServiceError(c, err)
		return
	}

	cardID, err := ctrl.SessionService.GetNextCardID(caller, c.Param("sessionId"))
	if err != nil {
		util.ServiceError(c, err)
		return
	}

	card, err := ctrl.CardService.GetByID(caller, cardID)
	if err != nil {
		util.ServiceError(c, err)
		return
	}

	util.Success(c, card)
}

// SubmitAnswer 提交当前卡片的答案并推进队列指针
// @Summary 提交答案
// @Tags 学习会话
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param sessionId path string true "session ID"
// @Param request body submitAnswerRequest true "答案"
// @Success 200 {object} util.Response
// @Failure 409 {object} util.Response "会话已终结"
// @Router /api/sessions/{sessionId}/answer [patch]
func (ctrl *SessionController) SubmitAnswer(c *gin.Context) {
	caller, err := ctrl.AuthService.CurrentUser(c)
	if err != nil {
		util.ServiceError(c, err)
		return
	}

	var req submitAnswerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.BadRequest(c, err.Error())
		return
	}

	session, err := ctrl.SessionService.SubmitAnswer(caller, c.Param("sessionId"), req.CardID, model.CardStatus(req.Answer))
	if err != nil {
		util.ServiceError(c, err)
		return
	}

	util.Success(c, session)
}

// Finish 终结会话并返回统计结果
// @Summary 结束会话
// @Tags 学习会话
// @Produce json
// @Security BearerAuth
// @Param sessionId path string true "session ID"
// @Success 200 {object} util.Response
// @Failure 409 {object} util.Response "会话已终结"
// @Router /api/sessions/{sessionId}/finish [post]
func (ctrl *SessionController) Finish(c *gin.Context) {
	caller, err := ctrl.AuthService.CurrentUser(c)
	if err != nil {
		util.ServiceError(c, err)
		return
	}

	result, err := ctrl.SessionService.Finish(caller, c.Param("sessionId"))
	if err != nil {
		util.ServiceError(c, err)
		return
	}

	util.Success(c, result)
}

// Abandon 放弃会话；会话已终结时 abandoned 为 false
// @Summary 放弃会话
// @Tags 学习会话
// @Produce json
// @Security BearerAuth
// @Param sessionId path string true "session ID"
// @Success 200 {object} util.Response
// @Router /api/sessions/{sessionId}/abandon [post]
func (ctrl *SessionController) Abandon(c *gin.Context) {
	caller, err := ctrl.AuthService.CurrentUser(c)
	if err != nil {
		util.ServiceError(c, err)
		return
	}

	abandoned, err := ctrl.SessionService.Abandon(caller, c.Param("sessionId"))
	if err != nil {
		util.ServiceError(c, err)
		return
	}

	util.Success(c, gin.H{"abandoned": abandoned})
}

// Delete 删除会话记录
// @Summary 删除会话
// @Tags 学习会话
// @Security BearerAuth
// @Param sessionId path string true "session ID"
// @Success 204
// @Failure 404 {object} util.Response
// @Router /api/sessions/{sessionId} [delete]
func (ctrl *SessionController) Delete(c *gin.Context) {
	caller, err := ctrl.AuthService.CurrentUser(c)
	if err != nil {
		util.ServiceError(c, err)
		return
	}

	if err := ctrl.SessionService.Delete(caller, c.Param("sessionId")); err != nil {
		util.ServiceError(c, err)
		return
	}

	util.NoContent(c)
}
