package service

import (
	"math"
	"math/rand"

	"roadmap_learner_backend/internal/config"
	"roadmap_learner_backend/internal/model"
	"roadmap_learner_backend/internal/repository"
	"roadmap_learner_backend/internal/util"
	"roadmap_learner_backend/pkg/logger"
	"roadmap_learner_backend/pkg/monitoring"

	"go.uber.org/zap"
)

// SessionService 实现学习会话状态机：
// active → completed | abandoned，终态不可再转换。
// 卡片队列在创建时固定，之后只有 current_card_index 前进。
type SessionService struct {
	repo   *repository.SessionRepository
	access *AccessService
	cfg    *config.Config
}

func NewSessionService(repo *repository.SessionRepository, access *AccessService, cfg *config.Config) *SessionService {
	return &SessionService{
		repo:   repo,
		access: access,
		cfg:    cfg,
	}
}

func (s *SessionService) GetAll() ([]model.Session, error) {
	return s.repo.GetAll()
}

func (s *SessionService) GetByFilters(caller *model.User, filters model.SessionFilters) ([]model.Session, error) {
	accessedFilters, err := s.access.FilterSessionsForUser(caller, filters)
	if err != nil {
		return nil, err
	}
	return s.repo.GetByFilters(accessedFilters)
}

func (s *SessionService) GetByID(caller *model.User, sessionID string) (*model.Session, error) {
	session, err := s.repo.FindByID(sessionID)
	if err != nil {
		return nil, err
	}
	if session == nil {
		logger.Log.Warn("session not found", zap.String("session_id", sessionID))
		return nil, util.ErrNotFound
	}

	if err := s.access.EnsureCanViewSession(caller, session); err != nil {
		return nil, err
	}
	return session, nil
}

// Create 通过访问控制解析会话范围内的卡片队列并持久化新会话。
// review 模式只取状态为 review 的卡片；mix 对队列做一次无偏洗牌。
func (s *SessionService) Create(caller *model.User, roadmapID string, blockID *string, mode model.SessionMode, mix bool) (*model.Session, error) {
	filters := model.CardFilters{
		RoadmapID: &roadmapID,
		BlockID:   blockID,
	}
	if mode == model.SessionModeReview {
		status := model.CardReview
		filters.Status = &status
	}

	cardIDsQueue, err := s.access.GetCardsForSession(caller, filters)
	if err != nil {
		return nil, err
	}

	if mix {
		rand.Shuffle(len(cardIDsQueue), func(i, j int) {
			cardIDsQueue[i], cardIDsQueue[j] = cardIDsQueue[j], cardIDsQueue[i]
		})
	}

	session := &model.Session{
		UserID:       caller.ID,
		RoadmapID:    roadmapID,
		BlockID:      blockID,
		Mode:         mode,
		Status:       model.SessionActive,
		CardIDsQueue: cardIDsQueue,
	}

	if err := s.repo.Create(session); err != nil {
		return nil, err
	}

	monitoring.SessionsCreated.WithLabelValues(string(mode)).Inc()
	logger.Log.Info("session created",
		zap.String("session_id", session.ID),
		zap.String("user_id", caller.ID),
		zap.String("mode", string(mode)),
		zap.Int("queue_len", len(cardIDsQueue)))
	return session, nil
}

// GetNextCardID 只读取队列当前位置，不推进指针；指针在提交答案时前进
func (s *SessionService) GetNextCardID(caller *model.User, sessionID string) (string, error) {
	session, err := s.GetByID(caller, sessionID)
	if err != nil {
		return "", err
	}

	if session.CurrentCardIndex >= len(session.CardIDsQueue) {
		logger.Log.Warn("card queue exhausted",
			zap.String("session_id", sessionID),
			zap.Int("index", session.CurrentCardIndex))
		return "", util.ErrQueueExhausted
	}

	return session.CardIDsQueue[session.CurrentCardIndex], nil
}

// SubmitAnswer 按答案累加一个计数器并推进指针。
// 计数与指针的更新在仓储层是带 active 状态条件的单条 UPDATE。
func (s *SessionService) SubmitAnswer(caller *model.User, sessionID, cardID string, answer model.CardStatus) (*model.Session, error) {
	session, err := s.GetByID(caller, sessionID)
	if err != nil {
		return nil, err
	}
	if session.Status != model.SessionActive {
		return nil, util.ErrInvalidState
	}

	if s.cfg.Session.StrictAnswerCheck {
		if session.CurrentCardIndex >= len(session.CardIDsQueue) {
			return nil, util.ErrQueueExhausted
		}
		if session.CardIDsQueue[session.CurrentCardIndex] != cardID {
			logger.Log.Warn("answer card mismatch",
				zap.String("session_id", sessionID),
				zap.String("submitted", cardID),
				zap.String("expected", session.CardIDsQueue[session.CurrentCardIndex]))
			return nil, util.ErrCardMismatch
		}
	}

	updated, err := s.repo.SubmitAnswer(sessionID, answer)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		// 读取和写入之间状态被并发修改
		logger.Log.Warn("submit answer affected no rows", zap.String("session_id", sessionID))
		return nil, util.ErrOperationFailed
	}

	return updated, nil
}

// Finish 终结会话并返回统计结果。
// active → completed 由条件更新保证，两次并发 Finish 只有一次成功。
func (s *SessionService) Finish(caller *model.User, sessionID string) (*model.SessionResult, error) {
	session, err := s.GetByID(caller, sessionID)
	if err != nil {
		return nil, err
	}
	if session.Status != model.SessionActive {
		return nil, util.ErrInvalidState
	}

	finished, err := s.repo.Finish(sessionID)
	if err != nil {
		return nil, err
	}
	if finished == nil {
		logger.Log.Warn("finish lost the race", zap.String("session_id", sessionID))
		return nil, util.ErrNotFound
	}

	monitoring.SessionsFinished.WithLabelValues(string(model.SessionCompleted)).Inc()
	logger.Log.Info("session finished", zap.String("session_id", sessionID))
	return buildSessionResult(finished), nil
}

// Abandon 放弃会话。已处于终态时返回 false 而不报错，与 Finish 的约定刻意不同。
func (s *SessionService) Abandon(caller *model.User, sessionID string) (bool, error) {
	session, err := s.GetByID(caller, sessionID)
	if err != nil {
		return false, err
	}
	if session.Status != model.SessionActive {
		return false, nil
	}

	abandoned, err := s.repo.Abandon(sessionID)
	if err != nil {
		return false, err
	}
	if abandoned {
		monitoring.SessionsFinished.WithLabelValues(string(model.SessionAbandoned)).Inc()
		logger.Log.Info("session abandoned", zap.String("session_id", sessionID))
	}
	return abandoned, nil
}

func (s *SessionService) Delete(caller *model.User, sessionID string) error {
	if _, err := s.GetByID(caller, sessionID); err != nil {
		return err
	}

	ok, err := s.repo.Delete(sessionID)
	if err != nil {
		return err
	}
	if !ok {
		return util.ErrOperationFailed
	}
	logger.Log.Info("session deleted", zap.String("session_id", sessionID))
	return nil
}

func buildSessionResult(session *model.Session) *model.SessionResult {
	totalAnswers := session.CorrectAnswers + session.IncorrectAnswers + session.ReviewAnswers

	accuracy := 0.0
	if totalAnswers > 0 {
		accuracy = float64(session.CorrectAnswers) / float64(totalAnswers) * 100
		accuracy = math.Round(accuracy*100) / 100
	}

	return &model.SessionResult{
		ID:                 session.ID,
		UserID:             session.UserID,
		RoadmapID:          session.RoadmapID,
		BlockID:            session.BlockID,
		Mode:               session.Mode,
		TotalCards:         len(session.CardIDsQueue),
		CorrectAnswers:     session.CorrectAnswers,
		IncorrectAnswers:   session.IncorrectAnswers,
		ReviewAnswers:      session.ReviewAnswers,
		AccuracyPercentage: accuracy,
		CompletedAt:        session.CompletedAt,
	}
}
