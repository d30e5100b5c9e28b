package repository

import (
	"errors"
	"time"

	"roadmap_learner_backend/internal/model"

	"gorm.io/gorm"
)

type SessionRepository struct {
	DB *gorm.DB
}

func NewSessionRepository(db *gorm.DB) *SessionRepository {
	return &SessionRepository{DB: db}
}

func (r *SessionRepository) Create(session *model.Session) error {
	return r.DB.Create(session).Error
}

func (r *SessionRepository) FindByID(id string) (*model.Session, error) {
	var session model.Session
	err := r.DB.First(&session, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *SessionRepository) GetByFilters(filters model.SessionFilters) ([]model.Session, error) {
	db := r.DB.Model(&model.Session{})
	if filters.UserID != nil {
		db = db.Where("user_id = ?", *filters.UserID)
	}
	if filters.RoadmapID != nil {
		db = db.Where("roadmap_id = ?", *filters.RoadmapID)
	}
	if filters.BlockID != nil {
		db = db.Where("block_id = ?", *filters.BlockID)
	}
	if filters.Mode != nil {
		db = db.Where("mode = ?", *filters.Mode)
	}
	if filters.Status != nil {
		db = db.Where("status = ?", *filters.Status)
	}

	var sessions []model.Session
	err := db.Find(&sessions).Error
	return sessions, err
}

func (r *SessionRepository) GetAll() ([]model.Session, error) {
	var sessions []model.Session
	err := r.DB.Find(&sessions).Error
	return sessions, err
}

// SubmitAnswer 单条 UPDATE 累加对应计数并推进指针，status 条件防止写入终态会话。
// 返回 nil 表示会话不存在或已不处于 active 状态。
func (r *SessionRepository) SubmitAnswer(sessionID string, answer model.CardStatus) (*model.Session, error) {
	var counterColumn string
	switch answer {
	case model.CardKnown:
		counterColumn = "correct_answers"
	case model.CardUnknown:
		counterColumn = "incorrect_answers"
	case model.CardReview:
		counterColumn = "review_answers"
	default:
		return nil, errors.New("unknown answer value: " + string(answer))
	}

	result := r.DB.Model(&model.Session{}).
		Where("id = ? AND status = ?", sessionID, model.SessionActive).
		Updates(map[string]interface{}{
			counterColumn:        gorm.Expr(counterColumn+" + ?", 1),
			"current_card_index": gorm.Expr("current_card_index + ?", 1),
		})
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, nil
	}

	return r.FindByID(sessionID)
}

// Finish 条件更新 active → completed，并发的第二次调用影响 0 行
func (r *SessionRepository) Finish(sessionID string) (*model.Session, error) {
	result := r.DB.Model(&model.Session{}).
		Where("id = ? AND status = ?", sessionID, model.SessionActive).
		Updates(map[string]interface{}{
			"status":       model.SessionCompleted,
			"completed_at": time.Now(),
		})
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, nil
	}

	return r.FindByID(sessionID)
}

// Abandon 条件更新 active → abandoned，返回是否发生转换
func (r *SessionRepository) Abandon(sessionID string) (bool, error) {
	result := r.DB.Model(&model.Session{}).
		Where("id = ? AND status = ?", sessionID, model.SessionActive).
		Updates(map[string]interface{}{
			"status":       model.SessionAbandoned,
			"completed_at": time.Now(),
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *SessionRepository) Delete(id string) (bool, error) {
	result := r.DB.Delete(&model.Session{}, "id = ?", id)
	return result.RowsAffected > 0, result.Error
}
