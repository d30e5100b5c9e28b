package model

import (
	"time"

	"gorm.io/datatypes"
)

type SessionMode string

const (
	SessionModeReview SessionMode = "review"
	SessionModeExam   SessionMode = "exam"
)

type SessionStatus string

const (
	SessionActive    SessionStatus = "active"
	SessionCompleted SessionStatus = "completed"
	SessionAbandoned SessionStatus = "abandoned"
)

// swagger:model Session
type Session struct {
	UUIDBase
	UserID    string      `gorm:"type:varchar(36);index;not null" json:"userId"`
	RoadmapID string      `gorm:"type:varchar(36);index;not null" json:"roadmapId"`
	BlockID   *string     `gorm:"type:varchar(36)" json:"blockId,omitempty"`
	Mode      SessionMode `gorm:"size:20;not null" json:"mode"`

	Status SessionStatus `gorm:"size:20;default:'active'" json:"status"`

	// 队列在创建时生成一次，之后只读
	CardIDsQueue     datatypes.JSONSlice[string] `json:"cardIdsQueue"`
	CurrentCardIndex int                         `gorm:"default:0" json:"currentCardIndex"`

	CorrectAnswers   int `gorm:"default:0" json:"correctAnswers"`
	IncorrectAnswers int `gorm:"default:0" json:"incorrectAnswers"`
	ReviewAnswers    int `gorm:"default:0" json:"reviewAnswers"`

	CompletedAt *time.Time `json:"completedAt,omitempty"`
}

func (Session) TableName() string {
	return "sessions"
}

// swagger:model SessionResult
type SessionResult struct {
	ID                 string      `json:"id"`
	UserID             string      `json:"userId"`
	RoadmapID          string      `json:"roadmapId"`
	BlockID            *string     `json:"blockId,omitempty"`
	Mode               SessionMode `json:"mode"`
	TotalCards         int         `json:"totalCards"`
	CorrectAnswers     int         `json:"correctAnswers"`
	IncorrectAnswers   int         `json:"incorrectAnswers"`
	ReviewAnswers      int         `json:"reviewAnswers"`
	AccuracyPercentage float64     `json:"accuracyPercentage"`
	CompletedAt        *time.Time  `json:"completedAt"`
}
