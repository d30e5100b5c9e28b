package model

type RoadmapStatus string

const (
	RoadmapDraft    RoadmapStatus = "draft"
	RoadmapActive   RoadmapStatus = "active"
	RoadmapArchived RoadmapStatus = "archived"
)

// swagger:model Roadmap
type Roadmap struct {
	UUIDBase
	UserID      string        `gorm:"type:varchar(36);index;not null" json:"userId"`
	Title       string        `gorm:"size:30;not null" json:"title"`
	Description string        `gorm:"size:100" json:"description"`
	Status      RoadmapStatus `gorm:"size:20;default:'draft'" json:"status"`

	Blocks []Block `gorm:"foreignKey:RoadmapID" json:"-"`
}

func (Roadmap) TableName() string {
	return "roadmaps"
}
