package model

type BlockStatus string

const (
	BlockDraft    BlockStatus = "draft"
	BlockActive   BlockStatus = "active"
	BlockArchived BlockStatus = "archived"
)

// swagger:model Block
type Block struct {
	UUIDBase
	RoadmapID   string      `gorm:"type:varchar(36);index;not null" json:"roadmapId"`
	Title       string      `gorm:"size:100;not null" json:"title"`
	Description string      `gorm:"size:255" json:"description"`
	OrderIndex  float64     `gorm:"default:0" json:"orderIndex"`
	Status      BlockStatus `gorm:"size:20;default:'draft'" json:"status"`

	Cards []Card `gorm:"foreignKey:BlockID" json:"-"`
}

func (Block) TableName() string {
	return "blocks"
}
