package model

type CardStatus string

const (
	CardUnknown CardStatus = "unknown"
	CardKnown   CardStatus = "known"
	CardReview  CardStatus = "review"
)

// swagger:model Card
type Card struct {
	UUIDBase
	BlockID    string     `gorm:"type:varchar(36);index;not null" json:"blockId"`
	Term       string     `gorm:"size:100;not null" json:"term"`
	Definition string     `gorm:"size:500;not null" json:"definition"`
	Example    string     `gorm:"size:500" json:"example"`
	Comment    string     `gorm:"size:500" json:"comment"`
	Status     CardStatus `gorm:"size:20;default:'unknown'" json:"status"`
}

func (Card) TableName() string {
	return "cards"
}
