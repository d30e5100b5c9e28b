package repository

import (
	"errors"

	"roadmap_learner_backend/internal/model"

	"gorm.io/gorm"
)

type CardRepository struct {
	DB *gorm.DB
}

func NewCardRepository(db *gorm.DB) *CardRepository {
	return &CardRepository{DB: db}
}

func (r *CardRepository) Create(card *model.Card) error {
	return r.DB.Create(card).Error
}

func (r *CardRepository) FindByID(id string) (*model.Card, error) {
	var card model.Card
	err := r.DB.First(&card, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &card, nil
}

func (r *CardRepository) GetByFilters(filters model.CardFilters) ([]model.Card, error) {
	db := r.DB.Model(&model.Card{})
	if filters.BlockID != nil {
		db = db.Where("block_id = ?", *filters.BlockID)
	}
	// nil 表示不限制；非 nil 空集合表示无可见范围，直接返回空
	if filters.BlockIDs != nil {
		if len(filters.BlockIDs) == 0 {
			return []model.Card{}, nil
		}
		db = db.Where("block_id IN ?", filters.BlockIDs)
	}
	if filters.Term != nil {
		db = db.Where("term = ?", *filters.Term)
	}
	if filters.Status != nil {
		db = db.Where("status = ?", *filters.Status)
	}

	var cards []model.Card
	err := db.Order("created_at ASC").Find(&cards).Error
	return cards, err
}

func (r *CardRepository) GetAll() ([]model.Card, error) {
	var cards []model.Card
	err := r.DB.Find(&cards).Error
	return cards, err
}

func (r *CardRepository) Update(id string, updates map[string]interface{}) (*model.Card, error) {
	result := r.DB.Model(&model.Card{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, nil
	}
	return r.FindByID(id)
}

func (r *CardRepository) Delete(id string) (bool, error) {
	result := r.DB.Delete(&model.Card{}, "id = ?", id)
	return result.RowsAffected > 0, result.Error
}
