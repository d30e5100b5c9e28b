package repository

import (
	"errors"

	"roadmap_learner_backend/internal/model"

	"gorm.io/gorm"
)

type BlockRepository struct {
	DB *gorm.DB
}

func NewBlockRepository(db *gorm.DB) *BlockRepository {
	return &BlockRepository{DB: db}
}

func (r *BlockRepository) Create(block *model.Block) error {
	return r.DB.Create(block).Error
}

func (r *BlockRepository) FindByID(id string) (*model.Block, error) {
	var block model.Block
	err := r.DB.First(&block, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &block, nil
}

func (r *BlockRepository) GetByFilters(filters model.BlockFilters) ([]model.Block, error) {
	db := r.DB.Model(&model.Block{})
	if filters.RoadmapID != nil {
		db = db.Where("roadmap_id = ?", *filters.RoadmapID)
	}
	// nil 表示不限制；非 nil 空集合表示无可见范围，直接返回空
	if filters.RoadmapIDs != nil {
		if len(filters.RoadmapIDs) == 0 {
			return []model.Block{}, nil
		}
		db = db.Where("roadmap_id IN ?", filters.RoadmapIDs)
	}
	if filters.Title != nil {
		db = db.Where("title = ?", *filters.Title)
	}
	if filters.Status != nil {
		db = db.Where("status = ?", *filters.Status)
	}

	var blocks []model.Block
	err := db.Order("order_index ASC").Find(&blocks).Error
	return blocks, err
}

func (r *BlockRepository) GetAll() ([]model.Block, error) {
	var blocks []model.Block
	err := r.DB.Order("order_index ASC").Find(&blocks).Error
	return blocks, err
}

// IDsByRoadmapIDs 获取指定 roadmap 集合下的全部 block ID
func (r *BlockRepository) IDsByRoadmapIDs(roadmapIDs []string) ([]string, error) {
	if len(roadmapIDs) == 0 {
		return nil, nil
	}
	var ids []string
	err := r.DB.Model(&model.Block{}).
		Where("roadmap_id IN ?", roadmapIDs).
		Pluck("id", &ids).Error
	return ids, err
}

func (r *BlockRepository) Update(id string, updates map[string]interface{}) (*model.Block, error) {
	result := r.DB.Model(&model.Block{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, nil
	}
	return r.FindByID(id)
}

func (r *BlockRepository) Delete(id string) (bool, error) {
	result := r.DB.Delete(&model.Block{}, "id = ?", id)
	return result.RowsAffected > 0, result.Error
}
