package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"roadmap_learner_backend/internal/model"

	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"
)

type RoadmapRepository struct {
	DB       *gorm.DB
	Redis    *redis.Client
	CacheTTL time.Duration
	ctx      context.Context
}

func NewRoadmapRepository(db *gorm.DB, rdb *redis.Client, cacheTTL time.Duration) *RoadmapRepository {
	return &RoadmapRepository{
		DB:       db,
		Redis:    rdb,
		CacheTTL: cacheTTL,
		ctx:      context.Background(),
	}
}

func roadmapListKey(userID string) string {
	return fmt.Sprintf("roadmap:list:user:%s", userID)
}

func roadmapDetailKey(id string) string {
	return fmt.Sprintf("roadmap:detail:%s", id)
}

func (r *RoadmapRepository) Create(roadmap *model.Roadmap) error {
	err := r.DB.Create(roadmap).Error
	if err == nil {
		r.invalidate(roadmap.UserID, roadmap.ID)
	}
	return err
}

func (r *RoadmapRepository) FindByID(id string) (*model.Roadmap, error) {
	if r.Redis != nil {
		cached, err := r.Redis.Get(r.ctx, roadmapDetailKey(id)).Result()
		if err == nil {
			var roadmap model.Roadmap
			if json.Unmarshal([]byte(cached), &roadmap) == nil {
				return &roadmap, nil
			}
		}
	}

	var roadmap model.Roadmap
	err := r.DB.First(&roadmap, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if r.Redis != nil {
		if data, err := json.Marshal(&roadmap); err == nil {
			r.Redis.Set(r.ctx, roadmapDetailKey(id), data, r.CacheTTL)
		}
	}
	return &roadmap, nil
}

func (r *RoadmapRepository) GetByFilters(filters model.RoadmapFilters) ([]model.Roadmap, error) {
	// 仅按 owner 过滤的列表走缓存，其余组合直接查库
	cacheable := filters.UserID != nil && filters.Title == nil && filters.Status == nil

	if cacheable && r.Redis != nil {
		cached, err := r.Redis.Get(r.ctx, roadmapListKey(*filters.UserID)).Result()
		if err == nil {
			var roadmaps []model.Roadmap
			if json.Unmarshal([]byte(cached), &roadmaps) == nil {
				return roadmaps, nil
			}
		}
	}

	db := r.DB.Model(&model.Roadmap{})
	if filters.UserID != nil {
		db = db.Where("user_id = ?", *filters.UserID)
	}
	if filters.Title != nil {
		db = db.Where("title = ?", *filters.Title)
	}
	if filters.Status != nil {
		db = db.Where("status = ?", *filters.Status)
	}

	var roadmaps []model.Roadmap
	if err := db.Find(&roadmaps).Error; err != nil {
		return nil, err
	}

	if cacheable && r.Redis != nil {
		if data, err := json.Marshal(roadmaps); err == nil {
			r.Redis.Set(r.ctx, roadmapListKey(*filters.UserID), data, r.CacheTTL)
		}
	}
	return roadmaps, nil
}

func (r *RoadmapRepository) GetAll() ([]model.Roadmap, error) {
	var roadmaps []model.Roadmap
	err := r.DB.Find(&roadmaps).Error
	return roadmaps, err
}

// IDsByUser 获取用户拥有的全部 roadmap ID
func (r *RoadmapRepository) IDsByUser(userID string) ([]string, error) {
	var ids []string
	err := r.DB.Model(&model.Roadmap{}).
		Where("user_id = ?", userID).
		Pluck("id", &ids).Error
	return ids, err
}

func (r *RoadmapRepository) Update(id string, updates map[string]interface{}) (*model.Roadmap, error) {
	result := r.DB.Model(&model.Roadmap{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, nil
	}

	var roadmap model.Roadmap
	if err := r.DB.First(&roadmap, "id = ?", id).Error; err != nil {
		return nil, err
	}
	r.invalidate(roadmap.UserID, id)
	return &roadmap, nil
}

func (r *RoadmapRepository) Delete(id string) (bool, error) {
	var roadmap model.Roadmap
	if err := r.DB.First(&roadmap, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}

	result := r.DB.Delete(&model.Roadmap{}, "id = ?", id)
	if result.Error != nil {
		return false, result.Error
	}
	r.invalidate(roadmap.UserID, id)
	return result.RowsAffected > 0, nil
}

// invalidate 写操作后清除可能包含该实体的列表和详情缓存
func (r *RoadmapRepository) invalidate(userID, id string) {
	if r.Redis == nil {
		return
	}
	r.Redis.Del(r.ctx, roadmapListKey(userID), roadmapDetailKey(id))
}
