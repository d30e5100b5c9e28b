package service

import (
	"roadmap_learner_backend/internal/model"
	"roadmap_learner_backend/internal/repository"
	"roadmap_learner_backend/internal/util"
	"roadmap_learner_backend/pkg/logger"

	"go.uber.org/zap"
)

type BlockService struct {
	repo   *repository.BlockRepository
	access *AccessService
}

func NewBlockService(repo *repository.BlockRepository, access *AccessService) *BlockService {
	return &BlockService{repo: repo, access: access}
}

func (s *BlockService) GetAll() ([]model.Block, error) {
	return s.repo.GetAll()
}

func (s *BlockService) GetByFilters(caller *model.User, filters model.BlockFilters) ([]model.Block, error) {
	accessedFilters, err := s.access.FilterBlocksForUser(caller, filters)
	if err != nil {
		return nil, err
	}
	return s.repo.GetByFilters(accessedFilters)
}

func (s *BlockService) GetByID(caller *model.User, blockID string) (*model.Block, error) {
	block, err := s.repo.FindByID(blockID)
	if err != nil {
		return nil, err
	}
	if block == nil {
		logger.Log.Warn("block not found", zap.String("block_id", blockID))
		return nil, util.ErrNotFound
	}

	if err := s.access.EnsureCanViewBlock(caller, block); err != nil {
		return nil, err
	}
	return block, nil
}

func (s *BlockService) Create(caller *model.User, roadmapID, title, description string, orderIndex float64) (*model.Block, error) {
	// 创建前校验父 roadmap 的归属
	roadmap, err := s.access.roadmapRepo.FindByID(roadmapID)
	if err != nil {
		return nil, err
	}
	if roadmap == nil {
		return nil, util.ErrNotFound
	}
	if err := s.access.EnsureCanViewRoadmap(caller, roadmap); err != nil {
		return nil, err
	}

	block := &model.Block{
		RoadmapID:   roadmapID,
		Title:       title,
		Description: description,
		OrderIndex:  orderIndex,
		Status:      model.BlockDraft,
	}

	if err := s.repo.Create(block); err != nil {
		return nil, err
	}

	logger.Log.Info("block created",
		zap.String("block_id", block.ID),
		zap.String("roadmap_id", roadmapID))
	return block, nil
}

func (s *BlockService) Update(caller *model.User, blockID string, updates map[string]interface{}) (*model.Block, error) {
	if _, err := s.GetByID(caller, blockID); err != nil {
		return nil, err
	}
	if len(updates) == 0 {
		return s.GetByID(caller, blockID)
	}

	updated, err := s.repo.Update(blockID, updates)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, util.ErrNotFound
	}
	return updated, nil
}

func (s *BlockService) Delete(caller *model.User, blockID string) error {
	if _, err := s.GetByID(caller, blockID); err != nil {
		return err
	}

	ok, err := s.repo.Delete(blockID)
	if err != nil {
		return err
	}
	if !ok {
		return util.ErrOperationFailed
	}
	logger.Log.Info("block deleted", zap.String("block_id", blockID))
	return nil
}
