package service

import (
	"roadmap_learner_backend/internal/model"
	"roadmap_learner_backend/internal/repository"
	"roadmap_learner_backend/internal/util"
	"roadmap_learner_backend/pkg/logger"

	"go.uber.org/zap"
)

type RoadmapService struct {
	repo   *repository.RoadmapRepository
	access *AccessService
}

func NewRoadmapService(repo *repository.RoadmapRepository, access *AccessService) *RoadmapService {
	return &RoadmapService{repo: repo, access: access}
}

func (s *RoadmapService) GetAll() ([]model.Roadmap, error) {
	return s.repo.GetAll()
}

func (s *RoadmapService) GetByFilters(caller *model.User, filters model.RoadmapFilters) ([]model.Roadmap, error) {
	accessedFilters, err := s.access.FilterRoadmapsForUser(caller, filters)
	if err != nil {
		return nil, err
	}
	return s.repo.GetByFilters(accessedFilters)
}

func (s *RoadmapService) GetByID(caller *model.User, roadmapID string) (*model.Roadmap, error) {
	roadmap, err := s.repo.FindByID(roadmapID)
	if err != nil {
		return nil, err
	}
	if roadmap == nil {
		logger.Log.Warn("roadmap not found", zap.String("roadmap_id", roadmapID))
		return nil, util.ErrNotFound
	}

	if err := s.access.EnsureCanViewRoadmap(caller, roadmap); err != nil {
		return nil, err
	}
	return roadmap, nil
}

func (s *RoadmapService) Create(caller *model.User, title, description string) (*model.Roadmap, error) {
	roadmap := &model.Roadmap{
		UserID:      caller.ID,
		Title:       title,
		Description: description,
		Status:      model.RoadmapDraft,
	}

	if err := s.repo.Create(roadmap); err != nil {
		return nil, err
	}

	logger.Log.Info("roadmap created",
		zap.String("roadmap_id", roadmap.ID),
		zap.String("user_id", caller.ID))
	return roadmap, nil
}

func (s *RoadmapService) Update(caller *model.User, roadmapID string, updates map[string]interface{}) (*model.Roadmap, error) {
	if _, err := s.GetByID(caller, roadmapID); err != nil {
		return nil, err
	}
	if len(updates) == 0 {
		return s.GetByID(caller, roadmapID)
	}

	updated, err := s.repo.Update(roadmapID, updates)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, util.ErrNotFound
	}
	return updated, nil
}

func (s *RoadmapService) Delete(caller *model.User, roadmapID string) error {
	if _, err := s.GetByID(caller, roadmapID); err != nil {
		return err
	}

	ok, err := s.repo.Delete(roadmapID)
	if err != nil {
		return err
	}
	if !ok {
		return util.ErrOperationFailed
	}
	logger.Log.Info("roadmap deleted", zap.String("roadmap_id", roadmapID))
	return nil
}
