package service

import (
	"roadmap_learner_backend/internal/model"
	"roadmap_learner_backend/internal/repository"
	"roadmap_learner_backend/internal/util"
	"roadmap_learner_backend/pkg/logger"

	"go.uber.org/zap"
)

type CardService struct {
	repo   *repository.CardRepository
	access *AccessService
}

func NewCardService(repo *repository.CardRepository, access *AccessService) *CardService {
	return &CardService{repo: repo, access: access}
}

func (s *CardService) GetAll() ([]model.Card, error) {
	return s.repo.GetAll()
}

func (s *CardService) GetByFilters(caller *model.User, filters model.CardFilters) ([]model.Card, error) {
	accessedFilters, err := s.access.FilterCardsForUser(caller, filters)
	if err != nil {
		return nil, err
	}
	return s.repo.GetByFilters(accessedFilters)
}

func (s *CardService) GetByID(caller *model.User, cardID string) (*model.Card, error) {
	card, err := s.repo.FindByID(cardID)
	if err != nil {
		return nil, err
	}
	if card == nil {
		logger.Log.Warn("card not found", zap.String("card_id", cardID))
		return nil, util.ErrNotFound
	}

	if err := s.access.EnsureCanViewCard(caller, card); err != nil {
		return nil, err
	}
	return card, nil
}

func (s *CardService) Create(caller *model.User, blockID, term, definition, example, comment string) (*model.Card, error) {
	// 创建前沿 block → roadmap 校验归属
	block, err := s.access.blockRepo.FindByID(blockID)
	if err != nil {
		return nil, err
	}
	if block == nil {
		return nil, util.ErrNotFound
	}
	if err := s.access.EnsureCanViewBlock(caller, block); err != nil {
		return nil, err
	}

	card := &model.Card{
		BlockID:    blockID,
		Term:       term,
		Definition: definition,
		Example:    example,
		Comment:    comment,
		Status:     model.CardUnknown,
	}

	if err := s.repo.Create(card); err != nil {
		return nil, err
	}

	logger.Log.Info("card created",
		zap.String("card_id", card.ID),
		zap.String("block_id", blockID))
	return card, nil
}

func (s *CardService) Update(caller *model.User, cardID string, updates map[string]interface{}) (*model.Card, error) {
	if _, err := s.GetByID(caller, cardID); err != nil {
		return nil, err
	}
	if len(updates) == 0 {
		return s.GetByID(caller, cardID)
	}

	updated, err := s.repo.Update(cardID, updates)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, util.ErrNotFound
	}
	return updated, nil
}

func (s *CardService) Delete(caller *model.User, cardID string) error {
	if _, err := s.GetByID(caller, cardID); err != nil {
		return err
	}

	ok, err := s.repo.Delete(cardID)
	if err != nil {
		return err
	}
	if !ok {
		return util.ErrOperationFailed
	}
	logger.Log.Info("card deleted", zap.String("card_id", cardID))
	return nil
}
