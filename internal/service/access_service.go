package service

import (
	"roadmap_learner_backend/internal/model"
	"roadmap_learner_backend/internal/repository"
	"roadmap_learner_backend/internal/util"
	"roadmap_learner_backend/pkg/logger"

	"go.uber.org/zap"
)

// AccessService 是所有权判定的唯一入口。
//
// 所有权链：User → Roadmap(user_id) → Block(roadmap_id) → Card(block_id)，
// Session 直接挂在 user_id 上。超级用户绕过全部检查。
// Filter* 方法把未限定的查询收窄到调用者可见的范围，
// EnsureCanView* 方法在返回/修改单个实体前做链式校验。
type AccessService struct {
	roadmapRepo *repository.RoadmapRepository
	blockRepo   *repository.BlockRepository
	cardRepo    *repository.CardRepository
}

func NewAccessService(
	roadmapRepo *repository.RoadmapRepository,
	blockRepo *repository.BlockRepository,
	cardRepo *repository.CardRepository,
) *AccessService {
	return &AccessService{
		roadmapRepo: roadmapRepo,
		blockRepo:   blockRepo,
		cardRepo:    cardRepo,
	}
}

// FilterRoadmapsForUser 收窄 roadmap 查询条件。
// 已经指定了他人 user_id 的查询按越权处理，而不是悄悄改写成空结果。
func (s *AccessService) FilterRoadmapsForUser(caller *model.User, filters model.RoadmapFilters) (model.RoadmapFilters, error) {
	if caller.IsSuperuser {
		return filters, nil
	}

	if filters.UserID == nil {
		filters.UserID = &caller.ID
		return filters, nil
	}

	if *filters.UserID == caller.ID {
		return filters, nil
	}

	logger.Log.Warn("roadmap filter access denied",
		zap.String("caller_id", caller.ID),
		zap.String("requested_user_id", *filters.UserID))
	return filters, util.ErrForbidden
}

func (s *AccessService) FilterSessionsForUser(caller *model.User, filters model.SessionFilters) (model.SessionFilters, error) {
	if caller.IsSuperuser {
		return filters, nil
	}

	if filters.UserID == nil {
		filters.UserID = &caller.ID
		return filters, nil
	}

	if *filters.UserID == caller.ID {
		return filters, nil
	}

	logger.Log.Warn("session filter access denied",
		zap.String("caller_id", caller.ID),
		zap.String("requested_user_id", *filters.UserID))
	return filters, util.ErrForbidden
}

func (s *AccessService) FilterUsersForUser(caller *model.User, filters model.UserFilters) (model.UserFilters, error) {
	if caller.IsSuperuser {
		return filters, nil
	}

	if filters.ID == nil {
		filters.ID = &caller.ID
		return filters, nil
	}

	if *filters.ID == caller.ID {
		return filters, nil
	}

	logger.Log.Warn("user filter access denied",
		zap.String("caller_id", caller.ID),
		zap.String("requested_id", *filters.ID))
	return filters, util.ErrForbidden
}

// FilterBlocksForUser 收窄 block 查询条件。
// roadmap_id 已指定时校验该 roadmap 的归属；
// 未指定时注入调用者拥有的全部 roadmap ID。
func (s *AccessService) FilterBlocksForUser(caller *model.User, filters model.BlockFilters) (model.BlockFilters, error) {
	if caller.IsSuperuser {
		return filters, nil
	}

	if filters.RoadmapID != nil {
		roadmap, err := s.roadmapRepo.FindByID(*filters.RoadmapID)
		if err != nil {
			return filters, err
		}
		if roadmap == nil {
			return filters, util.ErrNotFound
		}
		if roadmap.UserID != caller.ID {
			logger.Log.Warn("block filter access denied",
				zap.String("caller_id", caller.ID),
				zap.String("roadmap_id", *filters.RoadmapID))
			return filters, util.ErrForbidden
		}
		return filters, nil
	}

	roadmapIDs, err := s.roadmapRepo.IDsByUser(caller.ID)
	if err != nil {
		return filters, err
	}
	if roadmapIDs == nil {
		roadmapIDs = []string{}
	}
	filters.RoadmapIDs = roadmapIDs
	return filters, nil
}

// FilterCardsForUser 收窄 card 查询条件。
// card 没有 roadmap_id 列，按 roadmap 限定的查询会被解析成 block ID 集合。
func (s *AccessService) FilterCardsForUser(caller *model.User, filters model.CardFilters) (model.CardFilters, error) {
	if filters.BlockID != nil {
		if !caller.IsSuperuser {
			if err := s.ensureOwnsBlockChain(caller, *filters.BlockID); err != nil {
				return filters, err
			}
		}
		return filters, nil
	}

	if filters.RoadmapID != nil {
		roadmap, err := s.roadmapRepo.FindByID(*filters.RoadmapID)
		if err != nil {
			return filters, err
		}
		if roadmap == nil {
			return filters, util.ErrNotFound
		}
		if !caller.IsSuperuser && roadmap.UserID != caller.ID {
			logger.Log.Warn("card filter access denied",
				zap.String("caller_id", caller.ID),
				zap.String("roadmap_id", *filters.RoadmapID))
			return filters, util.ErrForbidden
		}

		blockIDs, err := s.blockRepo.IDsByRoadmapIDs([]string{roadmap.ID})
		if err != nil {
			return filters, err
		}
		if blockIDs == nil {
			blockIDs = []string{}
		}
		filters.BlockIDs = blockIDs
		return filters, nil
	}

	if caller.IsSuperuser {
		return filters, nil
	}

	roadmapIDs, err := s.roadmapRepo.IDsByUser(caller.ID)
	if err != nil {
		return filters, err
	}
	blockIDs, err := s.blockRepo.IDsByRoadmapIDs(roadmapIDs)
	if err != nil {
		return filters, err
	}
	if blockIDs == nil {
		blockIDs = []string{}
	}
	filters.BlockIDs = blockIDs
	return filters, nil
}

func (s *AccessService) EnsureCanViewRoadmap(caller *model.User, roadmap *model.Roadmap) error {
	if caller.IsSuperuser || roadmap.UserID == caller.ID {
		return nil
	}
	logger.Log.Warn("roadmap access denied",
		zap.String("caller_id", caller.ID),
		zap.String("roadmap_id", roadmap.ID))
	return util.ErrForbidden
}

func (s *AccessService) EnsureCanViewBlock(caller *model.User, block *model.Block) error {
	if caller.IsSuperuser {
		return nil
	}

	roadmap, err := s.roadmapRepo.FindByID(block.RoadmapID)
	if err != nil {
		return err
	}
	if roadmap == nil {
		return util.ErrNotFound
	}
	if roadmap.UserID != caller.ID {
		logger.Log.Warn("block access denied",
			zap.String("caller_id", caller.ID),
			zap.String("block_id", block.ID))
		return util.ErrForbidden
	}
	return nil
}

func (s *AccessService) EnsureCanViewCard(caller *model.User, card *model.Card) error {
	if caller.IsSuperuser {
		return nil
	}
	return s.ensureOwnsBlockChain(caller, card.BlockID)
}

func (s *AccessService) EnsureCanViewSession(caller *model.User, session *model.Session) error {
	if caller.IsSuperuser || session.UserID == caller.ID {
		return nil
	}
	logger.Log.Warn("session access denied",
		zap.String("caller_id", caller.ID),
		zap.String("session_id", session.ID))
	return util.ErrForbidden
}

func (s *AccessService) EnsureCanViewUser(caller *model.User, user *model.User) error {
	if caller.IsSuperuser || user.ID == caller.ID {
		return nil
	}
	logger.Log.Warn("user access denied",
		zap.String("caller_id", caller.ID),
		zap.String("user_id", user.ID))
	return util.ErrForbidden
}

// GetCardsForSession 解析会话范围内调用者可学习的卡片队列，按仓储返回顺序取 ID。
// 空结果视为错误：不能创建零卡片的会话。
func (s *AccessService) GetCardsForSession(caller *model.User, filters model.CardFilters) ([]string, error) {
	accessedFilters, err := s.FilterCardsForUser(caller, filters)
	if err != nil {
		return nil, err
	}

	cards, err := s.cardRepo.GetByFilters(accessedFilters)
	if err != nil {
		return nil, err
	}
	if len(cards) == 0 {
		logger.Log.Warn("no cards matched session scope", zap.String("caller_id", caller.ID))
		return nil, util.ErrNotFound
	}

	cardIDs := make([]string, 0, len(cards))
	for _, card := range cards {
		cardIDs = append(cardIDs, card.ID)
	}
	return cardIDs, nil
}

// ensureOwnsBlockChain 沿 block → roadmap 向上解析归属，祖先缺失报 NotFound
func (s *AccessService) ensureOwnsBlockChain(caller *model.User, blockID string) error {
	block, err := s.blockRepo.FindByID(blockID)
	if err != nil {
		return err
	}
	if block == nil {
		return util.ErrNotFound
	}

	roadmap, err := s.roadmapRepo.FindByID(block.RoadmapID)
	if err != nil {
		return err
	}
	if roadmap == nil {
		return util.ErrNotFound
	}
	if roadmap.UserID != caller.ID {
		logger.Log.Warn("card chain access denied",
			zap.String("caller_id", caller.ID),
			zap.String("block_id", blockID))
		return util.ErrForbidden
	}
	return nil
}
