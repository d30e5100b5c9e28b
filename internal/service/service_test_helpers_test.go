package service

import (
	"testing"
	"time"

	"roadmap_learner_backend/internal/config"
	"roadmap_learner_backend/internal/model"
	"roadmap_learner_backend/internal/repository"
	"roadmap_learner_backend/pkg/logger"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

type testEnv struct {
	db          *gorm.DB
	userRepo    *repository.UserRepository
	roadmapRepo *repository.RoadmapRepository
	blockRepo   *repository.BlockRepository
	cardRepo    *repository.CardRepository
	sessionRepo *repository.SessionRepository
	access      *AccessService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	logger.Log = zap.NewNop()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&model.User{},
		&model.Roadmap{},
		&model.Block{},
		&model.Card{},
		&model.Session{},
	))

	roadmapRepo := repository.NewRoadmapRepository(db, nil, time.Minute)
	blockRepo := repository.NewBlockRepository(db)
	cardRepo := repository.NewCardRepository(db)

	return &testEnv{
		db:          db,
		userRepo:    repository.NewUserRepository(db),
		roadmapRepo: roadmapRepo,
		blockRepo:   blockRepo,
		cardRepo:    cardRepo,
		sessionRepo: repository.NewSessionRepository(db),
		access:      NewAccessService(roadmapRepo, blockRepo, cardRepo),
	}
}

func testConfig() *config.Config {
	return &config.Config{}
}

func (e *testEnv) seedUser(t *testing.T, superuser bool) *model.User {
	t.Helper()
	user := &model.User{
		Email:       model.GenerateUUID() + "@example.com",
		Password:    "hashed",
		IsActive:    true,
		IsSuperuser: superuser,
	}
	require.NoError(t, e.userRepo.Create(user))
	return user
}

func (e *testEnv) seedRoadmap(t *testing.T, userID string) *model.Roadmap {
	t.Helper()
	roadmap := &model.Roadmap{
		UserID: userID,
		Title:  "Go 学习路线",
		Status: model.RoadmapActive,
	}
	require.NoError(t, e.roadmapRepo.Create(roadmap))
	return roadmap
}

func (e *testEnv) seedBlock(t *testing.T, roadmapID string, orderIndex float64) *model.Block {
	t.Helper()
	block := &model.Block{
		RoadmapID:  roadmapID,
		Title:      "并发基础",
		OrderIndex: orderIndex,
		Status:     model.BlockActive,
	}
	require.NoError(t, e.blockRepo.Create(block))
	return block
}

// seedCard 指定 CreatedAt，保证按创建时间排序的队列顺序可断言
func (e *testEnv) seedCard(t *testing.T, blockID string, term string, status model.CardStatus, createdAt time.Time) *model.Card {
	t.Helper()
	card := &model.Card{
		UUIDBase:   model.UUIDBase{CreatedAt: createdAt},
		BlockID:    blockID,
		Term:       term,
		Definition: "definition of " + term,
		Status:     status,
	}
	require.NoError(t, e.cardRepo.Create(card))
	return card
}
