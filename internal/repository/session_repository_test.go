package repository

import (
	"testing"

	"roadmap_learner_backend/internal/model"
	"roadmap_learner_backend/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
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
	return db
}

func newActiveSession(t *testing.T, repo *SessionRepository, queue []string) *model.Session {
	t.Helper()
	session := &model.Session{
		UserID:       model.GenerateUUID(),
		RoadmapID:    model.GenerateUUID(),
		Mode:         model.SessionModeExam,
		Status:       model.SessionActive,
		CardIDsQueue: datatypes.JSONSlice[string](queue),
	}
	require.NoError(t, repo.Create(session))
	return session
}

func TestSubmitAnswerIncrementsCounterAndIndex(t *testing.T) {
	repo := NewSessionRepository(setupTestDB(t))
	session := newActiveSession(t, repo, []string{"c1", "c2", "c3"})

	updated, err := repo.SubmitAnswer(session.ID, model.CardKnown)
	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.Equal(t, 1, updated.CorrectAnswers)
	assert.Equal(t, 0, updated.IncorrectAnswers)
	assert.Equal(t, 0, updated.ReviewAnswers)
	assert.Equal(t, 1, updated.CurrentCardIndex)

	updated, err = repo.SubmitAnswer(session.ID, model.CardUnknown)
	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.Equal(t, 1, updated.CorrectAnswers)
	assert.Equal(t, 1, updated.IncorrectAnswers)
	assert.Equal(t, 2, updated.CurrentCardIndex)

	updated, err = repo.SubmitAnswer(session.ID, model.CardReview)
	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.Equal(t, 1, updated.ReviewAnswers)
	assert.Equal(t, 3, updated.CurrentCardIndex)

	// 队列在提交答案后保持不变
	assert.Equal(t, []string{"c1", "c2", "c3"}, []string(updated.CardIDsQueue))
}

func TestSubmitAnswerRejectsUnknownValue(t *testing.T) {
	repo := NewSessionRepository(setupTestDB(t))
	session := newActiveSession(t, repo, []string{"c1"})

	_, err := repo.SubmitAnswer(session.ID, model.CardStatus("maybe"))
	assert.Error(t, err)
}

func TestSubmitAnswerOnTerminalSessionAffectsNoRows(t *testing.T) {
	repo := NewSessionRepository(setupTestDB(t))
	session := newActiveSession(t, repo, []string{"c1"})

	_, err := repo.Finish(session.ID)
	require.NoError(t, err)

	updated, err := repo.SubmitAnswer(session.ID, model.CardKnown)
	require.NoError(t, err)
	assert.Nil(t, updated)
}

func TestFinishIsIdempotentConditionalUpdate(t *testing.T) {
	repo := NewSessionRepository(setupTestDB(t))
	session := newActiveSession(t, repo, []string{"c1", "c2"})

	finished, err := repo.Finish(session.ID)
	require.NoError(t, err)
	require.NotNil(t, finished)
	assert.Equal(t, model.SessionCompleted, finished.Status)
	assert.NotNil(t, finished.CompletedAt)

	// 第二次 Finish 影响 0 行
	again, err := repo.Finish(session.ID)
	require.NoError(t, err)
	assert.Nil(t, again)
}

func TestAbandonReportsTransition(t *testing.T) {
	repo := NewSessionRepository(setupTestDB(t))
	session := newActiveSession(t, repo, []string{"c1"})

	abandoned, err := repo.Abandon(session.ID)
	require.NoError(t, err)
	assert.True(t, abandoned)

	found, err := repo.FindByID(session.ID)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, model.SessionAbandoned, found.Status)

	abandoned, err = repo.Abandon(session.ID)
	require.NoError(t, err)
	assert.False(t, abandoned)
}

func TestAbandonAfterFinishDoesNothing(t *testing.T) {
	repo := NewSessionRepository(setupTestDB(t))
	session := newActiveSession(t, repo, []string{"c1"})

	_, err := repo.Finish(session.ID)
	require.NoError(t, err)

	abandoned, err := repo.Abandon(session.ID)
	require.NoError(t, err)
	assert.False(t, abandoned)

	found, err := repo.FindByID(session.ID)
	require.NoError(t, err)
	assert.Equal(t, model.SessionCompleted, found.Status)
}

func TestFindByIDReturnsNilForMissing(t *testing.T) {
	repo := NewSessionRepository(setupTestDB(t))

	found, err := repo.FindByID(model.GenerateUUID())
	require.NoError(t, err)
	assert.Nil(t, found)
}

func TestGetByFiltersNarrowsByUserAndStatus(t *testing.T) {
	repo := NewSessionRepository(setupTestDB(t))
	s1 := newActiveSession(t, repo, []string{"c1"})
	newActiveSession(t, repo, []string{"c2"})

	_, err := repo.Finish(s1.ID)
	require.NoError(t, err)

	status := model.SessionCompleted
	sessions, err := repo.GetByFilters(model.SessionFilters{UserID: &s1.UserID, Status: &status})
	require.NoError(t, err)
	require.Len(t, sessions, 1)
	assert.Equal(t, s1.ID, sessions[0].ID)
}
