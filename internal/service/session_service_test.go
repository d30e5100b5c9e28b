package service

import (
	"testing"
	"time"

	"roadmap_learner_backend/internal/config"
	"roadmap_learner_backend/internal/model"
	"roadmap_learner_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sessionFixture struct {
	env     *testEnv
	svc     *SessionService
	owner   *model.User
	roadmap *model.Roadmap
	block   *model.Block
	cards   []*model.Card
}

func newSessionFixture(t *testing.T, cfg *config.Config) *sessionFixture {
	t.Helper()
	env := newTestEnv(t)
	owner := env.seedUser(t, false)
	roadmap := env.seedRoadmap(t, owner.ID)
	block := env.seedBlock(t, roadmap.ID, 1)

	base := time.Now().Add(-time.Hour)
	cards := []*model.Card{
		env.seedCard(t, block.ID, "goroutine", model.CardUnknown, base),
		env.seedCard(t, block.ID, "channel", model.CardReview, base.Add(time.Minute)),
		env.seedCard(t, block.ID, "mutex", model.CardReview, base.Add(2*time.Minute)),
	}

	return &sessionFixture{
		env:     env,
		svc:     NewSessionService(env.sessionRepo, env.access, cfg),
		owner:   owner,
		roadmap: roadmap,
		block:   block,
		cards:   cards,
	}
}

func TestCreateSessionFixesQueueInOrder(t *testing.T) {
	f := newSessionFixture(t, testConfig())

	session, err := f.svc.Create(f.owner, f.roadmap.ID, nil, model.SessionModeExam, false)
	require.NoError(t, err)

	want := []string{f.cards[0].ID, f.cards[1].ID, f.cards[2].ID}
	assert.Equal(t, want, []string(session.CardIDsQueue))
	assert.Equal(t, model.SessionActive, session.Status)
	assert.Equal(t, 0, session.CurrentCardIndex)
}

func TestCreateReviewSessionFiltersByStatus(t *testing.T) {
	f := newSessionFixture(t, testConfig())

	session, err := f.svc.Create(f.owner, f.roadmap.ID, nil, model.SessionModeReview, false)
	require.NoError(t, err)

	want := []string{f.cards[1].ID, f.cards[2].ID}
	assert.Equal(t, want, []string(session.CardIDsQueue))
}

func TestCreateSessionScopedToBlock(t *testing.T) {
	f := newSessionFixture(t, testConfig())
	otherBlock := f.env.seedBlock(t, f.roadmap.ID, 2)
	extra := f.env.seedCard(t, otherBlock.ID, "context", model.CardUnknown, time.Now())

	session, err := f.svc.Create(f.owner, f.roadmap.ID, &otherBlock.ID, model.SessionModeExam, false)
	require.NoError(t, err)
	assert.Equal(t, []string{extra.ID}, []string(session.CardIDsQueue))
}

func TestCreateSessionWithNoCardsFails(t *testing.T) {
	f := newSessionFixture(t, testConfig())
	emptyBlock := f.env.seedBlock(t, f.roadmap.ID, 3)

	_, err := f.svc.Create(f.owner, f.roadmap.ID, &emptyBlock.ID, model.SessionModeExam, false)
	assert.ErrorIs(t, err, util.ErrNotFound)
}

func TestCreateMixedSessionKeepsSameCardSet(t *testing.T) {
	f := newSessionFixture(t, testConfig())

	session, err := f.svc.Create(f.owner, f.roadmap.ID, nil, model.SessionModeExam, true)
	require.NoError(t, err)

	want := []string{f.cards[0].ID, f.cards[1].ID, f.cards[2].ID}
	assert.ElementsMatch(t, want, []string(session.CardIDsQueue))
}

func TestGetNextCardIDDoesNotAdvance(t *testing.T) {
	f := newSessionFixture(t, testConfig())
	session, err := f.svc.Create(f.owner, f.roadmap.ID, nil, model.SessionModeExam, false)
	require.NoError(t, err)

	first, err := f.svc.GetNextCardID(f.owner, session.ID)
	require.NoError(t, err)
	again, err := f.svc.GetNextCardID(f.owner, session.ID)
	require.NoError(t, err)
	assert.Equal(t, first, again)
	assert.Equal(t, f.cards[0].ID, first)
}

func TestSubmitAnswerAdvancesThroughQueue(t *testing.T) {
	f := newSessionFixture(t, testConfig())
	session, err := f.svc.Create(f.owner, f.roadmap.ID, nil, model.SessionModeExam, false)
	require.NoError(t, err)

	updated, err := f.svc.SubmitAnswer(f.owner, session.ID, f.cards[0].ID, model.CardKnown)
	require.NoError(t, err)
	assert.Equal(t, 1, updated.CurrentCardIndex)

	next, err := f.svc.GetNextCardID(f.owner, session.ID)
	require.NoError(t, err)
	assert.Equal(t, f.cards[1].ID, next)

	_, err = f.svc.SubmitAnswer(f.owner, session.ID, f.cards[1].ID, model.CardUnknown)
	require.NoError(t, err)
	updated, err = f.svc.SubmitAnswer(f.owner, session.ID, f.cards[2].ID, model.CardReview)
	require.NoError(t, err)

	// 每次提交恰好累加一个计数器
	total := updated.CorrectAnswers + updated.IncorrectAnswers + updated.ReviewAnswers
	assert.Equal(t, 3, total)
	assert.Equal(t, 1, updated.CorrectAnswers)
	assert.Equal(t, 1, updated.IncorrectAnswers)
	assert.Equal(t, 1, updated.ReviewAnswers)

	_, err = f.svc.GetNextCardID(f.owner, session.ID)
	assert.ErrorIs(t, err, util.ErrQueueExhausted)
}

func TestSubmitAnswerOnFinishedSessionRejected(t *testing.T) {
	f := newSessionFixture(t, testConfig())
	session, err := f.svc.Create(f.owner, f.roadmap.ID, nil, model.SessionModeExam, false)
	require.NoError(t, err)

	_, err = f.svc.Finish(f.owner, session.ID)
	require.NoError(t, err)

	_, err = f.svc.SubmitAnswer(f.owner, session.ID, f.cards[0].ID, model.CardKnown)
	assert.ErrorIs(t, err, util.ErrInvalidState)
}

func TestStrictAnswerCheckRejectsWrongCard(t *testing.T) {
	cfg := testConfig()
	cfg.Session.StrictAnswerCheck = true
	f := newSessionFixture(t, cfg)
	session, err := f.svc.Create(f.owner, f.roadmap.ID, nil, model.SessionModeExam, false)
	require.NoError(t, err)

	_, err = f.svc.SubmitAnswer(f.owner, session.ID, f.cards[2].ID, model.CardKnown)
	assert.ErrorIs(t, err, util.ErrCardMismatch)

	// 匹配队列当前位置时正常通过
	updated, err := f.svc.SubmitAnswer(f.owner, session.ID, f.cards[0].ID, model.CardKnown)
	require.NoError(t, err)
	assert.Equal(t, 1, updated.CurrentCardIndex)
}

func TestStrictAnswerCheckOnExhaustedQueue(t *testing.T) {
	cfg := testConfig()
	cfg.Session.StrictAnswerCheck = true
	f := newSessionFixture(t, cfg)
	session, err := f.svc.Create(f.owner, f.roadmap.ID, &f.block.ID, model.SessionModeReview, false)
	require.NoError(t, err)

	_, err = f.svc.SubmitAnswer(f.owner, session.ID, f.cards[1].ID, model.CardKnown)
	require.NoError(t, err)
	_, err = f.svc.SubmitAnswer(f.owner, session.ID, f.cards[2].ID, model.CardKnown)
	require.NoError(t, err)

	_, err = f.svc.SubmitAnswer(f.owner, session.ID, f.cards[1].ID, model.CardKnown)
	assert.ErrorIs(t, err, util.ErrQueueExhausted)
}

func TestFinishComputesAccuracy(t *testing.T) {
	f := newSessionFixture(t, testConfig())
	session, err := f.svc.Create(f.owner, f.roadmap.ID, nil, model.SessionModeExam, false)
	require.NoError(t, err)

	_, err = f.svc.SubmitAnswer(f.owner, session.ID, f.cards[0].ID, model.CardKnown)
	require.NoError(t, err)
	_, err = f.svc.SubmitAnswer(f.owner, session.ID, f.cards[1].ID, model.CardUnknown)
	require.NoError(t, err)
	_, err = f.svc.SubmitAnswer(f.owner, session.ID, f.cards[2].ID, model.CardReview)
	require.NoError(t, err)

	result, err := f.svc.Finish(f.owner, session.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, result.TotalCards)
	assert.Equal(t, 33.33, result.AccuracyPercentage)
	assert.NotNil(t, result.CompletedAt)
}

func TestFinishWithoutAnswersHasZeroAccuracy(t *testing.T) {
	f := newSessionFixture(t, testConfig())
	session, err := f.svc.Create(f.owner, f.roadmap.ID, nil, model.SessionModeExam, false)
	require.NoError(t, err)

	result, err := f.svc.Finish(f.owner, session.ID)
	require.NoError(t, err)
	assert.Equal(t, 0.0, result.AccuracyPercentage)
}

func TestDoubleFinishRejected(t *testing.T) {
	f := newSessionFixture(t, testConfig())
	session, err := f.svc.Create(f.owner, f.roadmap.ID, nil, model.SessionModeExam, false)
	require.NoError(t, err)

	_, err = f.svc.Finish(f.owner, session.ID)
	require.NoError(t, err)

	_, err = f.svc.Finish(f.owner, session.ID)
	assert.ErrorIs(t, err, util.ErrInvalidState)
}

func TestAbandonIsSoftOnTerminalSession(t *testing.T) {
	f := newSessionFixture(t, testConfig())
	session, err := f.svc.Create(f.owner, f.roadmap.ID, nil, model.SessionModeExam, false)
	require.NoError(t, err)

	abandoned, err := f.svc.Abandon(f.owner, session.ID)
	require.NoError(t, err)
	assert.True(t, abandoned)

	abandoned, err = f.svc.Abandon(f.owner, session.ID)
	require.NoError(t, err)
	assert.False(t, abandoned)
}

func TestSessionHiddenFromOtherUsers(t *testing.T) {
	f := newSessionFixture(t, testConfig())
	other := f.env.seedUser(t, false)
	admin := f.env.seedUser(t, true)

	session, err := f.svc.Create(f.owner, f.roadmap.ID, nil, model.SessionModeExam, false)
	require.NoError(t, err)

	_, err = f.svc.GetByID(other, session.ID)
	assert.ErrorIs(t, err, util.ErrForbidden)

	found, err := f.svc.GetByID(admin, session.ID)
	require.NoError(t, err)
	assert.Equal(t, session.ID, found.ID)

	// 列表查询只返回自己的会话
	sessions, err := f.svc.GetByFilters(other, model.SessionFilters{})
	require.NoError(t, err)
	assert.Empty(t, sessions)
}

func TestCreateSessionOnForeignRoadmapForbidden(t *testing.T) {
	f := newSessionFixture(t, testConfig())
	other := f.env.seedUser(t, false)

	_, err := f.svc.Create(other, f.roadmap.ID, nil, model.SessionModeExam, false)
	assert.ErrorIs(t, err, util.ErrForbidden)
}
