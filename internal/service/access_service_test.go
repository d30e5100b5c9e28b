package service

import (
	"testing"
	"time"

	"roadmap_learner_backend/internal/model"
	"roadmap_learner_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilterRoadmapsInjectsCallerID(t *testing.T) {
	env := newTestEnv(t)
	owner := env.seedUser(t, false)

	filters, err := env.access.FilterRoadmapsForUser(owner, model.RoadmapFilters{})
	require.NoError(t, err)
	require.NotNil(t, filters.UserID)
	assert.Equal(t, owner.ID, *filters.UserID)
}

func TestFilterRoadmapsKeepsOwnPin(t *testing.T) {
	env := newTestEnv(t)
	owner := env.seedUser(t, false)

	filters, err := env.access.FilterRoadmapsForUser(owner, model.RoadmapFilters{UserID: &owner.ID})
	require.NoError(t, err)
	assert.Equal(t, owner.ID, *filters.UserID)
}

func TestFilterRoadmapsForbidsForeignPin(t *testing.T) {
	env := newTestEnv(t)
	owner := env.seedUser(t, false)
	other := env.seedUser(t, false)

	_, err := env.access.FilterRoadmapsForUser(owner, model.RoadmapFilters{UserID: &other.ID})
	assert.ErrorIs(t, err, util.ErrForbidden)
}

func TestFilterRoadmapsSuperuserPassthrough(t *testing.T) {
	env := newTestEnv(t)
	admin := env.seedUser(t, true)
	other := env.seedUser(t, false)

	filters, err := env.access.FilterRoadmapsForUser(admin, model.RoadmapFilters{UserID: &other.ID})
	require.NoError(t, err)
	assert.Equal(t, other.ID, *filters.UserID)

	// 未限定时超级用户的查询不被注入
	filters, err = env.access.FilterRoadmapsForUser(admin, model.RoadmapFilters{})
	require.NoError(t, err)
	assert.Nil(t, filters.UserID)
}

func TestFilterBlocksVerifiesRoadmapOwnership(t *testing.T) {
	env := newTestEnv(t)
	owner := env.seedUser(t, false)
	other := env.seedUser(t, false)
	roadmap := env.seedRoadmap(t, other.ID)

	_, err := env.access.FilterBlocksForUser(owner, model.BlockFilters{RoadmapID: &roadmap.ID})
	assert.ErrorIs(t, err, util.ErrForbidden)

	missing := model.GenerateUUID()
	_, err = env.access.FilterBlocksForUser(owner, model.BlockFilters{RoadmapID: &missing})
	assert.ErrorIs(t, err, util.ErrNotFound)
}

func TestFilterBlocksInjectsOwnedRoadmapIDs(t *testing.T) {
	env := newTestEnv(t)
	owner := env.seedUser(t, false)
	other := env.seedUser(t, false)
	mine := env.seedRoadmap(t, owner.ID)
	env.seedRoadmap(t, other.ID)

	filters, err := env.access.FilterBlocksForUser(owner, model.BlockFilters{})
	require.NoError(t, err)
	assert.Equal(t, []string{mine.ID}, filters.RoadmapIDs)
}

func TestFilterBlocksEmptyOwnershipYieldsNoBlocks(t *testing.T) {
	env := newTestEnv(t)
	owner := env.seedUser(t, false)
	other := env.seedUser(t, false)
	roadmap := env.seedRoadmap(t, other.ID)
	env.seedBlock(t, roadmap.ID, 1)

	filters, err := env.access.FilterBlocksForUser(owner, model.BlockFilters{})
	require.NoError(t, err)
	require.NotNil(t, filters.RoadmapIDs)
	assert.Empty(t, filters.RoadmapIDs)

	// 一无所有的调用者不能看到任何 block
	blocks, err := env.blockRepo.GetByFilters(filters)
	require.NoError(t, err)
	assert.Empty(t, blocks)
}

func TestFilterCardsResolvesRoadmapToBlockIDs(t *testing.T) {
	env := newTestEnv(t)
	owner := env.seedUser(t, false)
	roadmap := env.seedRoadmap(t, owner.ID)
	b1 := env.seedBlock(t, roadmap.ID, 1)
	b2 := env.seedBlock(t, roadmap.ID, 2)

	filters, err := env.access.FilterCardsForUser(owner, model.CardFilters{RoadmapID: &roadmap.ID})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{b1.ID, b2.ID}, filters.BlockIDs)
}

func TestFilterCardsForbidsForeignBlockPin(t *testing.T) {
	env := newTestEnv(t)
	owner := env.seedUser(t, false)
	other := env.seedUser(t, false)
	roadmap := env.seedRoadmap(t, other.ID)
	block := env.seedBlock(t, roadmap.ID, 1)

	_, err := env.access.FilterCardsForUser(owner, model.CardFilters{BlockID: &block.ID})
	assert.ErrorIs(t, err, util.ErrForbidden)
}

func TestFilterCardsFilterIsIdempotent(t *testing.T) {
	env := newTestEnv(t)
	owner := env.seedUser(t, false)
	roadmap := env.seedRoadmap(t, owner.ID)
	env.seedBlock(t, roadmap.ID, 1)

	once, err := env.access.FilterCardsForUser(owner, model.CardFilters{})
	require.NoError(t, err)

	twice, err := env.access.FilterCardsForUser(owner, once)
	require.NoError(t, err)
	assert.Equal(t, once, twice)
}

func TestEnsureCanViewCardWalksChain(t *testing.T) {
	env := newTestEnv(t)
	owner := env.seedUser(t, false)
	other := env.seedUser(t, false)
	admin := env.seedUser(t, true)
	roadmap := env.seedRoadmap(t, owner.ID)
	block := env.seedBlock(t, roadmap.ID, 1)
	card := env.seedCard(t, block.ID, "goroutine", model.CardUnknown, time.Now())

	assert.NoError(t, env.access.EnsureCanViewCard(owner, card))
	assert.ErrorIs(t, env.access.EnsureCanViewCard(other, card), util.ErrForbidden)
	assert.NoError(t, env.access.EnsureCanViewCard(admin, card))
}

func TestEnsureCanViewCardMissingAncestor(t *testing.T) {
	env := newTestEnv(t)
	owner := env.seedUser(t, false)
	card := &model.Card{BlockID: model.GenerateUUID()}

	assert.ErrorIs(t, env.access.EnsureCanViewCard(owner, card), util.ErrNotFound)
}

func TestGetCardsForSessionPreservesRepositoryOrder(t *testing.T) {
	env := newTestEnv(t)
	owner := env.seedUser(t, false)
	roadmap := env.seedRoadmap(t, owner.ID)
	block := env.seedBlock(t, roadmap.ID, 1)

	base := time.Now().Add(-time.Hour)
	c1 := env.seedCard(t, block.ID, "channel", model.CardUnknown, base)
	c2 := env.seedCard(t, block.ID, "mutex", model.CardKnown, base.Add(time.Minute))
	c3 := env.seedCard(t, block.ID, "select", model.CardReview, base.Add(2*time.Minute))

	ids, err := env.access.GetCardsForSession(owner, model.CardFilters{RoadmapID: &roadmap.ID})
	require.NoError(t, err)
	assert.Equal(t, []string{c1.ID, c2.ID, c3.ID}, ids)
}

func TestGetCardsForSessionEmptyScopeIsNotFound(t *testing.T) {
	env := newTestEnv(t)
	owner := env.seedUser(t, false)
	roadmap := env.seedRoadmap(t, owner.ID)
	env.seedBlock(t, roadmap.ID, 1)

	_, err := env.access.GetCardsForSession(owner, model.CardFilters{RoadmapID: &roadmap.ID})
	assert.ErrorIs(t, err, util.ErrNotFound)
}
