package service

import (
	"testing"

	"roadmap_learner_backend/internal/model"
	"roadmap_learner_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoadmapCRUDRespectsOwnership(t *testing.T) {
	env := newTestEnv(t)
	svc := NewRoadmapService(env.roadmapRepo, env.access)
	owner := env.seedUser(t, false)
	other := env.seedUser(t, false)

	roadmap, err := svc.Create(owner, "Go 进阶", "从并发到泛型")
	require.NoError(t, err)
	assert.Equal(t, owner.ID, roadmap.UserID)
	assert.Equal(t, model.RoadmapDraft, roadmap.Status)

	// 资源存在但归属他人时报 403 而不是 404
	_, err = svc.GetByID(other, roadmap.ID)
	assert.ErrorIs(t, err, util.ErrForbidden)

	_, err = svc.GetByID(owner, model.GenerateUUID())
	assert.ErrorIs(t, err, util.ErrNotFound)

	updated, err := svc.Update(owner, roadmap.ID, map[string]interface{}{"status": string(model.RoadmapActive)})
	require.NoError(t, err)
	assert.Equal(t, model.RoadmapActive, updated.Status)

	_, err = svc.Update(other, roadmap.ID, map[string]interface{}{"title": "hijacked"})
	assert.ErrorIs(t, err, util.ErrForbidden)

	err = svc.Delete(other, roadmap.ID)
	assert.ErrorIs(t, err, util.ErrForbidden)

	require.NoError(t, svc.Delete(owner, roadmap.ID))
	_, err = svc.GetByID(owner, roadmap.ID)
	assert.ErrorIs(t, err, util.ErrNotFound)
}

func TestBlockCreateVerifiesParentRoadmap(t *testing.T) {
	env := newTestEnv(t)
	svc := NewBlockService(env.blockRepo, env.access)
	owner := env.seedUser(t, false)
	other := env.seedUser(t, false)
	roadmap := env.seedRoadmap(t, owner.ID)

	block, err := svc.Create(owner, roadmap.ID, "泛型", "", 1.5)
	require.NoError(t, err)
	assert.Equal(t, roadmap.ID, block.RoadmapID)
	assert.Equal(t, model.BlockDraft, block.Status)

	_, err = svc.Create(other, roadmap.ID, "入侵", "", 1)
	assert.ErrorIs(t, err, util.ErrForbidden)

	_, err = svc.Create(owner, model.GenerateUUID(), "孤儿", "", 1)
	assert.ErrorIs(t, err, util.ErrNotFound)
}

func TestCardCreateVerifiesBlockChain(t *testing.T) {
	env := newTestEnv(t)
	svc := NewCardService(env.cardRepo, env.access)
	owner := env.seedUser(t, false)
	other := env.seedUser(t, false)
	roadmap := env.seedRoadmap(t, owner.ID)
	block := env.seedBlock(t, roadmap.ID, 1)

	card, err := svc.Create(owner, block.ID, "interface", "方法集合约定", "io.Reader", "")
	require.NoError(t, err)
	assert.Equal(t, model.CardUnknown, card.Status)

	_, err = svc.Create(other, block.ID, "入侵", "x", "", "")
	assert.ErrorIs(t, err, util.ErrForbidden)

	// 学习状态通过更新流转
	updated, err := svc.Update(owner, card.ID, map[string]interface{}{"status": string(model.CardReview)})
	require.NoError(t, err)
	assert.Equal(t, model.CardReview, updated.Status)

	cards, err := svc.GetByFilters(other, model.CardFilters{})
	require.NoError(t, err)
	assert.Empty(t, cards)
}

func TestBlockListOrderedByOrderIndex(t *testing.T) {
	env := newTestEnv(t)
	svc := NewBlockService(env.blockRepo, env.access)
	owner := env.seedUser(t, false)
	roadmap := env.seedRoadmap(t, owner.ID)

	b2 := env.seedBlock(t, roadmap.ID, 2)
	b1 := env.seedBlock(t, roadmap.ID, 1)
	b15 := env.seedBlock(t, roadmap.ID, 1.5)

	blocks, err := svc.GetByFilters(owner, model.BlockFilters{RoadmapID: &roadmap.ID})
	require.NoError(t, err)
	require.Len(t, blocks, 3)
	assert.Equal(t, []string{b1.ID, b15.ID, b2.ID}, []string{blocks[0].ID, blocks[1].ID, blocks[2].ID})
}
