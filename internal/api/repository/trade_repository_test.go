package repository

import (
	"context"
	"testing"
	"time"

	"golang-trading-journal/internal/entity"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTradeRepository_CRUDIsScopedToOwner(t *testing.T) {
	ctx := context.Background()
	repo := NewTradeRepository(setupTestDB(t))

	alice, bob := uuid.New(), uuid.New()
	tr := newTrade(alice, "ES", time.Date(2026, 10, 1, 14, 0, 0, 0, time.UTC))
	tr.EmotionTags = []string{"calm", "fomo"}
	require.NoError(t, repo.Create(ctx, tr))
	require.NotEqual(t, uuid.Nil, tr.ID)

	got, err := repo.FindByID(ctx, alice, tr.ID)
	require.NoError(t, err)
	assert.Equal(t, "ES", got.Symbol)
	assert.Equal(t, entity.TradeStatusClosed, got.Status)
	assert.True(t, got.NetPnL.Decimal.Equal(decimal.NewFromInt(10)))
	assert.Equal(t, []string{"calm", "fomo"}, []string(got.EmotionTags))

	_, err = repo.FindByID(ctx, bob, tr.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	assert.ErrorIs(t, repo.Delete(ctx, bob, tr.ID), ErrNotFound)
	require.NoError(t, repo.Delete(ctx, alice, tr.ID))
	_, err = repo.FindByID(ctx, alice, tr.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestTradeRepository_UpdateOverwrites(t *testing.T) {
	ctx := context.Background()
	repo := NewTradeRepository(setupTestDB(t))

	user := uuid.New()
	tr := newTrade(user, "NQ", time.Date(2026, 10, 1, 14, 0, 0, 0, time.UTC))
	require.NoError(t, repo.Create(ctx, tr))

	tr.ExitPrice = decimal.NullDecimal{}
	tr.ExitTime = nil
	tr.Notes = "reopened"
	tr.Derive()
	require.NoError(t, repo.Update(ctx, tr))

	got, err := repo.FindByID(ctx, user, tr.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.TradeStatusOpen, got.Status)
	assert.False(t, got.NetPnL.Valid)
	assert.Nil(t, got.ExitTime)
	assert.Equal(t, "reopened", got.Notes)

	other := *tr
	other.UserID = uuid.New()
	assert.ErrorIs(t, repo.Update(ctx, &other), ErrNotFound)
}

func TestTradeRepository_ReassignAccount(t *testing.T) {
	ctx := context.Background()
	repo := NewTradeRepository(setupTestDB(t))

	user, stranger := uuid.New(), uuid.New()
	base := time.Date(2026, 10, 1, 14, 0, 0, 0, time.UTC)
	mine := []*entity.Trade{newTrade(user, "ES", base), newTrade(user, "NQ", base.Add(time.Hour))}
	theirs := newTrade(stranger, "CL", base)
	for _, tr := range append(mine, theirs) {
		require.NoError(t, repo.Create(ctx, tr))
	}

	account := uuid.New()
	n, err := repo.ReassignAccount(ctx, user, []uuid.UUID{mine[0].ID, mine[1].ID, theirs.ID}, &account)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	all, err := repo.FindAllByUser(ctx, user)
	require.NoError(t, err)
	for _, tr := range all {
		require.NotNil(t, tr.AccountID)
		assert.Equal(t, account, *tr.AccountID)
	}

	untouched, err := repo.FindByID(ctx, stranger, theirs.ID)
	require.NoError(t, err)
	assert.Nil(t, untouched.AccountID)
}

func TestTradeRepository_FindClosedByUsers(t *testing.T) {
	ctx := context.Background()
	repo := NewTradeRepository(setupTestDB(t))

	a, b, c := uuid.New(), uuid.New(), uuid.New()
	base := time.Date(2026, 10, 1, 14, 0, 0, 0, time.UTC)
	open := newTrade(a, "ES", base)
	open.ExitPrice = decimal.NullDecimal{}
	open.ExitTime = nil
	open.Derive()

	require.NoError(t, repo.CreateBatch(ctx, []entity.Trade{
		*newTrade(a, "ES", base),
		*open,
		*newTrade(b, "NQ", base),
		*newTrade(c, "CL", base),
	}))

	got, err := repo.FindClosedByUsers(ctx, []uuid.UUID{a, b})
	require.NoError(t, err)
	assert.Len(t, got, 2)

	none, err := repo.FindClosedByUsers(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, none)

	total, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(4), total)
}
