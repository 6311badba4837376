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

func TestAccountRepository_SingleDefault(t *testing.T) {
	ctx := context.Background()
	repo := NewAccountRepository(setupTestDB(t))
	user := uuid.New()

	first := &entity.Account{UserID: user, Name: "Main", StartingBalance: decimal.NewFromInt(5000), IsDefault: true}
	require.NoError(t, repo.Create(ctx, first))

	second := &entity.Account{UserID: user, Name: "Prop", StartingBalance: decimal.NewFromInt(50000), IsDefault: true}
	require.NoError(t, repo.Create(ctx, second))

	def, err := repo.FindDefault(ctx, user)
	require.NoError(t, err)
	assert.Equal(t, second.ID, def.ID)

	first.IsDefault = true
	require.NoError(t, repo.Update(ctx, first))

	accounts, err := repo.FindAllByUser(ctx, user)
	require.NoError(t, err)
	require.Len(t, accounts, 2)
	defaults := 0
	for _, a := range accounts {
		if a.IsDefault {
			defaults++
			assert.Equal(t, first.ID, a.ID)
		}
	}
	assert.Equal(t, 1, defaults)
}

func TestAccountRepository_DeleteDetachesTrades(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	accounts := NewAccountRepository(db)
	trades := NewTradeRepository(db)
	user := uuid.New()

	acct := &entity.Account{UserID: user, Name: "Main"}
	require.NoError(t, accounts.Create(ctx, acct))

	tr := newTrade(user, "ES", time.Date(2026, 10, 1, 14, 0, 0, 0, time.UTC))
	tr.AccountID = &acct.ID
	require.NoError(t, trades.Create(ctx, tr))

	require.NoError(t, accounts.Delete(ctx, user, acct.ID))

	got, err := trades.FindByID(ctx, user, tr.ID)
	require.NoError(t, err)
	assert.Nil(t, got.AccountID)

	assert.ErrorIs(t, accounts.Delete(ctx, user, acct.ID), ErrNotFound)
}
