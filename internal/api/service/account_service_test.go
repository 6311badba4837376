package service

import (
	"context"
	"testing"
	"time"

	"golang-trading-journal/internal/api/dto"
	"golang-trading-journal/internal/api/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccountService_FirstAccountIsDefault(t *testing.T) {
	ctx := context.Background()
	r := setupRepos(t)
	svc := NewAccountService(r.accounts, testLogger)
	user := uuid.New()

	primary, err := svc.CreateAccount(ctx, user, &dto.AccountRequest{Name: "Main", StartingBalance: dec(10000)})
	require.NoError(t, err)
	assert.True(t, primary.IsDefault)
	assert.True(t, primary.CurrentBalance.Equal(dec(10000)), "current balance starts at the starting balance")

	prop, err := svc.CreateAccount(ctx, user, &dto.AccountRequest{Name: "Prop", StartingBalance: dec(50000), CurrentBalance: dec(51000)})
	require.NoError(t, err)
	assert.False(t, prop.IsDefault)
	assert.True(t, prop.CurrentBalance.Equal(dec(51000)))

	_, err = svc.UpdateAccount(ctx, user, prop.ID, &dto.AccountRequest{Name: "Prop", StartingBalance: dec(50000), CurrentBalance: dec(51000), IsDefault: true})
	require.NoError(t, err)

	all, err := svc.GetAllAccounts(ctx, user)
	require.NoError(t, err)
	require.Len(t, all, 2)
	for _, a := range all {
		assert.Equal(t, a.ID == prop.ID, a.IsDefault, "account %s", a.Name)
	}

	_, err = svc.GetAccount(ctx, uuid.New(), primary.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	swing, err := svc.CreateAccount(ctx, user, &dto.AccountRequest{Name: "Swing", StartingBalance: dec(2000)})
	require.NoError(t, err)

	// deleting the default hands it to the oldest remaining account
	require.NoError(t, svc.DeleteAccount(ctx, user, prop.ID))
	assertDefault(t, svc, user, primary.ID, 2)

	require.NoError(t, svc.DeleteAccount(ctx, user, primary.ID))
	assertDefault(t, svc, user, swing.ID, 1)
	assert.ErrorIs(t, svc.DeleteAccount(ctx, user, primary.ID), repository.ErrNotFound)

	require.NoError(t, svc.DeleteAccount(ctx, user, swing.ID))
	all, err = svc.GetAllAccounts(ctx, user)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func assertDefault(t *testing.T, svc AccountService, user, want uuid.UUID, count int) {
	t.Helper()
	all, err := svc.GetAllAccounts(context.Background(), user)
	require.NoError(t, err)
	require.Len(t, all, count)
	defaults := 0
	for _, a := range all {
		if a.IsDefault {
			defaults++
			assert.Equal(t, want, a.ID)
		}
	}
	assert.Equal(t, 1, defaults)
}

func TestSetupService_StatsComputedOnRead(t *testing.T) {
	ctx := context.Background()
	svc, r, _ := newTestTradeService(t)
	setups := NewSetupService(r.setups, r.trades, testLogger)
	user := uuid.New()

	breakout, err := setups.CreateSetup(ctx, user, &dto.SetupRequest{Name: "Breakout"})
	require.NoError(t, err)
	assert.Zero(t, breakout.Stats.TotalTrades)
	fade, err := setups.CreateSetup(ctx, user, &dto.SetupRequest{Name: "Fade"})
	require.NoError(t, err)

	opened := time.Date(2024, 3, 4, 14, 30, 0, 0, time.UTC)
	for _, exit := range []float64{110, 95, 120} {
		req := closedTrade("AAPL", 100, exit, 1, opened, opened.Add(time.Hour))
		req.SetupID = &breakout.ID
		_, err := svc.CreateTrade(ctx, user, req)
		require.NoError(t, err)
	}
	_, err = svc.CreateTrade(ctx, user, closedTrade("AAPL", 100, 101, 1, opened, opened.Add(time.Hour)))
	require.NoError(t, err)

	got, err := setups.GetSetup(ctx, user, breakout.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, got.Stats.TotalTrades)
	assert.Equal(t, 2, got.Stats.Wins)
	assert.InDelta(t, 25, got.Stats.TotalPnL, 1e-9)

	all, err := setups.GetAllSetups(ctx, user)
	require.NoError(t, err)
	require.Len(t, all, 2)
	for _, s := range all {
		switch s.ID {
		case breakout.ID:
			assert.Equal(t, 3, s.Stats.TotalTrades)
		case fade.ID:
			assert.Zero(t, s.Stats.TotalTrades)
		}
	}

	renamed, err := setups.UpdateSetup(ctx, user, breakout.ID, &dto.SetupRequest{Name: "Opening range breakout"})
	require.NoError(t, err)
	assert.Equal(t, "Opening range breakout", renamed.Name)
	assert.Equal(t, 3, renamed.Stats.TotalTrades)

	require.NoError(t, setups.DeleteSetup(ctx, user, breakout.ID))
	trades, err := r.trades.FindAllByUser(ctx, user)
	require.NoError(t, err)
	require.Len(t, trades, 4)
	for _, tr := range trades {
		assert.Nil(t, tr.SetupID)
	}
}
