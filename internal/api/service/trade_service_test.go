package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"golang-trading-journal/internal/api/dto"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTradeService(t *testing.T) (TradeService, repos, *recordingPublisher) {
	r := setupRepos(t)
	pub := &recordingPublisher{}
	return NewTradeService(r.trades, r.accounts, r.setups, r.profiles, pub, "UTC", testLogger), r, pub
}

func TestTradeService_CreateDerivesAndPublishes(t *testing.T) {
	ctx := context.Background()
	svc, _, pub := newTestTradeService(t)
	user := uuid.New()

	opened := time.Date(2024, 3, 4, 14, 30, 0, 0, time.UTC)
	req := closedTrade(" aapl ", 100, 110, 10, opened, opened.Add(time.Hour))
	req.StopLoss = decPtr(95)
	req.Commission = dec(2)
	req.Fees = dec(1)

	got, err := svc.CreateTrade(ctx, user, req)
	require.NoError(t, err)

	assert.Equal(t, "AAPL", got.Symbol)
	assert.Equal(t, "closed", got.Status)
	require.NotNil(t, got.NetPnL)
	assert.True(t, got.NetPnL.Equal(dec(97)), "net = 100 gross - 3 costs, got %s", got.NetPnL)
	require.NotNil(t, got.RMultiple)
	assert.True(t, got.RMultiple.Equal(dec(1.94)), "r = 97 / 50, got %s", got.RMultiple)
	assert.Equal(t, []TradeEventType{TradeEventCreated}, pub.types())
}

func TestTradeService_RejectsForeignReferences(t *testing.T) {
	ctx := context.Background()
	svc, _, pub := newTestTradeService(t)

	req := closedTrade("ES", 5000, 5010, 1, time.Now().Add(-time.Hour), time.Now())
	req.AccountID = ptrUUID(uuid.New())

	_, err := svc.CreateTrade(ctx, uuid.New(), req)
	assert.ErrorIs(t, err, ErrValidation)
	assert.Empty(t, pub.types())
}

func TestTradeService_Validation(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestTradeService(t)
	opened := time.Date(2024, 3, 4, 14, 30, 0, 0, time.UTC)

	tests := []struct {
		name   string
		mutate func(*dto.TradeRequest)
	}{
		{"bad side", func(r *dto.TradeRequest) { r.Side = "flat" }},
		{"zero entry price", func(r *dto.TradeRequest) { r.EntryPrice = dec(0) }},
		{"exit before entry", func(r *dto.TradeRequest) { r.ExitTime = &opened; r.EntryTime = opened.Add(time.Minute) }},
		{"negative fees", func(r *dto.TradeRequest) { r.Fees = dec(-1) }},
		{"long symbol", func(r *dto.TradeRequest) { r.Symbol = strings.Repeat("X", 40) }},
		{"too many emotion tags", func(r *dto.TradeRequest) { r.EmotionTags = make([]string, 21) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := closedTrade("NQ", 100, 101, 1, opened, opened.Add(time.Hour))
			tt.mutate(req)
			_, err := svc.CreateTrade(ctx, uuid.New(), req)
			assert.ErrorIs(t, err, ErrValidation)
		})
	}
}

func TestTradeService_UpdateUnknownTrade(t *testing.T) {
	svc, _, _ := newTestTradeService(t)
	opened := time.Now().Add(-time.Hour)

	_, err := svc.UpdateTrade(context.Background(), uuid.New(), uuid.New(), closedTrade("X", 1, 2, 1, opened, time.Now()))
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestTradeService_ListFiltersAndPaginates(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestTradeService(t)
	user := uuid.New()

	day := time.Date(2024, 5, 1, 15, 0, 0, 0, time.UTC)
	for i, sym := range []string{"AAPL", "MSFT", "AAPL", "TSLA", "AAPL"} {
		opened := day.AddDate(0, 0, i)
		req := closedTrade(sym, 100, 101, 1, opened, opened.Add(time.Hour))
		if i == 2 {
			req.Notes = "Chased the breakout"
		}
		_, err := svc.CreateTrade(ctx, user, req)
		require.NoError(t, err)
	}

	t.Run("symbol is case insensitive", func(t *testing.T) {
		res, err := svc.ListTrades(ctx, user, &dto.TradeListQuery{Symbol: "aapl"})
		require.NoError(t, err)
		assert.Equal(t, 3, res.Total)
	})

	t.Run("inclusive date range", func(t *testing.T) {
		res, err := svc.ListTrades(ctx, user, &dto.TradeListQuery{From: "2024-05-02", To: "2024-05-04"})
		require.NoError(t, err)
		assert.Equal(t, 3, res.Total)
	})

	t.Run("free text over notes", func(t *testing.T) {
		res, err := svc.ListTrades(ctx, user, &dto.TradeListQuery{Search: "BREAKOUT"})
		require.NoError(t, err)
		require.Equal(t, 1, res.Total)
		assert.Equal(t, "AAPL", res.Data[0].Symbol)
	})

	t.Run("page past the end is empty", func(t *testing.T) {
		res, err := svc.ListTrades(ctx, user, &dto.TradeListQuery{Page: 3, PerPage: 2})
		require.NoError(t, err)
		assert.Equal(t, 5, res.Total)
		assert.Len(t, res.Data, 1)

		res, err = svc.ListTrades(ctx, user, &dto.TradeListQuery{Page: 4, PerPage: 2})
		require.NoError(t, err)
		assert.Empty(t, res.Data)
	})
}

func TestTradeService_ImportCSV(t *testing.T) {
	ctx := context.Background()
	svc, r, pub := newTestTradeService(t)
	user := uuid.New()

	csv := strings.Join([]string{
		"Symbol,Direction,Entry Date,Entry Price,Qty,Exit Date,Exit Price,Commission",
		"aapl,buy,2024-01-02 09:30,100,10,2024-01-02 10:00,$105,1.00",
		"msft,sideways,2024-01-02 09:30,100,10,,,",
		"tsla,sell,2024-01-03,200,5,2024-01-03,190,",
	}, "\n")

	res, err := svc.ImportCSV(ctx, user, strings.NewReader(csv))
	require.NoError(t, err)
	assert.Equal(t, 2, res.Imported)
	assert.Equal(t, 1, res.Failed)
	require.Len(t, res.Errors, 1)
	assert.Equal(t, 2, res.Errors[0].Row)

	stored, err := r.trades.FindAllByUser(ctx, user)
	require.NoError(t, err)
	assert.Len(t, stored, 2)
	assert.Equal(t, []TradeEventType{TradeEventImported}, pub.types())
}

func TestTradeService_ImportCSVRejectsOverlongFields(t *testing.T) {
	ctx := context.Background()
	svc, r, _ := newTestTradeService(t)
	user := uuid.New()

	csv := strings.Join([]string{
		"Symbol,Side,Entry Date,Entry Price,Qty,Session",
		"ES,long,2024-01-02 09:30,100,1,NY",
		strings.Repeat("X", 40) + ",long,2024-01-02 09:30,100,1,NY",
		"NQ,short,2024-01-02 09:30,100,1," + strings.Repeat("s", 40),
	}, "\n")

	res, err := svc.ImportCSV(ctx, user, strings.NewReader(csv))
	require.NoError(t, err)
	assert.Equal(t, 1, res.Imported)
	assert.Equal(t, 2, res.Failed)
	require.Len(t, res.Errors, 2)
	assert.Equal(t, 2, res.Errors[0].Row)
	assert.Contains(t, res.Errors[0].Error, "symbol: max=32")
	assert.Equal(t, 3, res.Errors[1].Row)
	assert.Contains(t, res.Errors[1].Error, "session: max=32")

	stored, err := r.trades.FindAllByUser(ctx, user)
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, "ES", stored[0].Symbol)
}

func TestTradeService_ImportCSVMissingColumns(t *testing.T) {
	svc, _, _ := newTestTradeService(t)

	_, err := svc.ImportCSV(context.Background(), uuid.New(), strings.NewReader("symbol,side\nAAPL,long\n"))
	assert.ErrorIs(t, err, ErrValidation)
}

func TestTradeService_ReassignAccount(t *testing.T) {
	ctx := context.Background()
	svc, r, _ := newTestTradeService(t)
	accounts := NewAccountService(r.accounts, testLogger)
	user := uuid.New()

	acc, err := accounts.CreateAccount(ctx, user, &dto.AccountRequest{Name: "Futures", StartingBalance: dec(5000)})
	require.NoError(t, err)

	opened := time.Now().Add(-2 * time.Hour)
	created, err := svc.CreateTrade(ctx, user, closedTrade("ES", 1, 2, 1, opened, opened.Add(time.Hour)))
	require.NoError(t, err)

	res, err := svc.ReassignAccount(ctx, user, &dto.ReassignAccountRequest{TradeIDs: []uuid.UUID{created.ID}, AccountID: &acc.ID})
	require.NoError(t, err)
	assert.EqualValues(t, 1, res.Updated)

	got, err := svc.GetTrade(ctx, user, created.ID)
	require.NoError(t, err)
	require.NotNil(t, got.AccountID)
	assert.Equal(t, acc.ID, *got.AccountID)
}

func ptrUUID(id uuid.UUID) *uuid.UUID { return &id }
