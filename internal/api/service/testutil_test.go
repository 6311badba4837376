package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"golang-trading-journal/internal/api/dto"
	"golang-trading-journal/internal/api/repository"
	"golang-trading-journal/internal/entity"
	"golang-trading-journal/pkg/logger"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

type repos struct {
	trades   repository.TradeRepository
	accounts repository.AccountRepository
	setups   repository.SetupRepository
	journals repository.JournalRepository
	rules    repository.RuleRepository
	profiles repository.ProfileRepository
	squads   repository.SquadRepository
}

func setupRepos(t *testing.T) repos {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(
		&entity.Trade{},
		&entity.Account{},
		&entity.Setup{},
		&entity.DailyJournal{},
		&entity.Profile{},
		&entity.Squad{},
		&entity.SquadMember{},
		&entity.UserRule{},
		&entity.UserRuleCheck{},
	))

	return repos{
		trades:   repository.NewTradeRepository(db),
		accounts: repository.NewAccountRepository(db),
		setups:   repository.NewSetupRepository(db),
		journals: repository.NewJournalRepository(db),
		rules:    repository.NewRuleRepository(db),
		profiles: repository.NewProfileRepository(db),
		squads:   repository.NewSquadRepository(db),
	}
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []TradeEvent
}

func (p *recordingPublisher) Publish(_ context.Context, event TradeEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return nil
}

func (p *recordingPublisher) types() []TradeEventType {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]TradeEventType, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.Type)
	}
	return out
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func dec(v float64) decimal.Decimal {
	return decimal.NewFromFloat(v)
}

func decPtr(v float64) *decimal.Decimal {
	d := decimal.NewFromFloat(v)
	return &d
}

// closedTrade builds a request for a long trade that is opened and closed at the given times.
func closedTrade(symbol string, entry, exit float64, size float64, opened, closed time.Time) *dto.TradeRequest {
	return &dto.TradeRequest{
		Symbol:     symbol,
		Side:       "long",
		EntryTime:  opened,
		EntryPrice: dec(entry),
		EntrySize:  dec(size),
		ExitTime:   &closed,
		ExitPrice:  decPtr(exit),
	}
}

var testLogger = logger.NewNop()
