package repository

import (
	"testing"
	"time"

	"golang-trading-journal/internal/entity"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// every connection to :memory: is a separate database
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
	return db
}

func newTrade(userID uuid.UUID, symbol string, entry time.Time) *entity.Trade {
	exit := entry.Add(time.Hour)
	tr := &entity.Trade{
		UserID:     userID,
		Symbol:     symbol,
		Side:       entity.SideLong,
		EntryTime:  entry,
		EntryPrice: decimal.NewFromInt(100),
		EntrySize:  decimal.NewFromInt(2),
		ExitTime:   &exit,
		ExitPrice:  decimal.NewNullDecimal(decimal.NewFromInt(105)),
		StopLoss:   decimal.NewNullDecimal(decimal.NewFromInt(99)),
	}
	tr.Derive()
	return tr
}
