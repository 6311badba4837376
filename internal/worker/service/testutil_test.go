package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"golang-trading-journal/internal/entity"
	"golang-trading-journal/internal/leaderboard"
	"golang-trading-journal/internal/metrics"
	"golang-trading-journal/internal/worker/config"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func setupDB(t *testing.T) *gorm.DB {
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
	require.NoError(t, db.AutoMigrate(&entity.Trade{}, &entity.Profile{}))
	return db
}

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Metrics.LeaderboardMinTrades = 1
	cfg.Worker.LeaderboardTTL = time.Minute
	cfg.Worker.LeaderboardMaxAge = 10 * time.Minute
	cfg.Worker.RedisStreamTradeEventsMaxIdleDuration = time.Millisecond
	return cfg
}

type memoryStore struct {
	mu        sync.Mutex
	snapshots map[string]*entity.LeaderboardSnapshot
	dirty     bool
}

func newMemoryStore() *memoryStore {
	return &memoryStore{snapshots: make(map[string]*entity.LeaderboardSnapshot)}
}

func (m *memoryStore) Get(_ context.Context, period metrics.Period, metric metrics.Metric) (*entity.LeaderboardSnapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.snapshots[leaderboard.Key(period, metric)]
	if !ok {
		return nil, leaderboard.ErrMiss
	}
	return s, nil
}

func (m *memoryStore) Set(_ context.Context, s *entity.LeaderboardSnapshot, _ time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.snapshots[leaderboard.Key(s.Period, s.Metric)] = s
	return nil
}

func (m *memoryStore) MarkDirty(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.dirty = true
	return nil
}

func (m *memoryStore) TakeDirty(context.Context) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	was := m.dirty
	m.dirty = false
	return was, nil
}

func (m *memoryStore) size() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.snapshots)
}
