package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"
	gormlogger "gorm.io/gorm/logger"
)

func TestConfigRendering(t *testing.T) {
	cfg := Config{Host: "db", Port: 5433, User: "journal", Password: "secret", DBName: "trading", SSLMode: "disable"}

	assert.Equal(t, "host=db port=5433 user=journal password=secret dbname=trading sslmode=disable TimeZone=UTC", cfg.DSN())
	assert.Equal(t, "postgres://journal:secret@db:5433/trading?sslmode=disable", cfg.URL())

	cfg.TimeZone = "Asia/Jakarta"
	assert.Contains(t, cfg.DSN(), "TimeZone=Asia/Jakarta")
}

func TestParseLogLevel(t *testing.T) {
	assert.Equal(t, gormlogger.Silent, parseLogLevel("silent"))
	assert.Equal(t, gormlogger.Error, parseLogLevel("error"))
	assert.Equal(t, gormlogger.Info, parseLogLevel("info"))
	assert.Equal(t, gormlogger.Warn, parseLogLevel(""))
}
