package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewRequestID_SortableAndUnique(t *testing.T) {
	seen := make(map[string]struct{})
	prev := ""
	for i := 0; i < 1000; i++ {
		id := NewRequestID()
		assert.Len(t, id, 26)
		assert.GreaterOrEqual(t, id, prev)
		_, dup := seen[id]
		assert.False(t, dup)
		seen[id] = struct{}{}
		prev = id
	}
}

func TestGoSafe_RecoversPanics(t *testing.T) {
	done := make(chan struct{})
	GoSafe(func() {
		defer close(done)
		panic("boom")
	})
	<-done
}

func TestToPointer(t *testing.T) {
	p := ToPointer(42)
	assert.Equal(t, 42, *p)
}

func TestLoadLocation(t *testing.T) {
	assert.Equal(t, time.UTC, LoadLocation(""))
	assert.Equal(t, time.UTC, LoadLocation("Mars/Olympus"))
	assert.Equal(t, "America/New_York", LoadLocation("America/New_York").String())
}

func TestDates(t *testing.T) {
	ny := LoadLocation("America/New_York")
	// 02:30 UTC on the 5th is still the 4th in New York.
	at := time.Date(2024, 3, 5, 2, 30, 0, 0, time.UTC)

	assert.Equal(t, "2024-03-04", FormatDate(at, ny))
	assert.Equal(t, "2024-03-05", FormatDate(at, time.UTC))

	start := StartOfDay(at, ny)
	assert.Equal(t, time.Date(2024, 3, 4, 0, 0, 0, 0, ny), start)

	parsed, err := ParseDate("2024-03-04", ny)
	assert.NoError(t, err)
	assert.True(t, parsed.Equal(start))

	_, err = ParseDate("2024-13-01", ny)
	assert.Error(t, err)
}
