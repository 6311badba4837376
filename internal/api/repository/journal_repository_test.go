package repository

import (
	"context"
	"testing"

	"golang-trading-journal/internal/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJournalRepository_UpsertKeepsOneEntryPerDay(t *testing.T) {
	ctx := context.Background()
	repo := NewJournalRepository(setupTestDB(t))
	user := uuid.New()
	mood := 4

	require.NoError(t, repo.Upsert(ctx, &entity.DailyJournal{
		UserID:         user,
		Date:           "2026-10-01",
		PreMarketNotes: "watch CPI",
		Goals:          []entity.JournalGoal{{Text: "no revenge trades"}},
	}))
	require.NoError(t, repo.Upsert(ctx, &entity.DailyJournal{
		UserID:      user,
		Date:        "2026-10-01",
		Lessons:     "sized too big",
		MoodRating:  &mood,
		Goals:       []entity.JournalGoal{{Text: "no revenge trades", Done: true}},
	}))
	require.NoError(t, repo.Upsert(ctx, &entity.DailyJournal{UserID: user, Date: "2026-10-03"}))

	got, err := repo.FindByDate(ctx, user, "2026-10-01")
	require.NoError(t, err)
	assert.Empty(t, got.PreMarketNotes)
	assert.Equal(t, "sized too big", got.Lessons)
	require.NotNil(t, got.MoodRating)
	assert.Equal(t, 4, *got.MoodRating)
	require.Len(t, got.Goals, 1)
	assert.True(t, got.Goals[0].Done)

	all, err := repo.FindRange(ctx, user, "", "")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	ranged, err := repo.FindRange(ctx, user, "2026-10-02", "2026-10-31")
	require.NoError(t, err)
	require.Len(t, ranged, 1)
	assert.Equal(t, "2026-10-03", ranged[0].Date)

	_, err = repo.FindByDate(ctx, uuid.New(), "2026-10-01")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRuleRepository_ChecksUpsertPerDay(t *testing.T) {
	ctx := context.Background()
	repo := NewRuleRepository(setupTestDB(t))
	user := uuid.New()

	rule := &entity.UserRule{UserID: user, Title: "Stop loss on every trade", IsActive: true}
	require.NoError(t, repo.Create(ctx, rule))

	require.NoError(t, repo.UpsertCheck(ctx, &entity.UserRuleCheck{UserID: user, RuleID: rule.ID, Date: "2026-10-01", Followed: false}))
	require.NoError(t, repo.UpsertCheck(ctx, &entity.UserRuleCheck{UserID: user, RuleID: rule.ID, Date: "2026-10-01", Followed: true}))
	require.NoError(t, repo.UpsertCheck(ctx, &entity.UserRuleCheck{UserID: user, RuleID: rule.ID, Date: "2026-10-02", Followed: false}))

	checks, err := repo.FindChecks(ctx, user, "2026-10-01", "2026-10-01")
	require.NoError(t, err)
	require.Len(t, checks, 1)
	assert.True(t, checks[0].Followed)

	require.NoError(t, repo.Delete(ctx, user, rule.ID))
	checks, err = repo.FindChecks(ctx, user, "", "")
	require.NoError(t, err)
	assert.Empty(t, checks)
}
