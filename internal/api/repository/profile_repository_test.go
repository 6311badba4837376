package repository

import (
	"context"
	"testing"

	"golang-trading-journal/internal/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfileRepository_UsernameIsUnique(t *testing.T) {
	ctx := context.Background()
	repo := NewProfileRepository(setupTestDB(t))

	alice := &entity.Profile{ID: uuid.New(), Username: "alice", ShowOnLeaderboard: true}
	require.NoError(t, repo.Upsert(ctx, alice))

	alice.DisplayName = "Alice"
	alice.ShowOnLeaderboard = false
	require.NoError(t, repo.Upsert(ctx, alice))

	got, err := repo.FindByID(ctx, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, "Alice", got.DisplayName)
	assert.False(t, got.ShowOnLeaderboard)

	imposter := &entity.Profile{ID: uuid.New(), Username: "alice"}
	assert.ErrorIs(t, repo.Upsert(ctx, imposter), ErrDuplicate)

	bob := &entity.Profile{ID: uuid.New(), Username: "bob", ShowOnLeaderboard: true}
	require.NoError(t, repo.Upsert(ctx, bob))

	visible, err := repo.FindLeaderboardVisible(ctx)
	require.NoError(t, err)
	require.Len(t, visible, 1)
	assert.Equal(t, "bob", visible[0].Username)
}

func TestSquadRepository_OwnerIsEnrolled(t *testing.T) {
	ctx := context.Background()
	repo := NewSquadRepository(setupTestDB(t))
	owner, friend := uuid.New(), uuid.New()

	squad := &entity.Squad{Name: "Morning scalpers", OwnerID: owner}
	require.NoError(t, repo.Create(ctx, squad))

	require.NoError(t, repo.AddMember(ctx, &entity.SquadMember{SquadID: squad.ID, UserID: friend, Role: entity.SquadRoleMember}))
	assert.ErrorIs(t, repo.AddMember(ctx, &entity.SquadMember{SquadID: squad.ID, UserID: friend, Role: entity.SquadRoleMember}), ErrDuplicate)

	got, err := repo.FindByID(ctx, squad.ID)
	require.NoError(t, err)
	require.Len(t, got.Members, 2)
	assert.Equal(t, entity.SquadRoleOwner, got.Members[0].Role)

	ok, err := repo.IsMember(ctx, squad.ID, friend)
	require.NoError(t, err)
	assert.True(t, ok)

	mine, err := repo.FindByMember(ctx, friend)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, squad.ID, mine[0].ID)
}
