package services

import (
	"context"
	"testing"

	"github.com/anonto42/simple-twitter/backend/internal/models"
	"github.com/anonto42/simple-twitter/backend/internal/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type followFixture struct {
	svc      *FollowService
	follows  *repositories.PostgresFollowshipRepository
	notifier *recordingNotifier
	alice    *models.User
	bob      *models.User
}

func newFollowFixture(t *testing.T) *followFixture {
	t.Helper()
	ctx := context.Background()
	db := newTestDB(t)
	users := repositories.NewPostgresUserRepository(db)
	follows := repositories.NewPostgresFollowshipRepository(db)

	alice := &models.User{Account: "alice", Email: "alice@example.com", Role: models.RoleUser}
	bob := &models.User{Account: "bob", Email: "bob@example.com", Role: models.RoleUser}
	require.NoError(t, users.CreateUser(ctx, alice))
	require.NoError(t, users.CreateUser(ctx, bob))

	notifier := &recordingNotifier{}
	return &followFixture{
		svc:      NewFollowService(follows, users, notifier),
		follows:  follows,
		notifier: notifier,
		alice:    alice,
		bob:      bob,
	}
}

func TestFollowService_Follow(t *testing.T) {
	ctx := context.Background()
	f := newFollowFixture(t)

	result, err := f.svc.Follow(ctx, f.alice.ID, f.bob.ID)
	require.NoError(t, err)
	assert.Equal(t, f.alice.ID, result.FollowerID)
	assert.Equal(t, f.bob.ID, result.FollowingID)

	require.Len(t, f.notifier.sent, 1)
	assert.Equal(t, models.NotificationFollow, f.notifier.sent[0].kind)
	assert.Equal(t, f.bob.ID, f.notifier.sent[0].recipient)
}

func TestFollowService_DoubleFollowConflicts(t *testing.T) {
	ctx := context.Background()
	f := newFollowFixture(t)

	_, err := f.svc.Follow(ctx, f.alice.ID, f.bob.ID)
	require.NoError(t, err)

	_, err = f.svc.Follow(ctx, f.alice.ID, f.bob.ID)
	assert.ErrorIs(t, err, ErrConflict)

	followers, err := f.svc.ListFollowers(ctx, f.bob.ID)
	require.NoError(t, err)
	assert.Len(t, followers, 1)
}

func TestFollowService_FollowMissingUser(t *testing.T) {
	f := newFollowFixture(t)

	_, err := f.svc.Follow(context.Background(), f.alice.ID, 999)
	assert.ErrorIs(t, err, ErrNotFound)

	followings, err := f.svc.ListFollowing(context.Background(), f.alice.ID)
	require.NoError(t, err)
	assert.Empty(t, followings)
	assert.Empty(t, f.notifier.sent)
}

func TestFollowService_Unfollow(t *testing.T) {
	ctx := context.Background()
	f := newFollowFixture(t)

	_, err := f.svc.Follow(ctx, f.alice.ID, f.bob.ID)
	require.NoError(t, err)
	edge, err := f.follows.GetFollowship(ctx, f.alice.ID, f.bob.ID)
	require.NoError(t, err)

	require.NoError(t, f.svc.Unfollow(ctx, edge.ID))
	assert.ErrorIs(t, f.svc.Unfollow(ctx, edge.ID), ErrNotFound)

	following, err := f.svc.ListFollowing(ctx, f.alice.ID)
	require.NoError(t, err)
	assert.NotNil(t, following)
	assert.Empty(t, following)

	// Following again after an unfollow is allowed.
	_, err = f.svc.Follow(ctx, f.alice.ID, f.bob.ID)
	require.NoError(t, err)
	require.NoError(t, f.svc.UnfollowUser(ctx, f.alice.ID, f.bob.ID))
	assert.ErrorIs(t, f.svc.UnfollowUser(ctx, f.alice.ID, f.bob.ID), ErrNotFound)
}

func TestFollowService_Lists(t *testing.T) {
	ctx := context.Background()
	f := newFollowFixture(t)

	_, err := f.svc.Follow(ctx, f.alice.ID, f.bob.ID)
	require.NoError(t, err)
	_, err = f.svc.Follow(ctx, f.bob.ID, f.alice.ID)
	require.NoError(t, err)

	following, err := f.svc.ListFollowing(ctx, f.alice.ID)
	require.NoError(t, err)
	require.Len(t, following, 1)
	assert.Equal(t, f.bob.ID, following[0].FollowingID)

	followers, err := f.svc.ListFollowers(ctx, f.alice.ID)
	require.NoError(t, err)
	require.Len(t, followers, 1)
	assert.Equal(t, f.bob.ID, followers[0].FollowerID)
}
