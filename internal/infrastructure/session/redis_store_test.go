package session

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/graphgate/graphgate/pkg/constants"
	"github.com/graphgate/graphgate/pkg/logger"
)

func newTestSessionStore(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return NewRedisStore(rdb, time.Hour, logger.NewNoopLogger()), mr
}

func TestSessionRoundTrip(t *testing.T) {
	store, _ := newTestSessionStore(t)
	ctx := context.Background()

	sess := New()
	sess.MSUser = &MSUser{
		Username:    "alice@x.com",
		Name:        "Alice",
		AccessToken: "tok",
		ExpiresOn:   time.Now().Add(time.Hour).UTC().Truncate(time.Second),
		AuthMethod:  constants.AuthMethodExternalToken,
	}
	require.NoError(t, store.Save(ctx, sess))

	got, err := store.Get(ctx, sess.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, sess.ID, got.ID)
	require.NotNil(t, got.MSUser)
	assert.Equal(t, "alice@x.com", got.MSUser.Username)
	assert.Equal(t, constants.AuthMethodExternalToken, got.MSUser.AuthMethod)
	assert.Equal(t, "tok", got.MSUser.AccessToken)
}

func TestSessionMissingReturnsNil(t *testing.T) {
	store, _ := newTestSessionStore(t)

	got, err := store.Get(context.Background(), "nope")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestSessionExpiry(t *testing.T) {
	store, mr := newTestSessionStore(t)
	ctx := context.Background()

	sess := New()
	require.NoError(t, store.Save(ctx, sess))

	mr.FastForward(2 * time.Hour)

	got, err := store.Get(ctx, sess.ID)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestHasValidOAuthToken(t *testing.T) {
	sess := New()
	assert.False(t, sess.HasValidOAuthToken())

	sess.MSUser = &MSUser{AccessToken: "tok", ExpiresOn: time.Now().Add(-time.Minute)}
	assert.False(t, sess.HasValidOAuthToken())

	sess.MSUser.ExpiresOn = time.Now().Add(time.Minute)
	assert.True(t, sess.HasValidOAuthToken())
}
