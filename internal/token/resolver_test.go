package token

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/graphgate/graphgate/internal/infrastructure/session"
	"github.com/graphgate/graphgate/pkg/constants"
	apperrors "github.com/graphgate/graphgate/pkg/errors"
	"github.com/graphgate/graphgate/pkg/logger"
)

func newTestResolver(t *testing.T) (*Resolver, *Store) {
	t.Helper()
	store, _ := newTestStore()
	validator := newTestValidator(defaultGraphConfig())
	return NewResolver(store, validator, logger.NewNoopLogger()), store
}

func sessionWithOAuth(username string, expires time.Time) *session.Session {
	sess := session.New()
	sess.MSUser = &session.MSUser{
		Username:    username,
		AccessToken: "session-token",
		ExpiresOn:   expires,
		AuthMethod:  constants.AuthMethodOAuth,
	}
	return sess
}

func TestPrincipalPrecedence(t *testing.T) {
	sess := sessionWithOAuth("alice@x.com", time.Now().Add(time.Hour))

	// Middleware user id wins.
	req := Request{AuthUserID: "ms365:bob@x.com", Session: sess}
	assert.Equal(t, "ms365:bob@x.com", req.PrincipalID())

	// Then the session's Microsoft account.
	req = Request{Session: sess}
	assert.Equal(t, "ms365:alice@x.com", req.PrincipalID())

	// Then the bare session id.
	anon := session.New()
	req = Request{Session: anon}
	assert.Equal(t, "user:"+anon.ID, req.PrincipalID())

	// Nothing at all.
	assert.Empty(t, Request{}.PrincipalID())
}

func TestResolvePrefersValidExternalToken(t *testing.T) {
	resolver, store := newTestResolver(t)
	ctx := context.Background()
	sess := sessionWithOAuth("alice@x.com", time.Now().Add(time.Hour))

	external := signedToken(t, graphClaims(time.Now().Add(time.Hour)))
	require.NoError(t, store.Save(ctx, "ms365:alice@x.com", external, testMetadata()))

	cred, err := resolver.Resolve(ctx, Request{Session: sess})
	require.NoError(t, err)
	assert.Equal(t, external, cred.Bearer)
	assert.Equal(t, "ms365:alice@x.com", cred.Principal)
	assert.Equal(t, constants.OriginExternal, cred.Origin)
}

func TestResolveInvalidExternalDemotesToSession(t *testing.T) {
	resolver, store := newTestResolver(t)
	ctx := context.Background()
	sess := sessionWithOAuth("alice@x.com", time.Now().Add(time.Hour))

	expired := signedToken(t, graphClaims(time.Now().Add(-10*time.Minute)))
	require.NoError(t, store.Save(ctx, "ms365:alice@x.com", expired, testMetadata()))

	cred, err := resolver.Resolve(ctx, Request{Session: sess})
	require.NoError(t, err)
	assert.Equal(t, "session-token", cred.Bearer)
	assert.Equal(t, constants.OriginOAuthSession, cred.Origin)

	// The rejected external state was evicted on the way through.
	tok, err := store.Token(ctx, "ms365:alice@x.com")
	require.NoError(t, err)
	assert.Empty(t, tok)
	md, err := store.Metadata(ctx, "ms365:alice@x.com")
	require.NoError(t, err)
	assert.Nil(t, md)
}

func TestResolveOAuthSourceIgnoresStoredToken(t *testing.T) {
	resolver, store := newTestResolver(t)
	ctx := context.Background()
	sess := sessionWithOAuth("alice@x.com", time.Now().Add(time.Hour))

	external := signedToken(t, graphClaims(time.Now().Add(time.Hour)))
	require.NoError(t, store.Save(ctx, "ms365:alice@x.com", external, testMetadata()))
	require.NoError(t, store.SetSource(ctx, "ms365:alice@x.com", constants.TokenSourceOAuth))

	cred, err := resolver.Resolve(ctx, Request{Session: sess})
	require.NoError(t, err)
	assert.Equal(t, "session-token", cred.Bearer)
	assert.Equal(t, constants.OriginOAuthSession, cred.Origin)
}

func TestResolveExpiredSessionTokenFails(t *testing.T) {
	resolver, _ := newTestResolver(t)
	sess := sessionWithOAuth("alice@x.com", time.Now().Add(-time.Minute))

	_, err := resolver.Resolve(context.Background(), Request{Session: sess})
	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, constants.ErrCodeNoCredential, appErr.Code)
}

func TestResolveNoPrincipalFails(t *testing.T) {
	resolver, _ := newTestResolver(t)

	_, err := resolver.Resolve(context.Background(), Request{})
	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, constants.ErrCodeNoCredential, appErr.Code)
}

func TestResolveExternalSourceWithoutTokenDemotes(t *testing.T) {
	// switch(external) racing clear can leave source=external with no token;
	// the read path treats that as no external credential.
	resolver, store := newTestResolver(t)
	ctx := context.Background()
	sess := sessionWithOAuth("alice@x.com", time.Now().Add(time.Hour))

	require.NoError(t, store.SetSource(ctx, "ms365:alice@x.com", constants.TokenSourceExternal))

	cred, err := resolver.Resolve(ctx, Request{Session: sess})
	require.NoError(t, err)
	assert.Equal(t, constants.OriginOAuthSession, cred.Origin)
}
