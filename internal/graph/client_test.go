package graph

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/graphgate/graphgate/internal/infrastructure/monitoring"
	"github.com/graphgate/graphgate/internal/infrastructure/secrets"
	"github.com/graphgate/graphgate/internal/token"
	"github.com/graphgate/graphgate/pkg/constants"
	apperrors "github.com/graphgate/graphgate/pkg/errors"
	"github.com/graphgate/graphgate/pkg/logger"
)

func newTestFactory(t *testing.T, handler http.Handler) (*Factory, *token.Store) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	tokens := token.NewStore(secrets.NewMemoryStore(), logger.NewNoopLogger())
	metrics := monitoring.NewMetrics(prometheus.NewRegistry())
	factory := NewFactory(server.URL, 5*time.Second, tokens, metrics, logger.NewNoopLogger())
	return factory, tokens
}

func externalCred(principal string) *token.Credential {
	return &token.Credential{
		Bearer:    "ext-token",
		Principal: principal,
		Origin:    constants.OriginExternal,
	}
}

func TestClientAppliesBearerAndCorrelationID(t *testing.T) {
	var gotAuth, gotReqID string
	factory, _ := newTestFactory(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotReqID = r.Header.Get("client-request-id")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"msg-1"}`))
	}))

	client := factory.NewClient(externalCred("ms365:alice@x.com"), "req-42")
	resp, err := client.API("/me/messages/msg-1").Get(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "Bearer ext-token", gotAuth)
	assert.Equal(t, "req-42", gotReqID)
	assert.Equal(t, "msg-1", resp["id"])
}

func TestClientEncodesQueryParameters(t *testing.T) {
	var gotQuery string
	factory, _ := newTestFactory(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		w.Write([]byte(`{"value":[]}`))
	}))

	client := factory.NewClient(externalCred("p"), "req")
	_, err := client.API("/me/messages").Top(10).Filter("isRead eq false").OrderBy("receivedDateTime desc").Get(context.Background())
	require.NoError(t, err)

	assert.Contains(t, gotQuery, "%24top=10")
	assert.Contains(t, gotQuery, "%24filter=isRead+eq+false")
	assert.Contains(t, gotQuery, "%24orderby=receivedDateTime+desc")
}

func TestClientSurfacesGraphError(t *testing.T) {
	factory, _ := newTestFactory(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error":{"code":"ErrorItemNotFound","message":"The specified object was not found."}}`))
	}))

	client := factory.NewClient(externalCred("p"), "req")
	_, err := client.API("/me/messages/nope").Get(context.Background())

	var ge *GraphError
	require.ErrorAs(t, err, &ge)
	assert.Equal(t, http.StatusNotFound, ge.Status)
	assert.Equal(t, "ErrorItemNotFound", ge.Code)
	assert.Contains(t, ge.Message, "not found")
}

func TestClientEvictsExternalTokenOnUpstreamExpiry(t *testing.T) {
	factory, tokens := newTestFactory(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":{"code":"InvalidAuthenticationToken","message":"Access token has expired."}}`))
	}))

	ctx := context.Background()
	principal := "ms365:alice@x.com"
	md := &token.Metadata{Subject: "s", ExpiresAt: time.Now().Add(time.Hour)}
	require.NoError(t, tokens.Save(ctx, principal, "ext-token", md))

	client := factory.NewClient(externalCred(principal), "req")
	_, err := client.API("/me/messages").Get(ctx)

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, constants.ErrCodeCredentialExpired, appErr.Code)

	stored, err := tokens.Token(ctx, principal)
	require.NoError(t, err)
	assert.Empty(t, stored)
}

func TestClient401OnSessionOriginIsPlainGraphError(t *testing.T) {
	factory, _ := newTestFactory(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":{"code":"InvalidAuthenticationToken","message":"Access token has expired."}}`))
	}))

	cred := &token.Credential{Bearer: "b", Principal: "p", Origin: constants.OriginOAuthSession}
	client := factory.NewClient(cred, "req")
	_, err := client.API("/me").Get(context.Background())

	var ge *GraphError
	require.ErrorAs(t, err, &ge)
	assert.Equal(t, http.StatusUnauthorized, ge.Status)
}

func TestClientNoContentResponse(t *testing.T) {
	factory, _ := newTestFactory(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	client := factory.NewClient(externalCred("p"), "req")
	err := client.API("/me/messages/m1").Delete(context.Background())
	assert.NoError(t, err)
}

func TestClientDNSFailure(t *testing.T) {
	tokens := token.NewStore(secrets.NewMemoryStore(), logger.NewNoopLogger())
	metrics := monitoring.NewMetrics(prometheus.NewRegistry())
	factory := NewFactory("http://graph.invalid.nxdomain-for-tests", time.Second, tokens, metrics, logger.NewNoopLogger())

	client := factory.NewClient(externalCred("p"), "req")
	_, err := client.API("/me").Get(context.Background())

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, constants.ErrCodeUpstreamUnreachable, appErr.Code)
	assert.Equal(t, http.StatusServiceUnavailable, appErr.HTTPStatus)
}

func TestProbe(t *testing.T) {
	var gotPath, gotAuth string
	factory, _ := newTestFactory(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{"id":"user-1"}`))
	}))

	err := factory.Probe(context.Background(), "candidate-token")
	require.NoError(t, err)
	assert.Equal(t, "/me", gotPath)
	assert.Equal(t, "Bearer candidate-token", gotAuth)
}
