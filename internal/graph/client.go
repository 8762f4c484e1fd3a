// Package graph implements the thin authenticated Microsoft Graph call layer.
// A Client is created per request, bound to the credential the resolver
// selected; it applies the bearer, attaches the correlation id, speaks JSON
// both ways, and surfaces non-2xx responses as typed errors.
package graph

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/graphgate/graphgate/internal/infrastructure/monitoring"
	"github.com/graphgate/graphgate/internal/token"
	"github.com/graphgate/graphgate/pkg/constants"
	apperrors "github.com/graphgate/graphgate/pkg/errors"
	"github.com/graphgate/graphgate/pkg/logger"
)

// GraphError is an upstream Graph failure carrying the status and the
// Graph-returned code and message.
type GraphError struct {
	Status  int
	Code    string
	Message string
}

func (e *GraphError) Error() string {
	return fmt.Sprintf("graph returned %d %s: %s", e.Status, e.Code, e.Message)
}

// Factory builds per-request Graph clients.
type Factory struct {
	baseURL    string
	timeout    time.Duration
	httpClient *http.Client
	tokens     *token.Store
	metrics    *monitoring.Metrics
	logger     logger.Logger
}

// NewFactory builds a client factory. baseURL has no trailing slash.
func NewFactory(baseURL string, timeout time.Duration, tokens *token.Store, metrics *monitoring.Metrics, log logger.Logger) *Factory {
	if timeout <= 0 {
		timeout = constants.GraphCallTimeout
	}
	return &Factory{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		timeout:    timeout,
		httpClient: &http.Client{},
		tokens:     tokens,
		metrics:    metrics,
		logger:     log.WithComponent("GraphClient"),
	}
}

// NewClient binds a client to one resolved credential and correlation id.
func (f *Factory) NewClient(cred *token.Credential, requestID string) *Client {
	return &Client{factory: f, cred: cred, requestID: requestID}
}

// Probe implements token.Prober: a no-side-effect identity read with the
// candidate bearer.
func (f *Factory) Probe(ctx context.Context, bearer string) error {
	probe := &Client{
		factory:   f,
		cred:      &token.Credential{Bearer: bearer},
		requestID: "probe",
	}
	_, err := probe.API(constants.GraphProbePath).Select("id").Get(ctx)
	return err
}

// Client executes Graph calls for one request.
type Client struct {
	factory   *Factory
	cred      *token.Credential
	requestID string
}

// API starts a request against a Graph path, e.g. "/me/messages".
func (c *Client) API(path string) *Request {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return &Request{client: c, path: path, query: url.Values{}}
}

// Request is one Graph call under construction.
type Request struct {
	client *Client
	path   string
	query  url.Values
}

// Query adds an arbitrary query parameter.
func (r *Request) Query(key, value string) *Request {
	r.query.Set(key, value)
	return r
}

// Top sets the $top page size parameter.
func (r *Request) Top(n int) *Request {
	return r.Query("$top", strconv.Itoa(n))
}

// Select sets the $select field list.
func (r *Request) Select(fields ...string) *Request {
	return r.Query("$select", strings.Join(fields, ","))
}

// Filter sets the $filter expression.
func (r *Request) Filter(expr string) *Request {
	return r.Query("$filter", expr)
}

// OrderBy sets the $orderby expression.
func (r *Request) OrderBy(expr string) *Request {
	return r.Query("$orderby", expr)
}

// Search sets the $search expression.
func (r *Request) Search(expr string) *Request {
	return r.Query("$search", expr)
}

// Get executes a GET and decodes the JSON response.
func (r *Request) Get(ctx context.Context) (map[string]interface{}, error) {
	return r.client.do(ctx, http.MethodGet, r.path, r.query, nil)
}

// Post executes a POST with a JSON body.
func (r *Request) Post(ctx context.Context, body interface{}) (map[string]interface{}, error) {
	return r.client.do(ctx, http.MethodPost, r.path, r.query, body)
}

// Patch executes a PATCH with a JSON body.
func (r *Request) Patch(ctx context.Context, body interface{}) (map[string]interface{}, error) {
	return r.client.do(ctx, http.MethodPatch, r.path, r.query, body)
}

// Delete executes a DELETE.
func (r *Request) Delete(ctx context.Context) error {
	_, err := r.client.do(ctx, http.MethodDelete, r.path, r.query, nil)
	return err
}

// Put executes a PUT with a JSON body. Used for small channel file uploads.
func (r *Request) Put(ctx context.Context, body interface{}) (map[string]interface{}, error) {
	return r.client.do(ctx, http.MethodPut, r.path, r.query, body)
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body interface{}) (map[string]interface{}, error) {
	ctx, cancel := context.WithTimeout(ctx, c.factory.timeout)
	defer cancel()

	endpoint := c.factory.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, apperrors.NewInternal(fmt.Errorf("encode graph request body: %w", err))
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return nil, apperrors.NewInternal(err)
	}
	req.Header.Set("Authorization", "Bearer "+c.cred.Bearer)
	req.Header.Set("Accept", "application/json")
	req.Header.Set(constants.HeaderClientReqID, c.requestID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.factory.httpClient.Do(req)
	if err != nil {
		if isDNSFailure(err) {
			return nil, apperrors.NewUpstreamUnreachable(err)
		}
		return nil, apperrors.NewInternal(fmt.Errorf("graph call failed: %w", err))
	}
	defer resp.Body.Close()

	if c.factory.metrics != nil {
		c.factory.metrics.RecordGraphResponse(resp.StatusCode)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apperrors.NewInternal(fmt.Errorf("read graph response: %w", err))
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		if len(raw) == 0 {
			return nil, nil
		}
		var decoded map[string]interface{}
		if err := json.Unmarshal(raw, &decoded); err != nil {
			return nil, apperrors.NewInternal(fmt.Errorf("decode graph response: %w", err))
		}
		return decoded, nil
	}

	graphErr := decodeGraphError(resp.StatusCode, raw)

	if resp.StatusCode == http.StatusUnauthorized &&
		c.cred.Origin == constants.OriginExternal &&
		indicatesExpiry(graphErr) {
		c.factory.logger.Info(ctx, "external token rejected upstream, evicting", logger.Fields{
			"principal": c.cred.Principal,
			"code":      graphErr.Code,
		})
		if evictErr := c.factory.tokens.Evict(ctx, c.cred.Principal); evictErr != nil {
			c.factory.logger.Error(ctx, "failed to evict rejected external token", evictErr,
				logger.Fields{"principal": c.cred.Principal})
		}
		return nil, apperrors.NewCredentialExpired("external token was rejected by Microsoft Graph")
	}

	return nil, graphErr
}

func decodeGraphError(status int, raw []byte) *GraphError {
	ge := &GraphError{Status: status, Code: "UnknownError", Message: http.StatusText(status)}
	var envelope struct {
		Error struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(raw, &envelope); err == nil {
		if envelope.Error.Code != "" {
			ge.Code = envelope.Error.Code
		}
		if envelope.Error.Message != "" {
			ge.Message = envelope.Error.Message
		}
	}
	return ge
}

// indicatesExpiry reports whether a 401 looks like token expiry rather than,
// say, a revoked app permission.
func indicatesExpiry(ge *GraphError) bool {
	if ge.Code == "InvalidAuthenticationToken" {
		return true
	}
	msg := strings.ToLower(ge.Message)
	return strings.Contains(msg, "expired") || strings.Contains(msg, "lifetime validation")
}

func isDNSFailure(err error) bool {
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return true
	}
	return strings.Contains(err.Error(), "no such host")
}
