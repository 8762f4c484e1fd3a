// Package handlers implements the gateway's REST endpoints. Every endpoint
// runs inside the pipeline wrapper: identity extraction, schema validation in
// the handler body, one Graph call, and uniform success/error envelopes with
// per-request telemetry.
package handlers

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/graphgate/graphgate/internal/application/dto"
	"github.com/graphgate/graphgate/internal/config"
	"github.com/graphgate/graphgate/internal/graph"
	"github.com/graphgate/graphgate/internal/infrastructure/audit"
	"github.com/graphgate/graphgate/internal/infrastructure/monitoring"
	"github.com/graphgate/graphgate/internal/infrastructure/secrets"
	"github.com/graphgate/graphgate/internal/infrastructure/session"
	"github.com/graphgate/graphgate/internal/token"
	"github.com/graphgate/graphgate/pkg/constants"
	apperrors "github.com/graphgate/graphgate/pkg/errors"
	"github.com/graphgate/graphgate/pkg/logger"
)

// Handlers carries the shared dependencies of every endpoint.
type Handlers struct {
	cfg       *config.Config
	logger    logger.Logger
	metrics   *monitoring.Metrics
	resolver  *token.Resolver
	tokens    *token.Store
	validator *token.Validator
	graph     *graph.Factory
	sessions  session.Store
	secrets   secrets.Store
	audit     audit.Publisher
}

// New builds the handler set.
func New(
	cfg *config.Config,
	log logger.Logger,
	metrics *monitoring.Metrics,
	resolver *token.Resolver,
	tokens *token.Store,
	validator *token.Validator,
	factory *graph.Factory,
	sessions session.Store,
	sec secrets.Store,
	auditor audit.Publisher,
) *Handlers {
	return &Handlers{
		cfg:       cfg,
		logger:    log.WithComponent("Handlers"),
		metrics:   metrics,
		resolver:  resolver,
		tokens:    tokens,
		validator: validator,
		graph:     factory,
		sessions:  sessions,
		secrets:   sec,
		audit:     auditor,
	}
}

// handlerFunc is one endpoint body. It returns the status and envelope to
// write, or an error for the wrapper to classify.
type handlerFunc func(c *gin.Context) (int, interface{}, error)

// wrap runs a handler body inside the request pipeline: debug record in
// development mode, timing, success/failure metrics, and single-point error
// classification and logging.
func (h *Handlers) wrap(operation string, fn handlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		principal := h.identity(c).PrincipalID()

		if h.cfg.IsDevelopment() {
			h.logger.Debug(ctx, "handling request", logger.Fields{
				"operation": operation,
				"method":    c.Request.Method,
				"path":      c.Request.URL.Path,
				"principal": principal,
			})
		}

		started := time.Now()
		status, body, err := fn(c)
		elapsed := time.Since(started)

		if err != nil {
			status, envelope := h.classify(err)
			h.logError(c, operation, principal, err, envelope)
			h.metrics.RecordRequest(operation, false, elapsed)
			c.JSON(status, envelope)
			return
		}

		if principal != "" {
			h.logger.Info(ctx, "request completed", logger.Fields{
				"operation":   operation,
				"principal":   principal,
				"status":      status,
				"duration_ms": elapsed.Milliseconds(),
			})
		}
		h.metrics.RecordRequest(operation, true, elapsed)
		c.JSON(status, body)
	}
}

// identity collects what the middleware chain learned about the caller.
func (h *Handlers) identity(c *gin.Context) token.Request {
	req := token.Request{
		AuthUserID: c.GetString(constants.ContextKeyAuthUser),
		DeviceID:   c.GetString(constants.ContextKeyDeviceID),
	}
	if v, ok := c.Get(constants.ContextKeySession); ok {
		req.Session = v.(*session.Session)
	}
	return req
}

// principal returns the caller's principal id or an UNAUTHORIZED error.
func (h *Handlers) principal(c *gin.Context) (string, error) {
	p := h.identity(c).PrincipalID()
	if p == "" {
		return "", apperrors.NewUnauthorized("no authenticated principal on this request")
	}
	return p, nil
}

// client resolves the caller's credential and binds a Graph client to it.
func (h *Handlers) client(c *gin.Context) (*graph.Client, error) {
	cred, err := h.resolver.Resolve(c.Request.Context(), h.identity(c))
	if err != nil {
		h.metrics.RecordCredentialResolution("none", false)
		return nil, err
	}
	h.metrics.RecordCredentialResolution(string(cred.Origin), true)
	return h.graph.NewClient(cred, requestID(c)), nil
}

func requestID(c *gin.Context) string {
	return c.GetString(constants.ContextKeyRequestID)
}

// bind decodes the JSON body, mapping syntax errors to a validation failure.
func bind(c *gin.Context, out interface{}) error {
	if err := c.ShouldBindJSON(out); err != nil {
		return dto.Invalid("body", "must be valid JSON: "+err.Error())
	}
	return nil
}

// classify maps an error to its HTTP status and envelope. Every failure is
// lifted to an AppError first so the response always carries a fresh
// correlation id. GraphError 4xx keeps the upstream status; upstream 5xx
// becomes 502.
func (h *Handlers) classify(err error) (int, dto.ErrorEnvelope) {
	appErr := toAppError(err)
	return appErr.HTTPStatus, dto.ErrorEnvelope{
		Error:            string(appErr.Code),
		ErrorDescription: appErr.Message,
		ErrorID:          appErr.ID,
		Details:          appErr.Details,
	}
}

func toAppError(err error) *apperrors.AppError {
	var verrs dto.ValidationErrors
	if errors.As(err, &verrs) {
		return apperrors.NewInvalidRequest(verrs.Error(), verrs.Details())
	}
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	var graphErr *graph.GraphError
	if errors.As(err, &graphErr) {
		return apperrors.NewGraphFailure(graphErr.Status, graphErr.Code, graphErr.Message).WithCause(err)
	}
	if errors.Is(err, secrets.ErrStorageUnavailable) {
		return apperrors.NewStorageUnavailable(err)
	}
	return apperrors.NewInternal(err)
}

// logError is the single failure log per request.
func (h *Handlers) logError(c *gin.Context, operation, principal string, err error, envelope dto.ErrorEnvelope) {
	h.logger.Error(c.Request.Context(), "request failed", err, logger.Fields{
		"operation": operation,
		"principal": principal,
		"error":     envelope.Error,
		"error_id":  envelope.ErrorID,
	})
}
