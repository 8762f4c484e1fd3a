package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/graphgate/graphgate/internal/application/dto"
	"github.com/graphgate/graphgate/internal/infrastructure/audit"
	"github.com/graphgate/graphgate/internal/infrastructure/session"
	"github.com/graphgate/graphgate/internal/token"
	"github.com/graphgate/graphgate/pkg/constants"
	apperrors "github.com/graphgate/graphgate/pkg/errors"
)

// InjectToken handles POST /api/auth/external-token: full validation, then
// persist token, metadata, and source=external for the caller's principal.
// The response carries metadata only, never the token.
func (h *Handlers) InjectToken() gin.HandlerFunc {
	return h.wrap("injectToken", func(c *gin.Context) (int, interface{}, error) {
		principal, err := h.principal(c)
		if err != nil {
			return 0, nil, err
		}
		var req dto.InjectTokenRequest
		if err := bind(c, &req); err != nil {
			return 0, nil, err
		}
		if errs := req.Validate(); errs != nil {
			return 0, nil, errs
		}
		raw := token.Normalize(req.AccessToken)

		md, err := h.validator.Validate(c.Request.Context(), raw)
		if err != nil {
			h.metrics.RecordTokenAdmin("inject", false)
			h.publishAudit(c, "inject", principal, raw, false)
			return 0, nil, err
		}
		if err := h.tokens.Save(c.Request.Context(), principal, raw, md); err != nil {
			h.metrics.RecordTokenAdmin("inject", false)
			return 0, nil, err
		}

		h.metrics.RecordTokenAdmin("inject", true)
		h.publishAudit(c, "inject", principal, raw, true)
		return http.StatusOK, gin.H{
			"success":  true,
			"metadata": md,
		}, nil
	})
}

// TokenStatus handles GET /api/auth/external-token/status. The stored token
// is quick-validated on every read; an invalid one is evicted here, so the
// reported state is always current.
func (h *Handlers) TokenStatus() gin.HandlerFunc {
	return h.wrap("tokenStatus", func(c *gin.Context) (int, interface{}, error) {
		principal, err := h.principal(c)
		if err != nil {
			return 0, nil, err
		}
		ctx := c.Request.Context()

		source, err := h.tokens.Source(ctx, principal)
		if err != nil {
			return 0, nil, err
		}
		stored, err := h.tokens.Token(ctx, principal)
		if err != nil {
			return 0, nil, err
		}
		if stored == "" {
			return http.StatusOK, gin.H{
				"has_external_token": false,
				"is_active":          false,
				"token_source":       source,
			}, nil
		}

		result := h.validator.QuickValidate(stored)
		if !result.Valid {
			if err := h.tokens.Evict(ctx, principal); err != nil {
				return 0, nil, err
			}
			return http.StatusOK, gin.H{
				"has_external_token": false,
				"is_active":          false,
				"token_source":       source,
				"expired_reason":     result.ErrorKind,
			}, nil
		}

		return http.StatusOK, gin.H{
			"has_external_token": true,
			"is_active":          source == constants.TokenSourceExternal,
			"token_source":       source,
			"metadata":           result.Metadata,
		}, nil
	})
}

// ClearToken handles DELETE /api/auth/external-token: remove token and
// metadata and reset the source to oauth.
func (h *Handlers) ClearToken() gin.HandlerFunc {
	return h.wrap("clearToken", func(c *gin.Context) (int, interface{}, error) {
		principal, err := h.principal(c)
		if err != nil {
			return 0, nil, err
		}
		if err := h.tokens.Clear(c.Request.Context(), principal); err != nil {
			h.metrics.RecordTokenAdmin("clear", false)
			return 0, nil, err
		}
		h.metrics.RecordTokenAdmin("clear", true)
		h.publishAudit(c, "clear", principal, "", true)
		return http.StatusOK, gin.H{
			"success":      true,
			"token_source": constants.TokenSourceOAuth,
		}, nil
	})
}

// SwitchTokenSource handles POST /api/auth/external-token/switch. Switching
// to external requires a currently valid stored token; switching to oauth is
// unconditional.
func (h *Handlers) SwitchTokenSource() gin.HandlerFunc {
	return h.wrap("switchTokenSource", func(c *gin.Context) (int, interface{}, error) {
		principal, err := h.principal(c)
		if err != nil {
			return 0, nil, err
		}
		var req dto.SwitchSourceRequest
		if err := bind(c, &req); err != nil {
			return 0, nil, err
		}
		if errs := req.Validate(); errs != nil {
			return 0, nil, errs
		}
		ctx := c.Request.Context()
		target := constants.TokenSource(req.Source)

		if target == constants.TokenSourceExternal {
			stored, err := h.tokens.Token(ctx, principal)
			if err != nil {
				return 0, nil, err
			}
			if stored == "" || !h.validator.QuickValidate(stored).Valid {
				h.metrics.RecordTokenAdmin("switch", false)
				return 0, nil, apperrors.NewInvalidRequest(
					"cannot switch to external: no valid external token is stored", nil)
			}
		}

		if err := h.tokens.SetSource(ctx, principal, target); err != nil {
			h.metrics.RecordTokenAdmin("switch", false)
			return 0, nil, err
		}
		h.metrics.RecordTokenAdmin("switch", true)
		h.publishAudit(c, "switch", principal, "", true)
		return http.StatusOK, gin.H{
			"success":      true,
			"token_source": target,
		}, nil
	})
}

// TokenLogin handles POST /api/auth/external-token/login: the
// session-creating variant. No prior principal is required; the principal is
// derived from the validated token and a session is written with the
// Microsoft user bound to it.
func (h *Handlers) TokenLogin() gin.HandlerFunc {
	return h.wrap("tokenLogin", func(c *gin.Context) (int, interface{}, error) {
		var req dto.InjectTokenRequest
		if err := bind(c, &req); err != nil {
			return 0, nil, err
		}
		if errs := req.Validate(); errs != nil {
			return 0, nil, errs
		}
		ctx := c.Request.Context()
		raw := token.Normalize(req.AccessToken)

		md, err := h.validator.Validate(ctx, raw)
		if err != nil {
			h.metrics.RecordTokenAdmin("login", false)
			h.publishAudit(c, "login", "", raw, false)
			return 0, nil, err
		}

		account := md.Email
		if account == "" {
			account = md.Subject
		}
		principal := constants.PrincipalPrefixMS365 + account

		if err := h.tokens.Save(ctx, principal, raw, md); err != nil {
			h.metrics.RecordTokenAdmin("login", false)
			return 0, nil, err
		}

		sess := h.identity(c).Session
		if sess == nil {
			sess = session.New()
		}
		sess.MSUser = &session.MSUser{
			Username:    account,
			Name:        md.DisplayName,
			AccessToken: raw,
			ExpiresOn:   md.ExpiresAt,
			AuthMethod:  constants.AuthMethodExternalToken,
		}
		if err := h.sessions.Save(ctx, sess); err != nil {
			h.metrics.RecordTokenAdmin("login", false)
			return 0, nil, err
		}
		c.SetCookie(constants.SessionCookieName, sess.ID,
			int(constants.DefaultSessionTTL/time.Second), "/", "", false, true)

		h.metrics.RecordTokenAdmin("login", true)
		h.publishAudit(c, "login", principal, raw, true)
		return http.StatusOK, gin.H{
			"success":       true,
			"authenticated": true,
			"user": gin.H{
				"email": account,
				"name":  md.DisplayName,
			},
		}, nil
	})
}

func (h *Handlers) publishAudit(c *gin.Context, action, principal, rawToken string, success bool) {
	event := audit.Event{
		Action:    action,
		Principal: principal,
		Success:   success,
		RequestID: requestID(c),
		Timestamp: time.Now().UTC(),
	}
	if rawToken != "" {
		event.TokenRedacted = token.Redact(rawToken)
	}
	h.audit.Publish(c.Request.Context(), event)
}
