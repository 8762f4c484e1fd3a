package token

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/graphgate/graphgate/internal/config"
	"github.com/graphgate/graphgate/pkg/constants"
	apperrors "github.com/graphgate/graphgate/pkg/errors"
	"github.com/graphgate/graphgate/pkg/logger"
)

// Prober performs a no-side-effect Graph call with a candidate bearer to
// confirm the token is actually accepted upstream. Implemented by the graph
// package; nil disables probing.
type Prober interface {
	Probe(ctx context.Context, bearer string) error
}

// QuickResult is the outcome of the cheap validation path.
type QuickResult struct {
	Valid     bool
	Metadata  *Metadata
	ErrorKind constants.ErrorCode
	Message   string
}

// Validator validates injected external Graph tokens. The gateway cannot
// verify Microsoft's signature locally, so validation is structural: parse,
// expiry with skew, required claims, and optionally a remote probe.
type Validator struct {
	audiences      []string
	requiredScopes []string
	skew           time.Duration
	prober         Prober
	logger         logger.Logger

	// now is replaceable in tests.
	now func() time.Time
}

// NewValidator builds a validator from Graph config.
func NewValidator(cfg config.GraphConfig, prober Prober, log logger.Logger) *Validator {
	v := &Validator{
		audiences:      cfg.Audiences,
		requiredScopes: cfg.RequiredScopes,
		skew:           constants.ClockSkewTolerance,
		logger:         log.WithComponent("TokenValidator"),
		now:            time.Now,
	}
	if cfg.ProbeOnValidate {
		v.prober = prober
	}
	return v
}

// Validate runs the full validation used on inject and login: structural
// parse, expiry with skew, required claims, and the optional remote probe.
func (v *Validator) Validate(ctx context.Context, raw string) (*Metadata, error) {
	md, appErr := v.parse(raw)
	if appErr != nil {
		return nil, appErr
	}

	if md.Subject == "" {
		return nil, apperrors.NewTokenValidation(constants.ErrCodeValidationFailed,
			"token is missing a subject claim")
	}

	if len(v.audiences) > 0 && !v.audienceAccepted(raw) {
		return nil, apperrors.NewTokenValidation(constants.ErrCodeAudienceMismatch,
			"token audience is not Microsoft Graph")
	}

	for _, required := range v.requiredScopes {
		if !md.HasScope(required) {
			return nil, apperrors.NewTokenValidation(constants.ErrCodeMissingScope,
				fmt.Sprintf("token is missing required scope %q", required))
		}
	}

	if v.prober != nil {
		if err := v.prober.Probe(ctx, raw); err != nil {
			v.logger.Warn(ctx, "token probe failed", logger.Fields{"token": Redact(raw)})
			return nil, apperrors.NewTokenValidation(constants.ErrCodeProbeFailed,
				"token was rejected by Microsoft Graph").WithCause(err)
		}
	}

	return md, nil
}

// QuickValidate runs the cheap path used on every status read and credential
// resolution: structural parse and expiry only, no network.
func (v *Validator) QuickValidate(raw string) QuickResult {
	md, appErr := v.parse(raw)
	if appErr != nil {
		return QuickResult{
			Valid:     false,
			ErrorKind: appErr.Code,
			Message:   appErr.Message,
		}
	}
	return QuickResult{Valid: true, Metadata: md}
}

// Normalize strips surrounding whitespace and a leading "Bearer " scheme so
// the token is handled, stored, and replayed in its bare form.
func Normalize(raw string) string {
	return strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(raw), "Bearer "))
}

// parse extracts metadata from the raw bearer and checks expiry. It never
// verifies the signature; that belongs to Graph.
func (v *Validator) parse(raw string) (*Metadata, *apperrors.AppError) {
	raw = Normalize(raw)
	if raw == "" {
		return nil, apperrors.NewTokenValidation(constants.ErrCodeMalformedToken, "token is empty")
	}

	parser := jwt.NewParser()
	claims := jwt.MapClaims{}
	if _, _, err := parser.ParseUnverified(raw, claims); err != nil {
		return nil, apperrors.NewTokenValidation(constants.ErrCodeMalformedToken,
			"token is not a well-formed JWT")
	}

	md := metadataFromClaims(claims)
	if md.ExpiresAt.IsZero() {
		return nil, apperrors.NewTokenValidation(constants.ErrCodeValidationFailed,
			"token has no expiry claim")
	}
	if md.ExpiresAt.Add(v.skew).Before(v.now()) {
		return nil, apperrors.NewTokenValidation(constants.ErrCodeTokenExpired,
			fmt.Sprintf("token expired at %s", md.ExpiresAt.UTC().Format(time.RFC3339)))
	}
	return md, nil
}

func (v *Validator) audienceAccepted(raw string) bool {
	parser := jwt.NewParser()
	claims := jwt.MapClaims{}
	if _, _, err := parser.ParseUnverified(Normalize(raw), claims); err != nil {
		return false
	}
	auds, err := claims.GetAudience()
	if err != nil || len(auds) == 0 {
		return false
	}
	for _, aud := range auds {
		for _, accepted := range v.audiences {
			if strings.TrimSuffix(aud, "/") == strings.TrimSuffix(accepted, "/") {
				return true
			}
		}
	}
	return false
}

func metadataFromClaims(claims jwt.MapClaims) *Metadata {
	md := &Metadata{}
	if sub, err := claims.GetSubject(); err == nil {
		md.Subject = sub
	}
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		md.ExpiresAt = exp.Time
	}
	if iat, err := claims.GetIssuedAt(); err == nil && iat != nil {
		md.IssuedAt = iat.Time
	}
	md.Email = firstStringClaim(claims, "upn", "preferred_username", "email")
	if name, ok := claims["name"].(string); ok {
		md.DisplayName = name
	}
	if tid, ok := claims["tid"].(string); ok {
		md.Tenant = tid
	}
	if scp, ok := claims["scp"].(string); ok && scp != "" {
		md.Scopes = strings.Fields(scp)
	} else {
		md.Scopes = []string{}
	}
	return md
}

func firstStringClaim(claims jwt.MapClaims, keys ...string) string {
	for _, key := range keys {
		if v, ok := claims[key].(string); ok && v != "" {
			return v
		}
	}
	return ""
}

// Redact produces the only permitted logging form of a token: an 8-character
// prefix and a length tag. Deterministic so repeated log lines correlate.
func Redact(raw string) string {
	const prefixLen = 8
	if len(raw) <= prefixLen {
		return fmt.Sprintf("%s…(%d chars)", raw, len(raw))
	}
	return fmt.Sprintf("%s…(%d chars)", raw[:prefixLen], len(raw))
}
