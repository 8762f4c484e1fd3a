package token

import (
	"context"

	"github.com/graphgate/graphgate/internal/infrastructure/session"
	"github.com/graphgate/graphgate/pkg/constants"
	apperrors "github.com/graphgate/graphgate/pkg/errors"
	"github.com/graphgate/graphgate/pkg/logger"
)

// Request carries the identity inputs of one inbound HTTP call: the device
// auth middleware's result and the session, if any.
type Request struct {
	AuthUserID string
	DeviceID   string
	Session    *session.Session
}

// PrincipalID derives the stable principal id for this request. Precedence is
// fixed: the middleware-supplied user id, then the session's Microsoft
// account, then the bare session id, then none.
func (r Request) PrincipalID() string {
	if r.AuthUserID != "" {
		return r.AuthUserID
	}
	if r.Session != nil && r.Session.MSUser != nil && r.Session.MSUser.Username != "" {
		return constants.PrincipalPrefixMS365 + r.Session.MSUser.Username
	}
	if r.Session != nil && r.Session.ID != "" {
		return constants.PrincipalPrefixUser + r.Session.ID
	}
	return ""
}

// Credential is the unique output of credential resolution: the bearer to put
// on the Graph call, the principal it is charged to, and where it came from.
type Credential struct {
	Bearer    string
	Principal string
	Origin    constants.CredentialOrigin
}

// Resolver selects the bearer for a request. It is pure with respect to the
// request; its only side effect is evicting external token state that a
// validity check rejected.
type Resolver struct {
	store     *Store
	validator *Validator
	logger    logger.Logger
}

// NewResolver builds a credential resolver.
func NewResolver(store *Store, validator *Validator, log logger.Logger) *Resolver {
	return &Resolver{
		store:     store,
		validator: validator,
		logger:    log.WithComponent("CredentialResolver"),
	}
}

// Resolve produces the credential for a request. A stored external token wins
// over the session token only while it passes quick validation; an invalid
// external token is evicted and resolution demotes to the session token.
func (r *Resolver) Resolve(ctx context.Context, req Request) (*Credential, error) {
	principal := req.PrincipalID()
	if principal == "" {
		return nil, apperrors.NewNoCredential("")
	}

	source, err := r.store.Source(ctx, principal)
	if err != nil {
		return nil, err
	}

	if source == constants.TokenSourceExternal {
		stored, err := r.store.Token(ctx, principal)
		if err != nil {
			return nil, err
		}
		if stored != "" {
			result := r.validator.QuickValidate(stored)
			if result.Valid {
				return &Credential{
					Bearer:    stored,
					Principal: principal,
					Origin:    constants.OriginExternal,
				}, nil
			}
			r.logger.Info(ctx, "evicting invalid external token", logger.Fields{
				"principal": principal,
				"reason":    string(result.ErrorKind),
				"token":     Redact(stored),
			})
			if err := r.store.Evict(ctx, principal); err != nil {
				return nil, err
			}
		}
	}

	if req.Session != nil && req.Session.HasValidOAuthToken() {
		return &Credential{
			Bearer:    req.Session.MSUser.AccessToken,
			Principal: principal,
			Origin:    constants.OriginOAuthSession,
		}, nil
	}

	return nil, apperrors.NewNoCredential(principal)
}
