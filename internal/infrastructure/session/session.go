// Package session provides the server-side session model and stores. The
// gateway reads sessions created by the auth collaborator and writes them in
// exactly one place: external-token login.
package session

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/graphgate/graphgate/pkg/constants"
)

// MSUser is the Microsoft account bound to a session.
type MSUser struct {
	Username      string               `json:"username"`
	Name          string               `json:"name,omitempty"`
	HomeAccountID string               `json:"home_account_id,omitempty"`
	AccessToken   string               `json:"access_token,omitempty"`
	ExpiresOn     time.Time            `json:"expires_on,omitempty"`
	AuthMethod    constants.AuthMethod `json:"auth_method,omitempty"`
}

// Session is one authenticated browser/CLI session.
type Session struct {
	ID        string    `json:"id"`
	MSUser    *MSUser   `json:"ms_user,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// New creates an empty session with a fresh id.
func New() *Session {
	return &Session{
		ID:        uuid.NewString(),
		CreatedAt: time.Now().UTC(),
	}
}

// HasValidOAuthToken reports whether the session carries an unexpired
// Microsoft access token.
func (s *Session) HasValidOAuthToken() bool {
	return s.MSUser != nil &&
		s.MSUser.AccessToken != "" &&
		s.MSUser.ExpiresOn.After(time.Now())
}

// Store persists sessions. Get on a missing id returns (nil, nil).
type Store interface {
	Get(ctx context.Context, id string) (*Session, error)
	Save(ctx context.Context, sess *Session) error
	Delete(ctx context.Context, id string) error
}
