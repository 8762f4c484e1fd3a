// Package token implements the external-token validator, the per-principal
// token store, and the credential resolver: the pipeline that decides which
// bearer a Graph call is made with.
package token

import (
	"time"
)

// Metadata describes a validated external Graph token. It is stored alongside
// the token and returned by the status endpoint; the raw token never is.
type Metadata struct {
	Subject     string    `json:"subject"`
	Email       string    `json:"email,omitempty"`
	DisplayName string    `json:"display_name,omitempty"`
	Scopes      []string  `json:"scopes"`
	IssuedAt    time.Time `json:"issued_at,omitempty"`
	ExpiresAt   time.Time `json:"expires_at"`
	Tenant      string    `json:"tenant,omitempty"`
}

// HasScope reports whether the scope set contains the given scope.
func (m *Metadata) HasScope(scope string) bool {
	for _, s := range m.Scopes {
		if s == scope {
			return true
		}
	}
	return false
}
