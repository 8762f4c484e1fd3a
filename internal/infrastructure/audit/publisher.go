// Package audit publishes credential-change events. Token admin operations
// (inject, clear, switch, login) emit one event each; the stream is consumed
// by enterprise tooling outside this repo. Token values never appear in
// events, only their redacted form.
package audit

import (
	"context"
	"time"
)

// Event is one credential-change record.
type Event struct {
	Action        string    `json:"action"`
	Principal     string    `json:"principal"`
	TokenRedacted string    `json:"token_redacted,omitempty"`
	Source        string    `json:"source,omitempty"`
	Success       bool      `json:"success"`
	RequestID     string    `json:"request_id,omitempty"`
	Timestamp     time.Time `json:"timestamp"`
}

// Publisher delivers audit events. Publish must not block the request path
// longer than the writer's own timeout and failures are logged, not returned
// to the user.
type Publisher interface {
	Publish(ctx context.Context, event Event)
	Close() error
}

type noopPublisher struct{}

// NewNoopPublisher returns a publisher that drops everything; the default
// when audit is not configured.
func NewNoopPublisher() Publisher {
	return &noopPublisher{}
}

func (p *noopPublisher) Publish(ctx context.Context, event Event) {}
func (p *noopPublisher) Close() error                             { return nil }
