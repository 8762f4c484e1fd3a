// Package constants defines shared codes, context keys, and storage layout
// constants for the Graph gateway.
package constants

import "time"

// ErrorCode is the machine-readable error code surfaced in error envelopes.
type ErrorCode string

const (
	ErrCodeInvalidRequest      ErrorCode = "INVALID_REQUEST"
	ErrCodeUnauthorized        ErrorCode = "UNAUTHORIZED"
	ErrCodeNoCredential        ErrorCode = "NO_CREDENTIAL"
	ErrCodeCredentialExpired   ErrorCode = "CREDENTIAL_EXPIRED"
	ErrCodeMalformedToken      ErrorCode = "MALFORMED_TOKEN"
	ErrCodeTokenExpired        ErrorCode = "EXPIRED"
	ErrCodeMissingScope        ErrorCode = "MISSING_SCOPE"
	ErrCodeAudienceMismatch    ErrorCode = "AUDIENCE_MISMATCH"
	ErrCodeProbeFailed         ErrorCode = "PROBE_FAILED"
	ErrCodeValidationFailed    ErrorCode = "VALIDATION_FAILED"
	ErrCodeGraphError          ErrorCode = "GRAPH_ERROR"
	ErrCodeUpstreamUnreachable ErrorCode = "UPSTREAM_UNREACHABLE"
	ErrCodeStorageUnavailable  ErrorCode = "STORAGE_UNAVAILABLE"
	ErrCodeNotFound            ErrorCode = "NOT_FOUND"
	ErrCodeInternal            ErrorCode = "INTERNAL_ERROR"
)

// Severity classifies an error record for telemetry purposes. It is advisory:
// infrastructure failures are always logged regardless of severity.
type Severity string

const (
	SeverityDebug   Severity = "debug"
	SeverityInfo    Severity = "info"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// TokenSource selects which bearer the credential resolver returns for a
// principal.
type TokenSource string

const (
	TokenSourceOAuth    TokenSource = "oauth"
	TokenSourceExternal TokenSource = "external"
)

// CredentialOrigin tags where the bearer used on a Graph call came from.
type CredentialOrigin string

const (
	OriginExternal     CredentialOrigin = "external"
	OriginOAuthSession CredentialOrigin = "oauth-session"
)

// AuthMethod records how a session's Microsoft user was authenticated.
type AuthMethod string

const (
	AuthMethodOAuth         AuthMethod = "oauth"
	AuthMethodExternalToken AuthMethod = "external_token"
)

// Secret store key scopes. Keys are laid out as "<principal>:<scope>".
const (
	ScopeExternalToken   = "external-graph-token"
	ScopeTokenMetadata   = "external-token-metadata"
	ScopeTokenSource     = "token-source"
	StorageKeySeparator  = ":"
	PrincipalPrefixMS365 = "ms365:"
	PrincipalPrefixUser  = "user:"
)

// Context keys used across middleware and handlers.
const (
	ContextKeyRequestID = "request_id"
	ContextKeyAuthUser  = "auth_user_id"
	ContextKeyDeviceID  = "auth_device_id"
	ContextKeySession   = "session"
)

// HTTP headers the gateway reads or writes.
const (
	HeaderRequestID   = "X-Request-ID"
	HeaderSessionID   = "X-Session-Id"
	HeaderClientReqID = "client-request-id"
	SessionCookieName = "graphgate_session"
)

// Timing defaults.
const (
	// ClockSkewTolerance is allowed when checking external token expiry.
	ClockSkewTolerance = 60 * time.Second

	// GraphCallTimeout bounds any single upstream Graph call.
	GraphCallTimeout = 30 * time.Second

	// DefaultSessionTTL is the sliding expiry for stored sessions.
	DefaultSessionTTL = 24 * time.Hour
)

// Graph API defaults.
const (
	GraphBaseURL     = "https://graph.microsoft.com/v1.0"
	GraphProbePath   = "/me"
	DefaultListLimit = 20
	MaxListLimit     = 100
	MaxMessageLength = 10000
)
