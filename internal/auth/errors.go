package auth

import "errors"

// Outcome kinds surfaced by the auth service. The transport layer maps them to status codes.
var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrEmailTaken         = errors.New("credentials taken")
	ErrInvalidCredentials = errors.New("credentials incorrect")
	ErrUnauthenticated    = errors.New("unauthenticated")
	ErrInternal           = errors.New("internal error")
)

// Token validation failures. Only used for diagnostics; callers outside this package see
// ErrUnauthenticated.
var (
	ErrInvalidToken   = errors.New("invalid token")
	ErrTokenExpired   = errors.New("token expired")
	ErrTokenMalformed = errors.New("token malformed")
)

// ErrMalformedHash is returned by Verify when the stored digest cannot be decoded.
var ErrMalformedHash = errors.New("malformed password hash")
