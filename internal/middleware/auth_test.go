package middleware

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ademgunay/nest-api-sandbox/internal/auth"
)

type fakeAuthenticator struct {
	identity auth.Identity
	err      error
	gotToken string
}

func (f *fakeAuthenticator) Authenticate(_ context.Context, token string) (auth.Identity, error) {
	f.gotToken = token
	return f.identity, f.err
}

func protected(t *testing.T, a Authenticator) http.Handler {
	t.Helper()
	return Authenticate(a, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := IdentityFrom(r.Context())
		if !ok {
			t.Error("identity missing from context")
		}
		fmt.Fprintf(w, "%d", id.UserID)
	}))
}

func TestAuthenticate_OK(t *testing.T) {
	a := &fakeAuthenticator{identity: auth.Identity{UserID: 7, Email: "a@mail.com"}}

	req := httptest.NewRequest(http.MethodGet, "/users/me", nil)
	req.Header.Set("Authorization", "bearer tok123")
	rr := httptest.NewRecorder()
	protected(t, a).ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	if rr.Body.String() != "7" {
		t.Errorf("expected user 7, got %q", rr.Body.String())
	}
	if a.gotToken != "tok123" {
		t.Errorf("expected token tok123, got %q", a.gotToken)
	}
}

func TestAuthenticate_Rejections(t *testing.T) {
	cases := []struct {
		name   string
		header string
		err    error
	}{
		{"missing header", "", nil},
		{"wrong scheme", "Basic dXNlcjpwYXNz", nil},
		{"empty token", "Bearer ", nil},
		{"expired", "Bearer x", fmt.Errorf("%w: %w", auth.ErrUnauthenticated, auth.ErrTokenExpired)},
		{"malformed", "Bearer x", fmt.Errorf("%w: %w", auth.ErrUnauthenticated, auth.ErrTokenMalformed)},
		{"unknown user", "Bearer x", fmt.Errorf("%w: user 3 no longer exists", auth.ErrUnauthenticated)},
	}

	var bodies []string
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			a := &fakeAuthenticator{err: tc.err}
			req := httptest.NewRequest(http.MethodGet, "/bookmarks", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rr := httptest.NewRecorder()
			Authenticate(a, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				t.Error("handler must not run")
			})).ServeHTTP(rr, req)

			if rr.Code != http.StatusUnauthorized {
				t.Errorf("expected 401, got %d", rr.Code)
			}
			bodies = append(bodies, rr.Body.String())
		})
	}

	for _, b := range bodies {
		if strings.TrimSpace(b) != `{"error":"unauthorized"}` {
			t.Errorf("unexpected 401 body: %q", b)
		}
	}
}

func TestAuthenticate_StoreFailure(t *testing.T) {
	a := &fakeAuthenticator{err: fmt.Errorf("%w: lookup user", auth.ErrInternal)}

	req := httptest.NewRequest(http.MethodGet, "/bookmarks", nil)
	req.Header.Set("Authorization", "Bearer x")
	rr := httptest.NewRecorder()
	Authenticate(a, nil)(http.NotFoundHandler()).ServeHTTP(rr, req)

	if rr.Code != http.StatusInternalServerError {
		t.Errorf("expected 500, got %d", rr.Code)
	}
}

func TestRejectionReason(t *testing.T) {
	cases := map[string]error{
		"expired":      fmt.Errorf("%w: %w", auth.ErrUnauthenticated, auth.ErrTokenExpired),
		"malformed":    fmt.Errorf("%w: %w", auth.ErrUnauthenticated, auth.ErrTokenMalformed),
		"invalid":      fmt.Errorf("%w: %w", auth.ErrUnauthenticated, auth.ErrInvalidToken),
		"unknown_user": auth.ErrUnauthenticated,
	}
	for want, err := range cases {
		if got := rejectionReason(err); got != want {
			t.Errorf("rejectionReason(%v) = %q, want %q", err, got, want)
		}
	}
	if errors.Is(auth.ErrUnauthenticated, auth.ErrInvalidToken) {
		t.Error("sentinels must stay distinct")
	}
}
