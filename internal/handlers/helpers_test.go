package handlers

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"

	"github.com/go-chi/chi/v5"

	"github.com/ademgunay/nest-api-sandbox/internal/auth"
	"github.com/ademgunay/nest-api-sandbox/internal/middleware"
)

// authedRequest returns a request carrying identity userID and the given chi URL params.
func authedRequest(method, path string, body []byte, userID int, params map[string]string) *http.Request {
	var r *http.Request
	if body != nil {
		r = httptest.NewRequest(method, path, bytes.NewReader(body))
		r.Header.Set("Content-Type", "application/json")
	} else {
		r = httptest.NewRequest(method, path, nil)
	}
	rctx := chi.NewRouteContext()
	for k, v := range params {
		rctx.URLParams.Add(k, v)
	}
	ctx := context.WithValue(r.Context(), chi.RouteCtxKey, rctx)
	ctx = middleware.WithIdentity(ctx, auth.Identity{UserID: userID, Email: "owner@mail.com"})
	return r.WithContext(ctx)
}
