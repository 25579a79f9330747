package controller

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"scheduling-gateway/core/errors"

	"github.com/labstack/echo/v4"
)

func newTestContext() (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set(RequestIDKey, "req-123")
	return c, rec
}

func TestError_StatusMapping(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"invalid input", errors.NewAppError(errors.ErrInvalidInput, "bad", nil), http.StatusBadRequest},
		{"not found", errors.NewAppError(errors.ErrNotFound, "missing", nil), http.StatusNotFound},
		{"unauthorized", errors.NewAppError(errors.ErrUnauthorized, "no token", nil), http.StatusUnauthorized},
		{"upstream auth", errors.NewAppError(errors.ErrUpstreamAuth, "no creds", nil), http.StatusBadGateway},
		{"config missing", errors.NewAppError(errors.ErrConfigMissing, "no doc", nil), http.StatusBadGateway},
		{"upstream with status", errors.NewUpstreamError("rate limited", 429, nil), http.StatusTooManyRequests},
		{"upstream without status", errors.NewUpstreamError("connect failed", 0, nil), http.StatusBadGateway},
		{"internal", errors.NewAppError(errors.ErrInternalServer, "boom", nil), http.StatusInternalServerError},
		{"plain error", errTest("plain"), http.StatusInternalServerError},
	}

	base := NewBaseController()
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, rec := newTestContext()
			if err := base.Error(c, tc.err); err != nil {
				t.Fatalf("Error: %v", err)
			}
			if rec.Code != tc.want {
				t.Fatalf("expected status %d, got %d", tc.want, rec.Code)
			}
		})
	}
}

type errTest string

func (e errTest) Error() string { return string(e) }

func TestError_EnvelopeShape(t *testing.T) {
	c, rec := newTestContext()
	base := NewBaseController()

	if err := base.Error(c, errors.NewAppError(errors.ErrNotFound, "Unknown location", nil)); err != nil {
		t.Fatalf("Error: %v", err)
	}

	var body ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if body.OK {
		t.Fatal("expected ok=false")
	}
	if body.RequestID != "req-123" {
		t.Fatalf("expected request id echo, got %q", body.RequestID)
	}
	if body.Error.Code != errors.ErrNotFound || body.Error.Message != "Unknown location" {
		t.Fatalf("unexpected error body: %+v", body.Error)
	}
}

func TestOK_Envelope(t *testing.T) {
	c, _ := newTestContext()
	env := OK(c)
	if !env.OK || env.RequestID != "req-123" {
		t.Fatalf("unexpected envelope: %+v", env)
	}
}
