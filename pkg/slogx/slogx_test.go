package slogx

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStatusLevel(t *testing.T) {
	require.Equal(t, slog.LevelInfo, StatusLevel(http.StatusOK))
	require.Equal(t, slog.LevelInfo, StatusLevel(http.StatusConflict))
	require.Equal(t, slog.LevelWarn, StatusLevel(http.StatusUnauthorized))
	require.Equal(t, slog.LevelWarn, StatusLevel(http.StatusUnprocessableEntity))
	require.Equal(t, slog.LevelWarn, StatusLevel(http.StatusTooManyRequests))
	require.Equal(t, slog.LevelError, StatusLevel(http.StatusServiceUnavailable))
}

func TestParseLevel(t *testing.T) {
	require.Equal(t, slog.LevelDebug, parseLevel("DEBUG"))
	require.Equal(t, slog.LevelWarn, parseLevel("warning"))
	require.Equal(t, slog.LevelError, parseLevel("error"))
	require.Equal(t, slog.LevelInfo, parseLevel("nonsense"))
}

func TestFromContextFallsBackToDefault(t *testing.T) {
	require.Equal(t, slog.Default(), FromContext(context.Background()))
}

func TestHTTPMiddleware(t *testing.T) {
	var buf bytes.Buffer
	base := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	var inner *slog.Logger
	h := HTTPMiddleware(base)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		inner = FromContext(r.Context())
		w.WriteHeader(http.StatusUnprocessableEntity)
	}))

	req := httptest.NewRequest(http.MethodPost, "/api/users", nil)
	req.Header.Set(RequestIDHeader, "req-123")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.NotNil(t, inner)
	require.Equal(t, "req-123", rec.Header().Get(RequestIDHeader))

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	require.Equal(t, "http_request", entry["msg"])
	require.Equal(t, "WARN", entry["level"])
	require.Equal(t, "req-123", entry["req_id"])
	require.EqualValues(t, http.StatusUnprocessableEntity, entry["status"])
}

func TestHTTPMiddlewareGeneratesRequestID(t *testing.T) {
	var buf bytes.Buffer
	base := slog.New(slog.NewJSONHandler(&buf, nil))

	h := HTTPMiddleware(base)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok"))
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/livez", nil))

	require.Len(t, rec.Header().Get(RequestIDHeader), 26)
}

func TestNewWritesToOutputWithServiceAttrs(t *testing.T) {
	prev := slog.Default()
	var buf bytes.Buffer
	logger := New(Config{Version: "v1.2.3", Env: "test", Level: "debug", Output: &buf})

	logger.Debug("hello")
	require.Same(t, prev, slog.Default(), "custom output must not replace the default logger")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	require.Equal(t, DefaultService, entry["service"])
	require.Equal(t, "v1.2.3", entry["version"])
	require.Equal(t, "test", entry["env"])
	require.Equal(t, "hello", entry["msg"])
}

func TestNewTextFormat(t *testing.T) {
	var buf bytes.Buffer
	New(Config{Service: "leases", Format: "TEXT", Output: &buf}).Info("started")
	require.Contains(t, buf.String(), "service=leases")
	require.Contains(t, buf.String(), "msg=started")
}

func TestWithAccountScopesLogger(t *testing.T) {
	var buf bytes.Buffer
	base := slog.New(slog.NewJSONHandler(&buf, nil))

	ctx, log := WithAccount(WithContext(context.Background(), base), "acc-1")
	log.Info("scoped")
	FromContext(ctx).Info("again")

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 2)
	for _, line := range lines {
		var entry map[string]any
		require.NoError(t, json.Unmarshal(line, &entry))
		require.Equal(t, "acc-1", entry["account_id"])
	}
}
