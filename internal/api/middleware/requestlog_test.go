package middleware

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace"
)

// call is one request through the middleware and whether it should log.
type call struct {
	path   string
	status int
	logged bool
}

func TestRequestLog_Sequences(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		calls []call
	}{
		{
			name: "api paths log every request",
			calls: []call{
				{"/api/v1/items", http.StatusOK, true},
				{"/api/v1/items", http.StatusOK, true},
			},
		},
		{
			name: "probe logs first success only",
			calls: []call{
				{"/healthz", http.StatusOK, true},
				{"/healthz", http.StatusOK, false},
				{"/healthz", http.StatusOK, false},
			},
		},
		{
			name: "probe failures always log",
			calls: []call{
				{"/readyz", http.StatusServiceUnavailable, true},
				{"/readyz", http.StatusServiceUnavailable, true},
			},
		},
		{
			name: "failure after quiet successes logs",
			calls: []call{
				{"/readyz", http.StatusOK, true},
				{"/readyz", http.StatusOK, false},
				{"/readyz", http.StatusServiceUnavailable, true},
			},
		},
		{
			name: "probes are tracked per path",
			calls: []call{
				{"/healthz", http.StatusOK, true},
				{"/readyz", http.StatusOK, true},
				{"/metrics", http.StatusOK, true},
				{"/metrics", http.StatusOK, false},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			e := echo.New()
			mw := RequestLog(slog.New(slog.NewTextHandler(&buf, nil)))

			for i, cl := range tt.calls {
				before := buf.Len()
				handler := mw(func(c echo.Context) error { return c.NoContent(cl.status) })

				req := httptest.NewRequest(http.MethodGet, cl.path, http.NoBody)
				require.NoError(t, handler(e.NewContext(req, httptest.NewRecorder())))

				assert.Equal(t, cl.logged, buf.Len() > before, "call %d (%s %d)", i, cl.path, cl.status)
			}
		})
	}
}

func TestRequestLog_Fields(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		method     string
		status     int
		providedID string
		want       []string
	}{
		{
			name:   "success logs at info with a generated id",
			method: http.MethodGet,
			status: http.StatusOK,
			want:   []string{"level=INFO", "method=GET", "path=/api/v1/consumables", "status=200", "duration_ms=", "request_id="},
		},
		{
			name:   "server error logs at warn",
			method: http.MethodPost,
			status: http.StatusInternalServerError,
			want:   []string{"level=WARN", "method=POST", "status=500"},
		},
		{
			name:       "provided request id is kept",
			method:     http.MethodGet,
			status:     http.StatusOK,
			providedID: "sync-7f3a",
			want:       []string{"request_id=sync-7f3a"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			e := echo.New()
			req := httptest.NewRequest(tt.method, "/api/v1/consumables", http.NoBody)
			if tt.providedID != "" {
				req.Header.Set(requestIDHeader, tt.providedID)
			}
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			handler := RequestLog(slog.New(slog.NewTextHandler(&buf, nil)))(func(c echo.Context) error {
				return c.NoContent(tt.status)
			})
			require.NoError(t, handler(c))

			for _, f := range tt.want {
				assert.Contains(t, buf.String(), f)
			}

			respID := rec.Header().Get(requestIDHeader)
			require.NotEmpty(t, respID)
			assert.Equal(t, respID, c.Get("request_id"))
			if tt.providedID != "" {
				assert.Equal(t, tt.providedID, respID)
			}
			assert.False(t, strings.Contains(buf.String(), "trace_id="), "no span, no trace id")
		})
	}
}

func TestRequestLog_TraceID(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	traceID, err := trace.TraceIDFromHex("4bf92f3577b34da6a3ce929d0e0e4736")
	require.NoError(t, err)
	spanID, err := trace.SpanIDFromHex("00f067aa0ba902b7")
	require.NoError(t, err)
	sc := trace.NewSpanContext(trace.SpanContextConfig{TraceID: traceID, SpanID: spanID})

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/consumables", http.NoBody)
	req = req.WithContext(trace.ContextWithSpanContext(req.Context(), sc))

	handler := RequestLog(logger)(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	require.NoError(t, handler(e.NewContext(req, httptest.NewRecorder())))

	assert.Contains(t, buf.String(), "trace_id=4bf92f3577b34da6a3ce929d0e0e4736")
}
