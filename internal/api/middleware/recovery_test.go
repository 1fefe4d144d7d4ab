package middleware

import (
	"bytes"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestRecovery(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		method   string
		path     string
		handler  echo.HandlerFunc
		wantCode int
		wantLog  []string
	}{
		{
			name:     "passes through without panic",
			method:   http.MethodGet,
			path:     "/api/v1/items",
			handler:  func(c echo.Context) error { return c.String(http.StatusOK, "ok") },
			wantCode: http.StatusOK,
		},
		{
			name:     "string panic",
			method:   http.MethodGet,
			path:     "/api/v1/optimal/equipment",
			handler:  func(echo.Context) error { panic("index out of range") },
			wantCode: http.StatusInternalServerError,
			wantLog:  []string{"panic recovered", "index out of range", "path=/api/v1/optimal/equipment", "stack="},
		},
		{
			name:     "non-string panic",
			method:   http.MethodPost,
			path:     "/api/v1/sync/prices",
			handler:  func(echo.Context) error { panic(42) },
			wantCode: http.StatusInternalServerError,
			wantLog:  []string{"error=42", "method=POST"},
		},
		{
			name:     "error panic",
			method:   http.MethodGet,
			path:     "/api/v1/consumables",
			handler:  func(echo.Context) error { panic(errors.New("nil session")) },
			wantCode: http.StatusInternalServerError,
			wantLog:  []string{"nil session"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			e := echo.New()
			rec := httptest.NewRecorder()
			c := e.NewContext(httptest.NewRequest(tt.method, tt.path, http.NoBody), rec)

			require.NoError(t, Recovery(slog.New(slog.NewTextHandler(&buf, nil)))(tt.handler)(c))
			assert.Equal(t, tt.wantCode, rec.Code)

			if len(tt.wantLog) == 0 {
				assert.Empty(t, buf.String())
				return
			}
			assert.JSONEq(t, `{"error":"internal server error"}`, rec.Body.String())
			for _, w := range tt.wantLog {
				assert.Contains(t, buf.String(), w)
			}
		})
	}
}

func TestRecovery_MarksSpan(t *testing.T) {
	t.Parallel()

	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	ctx, span := tp.Tracer("test").Start(t.Context(), "GET /api/v1/items/:id")

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/items/4151", http.NoBody).WithContext(ctx)
	c := e.NewContext(req, httptest.NewRecorder())

	handler := Recovery(slog.New(slog.DiscardHandler))(func(echo.Context) error {
		panic("boom")
	})
	require.NoError(t, handler(c))
	span.End()

	ended := recorder.Ended()
	require.Len(t, ended, 1)
	assert.Equal(t, codes.Error, ended[0].Status().Code)
	assert.Equal(t, "panic: boom", ended[0].Status().Description)
}

func TestRecovery_LogsRequestID(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/consumables", http.NoBody)
	req.Header.Set(requestIDHeader, "req-abc")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	// RequestLog runs outside Recovery, as in the server chain.
	handler := RequestLog(logger)(Recovery(logger)(func(_ echo.Context) error {
		panic("nil map write")
	}))

	require.NoError(t, handler(c))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, buf.String(), "request_id=req-abc")
	assert.Contains(t, buf.String(), "level=WARN")
}
