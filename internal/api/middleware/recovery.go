package middleware

import (
	"fmt"
	"log/slog"
	"net/http"
	"runtime"

	"github.com/labstack/echo/v4"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const stackSize = 4096

// Recovery returns Echo middleware that turns a handler panic into a 500. The
// panic value, request ID and stack are logged and the request span, if any,
// is marked failed.
func Recovery(log *slog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) (err error) {
			defer func() {
				r := recover()
				if r == nil {
					return
				}

				buf := make([]byte, stackSize)
				n := runtime.Stack(buf, false)
				msg := fmt.Sprint(r)

				reqID, _ := c.Get("request_id").(string)
				log.Error("panic recovered",
					"error", msg,
					"method", c.Request().Method,
					"path", c.Request().URL.Path,
					"request_id", reqID,
					"stack", string(buf[:n]),
				)

				span := trace.SpanFromContext(c.Request().Context())
				span.SetStatus(codes.Error, "panic: "+msg)

				err = c.JSON(http.StatusInternalServerError, map[string]string{
					"error": "internal server error",
				})
			}()
			return next(c)
		}
	}
}
