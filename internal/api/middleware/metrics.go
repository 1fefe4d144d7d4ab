// Package middleware provides Echo middleware for osrs-price-tracker.
package middleware

import (
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/donaldgifford/osrs-price-tracker/internal/metrics"
)

// probePaths are the operational endpoints excluded from request metrics.
// The value is the probe label reported through metrics.ProbeUp; the scrape
// endpoint has none.
var probePaths = map[string]string{
	"/metrics": "",
	"/healthz": "healthz",
	"/readyz":  "readyz",
}

// Metrics returns Echo middleware that records request duration and status
// by route template. Probe paths only update metrics.ProbeUp.
func Metrics() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			path := c.Path()
			if path == "" {
				path = c.Request().URL.Path
			}

			if probe, skip := probePaths[path]; skip {
				err := next(c)
				if probe != "" {
					metrics.ProbeUp.WithLabelValues(probe).Set(up(c.Response().Status))
				}
				return err
			}

			start := time.Now()

			err := next(c)

			status := strconv.Itoa(c.Response().Status)
			method := c.Request().Method

			metrics.HTTPRequestDuration.
				WithLabelValues(method, path, status).
				Observe(time.Since(start).Seconds())
			metrics.HTTPRequestsTotal.
				WithLabelValues(method, path, status).
				Inc()

			return err
		}
	}
}

func up(status int) float64 {
	if status >= 200 && status < 300 {
		return 1
	}
	return 0
}
