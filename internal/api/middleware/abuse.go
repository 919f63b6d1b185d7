// Package middleware implements the request pipeline: blocklist gate,
// abuse monitor, credential verification, principal resolution, and the
// role gate. Per-request order is fixed: a blocklisted source is rejected
// before the monitor updates, and the monitor runs before any credential
// work.
package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/byteverse/platform-api/internal/abuse"
	"github.com/byteverse/platform-api/internal/api/metrics"
)

// BlocklistGate rejects any request whose source address is blocklisted.
// It runs before everything else, including the abuse monitor. failClosed
// controls what a store fault means: false keeps serving on the in-process
// monitor alone, true denies every request until the store recovers.
func BlocklistGate(blocks abuse.Blocklist, failClosed bool, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			addr := c.RealIP()
			blocked, err := blocks.Contains(c.Request().Context(), addr)
			if err != nil {
				log.Error().Err(err).Str("addr", addr).Msg("blocklist lookup failed")
				if failClosed {
					return echo.NewHTTPError(http.StatusServiceUnavailable, "service unavailable")
				}
				// The in-process abuse monitor still covers the request.
				return next(c)
			}
			if blocked {
				metrics.BlocklistRejectionsTotal.Inc()
				return echo.NewHTTPError(http.StatusForbidden, "access denied")
			}
			return next(c)
		}
	}
}

// AbuseMonitor feeds every request into the monitor and rejects the
// request that crosses a threshold. Subsequent requests from the same
// source are cut off earlier, by the blocklist gate.
func AbuseMonitor(monitor *abuse.Monitor) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			verdict := monitor.Observe(c.Request().Context(), c.RealIP(), c.Request().URL.Path)
			if verdict.Blocked() {
				metrics.SourcesBlockedTotal.WithLabelValues(verdict.Reason()).Inc()
				return echo.NewHTTPError(http.StatusForbidden, "access denied")
			}
			return next(c)
		}
	}
}
