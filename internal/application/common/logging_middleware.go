package common

import (
	"context"
	"log/slog"
	"time"

	"github.com/strangergwenn/AstralShipwright-sub002/internal/application/mediator"
)

// LoggingMiddleware logs every request with its duration and outcome, and
// hands the logger to handlers through the context
func LoggingMiddleware(logger *slog.Logger) mediator.Middleware {
	return func(ctx context.Context, request mediator.Request, next mediator.HandlerFunc) (mediator.Response, error) {
		name := mediator.RequestName(request)
		requestLogger := logger.With("request", name)
		ctx = WithLogger(ctx, requestLogger)

		start := time.Now()
		response, err := next(ctx, request)
		duration := time.Since(start)

		if err != nil {
			requestLogger.Warn("request failed", "duration", duration, "error", err)
		} else {
			requestLogger.Debug("request handled", "duration", duration)
		}
		return response, err
	}
}
