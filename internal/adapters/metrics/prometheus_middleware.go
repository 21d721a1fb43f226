package metrics

import (
	"context"
	"time"

	"github.com/strangergwenn/AstralShipwright-sub002/internal/application/mediator"
)

// PrometheusMiddleware records the duration and outcome of every request
// dispatched through the mediator. A nil collector disables it.
func PrometheusMiddleware(collector *CommandMetricsCollector) mediator.Middleware {
	return func(ctx context.Context, request mediator.Request, next mediator.HandlerFunc) (mediator.Response, error) {
		if collector == nil {
			return next(ctx, request)
		}

		start := time.Now()
		response, err := next(ctx, request)
		collector.RecordCommandExecution(mediator.RequestName(request), time.Since(start).Seconds(), err == nil)

		return response, err
	}
}
