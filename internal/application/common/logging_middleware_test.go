package common_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/strangergwenn/AstralShipwright-sub002/internal/application/common"
	"github.com/strangergwenn/AstralShipwright-sub002/internal/application/mediator"
)

type pingCommand struct{}

func TestLoggingMiddleware_InjectsLoggerAndLogsFailures(t *testing.T) {
	// Arrange
	var out bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&out, &slog.HandlerOptions{Level: slog.LevelDebug}))
	middleware := common.LoggingMiddleware(logger)

	var seen *slog.Logger
	failing := func(ctx context.Context, request mediator.Request) (mediator.Response, error) {
		seen = common.LoggerFromContext(ctx)
		seen.Info("inside handler")
		return nil, errors.New("boom")
	}

	// Act
	_, err := middleware(context.Background(), &pingCommand{}, failing)

	// Assert
	require.Error(t, err)
	require.NotNil(t, seen)
	assert.Contains(t, out.String(), "inside handler")
	assert.Contains(t, out.String(), "request=pingCommand")
	assert.Contains(t, out.String(), "request failed")
}

func TestLoggerFromContext_FallsBackToDiscard(t *testing.T) {
	logger := common.LoggerFromContext(context.Background())

	assert.NotNil(t, logger)
	logger.Info("dropped")
}
