package logger_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"noteful/pkg/logger"
)

func TestNewLogger(t *testing.T) {
	levels := []string{"debug", "info", "warn", "warning", "error", "invalid", ""}

	for _, env := range []logger.Environment{logger.Development, logger.Production} {
		for _, level := range levels {
			t.Run(string(env)+"/level="+level, func(t *testing.T) {
				log, err := logger.NewLogger(env, level)
				require.NoError(t, err)
				require.NotNil(t, log)

				ctx := logger.NewRequestIDContext(context.Background(), "")
				assert.NotPanics(t, func() {
					log.Debug(ctx, "debug", zap.String("k", "v"))
					log.Info(ctx, "info")
					log.Warn(ctx, "warn")
					log.Error(ctx, "error")
					log.With(zap.String("method", "test")).Info(context.Background(), "without request id")
				})
			})
		}
	}
}

func TestFromContext(t *testing.T) {
	t.Run("logger в контексте", func(t *testing.T) {
		testLogger, err := logger.NewLogger(logger.Development, "debug")
		require.NoError(t, err)

		type otherKey struct{}
		ctx := logger.NewContext(context.Background(), testLogger)
		ctx = context.WithValue(ctx, otherKey{}, "value")

		got, err := logger.FromContext(ctx)
		require.NoError(t, err)
		assert.Same(t, testLogger, got)
	})

	t.Run("нет logger в контексте", func(t *testing.T) {
		got, err := logger.FromContext(context.Background())
		require.Error(t, err)
		assert.Nil(t, got)
		assert.ErrorIs(t, err, logger.ErrLoggerNotFound)
	})
}

func TestLog(t *testing.T) {
	t.Run("предпочитает logger из контекста", func(t *testing.T) {
		ctxLogger, err := logger.NewLogger(logger.Development, "debug")
		require.NoError(t, err)

		ctx := logger.NewContext(context.Background(), ctxLogger)
		assert.Same(t, ctxLogger, logger.Log(ctx))
	})

	t.Run("глобальный logger", func(t *testing.T) {
		global, err := logger.NewLogger(logger.Production, "info")
		require.NoError(t, err)

		logger.SetGlobalLogger(global)
		t.Cleanup(func() { logger.SetGlobalLogger(nil) })

		assert.Same(t, global, logger.Log(context.Background()))
	})

	t.Run("резервный logger", func(t *testing.T) {
		logger.SetGlobalLogger(nil)
		assert.NotNil(t, logger.Log(context.Background()))
	})
}

func TestRequestID(t *testing.T) {
	t.Run("заданный идентификатор", func(t *testing.T) {
		ctx := logger.NewRequestIDContext(context.Background(), "req-1")

		id, ok := logger.GetRequestID(ctx)
		require.True(t, ok)
		assert.Equal(t, "req-1", id)
	})

	t.Run("пустой идентификатор генерируется", func(t *testing.T) {
		ctx := logger.NewRequestIDContext(context.Background(), "")

		id, ok := logger.GetRequestID(ctx)
		require.True(t, ok)
		_, err := uuid.Parse(id)
		assert.NoError(t, err)
	})

	t.Run("нет идентификатора", func(t *testing.T) {
		_, ok := logger.GetRequestID(context.Background())
		assert.False(t, ok)
	})

	t.Run("уникальность", func(t *testing.T) {
		assert.NotEqual(t, logger.GenerateRequestID(), logger.GenerateRequestID())
	})
}
