package config

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func TestInitLogger(t *testing.T) {
	logger, err := InitLogger("warn", "json")
	require.NoError(t, err)
	assert.False(t, logger.Core().Enabled(zapcore.InfoLevel))
	assert.True(t, logger.Core().Enabled(zapcore.WarnLevel))

	logger, err = InitLogger("debug", "console")
	require.NoError(t, err)
	assert.True(t, logger.Core().Enabled(zapcore.DebugLevel))

	_, err = InitLogger("chatty", "json")
	assert.Error(t, err)
}

func TestGormLogger_Trace(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	l := NewGormLogger(zap.New(core), gormlogger.Warn)
	sql := func() (string, int64) { return "SELECT 1", 1 }
	ctx := context.Background()

	l.Trace(ctx, time.Now(), sql, nil)
	assert.Equal(t, 0, logs.Len(), "fast successful query is below warn")

	l.Trace(ctx, time.Now(), sql, gorm.ErrRecordNotFound)
	assert.Equal(t, 0, logs.Len(), "missing row is not a failure")

	l.Trace(ctx, time.Now(), sql, errors.New("deadlock"))
	require.Equal(t, 1, logs.Len())
	assert.Equal(t, zapcore.ErrorLevel, logs.All()[0].Level)

	l.Trace(ctx, time.Now().Add(-time.Second), sql, nil)
	require.Equal(t, 2, logs.Len())
	assert.Equal(t, "slow query", logs.All()[1].Message)

	verbose := l.LogMode(gormlogger.Info)
	verbose.Trace(ctx, time.Now(), sql, nil)
	assert.Equal(t, 3, logs.Len())

	silent := l.LogMode(gormlogger.Silent)
	silent.Trace(ctx, time.Now(), sql, errors.New("ignored"))
	assert.Equal(t, 3, logs.Len())
}

func TestInitRedis_Disabled(t *testing.T) {
	client, err := InitRedis(context.Background(), &Config{})
	assert.NoError(t, err)
	assert.Nil(t, client)
}

func TestGormConfig_NowFunc(t *testing.T) {
	pg := gormConfig(&Config{DBDriver: "postgres", LogLevel: "info"}, zap.NewNop())
	require.NotNil(t, pg.NowFunc)
	for i := 0; i < 100; i++ {
		now := pg.NowFunc()
		assert.Zero(t, now.Nanosecond()%int(time.Microsecond), "postgres timestamps carry at most microseconds")
		assert.Equal(t, time.UTC, now.Location())
	}

	my := gormConfig(&Config{DBDriver: "mysql", LogLevel: "debug"}, zap.NewNop())
	assert.Nil(t, my.NowFunc)
}
