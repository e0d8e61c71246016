package log_test

import (
	"testing"

	"go.uber.org/zap/zapcore"

	"github.com/erigontech/chainview/log"
	"github.com/stretchr/testify/require"
)

func TestNewAndLog(t *testing.T) {
	l, err := log.New(log.Options{Level: zapcore.InfoLevel})
	require.NoError(t, err)
	l.Info("starting up", "port", 8080)
	l.Warn("degraded mode", "reason", "store unreachable")
	l.Sync()
}

func TestNewWithRotatingFile(t *testing.T) {
	dir := t.TempDir()
	l, err := log.New(log.Options{Path: dir + "/chainview.log", Level: zapcore.DebugLevel})
	require.NoError(t, err)
	l.Debug("scan batch", "collection", "transactions", "count", 25)
	l.Sync()
}

func TestWithAddsFields(t *testing.T) {
	l, err := log.New(log.Options{Level: zapcore.InfoLevel})
	require.NoError(t, err)
	scoped := l.With("requestId", "abc123")
	scoped.Info("handled request")
	l.Sync()
}
