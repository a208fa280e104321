package observe

import (
	"bytes"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"envhealth-api/pkg/logger"
)

type recordingHub struct {
	mu     sync.Mutex
	events []*sentry.Event
}

func (r *recordingHub) CaptureEvent(event *sentry.Event) *sentry.EventID {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
	id := sentry.EventID("test")
	return &id
}

func (r *recordingHub) Flush(time.Duration) bool { return true }

func TestSentryHook_ForwardsOnlyErrors(t *testing.T) {
	hub := &recordingHub{}
	hook := newSentryHook("test", "envhealth-api", hub)

	var stdout bytes.Buffer
	l := logger.NewZapLogger(logger.Options{AppName: "envhealth-api", AppEnv: "test"}, &stdout, hook)

	l.Info("all good")
	l.Warning("provider degraded")
	l.Error(errors.New("openaq unreachable"), map[string]any{"city": "Delhi"})

	require.Len(t, hub.events, 1)
	event := hub.events[0]
	assert.Equal(t, sentry.LevelError, event.Level)
	assert.Equal(t, "openaq unreachable", event.Message)
	assert.Equal(t, "test", event.Environment)
	assert.Equal(t, "openaq unreachable", event.Extra["Error"])
	assert.Equal(t, "envhealth-api", event.Extra["AppName"])
	assert.False(t, event.Timestamp.IsZero())
	assert.True(t, hook.Flush())
}

func TestSentryHook_WriteToleratesGarbage(t *testing.T) {
	hub := &recordingHub{}
	hook := newSentryHook("test", "envhealth-api", hub)

	n, err := hook.Write([]byte("not json"))
	assert.NoError(t, err)
	assert.Equal(t, len("not json"), n)
	assert.Empty(t, hub.events)

	forwarded, err := hook.capture([]byte("not json"))
	assert.False(t, forwarded)
	assert.Error(t, err)
}

func TestSentryHook_MapLevel(t *testing.T) {
	hook := &SentryHook{}

	assert.Equal(t, sentry.LevelDebug, hook.mapLevel(zapcore.DebugLevel))
	assert.Equal(t, sentry.LevelInfo, hook.mapLevel(zapcore.InfoLevel))
	assert.Equal(t, sentry.LevelWarning, hook.mapLevel(zapcore.WarnLevel))
	assert.Equal(t, sentry.LevelError, hook.mapLevel(zapcore.ErrorLevel))
	assert.Equal(t, sentry.LevelFatal, hook.mapLevel(zapcore.FatalLevel))
}

func TestNewSentryHook_RequiresDSN(t *testing.T) {
	_, err := NewSentryHook("test", "envhealth-api", "", false)
	assert.Error(t, err)
}
