package observe

import (
	"log"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/goccy/go-json"
	"github.com/pkg/errors"
	"go.uber.org/zap/zapcore"

	"envhealth-api/pkg/logger"
)

const (
	_sentryMaxErrorDepth        int           = 9
	_sentryFlushTimeout         time.Duration = 5 * time.Second
	_sentryServerRequestTimeout time.Duration = 5 * time.Second
)

// EventCapturer is the subset of the sentry hub the hook needs.
type EventCapturer interface {
	CaptureEvent(event *sentry.Event) *sentry.EventID
	Flush(timeout time.Duration) bool
}

// SentryHook is an io.Writer for the zap core. Error, panic and fatal entries
// become Sentry events; everything else is dropped.
type SentryHook struct {
	appZone string
	appName string
	hub     EventCapturer
}

func NewSentryHook(appZone, appName, dsn string, isDebug bool) (*SentryHook, error) {
	if dsn == "" {
		return nil, errors.New("sentry: no DSN")
	}

	sentryTransport := sentry.NewHTTPTransport()
	sentryTransport.Timeout = _sentryServerRequestTimeout

	client, err := sentry.NewClient(sentry.ClientOptions{
		AttachStacktrace: true,
		Debug:            isDebug,
		Dsn:              dsn,
		Environment:      appZone,
		MaxErrorDepth:    _sentryMaxErrorDepth,
		ServerName:       appName,
		Transport:        sentryTransport,
	})
	if err != nil {
		return nil, errors.Wrap(err, "sentry: init client")
	}

	return newSentryHook(appZone, appName, sentry.NewHub(client, sentry.NewScope())), nil
}

func newSentryHook(appZone, appName string, hub EventCapturer) *SentryHook {
	return &SentryHook{
		appZone: appZone,
		appName: appName,
		hub:     hub,
	}
}

func (*SentryHook) mapLevel(zl zapcore.Level) sentry.Level {
	switch zl {
	case zapcore.DebugLevel, zapcore.InvalidLevel:
		return sentry.LevelDebug
	case zapcore.InfoLevel:
		return sentry.LevelInfo
	case zapcore.WarnLevel:
		return sentry.LevelWarning
	case zapcore.ErrorLevel:
		return sentry.LevelError
	case zapcore.DPanicLevel, zapcore.FatalLevel, zapcore.PanicLevel:
		return sentry.LevelFatal
	}

	return sentry.LevelDebug
}

type zapEntry struct {
	Level      string `json:"level"`
	AppName    string `json:"app_name"`
	AppZone    string `json:"app_zone"`
	CallerFile string `json:"caller_file"`
	CallerLine int    `json:"caller_line"`
	CallerFunc string `json:"caller_func"`
	Stack      string `json:"stack"`
	Message    string `json:"msg"`
	Error      string `json:"error"`
	Timestamp  string `json:"timestamp"`
}

// Write never fails: a line that cannot be forwarded must not break logging.
func (h *SentryHook) Write(p []byte) (int, error) {
	if _, err := h.capture(p); err != nil {
		log.Println(err.Error())
	}
	return len(p), nil
}

func (h *SentryHook) capture(p []byte) (bool, error) {
	var t zapEntry
	if err := json.Unmarshal(p, &t); err != nil {
		return false, errors.Wrap(err, "[SentryHook] json.Unmarshal data")
	}

	level, err := zapcore.ParseLevel(t.Level)
	if err != nil {
		return false, errors.Wrap(err, "[SentryHook] parse zap level")
	}
	if level < zapcore.ErrorLevel || t.Message == "" {
		return false, nil
	}

	timestamp, err := time.Parse(logger.TimeLayout, t.Timestamp)
	if err != nil {
		timestamp = time.Now().UTC()
	}

	event := sentry.NewEvent()
	event.Environment = h.appZone
	event.Level = h.mapLevel(level)
	event.Timestamp = timestamp
	event.Message = t.Message
	event.Extra["AppName"] = h.appName
	event.Extra["Error"] = t.Error
	event.Extra["CallerFile"] = t.CallerFile
	event.Extra["CallerLine"] = t.CallerLine
	event.Extra["CallerFunc"] = t.CallerFunc
	event.Extra["Stack"] = t.Stack
	event.Exception = append(event.Exception, sentry.Exception{
		Type:  t.Message,
		Value: t.Error,
	})

	h.hub.CaptureEvent(event)
	return true, nil
}

// Flush waits for buffered events to be delivered.
func (h *SentryHook) Flush() bool {
	return h.hub.Flush(_sentryFlushTimeout)
}
