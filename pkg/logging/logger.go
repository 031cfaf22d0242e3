// Package logging provides the structured logger used across the
// bot. Output is backed by zap; RedactingLogger masks session
// secrets before anything is written.
package logging

import (
	"fmt"
	"strings"
)

// Logger is what the engine, the platform client and the CLI log
// through. Implementations must be safe for concurrent use.
type Logger interface {
	Info(msg string, fields ...Field)
	Warn(msg string, fields ...Field)
	Error(msg string, fields ...Field)
	Debug(msg string, fields ...Field)

	// WithFields derives a logger that stamps fields on every
	// line, such as the run id and campaign key of a run.
	WithFields(fields ...Field) Logger

	// LogAPIRequest and LogAPIResponse record one platform round
	// trip; both carry the same request id.
	LogAPIRequest(request APIRequestLog)
	LogAPIResponse(response APIResponseLog)

	// Close flushes the sink.
	Close() error
}

// Field is one structured key/value on a log line.
type Field struct {
	Key   string
	Value any
}

// APIRequestLog is an outgoing call to the platform or a shortener.
// Headers and Body may carry session secrets and are masked by
// RedactingLogger.
type APIRequestLog struct {
	Timestamp  string            `json:"timestamp"`
	RequestID  string            `json:"request_id"`
	Method     string            `json:"method"`
	URL        string            `json:"url"`
	Headers    map[string]string `json:"headers"`
	Body       string            `json:"body,omitempty"`
	BodyLength int               `json:"body_length"`
}

// APIResponseLog is the reply to an APIRequestLog with the same
// RequestID. BodyPreview holds at most the first 256 bytes.
type APIResponseLog struct {
	Timestamp      string            `json:"timestamp"`
	RequestID      string            `json:"request_id"`
	StatusCode     int               `json:"status_code"`
	Headers        map[string]string `json:"headers"`
	BodyPreview    string            `json:"body_preview,omitempty"`
	BodyLength     int               `json:"body_length"`
	ResponseTimeMs int64             `json:"response_time_ms"`
}

// LogLevel is the minimum severity a ZapLogger writes.
type LogLevel int

const (
	LevelDebug LogLevel = iota
	// LevelInfo is used when the config leaves logging.level
	// empty.
	LevelInfo
	LevelWarn
	LevelError
)

func (l LogLevel) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// ParseLevel maps a configuration string (debug, info, warn,
// error; case-insensitive) to a LogLevel. The empty string is
// LevelInfo.
func ParseLevel(s string) (LogLevel, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LevelDebug, nil
	case "", "info":
		return LevelInfo, nil
	case "warn", "warning":
		return LevelWarn, nil
	case "error":
		return LevelError, nil
	}
	return LevelInfo, fmt.Errorf("unknown log level %q", s)
}
