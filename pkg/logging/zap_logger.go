package logging

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// LoggerConfig configures the ZapLogger.
type LoggerConfig struct {
	// OutputPath receives log lines; empty means stderr.
	OutputPath string
	// Format is "json" or "console".
	Format string
	Level  LogLevel
	Fields map[string]any
}

// ZapLogger implements Logger on top of a zap.Logger.
type ZapLogger struct {
	z *zap.Logger
}

// NewZapLogger builds a ZapLogger from config.
func NewZapLogger(config LoggerConfig) (*ZapLogger, error) {
	var encCfg zapcore.EncoderConfig
	var enc zapcore.Encoder
	switch config.Format {
	case "", "json":
		encCfg = zap.NewProductionEncoderConfig()
		encCfg.TimeKey = "timestamp"
		encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
		enc = zapcore.NewJSONEncoder(encCfg)
	case "console":
		encCfg = zap.NewDevelopmentEncoderConfig()
		encCfg.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
		enc = zapcore.NewConsoleEncoder(encCfg)
	default:
		return nil, fmt.Errorf("unknown log format %q", config.Format)
	}

	sink := zapcore.Lock(os.Stderr)
	if config.OutputPath != "" {
		if err := os.MkdirAll(
			filepath.Dir(config.OutputPath), 0755,
		); err != nil {
			return nil, fmt.Errorf(
				"failed to create log directory: %w", err,
			)
		}
		file, err := os.OpenFile(
			config.OutputPath,
			os.O_CREATE|os.O_WRONLY|os.O_APPEND,
			0644,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to open log file: %w", err)
		}
		sink = zapcore.Lock(file)
	}

	core := zapcore.NewCore(enc, sink, zapLevel(config.Level))
	z := zap.New(core)
	if len(config.Fields) > 0 {
		fields := make([]Field, 0, len(config.Fields))
		for k, v := range config.Fields {
			fields = append(fields, Field{Key: k, Value: v})
		}
		z = z.With(zapFields(fields)...)
	}
	return &ZapLogger{z: z}, nil
}

// NewZapLoggerFrom wraps an existing zap.Logger, typically one
// built by a test with zaptest/observer.
func NewZapLoggerFrom(z *zap.Logger) *ZapLogger {
	return &ZapLogger{z: z}
}

func zapLevel(l LogLevel) zapcore.Level {
	switch l {
	case LevelDebug:
		return zapcore.DebugLevel
	case LevelWarn:
		return zapcore.WarnLevel
	case LevelError:
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

func zapFields(fields []Field) []zap.Field {
	out := make([]zap.Field, len(fields))
	for i, f := range fields {
		out[i] = zap.Any(f.Key, f.Value)
	}
	return out
}

// Info logs an informational message.
func (l *ZapLogger) Info(msg string, fields ...Field) {
	l.z.Info(msg, zapFields(fields)...)
}

// Warn logs a warning message.
func (l *ZapLogger) Warn(msg string, fields ...Field) {
	l.z.Warn(msg, zapFields(fields)...)
}

// Error logs an error message.
func (l *ZapLogger) Error(msg string, fields ...Field) {
	l.z.Error(msg, zapFields(fields)...)
}

// Debug logs a debug message.
func (l *ZapLogger) Debug(msg string, fields ...Field) {
	l.z.Debug(msg, zapFields(fields)...)
}

// WithFields returns a child logger carrying fields.
func (l *ZapLogger) WithFields(fields ...Field) Logger {
	return &ZapLogger{z: l.z.With(zapFields(fields)...)}
}

// LogAPIRequest logs an outbound request at debug level.
func (l *ZapLogger) LogAPIRequest(request APIRequestLog) {
	l.z.Debug("api request",
		zap.String("request_id", request.RequestID),
		zap.String("method", request.Method),
		zap.String("url", request.URL),
		zap.Any("headers", request.Headers),
		zap.Int("body_length", request.BodyLength),
	)
}

// LogAPIResponse logs an inbound response at debug level.
func (l *ZapLogger) LogAPIResponse(response APIResponseLog) {
	l.z.Debug("api response",
		zap.String("request_id", response.RequestID),
		zap.Int("status_code", response.StatusCode),
		zap.String("body_preview", response.BodyPreview),
		zap.Int("body_length", response.BodyLength),
		zap.Int64("response_time_ms", response.ResponseTimeMs),
	)
}

// Close flushes buffered entries.
func (l *ZapLogger) Close() error {
	// Sync on a terminal returns ENOTTY/EINVAL; nothing is lost.
	_ = l.z.Sync()
	return nil
}

// Zap exposes the underlying zap.Logger.
func (l *ZapLogger) Zap() *zap.Logger {
	return l.z
}
