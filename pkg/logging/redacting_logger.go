package logging

import (
	"sort"
	"strings"
)

// minSecretLen is the shortest value worth masking; shorter
// values would match ordinary text.
const minSecretLen = 5

// sessionHeaders carry credentials and are always masked.
var sessionHeaders = map[string]bool{
	"authorization": true,
	"cookie":        true,
	"set-cookie":    true,
	"x-csrf-token":  true,
	"x-xsrf-token":  true,
}

// RedactingLogger masks session secrets (cookie, CSRF token,
// fraud token, shortener key) in messages, string fields, API
// URLs, bodies and session headers before they reach the inner
// logger.
type RedactingLogger struct {
	inner   Logger
	secrets []string
}

// NewRedactingLogger wraps inner. Secrets shorter than five
// bytes are ignored.
func NewRedactingLogger(inner Logger, secrets ...string) *RedactingLogger {
	kept := make([]string, 0, len(secrets))
	for _, s := range secrets {
		if len(s) >= minSecretLen {
			kept = append(kept, s)
		}
	}
	// Longest first, so a secret containing another is masked
	// whole.
	sort.SliceStable(kept, func(i, j int) bool {
		return len(kept[i]) > len(kept[j])
	})
	return &RedactingLogger{inner: inner, secrets: kept}
}

func (r *RedactingLogger) redact(s string) string {
	for _, secret := range r.secrets {
		if strings.Contains(s, secret) {
			s = strings.ReplaceAll(s, secret, mask(secret))
		}
	}
	return s
}

// mask keeps the first four bytes.
func mask(s string) string {
	if len(s) <= 4 {
		return strings.Repeat("*", len(s))
	}
	return s[:4] + strings.Repeat("*", len(s)-4)
}

func (r *RedactingLogger) redactFields(fields []Field) []Field {
	out := make([]Field, len(fields))
	for i, f := range fields {
		if s, ok := f.Value.(string); ok {
			f.Value = r.redact(s)
		}
		out[i] = f
	}
	return out
}

func (r *RedactingLogger) Info(msg string, fields ...Field) {
	r.inner.Info(r.redact(msg), r.redactFields(fields)...)
}

func (r *RedactingLogger) Warn(msg string, fields ...Field) {
	r.inner.Warn(r.redact(msg), r.redactFields(fields)...)
}

func (r *RedactingLogger) Error(msg string, fields ...Field) {
	r.inner.Error(r.redact(msg), r.redactFields(fields)...)
}

func (r *RedactingLogger) Debug(msg string, fields ...Field) {
	r.inner.Debug(r.redact(msg), r.redactFields(fields)...)
}

// WithFields redacts fields once and keeps redacting the child.
func (r *RedactingLogger) WithFields(fields ...Field) Logger {
	return &RedactingLogger{
		inner:   r.inner.WithFields(r.redactFields(fields)...),
		secrets: r.secrets,
	}
}

// LogAPIRequest masks the session headers and any secret in the
// URL or body. Entry payloads carry the fraud token.
func (r *RedactingLogger) LogAPIRequest(request APIRequestLog) {
	request.URL = r.redact(request.URL)
	request.Body = r.redact(request.Body)
	request.Headers = r.redactHeaders(request.Headers)
	r.inner.LogAPIRequest(request)
}

// LogAPIResponse masks the session headers and the body preview.
func (r *RedactingLogger) LogAPIResponse(response APIResponseLog) {
	response.BodyPreview = r.redact(response.BodyPreview)
	response.Headers = r.redactHeaders(response.Headers)
	r.inner.LogAPIResponse(response)
}

func (r *RedactingLogger) Close() error {
	return r.inner.Close()
}

func (r *RedactingLogger) redactHeaders(headers map[string]string) map[string]string {
	if headers == nil {
		return nil
	}
	out := make(map[string]string, len(headers))
	for k, v := range headers {
		if sessionHeaders[strings.ToLower(k)] {
			out[k] = "****"
			continue
		}
		out[k] = r.redact(v)
	}
	return out
}
