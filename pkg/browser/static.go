package browser

import (
	"context"
	"sync"

	"digital.vasic.sweepbot/pkg/logging"
)

// LogOpener records and logs URLs instead of opening them. It is
// used when the browser is disabled and in tests.
type LogOpener struct {
	logger logging.Logger

	mu     sync.Mutex
	opened []string
}

// NewLogOpener creates a LogOpener; nil discards the logs.
func NewLogOpener(logger logging.Logger) *LogOpener {
	if logger == nil {
		logger = logging.NullLogger{}
	}
	return &LogOpener{logger: logger}
}

// Open records url.
func (o *LogOpener) Open(ctx context.Context, url string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	o.logger.Info("open this link to complete the action",
		logging.StringField("url", url),
	)
	o.mu.Lock()
	o.opened = append(o.opened, url)
	o.mu.Unlock()
	return nil
}

// Opened returns the recorded URLs in order.
func (o *LogOpener) Opened() []string {
	o.mu.Lock()
	defer o.mu.Unlock()
	out := make([]string, len(o.opened))
	copy(out, o.opened)
	return out
}

// StaticFraud returns a fixed fraud token, typically read from
// SWEEPBOT_FRAUD_TOKEN.
type StaticFraud string

// FraudToken returns the token.
func (f StaticFraud) FraudToken(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return string(f), nil
}
