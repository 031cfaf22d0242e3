// Package browser performs the actions that need a real browser:
// opening social intent pages and reading the page fraud hash.
package browser

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"

	"digital.vasic.sweepbot/pkg/logging"
)

// Config controls how the browser is started.
type Config struct {
	// DebuggerURL attaches to a running Chrome instead of
	// launching one.
	DebuggerURL string `yaml:"debugger_url"`
	// Bin is the Chrome binary; empty lets the launcher find or
	// download one.
	Bin      string `yaml:"bin"`
	Headless *bool  `yaml:"headless"`
	// NavigationTimeout is a Go duration string; default 30s.
	NavigationTimeout string `yaml:"navigation_timeout"`
}

// IsHeadless defaults to true.
func (c Config) IsHeadless() bool {
	return c.Headless == nil || *c.Headless
}

// Timeout parses NavigationTimeout.
func (c Config) Timeout() time.Duration {
	d, err := time.ParseDuration(c.NavigationTimeout)
	if err != nil || d <= 0 {
		return 30 * time.Second
	}
	return d
}

// FraudExpression is evaluated on the campaign page to obtain
// the fraud token.
const FraudExpression = `() => fraudService.hashedFraud()`

// Session owns one Chrome instance. It opens intent pages in new
// tabs and evaluates the fraud hash on the campaign page.
type Session struct {
	cfg    Config
	logger logging.Logger

	mu       sync.Mutex
	browser  *rod.Browser
	campaign *rod.Page
}

// NewSession creates a Session; Chrome is started on first use.
func NewSession(cfg Config, logger logging.Logger) *Session {
	if logger == nil {
		logger = logging.NullLogger{}
	}
	return &Session{cfg: cfg, logger: logger}
}

func (s *Session) ensureStarted(ctx context.Context) (*rod.Browser, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.browser != nil {
		if _, err := s.browser.Version(); err == nil {
			return s.browser, nil
		}
		s.logger.Warn("stale browser connection, reconnecting")
		_ = s.browser.Close()
		s.browser, s.campaign = nil, nil
	}

	controlURL := s.cfg.DebuggerURL
	if controlURL == "" {
		l := launcher.New().Headless(s.cfg.IsHeadless())
		if s.cfg.Bin != "" {
			l = l.Bin(s.cfg.Bin)
		}
		u, err := l.Launch()
		if err != nil {
			return nil, fmt.Errorf("launch chrome: %w", err)
		}
		controlURL = u
	}

	b := rod.New().ControlURL(controlURL).Context(ctx)
	if err := b.Connect(); err != nil {
		return nil, fmt.Errorf("connect to chrome: %w", err)
	}
	s.browser = b
	return b, nil
}

// Open loads url in a new tab and leaves it open for the
// platform's companion script to act on.
func (s *Session) Open(ctx context.Context, url string) error {
	b, err := s.ensureStarted(ctx)
	if err != nil {
		return err
	}
	page, err := b.Context(ctx).Page(proto.TargetCreateTarget{URL: url})
	if err != nil {
		return fmt.Errorf("open %s: %w", url, err)
	}
	if err := page.Timeout(s.cfg.Timeout()).WaitLoad(); err != nil {
		s.logger.Warn("intent page did not finish loading",
			logging.StringField("url", url),
			logging.ErrorField(err),
		)
	}
	s.logger.Debug("opened external action",
		logging.StringField("url", url),
	)
	return nil
}

// LoadCampaign navigates the fraud page to the campaign URL.
func (s *Session) LoadCampaign(ctx context.Context, url string) error {
	b, err := s.ensureStarted(ctx)
	if err != nil {
		return err
	}
	page, err := b.Context(ctx).Page(proto.TargetCreateTarget{URL: url})
	if err != nil {
		return fmt.Errorf("open campaign: %w", err)
	}
	if err := page.Timeout(s.cfg.Timeout()).WaitLoad(); err != nil {
		return fmt.Errorf("load campaign: %w", err)
	}
	s.mu.Lock()
	s.campaign = page
	s.mu.Unlock()
	return nil
}

// ErrNoCampaignPage is returned by FraudToken before
// LoadCampaign.
var ErrNoCampaignPage = errors.New("campaign page not loaded")

// FraudToken evaluates FraudExpression on the campaign page.
func (s *Session) FraudToken(ctx context.Context) (string, error) {
	s.mu.Lock()
	page := s.campaign
	s.mu.Unlock()
	if page == nil {
		return "", ErrNoCampaignPage
	}
	res, err := page.Context(ctx).Eval(FraudExpression)
	if err != nil {
		return "", fmt.Errorf("evaluate fraud hash: %w", err)
	}
	return res.Value.Str(), nil
}

// Close shuts the browser down.
func (s *Session) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.browser == nil {
		return nil
	}
	err := s.browser.Close()
	s.browser, s.campaign = nil, nil
	return err
}
