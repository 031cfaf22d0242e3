// Package env reads the session secrets of the bot from a .env
// file and the process environment.
package env

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/joho/godotenv"
)

// Variable names.
const (
	// Cookie is the raw Cookie header of a logged-in browser
	// session.
	Cookie = "SWEEPBOT_COOKIE"
	// FraudToken is used when no browser is available to compute
	// the token.
	FraudToken = "SWEEPBOT_FRAUD_TOKEN"
	// UserAgent overrides the transport's user agent.
	UserAgent = "SWEEPBOT_USER_AGENT"
	// ConfigPath points at the configuration file.
	ConfigPath = "SWEEPBOT_CONFIG"
)

// Loader resolves variables from a .env file and the process
// environment.
type Loader interface {
	// Get returns key from the process environment, else from the
	// loaded files.
	Get(key string) string
	// GetSecret resolves a short secret name ("cookie", "fraud")
	// to its variable.
	GetSecret(name string) string
}

// DefaultLoader implements Loader on top of godotenv. Files are
// read into memory and never exported to the process.
type DefaultLoader struct {
	mu       sync.RWMutex
	vars     map[string]string
	loaded   []string
	mappings map[string]string // secret name -> variable
}

// NewLoader creates a DefaultLoader with the standard secret
// names.
func NewLoader() *DefaultLoader {
	return &DefaultLoader{
		vars: make(map[string]string),
		mappings: map[string]string{
			"cookie":      Cookie,
			"session":     Cookie,
			"fraud":       FraudToken,
			"fraud_token": FraudToken,
			"user_agent":  UserAgent,
			"config":      ConfigPath,
		},
	}
}

// Load merges the variables of a .env file; later files win.
func (l *DefaultLoader) Load(path string) error {
	vars, err := godotenv.Read(path)
	if err != nil {
		return fmt.Errorf("failed to read env file %s: %w", path, err)
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	for k, v := range vars {
		l.vars[k] = v
	}
	l.loaded = append(l.loaded, path)
	return nil
}

// LoadOptional is Load for a file that may not exist.
func (l *DefaultLoader) LoadOptional(path string) error {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return l.Load(path)
}

// Files lists the files loaded so far.
func (l *DefaultLoader) Files() []string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return append([]string(nil), l.loaded...)
}

func (l *DefaultLoader) Get(key string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.vars[key]
}

// GetSecret falls back to SWEEPBOT_<NAME> for unmapped names.
func (l *DefaultLoader) GetSecret(name string) string {
	l.mu.RLock()
	key, ok := l.mappings[strings.ToLower(name)]
	l.mu.RUnlock()
	if !ok {
		key = "SWEEPBOT_" + strings.ToUpper(name)
	}
	return l.Get(key)
}

// Secrets are the values the bot needs from the environment.
type Secrets struct {
	Cookie     string
	FraudToken string
	UserAgent  string
}

// ReadSecrets collects the secrets from l.
func ReadSecrets(l Loader) Secrets {
	return Secrets{
		Cookie:     l.GetSecret("cookie"),
		FraudToken: l.GetSecret("fraud"),
		UserAgent:  l.GetSecret("user_agent"),
	}
}

// Values lists the non-empty secrets, for log redaction.
func (s Secrets) Values() []string {
	var out []string
	for _, v := range []string{s.Cookie, s.FraudToken} {
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}

// Validate checks the shape of the cookie header. An empty
// cookie is valid; the platform refuses the run later.
func (s Secrets) Validate() error {
	if s.Cookie != "" && !ValidateCookie(s.Cookie) {
		return fmt.Errorf("%s is not a cookie header (name=value; ...)", Cookie)
	}
	return nil
}

// String is safe to log.
func (s Secrets) String() string {
	return fmt.Sprintf("cookie=%q fraud_token=%q user_agent=%q",
		RedactSecret(s.Cookie), RedactSecret(s.FraudToken), s.UserAgent)
}
