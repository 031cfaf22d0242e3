package env

import "strings"

// RedactSecret keeps the first and last four bytes of a secret.
// Secrets of eight bytes or fewer are fully masked.
func RedactSecret(secret string) string {
	if len(secret) <= 8 {
		return strings.Repeat("*", len(secret))
	}
	return secret[:4] + strings.Repeat("*", len(secret)-8) + secret[len(secret)-4:]
}

// ValidateCookie reports whether header looks like a Cookie
// header: one or more name=value pairs separated by semicolons.
func ValidateCookie(header string) bool {
	header = strings.TrimSpace(header)
	if header == "" {
		return false
	}
	for _, part := range strings.Split(header, ";") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		name, _, ok := strings.Cut(part, "=")
		if !ok || strings.TrimSpace(name) == "" {
			return false
		}
	}
	return true
}
