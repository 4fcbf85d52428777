// Package origin normalizes URLs to the scheme://hostname key that
// groups reminders for one website.
package origin

import (
	"errors"
	"net/url"
	"strings"
)

// ErrUnavailable means no usable origin could be derived from the input.
// Callers treat it as "nothing to operate on", not as a failure.
var ErrUnavailable = errors.New("origin unavailable")

// Normalize reduces a raw URL to its origin: scheme plus hostname, no
// port, path or query. https://www.example.com:8080/a?b=c becomes
// https://www.example.com. Inputs without a scheme or hostname (empty
// strings, file: URLs, fragments of text) return ErrUnavailable.
func Normalize(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", ErrUnavailable
	}
	u, err := url.Parse(raw)
	if err != nil {
		return "", ErrUnavailable
	}
	if u.Scheme == "" || u.Hostname() == "" {
		return "", ErrUnavailable
	}
	return u.Scheme + "://" + u.Hostname(), nil
}
