package helpers

import (
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

var (
	ErrInvalidInstant = errors.New("not a valid datetime")
	ErrInstantInPast  = errors.New("datetime must be in the future")
)

// ParseDuration parses a duration string, returns default duration on error.
func ParseDuration(durationStr string, defaultDuration time.Duration) time.Duration {
	duration, err := time.ParseDuration(durationStr)
	if err != nil {
		log.Warn().Err(err).Str("durationStr", durationStr).Dur("defaultDuration", defaultDuration).Msg("Failed to parse duration string, using default")
		return defaultDuration
	}
	return duration
}

// ParseInstant accepts RFC 3339 timestamps with or without fractional seconds
// and normalizes them to UTC.
func ParseInstant(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, ErrInvalidInstant
	}
	t, err := time.Parse(time.RFC3339Nano, value)
	if err != nil {
		return time.Time{}, ErrInvalidInstant
	}
	return t.UTC(), nil
}

// ParseFutureInstant is ParseInstant plus a strict after-now check.
func ParseFutureInstant(value string, now time.Time) (time.Time, error) {
	t, err := ParseInstant(value)
	if err != nil {
		return time.Time{}, err
	}
	if !t.After(now) {
		return time.Time{}, ErrInstantInPast
	}
	return t, nil
}
