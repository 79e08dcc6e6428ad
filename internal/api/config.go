package api

import (
	"os"
	"strings"
	"time"
)

// Config holds the HTTP server settings.
type Config struct {
	Addr           string
	CORSOrigins    []string
	RequestTimeout time.Duration

	// ClockInterval is the real time between countdown ticks of timed
	// sessions.
	ClockInterval time.Duration

	// SessionIdle is how long a round may go untouched before the
	// registry drops it. SweepEvery is how often it looks.
	SessionIdle time.Duration
	SweepEvery  time.Duration

	// MaxSessions caps the rounds held at once; starting one more evicts
	// the least recently touched.
	MaxSessions int
}

// DefaultConfig returns the settings used when nothing is configured.
func DefaultConfig() Config {
	return Config{
		Addr:           ":8080",
		CORSOrigins:    []string{"http://localhost:3000", "http://localhost:5173"},
		RequestTimeout: 30 * time.Second,
		ClockInterval:  time.Second,
		SessionIdle:    30 * time.Minute,
		SweepEvery:     time.Minute,
		MaxSessions:    1000,
	}
}

// ConfigFromEnv reads TENSEBUNNY_HTTP_ADDR, TENSEBUNNY_CORS_ORIGINS
// (comma separated) and TENSEBUNNY_SESSION_IDLE (a duration such as
// "15m") over the defaults.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()
	cfg.Addr = getenvOr("TENSEBUNNY_HTTP_ADDR", cfg.Addr)
	if v := os.Getenv("TENSEBUNNY_CORS_ORIGINS"); v != "" {
		cfg.CORSOrigins = splitList(v)
	}
	if d, err := time.ParseDuration(os.Getenv("TENSEBUNNY_SESSION_IDLE")); err == nil && d > 0 {
		cfg.SessionIdle = d
	}
	return cfg
}

func getenvOr(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
