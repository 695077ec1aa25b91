// SPDX-License-Identifier: Apache-2.0

// Package config loads the bridge configuration from environment
// variables with sensible defaults.
package config

import (
	"fmt"
	"time"
)

// Default values.
const (
	DefaultListen           = ":1881"
	DefaultAnswerTimeout    = 5 * time.Second
	DefaultWelcomePrompt    = "What is your command"
	DefaultTimeoutUtterance = "Sorry, I did not get an answer in time. Please try again later."
	DefaultFailureUtterance = "Sorry, something went wrong handling your request."
	DefaultRateLimit        = 120 // requests per minute per client IP
	DefaultMaxBodyBytes     = 1 << 20
)

// Config holds the runtime configuration of the bridge.
type Config struct {
	// Listen is the HTTP listen address for the conversation webhook.
	Listen string

	// AnswerTimeout bounds how long the router waits for consumer logic
	// to answer a turn before a fallback response is delivered.
	AnswerTimeout time.Duration

	// WelcomePrompt is spoken by the default consumer when a new
	// conversation starts.
	WelcomePrompt string

	// TimeoutUtterance is spoken when no answer arrived in time.
	TimeoutUtterance string

	// FailureUtterance is spoken when consumer logic failed.
	FailureUtterance string

	// RateLimit is the per-client request budget per minute. Zero
	// disables inbound rate limiting.
	RateLimit int

	// MaxBodyBytes caps the size of an inbound webhook payload.
	MaxBodyBytes int64

	// LogLevel sets the zerolog level ("debug", "info", ...).
	LogLevel string
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Listen:           DefaultListen,
		AnswerTimeout:    DefaultAnswerTimeout,
		WelcomePrompt:    DefaultWelcomePrompt,
		TimeoutUtterance: DefaultTimeoutUtterance,
		FailureUtterance: DefaultFailureUtterance,
		RateLimit:        DefaultRateLimit,
		MaxBodyBytes:     DefaultMaxBodyBytes,
		LogLevel:         "info",
	}
}

// FromEnv builds a Config from GA_* environment variables, falling back
// to defaults for unset or invalid values.
func FromEnv() Config {
	cfg := Default()
	cfg.Listen = ParseString("GA_LISTEN", cfg.Listen)
	cfg.AnswerTimeout = ParseDuration("GA_ANSWER_TIMEOUT", cfg.AnswerTimeout)
	cfg.WelcomePrompt = ParseString("GA_WELCOME_PROMPT", cfg.WelcomePrompt)
	cfg.TimeoutUtterance = ParseString("GA_TIMEOUT_UTTERANCE", cfg.TimeoutUtterance)
	cfg.FailureUtterance = ParseString("GA_FAILURE_UTTERANCE", cfg.FailureUtterance)
	cfg.RateLimit = ParseInt("GA_RATE_LIMIT", cfg.RateLimit)
	cfg.MaxBodyBytes = int64(ParseInt("GA_MAX_BODY_BYTES", int(cfg.MaxBodyBytes)))
	cfg.LogLevel = ParseString("GA_LOG_LEVEL", cfg.LogLevel)
	return cfg
}

// Validate reports the first configuration error, if any.
func (c Config) Validate() error {
	if c.Listen == "" {
		return fmt.Errorf("%w: listen address is empty", ErrInvalidConfig)
	}
	if c.AnswerTimeout <= 0 {
		return fmt.Errorf("%w: answer timeout must be positive, got %s", ErrInvalidConfig, c.AnswerTimeout)
	}
	if c.TimeoutUtterance == "" || c.FailureUtterance == "" {
		return fmt.Errorf("%w: fallback utterances must not be empty", ErrInvalidConfig)
	}
	if c.RateLimit < 0 {
		return fmt.Errorf("%w: rate limit must not be negative, got %d", ErrInvalidConfig, c.RateLimit)
	}
	if c.MaxBodyBytes <= 0 {
		return fmt.Errorf("%w: max body bytes must be positive, got %d", ErrInvalidConfig, c.MaxBodyBytes)
	}
	return nil
}
