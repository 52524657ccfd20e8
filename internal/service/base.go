package service

import (
	"context"
	"time"

	"github.com/golfcompete/golf-server/internal/store"
	"github.com/rs/zerolog"
)

var (
	// DefaultRetryAttempts is the total attempt count used whenever RetryOptions does not set one
	DefaultRetryAttempts = 3
	// DefaultRetryBackoff is the base backoff duration used whenever RetryOptions does not set one
	DefaultRetryBackoff = 250 * time.Millisecond
)

// Base carries the dependencies shared by every service: the injected store client and a
// structured logger. Instances hold no other state, so they are safe to create per request and
// discard. The store client is always passed in explicitly; there is no ambient singleton.
type Base struct {
	Client store.Client
	Logger zerolog.Logger
}

// NewBase creates a new service base around the given store client
func NewBase(client store.Client, logger zerolog.Logger) *Base {
	if client == nil {
		panic("service: nil store client")
	}
	return &Base{
		Client: client,
		Logger: logger,
	}
}

// RetryOptions configures the Retry helper
type RetryOptions struct {
	// Attempts is the total amount of attempts, including the first one
	Attempts int
	// Backoff is the base wait duration; attempt n waits n*Backoff (linear backoff)
	Backoff time.Duration
}

// Retry executes the given operation, re-running it on transient failures.
// Retrying is strictly opt-in: store operations are never retried automatically, as that would
// silently re-run non-idempotent writes. Errors whose code is non-transient stop the loop
// immediately. Attempts run strictly sequentially; there is no concurrent fan-out.
func (base *Base) Retry(ctx context.Context, operation func(ctx context.Context) *Error, options RetryOptions) *Error {
	attempts := options.Attempts
	if attempts < 1 {
		attempts = DefaultRetryAttempts
	}
	backoff := options.Backoff
	if backoff <= 0 {
		backoff = DefaultRetryBackoff
	}

	var lastErr *Error
	for attempt := 1; attempt <= attempts; attempt++ {
		lastErr = operation(ctx)
		if lastErr == nil {
			return nil
		}
		if !lastErr.Code.Transient() || attempt == attempts {
			return lastErr
		}

		base.Logger.Debug().
			Int("attempt", attempt).
			Str("code", string(lastErr.Code)).
			Msg("retrying transient store failure")

		select {
		case <-ctx.Done():
			return lastErr
		case <-time.After(time.Duration(attempt) * backoff):
		}
	}
	return lastErr
}

// report logs a service error exactly once, at a severity matching its classification
func (base *Base) report(table, operation string, err *Error) {
	event := base.Logger.Error()
	if err.Code.Expected() {
		event = base.Logger.Debug()
	}
	event.
		Str("table", table).
		Str("operation", operation).
		Str("code", string(err.Code)).
		AnErr("cause", err.Cause).
		Msg(err.Message)
}
