package llm

import (
	"context"
	"errors"
	"math"
	"math/rand/v2"
	"time"
)

// RetryProvider retries transient failures with capped exponential
// backoff. A malformed or schema-violating reply is retried once;
// cancellation and token-limit errors are returned at once.
type RetryProvider struct {
	inner  Provider
	config RetryConfig
}

// WithRetry wraps p so Generate retries per cfg.
func WithRetry(p Provider, cfg RetryConfig) Provider {
	return &RetryProvider{inner: p, config: cfg}
}

func (r *RetryProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	var (
		err          error
		resp         *Response
		usedReprompt bool
	)
	for attempt := 0; attempt < r.config.MaxAttempts; attempt++ {
		if attempt > 0 {
			if werr := sleepCtx(ctx, r.backoff(attempt-1, err)); werr != nil {
				return nil, werr
			}
		} else if cerr := ctx.Err(); cerr != nil {
			return nil, cerr
		}

		if resp, err = r.inner.Generate(ctx, req); err == nil {
			return resp, nil
		}

		switch {
		case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
			return nil, err
		case errors.As(err, new(*ErrMaxTokensExceeded)):
			return nil, err
		case errors.As(err, new(*ErrInvalidResponse)):
			if usedReprompt {
				return nil, err
			}
			usedReprompt = true
		}
	}
	return nil, err
}

func (r *RetryProvider) ModelID() string {
	return r.inner.ModelID()
}

// backoff is the pause after the given failed attempt. A rate limit that
// names its own delay wins; otherwise the wait grows by Multiplier up to
// MaxWait with ±20% jitter.
func (r *RetryProvider) backoff(attempt int, err error) time.Duration {
	var rl *ErrRateLimit
	if errors.As(err, &rl) && rl.RetryAfter > 0 {
		return rl.RetryAfter
	}
	base := math.Min(
		float64(r.config.InitialWait)*math.Pow(r.config.Multiplier, float64(attempt)),
		float64(r.config.MaxWait),
	)
	jittered := base * (0.8 + 0.4*rand.Float64())
	return time.Duration(math.Max(jittered, 0))
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
