// Package supervisor decides what happens when a poller run ends with an error.
package supervisor

import (
	"context"
	"errors"
	"time"

	"github.com/Alwanly/item-poller/internal/config"
	"github.com/Alwanly/item-poller/pkg/logger"
	"github.com/Alwanly/item-poller/pkg/poll"
	"github.com/Alwanly/item-poller/pkg/retry"
)

// Run runs p until it stops cleanly or ctx is cancelled. A run that fails
// with a lister or processor error is restarted up to rt.MaxRestarts times
// with exponential backoff; with MaxRestarts of 0 the first error is returned.
func Run(ctx context.Context, p poll.Poller, rt *config.RuntimeConfig, log *logger.CanonicalLogger) error {
	backoffCfg := retry.Config{
		MaxRetries:     rt.MaxRestarts,
		InitialBackoff: rt.RestartBackoff,
		MaxBackoff:     rt.RestartMaxBackoff,
		Multiplier:     2.0,
		Jitter:         true,
		OnRetry: func(attempt int, err error, backoff time.Duration) {
			log.WithError(err).Error("poller failed, restarting",
				logger.Int(logger.FieldRestarts, attempt),
				logger.Duration("backoff", backoff),
			)
		},
	}

	return retry.WithExponentialBackoff(ctx, backoffCfg, func(ctx context.Context) error {
		err := p.Run(ctx)
		if err == nil {
			return nil
		}
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return retry.Permanent(err)
		}
		return err
	})
}
