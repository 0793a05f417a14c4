package pinauth

import (
	"context"
	"time"
)

// DefaultPollInterval is how often Poll checks the pending pin.
const DefaultPollInterval = time.Second

// Poll calls CheckForAuthToken immediately and then once per interval
// until it succeeds or ctx is done. There is no backoff.
func (f *Flow) Poll(ctx context.Context, interval time.Duration) error {
	if interval <= 0 {
		interval = DefaultPollInterval
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		if f.CheckForAuthToken(ctx) {
			return nil
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}
