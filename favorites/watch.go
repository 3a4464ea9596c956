package favorites

import (
	"bytes"
	"context"
	"log/slog"
	"time"
)

// Watch polls the slot every interval and calls Notify when its raw
// contents change, so views in this process follow writes made by other
// processes sharing the slot. It blocks until ctx is done.
func (s *Store) Watch(ctx context.Context, interval time.Duration) {
	last, _ := s.raw(ctx)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			current, err := s.raw(ctx)
			if err != nil && ctx.Err() != nil {
				return
			}
			if bytes.Equal(current, last) {
				continue
			}
			last = current
			slog.DebugContext(ctx, "FAVORITES: slot changed externally")
			s.Notify(ctx)
		}
	}
}
