// Package worker runs background jobs tied to the application lifetime.
package worker

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// CatalogReloader is the part of the catalog service the reloader drives.
type CatalogReloader interface {
	Reload(ctx context.Context) error
}

// Reloader re-reads the catalog on a fixed interval.
type Reloader struct {
	interval time.Duration
	catalog  CatalogReloader
	log      zerolog.Logger
}

// NewReloader returns a Reloader. An interval <= 0 makes Start a no-op.
func NewReloader(interval time.Duration, catalog CatalogReloader, log zerolog.Logger) *Reloader {
	return &Reloader{interval: interval, catalog: catalog, log: log}
}

// Start launches the worker goroutine. It stops when ctx is cancelled; the
// returned channel is closed once it has exited.
func (r *Reloader) Start(ctx context.Context) <-chan struct{} {
	done := make(chan struct{})
	if r.interval <= 0 {
		close(done)
		return done
	}

	go func() {
		defer close(done)
		r.run(ctx)
	}()
	r.log.Info().Dur("interval", r.interval).Msg("catalog reloader started")
	return done
}

func (r *Reloader) run(ctx context.Context) {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			r.log.Info().Msg("catalog reloader stopped")
			return
		case <-ticker.C:
			// Failures are logged by the catalog store; the old snapshot stays live.
			if err := r.catalog.Reload(ctx); err != nil && ctx.Err() == nil {
				r.log.Debug().Err(err).Msg("scheduled catalog reload failed")
			}
		}
	}
}
