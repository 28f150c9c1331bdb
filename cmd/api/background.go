package main

import (
	"context"
	"time"
)

// runEvery calls fn every interval until ctx is done. Panics in fn are logged and the
// loop keeps going.
func (app *application) runEvery(ctx context.Context, name string, interval time.Duration, fn func()) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				app.runSafely(name, fn)
			case <-ctx.Done():
				app.logger.Infow("background job stopped", "job", name)
				return
			}
		}
	}()
}

func (app *application) runSafely(name string, fn func()) {
	defer func() {
		if rec := recover(); rec != nil {
			app.logger.Errorw("background job panicked", "job", name, "panic", rec)
		}
	}()
	fn()
}
