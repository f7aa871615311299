package main

import (
	"context"
	"time"
)

const (
	pushTokenPruneInterval = 24 * time.Hour
	pushTokenMaxAge        = 70 * 24 * time.Hour
)

// pruneStalePushTokens drops Expo tokens that no device has refreshed within
// pushTokenMaxAge. It runs once at startup and then every interval until ctx
// is cancelled.
func (app *application) pruneStalePushTokens(ctx context.Context, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			app.prunePushTokensOnce(ctx)

			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
			}
		}
	}()
}

func (app *application) prunePushTokensOnce(ctx context.Context) {
	defer func() {
		if rec := recover(); rec != nil {
			app.logger.Errorw("push token pruning panicked", "panic", rec)
		}
	}()

	if err := app.store.PushTokens.PruneStaleTokens(ctx, pushTokenMaxAge); err != nil {
		app.logger.Errorw("failed to prune stale push tokens", "error", err)
		return
	}
	app.logger.Infow("pruned stale push tokens", "older_than", pushTokenMaxAge.String())
}
