// Copyright © 2021 Optable Technologies Inc. All rights reserved.
// See LICENSE for details.
package lifecycle

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
)

// WithSignalCancel returns a copy of ctx that is cancelled when the process
// receives SIGINT or SIGTERM, or when the returned stop function is called.
// Long running commands, e.g. formatting an endless stream, check the context
// between items and stop cleanly instead of being killed mid-write.
//
// The received signal is logged with the logger attached to ctx.
func WithSignalCancel(ctx context.Context) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(ctx)

	logger := zerolog.Ctx(ctx)

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		defer signal.Stop(signals)

		select {
		case <-ctx.Done():
		case sig := <-signals:
			logger.Info().Str("signal", sig.String()).Msgf("Cancellation triggered by signal: %s", sig)
			cancel()
		}
	}()

	return ctx, cancel
}
