//go:build windows

package main

import (
	"context"
	"os"
	"os/signal"
)

// signalContext cancels the returned context on Ctrl-C. Windows has no
// SIGTERM, so interrupt is the whole signal set here.
func signalContext(ctx context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(ctx, os.Interrupt)
}
