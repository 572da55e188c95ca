// Package sigctx provides a context that is canceled on interrupt.
package sigctx

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

// New returns a context that is canceled by SIGINT or SIGTERM. A second
// signal is left to the default handler, so it kills the process.
func New() context.Context {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	go func() {
		<-ctx.Done()
		cancel()
	}()
	return ctx
}
