package messaging

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"

	"github.com/firmanbudi/otpgate/internal/pkg/stacktrace"
)

// runHandler invokes fn and converts a panic into an error so a misbehaving
// consumer handler cannot take down the whole consumer loop.
func runHandler(ctx context.Context, broker string, fn func() error) (err error) {
	defer func() {
		rvr := recover()
		if rvr == nil {
			return
		}

		stack := debug.Stack()
		if frames := stacktrace.InternalFrames(stack); len(frames) > 0 {
			slog.ErrorContext(ctx, "panic in message handler", "broker", broker, "panic", rvr, "stack", frames)
		} else {
			slog.ErrorContext(ctx, "panic in message handler", "broker", broker, "panic", rvr, "stack", string(stack))
		}

		err = fmt.Errorf("messaging: panic in %s handler: %v", broker, rvr)
	}()

	return fn()
}
