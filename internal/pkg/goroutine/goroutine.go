// Package goroutine runs background tasks with a bounded concurrency limit,
// panic recovery, and error collection.
package goroutine

import (
	"context"
	"errors"
	"log/slog"
	"runtime"
	"runtime/debug"
	"sync"

	"github.com/firmanbudi/otpgate/internal/pkg/stacktrace"
)

// DefaultLimitPerCPU scales the fallback concurrency limit by CPU count.
const DefaultLimitPerCPU = 100

// Manager schedules functions on goroutines up to a fixed limit and collects
// their errors until Wait is called.
type Manager struct {
	wg   sync.WaitGroup
	sema chan struct{}

	errMu sync.Mutex
	errs  []error

	stateMu sync.RWMutex
	closed  bool
}

// NewManager creates a Manager. A non-positive limit falls back to
// DefaultLimitPerCPU times the CPU count.
func NewManager(limit int) *Manager {
	if limit < 1 {
		limit = runtime.NumCPU() * DefaultLimitPerCPU
	}

	return &Manager{sema: make(chan struct{}, limit)}
}

// Go runs f on a new goroutine when capacity allows. The call is dropped with
// a warning when the manager is closed or at its limit.
func (m *Manager) Go(ctx context.Context, f func(ctx context.Context) error) {
	if m == nil {
		return
	}

	m.stateMu.RLock()
	defer m.stateMu.RUnlock()

	if m.closed {
		slog.WarnContext(ctx, "goroutine manager closed, task dropped")
		return
	}

	select {
	case m.sema <- struct{}{}:
	default:
		slog.WarnContext(ctx, "goroutine limit reached, task dropped")
		return
	}

	m.wg.Add(1)
	go func() {
		defer func() {
			<-m.sema
			m.wg.Done()

			if rvr := recover(); rvr != nil {
				stack := debug.Stack()
				if frames := stacktrace.InternalFrames(stack); len(frames) > 0 {
					slog.ErrorContext(ctx, "panic in background task", "panic", rvr, "stack", frames)
				} else {
					slog.ErrorContext(ctx, "panic in background task", "panic", rvr, "stack", string(stack))
				}
			}
		}()

		select {
		case <-ctx.Done():
			slog.WarnContext(ctx, "background task canceled", "reason", ctx.Err())
		default:
			if err := f(ctx); err != nil {
				m.errMu.Lock()
				m.errs = append(m.errs, err)
				m.errMu.Unlock()
			}
		}
	}()
}

// Wait closes the manager, blocks until running tasks finish, and returns
// their joined errors.
func (m *Manager) Wait() error {
	if m == nil {
		return nil
	}

	m.stateMu.Lock()
	m.closed = true
	m.stateMu.Unlock()

	m.wg.Wait()

	m.errMu.Lock()
	defer m.errMu.Unlock()
	return errors.Join(m.errs...)
}
