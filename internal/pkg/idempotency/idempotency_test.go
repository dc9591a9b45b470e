package idempotency

import (
	"context"
	"errors"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestTracker(t *testing.T) *RedisTracker {
	t.Helper()

	srv := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	t.Cleanup(func() { client.Close() })

	return New(client)
}

func TestExecRunsOnce(t *testing.T) {

	// Arrange
	tracker := newTestTracker(t)
	ctx := context.Background()
	runs := 0
	fn := func(context.Context) error {
		runs++
		return nil
	}

	// Act
	first := tracker.Exec(ctx, "evt-1", fn)
	second := tracker.Exec(ctx, "evt-1", fn)

	// Assert
	if first != nil {
		t.Fatalf("unexpected error on first run: %v", first)
	}
	if !errors.Is(second, ErrCompleted) {
		t.Fatalf("expected ErrCompleted on replay, got %v", second)
	}
	if runs != 1 {
		t.Fatalf("expected one execution, got %d", runs)
	}
}

func TestExecRecordsFailure(t *testing.T) {

	// Arrange
	tracker := newTestTracker(t)
	ctx := context.Background()
	boom := errors.New("send failed")

	// Act
	first := tracker.Exec(ctx, "evt-2", func(context.Context) error { return boom })
	second := tracker.Exec(ctx, "evt-2", func(context.Context) error { return nil })

	// Assert
	if !errors.Is(first, boom) {
		t.Fatalf("expected the function error, got %v", first)
	}
	if !errors.Is(second, ErrFailed) {
		t.Fatalf("expected ErrFailed on replay, got %v", second)
	}
}

func TestExecDistinctKeys(t *testing.T) {

	// Arrange
	tracker := newTestTracker(t)
	ctx := context.Background()
	runs := 0
	fn := func(context.Context) error {
		runs++
		return nil
	}

	// Act
	if err := tracker.Exec(ctx, "evt-a", fn); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := tracker.Exec(ctx, "evt-b", fn); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Assert
	if runs != 2 {
		t.Fatalf("expected both keys to run, got %d", runs)
	}
}

func TestAcquireReportsInProgress(t *testing.T) {

	// Arrange
	tracker := newTestTracker(t)
	ctx := context.Background()

	state, err := tracker.Acquire(ctx, "evt-3", 0)
	if err != nil || state != StateNone {
		t.Fatalf("first acquire: state=%v err=%v", state, err)
	}

	// Act
	state, err = tracker.Acquire(ctx, "evt-3", 0)

	// Assert
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if state != StateInProgress {
		t.Fatalf("expected in-progress claim, got %v", state)
	}
}
