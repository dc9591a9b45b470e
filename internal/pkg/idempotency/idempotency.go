// Package idempotency deduplicates at-least-once work, such as redelivered
// broker messages, using a Redis-backed state key per operation.
package idempotency

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

var (
	// ErrInProgress means another worker currently holds the key.
	ErrInProgress = errors.New("idempotency: operation in progress")
	// ErrCompleted means the operation already finished successfully.
	ErrCompleted = errors.New("idempotency: operation already completed")
	// ErrFailed means a previous attempt failed and is not retried here.
	ErrFailed = errors.New("idempotency: operation previously failed")
	// ErrBadState means the stored state value is unrecognized.
	ErrBadState = errors.New("idempotency: unknown stored state")
)

// State describes what is known about an operation key.
type State string

const (
	// StateNone means the key is unclaimed and the caller may proceed.
	StateNone State = "none"
	// StateInProgress means another worker holds the key.
	StateInProgress State = "in_progress"
	// StateCompleted means the operation finished successfully.
	StateCompleted State = "completed"
	// StateFailed means the last attempt failed.
	StateFailed State = "failed"
)

func (s State) String() string { return string(s) }

// Idempotency guards an operation key through its lifecycle.
type Idempotency interface {
	Acquire(ctx context.Context, key string, lock time.Duration) (State, error)
	MarkCompleted(ctx context.Context, key string, ttl time.Duration) error
	MarkFailed(ctx context.Context, key string, ttl time.Duration) error
	Exec(ctx context.Context, key string, fn func(context.Context) error, opts ...Option) error
}

const (
	defaultLock = time.Minute
	defaultTTL  = time.Minute
)

type execOptions struct {
	lock time.Duration
	ttl  time.Duration
}

// Option adjusts Exec behavior.
type Option func(*execOptions)

// WithLockDuration sets how long the in-progress claim is held.
func WithLockDuration(d time.Duration) Option {
	return func(o *execOptions) { o.lock = d }
}

// WithStateTTL sets how long the final state is remembered.
func WithStateTTL(d time.Duration) Option {
	return func(o *execOptions) { o.ttl = d }
}

// RedisTracker implements Idempotency with SetNX claims in Redis.
type RedisTracker struct {
	client *redis.Client
	prefix string
}

// New builds a RedisTracker.
func New(client *redis.Client) *RedisTracker {
	return &RedisTracker{client: client, prefix: "idempotency:"}
}

// Acquire attempts to claim key. StateNone means the caller won the claim and
// should run the operation; any other state reports what happened before.
func (t *RedisTracker) Acquire(ctx context.Context, key string, lock time.Duration) (State, error) {
	fk := t.prefix + key

	claimed, err := t.client.SetNX(ctx, fk, StateInProgress.String(), lock).Result()
	if err != nil {
		return "", err
	}
	if claimed {
		return StateNone, nil
	}

	stored, err := t.client.Get(ctx, fk).Result()
	if errors.Is(err, redis.Nil) {
		// The claim expired between SetNX and Get; try once more.
		claimed, err = t.client.SetNX(ctx, fk, StateInProgress.String(), lock).Result()
		if err != nil {
			return "", err
		}
		if claimed {
			return StateNone, nil
		}
		return "", ErrBadState
	}
	if err != nil {
		return "", err
	}

	switch State(stored) {
	case StateInProgress, StateCompleted, StateFailed:
		return State(stored), nil
	default:
		return "", ErrBadState
	}
}

// MarkCompleted records a successful finish for key.
func (t *RedisTracker) MarkCompleted(ctx context.Context, key string, ttl time.Duration) error {
	return t.client.Set(ctx, t.prefix+key, StateCompleted.String(), ttl).Err()
}

// MarkFailed records a failed finish for key.
func (t *RedisTracker) MarkFailed(ctx context.Context, key string, ttl time.Duration) error {
	return t.client.Set(ctx, t.prefix+key, StateFailed.String(), ttl).Err()
}

// Exec runs fn exactly once per key: it acquires the claim, runs fn, and
// records the outcome. Duplicate invocations return ErrInProgress,
// ErrCompleted, or ErrFailed depending on the stored state.
func (t *RedisTracker) Exec(ctx context.Context, key string, fn func(context.Context) error, opts ...Option) error {
	eo := execOptions{lock: defaultLock, ttl: defaultTTL}
	for _, opt := range opts {
		opt(&eo)
	}
	if eo.lock <= 0 {
		eo.lock = defaultLock
	}
	if eo.ttl <= 0 {
		eo.ttl = defaultTTL
	}

	state, err := t.Acquire(ctx, key, eo.lock)
	if err != nil {
		return err
	}

	switch state {
	case StateInProgress:
		return ErrInProgress
	case StateCompleted:
		return ErrCompleted
	case StateFailed:
		return ErrFailed
	}

	if err := fn(ctx); err != nil {
		if markErr := t.MarkFailed(ctx, key, eo.ttl); markErr != nil {
			return errors.Join(err, markErr)
		}
		return err
	}

	return t.MarkCompleted(ctx, key, eo.ttl)
}
