package db

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/firmanbudi/otpgate/internal/auth/entity"
	"github.com/firmanbudi/otpgate/internal/pkg/goerror"
	"github.com/firmanbudi/otpgate/internal/pkg/instrument"
)

const usersSchema = `
CREATE TABLE users (
	id                    BIGINT PRIMARY KEY,
	email                 TEXT NOT NULL UNIQUE,
	full_name             TEXT NOT NULL,
	password              TEXT,
	two_factor_code       TEXT,
	two_factor_expires_at TIMESTAMPTZ,
	created_at            TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at            TIMESTAMPTZ NOT NULL DEFAULT now(),
	deleted_at            TIMESTAMPTZ
)`

func newTestRepository(t *testing.T) *UserRepository {
	t.Helper()

	if os.Getenv("OTPGATE_IT") == "" {
		t.Skip("set OTPGATE_IT=1 to run database integration tests")
	}

	ctx := context.Background()

	ctr, err := tcpostgres.Run(ctx, "postgres:16-alpine",
		tcpostgres.WithDatabase("otpgate"),
		tcpostgres.WithUsername("otpgate"),
		tcpostgres.WithPassword("secret"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	if err != nil {
		t.Fatalf("start postgres: %v", err)
	}
	t.Cleanup(func() {
		if err := testcontainers.TerminateContainer(ctr); err != nil {
			t.Logf("terminate postgres: %v", err)
		}
	})

	connStr, err := ctr.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("connection string: %v", err)
	}

	pool, err := pgxpool.New(ctx, connStr)
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	t.Cleanup(pool.Close)

	if _, err := pool.Exec(ctx, usersSchema); err != nil {
		t.Fatalf("create schema: %v", err)
	}

	const seed = `
		INSERT INTO users (id, email, full_name, password)
		VALUES
			(1, 'jane@example.com', 'Jane Roe', '$2a$04$notarealhashbutgoodenough'),
			(2, 'ghost@example.com', 'Ghost', NULL)`
	if _, err := pool.Exec(ctx, seed); err != nil {
		t.Fatalf("seed users: %v", err)
	}

	return NewUserRepository(pool, instrument.NewNoop())
}

func TestUserRepository(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	t.Run("FindByEmail", func(t *testing.T) {

		// Act
		user, err := repo.FindByEmail(ctx, "jane@example.com")

		// Assert
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if user.ID != 1 || user.FullName != "Jane Roe" || user.PasswordHash == "" {
			t.Fatalf("unexpected user: %+v", user)
		}
		if user.Challenge != nil {
			t.Fatal("expected no pending challenge")
		}
	})

	t.Run("FindByEmailWithoutPassword", func(t *testing.T) {

		// Act
		user, err := repo.FindByEmail(ctx, "ghost@example.com")

		// Assert
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if user.CanAuthenticate() {
			t.Fatal("expected account without password to fail closed")
		}
	})

	t.Run("FindByEmailUnknown", func(t *testing.T) {

		// Act
		_, err := repo.FindByEmail(ctx, "nobody@example.com")

		// Assert
		if !errors.Is(err, goerror.ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("SaveAndLoadChallenge", func(t *testing.T) {

		// Arrange
		expires := time.Now().Add(10 * time.Minute).UTC().Truncate(time.Microsecond)

		// Act
		err := repo.SaveChallenge(ctx, 1, entity.Challenge{Code: "654321", ExpiresAt: expires})

		// Assert
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		user, err := repo.FindByEmail(ctx, "jane@example.com")
		if err != nil {
			t.Fatalf("reload: %v", err)
		}
		if user.Challenge == nil || user.Challenge.Code != "654321" {
			t.Fatalf("expected stored challenge, got %+v", user.Challenge)
		}
		if !user.Challenge.ExpiresAt.Equal(expires) {
			t.Fatalf("expected expiry %v, got %v", expires, user.Challenge.ExpiresAt)
		}
	})

	t.Run("SaveChallengeUnknownUser", func(t *testing.T) {

		// Act
		err := repo.SaveChallenge(ctx, 999, entity.Challenge{Code: "111111", ExpiresAt: time.Now()})

		// Assert
		if !errors.Is(err, goerror.ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("ClearChallenge", func(t *testing.T) {

		// Arrange
		expires := time.Now().Add(10 * time.Minute)
		if err := repo.SaveChallenge(ctx, 1, entity.Challenge{Code: "222333", ExpiresAt: expires}); err != nil {
			t.Fatalf("save: %v", err)
		}

		// Act
		mismatch, err := repo.ClearChallenge(ctx, 1, "000000")
		if err != nil {
			t.Fatalf("clear mismatch: %v", err)
		}
		cleared, err := repo.ClearChallenge(ctx, 1, "222333")
		if err != nil {
			t.Fatalf("clear: %v", err)
		}
		replay, err := repo.ClearChallenge(ctx, 1, "222333")

		// Assert
		if err != nil {
			t.Fatalf("replay: %v", err)
		}
		if mismatch {
			t.Fatal("expected mismatched code to leave the row")
		}
		if !cleared {
			t.Fatal("expected matching code to clear the row")
		}
		if replay {
			t.Fatal("expected second clear to find nothing")
		}
		user, err := repo.FindByEmail(ctx, "jane@example.com")
		if err != nil {
			t.Fatalf("reload: %v", err)
		}
		if user.Challenge != nil {
			t.Fatalf("expected challenge gone, got %+v", user.Challenge)
		}
	})
}
