// Package db implements the auth module's persistence on PostgreSQL.
package db

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/trace"

	"github.com/firmanbudi/otpgate/internal/auth/entity"
	"github.com/firmanbudi/otpgate/internal/pkg/goerror"
	"github.com/firmanbudi/otpgate/internal/pkg/instrument"
)

// UserRepository reads and mutates user rows.
type UserRepository struct {
	pool   *pgxpool.Pool
	tracer trace.Tracer
}

// NewUserRepository builds the repository.
func NewUserRepository(pool *pgxpool.Pool, tel instrument.Instrumentation) *UserRepository {
	return &UserRepository{
		pool:   pool,
		tracer: tel.Tracer("auth.outbound.db"),
	}
}

// FindByEmail loads the user and any pending challenge in one query.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	ctx, span := r.tracer.Start(ctx, "UserRepository.FindByEmail")
	defer span.End()

	const query = `
		SELECT id, email, full_name, password, two_factor_code, two_factor_expires_at
		FROM users
		WHERE email = $1 AND deleted_at IS NULL`

	var (
		user      entity.User
		password  *string
		code      *string
		expiresAt *time.Time
	)

	err := r.pool.QueryRow(ctx, query, email).
		Scan(&user.ID, &user.Email, &user.FullName, &password, &code, &expiresAt)
	if err != nil {
		return nil, mapError(err)
	}

	if password != nil {
		user.PasswordHash = *password
	}
	if code != nil && expiresAt != nil {
		user.Challenge = &entity.Challenge{Code: *code, ExpiresAt: *expiresAt}
	}

	return &user, nil
}

// SaveChallenge stores a verification code on the user, replacing any
// previous one. The code and expiry always change together.
func (r *UserRepository) SaveChallenge(ctx context.Context, userID int64, ch entity.Challenge) error {
	ctx, span := r.tracer.Start(ctx, "UserRepository.SaveChallenge")
	defer span.End()

	const query = `
		UPDATE users
		SET two_factor_code = $2, two_factor_expires_at = $3, updated_at = now()
		WHERE id = $1 AND deleted_at IS NULL`

	tag, err := r.pool.Exec(ctx, query, userID, ch.Code, ch.ExpiresAt)
	if err != nil {
		return mapError(err)
	}
	if tag.RowsAffected() == 0 {
		return goerror.ErrNotFound
	}

	return nil
}

// ClearChallenge removes the challenge only when the stored code still equals
// code. The guard makes concurrent consumption race-free: exactly one caller
// observes a cleared row.
func (r *UserRepository) ClearChallenge(ctx context.Context, userID int64, code string) (bool, error) {
	ctx, span := r.tracer.Start(ctx, "UserRepository.ClearChallenge")
	defer span.End()

	const query = `
		UPDATE users
		SET two_factor_code = NULL, two_factor_expires_at = NULL, updated_at = now()
		WHERE id = $1 AND two_factor_code = $2 AND deleted_at IS NULL`

	tag, err := r.pool.Exec(ctx, query, userID, code)
	if err != nil {
		return false, mapError(err)
	}

	return tag.RowsAffected() > 0, nil
}

func mapError(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return goerror.ErrNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return goerror.ErrConflict
	}

	return err
}
