// Package db implements the notification module's persistence on PostgreSQL.
package db

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/trace"

	"github.com/firmanbudi/otpgate/internal/notification/entity"
	"github.com/firmanbudi/otpgate/internal/pkg/goerror"
	"github.com/firmanbudi/otpgate/internal/pkg/instrument"
)

// DeliveryLogRepository records email delivery attempts and outcomes.
type DeliveryLogRepository struct {
	pool   *pgxpool.Pool
	tracer trace.Tracer
}

// NewDeliveryLogRepository builds the repository.
func NewDeliveryLogRepository(pool *pgxpool.Pool, tel instrument.Instrumentation) *DeliveryLogRepository {
	return &DeliveryLogRepository{
		pool:   pool,
		tracer: tel.Tracer("notification.outbound.db"),
	}
}

// CreateDeliveryLog inserts a delivery log row and returns its ID.
func (r *DeliveryLogRepository) CreateDeliveryLog(ctx context.Context, data entity.CreateDeliveryLog) (int64, error) {
	ctx, span := r.tracer.Start(ctx, "DeliveryLogRepository.CreateDeliveryLog")
	defer span.End()

	const query = `
		INSERT INTO notification_delivery_logs
			(id, event_id, user_id, recipient, trigger_key, status, details, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, now(), now())
		RETURNING id`

	var id int64
	err := r.pool.QueryRow(ctx, query,
		data.ID, data.EventID, data.UserID, data.Recipient,
		data.TriggerKey, data.Status.String(), data.Details,
	).Scan(&id)
	if err != nil {
		return 0, mapError(err)
	}

	return id, nil
}

// UpdateDeliveryLogStatus stores the outcome of a send attempt.
func (r *DeliveryLogRepository) UpdateDeliveryLogStatus(ctx context.Context, u entity.UpdateDeliveryLog) error {
	ctx, span := r.tracer.Start(ctx, "DeliveryLogRepository.UpdateDeliveryLogStatus")
	defer span.End()

	const query = `
		UPDATE notification_delivery_logs
		SET status = $2, provider_response = $3, next_retry_at = $4, updated_at = now()
		WHERE id = $1`

	tag, err := r.pool.Exec(ctx, query, u.ID, u.Status.String(), u.ProviderResponse, u.NextRetryAt)
	if err != nil {
		return mapError(err)
	}
	if tag.RowsAffected() == 0 {
		return goerror.ErrNotFound
	}

	return nil
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
