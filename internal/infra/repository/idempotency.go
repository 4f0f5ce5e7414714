package repository

import (
	"context"
	"time"

	"talazo-api/internal/infra"
	"talazo-api/internal/infra/db"
	"talazo-api/internal/pkg/pgconv"
	"talazo-api/internal/usecase/commands"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

const tryInsertIdempotencyKeySQL = `
INSERT INTO idempotency_keys (key, request_hash, status, expires_at, created_at, updated_at)
VALUES ($1, $2, 'processing', $3, $4, $4)
ON CONFLICT (key) DO NOTHING`

const getIdempotencyKeySQL = `
SELECT key, request_hash, status, booking_id, expires_at
FROM idempotency_keys
WHERE key = $1`

const completeIdempotencyKeySQL = `
UPDATE idempotency_keys
SET status = 'completed', booking_id = $2, updated_at = $3
WHERE key = $1`

const deleteIdempotencyKeySQL = `
DELETE FROM idempotency_keys
WHERE key = $1`

const deleteExpiredIdempotencyKeysSQL = `
DELETE FROM idempotency_keys
WHERE expires_at < now()`

type IdempotencyRepository struct {
	db db.DBTX
}

func NewIdempotencyRepository(conn db.DBTX) *IdempotencyRepository {
	return &IdempotencyRepository{db: conn}
}

// TryInsert claims the key, reporting false when another request already
// holds it. Callers Get afterwards to inspect the owning request.
func (r *IdempotencyRepository) TryInsert(ctx context.Context, key uuid.UUID, requestHash string, expiresAt, now time.Time) (bool, error) {
	tag, err := r.db.Exec(ctx, tryInsertIdempotencyKeySQL,
		key,
		requestHash,
		pgconv.TimeToPgtype(expiresAt),
		pgconv.TimeToPgtype(now),
	)
	if err != nil {
		return false, infra.WrapRepoErr("failed to claim idempotency key", err)
	}

	return tag.RowsAffected() > 0, nil
}

func (r *IdempotencyRepository) Get(ctx context.Context, key uuid.UUID) (*commands.IdempotencyRecord, error) {
	var (
		record    commands.IdempotencyRecord
		bookingID pgtype.UUID
		expiresAt pgtype.Timestamptz
	)

	err := r.db.QueryRow(ctx, getIdempotencyKeySQL, key).Scan(
		&record.Key,
		&record.RequestHash,
		&record.Status,
		&bookingID,
		&expiresAt,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("idempotency key not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to get idempotency key", err)
	}

	record.BookingID = pgconv.UUIDPtrFromPgtype(bookingID)
	record.ExpiresAt = pgconv.TimeFromPgtype(expiresAt)

	return &record, nil
}

func (r *IdempotencyRepository) Complete(ctx context.Context, tx db.DBTX, key uuid.UUID, bookingID uuid.UUID, now time.Time) error {
	_, err := tx.Exec(ctx, completeIdempotencyKeySQL, key, bookingID, pgconv.TimeToPgtype(now))
	if err != nil {
		return infra.WrapRepoErr("failed to complete idempotency key", err)
	}

	return nil
}

func (r *IdempotencyRepository) Delete(ctx context.Context, key uuid.UUID) error {
	_, err := r.db.Exec(ctx, deleteIdempotencyKeySQL, key)
	if err != nil {
		return infra.WrapRepoErr("failed to delete idempotency key", err)
	}

	return nil
}

func (r *IdempotencyRepository) DeleteExpired(ctx context.Context) (int64, error) {
	tag, err := r.db.Exec(ctx, deleteExpiredIdempotencyKeysSQL)
	if err != nil {
		return 0, infra.WrapRepoErr("failed to delete expired idempotency keys", err)
	}

	return tag.RowsAffected(), nil
}
