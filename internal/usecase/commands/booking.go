package commands

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"talazo-api/internal/domain/booking"
	"talazo-api/internal/infra"
	"talazo-api/internal/infra/db"
	"talazo-api/internal/pkg/clock"
	"talazo-api/internal/pkg/errs"
	"talazo-api/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var (
	ErrBookingNotFound         = errs.New("booking not found")
	ErrIdempotencyConflict     = errs.New("idempotency key reused with different payload")
	ErrIdempotencyCheckFailed  = errs.New("idempotency check failed")
	ErrDomainValidation        = errs.New("domain validation error")
	ErrDatabaseOperationFailed = errs.New("database operation failed")
)

// Idempotency claims outlive the request long enough for client retries, then
// get swept by DeleteExpired.
const idempotencyKeyTTL = 24 * time.Hour

type SubmitBookingResult struct {
	BookingID uuid.UUID
	Replayed  bool
}

// BookingPatch carries the admin mutation; nil fields stay untouched.
type BookingPatch struct {
	Status     *string
	AdminNotes *string
}

type BookingCommands interface {
	SubmitBooking(ctx context.Context, sub booking.Submission, meta booking.SubmitMeta, idempotencyKey *uuid.UUID) (*SubmitBookingResult, error)
	UpdateBooking(ctx context.Context, id uuid.UUID, patch BookingPatch) (*queries.BookingView, error)
}

type bookingCommandsImpl struct {
	bookingRepo     BookingRepository
	idempotencyRepo IdempotencyRepository
	notifier        BookingNotifier
	bookingQueries  queries.BookingQueries
	db              db.Pool
	clock           clock.Clock
}

func NewBookingCommands(
	bookingRepo BookingRepository,
	idempotencyRepo IdempotencyRepository,
	notifier BookingNotifier,
	bookingQueries queries.BookingQueries,
	pool db.Pool,
	clk clock.Clock,
) BookingCommands {
	return &bookingCommandsImpl{
		bookingRepo:     bookingRepo,
		idempotencyRepo: idempotencyRepo,
		notifier:        notifier,
		bookingQueries:  bookingQueries,
		db:              pool,
		clock:           clk,
	}
}

// SubmitBooking records one booking row and fires the two notification emails.
// The contract is "booking recorded": the result never depends on whether
// either email made it out. Duplicate submissions without an idempotency key
// create distinct rows.
func (c *bookingCommandsImpl) SubmitBooking(
	ctx context.Context,
	sub booking.Submission,
	meta booking.SubmitMeta,
	idempotencyKey *uuid.UUID,
) (*SubmitBookingResult, error) {
	entity, err := booking.NewBooking(c.clock, sub, meta)
	if err != nil {
		return nil, errs.Mark(err, ErrDomainValidation)
	}

	claimed := false
	if idempotencyKey != nil {
		requestHash := calculateRequestHash(sub)

		replayed, claimErr := c.claimIdempotencyKey(ctx, *idempotencyKey, requestHash)
		if claimErr != nil {
			return nil, claimErr
		}
		if replayed != nil {
			return &SubmitBookingResult{BookingID: *replayed, Replayed: true}, nil
		}
		claimed = true
	}

	if err := c.persistBooking(ctx, entity, idempotencyKey, claimed); err != nil {
		// Release the claim so an identical retry is not stuck behind a
		// processing record until the TTL sweep.
		if claimed {
			if delErr := c.idempotencyRepo.Delete(ctx, *idempotencyKey); delErr != nil {
				slog.Warn("failed to release idempotency key", "key", idempotencyKey.String(), "error", delErr)
			}
		}
		return nil, err
	}

	// Best-effort, explicitly outside the transaction: the booking is already
	// committed and notification failures must not surface.
	c.notifier.NotifyBookingCreated(ctx, entity)

	return &SubmitBookingResult{BookingID: entity.ID()}, nil
}

// claimIdempotencyKey returns the prior booking id when the same request was
// already completed under this key.
func (c *bookingCommandsImpl) claimIdempotencyKey(ctx context.Context, key uuid.UUID, requestHash string) (*uuid.UUID, error) {
	now := c.clock.Now()

	inserted, err := c.idempotencyRepo.TryInsert(ctx, key, requestHash, now.Add(idempotencyKeyTTL), now)
	if err != nil {
		return nil, errs.Mark(err, ErrIdempotencyCheckFailed)
	}
	if inserted {
		return nil, nil
	}

	existing, err := c.idempotencyRepo.Get(ctx, key)
	if err != nil {
		return nil, errs.Mark(err, ErrIdempotencyCheckFailed)
	}

	if existing.RequestHash != requestHash {
		return nil, ErrIdempotencyConflict
	}

	if existing.Status == "completed" && existing.BookingID != nil {
		return existing.BookingID, nil
	}

	// Same payload but the original request never completed; treat as a
	// conflict rather than racing it.
	return nil, ErrIdempotencyConflict
}

func (c *bookingCommandsImpl) persistBooking(ctx context.Context, entity *booking.Booking, idempotencyKey *uuid.UUID, claimed bool) error {
	tx, err := c.db.Begin(ctx)
	if err != nil {
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}
	defer func() {
		if rbErr := tx.Rollback(ctx); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
			slog.Warn("failed to rollback transaction", "error", rbErr)
		}
	}()

	bookingID, err := c.bookingRepo.Create(ctx, tx, entity)
	if err != nil {
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}

	if claimed && idempotencyKey != nil {
		if err := c.idempotencyRepo.Complete(ctx, tx, *idempotencyKey, bookingID, c.clock.Now()); err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}

	return nil
}

// UpdateBooking applies a status and/or admin-notes patch. Any enum value may
// replace any other; there is no transition graph.
func (c *bookingCommandsImpl) UpdateBooking(ctx context.Context, id uuid.UUID, patch BookingPatch) (*queries.BookingView, error) {
	var status *booking.Status
	if patch.Status != nil {
		parsed, err := booking.ParseStatus(*patch.Status)
		if err != nil {
			return nil, errs.Mark(err, errs.ErrInvalidBookingStatus)
		}
		status = &parsed
	}

	err := c.bookingRepo.Patch(ctx, c.db, id, status, patch.AdminNotes, c.clock.Now())
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, ErrBookingNotFound)
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	// Read-after-write: return the row as the admin view will render it.
	view, err := c.bookingQueries.GetByID(ctx, id)
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	return view, nil
}

func calculateRequestHash(sub booking.Submission) string {
	data, _ := json.Marshal(sub)
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}
