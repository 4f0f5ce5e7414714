//go:build unit

package commands_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"talazo-api/internal/domain/booking"
	"talazo-api/internal/infra"
	"talazo-api/internal/infra/db"
	"talazo-api/internal/pkg/clock"
	"talazo-api/internal/pkg/errs"
	"talazo-api/internal/usecase/commands"
	"talazo-api/tests/common/builder"
	commandsmock "talazo-api/tests/mock/commands"
	queriesmock "talazo-api/tests/mock/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

// fakeTx stands in for pgx.Tx; repositories are mocked so only the
// commit/rollback surface is ever touched.
type fakeTx struct {
	pgx.Tx
	committed  bool
	commitErr  error
	rolledBack bool
}

func (f *fakeTx) Commit(_ context.Context) error {
	if f.commitErr != nil {
		return f.commitErr
	}
	f.committed = true
	return nil
}

func (f *fakeTx) Rollback(_ context.Context) error {
	if f.committed {
		return pgx.ErrTxClosed
	}
	f.rolledBack = true
	return nil
}

type fakePool struct {
	db.DBTX
	tx       *fakeTx
	beginErr error
}

func (f *fakePool) Begin(_ context.Context) (pgx.Tx, error) {
	if f.beginErr != nil {
		return nil, f.beginErr
	}
	return f.tx, nil
}

type BookingCommandsTestSuite struct {
	suite.Suite
	mockCtrl        *gomock.Controller
	bookingRepo     *commandsmock.MockBookingRepository
	idempotencyRepo *commandsmock.MockIdempotencyRepository
	notifier        *commandsmock.MockBookingNotifier
	bookingQueries  *queriesmock.MockBookingQueries
	pool            *fakePool
	clock           *clock.MockClock
	commands        commands.BookingCommands
}

func (s *BookingCommandsTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.bookingRepo = commandsmock.NewMockBookingRepository(s.mockCtrl)
	s.idempotencyRepo = commandsmock.NewMockIdempotencyRepository(s.mockCtrl)
	s.notifier = commandsmock.NewMockBookingNotifier(s.mockCtrl)
	s.bookingQueries = queriesmock.NewMockBookingQueries(s.mockCtrl)
	s.pool = &fakePool{tx: &fakeTx{}}
	s.clock = clock.NewMockClock(time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC))
	s.commands = commands.NewBookingCommands(
		s.bookingRepo, s.idempotencyRepo, s.notifier, s.bookingQueries, s.pool, s.clock,
	)
}

func (s *BookingCommandsTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestBookingCommandsSuite(t *testing.T) {
	suite.Run(t, new(BookingCommandsTestSuite))
}

// ================================================================================
// SubmitBooking
// ================================================================================

func (s *BookingCommandsTestSuite) TestSubmitBooking() {
	ctx := context.Background()
	sub := builder.NewBookingBuilder().BuildSubmission()
	meta := booking.SubmitMeta{IPAddress: "196.220.1.10", UserAgent: "test-agent"}

	s.Run("success without idempotency key", func() {
		s.SetupTest()

		var created *booking.Booking
		s.bookingRepo.EXPECT().
			Create(gomock.Any(), s.pool.tx, gomock.Any()).
			DoAndReturn(func(_ context.Context, _ db.DBTX, b *booking.Booking) (uuid.UUID, error) {
				created = b
				return b.ID(), nil
			}).Times(1)
		s.notifier.EXPECT().NotifyBookingCreated(gomock.Any(), gomock.Any()).Times(1)

		result, err := s.commands.SubmitBooking(ctx, sub, meta, nil)
		s.Require().NoError(err)
		s.Require().NotNil(result)
		s.False(result.Replayed)
		s.Equal(created.ID(), result.BookingID)
		s.Equal(booking.StatusPending, created.Status())
		s.True(s.pool.tx.committed)
	})

	s.Run("validation failure touches nothing", func() {
		s.SetupTest()

		bad := sub
		bad.Email = ""

		result, err := s.commands.SubmitBooking(ctx, bad, meta, nil)
		s.Require().Error(err)
		s.Nil(result)
		s.ErrorIs(err, commands.ErrDomainValidation)

		var missing *booking.MissingFieldError
		s.Require().True(errors.As(err, &missing))
		s.Equal("email", missing.Field)
	})

	s.Run("persistence failure surfaces and suppresses notification", func() {
		s.SetupTest()

		s.bookingRepo.EXPECT().
			Create(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(uuid.Nil, infra.WrapRepoErr("insert failed", errors.New("boom"))).Times(1)

		result, err := s.commands.SubmitBooking(ctx, sub, meta, nil)
		s.Require().Error(err)
		s.Nil(result)
		s.ErrorIs(err, commands.ErrDatabaseOperationFailed)
		s.True(s.pool.tx.rolledBack)
	})

	s.Run("failed keyed submission releases the key for retry", func() {
		s.SetupTest()

		key := uuid.New()
		s.idempotencyRepo.EXPECT().
			TryInsert(gomock.Any(), key, gomock.Any(), gomock.Any(), gomock.Any()).
			Return(true, nil).Times(1)
		s.bookingRepo.EXPECT().
			Create(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(uuid.Nil, infra.WrapRepoErr("insert failed", errors.New("boom"))).Times(1)
		s.idempotencyRepo.EXPECT().Delete(gomock.Any(), key).Return(nil).Times(1)

		result, err := s.commands.SubmitBooking(ctx, sub, meta, &key)
		s.Require().Error(err)
		s.Nil(result)
		s.ErrorIs(err, commands.ErrDatabaseOperationFailed)

		// Key released: an identical retry claims it afresh and succeeds
		s.idempotencyRepo.EXPECT().
			TryInsert(gomock.Any(), key, gomock.Any(), gomock.Any(), gomock.Any()).
			Return(true, nil).Times(1)
		s.bookingRepo.EXPECT().
			Create(gomock.Any(), s.pool.tx, gomock.Any()).
			DoAndReturn(func(_ context.Context, _ db.DBTX, b *booking.Booking) (uuid.UUID, error) {
				return b.ID(), nil
			}).Times(1)
		s.idempotencyRepo.EXPECT().
			Complete(gomock.Any(), s.pool.tx, key, gomock.Any(), gomock.Any()).
			Return(nil).Times(1)
		s.notifier.EXPECT().NotifyBookingCreated(gomock.Any(), gomock.Any()).Times(1)

		retried, err := s.commands.SubmitBooking(ctx, sub, meta, &key)
		s.Require().NoError(err)
		s.False(retried.Replayed)
		s.True(s.pool.tx.committed)
	})

	s.Run("fresh idempotency key is claimed and completed", func() {
		s.SetupTest()

		key := uuid.New()
		s.idempotencyRepo.EXPECT().
			TryInsert(gomock.Any(), key, gomock.Any(), gomock.Any(), gomock.Any()).
			Return(true, nil).Times(1)
		s.bookingRepo.EXPECT().
			Create(gomock.Any(), s.pool.tx, gomock.Any()).
			DoAndReturn(func(_ context.Context, _ db.DBTX, b *booking.Booking) (uuid.UUID, error) {
				return b.ID(), nil
			}).Times(1)
		s.idempotencyRepo.EXPECT().
			Complete(gomock.Any(), s.pool.tx, key, gomock.Any(), gomock.Any()).
			Return(nil).Times(1)
		s.notifier.EXPECT().NotifyBookingCreated(gomock.Any(), gomock.Any()).Times(1)

		result, err := s.commands.SubmitBooking(ctx, sub, meta, &key)
		s.Require().NoError(err)
		s.False(result.Replayed)
		s.True(s.pool.tx.committed)
	})

	s.Run("completed key with same payload replays without side effects", func() {
		s.SetupTest()

		key := uuid.New()
		priorID := uuid.New()
		var seenHash string
		s.idempotencyRepo.EXPECT().
			TryInsert(gomock.Any(), key, gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ uuid.UUID, hash string, _, _ time.Time) (bool, error) {
				seenHash = hash
				return false, nil
			}).Times(1)
		s.idempotencyRepo.EXPECT().
			Get(gomock.Any(), key).
			DoAndReturn(func(_ context.Context, _ uuid.UUID) (*commands.IdempotencyRecord, error) {
				return &commands.IdempotencyRecord{
					Key:         key,
					RequestHash: seenHash,
					Status:      "completed",
					BookingID:   &priorID,
				}, nil
			}).Times(1)

		result, err := s.commands.SubmitBooking(ctx, sub, meta, &key)
		s.Require().NoError(err)
		s.True(result.Replayed)
		s.Equal(priorID, result.BookingID)
		s.False(s.pool.tx.committed)
	})

	s.Run("key reuse with different payload conflicts", func() {
		s.SetupTest()

		key := uuid.New()
		s.idempotencyRepo.EXPECT().
			TryInsert(gomock.Any(), key, gomock.Any(), gomock.Any(), gomock.Any()).
			Return(false, nil).Times(1)
		s.idempotencyRepo.EXPECT().
			Get(gomock.Any(), key).
			Return(&commands.IdempotencyRecord{Key: key, RequestHash: "different", Status: "completed"}, nil).
			Times(1)

		result, err := s.commands.SubmitBooking(ctx, sub, meta, &key)
		s.Require().Error(err)
		s.Nil(result)
		s.ErrorIs(err, commands.ErrIdempotencyConflict)
	})

	s.Run("in-flight key with same payload conflicts", func() {
		s.SetupTest()

		key := uuid.New()
		var seenHash string
		s.idempotencyRepo.EXPECT().
			TryInsert(gomock.Any(), key, gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ uuid.UUID, hash string, _, _ time.Time) (bool, error) {
				seenHash = hash
				return false, nil
			}).Times(1)
		s.idempotencyRepo.EXPECT().
			Get(gomock.Any(), key).
			DoAndReturn(func(_ context.Context, _ uuid.UUID) (*commands.IdempotencyRecord, error) {
				return &commands.IdempotencyRecord{Key: key, RequestHash: seenHash, Status: "processing"}, nil
			}).Times(1)

		_, err := s.commands.SubmitBooking(ctx, sub, meta, &key)
		s.ErrorIs(err, commands.ErrIdempotencyConflict)
	})
}

// ================================================================================
// UpdateBooking
// ================================================================================

func (s *BookingCommandsTestSuite) TestUpdateBooking() {
	ctx := context.Background()
	id := uuid.New()

	s.Run("status and notes are patched and the row re-read", func() {
		s.SetupTest()

		status := "confirmed"
		notes := "Visit scheduled for Tuesday"
		view := builder.NewBookingBuilder().WithStatus(status).WithAdminNotes(notes).BuildView()
		view.ID = id

		s.bookingRepo.EXPECT().
			Patch(gomock.Any(), s.pool, id, gomock.Any(), &notes, s.clock.Now()).
			DoAndReturn(func(_ context.Context, _ db.DBTX, _ uuid.UUID, st *booking.Status, _ *string, _ time.Time) error {
				s.Require().NotNil(st)
				s.Equal(booking.StatusConfirmed, *st)
				return nil
			}).Times(1)
		s.bookingQueries.EXPECT().GetByID(gomock.Any(), id).Return(view, nil).Times(1)

		actual, err := s.commands.UpdateBooking(ctx, id, commands.BookingPatch{Status: &status, AdminNotes: &notes})
		s.Require().NoError(err)
		s.Equal(view, actual)
	})

	s.Run("every enum value is accepted", func() {
		for _, target := range booking.Statuses() {
			s.SetupTest()

			status := target.String()
			view := builder.NewBookingBuilder().WithStatus(status).BuildView()
			view.ID = id

			s.bookingRepo.EXPECT().
				Patch(gomock.Any(), s.pool, id, gomock.Any(), nil, gomock.Any()).
				Return(nil).Times(1)
			s.bookingQueries.EXPECT().GetByID(gomock.Any(), id).Return(view, nil).Times(1)

			actual, err := s.commands.UpdateBooking(ctx, id, commands.BookingPatch{Status: &status})
			s.Require().NoError(err)
			s.Equal(status, actual.Status)
		}
	})

	s.Run("invalid status is rejected before the store is touched", func() {
		s.SetupTest()

		status := "archived"
		_, err := s.commands.UpdateBooking(ctx, id, commands.BookingPatch{Status: &status})
		s.ErrorIs(err, errs.ErrInvalidBookingStatus)
	})

	s.Run("unknown id maps to not found", func() {
		s.SetupTest()

		status := "confirmed"
		s.bookingRepo.EXPECT().
			Patch(gomock.Any(), s.pool, id, gomock.Any(), nil, gomock.Any()).
			Return(infra.WrapRepoErr("booking not found", pgx.ErrNoRows, infra.KindNotFound)).Times(1)

		_, err := s.commands.UpdateBooking(ctx, id, commands.BookingPatch{Status: &status})
		s.ErrorIs(err, commands.ErrBookingNotFound)
	})
}
