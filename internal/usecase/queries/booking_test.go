//go:build unit

package queries_test

import (
	"context"
	"testing"

	"talazo-api/internal/domain/booking"
	"talazo-api/internal/pkg/errs"
	"talazo-api/internal/usecase/queries"
	"talazo-api/tests/common/builder"
	queriesmock "talazo-api/tests/mock/queries"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type BookingQueriesTestSuite struct {
	suite.Suite
	mockCtrl *gomock.Controller
	store    *queriesmock.MockBookingReadStore
	queries  queries.BookingQueries
}

func (s *BookingQueriesTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.store = queriesmock.NewMockBookingReadStore(s.mockCtrl)
	s.queries = queries.NewBookingQueries(s.store)
}

func (s *BookingQueriesTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestBookingQueriesSuite(t *testing.T) {
	suite.Run(t, new(BookingQueriesTestSuite))
}

func (s *BookingQueriesTestSuite) TestList() {
	ctx := context.Background()

	s.Run("defaults apply with no filter", func() {
		s.SetupTest()

		rows := []*queries.BookingView{builder.NewBookingBuilder().BuildView()}
		s.store.EXPECT().
			FindPage(gomock.Any(), nil, int32(queries.DefaultListLimit), int32(0)).
			Return(rows, nil).Times(1)
		s.store.EXPECT().Count(gomock.Any(), nil).Return(int64(1), nil).Times(1)

		page, err := s.queries.List(ctx, "", 0, 0)
		s.Require().NoError(err)
		s.Equal(rows, page.Bookings)
		s.Equal(int64(1), page.TotalCount)
		s.Equal(1, page.CurrentPage)
		s.Equal(1, page.TotalPages)
	})

	s.Run("all is equivalent to no filter", func() {
		s.SetupTest()

		s.store.EXPECT().
			FindPage(gomock.Any(), nil, int32(queries.DefaultListLimit), int32(0)).
			Return(nil, nil).Times(1)
		s.store.EXPECT().Count(gomock.Any(), nil).Return(int64(0), nil).Times(1)

		_, err := s.queries.List(ctx, "all", 0, 0)
		s.NoError(err)
	})

	s.Run("status filter reaches the store and the count", func() {
		s.SetupTest()

		confirmed := booking.StatusConfirmed
		s.store.EXPECT().
			FindPage(gomock.Any(), &confirmed, int32(10), int32(20)).
			Return(nil, nil).Times(1)
		s.store.EXPECT().Count(gomock.Any(), &confirmed).Return(int64(45), nil).Times(1)

		page, err := s.queries.List(ctx, "confirmed", 10, 20)
		s.Require().NoError(err)
		s.Equal(int64(45), page.TotalCount)
		s.Equal(3, page.CurrentPage)
		s.Equal(5, page.TotalPages)
	})

	s.Run("invalid status filter is rejected", func() {
		s.SetupTest()

		_, err := s.queries.List(ctx, "archived", 0, 0)
		s.ErrorIs(err, errs.ErrInvalidBookingStatus)
	})

	s.Run("limit is clamped to the maximum", func() {
		s.SetupTest()

		s.store.EXPECT().
			FindPage(gomock.Any(), nil, int32(queries.MaxListLimit), int32(0)).
			Return(nil, nil).Times(1)
		s.store.EXPECT().Count(gomock.Any(), nil).Return(int64(0), nil).Times(1)

		_, err := s.queries.List(ctx, "", queries.MaxListLimit+1, 0)
		s.NoError(err)
	})

	s.Run("partial last page rounds total pages up", func() {
		s.SetupTest()

		s.store.EXPECT().
			FindPage(gomock.Any(), nil, int32(50), int32(0)).
			Return(nil, nil).Times(1)
		s.store.EXPECT().Count(gomock.Any(), nil).Return(int64(101), nil).Times(1)

		page, err := s.queries.List(ctx, "", 50, 0)
		s.Require().NoError(err)
		s.Equal(3, page.TotalPages)
	})
}

func TestValidateLimit(t *testing.T) {
	suite := []struct {
		in   int
		want int
	}{
		{0, queries.DefaultListLimit},
		{-5, queries.DefaultListLimit},
		{1, 1},
		{queries.MaxListLimit, queries.MaxListLimit},
		{queries.MaxListLimit + 1, queries.MaxListLimit},
	}
	for _, tc := range suite {
		if got := queries.ValidateLimit(tc.in); got != tc.want {
			t.Errorf("ValidateLimit(%d) = %d, want %d", tc.in, got, tc.want)
		}
	}
}
