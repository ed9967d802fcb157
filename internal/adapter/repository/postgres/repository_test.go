package postgres

import (
	"context"
	"database/sql/driver"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"github.com/srgjo27/stay_booking/internal/core/domain"
	"github.com/srgjo27/stay_booking/internal/core/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockDB(t *testing.T) (*Transactor, sqlmock.Sqlmock, func()) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	return NewTransactor(db), mock, func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		db.Close()
	}
}

func newBooking() *domain.Booking {
	now := time.Date(2030, time.January, 1, 10, 0, 0, 0, time.UTC)

	return &domain.Booking{
		ID:          uuid.New(),
		Reference:   "BK-LQ2X5K00-AB12",
		TouristID:   uuid.New(),
		RoomID:      uuid.New(),
		BusinessID:  uuid.New(),
		CheckIn:     domain.NewDate(2030, time.January, 7),
		CheckOut:    domain.NewDate(2030, time.January, 9),
		GuestCount:  2,
		TotalNights: 2,
		TotalAmount: domain.NewMoney(decimal.RequireFromString("2000")),
		Status:      domain.BookingPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

func TestCreateBooking_ReferenceCollisionRollsBackToSavepoint(t *testing.T) {
	tx, mock, done := newMockDB(t)
	defer done()

	repo := NewBookingRepository(tx.db)
	booking := newBooking()

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`SAVEPOINT booking_insert`)).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`INSERT INTO bookings`).
		WillReturnError(&pq.Error{Code: "23505", Constraint: bookingReferenceConstraint})
	mock.ExpectExec(regexp.QuoteMeta(`ROLLBACK TO SAVEPOINT booking_insert`)).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta(`SAVEPOINT booking_insert`)).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`INSERT INTO bookings`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(`RELEASE SAVEPOINT booking_insert`)).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	err := tx.WithinTransaction(context.Background(), func(ctx context.Context) error {
		first := repo.CreateBooking(ctx, booking)
		require.ErrorIs(t, first, domain.ErrDuplicateReference)

		booking.Reference = "BK-LQ2X5K00-CD34"
		return repo.CreateBooking(ctx, booking)
	})

	assert.NoError(t, err)
}

func TestCreateBooking_OverlapIsConflict(t *testing.T) {
	tx, mock, done := newMockDB(t)
	defer done()

	repo := NewBookingRepository(tx.db)

	mock.ExpectExec(`INSERT INTO bookings`).
		WillReturnError(&pq.Error{Code: "23P01", Constraint: "bookings_no_overlap"})

	err := repo.CreateBooking(context.Background(), newBooking())

	assert.True(t, domain.IsConflict(err))
}

func TestUpdateStatus_StaleWhenNoRowMatches(t *testing.T) {
	tx, mock, done := newMockDB(t)
	defer done()

	repo := NewBookingRepository(tx.db)
	booking := newBooking()
	booking.Stamp(domain.BookingConfirmed, booking.CreatedAt.Add(time.Hour))

	guard := []driver.Value{
		sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(),
		sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(),
		sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(),
		booking.ID, domain.BookingPending,
	}

	mock.ExpectExec(regexp.QuoteMeta(`WHERE id = $10 AND status = $11`)).WithArgs(guard...).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta(`WHERE id = $10 AND status = $11`)).WithArgs(guard...).WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.UpdateStatus(context.Background(), booking, domain.BookingPending)
	assert.ErrorIs(t, err, domain.ErrStaleBooking)

	err = repo.UpdateStatus(context.Background(), booking, domain.BookingPending)
	assert.NoError(t, err)
}

var pricingColumns = []string{
	"id", "business_id", "room_id", "base_price",
	"weekend_price", "weekend_days",
	"peak_season_price", "peak_season_months",
	"high_season_price", "high_season_months",
	"low_season_price", "low_season_months",
	"is_active", "updated_at",
}

func TestFindActive(t *testing.T) {
	businessID, roomID := uuid.New(), uuid.New()
	query := regexp.QuoteMeta(`ORDER BY room_id NULLS LAST, updated_at DESC`)

	t.Run("room schedule wins", func(t *testing.T) {
		tx, mock, done := newMockDB(t)
		defer done()

		mock.ExpectQuery(query).WithArgs(businessID, roomID).WillReturnRows(
			sqlmock.NewRows(pricingColumns).AddRow(
				uuid.NewString(), businessID.String(), roomID.String(), "1000.00",
				"1500.00", []byte("{0,6}"),
				"2500.50", []byte("{12}"),
				nil, []byte("{}"),
				nil, []byte("{}"),
				true, time.Now(),
			))

		match, err := NewPricingRepository(tx.db).FindActive(context.Background(), businessID, roomID)

		require.NoError(t, err)
		assert.Equal(t, ports.PricingRoom, match.Scope)
		assert.Equal(t, roomID, *match.Pricing.RoomID)
		assert.Equal(t, []time.Weekday{time.Sunday, time.Saturday}, match.Pricing.WeekendDays)
		assert.Equal(t, []time.Month{time.December}, match.Pricing.PeakSeasonMonths)
		assert.False(t, match.Pricing.HighSeasonPrice.Valid)
	})

	t.Run("business schedule as fallback", func(t *testing.T) {
		tx, mock, done := newMockDB(t)
		defer done()

		mock.ExpectQuery(query).WithArgs(businessID, roomID).WillReturnRows(
			sqlmock.NewRows(pricingColumns).AddRow(
				uuid.NewString(), businessID.String(), nil, "900.00",
				nil, []byte("{}"),
				nil, []byte("{}"),
				nil, []byte("{}"),
				nil, []byte("{}"),
				true, time.Now(),
			))

		match, err := NewPricingRepository(tx.db).FindActive(context.Background(), businessID, roomID)

		require.NoError(t, err)
		assert.Equal(t, ports.PricingBusiness, match.Scope)
		assert.Nil(t, match.Pricing.RoomID)
	})

	t.Run("nothing configured", func(t *testing.T) {
		tx, mock, done := newMockDB(t)
		defer done()

		mock.ExpectQuery(query).WithArgs(businessID, roomID).WillReturnRows(sqlmock.NewRows(pricingColumns))

		match, err := NewPricingRepository(tx.db).FindActive(context.Background(), businessID, roomID)

		require.NoError(t, err)
		assert.Equal(t, ports.PricingNone, match.Scope)
		assert.Nil(t, match.Pricing)
	})
}
