package services_test

import (
	"context"
	"fmt"
	"strconv"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/srgjo27/stay_booking/internal/core/domain"
	"github.com/srgjo27/stay_booking/internal/core/ports/mocks"
	"github.com/srgjo27/stay_booking/internal/core/services"
	"github.com/stretchr/testify/mock"
)

// 2030-01-01 is a Tuesday.
var fixedNow = time.Date(2030, time.January, 1, 10, 0, 0, 0, time.UTC)

type fixture struct {
	tx           *mocks.Transactor
	rooms        *mocks.RoomRepository
	bookings     *mocks.BookingRepository
	blocks       *mocks.BlockedDatesRepository
	pricing      *mocks.PricingRepository
	redis        redismock.ClientMock
	availability *services.AvailabilityService
	pricer       *services.PricingService
	service      *services.BookingService
}

func newFixture(t *testing.T, opts ...services.BookingOption) *fixture {
	t.Helper()

	f := &fixture{
		tx:       mocks.NewTransactor(t),
		rooms:    mocks.NewRoomRepository(t),
		bookings: mocks.NewBookingRepository(t),
		blocks:   mocks.NewBlockedDatesRepository(t),
		pricing:  mocks.NewPricingRepository(t),
	}

	db, mockRedis := redismock.NewClientMock()
	f.redis = mockRedis
	t.Cleanup(func() {
		if err := mockRedis.ExpectationsWereMet(); err != nil {
			t.Errorf("there were unfulfilled redis expectations: %s", err)
		}
	})

	log, _ := test.NewNullLogger()

	f.availability = services.NewAvailabilityService(f.rooms, f.bookings, f.blocks, db, time.Minute, log)
	f.pricer = services.NewPricingService(f.rooms, f.pricing, log)

	opts = append([]services.BookingOption{services.WithClock(func() time.Time { return fixedNow })}, opts...)
	f.service = services.NewBookingService(f.tx, f.rooms, f.bookings, f.availability, f.pricer, log, opts...)

	return f
}

func (f *fixture) runTransactions() {
	f.tx.On("WithinTransaction", mock.Anything, mock.Anything).
		Return(func(ctx context.Context, fn func(context.Context) error) error { return fn(ctx) })
}

func newRoom() *domain.Room {
	return &domain.Room{
		ID:         uuid.New(),
		BusinessID: uuid.New(),
		RoomNumber: "101",
		BasePrice:  decimal.RequireFromString("1000"),
		Capacity:   2,
		Status:     domain.RoomAvailable,
	}
}

func date(month time.Month, day int) domain.Date {
	return domain.NewDate(2030, month, day)
}

func existingBooking(room *domain.Room, start, end domain.Date, status domain.BookingStatus) domain.Booking {
	return domain.Booking{
		ID:        uuid.New(),
		Reference: "BK-EXISTING-0001",
		RoomID:    room.ID,
		CheckIn:   start,
		CheckOut:  end,
		Status:    status,
	}
}

func generationKey(roomID uuid.UUID) string {
	return fmt.Sprintf("availability:gen:%s", roomID)
}

func cacheKey(roomID uuid.UUID, generation int64) string {
	return fmt.Sprintf("availability:%s:%d", roomID, generation)
}

// expectGeneration primes the room's cache generation read.
func (f *fixture) expectGeneration(roomID uuid.UUID, generation int64) {
	if generation == 0 {
		f.redis.ExpectGet(generationKey(roomID)).RedisNil()
		return
	}

	f.redis.ExpectGet(generationKey(roomID)).SetVal(strconv.FormatInt(generation, 10))
}

// expectInvalidate primes an invalidation that moves the room to generation.
func (f *fixture) expectInvalidate(roomID uuid.UUID, generation int64) {
	f.redis.ExpectIncr(generationKey(roomID)).SetVal(generation)
	f.redis.ExpectDel(cacheKey(roomID, generation-1)).SetVal(1)
}
