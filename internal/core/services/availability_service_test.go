package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/srgjo27/stay_booking/internal/core/domain"
	"github.com/srgjo27/stay_booking/internal/core/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCheckAvailability_FreeRoom(t *testing.T) {
	f := newFixture(t)

	room := newRoom()
	f.rooms.On("GetByID", mock.Anything, room.ID).Return(room, nil)
	f.blocks.On("ListByRoom", mock.Anything, room.ID).Return(nil, nil)
	f.bookings.On("ListActiveByRoom", mock.Anything, room.ID).Return([]domain.Booking{
		existingBooking(room, date(time.January, 1), date(time.January, 5), domain.BookingConfirmed),
	}, nil)

	f.expectGeneration(room.ID, 0)
	key := cacheKey(room.ID, 0)
	f.redis.ExpectHGet(key, "2030-01-05:2030-01-10").RedisNil()
	f.redis.Regexp().ExpectHSet(key, "2030-01-05:2030-01-10", `.*"available":true.*`).SetVal(1)
	f.redis.ExpectExpire(key, time.Minute).SetVal(true)

	result, err := f.availability.CheckAvailability(context.Background(), room.ID, domain.Stay{
		Start: date(time.January, 5),
		End:   date(time.January, 10),
	})

	require.NoError(t, err)
	assert.True(t, result.Available)
	assert.Equal(t, services.AvailabilityAvailable, result.Status)
	assert.Empty(t, result.BlockingReason)
}

func TestCheckAvailability_BlockedWindow(t *testing.T) {
	f := newFixture(t)

	room := newRoom()
	f.rooms.On("GetByID", mock.Anything, room.ID).Return(room, nil)
	f.blocks.On("ListByRoom", mock.Anything, room.ID).Return([]domain.BlockedDates{{
		ID:        uuid.New(),
		RoomID:    room.ID,
		StartDate: date(time.March, 10),
		EndDate:   date(time.March, 15),
		Reason:    "annual maintenance",
	}}, nil)

	f.expectGeneration(room.ID, 2)
	key := cacheKey(room.ID, 2)
	f.redis.ExpectHGet(key, "2030-03-12:2030-03-13").RedisNil()
	f.redis.Regexp().ExpectHSet(key, "2030-03-12:2030-03-13", `.*`).SetVal(1)
	f.redis.ExpectExpire(key, time.Minute).SetVal(true)

	result, err := f.availability.CheckAvailability(context.Background(), room.ID, domain.Stay{
		Start: date(time.March, 12),
		End:   date(time.March, 13),
	})

	require.NoError(t, err)
	assert.False(t, result.Available)
	assert.Equal(t, services.AvailabilityBlocked, result.Status)
	assert.Equal(t, "annual maintenance", result.BlockingReason)
	assert.Equal(t, services.SourceBlockedDates, result.Source)
	f.bookings.AssertNotCalled(t, "ListActiveByRoom", mock.Anything, mock.Anything)
}

func TestCheckAvailability_ServedFromCache(t *testing.T) {
	f := newFixture(t)

	roomID := uuid.New()
	f.expectGeneration(roomID, 3)
	f.redis.ExpectHGet(cacheKey(roomID, 3), "2030-01-05:2030-01-10").
		SetVal(`{"room_id":"` + roomID.String() + `","available":false,"status":"BLOCKED","blocking_reason":"already booked under BK-1"}`)

	result, err := f.availability.CheckAvailability(context.Background(), roomID, domain.Stay{
		Start: date(time.January, 5),
		End:   date(time.January, 10),
	})

	require.NoError(t, err)
	assert.False(t, result.Available)
	assert.Equal(t, "already booked under BK-1", result.BlockingReason)
	f.rooms.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
}

func TestCheckAvailability_CacheOutageFallsThrough(t *testing.T) {
	f := newFixture(t)

	room := newRoom()
	f.rooms.On("GetByID", mock.Anything, room.ID).Return(room, nil)
	f.blocks.On("ListByRoom", mock.Anything, room.ID).Return(nil, nil)
	f.bookings.On("ListActiveByRoom", mock.Anything, room.ID).Return(nil, nil)

	f.redis.ExpectGet(generationKey(room.ID)).SetErr(errors.New("connection refused"))

	result, err := f.availability.CheckAvailability(context.Background(), room.ID, domain.Stay{
		Start: date(time.January, 5),
		End:   date(time.January, 10),
	})

	require.NoError(t, err)
	assert.True(t, result.Available)
}

func TestCheckAvailability_Fail_InvalidRange(t *testing.T) {
	f := newFixture(t)

	_, err := f.availability.CheckAvailability(context.Background(), uuid.New(), domain.Stay{
		Start: date(time.January, 10),
		End:   date(time.January, 5),
	})

	assert.True(t, domain.IsValidation(err))
}

func TestCheckAvailability_Fail_UnknownRoom(t *testing.T) {
	f := newFixture(t)

	roomID := uuid.New()
	f.expectGeneration(roomID, 0)
	f.redis.ExpectHGet(cacheKey(roomID, 0), "2030-01-05:2030-01-10").RedisNil()
	f.rooms.On("GetByID", mock.Anything, roomID).Return(nil, domain.NewNotFoundError("room", roomID.String()))

	_, err := f.availability.CheckAvailability(context.Background(), roomID, domain.Stay{
		Start: date(time.January, 5),
		End:   date(time.January, 10),
	})

	assert.True(t, domain.IsNotFound(err))
}

func TestBlockDates(t *testing.T) {
	f := newFixture(t)

	room := newRoom()
	f.rooms.On("GetByID", mock.Anything, room.ID).Return(room, nil)
	f.blocks.On("Create", mock.Anything, mock.AnythingOfType("*domain.BlockedDates")).Return(nil)
	f.expectInvalidate(room.ID, 1)

	block, err := f.availability.BlockDates(context.Background(), room.ID, services.BlockDatesRequest{
		StartDate: date(time.March, 10),
		EndDate:   date(time.March, 15),
		Reason:    "repainting",
	})

	require.NoError(t, err)
	assert.Equal(t, room.ID, block.RoomID)
	assert.NotEqual(t, uuid.Nil, block.ID)
}

func TestBlockDates_Fail_InvertedWindow(t *testing.T) {
	f := newFixture(t)

	_, err := f.availability.BlockDates(context.Background(), uuid.New(), services.BlockDatesRequest{
		StartDate: date(time.March, 15),
		EndDate:   date(time.March, 15),
	})

	assert.True(t, domain.IsValidation(err))
}

func TestUnblockDates(t *testing.T) {
	f := newFixture(t)

	roomID, blockID := uuid.New(), uuid.New()
	f.blocks.On("Delete", mock.Anything, roomID, blockID).Return(nil)
	f.expectInvalidate(roomID, 5)

	assert.NoError(t, f.availability.UnblockDates(context.Background(), roomID, blockID))
}

func TestCheckAvailability_ReadRacingABookingDoesNotCacheStaleAnswer(t *testing.T) {
	f := newFixture(t)

	room := newRoom()
	stay := domain.Stay{Start: date(time.January, 5), End: date(time.January, 10)}
	committed := existingBooking(room, date(time.January, 6), date(time.January, 8), domain.BookingPending)

	f.rooms.On("GetByID", mock.Anything, room.ID).Return(room, nil)
	f.blocks.On("ListByRoom", mock.Anything, room.ID).Return(nil, nil)
	// The booking commits and invalidates while the first read is loading bookings.
	f.bookings.On("ListActiveByRoom", mock.Anything, room.ID).
		Run(func(mock.Arguments) { f.availability.InvalidateRoom(context.Background(), room.ID) }).
		Return(nil, nil).Once()
	f.bookings.On("ListActiveByRoom", mock.Anything, room.ID).Return([]domain.Booking{committed}, nil).Once()

	f.expectGeneration(room.ID, 0)
	f.redis.ExpectHGet(cacheKey(room.ID, 0), "2030-01-05:2030-01-10").RedisNil()
	f.expectInvalidate(room.ID, 1)
	f.redis.Regexp().ExpectHSet(cacheKey(room.ID, 0), "2030-01-05:2030-01-10", `.*"available":true.*`).SetVal(1)
	f.redis.ExpectExpire(cacheKey(room.ID, 0), time.Minute).SetVal(true)

	f.expectGeneration(room.ID, 1)
	f.redis.ExpectHGet(cacheKey(room.ID, 1), "2030-01-05:2030-01-10").RedisNil()
	f.redis.Regexp().ExpectHSet(cacheKey(room.ID, 1), "2030-01-05:2030-01-10", `.*"available":false.*`).SetVal(1)
	f.redis.ExpectExpire(cacheKey(room.ID, 1), time.Minute).SetVal(true)

	inFlight, err := f.availability.CheckAvailability(context.Background(), room.ID, stay)
	require.NoError(t, err)
	assert.True(t, inFlight.Available)

	after, err := f.availability.CheckAvailability(context.Background(), room.ID, stay)
	require.NoError(t, err)
	assert.False(t, after.Available)
	assert.Equal(t, committed.Reference, after.ConflictingReference)
}
