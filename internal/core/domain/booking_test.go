package domain_test

import (
	"testing"
	"time"

	"github.com/srgjo27/stay_booking/internal/core/domain"
	"github.com/stretchr/testify/assert"
)

var allStatuses = []domain.BookingStatus{
	domain.BookingPending,
	domain.BookingConfirmed,
	domain.BookingCheckedIn,
	domain.BookingCheckedOut,
	domain.BookingCancelled,
	domain.BookingNoShow,
	domain.BookingRefunded,
}

func TestBookingStatus_TransitionTable(t *testing.T) {
	allowed := map[[2]domain.BookingStatus]bool{
		{domain.BookingPending, domain.BookingConfirmed}:    true,
		{domain.BookingPending, domain.BookingCancelled}:    true,
		{domain.BookingConfirmed, domain.BookingCheckedIn}:  true,
		{domain.BookingConfirmed, domain.BookingCancelled}:  true,
		{domain.BookingConfirmed, domain.BookingNoShow}:     true,
		{domain.BookingCheckedIn, domain.BookingCheckedOut}: true,
		{domain.BookingCheckedOut, domain.BookingRefunded}:  true,
	}

	for _, from := range allStatuses {
		for _, to := range allStatuses {
			assert.Equal(t, allowed[[2]domain.BookingStatus{from, to}], from.CanTransitionTo(to), "%s -> %s", from, to)
		}
	}
}

func TestBookingStatus_HoldsRoom(t *testing.T) {
	assert.True(t, domain.BookingPending.HoldsRoom())
	assert.True(t, domain.BookingCheckedOut.HoldsRoom())
	assert.False(t, domain.BookingCancelled.HoldsRoom())
	assert.False(t, domain.BookingNoShow.HoldsRoom())
	assert.False(t, domain.BookingRefunded.HoldsRoom())
	assert.False(t, domain.BookingStatus("BOGUS").IsValid())
}

func TestBooking_Stamp(t *testing.T) {
	b := &domain.Booking{Status: domain.BookingPending}
	at := time.Date(2030, time.January, 1, 9, 0, 0, 0, time.UTC)

	b.Stamp(domain.BookingConfirmed, at)

	assert.Equal(t, domain.BookingConfirmed, b.Status)
	if assert.NotNil(t, b.ConfirmedAt) {
		assert.Equal(t, at, *b.ConfirmedAt)
	}
	assert.Equal(t, at, b.UpdatedAt)
	assert.Nil(t, b.CancelledAt)
}
