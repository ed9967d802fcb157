package domain

import (
	"math"
	"time"

	"github.com/google/uuid"
)

type BookingStatus string

const (
	BookingPending    BookingStatus = "PENDING"
	BookingConfirmed  BookingStatus = "CONFIRMED"
	BookingCheckedIn  BookingStatus = "CHECKED_IN"
	BookingCheckedOut BookingStatus = "CHECKED_OUT"
	BookingCancelled  BookingStatus = "CANCELLED"
	BookingNoShow     BookingStatus = "NO_SHOW"
	BookingRefunded   BookingStatus = "REFUNDED"
)

var transitions = map[BookingStatus][]BookingStatus{
	BookingPending:    {BookingConfirmed, BookingCancelled},
	BookingConfirmed:  {BookingCheckedIn, BookingCancelled, BookingNoShow},
	BookingCheckedIn:  {BookingCheckedOut},
	BookingCheckedOut: {BookingRefunded},
}

func (s BookingStatus) IsValid() bool {
	switch s {
	case BookingPending, BookingConfirmed, BookingCheckedIn, BookingCheckedOut,
		BookingCancelled, BookingNoShow, BookingRefunded:
		return true
	}

	return false
}

// CanTransitionTo reports whether next is reachable from s in one step.
func (s BookingStatus) CanTransitionTo(next BookingStatus) bool {
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}

	return false
}

// HoldsRoom reports whether a booking in this status occupies its dates.
func (s BookingStatus) HoldsRoom() bool {
	switch s {
	case BookingCancelled, BookingRefunded, BookingNoShow:
		return false
	}

	return true
}

// InactiveStatuses are the statuses that release the room's dates.
var InactiveStatuses = []BookingStatus{BookingCancelled, BookingRefunded, BookingNoShow}

type Booking struct {
	ID                 uuid.UUID       `json:"id"`
	Reference          string          `json:"booking_reference"`
	TouristID          uuid.UUID       `json:"tourist_id"`
	RoomID             uuid.UUID       `json:"room_id"`
	BusinessID         uuid.UUID       `json:"business_id"`
	CheckIn            Date            `json:"check_in_date"`
	CheckOut           Date            `json:"check_out_date"`
	CheckInTime        *ClockTime      `json:"check_in_time,omitempty"`
	CheckOutTime       *ClockTime      `json:"check_out_time,omitempty"`
	GuestCount         int             `json:"guest_count"`
	TotalNights        int             `json:"total_nights"`
	TotalAmount        Money           `json:"total_amount"`
	Status             BookingStatus   `json:"status"`
	SpecialRequests    string          `json:"special_requests,omitempty"`
	CancellationReason string          `json:"cancellation_reason,omitempty"`
	CreatedAt          time.Time       `json:"created_at"`
	UpdatedAt          time.Time       `json:"updated_at"`
	ConfirmedAt        *time.Time      `json:"confirmed_at,omitempty"`
	CheckedInAt        *time.Time      `json:"checked_in_at,omitempty"`
	CheckedOutAt       *time.Time      `json:"checked_out_at,omitempty"`
	CancelledAt        *time.Time      `json:"cancelled_at,omitempty"`
	NoShowAt           *time.Time      `json:"no_show_at,omitempty"`
	RefundedAt         *time.Time      `json:"refunded_at,omitempty"`
}

func (b *Booking) Stay() Stay {
	return Stay{Start: b.CheckIn, End: b.CheckOut}
}

// Stamp records at as the moment the booking entered status.
func (b *Booking) Stamp(status BookingStatus, at time.Time) {
	switch status {
	case BookingConfirmed:
		b.ConfirmedAt = &at
	case BookingCheckedIn:
		b.CheckedInAt = &at
	case BookingCheckedOut:
		b.CheckedOutAt = &at
	case BookingCancelled:
		b.CancelledAt = &at
	case BookingNoShow:
		b.NoShowAt = &at
	case BookingRefunded:
		b.RefundedAt = &at
	}

	b.Status = status
	b.UpdatedAt = at
}

// TotalNights is the number of started 24h periods between arrival and departure.
// Without explicit times both instants fall on midnight.
func TotalNights(checkIn Date, checkInTime *ClockTime, checkOut Date, checkOutTime *ClockTime) int {
	start := checkIn.Time()
	if checkInTime != nil {
		start = checkIn.At(*checkInTime)
	}

	end := checkOut.Time()
	if checkOutTime != nil {
		end = checkOut.At(*checkOutTime)
	}

	if !end.After(start) {
		return 0
	}

	return int(math.Ceil(float64(end.Sub(start)) / float64(24*time.Hour)))
}
