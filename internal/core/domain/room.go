package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type RoomStatus string

const (
	RoomAvailable   RoomStatus = "AVAILABLE"
	RoomOccupied    RoomStatus = "OCCUPIED"
	RoomMaintenance RoomStatus = "MAINTENANCE"
	RoomUnavailable RoomStatus = "UNAVAILABLE"
)

type Room struct {
	ID         uuid.UUID       `json:"id"`
	BusinessID uuid.UUID       `json:"business_id"`
	RoomNumber string          `json:"room_number"`
	BasePrice  decimal.Decimal `json:"base_price"`
	Capacity   int             `json:"capacity"`
	Status     RoomStatus      `json:"status"`
}

// OutOfService returns a user-facing reason when the room's operational flag
// forbids new stays, or "" when it does not. Occupied rooms still take
// bookings for other dates.
func (r *Room) OutOfService() string {
	switch r.Status {
	case RoomMaintenance:
		return "room is under maintenance"
	case RoomUnavailable:
		return "room is unavailable"
	}

	return ""
}

// BlockedDates is a staff-managed window during which a room cannot be booked.
// Both StartDate and EndDate are blocked.
type BlockedDates struct {
	ID        uuid.UUID `json:"id"`
	RoomID    uuid.UUID `json:"room_id"`
	StartDate Date      `json:"start_date"`
	EndDate   Date      `json:"end_date"`
	Reason    string    `json:"reason"`
	CreatedAt time.Time `json:"created_at"`
}

func (b *BlockedDates) Validate() error {
	if b.StartDate.IsZero() {
		return NewValidationError("start_date", "is required")
	}

	if b.EndDate.IsZero() {
		return NewValidationError("end_date", "is required")
	}

	if !b.StartDate.Before(b.EndDate) {
		return NewValidationError("end_date", "must be after start_date")
	}

	return nil
}

// Stay converts the inclusive window into the half-open form used for overlap checks.
func (b *BlockedDates) Stay() Stay {
	return Stay{Start: b.StartDate, End: b.EndDate.AddDays(1)}
}
