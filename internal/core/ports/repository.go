package ports

//go:generate mockery --all --output=mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/srgjo27/stay_booking/internal/core/domain"
)

// Transactor runs fn inside one serializable transaction. Repositories called
// with the ctx handed to fn join that transaction.
type Transactor interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

type RoomRepository interface {
	GetByID(ctx context.Context, roomID uuid.UUID) (*domain.Room, error)
	// LockByID also takes a row lock held until the surrounding transaction ends.
	LockByID(ctx context.Context, roomID uuid.UUID) (*domain.Room, error)
}

type BookingRepository interface {
	// CreateBooking returns domain.ErrDuplicateReference when the reference is taken.
	CreateBooking(ctx context.Context, booking *domain.Booking) error
	GetByID(ctx context.Context, bookingID uuid.UUID) (*domain.Booking, error)
	ListByRoom(ctx context.Context, roomID uuid.UUID) ([]domain.Booking, error)
	ListActiveByRoom(ctx context.Context, roomID uuid.UUID) ([]domain.Booking, error)
	// UpdateStatus persists booking's status and timestamps if the stored status
	// still equals from, otherwise it returns domain.ErrStaleBooking.
	UpdateStatus(ctx context.Context, booking *domain.Booking, from domain.BookingStatus) error
	GetOverdueConfirmed(ctx context.Context, checkInBefore domain.Date, limit int) ([]uuid.UUID, error)
}

type BlockedDatesRepository interface {
	ListByRoom(ctx context.Context, roomID uuid.UUID) ([]domain.BlockedDates, error)
	Create(ctx context.Context, block *domain.BlockedDates) error
	Delete(ctx context.Context, roomID uuid.UUID, blockID uuid.UUID) error
}

type PricingScope int

const (
	PricingNone PricingScope = iota
	PricingRoom
	PricingBusiness
)

// PricingMatch tells the caller which schedule, if any, governs a room.
type PricingMatch struct {
	Scope   PricingScope
	Pricing *domain.SeasonalPricing
}

type PricingRepository interface {
	FindActive(ctx context.Context, businessID uuid.UUID, roomID uuid.UUID) (PricingMatch, error)
	// ReplaceForRoom deactivates the room's current schedule and stores pricing as active.
	ReplaceForRoom(ctx context.Context, pricing *domain.SeasonalPricing) error
}
