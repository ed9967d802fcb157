package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/srgjo27/stay_booking/internal/core/domain"
	"github.com/srgjo27/stay_booking/internal/core/ports"
)

type CreateBookingRequest struct {
	RoomID          string            `json:"room_id" binding:"required,uuid"`
	TouristID       string            `json:"tourist_id" binding:"required,uuid"`
	BusinessID      string            `json:"business_id" binding:"omitempty,uuid"`
	CheckInDate     domain.Date       `json:"check_in_date"`
	CheckOutDate    domain.Date       `json:"check_out_date"`
	CheckInTime     *domain.ClockTime `json:"check_in_time,omitempty"`
	CheckOutTime    *domain.ClockTime `json:"check_out_time,omitempty"`
	GuestCount      int               `json:"guest_count"`
	SpecialRequests string            `json:"special_requests" binding:"max=1000"`
}

type TransitionRequest struct {
	Status string `json:"status" binding:"required"`
	Reason string `json:"reason" binding:"max=500"`
}

type BookingService struct {
	tx           ports.Transactor
	roomRepo     ports.RoomRepository
	bookingRepo  ports.BookingRepository
	availability *AvailabilityService
	pricing      *PricingService
	log          logrus.FieldLogger
	now          func() time.Time
	newReference func(time.Time) string
}

type BookingOption func(*BookingService)

func WithClock(now func() time.Time) BookingOption {
	return func(s *BookingService) { s.now = now }
}

func WithReferenceGenerator(gen func(time.Time) string) BookingOption {
	return func(s *BookingService) { s.newReference = gen }
}

func NewBookingService(
	tx ports.Transactor,
	roomRepo ports.RoomRepository,
	bookingRepo ports.BookingRepository,
	availability *AvailabilityService,
	pricing *PricingService,
	log logrus.FieldLogger,
	opts ...BookingOption,
) *BookingService {
	s := &BookingService{
		tx:           tx,
		roomRepo:     roomRepo,
		bookingRepo:  bookingRepo,
		availability: availability,
		pricing:      pricing,
		log:          log,
		now:          time.Now,
		newReference: NewBookingReference,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

func (s *BookingService) CreateBooking(ctx context.Context, req CreateBookingRequest) (*domain.Booking, error) {
	roomID, err := uuid.Parse(req.RoomID)
	if err != nil {
		return nil, domain.NewValidationError("room_id", "must be a valid UUID")
	}

	touristID, err := uuid.Parse(req.TouristID)
	if err != nil {
		return nil, domain.NewValidationError("tourist_id", "must be a valid UUID")
	}

	var businessID uuid.UUID
	if req.BusinessID != "" {
		businessID, err = uuid.Parse(req.BusinessID)
		if err != nil {
			return nil, domain.NewValidationError("business_id", "must be a valid UUID")
		}
	}

	stay := domain.Stay{Start: req.CheckInDate, End: req.CheckOutDate}
	if err := s.validateStay(stay, req.GuestCount); err != nil {
		return nil, err
	}

	var booking *domain.Booking

	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		room, err := s.roomRepo.LockByID(ctx, roomID)
		if err != nil {
			return err
		}

		if businessID != uuid.Nil && businessID != room.BusinessID {
			return domain.NewValidationError("business_id", "room does not belong to this business")
		}

		if room.Capacity > 0 && req.GuestCount > room.Capacity {
			return domain.NewValidationError("guest_count", fmt.Sprintf("room holds at most %d guests", room.Capacity))
		}

		availability, err := s.availability.check(ctx, room, stay)
		if err != nil {
			return err
		}

		if !availability.Available {
			return availability.ConflictError()
		}

		quote, err := s.pricing.quote(ctx, room, stay)
		if err != nil {
			return err
		}

		now := s.now().UTC()
		booking = &domain.Booking{
			ID:              uuid.New(),
			TouristID:       touristID,
			RoomID:          room.ID,
			BusinessID:      room.BusinessID,
			CheckIn:         stay.Start,
			CheckOut:        stay.End,
			CheckInTime:     req.CheckInTime,
			CheckOutTime:    req.CheckOutTime,
			GuestCount:      req.GuestCount,
			TotalNights:     domain.TotalNights(stay.Start, req.CheckInTime, stay.End, req.CheckOutTime),
			TotalAmount:     quote.TotalPrice,
			Status:          domain.BookingPending,
			SpecialRequests: strings.TrimSpace(req.SpecialRequests),
			CreatedAt:       now,
			UpdatedAt:       now,
		}

		return s.insertWithFreshReference(ctx, booking)
	})
	if err != nil {
		return nil, err
	}

	s.availability.InvalidateRoom(ctx, roomID)

	s.log.WithFields(logrus.Fields{
		"booking_id":        booking.ID,
		"booking_reference": booking.Reference,
		"room_id":           booking.RoomID,
		"total_amount":      booking.TotalAmount.StringFixed(2),
	}).Info("booking created")

	return booking, nil
}

func (s *BookingService) validateStay(stay domain.Stay, guestCount int) error {
	switch {
	case stay.Start.IsZero():
		return domain.NewValidationError("check_in_date", "is required")
	case stay.End.IsZero():
		return domain.NewValidationError("check_out_date", "is required")
	case !stay.End.After(stay.Start):
		return domain.NewValidationError("check_out_date", "must be after check_in_date")
	}

	if stay.Start.Before(domain.DateOf(s.now().UTC())) {
		return domain.NewValidationError("check_in_date", "must not be in the past")
	}

	if guestCount < 1 {
		return domain.NewValidationError("guest_count", "must be at least 1")
	}

	return nil
}

func (s *BookingService) insertWithFreshReference(ctx context.Context, booking *domain.Booking) error {
	for attempt := 1; attempt <= maxReferenceAttempts; attempt++ {
		booking.Reference = s.newReference(s.now())

		err := s.bookingRepo.CreateBooking(ctx, booking)
		if err == nil {
			return nil
		}

		if !errors.Is(err, domain.ErrDuplicateReference) {
			return err
		}

		s.log.WithField("booking_reference", booking.Reference).Warn("booking reference collision, regenerating")
	}

	return fmt.Errorf("failed to allocate a unique booking reference after %d attempts", maxReferenceAttempts)
}

func (s *BookingService) GetBooking(ctx context.Context, bookingID uuid.UUID) (*domain.Booking, error) {
	return s.bookingRepo.GetByID(ctx, bookingID)
}

func (s *BookingService) ListRoomBookings(ctx context.Context, roomID uuid.UUID) ([]domain.Booking, error) {
	if _, err := s.roomRepo.GetByID(ctx, roomID); err != nil {
		return nil, err
	}

	return s.bookingRepo.ListByRoom(ctx, roomID)
}

func (s *BookingService) Transition(ctx context.Context, bookingID uuid.UUID, req TransitionRequest) (*domain.Booking, error) {
	next := domain.BookingStatus(strings.ToUpper(strings.TrimSpace(req.Status)))
	if !next.IsValid() {
		return nil, domain.NewValidationError("status", fmt.Sprintf("unknown booking status %q", req.Status))
	}

	reason := strings.TrimSpace(req.Reason)

	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	current := booking.Status
	if !current.CanTransitionTo(next) {
		return nil, &domain.InvalidStateTransitionError{From: current, To: next}
	}

	if next == domain.BookingCancelled {
		if reason == "" {
			return nil, domain.NewValidationError("reason", "is required to cancel a booking")
		}
		booking.CancellationReason = reason
	}

	booking.Stamp(next, s.now().UTC())

	if err := s.bookingRepo.UpdateStatus(ctx, booking, current); err != nil {
		if errors.Is(err, domain.ErrStaleBooking) {
			return nil, &domain.ConflictError{
				Message:   "booking was modified by another request, reload and retry",
				Reference: booking.Reference,
			}
		}
		return nil, err
	}

	if !next.HoldsRoom() {
		s.availability.InvalidateRoom(ctx, booking.RoomID)
	}

	s.log.WithFields(logrus.Fields{
		"booking_id":        booking.ID,
		"booking_reference": booking.Reference,
		"from":              current,
		"to":                next,
	}).Info("booking status changed")

	return booking, nil
}

// RunNoShowSweeper marks confirmed bookings as no-shows once their check-in day
// is more than grace in the past. It blocks until ctx is done.
func (s *BookingService) RunNoShowSweeper(ctx context.Context, interval time.Duration, grace time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	s.log.WithField("interval", interval.String()).Info("no-show sweeper started")

	for {
		select {
		case <-ctx.Done():
			s.log.Info("no-show sweeper stopped")
			return
		case <-ticker.C:
			s.processOverdueBookings(ctx, grace)
		}
	}
}

const overdueBatchSize = 100

func (s *BookingService) processOverdueBookings(ctx context.Context, grace time.Duration) {
	cutoff := domain.DateOf(s.now().UTC().Add(-grace))

	ids, err := s.bookingRepo.GetOverdueConfirmed(ctx, cutoff, overdueBatchSize)
	if err != nil {
		s.log.WithError(err).Error("failed to fetch overdue bookings")
		return
	}

	if len(ids) == 0 {
		return
	}

	s.log.WithField("count", len(ids)).Info("marking overdue bookings as no-show")

	for _, id := range ids {
		if _, err := s.Transition(ctx, id, TransitionRequest{Status: string(domain.BookingNoShow)}); err != nil {
			s.log.WithError(err).WithField("booking_id", id).Warn("failed to mark booking as no-show")
		}
	}
}
