package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/srgjo27/stay_booking/internal/core/domain"
	"github.com/srgjo27/stay_booking/internal/core/ports"
)

type DatePrice struct {
	RoomID uuid.UUID       `json:"room_id"`
	Date   domain.Date     `json:"date"`
	Price  domain.Money    `json:"price"`
	Rate   domain.RateKind `json:"rate"`
}

type PricingService struct {
	roomRepo    ports.RoomRepository
	pricingRepo ports.PricingRepository
	log         logrus.FieldLogger
}

func NewPricingService(roomRepo ports.RoomRepository, pricingRepo ports.PricingRepository, log logrus.FieldLogger) *PricingService {
	return &PricingService{
		roomRepo:    roomRepo,
		pricingRepo: pricingRepo,
		log:         log,
	}
}

func (s *PricingService) QuoteStay(ctx context.Context, roomID uuid.UUID, stay domain.Stay) (*domain.Quote, error) {
	if err := stay.Validate(); err != nil {
		return nil, err
	}

	room, err := s.roomRepo.GetByID(ctx, roomID)
	if err != nil {
		return nil, err
	}

	return s.quote(ctx, room, stay)
}

func (s *PricingService) PriceForDate(ctx context.Context, roomID uuid.UUID, date domain.Date) (*DatePrice, error) {
	if date.IsZero() {
		return nil, domain.NewValidationError("date", "is required")
	}

	room, err := s.roomRepo.GetByID(ctx, roomID)
	if err != nil {
		return nil, err
	}

	schedule, err := s.schedule(ctx, room)
	if err != nil {
		return nil, err
	}

	price, kind := schedule.RateFor(date)

	return &DatePrice{
		RoomID: room.ID,
		Date:   date,
		Price:  domain.NewMoney(price),
		Rate:   kind,
	}, nil
}

func (s *PricingService) quote(ctx context.Context, room *domain.Room, stay domain.Stay) (*domain.Quote, error) {
	schedule, err := s.schedule(ctx, room)
	if err != nil {
		return nil, err
	}

	return schedule.Quote(room.ID, stay), nil
}

// schedule picks the room's own schedule, then its business's, then the
// room's flat base price.
func (s *PricingService) schedule(ctx context.Context, room *domain.Room) (*domain.SeasonalPricing, error) {
	match, err := s.pricingRepo.FindActive(ctx, room.BusinessID, room.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load pricing: %w", err)
	}

	switch match.Scope {
	case ports.PricingRoom, ports.PricingBusiness:
		return match.Pricing, nil
	}

	if !room.BasePrice.IsPositive() {
		return nil, fmt.Errorf("room %s has no pricing configured: %w", room.ID, domain.ErrPriceUnavailable)
	}

	return domain.FlatPricing(room), nil
}

func (s *PricingService) ReplaceRoomPricing(ctx context.Context, roomID uuid.UUID, pricing *domain.SeasonalPricing) (*domain.SeasonalPricing, error) {
	if err := pricing.Validate(); err != nil {
		return nil, err
	}

	room, err := s.roomRepo.GetByID(ctx, roomID)
	if err != nil {
		return nil, err
	}

	pricing.ID = uuid.New()
	pricing.BusinessID = room.BusinessID
	pricing.RoomID = &room.ID
	pricing.IsActive = true
	pricing.UpdatedAt = time.Now().UTC()

	if err := s.pricingRepo.ReplaceForRoom(ctx, pricing); err != nil {
		return nil, fmt.Errorf("failed to save pricing: %w", err)
	}

	s.log.WithField("room_id", roomID).Info("room pricing replaced")

	return pricing, nil
}
