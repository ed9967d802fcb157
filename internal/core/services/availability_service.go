package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/srgjo27/stay_booking/internal/core/domain"
	"github.com/srgjo27/stay_booking/internal/core/ports"
)

const (
	AvailabilityAvailable = "AVAILABLE"
	AvailabilityBlocked   = "BLOCKED"
)

// Conflict sources reported alongside a BLOCKED result.
const (
	SourceRoomStatus   = "room_status"
	SourceBlockedDates = "blocked_dates"
	SourceBooking      = "booking"
)

type AvailabilityResult struct {
	RoomID               uuid.UUID    `json:"room_id"`
	Start                domain.Date  `json:"start_date"`
	End                  domain.Date  `json:"end_date"`
	Available            bool         `json:"available"`
	Status               string       `json:"status"`
	BlockingReason       string       `json:"blocking_reason,omitempty"`
	Source               string       `json:"source,omitempty"`
	ConflictingReference string       `json:"conflicting_reference,omitempty"`
	ConflictingRange     *domain.Stay `json:"conflicting_range,omitempty"`
}

// ConflictError converts an unavailable result into the error returned to callers
// trying to book the same dates.
func (r *AvailabilityResult) ConflictError() error {
	err := &domain.ConflictError{
		Message:   "room is not available: " + r.BlockingReason,
		Reference: r.ConflictingReference,
	}

	if r.ConflictingRange != nil {
		err.Start = r.ConflictingRange.Start
		err.End = r.ConflictingRange.End
	}

	return err
}

type AvailabilityService struct {
	roomRepo    ports.RoomRepository
	bookingRepo ports.BookingRepository
	blockedRepo ports.BlockedDatesRepository
	cache       *redis.Client
	cacheTTL    time.Duration
	log         logrus.FieldLogger
}

// NewAvailabilityService builds the checker. cache may be nil, which disables
// result caching.
func NewAvailabilityService(
	roomRepo ports.RoomRepository,
	bookingRepo ports.BookingRepository,
	blockedRepo ports.BlockedDatesRepository,
	cache *redis.Client,
	cacheTTL time.Duration,
	log logrus.FieldLogger,
) *AvailabilityService {
	return &AvailabilityService{
		roomRepo:    roomRepo,
		bookingRepo: bookingRepo,
		blockedRepo: blockedRepo,
		cache:       cache,
		cacheTTL:    cacheTTL,
		log:         log,
	}
}

// Cached answers live in one hash per room and generation. InvalidateRoom bumps
// the generation, so a read that started before the bump writes into a hash no
// later read looks at.
func availabilityGenerationKey(roomID uuid.UUID) string {
	return fmt.Sprintf("availability:gen:%s", roomID)
}

func availabilityCacheKey(roomID uuid.UUID, generation int64) string {
	return fmt.Sprintf("availability:%s:%d", roomID, generation)
}

func availabilityCacheField(stay domain.Stay) string {
	return stay.Start.String() + ":" + stay.End.String()
}

// CheckAvailability answers a read-only availability query. Answers may be
// served from cache; booking creation never uses this path.
func (s *AvailabilityService) CheckAvailability(ctx context.Context, roomID uuid.UUID, stay domain.Stay) (*AvailabilityResult, error) {
	if err := stay.Validate(); err != nil {
		return nil, err
	}

	generation, cacheable := s.generation(ctx, roomID)
	if cacheable {
		if cached := s.cached(ctx, roomID, generation, stay); cached != nil {
			return cached, nil
		}
	}

	room, err := s.roomRepo.GetByID(ctx, roomID)
	if err != nil {
		return nil, err
	}

	result, err := s.check(ctx, room, stay)
	if err != nil {
		return nil, err
	}

	if cacheable {
		s.store(ctx, roomID, generation, stay, result)
	}

	return result, nil
}

// check consults the room's operational status, its blocked windows and its
// active bookings, in that order.
func (s *AvailabilityService) check(ctx context.Context, room *domain.Room, stay domain.Stay) (*AvailabilityResult, error) {
	result := &AvailabilityResult{
		RoomID:    room.ID,
		Start:     stay.Start,
		End:       stay.End,
		Available: true,
		Status:    AvailabilityAvailable,
	}

	if reason := room.OutOfService(); reason != "" {
		result.block(SourceRoomStatus, reason, "", nil)
		return result, nil
	}

	blocks, err := s.blockedRepo.ListByRoom(ctx, room.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load blocked dates: %w", err)
	}

	for _, b := range blocks {
		if b.Stay().Overlaps(stay) {
			reason := b.Reason
			if reason == "" {
				reason = "dates are blocked"
			}

			result.block(SourceBlockedDates, reason, "", &domain.Stay{Start: b.StartDate, End: b.EndDate})
			return result, nil
		}
	}

	bookings, err := s.bookingRepo.ListActiveByRoom(ctx, room.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load bookings: %w", err)
	}

	for _, b := range bookings {
		if !b.Status.HoldsRoom() {
			continue
		}

		if b.Stay().Overlaps(stay) {
			existing := b.Stay()
			result.block(SourceBooking, "already booked under "+b.Reference, b.Reference, &existing)
			return result, nil
		}
	}

	return result, nil
}

func (r *AvailabilityResult) block(source, reason, reference string, conflicting *domain.Stay) {
	r.Available = false
	r.Status = AvailabilityBlocked
	r.Source = source
	r.BlockingReason = reason
	r.ConflictingReference = reference
	r.ConflictingRange = conflicting
}

// generation reports the room's current cache generation, or false when the
// cache is disabled or unreachable.
func (s *AvailabilityService) generation(ctx context.Context, roomID uuid.UUID) (int64, bool) {
	if s.cache == nil {
		return 0, false
	}

	generation, err := s.cache.Get(ctx, availabilityGenerationKey(roomID)).Int64()
	if err != nil && !errors.Is(err, redis.Nil) {
		s.log.WithError(err).WithField("room_id", roomID).Warn("availability cache read failed")
		return 0, false
	}

	return generation, true
}

func (s *AvailabilityService) cached(ctx context.Context, roomID uuid.UUID, generation int64, stay domain.Stay) *AvailabilityResult {
	raw, err := s.cache.HGet(ctx, availabilityCacheKey(roomID, generation), availabilityCacheField(stay)).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			s.log.WithError(err).WithField("room_id", roomID).Warn("availability cache read failed")
		}
		return nil
	}

	var result AvailabilityResult
	if err := json.Unmarshal([]byte(raw), &result); err != nil {
		s.log.WithError(err).WithField("room_id", roomID).Warn("discarding malformed availability cache entry")
		return nil
	}

	return &result
}

func (s *AvailabilityService) store(ctx context.Context, roomID uuid.UUID, generation int64, stay domain.Stay, result *AvailabilityResult) {
	payload, err := json.Marshal(result)
	if err != nil {
		return
	}

	key := availabilityCacheKey(roomID, generation)
	if err := s.cache.HSet(ctx, key, availabilityCacheField(stay), string(payload)).Err(); err != nil {
		s.log.WithError(err).WithField("room_id", roomID).Warn("availability cache write failed")
		return
	}

	if err := s.cache.Expire(ctx, key, s.cacheTTL).Err(); err != nil {
		s.log.WithError(err).WithField("room_id", roomID).Warn("availability cache expire failed")
	}
}

// InvalidateRoom retires every cached answer for the room, including answers
// still being computed.
func (s *AvailabilityService) InvalidateRoom(ctx context.Context, roomID uuid.UUID) {
	if s.cache == nil {
		return
	}

	generation, err := s.cache.Incr(ctx, availabilityGenerationKey(roomID)).Result()
	if err != nil {
		s.log.WithError(err).WithField("room_id", roomID).Warn("availability cache invalidation failed")
		return
	}

	// The retired hash also expires through its TTL.
	if err := s.cache.Del(ctx, availabilityCacheKey(roomID, generation-1)).Err(); err != nil {
		s.log.WithError(err).WithField("room_id", roomID).Debug("failed to drop retired availability cache")
	}
}

type BlockDatesRequest struct {
	StartDate domain.Date `json:"start_date"`
	EndDate   domain.Date `json:"end_date"`
	Reason    string      `json:"reason" binding:"max=255"`
}

func (s *AvailabilityService) BlockDates(ctx context.Context, roomID uuid.UUID, req BlockDatesRequest) (*domain.BlockedDates, error) {
	block := &domain.BlockedDates{
		ID:        uuid.New(),
		RoomID:    roomID,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
		Reason:    req.Reason,
		CreatedAt: time.Now().UTC(),
	}

	if err := block.Validate(); err != nil {
		return nil, err
	}

	if _, err := s.roomRepo.GetByID(ctx, roomID); err != nil {
		return nil, err
	}

	if err := s.blockedRepo.Create(ctx, block); err != nil {
		return nil, fmt.Errorf("failed to block dates: %w", err)
	}

	s.InvalidateRoom(ctx, roomID)

	s.log.WithFields(logrus.Fields{
		"room_id":    roomID,
		"start_date": block.StartDate.String(),
		"end_date":   block.EndDate.String(),
	}).Info("room dates blocked")

	return block, nil
}

func (s *AvailabilityService) ListBlockedDates(ctx context.Context, roomID uuid.UUID) ([]domain.BlockedDates, error) {
	if _, err := s.roomRepo.GetByID(ctx, roomID); err != nil {
		return nil, err
	}

	return s.blockedRepo.ListByRoom(ctx, roomID)
}

func (s *AvailabilityService) UnblockDates(ctx context.Context, roomID uuid.UUID, blockID uuid.UUID) error {
	if err := s.blockedRepo.Delete(ctx, roomID, blockID); err != nil {
		return err
	}

	s.InvalidateRoom(ctx, roomID)

	s.log.WithFields(logrus.Fields{"room_id": roomID, "block_id": blockID}).Info("room dates unblocked")
	return nil
}
