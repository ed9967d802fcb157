package services

import (
	"context"
	"time"
)

func (s *BookingService) ProcessOverdueBookings(ctx context.Context, grace time.Duration) {
	s.processOverdueBookings(ctx, grace)
}
