package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/srgjo27/stay_booking/internal/core/domain"
	"github.com/srgjo27/stay_booking/internal/core/ports"
)

type PricingRepository struct {
	db *sql.DB
}

func NewPricingRepository(db *sql.DB) *PricingRepository {
	return &PricingRepository{db: db}
}

// FindActive prefers the room's own schedule over the business-wide one.
func (r *PricingRepository) FindActive(ctx context.Context, businessID uuid.UUID, roomID uuid.UUID) (ports.PricingMatch, error) {
	query := `
	SELECT id, business_id, room_id, base_price,
		weekend_price, weekend_days,
		peak_season_price, peak_season_months,
		high_season_price, high_season_months,
		low_season_price, low_season_months,
		is_active, updated_at
	FROM seasonal_pricing
	WHERE is_active AND (room_id = $2 OR (room_id IS NULL AND business_id = $1))
	ORDER BY room_id NULLS LAST, updated_at DESC
	LIMIT 1
	`

	var p domain.SeasonalPricing
	var room uuid.NullUUID
	var weekendDays, peakMonths, highMonths, lowMonths []int64

	err := conn(ctx, r.db).QueryRowContext(ctx, query, businessID, roomID).Scan(
		&p.ID,
		&p.BusinessID,
		&room,
		&p.BasePrice,
		&p.WeekendPrice,
		pq.Array(&weekendDays),
		&p.PeakSeasonPrice,
		pq.Array(&peakMonths),
		&p.HighSeasonPrice,
		pq.Array(&highMonths),
		&p.LowSeasonPrice,
		pq.Array(&lowMonths),
		&p.IsActive,
		&p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ports.PricingMatch{Scope: ports.PricingNone}, nil
		}

		return ports.PricingMatch{}, fmt.Errorf("failed to query pricing: %w", err)
	}

	p.WeekendDays = toWeekdays(weekendDays)
	p.PeakSeasonMonths = toMonths(peakMonths)
	p.HighSeasonMonths = toMonths(highMonths)
	p.LowSeasonMonths = toMonths(lowMonths)

	if room.Valid {
		p.RoomID = &room.UUID
		return ports.PricingMatch{Scope: ports.PricingRoom, Pricing: &p}, nil
	}

	return ports.PricingMatch{Scope: ports.PricingBusiness, Pricing: &p}, nil
}

func (r *PricingRepository) ReplaceForRoom(ctx context.Context, pricing *domain.SeasonalPricing) error {
	if pricing.RoomID == nil {
		return errors.New("room pricing requires a room id")
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`UPDATE seasonal_pricing SET is_active = FALSE, updated_at = $2 WHERE room_id = $1 AND is_active`,
		*pricing.RoomID, pricing.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to deactivate room pricing: %w", err)
	}

	query := `
	INSERT INTO seasonal_pricing (
		id, business_id, room_id, base_price,
		weekend_price, weekend_days,
		peak_season_price, peak_season_months,
		high_season_price, high_season_months,
		low_season_price, low_season_months,
		is_active, updated_at
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`

	_, err = tx.ExecContext(ctx, query,
		pricing.ID,
		pricing.BusinessID,
		*pricing.RoomID,
		pricing.BasePrice,
		pricing.WeekendPrice,
		pq.Array(fromWeekdays(pricing.WeekendDays)),
		pricing.PeakSeasonPrice,
		pq.Array(fromMonths(pricing.PeakSeasonMonths)),
		pricing.HighSeasonPrice,
		pq.Array(fromMonths(pricing.HighSeasonMonths)),
		pricing.LowSeasonPrice,
		pq.Array(fromMonths(pricing.LowSeasonMonths)),
		pricing.IsActive,
		pricing.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert room pricing: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

func toMonths(values []int64) []time.Month {
	months := make([]time.Month, 0, len(values))
	for _, v := range values {
		months = append(months, time.Month(v))
	}

	return months
}

func fromMonths(months []time.Month) []int64 {
	values := make([]int64, 0, len(months))
	for _, m := range months {
		values = append(values, int64(m))
	}

	return values
}

func toWeekdays(values []int64) []time.Weekday {
	days := make([]time.Weekday, 0, len(values))
	for _, v := range values {
		days = append(days, time.Weekday(v))
	}

	return days
}

func fromWeekdays(days []time.Weekday) []int64 {
	values := make([]int64, 0, len(days))
	for _, d := range days {
		values = append(values, int64(d))
	}

	return values
}
