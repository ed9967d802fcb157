package domain

import (
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type RateKind string

const (
	RatePeak    RateKind = "PEAK_SEASON"
	RateHigh    RateKind = "HIGH_SEASON"
	RateLow     RateKind = "LOW_SEASON"
	RateWeekend RateKind = "WEEKEND"
	RateBase    RateKind = "BASE"
)

// SeasonalPricing is a price schedule owned by a room, or by a business when
// RoomID is nil. A season or the weekend rate only applies when its price is set.
type SeasonalPricing struct {
	ID               uuid.UUID           `json:"id"`
	BusinessID       uuid.UUID           `json:"business_id"`
	RoomID           *uuid.UUID          `json:"room_id,omitempty"`
	BasePrice        decimal.Decimal     `json:"base_price"`
	WeekendPrice     decimal.NullDecimal `json:"weekend_price"`
	WeekendDays      []time.Weekday      `json:"weekend_days"`
	PeakSeasonPrice  decimal.NullDecimal `json:"peak_season_price"`
	PeakSeasonMonths []time.Month        `json:"peak_season_months"`
	HighSeasonPrice  decimal.NullDecimal `json:"high_season_price"`
	HighSeasonMonths []time.Month        `json:"high_season_months"`
	LowSeasonPrice   decimal.NullDecimal `json:"low_season_price"`
	LowSeasonMonths  []time.Month        `json:"low_season_months"`
	IsActive         bool                `json:"is_active"`
	UpdatedAt        time.Time           `json:"updated_at"`
}

// FlatPricing is the schedule used when a room has nothing configured.
func FlatPricing(room *Room) *SeasonalPricing {
	return &SeasonalPricing{
		BusinessID: room.BusinessID,
		RoomID:     &room.ID,
		BasePrice:  room.BasePrice,
		IsActive:   true,
	}
}

func (p *SeasonalPricing) Validate() error {
	if p.BasePrice.IsNegative() {
		return NewValidationError("base_price", "must not be negative")
	}

	for field, price := range map[string]decimal.NullDecimal{
		"weekend_price":     p.WeekendPrice,
		"peak_season_price": p.PeakSeasonPrice,
		"high_season_price": p.HighSeasonPrice,
		"low_season_price":  p.LowSeasonPrice,
	} {
		if price.Valid && price.Decimal.IsNegative() {
			return NewValidationError(field, "must not be negative")
		}
	}

	for _, m := range slices.Concat(p.PeakSeasonMonths, p.HighSeasonMonths, p.LowSeasonMonths) {
		if m < time.January || m > time.December {
			return NewValidationError("season_months", "months must be between 1 and 12")
		}
	}

	for _, d := range p.WeekendDays {
		if d < time.Sunday || d > time.Saturday {
			return NewValidationError("weekend_days", "days must be between 0 (Sunday) and 6 (Saturday)")
		}
	}

	return nil
}

// RateFor resolves the unit price of a single day. Seasons win over the
// weekend rate, and peak beats high beats low.
func (p *SeasonalPricing) RateFor(day Date) (decimal.Decimal, RateKind) {
	month := day.Month()

	switch {
	case p.PeakSeasonPrice.Valid && slices.Contains(p.PeakSeasonMonths, month):
		return p.PeakSeasonPrice.Decimal, RatePeak
	case p.HighSeasonPrice.Valid && slices.Contains(p.HighSeasonMonths, month):
		return p.HighSeasonPrice.Decimal, RateHigh
	case p.LowSeasonPrice.Valid && slices.Contains(p.LowSeasonMonths, month):
		return p.LowSeasonPrice.Decimal, RateLow
	case p.WeekendPrice.Valid && slices.Contains(p.WeekendDays, day.Weekday()):
		return p.WeekendPrice.Decimal, RateWeekend
	}

	return p.BasePrice, RateBase
}

type DayPrice struct {
	Date  Date            `json:"date"`
	Price Money    `json:"price"`
	Rate  RateKind `json:"rate"`
}

type Quote struct {
	RoomID     uuid.UUID  `json:"room_id"`
	Start      Date       `json:"start_date"`
	End        Date       `json:"end_date"`
	Nights     int        `json:"nights"`
	TotalPrice Money      `json:"total_price"`
	Breakdown  []DayPrice `json:"breakdown"`
}

// Quote prices every day of the stay and sums them with two-digit rounding per day.
func (p *SeasonalPricing) Quote(roomID uuid.UUID, stay Stay) *Quote {
	q := &Quote{
		RoomID: roomID,
		Start:  stay.Start,
		End:    stay.End,
	}

	for _, day := range stay.Days() {
		rate, kind := p.RateFor(day)
		price := NewMoney(rate)

		q.Breakdown = append(q.Breakdown, DayPrice{Date: day, Price: price, Rate: kind})
		q.TotalPrice = q.TotalPrice.Add(price)
	}

	q.Nights = len(q.Breakdown)
	return q
}
