package domain

// Stay is a half-open run of nights [Start, End). The guest arrives on Start
// and leaves on End, so End itself is free for the next arrival.
type Stay struct {
	Start Date `json:"start_date"`
	End   Date `json:"end_date"`
}

func (s Stay) Validate() error {
	if s.Start.IsZero() {
		return NewValidationError("start_date", "is required")
	}

	if s.End.IsZero() {
		return NewValidationError("end_date", "is required")
	}

	if !s.End.After(s.Start) {
		return NewValidationError("end_date", "must be after start_date")
	}

	return nil
}

// Overlaps is symmetric: a.Overlaps(b) == b.Overlaps(a).
func (s Stay) Overlaps(o Stay) bool {
	return s.Start.Before(o.End) && o.Start.Before(s.End)
}

func (s Stay) Nights() int {
	return s.Start.DaysUntil(s.End)
}

// Days lists every chargeable day, Start included and End excluded.
func (s Stay) Days() []Date {
	n := s.Nights()
	if n <= 0 {
		return nil
	}

	days := make([]Date, 0, n)
	for d := s.Start; d.Before(s.End); d = d.AddDays(1) {
		days = append(days, d)
	}

	return days
}
