package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/srgjo27/stay_booking/internal/core/domain"
)

type BookingRepository struct {
	db *sql.DB
}

func NewBookingRepository(db *sql.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

const bookingColumns = `
	id, booking_reference, tourist_id, room_id, business_id,
	check_in_date, check_out_date, check_in_time, check_out_time,
	guest_count, total_nights, total_amount, status, special_requests, cancellation_reason,
	created_at, updated_at, confirmed_at, checked_in_at, checked_out_at, cancelled_at, no_show_at, refunded_at
`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBooking(row rowScanner) (*domain.Booking, error) {
	var b domain.Booking
	var reason sql.NullString

	err := row.Scan(
		&b.ID,
		&b.Reference,
		&b.TouristID,
		&b.RoomID,
		&b.BusinessID,
		&b.CheckIn,
		&b.CheckOut,
		&b.CheckInTime,
		&b.CheckOutTime,
		&b.GuestCount,
		&b.TotalNights,
		&b.TotalAmount,
		&b.Status,
		&b.SpecialRequests,
		&reason,
		&b.CreatedAt,
		&b.UpdatedAt,
		&b.ConfirmedAt,
		&b.CheckedInAt,
		&b.CheckedOutAt,
		&b.CancelledAt,
		&b.NoShowAt,
		&b.RefundedAt,
	)
	if err != nil {
		return nil, err
	}

	b.CancellationReason = reason.String

	return &b, nil
}

// CreateBooking inserts the booking. Inside a transaction the insert runs under
// a savepoint so a reference collision leaves the transaction usable for a retry.
func (r *BookingRepository) CreateBooking(ctx context.Context, booking *domain.Booking) error {
	q := conn(ctx, r.db)
	savepoint := inTx(ctx)

	if savepoint {
		if _, err := q.ExecContext(ctx, `SAVEPOINT booking_insert`); err != nil {
			return fmt.Errorf("failed to create savepoint: %w", err)
		}
	}

	query := `
	INSERT INTO bookings (` + bookingColumns + `)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23)
	`

	_, err := q.ExecContext(ctx, query,
		booking.ID,
		booking.Reference,
		booking.TouristID,
		booking.RoomID,
		booking.BusinessID,
		booking.CheckIn,
		booking.CheckOut,
		booking.CheckInTime,
		booking.CheckOutTime,
		booking.GuestCount,
		booking.TotalNights,
		booking.TotalAmount,
		booking.Status,
		booking.SpecialRequests,
		nullString(booking.CancellationReason),
		booking.CreatedAt,
		booking.UpdatedAt,
		booking.ConfirmedAt,
		booking.CheckedInAt,
		booking.CheckedOutAt,
		booking.CancelledAt,
		booking.NoShowAt,
		booking.RefundedAt,
	)
	if err != nil {
		if savepoint {
			if _, rbErr := q.ExecContext(ctx, `ROLLBACK TO SAVEPOINT booking_insert`); rbErr != nil {
				return fmt.Errorf("failed to roll back savepoint: %w", rbErr)
			}
		}

		return translateError(fmt.Errorf("failed to insert booking: %w", err))
	}

	if savepoint {
		if _, err := q.ExecContext(ctx, `RELEASE SAVEPOINT booking_insert`); err != nil {
			return fmt.Errorf("failed to release savepoint: %w", err)
		}
	}

	return nil
}

func (r *BookingRepository) GetByID(ctx context.Context, bookingID uuid.UUID) (*domain.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1 AND deleted_at IS NULL`

	booking, err := scanBooking(conn(ctx, r.db).QueryRowContext(ctx, query, bookingID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.NewNotFoundError("booking", bookingID.String())
		}

		return nil, fmt.Errorf("failed to get booking: %w", err)
	}

	return booking, nil
}

func (r *BookingRepository) ListByRoom(ctx context.Context, roomID uuid.UUID) ([]domain.Booking, error) {
	query := `
	SELECT ` + bookingColumns + `
	FROM bookings
	WHERE room_id = $1 AND deleted_at IS NULL
	ORDER BY check_in_date
	`

	return r.list(ctx, query, roomID)
}

// ListActiveByRoom returns the bookings that still hold their dates.
func (r *BookingRepository) ListActiveByRoom(ctx context.Context, roomID uuid.UUID) ([]domain.Booking, error) {
	inactive := make([]string, len(domain.InactiveStatuses))
	for i, s := range domain.InactiveStatuses {
		inactive[i] = string(s)
	}

	query := `
	SELECT ` + bookingColumns + `
	FROM bookings
	WHERE room_id = $1 AND status <> ALL($2) AND deleted_at IS NULL
	ORDER BY check_in_date
	`

	return r.list(ctx, query, roomID, pq.Array(inactive))
}

func (r *BookingRepository) list(ctx context.Context, query string, args ...any) ([]domain.Booking, error) {
	rows, err := conn(ctx, r.db).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}

	defer rows.Close()

	var bookings []domain.Booking
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan booking: %w", err)
		}

		bookings = append(bookings, *booking)
	}

	return bookings, rows.Err()
}

func (r *BookingRepository) UpdateStatus(ctx context.Context, booking *domain.Booking, from domain.BookingStatus) error {
	query := `
	UPDATE bookings
	SET status = $1,
		cancellation_reason = $2,
		updated_at = $3,
		confirmed_at = $4,
		checked_in_at = $5,
		checked_out_at = $6,
		cancelled_at = $7,
		no_show_at = $8,
		refunded_at = $9
	WHERE id = $10 AND status = $11 AND deleted_at IS NULL
	`

	result, err := conn(ctx, r.db).ExecContext(ctx, query,
		booking.Status,
		nullString(booking.CancellationReason),
		booking.UpdatedAt,
		booking.ConfirmedAt,
		booking.CheckedInAt,
		booking.CheckedOutAt,
		booking.CancelledAt,
		booking.NoShowAt,
		booking.RefundedAt,
		booking.ID,
		from,
	)
	if err != nil {
		return translateError(fmt.Errorf("failed to update booking status: %w", err))
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return domain.ErrStaleBooking
	}

	return nil
}

// GetOverdueConfirmed returns confirmed bookings whose check-in date is before
// checkInBefore, oldest first.
func (r *BookingRepository) GetOverdueConfirmed(ctx context.Context, checkInBefore domain.Date, limit int) ([]uuid.UUID, error) {
	query := `
	SELECT id FROM bookings
	WHERE status = $1 AND check_in_date < $2 AND deleted_at IS NULL
	ORDER BY check_in_date
	LIMIT $3
	`

	rows, err := conn(ctx, r.db).QueryContext(ctx, query, domain.BookingConfirmed, checkInBefore, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query overdue bookings: %w", err)
	}

	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}

		ids = append(ids, id)
	}

	return ids, rows.Err()
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
