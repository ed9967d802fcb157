package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/srgjo27/stay_booking/internal/core/domain"
)

type RoomRepository struct {
	db *sql.DB
}

func NewRoomRepository(db *sql.DB) *RoomRepository {
	return &RoomRepository{db: db}
}

const roomQuery = `
	SELECT id, business_id, room_number, base_price, capacity, status
	FROM rooms
	WHERE id = $1 AND deleted_at IS NULL
`

func (r *RoomRepository) GetByID(ctx context.Context, roomID uuid.UUID) (*domain.Room, error) {
	return r.get(ctx, roomQuery, roomID)
}

// LockByID must be called inside a transaction; the lock serializes bookings
// for the same room until commit.
func (r *RoomRepository) LockByID(ctx context.Context, roomID uuid.UUID) (*domain.Room, error) {
	if !inTx(ctx) {
		return nil, errors.New("room lock requires a transaction")
	}

	return r.get(ctx, roomQuery+` FOR UPDATE`, roomID)
}

func (r *RoomRepository) get(ctx context.Context, query string, roomID uuid.UUID) (*domain.Room, error) {
	var room domain.Room

	err := conn(ctx, r.db).QueryRowContext(ctx, query, roomID).Scan(
		&room.ID,
		&room.BusinessID,
		&room.RoomNumber,
		&room.BasePrice,
		&room.Capacity,
		&room.Status,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.NewNotFoundError("room", roomID.String())
		}

		return nil, fmt.Errorf("failed to get room: %w", err)
	}

	return &room, nil
}
