package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/srgjo27/stay_booking/internal/core/domain"
)

type BlockedDatesRepository struct {
	db *sql.DB
}

func NewBlockedDatesRepository(db *sql.DB) *BlockedDatesRepository {
	return &BlockedDatesRepository{db: db}
}

func (r *BlockedDatesRepository) ListByRoom(ctx context.Context, roomID uuid.UUID) ([]domain.BlockedDates, error) {
	query := `
	SELECT id, room_id, start_date, end_date, reason, created_at
	FROM room_blocked_dates
	WHERE room_id = $1
	ORDER BY start_date
	`

	rows, err := conn(ctx, r.db).QueryContext(ctx, query, roomID)
	if err != nil {
		return nil, fmt.Errorf("failed to list blocked dates: %w", err)
	}

	defer rows.Close()

	var blocks []domain.BlockedDates
	for rows.Next() {
		var block domain.BlockedDates
		if err := rows.Scan(
			&block.ID,
			&block.RoomID,
			&block.StartDate,
			&block.EndDate,
			&block.Reason,
			&block.CreatedAt,
		); err != nil {
			return nil, err
		}

		blocks = append(blocks, block)
	}

	return blocks, rows.Err()
}

func (r *BlockedDatesRepository) Create(ctx context.Context, block *domain.BlockedDates) error {
	query := `
	INSERT INTO room_blocked_dates (id, room_id, start_date, end_date, reason, created_at)
	VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := conn(ctx, r.db).ExecContext(ctx, query,
		block.ID, block.RoomID, block.StartDate, block.EndDate, block.Reason, block.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert blocked dates: %w", err)
	}

	return nil
}

func (r *BlockedDatesRepository) Delete(ctx context.Context, roomID uuid.UUID, blockID uuid.UUID) error {
	result, err := conn(ctx, r.db).ExecContext(ctx,
		`DELETE FROM room_blocked_dates WHERE id = $1 AND room_id = $2`, blockID, roomID)
	if err != nil {
		return fmt.Errorf("failed to delete blocked dates: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return domain.NewNotFoundError("blocked dates", blockID.String())
	}

	return nil
}
