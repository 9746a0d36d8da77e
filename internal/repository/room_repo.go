package repository

import (
	"context"

	"chat_app/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type RoomRepository struct {
	db *pgxpool.Pool
}

func NewRoomRepository(db *pgxpool.Pool) *RoomRepository {
	return &RoomRepository{db: db}
}

const roomColumns = `id, name, COALESCE(description, ''), room_type, max_participants, gold_cost, owner_id, is_active, created_at`

func (r *RoomRepository) GetByID(ctx context.Context, id int64) (*domain.Room, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+roomColumns+` FROM rooms WHERE id = $1`, id)
	return scanRoom(row)
}

// GetByIDForUpdate locks the room row for the duration of the transaction.
// The lock serializes the capacity count-then-insert against concurrent joins.
func (r *RoomRepository) GetByIDForUpdate(ctx context.Context, tx pgx.Tx, id int64) (*domain.Room, error) {
	row := tx.QueryRow(ctx,
		`SELECT `+roomColumns+` FROM rooms WHERE id = $1 FOR UPDATE`, id)
	return scanRoom(row)
}

// CreateWithTx inserts a room within an existing transaction
func (r *RoomRepository) CreateWithTx(ctx context.Context, tx pgx.Tx, room *domain.Room) error {
	return tx.QueryRow(ctx,
		`INSERT INTO rooms (name, description, room_type, max_participants, gold_cost, owner_id, is_active)
		 VALUES ($1, $2, $3, $4, $5, $6, TRUE)
		 RETURNING id, is_active, created_at`,
		room.Name, room.Description, room.RoomType, room.MaxParticipants, room.GoldCost, room.OwnerID,
	).Scan(&room.ID, &room.IsActive, &room.CreatedAt)
}

// ListActive returns active rooms, newest first
func (r *RoomRepository) ListActive(ctx context.Context, limit int) ([]*domain.Room, error) {
	if limit <= 0 {
		limit = 100
	}

	rows, err := r.db.Query(ctx,
		`SELECT `+roomColumns+`
		 FROM rooms
		 WHERE is_active
		 ORDER BY created_at DESC
		 LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []*domain.Room
	for rows.Next() {
		room, err := scanRoom(rows)
		if err != nil {
			return nil, err
		}
		res = append(res, room)
	}
	return res, rows.Err()
}

// SetActive flips the room's active flag (administrative deactivation)
func (r *RoomRepository) SetActive(ctx context.Context, roomID int64, active bool) (bool, error) {
	tag, err := r.db.Exec(ctx, `UPDATE rooms SET is_active = $2 WHERE id = $1`, roomID, active)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func scanRoom(row pgx.Row) (*domain.Room, error) {
	var room domain.Room
	if err := row.Scan(
		&room.ID,
		&room.Name,
		&room.Description,
		&room.RoomType,
		&room.MaxParticipants,
		&room.GoldCost,
		&room.OwnerID,
		&room.IsActive,
		&room.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &room, nil
}
