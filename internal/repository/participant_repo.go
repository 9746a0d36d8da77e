package repository

import (
	"context"

	"chat_app/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ParticipantRepository struct {
	db *pgxpool.Pool
}

func NewParticipantRepository(db *pgxpool.Pool) *ParticipantRepository {
	return &ParticipantRepository{db: db}
}

// ExistsWithTx reports whether the user is already a participant of the room
func (r *ParticipantRepository) ExistsWithTx(ctx context.Context, tx pgx.Tx, roomID, userID int64) (bool, error) {
	var exists bool
	err := tx.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM room_participants WHERE room_id = $1 AND user_id = $2)`,
		roomID, userID,
	).Scan(&exists)
	return exists, err
}

// CountWithTx returns the current roster size for a room. Callers enforcing a
// capacity limit must hold the room row lock in the same transaction.
func (r *ParticipantRepository) CountWithTx(ctx context.Context, tx pgx.Tx, roomID int64) (int, error) {
	var count int
	err := tx.QueryRow(ctx,
		`SELECT COUNT(*) FROM room_participants WHERE room_id = $1`, roomID,
	).Scan(&count)
	return count, err
}

// CreateWithTx inserts a participant within an existing transaction.
// The UNIQUE(room_id, user_id) constraint rejects duplicate membership.
func (r *ParticipantRepository) CreateWithTx(ctx context.Context, tx pgx.Tx, p *domain.RoomParticipant) error {
	return tx.QueryRow(ctx,
		`INSERT INTO room_participants (room_id, user_id, participant_role)
		 VALUES ($1, $2, $3)
		 RETURNING id, joined_at`,
		p.RoomID, p.UserID, p.Role,
	).Scan(&p.ID, &p.JoinedAt)
}

// ListByRoom returns the roster of a room, oldest membership first
func (r *ParticipantRepository) ListByRoom(ctx context.Context, roomID int64) ([]*domain.RoomParticipant, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, room_id, user_id, participant_role, joined_at, last_seen_at
		 FROM room_participants
		 WHERE room_id = $1
		 ORDER BY joined_at`,
		roomID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []*domain.RoomParticipant
	for rows.Next() {
		var p domain.RoomParticipant
		if err := rows.Scan(&p.ID, &p.RoomID, &p.UserID, &p.Role, &p.JoinedAt, &p.LastSeenAt); err != nil {
			return nil, err
		}
		res = append(res, &p)
	}
	return res, rows.Err()
}

// ListByUser returns the rooms a user participates in
func (r *ParticipantRepository) ListByUser(ctx context.Context, userID int64) ([]*domain.RoomParticipant, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, room_id, user_id, participant_role, joined_at, last_seen_at
		 FROM room_participants
		 WHERE user_id = $1
		 ORDER BY joined_at`,
		userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []*domain.RoomParticipant
	for rows.Next() {
		var p domain.RoomParticipant
		if err := rows.Scan(&p.ID, &p.RoomID, &p.UserID, &p.Role, &p.JoinedAt, &p.LastSeenAt); err != nil {
			return nil, err
		}
		res = append(res, &p)
	}
	return res, rows.Err()
}

// TouchLastSeen records message activity for a participant
func (r *ParticipantRepository) TouchLastSeen(ctx context.Context, roomID, userID int64) error {
	_, err := r.db.Exec(ctx,
		`UPDATE room_participants SET last_seen_at = NOW() WHERE room_id = $1 AND user_id = $2`,
		roomID, userID)
	return err
}
