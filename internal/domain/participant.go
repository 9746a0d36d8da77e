package domain

import "time"

type ParticipantRole string

const (
	ParticipantRoleMember    ParticipantRole = "member"
	ParticipantRoleModerator ParticipantRole = "moderator"
	ParticipantRoleAdmin     ParticipantRole = "admin"
)

// RoomParticipant is the membership edge between a user and a room.
// The (room_id, user_id) pair is unique: a user joins a room at most once.
type RoomParticipant struct {
	ID         int64           `db:"id" json:"id"`
	RoomID     int64           `db:"room_id" json:"room_id"`
	UserID     int64           `db:"user_id" json:"user_id"`
	Role       ParticipantRole `db:"participant_role" json:"participant_role"`
	JoinedAt   time.Time       `db:"joined_at" json:"joined_at"`
	LastSeenAt *time.Time      `db:"last_seen_at" json:"last_seen_at,omitempty"`
}
