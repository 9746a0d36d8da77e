package domain

import "time"

type RoomType string

const (
	RoomTypePublic  RoomType = "public"
	RoomTypePrivate RoomType = "private"
	RoomTypePremium RoomType = "premium"
)

// ValidRoomType reports whether t is one of the closed set of room types.
func ValidRoomType(t RoomType) bool {
	switch t {
	case RoomTypePublic, RoomTypePrivate, RoomTypePremium:
		return true
	}
	return false
}

// Room is a conversation space. MaxParticipants and GoldCost are optional:
// nil means uncapped / free, which is distinct from an explicit zero.
type Room struct {
	ID              int64     `db:"id" json:"id"`
	Name            string    `db:"name" json:"name"`
	Description     string    `db:"description" json:"description,omitempty"`
	RoomType        RoomType  `db:"room_type" json:"room_type"`
	MaxParticipants *int      `db:"max_participants" json:"max_participants,omitempty"`
	GoldCost        *int64    `db:"gold_cost" json:"gold_cost,omitempty"`
	OwnerID         int64     `db:"owner_id" json:"owner_id"`
	IsActive        bool      `db:"is_active" json:"is_active"`
	CreatedAt       time.Time `db:"created_at" json:"created_at"`
}

// ChargeableCost returns the gold amount an access to the room costs.
// Only premium rooms with a positive cost charge anything; a premium room
// with no cost (or zero) is free by design.
func (r *Room) ChargeableCost() int64 {
	if r.RoomType != RoomTypePremium || r.GoldCost == nil || *r.GoldCost <= 0 {
		return 0
	}
	return *r.GoldCost
}
