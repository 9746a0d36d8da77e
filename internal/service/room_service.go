package service

import (
	"context"
	"errors"
	"fmt"

	"chat_app/internal/domain"
	"chat_app/internal/repository"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrRoomNotFound    = errors.New("room not found")
	ErrRoomInactive    = errors.New("room is not active")
	ErrAlreadyMember   = errors.New("already a participant of this room")
	ErrRoomFull        = errors.New("room is full")
	ErrInvalidRoomName = errors.New("room name must be 1-100 characters")
	ErrInvalidRoomType = errors.New("invalid room type")
	ErrInvalidCapacity = errors.New("max participants must be positive")
	ErrInvalidCost     = errors.New("gold cost must not be negative")
	ErrCostTooHigh     = errors.New("gold cost exceeds maximum")
	ErrCapacityTooHigh = errors.New("max participants exceeds maximum")
)

// RoomLimits bounds the values accepted at room creation
type RoomLimits struct {
	MaxRoomCost         int64
	MaxParticipantLimit int
}

// RoomService orchestrates room creation and joining. Each operation runs
// as a single database transaction: balance check, debit, ledger append and
// roster insert either all commit or all roll back.
type RoomService struct {
	db              *pgxpool.Pool
	roomRepo        *repository.RoomRepository
	participantRepo *repository.ParticipantRepository
	transactionRepo *repository.TransactionRepository
	balance         *BalanceService
	limits          RoomLimits
}

// NewRoomService creates a new room service
func NewRoomService(db *pgxpool.Pool) *RoomService {
	return NewRoomServiceWithLimits(db, RoomLimits{MaxRoomCost: 100000, MaxParticipantLimit: 500})
}

// NewRoomServiceWithLimits creates a room service with custom limits
func NewRoomServiceWithLimits(db *pgxpool.Pool, limits RoomLimits) *RoomService {
	return &RoomService{
		db:              db,
		roomRepo:        repository.NewRoomRepository(db),
		participantRepo: repository.NewParticipantRepository(db),
		transactionRepo: repository.NewTransactionRepository(db),
		balance:         NewBalanceService(db),
		limits:          limits,
	}
}

// CreateRoomInput holds parameters for room creation. MaxParticipants and
// GoldCost stay nil when the caller did not specify them.
type CreateRoomInput struct {
	Name            string
	Description     string
	RoomType        domain.RoomType
	MaxParticipants *int
	GoldCost        *int64
}

// ValidateCreateRoom checks creation input against the configured limits
func (s *RoomService) ValidateCreateRoom(in *CreateRoomInput) error {
	if len(in.Name) < 1 || len(in.Name) > 100 {
		return ErrInvalidRoomName
	}
	if !domain.ValidRoomType(in.RoomType) {
		return ErrInvalidRoomType
	}
	if in.MaxParticipants != nil {
		if *in.MaxParticipants <= 0 {
			return ErrInvalidCapacity
		}
		if s.limits.MaxParticipantLimit > 0 && *in.MaxParticipants > s.limits.MaxParticipantLimit {
			return ErrCapacityTooHigh
		}
	}
	if in.GoldCost != nil {
		if *in.GoldCost < 0 {
			return ErrInvalidCost
		}
		if s.limits.MaxRoomCost > 0 && *in.GoldCost > s.limits.MaxRoomCost {
			return ErrCostTooHigh
		}
	}
	return nil
}

// CreateRoom creates a room and auto-joins the creator as admin. A premium
// room with a positive cost charges the creator once; the debit, the ledger
// entry, the room and the creator's participant row commit atomically.
func (s *RoomService) CreateRoom(ctx context.Context, userID int64, in CreateRoomInput) (*domain.Room, error) {
	if err := s.ValidateCreateRoom(&in); err != nil {
		return nil, err
	}

	// A gold cost supplied for a public or private room is never charged
	// and never stored.
	if in.RoomType != domain.RoomTypePremium {
		in.GoldCost = nil
	}

	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	// Lock the creator's row: the balance check and debit below must not
	// race with other operations on the same user.
	var balance int64
	err = tx.QueryRow(ctx, `SELECT gold_credits FROM users WHERE id = $1 FOR UPDATE`, userID).Scan(&balance)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	room := &domain.Room{
		Name:            in.Name,
		Description:     in.Description,
		RoomType:        in.RoomType,
		MaxParticipants: in.MaxParticipants,
		GoldCost:        in.GoldCost,
		OwnerID:         userID,
	}

	if cost := room.ChargeableCost(); cost > 0 {
		if balance < cost {
			return nil, ErrInsufficientFunds
		}
		if _, err := s.balance.DebitWithTx(ctx, tx, userID, cost); err != nil {
			return nil, err
		}

		entry := &domain.GoldTransaction{
			UserID:      userID,
			Amount:      -cost,
			Type:        domain.TransactionTypeSpend,
			Description: fmt.Sprintf("Room creation: %s", in.Name),
		}
		if err := s.transactionRepo.CreateWithTx(ctx, tx, entry); err != nil {
			return nil, err
		}
	}

	if err := s.roomRepo.CreateWithTx(ctx, tx, room); err != nil {
		return nil, err
	}

	creator := &domain.RoomParticipant{
		RoomID: room.ID,
		UserID: userID,
		Role:   domain.ParticipantRoleAdmin,
	}
	if err := s.participantRepo.CreateWithTx(ctx, tx, creator); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	return room, nil
}

// JoinRoom adds the user to the room roster as a member. The room row is
// locked for the whole transaction, so the capacity check and the insert
// cannot interleave with a concurrent join. Room-state checks run before
// any debit: a rejected join never charges gold.
func (s *RoomService) JoinRoom(ctx context.Context, roomID, userID int64) (*domain.RoomParticipant, error) {
	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	room, err := s.roomRepo.GetByIDForUpdate(ctx, tx, roomID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrRoomNotFound
		}
		return nil, err
	}

	if !room.IsActive {
		return nil, ErrRoomInactive
	}

	exists, err := s.participantRepo.ExistsWithTx(ctx, tx, roomID, userID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrAlreadyMember
	}

	if room.MaxParticipants != nil {
		count, err := s.participantRepo.CountWithTx(ctx, tx, roomID)
		if err != nil {
			return nil, err
		}
		if count >= *room.MaxParticipants {
			return nil, ErrRoomFull
		}
	}

	if cost := room.ChargeableCost(); cost > 0 {
		if _, err := s.balance.DebitWithTx(ctx, tx, userID, cost); err != nil {
			return nil, err
		}

		entry := &domain.GoldTransaction{
			UserID:      userID,
			Amount:      -cost,
			Type:        domain.TransactionTypeSpend,
			Description: fmt.Sprintf("Joined premium room: %s", room.Name),
		}
		if err := s.transactionRepo.CreateWithTx(ctx, tx, entry); err != nil {
			return nil, err
		}
	}

	p := &domain.RoomParticipant{
		RoomID: roomID,
		UserID: userID,
		Role:   domain.ParticipantRoleMember,
	}
	if err := s.participantRepo.CreateWithTx(ctx, tx, p); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	return p, nil
}

// GetRoom returns a room by id
func (s *RoomService) GetRoom(ctx context.Context, roomID int64) (*domain.Room, error) {
	room, err := s.roomRepo.GetByID(ctx, roomID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrRoomNotFound
		}
		return nil, err
	}
	return room, nil
}

// ListRooms returns active rooms
func (s *RoomService) ListRooms(ctx context.Context, limit int) ([]*domain.Room, error) {
	return s.roomRepo.ListActive(ctx, limit)
}

// ListParticipants returns the roster of a room
func (s *RoomService) ListParticipants(ctx context.Context, roomID int64) ([]*domain.RoomParticipant, error) {
	if _, err := s.GetRoom(ctx, roomID); err != nil {
		return nil, err
	}
	return s.participantRepo.ListByRoom(ctx, roomID)
}

// DeactivateRoom flips the room inactive (administrative)
func (s *RoomService) DeactivateRoom(ctx context.Context, roomID int64) error {
	ok, err := s.roomRepo.SetActive(ctx, roomID, false)
	if err != nil {
		return err
	}
	if !ok {
		return ErrRoomNotFound
	}
	return nil
}
