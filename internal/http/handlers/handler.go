package handlers

import (
	"chat_app/internal/repository"
	"chat_app/internal/service"

	"github.com/jackc/pgx/v5/pgxpool"
)

// HandlerConfig holds configuration for handler
type HandlerConfig struct {
	MaxRoomCost         int64
	MaxParticipantLimit int
}

type Handler struct {
	DB              *pgxpool.Pool
	UserRepo        *repository.UserRepository
	TransactionRepo *repository.TransactionRepository
	RoomService     *service.RoomService
	GoldService     *service.GoldService
	AuditService    *service.AuditService
}

func NewHandler(db *pgxpool.Pool) *Handler {
	return &Handler{
		DB:              db,
		UserRepo:        repository.NewUserRepository(db),
		TransactionRepo: repository.NewTransactionRepository(db),
		RoomService:     service.NewRoomService(db),
		GoldService:     service.NewGoldService(db),
		AuditService:    service.NewAuditService(db),
	}
}

// NewHandlerWithConfig creates a handler with custom room limits
func NewHandlerWithConfig(db *pgxpool.Pool, cfg HandlerConfig) *Handler {
	return &Handler{
		DB:              db,
		UserRepo:        repository.NewUserRepository(db),
		TransactionRepo: repository.NewTransactionRepository(db),
		RoomService: service.NewRoomServiceWithLimits(db, service.RoomLimits{
			MaxRoomCost:         cfg.MaxRoomCost,
			MaxParticipantLimit: cfg.MaxParticipantLimit,
		}),
		GoldService:  service.NewGoldService(db),
		AuditService: service.NewAuditService(db),
	}
}

// getUserID extracts the authenticated user id from the gin context
func getUserID(c interface{ Get(string) (any, bool) }) (int64, bool) {
	uidVal, ok := c.Get("user_id")
	if !ok {
		return 0, false
	}
	switch v := uidVal.(type) {
	case int64:
		return v, true
	case float64:
		return int64(v), true
	default:
		return 0, false
	}
}
