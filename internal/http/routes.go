package http

import (
	"time"

	"chat_app/internal/config"
	"chat_app/internal/http/handlers"
	"chat_app/internal/http/middleware"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

func RegisterRoutes(r *gin.Engine, db *pgxpool.Pool, version string) {
	RegisterRoutesWithConfig(r, db, version, nil)
}

func RegisterRoutesWithConfig(r *gin.Engine, db *pgxpool.Pool, version string, cfg *config.Config) {
	var h *handlers.Handler
	apiRateLimit := 60
	apiRateWindow := time.Minute
	if cfg != nil {
		h = handlers.NewHandlerWithConfig(db, handlers.HandlerConfig{
			MaxRoomCost:         cfg.MaxRoomCost,
			MaxParticipantLimit: cfg.MaxParticipantLimit,
		})
		apiRateLimit = cfg.APIRateLimit
		apiRateWindow = cfg.APIRateWindow
	} else {
		h = handlers.NewHandler(db)
	}
	healthHandler := handlers.NewHealthHandler(db, version)

	// Health checks (no rate limiting)
	r.GET("/health", healthHandler.Health)
	r.GET("/healthz", healthHandler.Liveness)
	r.GET("/readyz", healthHandler.Readiness)

	v1 := r.Group("/api/v1")
	v1.Use(middleware.RedisRateLimit(apiRateLimit, apiRateWindow))

	// Auth (collaborator surface: session issuance only)
	v1.POST("/auth", middleware.RedisRateLimit(5, time.Minute), h.Auth)

	// User profile
	v1.GET("/me", middleware.JWT(), h.Me)

	// Per-user limiter for the money-moving endpoints
	actionRL := middleware.ActionRateLimit(30, time.Minute)

	// Rooms
	v1.GET("/rooms", h.ListRooms)
	v1.GET("/rooms/:id", h.GetRoom)
	v1.GET("/rooms/:id/participants", h.ListParticipants)
	v1.POST("/rooms", middleware.JWT(), actionRL, h.CreateRoom)
	v1.POST("/rooms/:id/join", middleware.JWT(), actionRL, h.JoinRoom)

	// Gold credits
	v1.GET("/gold/balance", middleware.JWT(), h.GoldBalance)
	v1.GET("/gold/history", middleware.JWT(), h.GoldHistory)
	v1.POST("/gold/purchase", middleware.JWT(), actionRL, h.PurchaseGold)

	// Admin
	admin := v1.Group("/admin")
	admin.Use(middleware.JWT())
	{
		admin.POST("/rooms/:id/deactivate", h.DeactivateRoom)
		admin.POST("/gold/grant", h.GrantGold)
		admin.POST("/users/:id/role", h.SetUserRole)
	}
}
