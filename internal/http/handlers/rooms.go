package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"chat_app/internal/domain"
	"chat_app/internal/http/middleware"
	"chat_app/internal/service"

	"github.com/gin-gonic/gin"
)

type CreateRoomRequest struct {
	Name            string `json:"name" binding:"required"`
	Description     string `json:"description"`
	RoomType        string `json:"room_type" binding:"required"`
	MaxParticipants *int   `json:"max_participants"`
	GoldCost        *int64 `json:"gold_cost"`
}

// CreateRoom creates a room; the creator is auto-joined as admin.
// Premium rooms with a positive gold_cost charge the creator once.
func (h *Handler) CreateRoom(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}

	var req CreateRoomRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad request"})
		return
	}

	ctx := c.Request.Context()
	room, err := h.RoomService.CreateRoom(ctx, userID, service.CreateRoomInput{
		Name:            req.Name,
		Description:     req.Description,
		RoomType:        domain.RoomType(req.RoomType),
		MaxParticipants: req.MaxParticipants,
		GoldCost:        req.GoldCost,
	})
	if err != nil {
		h.roomError(c, err)
		return
	}

	middleware.RoomsCreated.WithLabelValues(string(room.RoomType)).Inc()
	h.AuditService.Log(ctx, userID, domain.AuditActionRoomCreate, domain.AuditCategoryRoom, map[string]interface{}{
		"room_id":   room.ID,
		"room_type": room.RoomType,
		"gold_cost": room.GoldCost,
	})

	c.JSON(http.StatusCreated, room)
}

// JoinRoom adds the current user to a room roster
func (h *Handler) JoinRoom(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}

	roomID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid room id"})
		return
	}

	ctx := c.Request.Context()
	participant, err := h.RoomService.JoinRoom(ctx, roomID, userID)
	if err != nil {
		h.roomError(c, err)
		return
	}

	room, _ := h.RoomService.GetRoom(ctx, roomID)
	if room != nil {
		middleware.RoomsJoined.WithLabelValues(string(room.RoomType)).Inc()
	}
	h.AuditService.Log(ctx, userID, domain.AuditActionRoomJoin, domain.AuditCategoryRoom, map[string]interface{}{
		"room_id": roomID,
	})

	c.JSON(http.StatusCreated, participant)
}

// ListRooms returns active rooms
func (h *Handler) ListRooms(c *gin.Context) {
	limit := 100
	if v := c.Query("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 500 {
			limit = n
		}
	}

	rooms, err := h.RoomService.ListRooms(c.Request.Context(), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"rooms": rooms})
}

// GetRoom returns a single room by id
func (h *Handler) GetRoom(c *gin.Context) {
	roomID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid room id"})
		return
	}

	room, err := h.RoomService.GetRoom(c.Request.Context(), roomID)
	if err != nil {
		h.roomError(c, err)
		return
	}
	c.JSON(http.StatusOK, room)
}

// ListParticipants returns the roster of a room
func (h *Handler) ListParticipants(c *gin.Context) {
	roomID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid room id"})
		return
	}

	participants, err := h.RoomService.ListParticipants(c.Request.Context(), roomID)
	if err != nil {
		h.roomError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"participants": participants})
}

// roomError maps service errors to stable HTTP responses
func (h *Handler) roomError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrUserNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
	case errors.Is(err, service.ErrRoomNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "room not found"})
	case errors.Is(err, service.ErrRoomInactive):
		c.JSON(http.StatusConflict, gin.H{"error": "room is not active"})
	case errors.Is(err, service.ErrAlreadyMember):
		c.JSON(http.StatusConflict, gin.H{"error": "already a participant"})
	case errors.Is(err, service.ErrRoomFull):
		c.JSON(http.StatusConflict, gin.H{"error": "room is full"})
	case errors.Is(err, service.ErrInsufficientFunds):
		c.JSON(http.StatusPaymentRequired, gin.H{"error": "insufficient gold"})
	case errors.Is(err, service.ErrInvalidRoomName),
		errors.Is(err, service.ErrInvalidRoomType),
		errors.Is(err, service.ErrInvalidCapacity),
		errors.Is(err, service.ErrInvalidCost),
		errors.Is(err, service.ErrCostTooHigh),
		errors.Is(err, service.ErrCapacityTooHigh):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
	}
}
