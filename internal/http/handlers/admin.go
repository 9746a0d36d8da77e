package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"chat_app/internal/domain"
	"chat_app/internal/service"

	"github.com/gin-gonic/gin"
)

// requireAdmin checks the acting user's platform role
func (h *Handler) requireAdmin(c *gin.Context) (int64, bool) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return 0, false
	}

	user, err := h.UserRepo.GetByID(c.Request.Context(), userID)
	if err != nil || user.Role != domain.UserRoleAdmin {
		c.JSON(http.StatusForbidden, gin.H{"error": "admin access required"})
		return 0, false
	}
	return userID, true
}

// DeactivateRoom marks a room inactive; joins are rejected afterwards
func (h *Handler) DeactivateRoom(c *gin.Context) {
	adminID, ok := h.requireAdmin(c)
	if !ok {
		return
	}

	roomID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid room id"})
		return
	}

	ctx := c.Request.Context()
	if err := h.RoomService.DeactivateRoom(ctx, roomID); err != nil {
		h.roomError(c, err)
		return
	}

	h.AuditService.Log(ctx, adminID, domain.AuditActionRoomDeactivate, domain.AuditCategoryAdmin, map[string]interface{}{
		"room_id": roomID,
	})
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

type GrantGoldRequest struct {
	UserID int64  `json:"user_id" binding:"required"`
	Amount int64  `json:"amount" binding:"required"`
	Reason string `json:"reason"`
}

// GrantGold credits a user with bonus gold
func (h *Handler) GrantGold(c *gin.Context) {
	adminID, ok := h.requireAdmin(c)
	if !ok {
		return
	}

	var req GrantGoldRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad request"})
		return
	}
	if req.Reason == "" {
		req.Reason = "Administrative gold grant"
	}

	ctx := c.Request.Context()
	tx, err := h.GoldService.Grant(ctx, req.UserID, req.Amount, req.Reason)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		case errors.Is(err, service.ErrInvalidAmount):
			c.JSON(http.StatusBadRequest, gin.H{"error": "amount must be positive"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
		}
		return
	}

	h.AuditService.Log(ctx, adminID, domain.AuditActionGoldGrant, domain.AuditCategoryAdmin, map[string]interface{}{
		"target_user_id": req.UserID,
		"amount":         req.Amount,
		"reason":         req.Reason,
	})
	c.JSON(http.StatusCreated, tx)
}

type SetRoleRequest struct {
	Role string `json:"role" binding:"required"`
}

// SetUserRole updates a user's platform role
func (h *Handler) SetUserRole(c *gin.Context) {
	adminID, ok := h.requireAdmin(c)
	if !ok {
		return
	}

	targetID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}

	var req SetRoleRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad request"})
		return
	}

	role := domain.UserRole(req.Role)
	if role != domain.UserRoleUser && role != domain.UserRoleModerator && role != domain.UserRoleAdmin {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid role"})
		return
	}

	ctx := c.Request.Context()
	if _, err := h.UserRepo.GetByID(ctx, targetID); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}
	if err := h.UserRepo.SetRole(ctx, targetID, role); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
		return
	}

	h.AuditService.Log(ctx, adminID, "user_set_role", domain.AuditCategoryAdmin, map[string]interface{}{
		"target_user_id": targetID,
		"role":           role,
	})
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
