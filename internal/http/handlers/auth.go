package handlers

import (
	"errors"
	"net/http"

	"chat_app/internal/domain"
	"chat_app/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
)

type AuthRequest struct {
	Username    string `json:"username" binding:"required,min=3,max=50"`
	DisplayName string `json:"display_name"`
}

// Auth issues a JWT for the given username, creating the account on first
// login. Password verification lives in the identity subsystem; this
// endpoint only covers the session issuance surface the services need.
func (h *Handler) Auth(c *gin.Context) {
	var req AuthRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad request"})
		return
	}

	ctx := c.Request.Context()
	user, err := h.UserRepo.GetByUsername(ctx, req.Username)
	if err != nil {
		if !errors.Is(err, pgx.ErrNoRows) {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}
		user = &domain.User{
			Username:    req.Username,
			DisplayName: req.DisplayName,
		}
		if err := h.UserRepo.Create(ctx, user); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create user"})
			return
		}
	}

	if !user.IsActive {
		c.JSON(http.StatusForbidden, gin.H{"error": "account disabled"})
		return
	}

	token, err := service.GenerateJWT(user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "token generation failed"})
		return
	}

	h.AuditService.LogWithRequest(ctx, user.ID, domain.AuditActionLogin, domain.AuditCategoryAuth,
		c.ClientIP(), c.Request.UserAgent(), nil)

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"user": gin.H{
			"id":           user.ID,
			"username":     user.Username,
			"display_name": user.DisplayName,
			"role":         user.Role,
			"gold_credits": user.GoldCredits,
		},
	})
}
