package handlers

import (
	"errors"
	"net/http"

	"chat_app/internal/domain"
	"chat_app/internal/http/middleware"
	"chat_app/internal/service"

	"github.com/gin-gonic/gin"
)

type PurchaseGoldRequest struct {
	Amount           int64   `json:"amount" binding:"required"`
	PaymentReference *string `json:"payment_reference"`
}

// PurchaseGold credits the user with gold. Purchases are simulated; the
// payment reference is recorded as-is for auditing.
func (h *Handler) PurchaseGold(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}

	var req PurchaseGoldRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad request"})
		return
	}

	ctx := c.Request.Context()
	tx, err := h.GoldService.Purchase(ctx, userID, req.Amount, req.PaymentReference)
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

	middleware.GoldPurchased.Add(float64(req.Amount))
	h.AuditService.Log(ctx, userID, domain.AuditActionGoldPurchase, domain.AuditCategoryBalance, map[string]interface{}{
		"amount":       tx.Amount,
		"reference_id": tx.ReferenceID,
	})

	c.JSON(http.StatusCreated, tx)
}

// GoldBalance returns the user's current gold balance
func (h *Handler) GoldBalance(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}

	balance, err := h.GoldService.GetBalance(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"gold_credits": balance})
}

// GoldHistory returns the user's recent ledger entries
func (h *Handler) GoldHistory(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}

	transactions, err := h.GoldService.ListHistory(c.Request.Context(), userID, 200)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"history": transactions})
}
