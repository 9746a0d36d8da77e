package service

import (
	"context"

	"chat_app/internal/domain"
	"chat_app/internal/logger"
	"chat_app/internal/repository"

	"github.com/jackc/pgx/v5/pgxpool"
)

// AuditService handles audit logging
type AuditService struct {
	repo *repository.AuditRepository
}

// NewAuditService creates a new audit service
func NewAuditService(db *pgxpool.Pool) *AuditService {
	return &AuditService{
		repo: repository.NewAuditRepository(db),
	}
}

// Log creates a new audit log entry. Failures are logged, never propagated:
// the audit trail must not fail the operation it describes.
func (s *AuditService) Log(ctx context.Context, userID int64, action, category string, details map[string]interface{}) {
	entry := &domain.AuditLog{
		UserID:   userID,
		Action:   action,
		Category: category,
		Details:  details,
	}

	if err := s.repo.Create(ctx, entry); err != nil {
		logger.Error("failed to create audit log", "error", err, "action", action, "user_id", userID)
	}
}

// LogWithRequest creates an audit log with request info (IP, User-Agent)
func (s *AuditService) LogWithRequest(ctx context.Context, userID int64, action, category, ip, userAgent string, details map[string]interface{}) {
	entry := &domain.AuditLog{
		UserID:    userID,
		Action:    action,
		Category:  category,
		Details:   details,
		IP:        ip,
		UserAgent: userAgent,
	}

	if err := s.repo.Create(ctx, entry); err != nil {
		logger.Error("failed to create audit log", "error", err, "action", action, "user_id", userID)
	}
}
