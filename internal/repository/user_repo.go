package repository

import (
	"context"

	"chat_app/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type UserRepository struct {
	db *pgxpool.Pool
}

func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	row := r.db.QueryRow(ctx,
		`SELECT id, username, COALESCE(display_name, ''), role, gold_credits, is_active, created_at
		 FROM users
		 WHERE id = $1`,
		id,
	)
	return scanUser(row)
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	row := r.db.QueryRow(ctx,
		`SELECT id, username, COALESCE(display_name, ''), role, gold_credits, is_active, created_at
		 FROM users
		 WHERE username = $1`,
		username,
	)
	return scanUser(row)
}

func (r *UserRepository) Create(ctx context.Context, u *domain.User) error {
	if u.Role == "" {
		u.Role = domain.UserRoleUser
	}
	return r.db.QueryRow(ctx,
		`INSERT INTO users (username, display_name, role, gold_credits, is_active)
		 VALUES ($1, $2, $3, $4, TRUE)
		 RETURNING id, is_active, created_at`,
		u.Username, u.DisplayName, u.Role, u.GoldCredits,
	).Scan(&u.ID, &u.IsActive, &u.CreatedAt)
}

// GetGold returns the user's current gold balance
func (r *UserRepository) GetGold(ctx context.Context, userID int64) (int64, error) {
	var gold int64
	err := r.db.QueryRow(ctx, `SELECT gold_credits FROM users WHERE id = $1`, userID).Scan(&gold)
	return gold, err
}

// SetRole updates the user's platform role
func (r *UserRepository) SetRole(ctx context.Context, userID int64, role domain.UserRole) error {
	_, err := r.db.Exec(ctx, `UPDATE users SET role = $2 WHERE id = $1`, userID, role)
	return err
}

// SetActive flips the user's active flag
func (r *UserRepository) SetActive(ctx context.Context, userID int64, active bool) error {
	_, err := r.db.Exec(ctx, `UPDATE users SET is_active = $2 WHERE id = $1`, userID, active)
	return err
}

func scanUser(row pgx.Row) (*domain.User, error) {
	var u domain.User
	if err := row.Scan(
		&u.ID,
		&u.Username,
		&u.DisplayName,
		&u.Role,
		&u.GoldCredits,
		&u.IsActive,
		&u.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &u, nil
}
