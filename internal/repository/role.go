package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"beexpress/internal/domain"
)

// RoleRepo represents the role assignment repository.
type RoleRepo struct{ db *pgxpool.Pool }

// NewRoleRepo creates a new RoleRepo.
func NewRoleRepo(db *pgxpool.Pool) *RoleRepo { return &RoleRepo{db: db} }

// Insert persists a role assignment. First write wins: a repeated insert
// for the same user_id is a no-op, and the return value reports whether
// this call created the record.
func (r *RoleRepo) Insert(ctx context.Context, a *domain.RoleAssignment) (bool, error) {
	ct, err := r.db.Exec(ctx, `
        INSERT INTO role_assignments (user_id, role, phone_number)
        VALUES ($1, $2, $3)
        ON CONFLICT (user_id) DO NOTHING
    `, a.UserID, a.Role, a.PhoneNumber)
	if err != nil {
		return false, fmt.Errorf("insert role assignment %s: %w", a.UserID, err)
	}
	return ct.RowsAffected() > 0, nil
}

// Get - returns the role assignment for a user, or nil if none exists.
func (r *RoleRepo) Get(ctx context.Context, userID string) (*domain.RoleAssignment, error) {
	var a domain.RoleAssignment
	err := r.db.QueryRow(ctx, `
        SELECT user_id, role, phone_number, created_at
        FROM role_assignments WHERE user_id = $1
    `, userID).Scan(&a.UserID, &a.Role, &a.PhoneNumber, &a.CreatedAt)
	if err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get role assignment %s: %w", userID, err)
	}
	return &a, nil
}
