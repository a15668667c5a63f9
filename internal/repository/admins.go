package repository

import (
	"context"
	"time"

	"github.com/shiftflow-dev/shiftflow/backend/internal/domain"
)

func (r *Repository) CreateAdmin(admin *domain.Admin) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		INSERT INTO admins (username, password_hash, email)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, version
	`

	if err := r.dbpool.QueryRowContext(ctx, query, admin.Username, admin.PasswordHash, admin.Email).Scan(&admin.ID, &admin.CreatedAt, &admin.Version); err != nil {
		return err
	}

	return nil
}

func (r *Repository) GetAdminByUsername(username string) (*domain.Admin, error) {
	query := `
		SELECT id, password_hash, email, created_at, version
		FROM admins WHERE username = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	admin := &domain.Admin{
		Username: username,
	}

	if err := r.dbpool.QueryRowContext(ctx, query, username).Scan(&admin.ID, &admin.PasswordHash, &admin.Email, &admin.CreatedAt, &admin.Version); err != nil {
		return nil, err
	}

	return admin, nil
}
