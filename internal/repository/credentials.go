package repository

import (
	"context"
	"time"

	"github.com/shiftflow-dev/shiftflow/backend/internal/domain"
)

func (r *Repository) CreateWorkerCredential(credential *domain.WorkerCredential) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		INSERT INTO worker_credentials (username, password_hash, name, email, worker_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, version
	`

	args := []any{credential.Username, credential.PasswordHash, credential.Name, credential.Email, credential.WorkerID}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&credential.ID, &credential.CreatedAt, &credential.Version); err != nil {
		return err
	}

	return nil
}

func (r *Repository) GetWorkerCredentialByUsername(username string) (*domain.WorkerCredential, error) {
	query := `
		SELECT id, password_hash, name, email, worker_id, created_at, version
		FROM worker_credentials WHERE username = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	credential := &domain.WorkerCredential{
		Username: username,
	}

	dst := []any{&credential.ID, &credential.PasswordHash, &credential.Name, &credential.Email, &credential.WorkerID, &credential.CreatedAt, &credential.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, username).Scan(dst...); err != nil {
		return nil, err
	}

	return credential, nil
}

// GetAllWorkerCredentials 返回登录账号总览，不包含密码哈希
func (r *Repository) GetAllWorkerCredentials() ([]*domain.WorkerCredential, error) {
	query := `
		SELECT id, username, name, email, worker_id, created_at, version
		FROM worker_credentials ORDER BY id
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	credentials := make([]*domain.WorkerCredential, 0)
	for rows.Next() {
		credential := &domain.WorkerCredential{}
		dst := []any{&credential.ID, &credential.Username, &credential.Name, &credential.Email, &credential.WorkerID, &credential.CreatedAt, &credential.Version}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		credentials = append(credentials, credential)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return credentials, nil
}

func (r *Repository) UpdateWorkerCredential(credential *domain.WorkerCredential) error {
	query := `
		UPDATE worker_credentials
		SET
			password_hash = $1,
			email = $2,
			version = version + 1
		WHERE id = $3 AND version = $4
		RETURNING username, name, created_at, version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	args := []any{credential.PasswordHash, credential.Email, credential.ID, credential.Version}
	dst := []any{&credential.Username, &credential.Name, &credential.CreatedAt, &credential.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(dst...); err != nil {
		return err
	}

	return nil
}

func (r *Repository) DeleteWorkerCredentialByWorkerID(workerID int64) error {
	query := `
		DELETE FROM worker_credentials WHERE worker_id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	if _, err := r.dbpool.ExecContext(ctx, query, workerID); err != nil {
		return err
	}

	return nil
}
