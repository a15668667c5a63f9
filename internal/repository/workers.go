package repository

import (
	"context"
	"time"

	"github.com/shiftflow-dev/shiftflow/backend/internal/domain"
)

func (r *Repository) CreateWorker(worker *domain.Worker) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		INSERT INTO workers (name)
		VALUES ($1)
		RETURNING id, created_at, version
	`

	if err := r.dbpool.QueryRowContext(ctx, query, worker.Name).Scan(&worker.ID, &worker.CreatedAt, &worker.Version); err != nil {
		return err
	}

	return nil
}

func (r *Repository) GetWorkerByID(id int64) (*domain.Worker, error) {
	query := `
		SELECT name, created_at, version
		FROM workers WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	worker := &domain.Worker{
		ID: id,
	}

	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(&worker.Name, &worker.CreatedAt, &worker.Version); err != nil {
		return nil, err
	}

	return worker, nil
}

// GetAllWorkers 按注册顺序返回当前所有员工，自动排班依赖这个顺序
func (r *Repository) GetAllWorkers() ([]*domain.Worker, error) {
	query := `
		SELECT id, name, created_at, version FROM workers ORDER BY id
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	workers := make([]*domain.Worker, 0)
	for rows.Next() {
		worker := &domain.Worker{}
		if err := rows.Scan(&worker.ID, &worker.Name, &worker.CreatedAt, &worker.Version); err != nil {
			return nil, err
		}
		workers = append(workers, worker)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return workers, nil
}

func (r *Repository) UpdateWorker(worker *domain.Worker) error {
	query := `
		UPDATE workers
		SET
			name = $1,
			version = version + 1
		WHERE id = $2 AND version = $3
		RETURNING created_at, version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	if err := r.dbpool.QueryRowContext(ctx, query, worker.Name, worker.ID, worker.Version).Scan(&worker.CreatedAt, &worker.Version); err != nil {
		return err
	}

	return nil
}

func (r *Repository) DeleteWorker(id int64) error {
	query := `
		DELETE FROM workers WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	if _, err := r.dbpool.ExecContext(ctx, query, id); err != nil {
		return err
	}

	return nil
}
