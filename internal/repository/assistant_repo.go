package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"assistant-backend/internal/models"
)

// ErrNotFound is returned when a row does not exist.
var ErrNotFound = errors.New("repository: not found")

type AssistantRepo struct {
	pool *pgxpool.Pool
}

func NewAssistantRepo(pool *pgxpool.Pool) *AssistantRepo {
	return &AssistantRepo{pool: pool}
}

func (r *AssistantRepo) Create(ctx context.Context, a *models.Assistant) error {
	a.ID = uuid.New()

	query := `INSERT INTO assistants (id, name, description, user_role, model_info)
		VALUES ($1, $2, $3, $4, $5) RETURNING created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		a.ID, a.Name, a.Description, a.UserRole, a.ModelInfo,
	).Scan(&a.CreatedAt, &a.UpdatedAt)
}

func (r *AssistantRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Assistant, error) {
	a := &models.Assistant{}
	query := `SELECT id, name, description, user_role, model_info, created_at, updated_at
		FROM assistants WHERE id = $1`

	err := r.pool.QueryRow(ctx, query, id).Scan(
		&a.ID, &a.Name, &a.Description, &a.UserRole, &a.ModelInfo,
		&a.CreatedAt, &a.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return a, nil
}

func (r *AssistantRepo) List(ctx context.Context, search string, limit, offset int) ([]*models.Assistant, int, error) {
	var args []interface{}
	argIdx := 1

	where := ""
	if search != "" {
		where = fmt.Sprintf("WHERE (name ILIKE $%d OR description ILIKE $%d)", argIdx, argIdx)
		args = append(args, "%"+search+"%")
		argIdx++
	}

	var total int
	countQuery := "SELECT COUNT(*) FROM assistants " + where
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf(`SELECT id, name, description, user_role, model_info, created_at, updated_at
		FROM assistants %s ORDER BY created_at DESC LIMIT $%d OFFSET $%d`,
		where, argIdx, argIdx+1)
	args = append(args, limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var assistants []*models.Assistant
	for rows.Next() {
		a := &models.Assistant{}
		err := rows.Scan(
			&a.ID, &a.Name, &a.Description, &a.UserRole, &a.ModelInfo,
			&a.CreatedAt, &a.UpdatedAt,
		)
		if err != nil {
			return nil, 0, err
		}
		assistants = append(assistants, a)
	}
	return assistants, total, rows.Err()
}

func (r *AssistantRepo) Update(ctx context.Context, a *models.Assistant) error {
	query := `UPDATE assistants
		SET name = $2, description = $3, user_role = $4, model_info = $5, updated_at = NOW()
		WHERE id = $1 RETURNING created_at, updated_at`

	err := r.pool.QueryRow(ctx, query,
		a.ID, a.Name, a.Description, a.UserRole, a.ModelInfo,
	).Scan(&a.CreatedAt, &a.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	return err
}

func (r *AssistantRepo) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, "DELETE FROM assistants WHERE id = $1", id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
