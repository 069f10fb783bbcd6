package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"letterflow/internal/models"
	"letterflow/internal/workflow"
)

type TemplateRepo struct {
	db *pgxpool.Pool
}

func NewTemplateRepo(db *pgxpool.Pool) *TemplateRepo {
	return &TemplateRepo{db: db}
}

func (r *TemplateRepo) List(ctx context.Context) ([]models.Template, error) {
	rows, err := r.db.Query(ctx, `SELECT id, name, description, file_ref, created_at FROM templates ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("%w: list templates: %v", ErrStorageUnavailable, err)
	}
	defer rows.Close()

	templates := []models.Template{}
	for rows.Next() {
		var t models.Template
		if err := rows.Scan(&t.ID, &t.Name, &t.Description, &t.FileRef, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("%w: scan template: %v", ErrStorageUnavailable, err)
		}
		templates = append(templates, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: list templates: %v", ErrStorageUnavailable, err)
	}
	return templates, nil
}

func (r *TemplateRepo) Get(ctx context.Context, id string) (*models.Template, error) {
	var t models.Template
	err := r.db.QueryRow(ctx, `SELECT id, name, description, file_ref, created_at FROM templates WHERE id = $1`, id).
		Scan(&t.ID, &t.Name, &t.Description, &t.FileRef, &t.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: template %s", workflow.ErrNotFound, id)
		}
		return nil, fmt.Errorf("%w: get template: %v", ErrStorageUnavailable, err)
	}
	return &t, nil
}

// Seed inserts missing templates. Existing rows are left untouched; the
// workflow treats templates as read-only reference data.
func (r *TemplateRepo) Seed(ctx context.Context, templates []models.Template) error {
	for _, t := range templates {
		_, err := r.db.Exec(ctx, `INSERT INTO templates (id, name, description, file_ref, created_at)
			VALUES ($1, $2, $3, $4, $5) ON CONFLICT (id) DO NOTHING`,
			t.ID, t.Name, t.Description, t.FileRef, t.CreatedAt)
		if err != nil {
			return fmt.Errorf("%w: seed template %s: %v", ErrStorageUnavailable, t.ID, err)
		}
	}
	return nil
}
