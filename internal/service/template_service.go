package service

import (
	"context"
	"time"

	"letterflow/internal/models"
	"letterflow/internal/repository"
)

type TemplateService struct {
	templates repository.TemplateStore
}

func NewTemplateService(templates repository.TemplateStore) *TemplateService {
	return &TemplateService{templates: templates}
}

func (s *TemplateService) List(ctx context.Context) ([]models.Template, error) {
	return s.templates.List(ctx)
}

func (s *TemplateService) Get(ctx context.Context, id string) (*models.Template, error) {
	return s.templates.Get(ctx, id)
}

// SeedDefaults installs the stock letter templates on first boot.
func (s *TemplateService) SeedDefaults(ctx context.Context) error {
	// Fixed ids so reseeding on every boot stays a no-op.
	now := time.Now().UTC()
	defaults := []models.Template{
		{ID: "tpl-active-enrollment", Name: "Surat Keterangan Aktif", Description: "Statement of active enrollment", CreatedAt: now},
		{ID: "tpl-research-intro", Name: "Surat Pengantar Penelitian", Description: "Research introduction letter", CreatedAt: now},
		{ID: "tpl-recommendation", Name: "Surat Rekomendasi", Description: "Recommendation letter", CreatedAt: now},
	}
	return s.templates.Seed(ctx, defaults)
}
