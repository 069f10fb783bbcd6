package repository

import (
	"context"

	"letterflow/internal/models"
	"letterflow/internal/workflow"
)

// Filter narrows a submission listing. Empty Statuses means all statuses;
// empty OwnerID means any owner. Results are newest first.
type Filter struct {
	Statuses []models.Status
	OwnerID  string
}

// SubmissionStore is the durable record of submissions. ApplyTransition is
// the sole mutation path after Create; the patch comes from the state
// machine and is applied compare-and-swap on the expected pre-status.
type SubmissionStore interface {
	Create(ctx context.Context, sub *models.Submission) error
	Get(ctx context.Context, id string) (*models.Submission, error)
	ListByFilter(ctx context.Context, f Filter) ([]models.Submission, error)
	ApplyTransition(ctx context.Context, id string, patch workflow.Patch) (*models.Submission, error)
}

// TemplateStore serves the static letter templates.
type TemplateStore interface {
	List(ctx context.Context) ([]models.Template, error)
	Get(ctx context.Context, id string) (*models.Template, error)
	Seed(ctx context.Context, templates []models.Template) error
}

// UserStore persists accounts for the identity resolver.
type UserStore interface {
	Create(ctx context.Context, user *models.User) error
	FindByID(ctx context.Context, id string) (*models.User, error)
	FindByUsername(ctx context.Context, username string) (*models.User, error)
}
