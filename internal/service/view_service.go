package service

import (
	"context"
	"fmt"

	"letterflow/internal/models"
	"letterflow/internal/repository"
	"letterflow/internal/workflow"
)

// actionable lists the statuses a role can act on next.
var actionable = map[models.Role][]models.Status{
	models.RoleReviewer: {models.StatusSubmitted, models.StatusReviewedByReviewer},
	models.RoleApprover: {models.StatusApprovedByReviewer, models.StatusReviewedByApprover},
}

// approverHistory is shown to approvers alongside their queue.
var approverHistory = []models.Status{models.StatusCompleted, models.StatusRejectedByApprover}

// DashboardView is the role-scoped read side: the list and its counters
// derive from the same filtered query, so they can never drift apart.
type DashboardView struct {
	Submissions []models.Submission   `json:"submissions"`
	Counts      map[models.Status]int `json:"counts"`
	Actionable  int                   `json:"actionable"`
}

// ViewService projects the submission store into per-role dashboards. Pure
// read side; it never mutates.
type ViewService struct {
	subs repository.SubmissionStore
}

func NewViewService(subs repository.SubmissionStore) *ViewService {
	return &ViewService{subs: subs}
}

// List returns the submissions visible to the subject, newest first.
func (s *ViewService) List(ctx context.Context, subject models.Subject) ([]models.Submission, error) {
	switch subject.Role {
	case models.RoleRequester:
		return s.subs.ListByFilter(ctx, repository.Filter{OwnerID: subject.ID})
	case models.RoleReviewer:
		return s.subs.ListByFilter(ctx, repository.Filter{Statuses: actionable[models.RoleReviewer]})
	case models.RoleApprover:
		statuses := append(append([]models.Status{}, actionable[models.RoleApprover]...), approverHistory...)
		return s.subs.ListByFilter(ctx, repository.Filter{Statuses: statuses})
	}
	return nil, fmt.Errorf("%w: unknown role %q", workflow.ErrValidation, subject.Role)
}

// ForSubject builds the dashboard for one subject.
func (s *ViewService) ForSubject(ctx context.Context, subject models.Subject) (*DashboardView, error) {
	subs, err := s.List(ctx, subject)
	if err != nil {
		return nil, err
	}
	counts := CountsByStatus(subs)

	acted := 0
	for _, status := range actionable[subject.Role] {
		acted += counts[status]
	}
	return &DashboardView{Submissions: subs, Counts: counts, Actionable: acted}, nil
}

// CountsByStatus aggregates a listing into per-status counters. No stored
// counters exist anywhere; this recomputation is the only source.
func CountsByStatus(subs []models.Submission) map[models.Status]int {
	counts := map[models.Status]int{}
	for _, sub := range subs {
		counts[sub.Status]++
	}
	return counts
}
