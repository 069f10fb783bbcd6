package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"letterflow/internal/models"
	"letterflow/internal/repository"
)

func seedViewStore(t *testing.T) *repository.MemorySubmissionStore {
	t.Helper()
	ctx := context.Background()
	store := repository.NewMemorySubmissionStore()

	base := time.Date(2026, 2, 1, 8, 0, 0, 0, time.UTC)
	rows := []struct {
		id     string
		owner  string
		status models.Status
	}{
		{"s1", "req-1", models.StatusSubmitted},
		{"s2", "req-1", models.StatusReviewedByReviewer},
		{"s3", "req-1", models.StatusApprovedByReviewer},
		{"s4", "req-2", models.StatusReviewedByApprover},
		{"s5", "req-2", models.StatusCompleted},
		{"s6", "req-2", models.StatusRejectedByReviewer},
	}
	for i, row := range rows {
		require.NoError(t, store.Create(ctx, &models.Submission{
			ID:               row.id,
			TemplateID:       "tpl-recommendation",
			OwnerID:          row.owner,
			Title:            "Letter " + row.id,
			Status:           row.status,
			SubmittedFileRef: row.owner + "/" + row.id + ".pdf",
			CreatedAt:        base.Add(time.Duration(i) * time.Minute),
			UpdatedAt:        base.Add(time.Duration(i) * time.Minute),
		}))
	}
	return store
}

func TestRequesterViewOwnSubmissionsAllStatuses(t *testing.T) {
	svc := NewViewService(seedViewStore(t))
	view, err := svc.ForSubject(context.Background(), models.Subject{ID: "req-1", Role: models.RoleRequester})
	require.NoError(t, err)

	require.Len(t, view.Submissions, 3)
	for _, sub := range view.Submissions {
		assert.Equal(t, "req-1", sub.OwnerID)
	}
	// newest first
	assert.Equal(t, "s3", view.Submissions[0].ID)
	assert.Equal(t, 0, view.Actionable)
	assert.Equal(t, 1, view.Counts[models.StatusSubmitted])
	assert.Equal(t, 1, view.Counts[models.StatusReviewedByReviewer])
	assert.Equal(t, 1, view.Counts[models.StatusApprovedByReviewer])
}

func TestReviewerViewOnlyActionable(t *testing.T) {
	svc := NewViewService(seedViewStore(t))
	view, err := svc.ForSubject(context.Background(), models.Subject{ID: "rev-1", Role: models.RoleReviewer})
	require.NoError(t, err)

	require.Len(t, view.Submissions, 2)
	for _, sub := range view.Submissions {
		assert.Contains(t, []models.Status{models.StatusSubmitted, models.StatusReviewedByReviewer}, sub.Status)
	}
	assert.Equal(t, 2, view.Actionable)
}

func TestApproverViewActionablePlusHistory(t *testing.T) {
	svc := NewViewService(seedViewStore(t))
	view, err := svc.ForSubject(context.Background(), models.Subject{ID: "app-1", Role: models.RoleApprover})
	require.NoError(t, err)

	statuses := map[models.Status]bool{}
	for _, sub := range view.Submissions {
		statuses[sub.Status] = true
	}
	assert.True(t, statuses[models.StatusApprovedByReviewer])
	assert.True(t, statuses[models.StatusReviewedByApprover])
	assert.True(t, statuses[models.StatusCompleted])
	assert.False(t, statuses[models.StatusSubmitted])
	assert.False(t, statuses[models.StatusRejectedByReviewer])

	// Counters derive from the same list, so their sum matches its length.
	total := 0
	for _, n := range view.Counts {
		total += n
	}
	assert.Equal(t, len(view.Submissions), total)
	assert.Equal(t, 2, view.Actionable)
}

func TestCountsByStatusPureAggregation(t *testing.T) {
	subs := []models.Submission{
		{Status: models.StatusSubmitted},
		{Status: models.StatusSubmitted},
		{Status: models.StatusCompleted},
	}
	counts := CountsByStatus(subs)
	assert.Equal(t, 2, counts[models.StatusSubmitted])
	assert.Equal(t, 1, counts[models.StatusCompleted])
	assert.Equal(t, 0, counts[models.StatusRejectedByApprover])

	assert.Empty(t, CountsByStatus(nil))
}
