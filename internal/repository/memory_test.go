package repository

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"letterflow/internal/models"
	"letterflow/internal/workflow"
)

func newSubmission(id, owner string, status models.Status, createdAt time.Time) *models.Submission {
	return &models.Submission{
		ID:               id,
		TemplateID:       "tpl-recommendation",
		OwnerID:          owner,
		Title:            "Letter " + id,
		Status:           status,
		SubmittedFileRef: owner + "/" + id + ".pdf",
		CreatedAt:        createdAt,
		UpdatedAt:        createdAt,
	}
}

func TestMemoryStoreCreateGetRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewMemorySubmissionStore()

	sub := newSubmission("s1", "owner-1", models.StatusSubmitted, time.Now().UTC())
	require.NoError(t, store.Create(ctx, sub))

	got, err := store.Get(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, models.StatusSubmitted, got.Status)
	assert.Empty(t, got.ReviewerID)
	assert.Empty(t, got.ApproverID)
	assert.Nil(t, got.ReviewerActedAt)
	assert.Empty(t, got.ApprovedFileRef)

	_, err = store.Get(ctx, "missing")
	assert.ErrorIs(t, err, workflow.ErrNotFound)
}

func TestMemoryStoreListByFilter(t *testing.T) {
	ctx := context.Background()
	store := NewMemorySubmissionStore()

	base := time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC)
	require.NoError(t, store.Create(ctx, newSubmission("s1", "owner-1", models.StatusSubmitted, base)))
	require.NoError(t, store.Create(ctx, newSubmission("s2", "owner-1", models.StatusCompleted, base.Add(time.Hour))))
	require.NoError(t, store.Create(ctx, newSubmission("s3", "owner-2", models.StatusSubmitted, base.Add(2*time.Hour))))

	byOwner, err := store.ListByFilter(ctx, Filter{OwnerID: "owner-1"})
	require.NoError(t, err)
	require.Len(t, byOwner, 2)
	// newest first
	assert.Equal(t, "s2", byOwner[0].ID)
	assert.Equal(t, "s1", byOwner[1].ID)

	byStatus, err := store.ListByFilter(ctx, Filter{Statuses: []models.Status{models.StatusSubmitted}})
	require.NoError(t, err)
	require.Len(t, byStatus, 2)
	assert.Equal(t, "s3", byStatus[0].ID)

	both, err := store.ListByFilter(ctx, Filter{Statuses: []models.Status{models.StatusSubmitted}, OwnerID: "owner-2"})
	require.NoError(t, err)
	require.Len(t, both, 1)
	assert.Equal(t, "s3", both[0].ID)
}

func TestMemoryStoreApplyTransitionStaleStatus(t *testing.T) {
	ctx := context.Background()
	store := NewMemorySubmissionStore()
	require.NoError(t, store.Create(ctx, newSubmission("s1", "owner-1", models.StatusSubmitted, time.Now().UTC())))

	patch, err := workflow.Decide(models.StatusSubmitted, models.RoleReviewer, workflow.ActionMarkInReview,
		workflow.Input{ActorID: "rev-1", Notes: "taking it"})
	require.NoError(t, err)

	updated, err := store.ApplyTransition(ctx, "s1", patch)
	require.NoError(t, err)
	assert.Equal(t, models.StatusReviewedByReviewer, updated.Status)
	assert.Equal(t, "rev-1", updated.ReviewerID)
	assert.Equal(t, "taking it", updated.ReviewerNotes)
	require.NotNil(t, updated.ReviewerActedAt)

	// Replaying the same patch sees a stale pre-status.
	_, err = store.ApplyTransition(ctx, "s1", patch)
	assert.ErrorIs(t, err, workflow.ErrInvalidTransition)

	// The record is unchanged by the rejected replay.
	got, err := store.Get(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, *updated, *got)

	_, err = store.ApplyTransition(ctx, "missing", patch)
	assert.ErrorIs(t, err, workflow.ErrNotFound)
}

// Two actors race the same transition: exactly one wins.
func TestMemoryStoreApplyTransitionConcurrentRace(t *testing.T) {
	ctx := context.Background()
	store := NewMemorySubmissionStore()
	require.NoError(t, store.Create(ctx, newSubmission("s1", "owner-1", models.StatusSubmitted, time.Now().UTC())))

	patchA, err := workflow.Decide(models.StatusSubmitted, models.RoleReviewer, workflow.ActionMarkInReview, workflow.Input{ActorID: "rev-a"})
	require.NoError(t, err)
	patchB, err := workflow.Decide(models.StatusSubmitted, models.RoleReviewer, workflow.ActionMarkInReview, workflow.Input{ActorID: "rev-b"})
	require.NoError(t, err)

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i, patch := range []workflow.Patch{patchA, patchB} {
		wg.Add(1)
		go func(i int, p workflow.Patch) {
			defer wg.Done()
			_, errs[i] = store.ApplyTransition(ctx, "s1", p)
		}(i, patch)
	}
	wg.Wait()

	winners := 0
	for _, err := range errs {
		if err == nil {
			winners++
		} else {
			assert.ErrorIs(t, err, workflow.ErrInvalidTransition)
		}
	}
	assert.Equal(t, 1, winners)

	got, err := store.Get(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, models.StatusReviewedByReviewer, got.Status)
}
