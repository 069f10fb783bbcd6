package workflow

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"letterflow/internal/models"
)

var allRoles = []models.Role{models.RoleRequester, models.RoleReviewer, models.RoleApprover}

var allActions = []Action{ActionCreate, ActionMarkInReview, ActionApprove, ActionReject}

func TestDecideLegalTransitions(t *testing.T) {
	cases := []struct {
		from   models.Status
		role   models.Role
		action Action
		to     models.Status
	}{
		{"", models.RoleRequester, ActionCreate, models.StatusSubmitted},
		{models.StatusSubmitted, models.RoleReviewer, ActionMarkInReview, models.StatusReviewedByReviewer},
		{models.StatusReviewedByReviewer, models.RoleReviewer, ActionApprove, models.StatusApprovedByReviewer},
		{models.StatusReviewedByReviewer, models.RoleReviewer, ActionReject, models.StatusRejectedByReviewer},
		{models.StatusApprovedByReviewer, models.RoleApprover, ActionMarkInReview, models.StatusReviewedByApprover},
		{models.StatusReviewedByApprover, models.RoleApprover, ActionApprove, models.StatusCompleted},
		{models.StatusReviewedByApprover, models.RoleApprover, ActionReject, models.StatusRejectedByApprover},
	}

	for _, tc := range cases {
		patch, err := Decide(tc.from, tc.role, tc.action, Input{ActorID: "actor-1", Notes: "looks fine"})
		require.NoError(t, err, "%s/%s/%s", tc.from, tc.role, tc.action)
		assert.Equal(t, tc.from, patch.From)
		assert.Equal(t, tc.to, patch.To)
		assert.Equal(t, tc.role, patch.Stage)
		assert.Equal(t, "actor-1", patch.ActorID)
		assert.Equal(t, "looks fine", patch.Notes)
		assert.False(t, patch.ActedAt.IsZero())
	}
}

// Every triple outside the table is rejected, with no patch produced.
func TestDecideRejectsEverythingElse(t *testing.T) {
	legal := map[[3]string]bool{
		{"", string(models.RoleRequester), string(ActionCreate)}:                                            true,
		{string(models.StatusSubmitted), string(models.RoleReviewer), string(ActionMarkInReview)}:           true,
		{string(models.StatusReviewedByReviewer), string(models.RoleReviewer), string(ActionApprove)}:       true,
		{string(models.StatusReviewedByReviewer), string(models.RoleReviewer), string(ActionReject)}:        true,
		{string(models.StatusApprovedByReviewer), string(models.RoleApprover), string(ActionMarkInReview)}:  true,
		{string(models.StatusReviewedByApprover), string(models.RoleApprover), string(ActionApprove)}:       true,
		{string(models.StatusReviewedByApprover), string(models.RoleApprover), string(ActionReject)}:        true,
	}

	statuses := append([]models.Status{""}, models.Statuses...)
	for _, from := range statuses {
		for _, role := range allRoles {
			for _, action := range allActions {
				if legal[[3]string{string(from), string(role), string(action)}] {
					continue
				}
				patch, err := Decide(from, role, action, Input{ActorID: "actor-1"})
				assert.ErrorIs(t, err, ErrInvalidTransition, "%s/%s/%s", from, role, action)
				assert.Equal(t, Patch{}, patch)
			}
		}
	}
}

func TestDecideTerminalStatesAreFinal(t *testing.T) {
	for _, from := range []models.Status{models.StatusRejectedByReviewer, models.StatusRejectedByApprover, models.StatusCompleted} {
		for _, role := range allRoles {
			for _, action := range allActions {
				_, err := Decide(from, role, action, Input{})
				assert.ErrorIs(t, err, ErrInvalidTransition)
			}
		}
	}
}

func TestDecideRejectsUnknownStatus(t *testing.T) {
	_, err := Decide("limbo", models.RoleReviewer, ActionApprove, Input{})
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestDecideRequesterCannotAdvanceOwnSubmission(t *testing.T) {
	for _, from := range models.Statuses {
		for _, action := range allActions {
			_, err := Decide(from, models.RoleRequester, action, Input{ActorID: "owner"})
			assert.ErrorIs(t, err, ErrInvalidTransition, "%s/%s", from, action)
		}
	}
}

func TestDecideUsesSuppliedTimestamp(t *testing.T) {
	at := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	patch, err := Decide(models.StatusSubmitted, models.RoleReviewer, ActionMarkInReview, Input{ActorID: "rev-1", Now: at})
	require.NoError(t, err)
	assert.Equal(t, at, patch.ActedAt)
}

func TestStatusTerminal(t *testing.T) {
	assert.True(t, models.StatusCompleted.Terminal())
	assert.True(t, models.StatusRejectedByReviewer.Terminal())
	assert.True(t, models.StatusRejectedByApprover.Terminal())
	assert.False(t, models.StatusSubmitted.Terminal())
	assert.False(t, models.StatusReviewedByApprover.Terminal())
}
