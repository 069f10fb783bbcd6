// Package workflow holds the approval state machine: the closed transition
// table and the pure decision function that gates every mutation of a
// submission. Nothing here touches storage; an accepted decision is a Patch
// the store applies atomically, a rejected one is side-effect free.
package workflow

import (
	"fmt"
	"time"

	"letterflow/internal/models"
)

// Action is a request to move a submission through the workflow.
type Action string

const (
	ActionCreate       Action = "create"
	ActionMarkInReview Action = "mark-in-review"
	ActionApprove      Action = "approve"
	ActionReject       Action = "reject"
)

func (a Action) Valid() bool {
	switch a {
	case ActionCreate, ActionMarkInReview, ActionApprove, ActionReject:
		return true
	}
	return false
}

type transitionKey struct {
	from   models.Status
	role   models.Role
	action Action
}

// transitions is the whole workflow in one place. The zero Status stands
// for "no submission yet". Any triple not listed is rejected.
var transitions = map[transitionKey]models.Status{
	{"", models.RoleRequester, ActionCreate}:                                    models.StatusSubmitted,
	{models.StatusSubmitted, models.RoleReviewer, ActionMarkInReview}:           models.StatusReviewedByReviewer,
	{models.StatusReviewedByReviewer, models.RoleReviewer, ActionApprove}:       models.StatusApprovedByReviewer,
	{models.StatusReviewedByReviewer, models.RoleReviewer, ActionReject}:        models.StatusRejectedByReviewer,
	{models.StatusApprovedByReviewer, models.RoleApprover, ActionMarkInReview}:  models.StatusReviewedByApprover,
	{models.StatusReviewedByApprover, models.RoleApprover, ActionApprove}:       models.StatusCompleted,
	{models.StatusReviewedByApprover, models.RoleApprover, ActionReject}:        models.StatusRejectedByApprover,
}

// Input carries the actor-supplied data an accepted transition must record.
type Input struct {
	ActorID string
	Notes   string
	Now     time.Time
}

// Patch is the only way a submission changes after creation. From is the
// expected pre-state; the store compare-and-swaps on it so two racing
// actors cannot both win. Stage names which side's audit fields to write.
type Patch struct {
	From    models.Status
	To      models.Status
	Stage   models.Role
	ActorID string
	Notes   string
	ActedAt time.Time

	// ApprovedFileRef is filled by the caller only when To is completed,
	// after the signed artifact has been derived from the submitted one.
	ApprovedFileRef string
}

// Decide resolves one (current status, role, action) triple against the
// transition table. It is a pure function: a rejection changes nothing and
// carries the specific reason.
func Decide(current models.Status, role models.Role, action Action, in Input) (Patch, error) {
	if current != "" && !current.Valid() {
		return Patch{}, fmt.Errorf("%w: unknown status %q", ErrInvalidTransition, current)
	}
	next, ok := transitions[transitionKey{current, role, action}]
	if !ok {
		if current.Terminal() {
			return Patch{}, fmt.Errorf("%w: submission is already %s", ErrInvalidTransition, current)
		}
		if current == "" {
			return Patch{}, fmt.Errorf("%w: %s may not %s", ErrInvalidTransition, role, action)
		}
		return Patch{}, fmt.Errorf("%w: %s may not %s a submission in status %s", ErrInvalidTransition, role, action, current)
	}

	now := in.Now
	if now.IsZero() {
		now = time.Now().UTC()
	}
	return Patch{
		From:    current,
		To:      next,
		Stage:   role,
		ActorID: in.ActorID,
		Notes:   in.Notes,
		ActedAt: now,
	}, nil
}
