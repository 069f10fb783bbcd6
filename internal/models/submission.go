package models

import "time"

// Status is the workflow position of a submission. The set is closed;
// every accepted transition moves strictly forward through it.
type Status string

const (
	StatusSubmitted          Status = "submitted"
	StatusReviewedByReviewer Status = "reviewed_by_reviewer"
	StatusApprovedByReviewer Status = "approved_by_reviewer"
	StatusRejectedByReviewer Status = "rejected_by_reviewer"
	StatusReviewedByApprover Status = "reviewed_by_approver"
	StatusRejectedByApprover Status = "rejected_by_approver"
	StatusCompleted          Status = "completed"
)

// Statuses lists every member of the closed status set.
var Statuses = []Status{
	StatusSubmitted,
	StatusReviewedByReviewer,
	StatusApprovedByReviewer,
	StatusRejectedByReviewer,
	StatusReviewedByApprover,
	StatusRejectedByApprover,
	StatusCompleted,
}

func (s Status) Valid() bool {
	for _, v := range Statuses {
		if s == v {
			return true
		}
	}
	return false
}

// Terminal reports whether no transition leads out of s.
func (s Status) Terminal() bool {
	switch s {
	case StatusRejectedByReviewer, StatusRejectedByApprover, StatusCompleted:
		return true
	}
	return false
}

type Submission struct {
	ID               string     `json:"id"`
	TemplateID       string     `json:"templateId"`
	OwnerID          string     `json:"ownerId"`
	Title            string     `json:"title"`
	Description      string     `json:"description,omitempty"`
	Status           Status     `json:"status"`
	SubmittedFileRef string     `json:"submittedFileRef"`
	ApprovedFileRef  string     `json:"approvedFileRef,omitempty"`
	ReviewerNotes    string     `json:"reviewerNotes,omitempty"`
	ReviewerID       string     `json:"reviewerId,omitempty"`
	ReviewerActedAt  *time.Time `json:"reviewerActedAt,omitempty"`
	ApproverNotes    string     `json:"approverNotes,omitempty"`
	ApproverID       string     `json:"approverId,omitempty"`
	ApproverActedAt  *time.Time `json:"approverActedAt,omitempty"`
	CreatedAt        time.Time  `json:"createdAt"`
	UpdatedAt        time.Time  `json:"updatedAt"`
}
