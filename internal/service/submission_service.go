package service

import (
	"context"
	"fmt"
	"path"
	"time"

	"github.com/google/uuid"

	"letterflow/internal/blob"
	"letterflow/internal/models"
	"letterflow/internal/notify"
	"letterflow/internal/repository"
	"letterflow/internal/workflow"
)

// SubmissionService drives submissions through the approval workflow. Every
// mutation after creation goes decision-first through workflow.Decide and
// lands in the store as a compare-and-swap patch.
type SubmissionService struct {
	subs      repository.SubmissionStore
	templates repository.TemplateStore
	blobs     *blob.Store
	notifier  *notify.Notifier
}

func NewSubmissionService(subs repository.SubmissionStore, templates repository.TemplateStore, blobs *blob.Store, notifier *notify.Notifier) *SubmissionService {
	return &SubmissionService{subs: subs, templates: templates, blobs: blobs, notifier: notifier}
}

// Create validates the draft, stores the artifact, and inserts the
// submission in status submitted. Only requesters may create.
func (s *SubmissionService) Create(ctx context.Context, subject models.Subject, templateID, title, description, filename string, data []byte) (*models.Submission, error) {
	if _, err := workflow.Decide("", subject.Role, workflow.ActionCreate, workflow.Input{ActorID: subject.ID}); err != nil {
		return nil, err
	}
	if title == "" {
		return nil, fmt.Errorf("%w: title is required", workflow.ErrValidation)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: document file is required", workflow.ErrValidation)
	}
	if _, err := s.templates.Get(ctx, templateID); err != nil {
		return nil, fmt.Errorf("%w: unknown template %s", workflow.ErrValidation, templateID)
	}

	key := path.Join(subject.ID, uuid.NewString()+"-"+path.Base(filename))
	ref, err := s.blobs.Put(ctx, key, data)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	sub := &models.Submission{
		ID:               uuid.NewString(),
		TemplateID:       templateID,
		OwnerID:          subject.ID,
		Title:            title,
		Description:      description,
		Status:           models.StatusSubmitted,
		SubmittedFileRef: ref,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := s.subs.Create(ctx, sub); err != nil {
		return nil, err
	}

	s.notifier.Emit(notify.Event{
		Kind:         notify.KindTransition,
		SubmissionID: sub.ID,
		Message:      fmt.Sprintf("%q submitted", sub.Title),
	})
	return sub, nil
}

// Transition applies one workflow action on behalf of the subject. The
// decision is made against the status read here; a concurrent actor that
// commits first invalidates this patch at the store and the call fails
// with the specific reason.
func (s *SubmissionService) Transition(ctx context.Context, subject models.Subject, id string, action workflow.Action, notes string) (*models.Submission, error) {
	sub, err := s.subs.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	patch, err := workflow.Decide(sub.Status, subject.Role, action, workflow.Input{
		ActorID: subject.ID,
		Notes:   notes,
		Now:     time.Now().UTC(),
	})
	if err != nil {
		s.notifier.Emit(notify.Event{
			Kind:         notify.KindTransitionDenied,
			SubmissionID: id,
			Message:      err.Error(),
		})
		return nil, err
	}

	// The signed artifact exists exactly from completion onward; derive it
	// from the submitted file before committing the status change.
	if patch.To == models.StatusCompleted {
		destKey := path.Join("approved", sub.SubmittedFileRef)
		ref, err := s.blobs.Copy(ctx, sub.SubmittedFileRef, destKey)
		if err != nil {
			return nil, err
		}
		patch.ApprovedFileRef = ref
	}

	updated, err := s.subs.ApplyTransition(ctx, id, patch)
	if err != nil {
		s.notifier.Emit(notify.Event{
			Kind:         notify.KindTransitionDenied,
			SubmissionID: id,
			Message:      err.Error(),
		})
		return nil, err
	}

	s.notifier.Emit(notify.Event{
		Kind:         notify.KindTransition,
		SubmissionID: id,
		Message:      fmt.Sprintf("%q moved to %s", updated.Title, updated.Status),
	})
	return updated, nil
}

// Get returns one submission, scoped by role: a requester sees only their
// own; reviewers and approvers see everything.
func (s *SubmissionService) Get(ctx context.Context, subject models.Subject, id string) (*models.Submission, error) {
	sub, err := s.subs.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if subject.Role == models.RoleRequester && sub.OwnerID != subject.ID {
		return nil, workflow.ErrNotFound
	}
	return sub, nil
}

// Download streams the submitted or approved artifact for a visible
// submission. kind is "submitted" or "approved".
func (s *SubmissionService) Download(ctx context.Context, subject models.Subject, id, kind string) ([]byte, string, error) {
	sub, err := s.Get(ctx, subject, id)
	if err != nil {
		return nil, "", err
	}
	var ref string
	switch kind {
	case "submitted":
		ref = sub.SubmittedFileRef
	case "approved":
		ref = sub.ApprovedFileRef
		if ref == "" {
			return nil, "", fmt.Errorf("%w: no approved artifact yet", workflow.ErrNotFound)
		}
	default:
		return nil, "", fmt.Errorf("%w: unknown artifact kind %q", workflow.ErrValidation, kind)
	}
	data, err := s.blobs.Get(ctx, ref)
	if err != nil {
		return nil, "", err
	}
	return data, path.Base(ref), nil
}
