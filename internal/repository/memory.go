package repository

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"letterflow/internal/models"
	"letterflow/internal/workflow"
)

// MemorySubmissionStore keeps submissions in a map with the same
// compare-and-swap semantics as the Postgres store. It backs the test
// suites and small single-process deployments.
type MemorySubmissionStore struct {
	mu   sync.RWMutex
	subs map[string]models.Submission
}

func NewMemorySubmissionStore() *MemorySubmissionStore {
	return &MemorySubmissionStore{subs: map[string]models.Submission{}}
}

func (s *MemorySubmissionStore) Create(ctx context.Context, sub *models.Submission) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.subs[sub.ID]; exists {
		return fmt.Errorf("%w: duplicate submission id %s", ErrStorageUnavailable, sub.ID)
	}
	s.subs[sub.ID] = *sub
	return nil
}

func (s *MemorySubmissionStore) Get(ctx context.Context, id string) (*models.Submission, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sub, ok := s.subs[id]
	if !ok {
		return nil, workflow.ErrNotFound
	}
	return &sub, nil
}

func (s *MemorySubmissionStore) ListByFilter(ctx context.Context, f Filter) ([]models.Submission, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	subs := []models.Submission{}
	for _, sub := range s.subs {
		if f.OwnerID != "" && sub.OwnerID != f.OwnerID {
			continue
		}
		if len(f.Statuses) > 0 && !statusIn(sub.Status, f.Statuses) {
			continue
		}
		subs = append(subs, sub)
	}
	sort.Slice(subs, func(i, j int) bool {
		return subs[i].CreatedAt.After(subs[j].CreatedAt)
	})
	return subs, nil
}

func (s *MemorySubmissionStore) ApplyTransition(ctx context.Context, id string, patch workflow.Patch) (*models.Submission, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sub, ok := s.subs[id]
	if !ok {
		return nil, workflow.ErrNotFound
	}
	if sub.Status != patch.From {
		return nil, fmt.Errorf("%w: status is %s, expected %s", workflow.ErrInvalidTransition, sub.Status, patch.From)
	}

	sub.Status = patch.To
	sub.UpdatedAt = patch.ActedAt
	actedAt := patch.ActedAt
	switch patch.Stage {
	case models.RoleReviewer:
		sub.ReviewerNotes = patch.Notes
		sub.ReviewerID = patch.ActorID
		sub.ReviewerActedAt = &actedAt
	case models.RoleApprover:
		sub.ApproverNotes = patch.Notes
		sub.ApproverID = patch.ActorID
		sub.ApproverActedAt = &actedAt
		if patch.ApprovedFileRef != "" {
			sub.ApprovedFileRef = patch.ApprovedFileRef
		}
	default:
		return nil, fmt.Errorf("%w: no stage for role %q", workflow.ErrInvalidTransition, patch.Stage)
	}

	s.subs[id] = sub
	return &sub, nil
}

func statusIn(status models.Status, set []models.Status) bool {
	for _, s := range set {
		if status == s {
			return true
		}
	}
	return false
}

// MemoryTemplateStore serves seeded templates from memory.
type MemoryTemplateStore struct {
	mu        sync.RWMutex
	templates map[string]models.Template
}

func NewMemoryTemplateStore() *MemoryTemplateStore {
	return &MemoryTemplateStore{templates: map[string]models.Template{}}
}

func (s *MemoryTemplateStore) List(ctx context.Context) ([]models.Template, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	templates := []models.Template{}
	for _, t := range s.templates {
		templates = append(templates, t)
	}
	sort.Slice(templates, func(i, j int) bool { return templates[i].Name < templates[j].Name })
	return templates, nil
}

func (s *MemoryTemplateStore) Get(ctx context.Context, id string) (*models.Template, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, ok := s.templates[id]
	if !ok {
		return nil, fmt.Errorf("%w: template %s", workflow.ErrNotFound, id)
	}
	return &t, nil
}

func (s *MemoryTemplateStore) Seed(ctx context.Context, templates []models.Template) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, t := range templates {
		if _, exists := s.templates[t.ID]; !exists {
			s.templates[t.ID] = t
		}
	}
	return nil
}

// MemoryUserStore keeps accounts in memory for tests.
type MemoryUserStore struct {
	mu    sync.RWMutex
	users map[string]models.User
}

func NewMemoryUserStore() *MemoryUserStore {
	return &MemoryUserStore{users: map[string]models.User{}}
}

func (s *MemoryUserStore) Create(ctx context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[user.ID] = *user
	return nil
}

func (s *MemoryUserStore) FindByID(ctx context.Context, id string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (s *MemoryUserStore) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if u.Username == username {
			u := u
			return &u, nil
		}
	}
	return nil, nil
}
