package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"letterflow/internal/models"
	"letterflow/internal/workflow"
)

// ErrStorageUnavailable wraps collaborator I/O failures. The core
// propagates it; retry policy belongs to the caller.
var ErrStorageUnavailable = errors.New("storage unavailable")

const submissionColumns = `id, template_id, owner_id, title, description, status,
	submitted_file_ref, approved_file_ref,
	reviewer_notes, reviewer_id, reviewer_acted_at,
	approver_notes, approver_id, approver_acted_at,
	created_at, updated_at`

type SubmissionRepo struct {
	db *pgxpool.Pool
}

func NewSubmissionRepo(db *pgxpool.Pool) *SubmissionRepo {
	return &SubmissionRepo{db: db}
}

func (r *SubmissionRepo) Create(ctx context.Context, sub *models.Submission) error {
	_, err := r.db.Exec(ctx, `INSERT INTO submissions
		(id, template_id, owner_id, title, description, status, submitted_file_ref, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		sub.ID, sub.TemplateID, sub.OwnerID, sub.Title, sub.Description,
		sub.Status, sub.SubmittedFileRef, sub.CreatedAt, sub.UpdatedAt)
	if err != nil {
		return fmt.Errorf("%w: insert submission: %v", ErrStorageUnavailable, err)
	}
	return nil
}

func (r *SubmissionRepo) Get(ctx context.Context, id string) (*models.Submission, error) {
	row := r.db.QueryRow(ctx, `SELECT `+submissionColumns+` FROM submissions WHERE id = $1`, id)
	sub, err := scanSubmission(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, workflow.ErrNotFound
		}
		return nil, fmt.Errorf("%w: get submission: %v", ErrStorageUnavailable, err)
	}
	return sub, nil
}

func (r *SubmissionRepo) ListByFilter(ctx context.Context, f Filter) ([]models.Submission, error) {
	query := `SELECT ` + submissionColumns + ` FROM submissions`
	args := []any{}
	where := ""
	if len(f.Statuses) > 0 {
		statuses := make([]string, len(f.Statuses))
		for i, s := range f.Statuses {
			statuses[i] = string(s)
		}
		args = append(args, statuses)
		where = fmt.Sprintf(" WHERE status = ANY($%d)", len(args))
	}
	if f.OwnerID != "" {
		args = append(args, f.OwnerID)
		if where == "" {
			where = fmt.Sprintf(" WHERE owner_id = $%d", len(args))
		} else {
			where += fmt.Sprintf(" AND owner_id = $%d", len(args))
		}
	}
	query += where + ` ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: list submissions: %v", ErrStorageUnavailable, err)
	}
	defer rows.Close()

	subs := []models.Submission{}
	for rows.Next() {
		sub, err := scanSubmission(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scan submission: %v", ErrStorageUnavailable, err)
		}
		subs = append(subs, *sub)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: list submissions: %v", ErrStorageUnavailable, err)
	}
	return subs, nil
}

// ApplyTransition writes the patch atomically, guarded by the expected
// pre-status. A concurrent actor that raced ahead leaves status != From and
// the update matches zero rows; the loser gets ErrInvalidTransition.
func (r *SubmissionRepo) ApplyTransition(ctx context.Context, id string, patch workflow.Patch) (*models.Submission, error) {
	var row pgx.Row
	switch patch.Stage {
	case models.RoleReviewer:
		row = r.db.QueryRow(ctx, `UPDATE submissions
			SET status = $1, reviewer_notes = $2, reviewer_id = $3, reviewer_acted_at = $4, updated_at = $4
			WHERE id = $5 AND status = $6
			RETURNING `+submissionColumns,
			patch.To, patch.Notes, patch.ActorID, patch.ActedAt, id, patch.From)
	case models.RoleApprover:
		row = r.db.QueryRow(ctx, `UPDATE submissions
			SET status = $1, approver_notes = $2, approver_id = $3, approver_acted_at = $4, updated_at = $4,
			    approved_file_ref = CASE WHEN $5 = '' THEN approved_file_ref ELSE $5 END
			WHERE id = $6 AND status = $7
			RETURNING `+submissionColumns,
			patch.To, patch.Notes, patch.ActorID, patch.ActedAt, patch.ApprovedFileRef, id, patch.From)
	default:
		return nil, fmt.Errorf("%w: no stage for role %q", workflow.ErrInvalidTransition, patch.Stage)
	}

	sub, err := scanSubmission(row)
	if err == nil {
		return sub, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("%w: apply transition: %v", ErrStorageUnavailable, err)
	}

	// Zero rows: either the id is unknown or the status moved underneath us.
	current, getErr := r.Get(ctx, id)
	if getErr != nil {
		return nil, getErr
	}
	return nil, fmt.Errorf("%w: status is %s, expected %s", workflow.ErrInvalidTransition, current.Status, patch.From)
}

func scanSubmission(row pgx.Row) (*models.Submission, error) {
	var sub models.Submission
	err := row.Scan(
		&sub.ID, &sub.TemplateID, &sub.OwnerID, &sub.Title, &sub.Description, &sub.Status,
		&sub.SubmittedFileRef, &sub.ApprovedFileRef,
		&sub.ReviewerNotes, &sub.ReviewerID, &sub.ReviewerActedAt,
		&sub.ApproverNotes, &sub.ApproverID, &sub.ApproverActedAt,
		&sub.CreatedAt, &sub.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &sub, nil
}
