package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/draftshield/draftshield/pkg/models"
)

// DraftStore persists drafts. DraftService writes through this interface so
// tests can substitute an in-memory store.
type DraftStore interface {
	Create(ctx context.Context, draft *models.Draft) error
	Update(ctx context.Context, draft *models.Draft) error
	Get(ctx context.Context, id string) (*models.Draft, error)
	List(ctx context.Context, filters models.DraftFilters) ([]*models.Draft, error)
}

// SQLDraftStore is the PostgreSQL-backed DraftStore.
type SQLDraftStore struct {
	db *sql.DB
}

// NewSQLDraftStore creates a new SQLDraftStore.
func NewSQLDraftStore(db *sql.DB) *SQLDraftStore {
	if db == nil {
		panic("NewSQLDraftStore: db must not be nil")
	}
	return &SQLDraftStore{db: db}
}

const draftColumns = `id, student_id, document_type, instructions, source_text,
	masked_prompt, content, status, error_message, output_leak_hits,
	created_at, completed_at`

// Create inserts a new draft row.
func (s *SQLDraftStore) Create(ctx context.Context, draft *models.Draft) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO drafts (id, student_id, document_type, instructions, source_text,
			masked_prompt, content, status, error_message, output_leak_hits,
			created_at, completed_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		draft.ID, draft.StudentID, draft.DocumentType, draft.Instructions,
		draft.SourceText, draft.MaskedPrompt, draft.Content, draft.Status,
		draft.ErrorMessage, draft.OutputLeakHits, draft.CreatedAt, draft.CompletedAt)
	if err != nil {
		return fmt.Errorf("failed to create draft: %w", err)
	}
	return nil
}

// Update rewrites the mutable outcome fields of a draft row.
func (s *SQLDraftStore) Update(ctx context.Context, draft *models.Draft) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE drafts
		SET masked_prompt = $2, content = $3, status = $4, error_message = $5,
			output_leak_hits = $6, completed_at = $7
		WHERE id = $1`,
		draft.ID, draft.MaskedPrompt, draft.Content, draft.Status,
		draft.ErrorMessage, draft.OutputLeakHits, draft.CompletedAt)
	if err != nil {
		return fmt.Errorf("failed to update draft: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// Get returns one draft by ID.
func (s *SQLDraftStore) Get(ctx context.Context, id string) (*models.Draft, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+draftColumns+` FROM drafts WHERE id = $1`, id)

	draft, err := scanDraft(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get draft: %w", err)
	}
	return draft, nil
}

// List returns drafts matching the filters, newest first.
func (s *SQLDraftStore) List(ctx context.Context, filters models.DraftFilters) ([]*models.Draft, error) {
	query := `SELECT ` + draftColumns + ` FROM drafts WHERE 1=1`
	args := []any{}

	if filters.StudentID != "" {
		args = append(args, filters.StudentID)
		query += fmt.Sprintf(" AND student_id = $%d", len(args))
	}
	if filters.Status != "" {
		args = append(args, filters.Status)
		query += fmt.Sprintf(" AND status = $%d", len(args))
	}

	limit := filters.Limit
	if limit <= 0 {
		limit = 50
	}
	if limit > 200 {
		limit = 200
	}
	args = append(args, limit)
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d", len(args))

	if filters.Offset > 0 {
		args = append(args, filters.Offset)
		query += fmt.Sprintf(" OFFSET $%d", len(args))
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list drafts: %w", err)
	}
	defer rows.Close()

	var drafts []*models.Draft
	for rows.Next() {
		draft, err := scanDraft(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan draft: %w", err)
		}
		drafts = append(drafts, draft)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate drafts: %w", err)
	}

	return drafts, nil
}

func scanDraft(row scanner) (*models.Draft, error) {
	var draft models.Draft
	err := row.Scan(
		&draft.ID, &draft.StudentID, &draft.DocumentType, &draft.Instructions,
		&draft.SourceText, &draft.MaskedPrompt, &draft.Content, &draft.Status,
		&draft.ErrorMessage, &draft.OutputLeakHits, &draft.CreatedAt,
		&draft.CompletedAt)
	if err != nil {
		return nil, err
	}
	return &draft, nil
}
