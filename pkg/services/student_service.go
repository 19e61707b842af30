package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/draftshield/draftshield/pkg/models"
)

// StudentInput contains the registry fields supplied by the intake form.
type StudentInput struct {
	FullName        string `json:"full_name"`
	DateOfBirth     string `json:"date_of_birth"`
	StudentID       string `json:"student_id"`
	School          string `json:"school"`
	Grade           string `json:"grade"`
	GuardianName    string `json:"guardian_name"`
	GuardianContact string `json:"guardian_contact"`
	Address         string `json:"address"`
}

// StudentService handles student registry records. It stores plain values;
// redaction happens at the drafting boundary, never at rest (storage
// encryption is outside this service).
type StudentService struct {
	db *sql.DB
}

// NewStudentService creates a new StudentService.
func NewStudentService(db *sql.DB) *StudentService {
	if db == nil {
		panic("NewStudentService: db must not be nil")
	}
	return &StudentService{db: db}
}

const studentColumns = `id, full_name, date_of_birth, student_id, school, grade,
	guardian_name, guardian_contact, address, created_at, updated_at`

// Create inserts a new registry record.
func (s *StudentService) Create(ctx context.Context, input StudentInput) (*models.StudentRecord, error) {
	if input.FullName == "" {
		return nil, NewValidationError("full_name", "full name is required")
	}

	now := time.Now().UTC()
	rec := &models.StudentRecord{
		ID:              uuid.New().String(),
		FullName:        input.FullName,
		DateOfBirth:     input.DateOfBirth,
		StudentID:       input.StudentID,
		School:          input.School,
		Grade:           input.Grade,
		GuardianName:    input.GuardianName,
		GuardianContact: input.GuardianContact,
		Address:         input.Address,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO students (id, full_name, date_of_birth, student_id, school, grade,
			guardian_name, guardian_contact, address, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		rec.ID, rec.FullName, rec.DateOfBirth, rec.StudentID, rec.School, rec.Grade,
		rec.GuardianName, rec.GuardianContact, rec.Address, rec.CreatedAt, rec.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create student: %w", err)
	}

	return rec, nil
}

// Get returns one registry record by ID.
func (s *StudentService) Get(ctx context.Context, id string) (*models.StudentRecord, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+studentColumns+` FROM students WHERE id = $1`, id)

	rec, err := scanStudent(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get student: %w", err)
	}
	return rec, nil
}

// List returns registry records matching the filters, newest first.
func (s *StudentService) List(ctx context.Context, filters models.StudentFilters) ([]*models.StudentRecord, error) {
	query := `SELECT ` + studentColumns + ` FROM students WHERE 1=1`
	args := []any{}

	if filters.Name != "" {
		args = append(args, "%"+filters.Name+"%")
		query += fmt.Sprintf(" AND full_name ILIKE $%d", len(args))
	}
	if filters.School != "" {
		args = append(args, filters.School)
		query += fmt.Sprintf(" AND school = $%d", len(args))
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
		return nil, fmt.Errorf("failed to list students: %w", err)
	}
	defer rows.Close()

	var records []*models.StudentRecord
	for rows.Next() {
		rec, err := scanStudent(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan student: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate students: %w", err)
	}

	return records, nil
}

// Update replaces the mutable fields of a registry record.
func (s *StudentService) Update(ctx context.Context, id string, input StudentInput) (*models.StudentRecord, error) {
	if input.FullName == "" {
		return nil, NewValidationError("full_name", "full name is required")
	}

	res, err := s.db.ExecContext(ctx, `
		UPDATE students
		SET full_name = $2, date_of_birth = $3, student_id = $4, school = $5,
			grade = $6, guardian_name = $7, guardian_contact = $8, address = $9,
			updated_at = $10
		WHERE id = $1`,
		id, input.FullName, input.DateOfBirth, input.StudentID, input.School,
		input.Grade, input.GuardianName, input.GuardianContact, input.Address,
		time.Now().UTC())
	if err != nil {
		return nil, fmt.Errorf("failed to update student: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to check update result: %w", err)
	}
	if affected == 0 {
		return nil, ErrNotFound
	}

	return s.Get(ctx, id)
}

// Delete removes a registry record and, via cascade, its drafts.
func (s *StudentService) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM students WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete student: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// scanner abstracts *sql.Row and *sql.Rows for scanStudent.
type scanner interface {
	Scan(dest ...any) error
}

func scanStudent(row scanner) (*models.StudentRecord, error) {
	var rec models.StudentRecord
	err := row.Scan(
		&rec.ID, &rec.FullName, &rec.DateOfBirth, &rec.StudentID, &rec.School,
		&rec.Grade, &rec.GuardianName, &rec.GuardianContact, &rec.Address,
		&rec.CreatedAt, &rec.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &rec, nil
}
