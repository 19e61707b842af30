package models

import "time"

// StudentRecord holds the identifying attributes for one student in the
// registry. All fields are stored as entered on the intake form; the
// redaction engine derives case and date variants itself. DateOfBirth is
// kept as the operator-entered string so an unparseable entry degrades to
// raw-value masking instead of failing intake.
type StudentRecord struct {
	ID              string    `json:"id"`
	FullName        string    `json:"full_name"`
	DateOfBirth     string    `json:"date_of_birth,omitempty"`
	StudentID       string    `json:"student_id,omitempty"`
	School          string    `json:"school,omitempty"`
	Grade           string    `json:"grade,omitempty"`
	GuardianName    string    `json:"guardian_name,omitempty"`
	GuardianContact string    `json:"guardian_contact,omitempty"`
	Address         string    `json:"address,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// StudentFilters contains filtering options for listing registry records.
type StudentFilters struct {
	Name   string `json:"name,omitempty"` // case-insensitive substring match on full_name
	School string `json:"school,omitempty"`
	Limit  int    `json:"limit,omitempty"`
	Offset int    `json:"offset,omitempty"`
}
