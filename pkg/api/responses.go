package api

import (
	"github.com/draftshield/draftshield/pkg/database"
	"github.com/draftshield/draftshield/pkg/models"
	"github.com/draftshield/draftshield/pkg/redact"
)

// HealthResponse is returned by GET /health.
type HealthResponse struct {
	Status   string                 `json:"status"`
	Database *database.HealthStatus `json:"database"`
	Error    string                 `json:"error,omitempty"`
}

// StudentListResponse is returned by GET /api/v1/students.
type StudentListResponse struct {
	Students []*models.StudentRecord `json:"students"`
	Count    int                     `json:"count"`
}

// PreviewResponse is returned by POST /api/v1/students/:id/redact/preview.
type PreviewResponse struct {
	Masked string `json:"masked"`
}

// CheckResponse is returned by POST /api/v1/students/:id/redact/check. It
// reports the residue scan over the masked rendering of the submitted text.
type CheckResponse struct {
	Report redact.LeakReport `json:"report"`
}

// DraftListResponse is returned by GET /api/v1/drafts.
type DraftListResponse struct {
	Drafts []*models.Draft `json:"drafts"`
	Count  int             `json:"count"`
}
