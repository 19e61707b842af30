package api

// RedactTextRequest is the body for POST /api/v1/students/:id/redact/preview
// and /check.
type RedactTextRequest struct {
	Text string `json:"text"`
}

// CreateDraftRequest is the body for POST /api/v1/drafts.
type CreateDraftRequest struct {
	StudentID    string         `json:"student_id"`
	DocumentType string         `json:"document_type"`
	Instructions string         `json:"instructions"`
	SourceText   string         `json:"source_text,omitempty"`
	Context      map[string]any `json:"context,omitempty"`
}
