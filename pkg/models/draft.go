package models

import "time"

// DraftStatus represents the lifecycle state of a generated draft.
type DraftStatus string

const (
	// DraftStatusPending indicates the draft has been accepted and is being generated.
	DraftStatusPending DraftStatus = "pending"
	// DraftStatusCompleted indicates generation finished and the content was restored.
	DraftStatusCompleted DraftStatus = "completed"
	// DraftStatusFailed indicates the generation service returned an error.
	DraftStatusFailed DraftStatus = "failed"
	// DraftStatusRejectedLeak indicates the egress leak gate found a residual
	// identifying value in the masked prompt and refused to send it.
	DraftStatusRejectedLeak DraftStatus = "rejected_leak"
)

// Draft is one generated document for one student. MaskedPrompt is retained
// for audit of what actually left the trust boundary; Content holds the
// restored (unmasked) document and never leaves the trusted side.
type Draft struct {
	ID             string      `json:"id"`
	StudentID      string      `json:"student_id"`
	DocumentType   string      `json:"document_type"`
	Instructions   string      `json:"instructions"`
	SourceText     string      `json:"source_text,omitempty"`
	MaskedPrompt   string      `json:"masked_prompt,omitempty"`
	Content        string      `json:"content,omitempty"`
	Status         DraftStatus `json:"status"`
	ErrorMessage   string      `json:"error_message,omitempty"`
	OutputLeakHits int         `json:"output_leak_hits,omitempty"`
	CreatedAt      time.Time   `json:"created_at"`
	CompletedAt    *time.Time  `json:"completed_at,omitempty"`
}

// DraftFilters contains filtering options for listing drafts.
type DraftFilters struct {
	StudentID string `json:"student_id,omitempty"`
	Status    string `json:"status,omitempty"`
	Limit     int    `json:"limit,omitempty"`
	Offset    int    `json:"offset,omitempty"`
}
