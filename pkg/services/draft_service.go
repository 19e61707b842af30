package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/draftshield/draftshield/pkg/config"
	"github.com/draftshield/draftshield/pkg/ingest"
	"github.com/draftshield/draftshield/pkg/llm"
	"github.com/draftshield/draftshield/pkg/models"
	"github.com/draftshield/draftshield/pkg/redact"
)

// StudentGetter provides registry lookups for DraftService.
type StudentGetter interface {
	Get(ctx context.Context, id string) (*models.StudentRecord, error)
}

// DraftInput is one drafting request. Context carries optional structured
// details (accommodations, schedule entries); it is masked with the
// structured walker before it reaches the prompt.
type DraftInput struct {
	StudentID    string         `json:"student_id"`
	DocumentType string         `json:"document_type"`
	Instructions string         `json:"instructions"`
	SourceText   string         `json:"source_text,omitempty"`
	Context      map[string]any `json:"context,omitempty"`
}

// DraftService runs the drafting pipeline: mask, gate, generate, scan,
// restore, persist. The generator only ever receives masked text; the gate
// before egress is fail-closed and cannot be configured away.
type DraftService struct {
	students  StudentGetter
	store     DraftStore
	generator llm.Generator
	redaction config.RedactionConfig
	ingest    config.IngestConfig
	logger    *slog.Logger
}

// NewDraftService creates a new DraftService.
func NewDraftService(students StudentGetter, store DraftStore, generator llm.Generator,
	redaction config.RedactionConfig, ingestCfg config.IngestConfig) *DraftService {
	return &DraftService{
		students:  students,
		store:     store,
		generator: generator,
		redaction: redaction,
		ingest:    ingestCfg,
		logger:    slog.With("service", "draft"),
	}
}

// GenerateDraft runs one drafting request end to end and returns the
// persisted draft. Pipeline outcomes (egress rejection, generation failure,
// output-scan rejection) are reported on the draft's Status and ErrorMessage,
// not as a returned error; the error return is reserved for invalid input and
// infrastructure failures.
func (s *DraftService) GenerateDraft(ctx context.Context, input DraftInput) (*models.Draft, error) {
	if input.StudentID == "" {
		return nil, NewValidationError("student_id", "student ID is required")
	}
	if input.DocumentType == "" {
		return nil, NewValidationError("document_type", "document type is required")
	}
	if input.Instructions == "" {
		return nil, NewValidationError("instructions", "instructions are required")
	}

	student, err := s.students.Get(ctx, input.StudentID)
	if err != nil {
		return nil, err
	}

	source := ""
	if input.SourceText != "" {
		source, err = ingest.Normalize(input.SourceText, s.ingest.MaxDocumentBytes)
		if err != nil {
			return nil, NewValidationError("source_text", err.Error())
		}
	}

	draft := &models.Draft{
		ID:           uuid.New().String(),
		StudentID:    student.ID,
		DocumentType: input.DocumentType,
		Instructions: input.Instructions,
		SourceText:   source,
		Status:       models.DraftStatusPending,
		CreatedAt:    time.Now().UTC(),
	}
	mapping := redact.BuildMapping(*student)
	messages, err := buildPrompt(draft, input.Context, mapping)
	if err != nil {
		return nil, err
	}
	draft.MaskedPrompt = renderPrompt(messages)

	if err := s.store.Create(ctx, draft); err != nil {
		return nil, err
	}

	log := s.logger.With("draft_id", draft.ID, "document_type", draft.DocumentType)

	// Egress gate. A hit here means a mapping gap let an identifying value
	// through; nothing leaves until that is fixed, regardless of policy.
	for _, msg := range messages {
		if report := redact.ValidateNoLeak(msg.Content, mapping); !report.Clean {
			log.Error("Egress leak gate rejected prompt",
				"role", msg.Role,
				"offending_count", len(report.Offending))
			draft.Status = models.DraftStatusRejectedLeak
			draft.ErrorMessage = fmt.Sprintf(
				"masked prompt still contains %d identifying value(s); draft not sent",
				len(report.Offending))
			return s.finish(ctx, draft)
		}
	}

	output, err := s.generator.Generate(ctx, messages)
	if err != nil {
		log.Error("Generation failed", "error", err)
		draft.Status = models.DraftStatusFailed
		draft.ErrorMessage = fmt.Sprintf("generation failed: %v", err)
		return s.finish(ctx, draft)
	}

	// Defense-in-depth scan on output. The service was never given a real
	// value, so a hit here usually means the model reconstructed one from
	// the instructions or source; policy decides whether that fails the
	// draft or is only recorded.
	if report := redact.ValidateNoLeak(output, mapping); !report.Clean {
		draft.OutputLeakHits = len(report.Offending)
		if s.redaction.OutputLeakPolicy == config.OutputLeakReject {
			log.Error("Output leak scan rejected draft",
				"offending_count", draft.OutputLeakHits)
			draft.Status = models.DraftStatusFailed
			draft.ErrorMessage = fmt.Sprintf(
				"generated output contains %d identifying value(s); draft rejected",
				draft.OutputLeakHits)
			return s.finish(ctx, draft)
		}
		log.Warn("Output leak scan found residual values, continuing per policy",
			"offending_count", draft.OutputLeakHits)
	}

	draft.Content = redact.Unmask(output, mapping)
	draft.Status = models.DraftStatusCompleted
	now := time.Now().UTC()
	draft.CompletedAt = &now

	log.Info("Draft completed", "content_bytes", len(draft.Content))
	return s.finish(ctx, draft)
}

// finish persists the draft's final state and returns it.
func (s *DraftService) finish(ctx context.Context, draft *models.Draft) (*models.Draft, error) {
	if err := s.store.Update(ctx, draft); err != nil {
		return nil, fmt.Errorf("failed to persist draft outcome: %w", err)
	}
	return draft, nil
}

// GetDraft returns one draft by ID.
func (s *DraftService) GetDraft(ctx context.Context, id string) (*models.Draft, error) {
	return s.store.Get(ctx, id)
}

// ListDrafts returns drafts matching the filters.
func (s *DraftService) ListDrafts(ctx context.Context, filters models.DraftFilters) ([]*models.Draft, error) {
	if filters.Status != "" {
		switch models.DraftStatus(filters.Status) {
		case models.DraftStatusPending, models.DraftStatusCompleted,
			models.DraftStatusFailed, models.DraftStatusRejectedLeak:
		default:
			return nil, NewValidationError("status", "unknown draft status")
		}
	}
	return s.store.List(ctx, filters)
}

// PreviewMask returns the masked rendering of text for a student, for
// operator review before a drafting request.
func (s *DraftService) PreviewMask(ctx context.Context, studentID, text string) (string, error) {
	student, err := s.students.Get(ctx, studentID)
	if err != nil {
		return "", err
	}
	return redact.Mask(text, redact.BuildMapping(*student)), nil
}

// CheckLeak masks text for a student and reports any residual identifying
// values the mapping could not cover.
func (s *DraftService) CheckLeak(ctx context.Context, studentID, text string) (redact.LeakReport, error) {
	student, err := s.students.Get(ctx, studentID)
	if err != nil {
		return redact.LeakReport{}, err
	}
	mapping := redact.BuildMapping(*student)
	return redact.ValidateNoLeak(redact.Mask(text, mapping), mapping), nil
}

// buildPrompt assembles the masked chat messages for one draft. Every
// student-derived string passes through Mask, and the structured context
// through the walker, before it is placed in a message.
func buildPrompt(draft *models.Draft, contextPayload map[string]any, mapping *redact.Mapping) ([]llm.Message, error) {
	var sys strings.Builder
	sys.WriteString("You are an assistant that drafts student-support documents for school staff.\n")
	sys.WriteString("Identifying details are replaced with placeholder tokens such as ")
	for i, tok := range redact.Tokens() {
		if i > 0 {
			sys.WriteString(", ")
		}
		sys.WriteString(string(tok))
	}
	sys.WriteString(".\n")
	sys.WriteString("Use the tokens verbatim wherever the document refers to those details. ")
	sys.WriteString("Never invent names, dates of birth, identifiers, or addresses. ")
	sys.WriteString("When the document needs a pronoun for the student, write [PRONOUN_SUBJECT], ")
	sys.WriteString("[PRONOUN_OBJECT], or [PRONOUN_POSSESSIVE] instead of choosing one.")

	var user strings.Builder
	fmt.Fprintf(&user, "Draft a %s for student %s.\n\n", draft.DocumentType, redact.TokenStudentName)
	fmt.Fprintf(&user, "Instructions:\n%s\n", redact.Mask(draft.Instructions, mapping))
	if draft.SourceText != "" {
		fmt.Fprintf(&user, "\nSource material:\n%s\n", redact.Mask(draft.SourceText, mapping))
	}
	if len(contextPayload) > 0 {
		masked, err := json.Marshal(redact.MaskValue(contextPayload, mapping))
		if err != nil {
			return nil, NewValidationError("context", "context payload is not JSON-serializable")
		}
		fmt.Fprintf(&user, "\nAdditional context:\n%s\n", masked)
	}

	return []llm.Message{
		{Role: "system", Content: sys.String()},
		{Role: "user", Content: user.String()},
	}, nil
}

// renderPrompt flattens messages into the audit form stored on the draft.
func renderPrompt(messages []llm.Message) string {
	var b strings.Builder
	for i, msg := range messages {
		if i > 0 {
			b.WriteString("\n\n")
		}
		fmt.Fprintf(&b, "[%s]\n%s", msg.Role, msg.Content)
	}
	return b.String()
}
