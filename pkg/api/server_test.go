package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/draftshield/draftshield/pkg/config"
	"github.com/draftshield/draftshield/pkg/models"
	"github.com/draftshield/draftshield/pkg/redact"
	"github.com/draftshield/draftshield/pkg/services"
)

type fakeStudentAPI struct {
	records map[string]*models.StudentRecord
}

func (f *fakeStudentAPI) Create(_ context.Context, input services.StudentInput) (*models.StudentRecord, error) {
	if input.FullName == "" {
		return nil, services.NewValidationError("full_name", "full name is required")
	}
	rec := &models.StudentRecord{ID: "stu-1", FullName: input.FullName, School: input.School}
	f.records[rec.ID] = rec
	return rec, nil
}

func (f *fakeStudentAPI) Get(_ context.Context, id string) (*models.StudentRecord, error) {
	rec, ok := f.records[id]
	if !ok {
		return nil, services.ErrNotFound
	}
	return rec, nil
}

func (f *fakeStudentAPI) List(_ context.Context, _ models.StudentFilters) ([]*models.StudentRecord, error) {
	var out []*models.StudentRecord
	for _, rec := range f.records {
		out = append(out, rec)
	}
	return out, nil
}

func (f *fakeStudentAPI) Update(_ context.Context, id string, input services.StudentInput) (*models.StudentRecord, error) {
	rec, ok := f.records[id]
	if !ok {
		return nil, services.ErrNotFound
	}
	rec.FullName = input.FullName
	return rec, nil
}

func (f *fakeStudentAPI) Delete(_ context.Context, id string) error {
	if _, ok := f.records[id]; !ok {
		return services.ErrNotFound
	}
	delete(f.records, id)
	return nil
}

type fakeDraftAPI struct {
	drafts map[string]*models.Draft
}

func (f *fakeDraftAPI) GenerateDraft(_ context.Context, input services.DraftInput) (*models.Draft, error) {
	if input.StudentID == "" {
		return nil, services.NewValidationError("student_id", "student ID is required")
	}
	draft := &models.Draft{
		ID:        "draft-1",
		StudentID: input.StudentID,
		Status:    models.DraftStatusCompleted,
		Content:   "Drafted document.",
	}
	f.drafts[draft.ID] = draft
	return draft, nil
}

func (f *fakeDraftAPI) GetDraft(_ context.Context, id string) (*models.Draft, error) {
	draft, ok := f.drafts[id]
	if !ok {
		return nil, services.ErrNotFound
	}
	return draft, nil
}

func (f *fakeDraftAPI) ListDrafts(_ context.Context, filters models.DraftFilters) ([]*models.Draft, error) {
	if filters.Status != "" && filters.Status != string(models.DraftStatusCompleted) {
		return nil, services.NewValidationError("status", "unknown draft status")
	}
	var out []*models.Draft
	for _, draft := range f.drafts {
		out = append(out, draft)
	}
	return out, nil
}

func (f *fakeDraftAPI) PreviewMask(_ context.Context, studentID, text string) (string, error) {
	if studentID != "stu-1" {
		return "", services.ErrNotFound
	}
	return strings.ReplaceAll(text, "John Smith", "[STUDENT_NAME]"), nil
}

func (f *fakeDraftAPI) CheckLeak(_ context.Context, studentID, _ string) (redact.LeakReport, error) {
	if studentID != "stu-1" {
		return redact.LeakReport{}, services.ErrNotFound
	}
	return redact.LeakReport{Clean: true}, nil
}

func newTestServer() (*Server, *fakeStudentAPI, *fakeDraftAPI) {
	students := &fakeStudentAPI{records: map[string]*models.StudentRecord{}}
	drafts := &fakeDraftAPI{drafts: map[string]*models.Draft{}}
	srv := NewServer(config.ServerConfig{Port: "0"}, students, drafts, nil)
	return srv, students, drafts
}

func doRequest(srv *Server, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	return rec
}

func TestCreateStudentHandler(t *testing.T) {
	srv, _, _ := newTestServer()

	t.Run("creates student", func(t *testing.T) {
		rec := doRequest(srv, http.MethodPost, "/api/v1/students",
			`{"full_name": "John Smith", "school": "Lakeside Elementary"}`)
		assert.Equal(t, http.StatusCreated, rec.Code)

		var got models.StudentRecord
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		assert.Equal(t, "stu-1", got.ID)
		assert.Equal(t, "John Smith", got.FullName)
	})

	t.Run("rejects malformed JSON", func(t *testing.T) {
		rec := doRequest(srv, http.MethodPost, "/api/v1/students", `{"full_name": `)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("maps validation error to 400", func(t *testing.T) {
		rec := doRequest(srv, http.MethodPost, "/api/v1/students", `{"school": "Lakeside"}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)

		var resp errorResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Contains(t, resp.Error, "full_name")
	})
}

func TestStudentLifecycleHandlers(t *testing.T) {
	srv, _, _ := newTestServer()

	rec := doRequest(srv, http.MethodPost, "/api/v1/students", `{"full_name": "John Smith"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doRequest(srv, http.MethodGet, "/api/v1/students/stu-1", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(srv, http.MethodGet, "/api/v1/students", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	var list StudentListResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	assert.Equal(t, 1, list.Count)

	rec = doRequest(srv, http.MethodPut, "/api/v1/students/stu-1", `{"full_name": "Jon Smith"}`)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(srv, http.MethodDelete, "/api/v1/students/stu-1", "")
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = doRequest(srv, http.MethodGet, "/api/v1/students/stu-1", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCreateDraftHandler(t *testing.T) {
	srv, _, _ := newTestServer()

	t.Run("runs pipeline", func(t *testing.T) {
		rec := doRequest(srv, http.MethodPost, "/api/v1/drafts",
			`{"student_id": "stu-1", "document_type": "progress report", "instructions": "Summarize."}`)
		assert.Equal(t, http.StatusCreated, rec.Code)

		var draft models.Draft
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &draft))
		assert.Equal(t, models.DraftStatusCompleted, draft.Status)
	})

	t.Run("maps validation error to 400", func(t *testing.T) {
		rec := doRequest(srv, http.MethodPost, "/api/v1/drafts",
			`{"document_type": "progress report", "instructions": "Summarize."}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestDraftQueryHandlers(t *testing.T) {
	srv, _, drafts := newTestServer()
	drafts.drafts["draft-1"] = &models.Draft{ID: "draft-1", Status: models.DraftStatusCompleted}

	rec := doRequest(srv, http.MethodGet, "/api/v1/drafts/draft-1", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(srv, http.MethodGet, "/api/v1/drafts/missing", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doRequest(srv, http.MethodGet, "/api/v1/drafts?status=completed", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(srv, http.MethodGet, "/api/v1/drafts?status=bogus", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRedactionHandlers(t *testing.T) {
	srv, _, _ := newTestServer()

	t.Run("preview", func(t *testing.T) {
		rec := doRequest(srv, http.MethodPost, "/api/v1/students/stu-1/redact/preview",
			`{"text": "Note about John Smith."}`)
		assert.Equal(t, http.StatusOK, rec.Code)

		var resp PreviewResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "Note about [STUDENT_NAME].", resp.Masked)
	})

	t.Run("check", func(t *testing.T) {
		rec := doRequest(srv, http.MethodPost, "/api/v1/students/stu-1/redact/check",
			`{"text": "Note."}`)
		assert.Equal(t, http.StatusOK, rec.Code)

		var resp CheckResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.True(t, resp.Report.Clean)
	})

	t.Run("unknown student", func(t *testing.T) {
		rec := doRequest(srv, http.MethodPost, "/api/v1/students/missing/redact/preview",
			`{"text": "Note."}`)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestSecurityHeaders(t *testing.T) {
	srv, _, _ := newTestServer()

	rec := doRequest(srv, http.MethodGet, "/api/v1/students", "")
	assert.Equal(t, "DENY", rec.Header().Get("X-Frame-Options"))
	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "strict-origin-when-cross-origin", rec.Header().Get("Referrer-Policy"))
}
