package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/draftshield/draftshield/pkg/models"
	"github.com/draftshield/draftshield/pkg/services"
)

// createDraftHandler handles POST /api/v1/drafts. The full pipeline runs
// synchronously; pipeline outcomes are reported on the returned draft's
// status rather than as HTTP errors.
func (s *Server) createDraftHandler(c *gin.Context) {
	var req CreateDraftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	draft, err := s.drafts.GenerateDraft(c.Request.Context(), services.DraftInput{
		StudentID:    req.StudentID,
		DocumentType: req.DocumentType,
		Instructions: req.Instructions,
		SourceText:   req.SourceText,
		Context:      req.Context,
	})
	if err != nil {
		mapServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, draft)
}

// listDraftsHandler handles GET /api/v1/drafts.
func (s *Server) listDraftsHandler(c *gin.Context) {
	filters := models.DraftFilters{
		StudentID: c.Query("student_id"),
		Status:    c.Query("status"),
		Limit:     queryInt(c, "limit"),
		Offset:    queryInt(c, "offset"),
	}

	drafts, err := s.drafts.ListDrafts(c.Request.Context(), filters)
	if err != nil {
		mapServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, DraftListResponse{Drafts: drafts, Count: len(drafts)})
}

// getDraftHandler handles GET /api/v1/drafts/:id.
func (s *Server) getDraftHandler(c *gin.Context) {
	draft, err := s.drafts.GetDraft(c.Request.Context(), c.Param("id"))
	if err != nil {
		mapServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, draft)
}
