package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// previewRedactionHandler handles POST /api/v1/students/:id/redact/preview.
// Operators use it to see exactly what would leave the trust boundary before
// submitting a drafting request.
func (s *Server) previewRedactionHandler(c *gin.Context) {
	var req RedactTextRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	masked, err := s.drafts.PreviewMask(c.Request.Context(), c.Param("id"), req.Text)
	if err != nil {
		mapServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, PreviewResponse{Masked: masked})
}

// checkRedactionHandler handles POST /api/v1/students/:id/redact/check.
func (s *Server) checkRedactionHandler(c *gin.Context) {
	var req RedactTextRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	report, err := s.drafts.CheckLeak(c.Request.Context(), c.Param("id"), req.Text)
	if err != nil {
		mapServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, CheckResponse{Report: report})
}
