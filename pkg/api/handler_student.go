package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/draftshield/draftshield/pkg/models"
	"github.com/draftshield/draftshield/pkg/services"
)

// createStudentHandler handles POST /api/v1/students.
func (s *Server) createStudentHandler(c *gin.Context) {
	var input services.StudentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	rec, err := s.students.Create(c.Request.Context(), input)
	if err != nil {
		mapServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, rec)
}

// listStudentsHandler handles GET /api/v1/students.
func (s *Server) listStudentsHandler(c *gin.Context) {
	filters := models.StudentFilters{
		Name:   c.Query("name"),
		School: c.Query("school"),
		Limit:  queryInt(c, "limit"),
		Offset: queryInt(c, "offset"),
	}

	records, err := s.students.List(c.Request.Context(), filters)
	if err != nil {
		mapServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, StudentListResponse{Students: records, Count: len(records)})
}

// getStudentHandler handles GET /api/v1/students/:id.
func (s *Server) getStudentHandler(c *gin.Context) {
	rec, err := s.students.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		mapServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, rec)
}

// updateStudentHandler handles PUT /api/v1/students/:id.
func (s *Server) updateStudentHandler(c *gin.Context) {
	var input services.StudentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	rec, err := s.students.Update(c.Request.Context(), c.Param("id"), input)
	if err != nil {
		mapServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, rec)
}

// deleteStudentHandler handles DELETE /api/v1/students/:id.
func (s *Server) deleteStudentHandler(c *gin.Context) {
	if err := s.students.Delete(c.Request.Context(), c.Param("id")); err != nil {
		mapServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func queryInt(c *gin.Context, name string) int {
	v, err := strconv.Atoi(c.Query(name))
	if err != nil {
		return 0
	}
	return v
}
