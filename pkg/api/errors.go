package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/draftshield/draftshield/pkg/services"
)

// errorResponse is the body for all error replies.
type errorResponse struct {
	Error string `json:"error"`
}

// mapServiceError maps service-layer errors to HTTP error responses.
func mapServiceError(c *gin.Context, err error) {
	var validErr *services.ValidationError
	if errors.As(err, &validErr) {
		c.JSON(http.StatusBadRequest, errorResponse{Error: validErr.Error()})
		return
	}
	if errors.Is(err, services.ErrNotFound) {
		c.JSON(http.StatusNotFound, errorResponse{Error: "resource not found"})
		return
	}
	if errors.Is(err, services.ErrAlreadyExists) {
		c.JSON(http.StatusConflict, errorResponse{Error: "resource already exists"})
		return
	}

	// Unexpected error
	slog.Error("Unexpected service error", "error", err)
	c.JSON(http.StatusInternalServerError, errorResponse{Error: "internal server error"})
}
