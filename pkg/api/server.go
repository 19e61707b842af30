// Package api exposes the HTTP surface: student registry CRUD, redaction
// preview and leak checks, and the drafting endpoints. Handlers bind and
// validate requests, delegate to services, and map service errors to HTTP
// status codes.
package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/draftshield/draftshield/pkg/config"
	"github.com/draftshield/draftshield/pkg/database"
	"github.com/draftshield/draftshield/pkg/models"
	"github.com/draftshield/draftshield/pkg/redact"
	"github.com/draftshield/draftshield/pkg/services"
)

// StudentAPI is the registry surface the server needs.
type StudentAPI interface {
	Create(ctx context.Context, input services.StudentInput) (*models.StudentRecord, error)
	Get(ctx context.Context, id string) (*models.StudentRecord, error)
	List(ctx context.Context, filters models.StudentFilters) ([]*models.StudentRecord, error)
	Update(ctx context.Context, id string, input services.StudentInput) (*models.StudentRecord, error)
	Delete(ctx context.Context, id string) error
}

// DraftAPI is the drafting surface the server needs.
type DraftAPI interface {
	GenerateDraft(ctx context.Context, input services.DraftInput) (*models.Draft, error)
	GetDraft(ctx context.Context, id string) (*models.Draft, error)
	ListDrafts(ctx context.Context, filters models.DraftFilters) ([]*models.Draft, error)
	PreviewMask(ctx context.Context, studentID, text string) (string, error)
	CheckLeak(ctx context.Context, studentID, text string) (redact.LeakReport, error)
}

// Server wires HTTP routes to the service layer.
type Server struct {
	students StudentAPI
	drafts   DraftAPI
	db       *database.Client
	http     *http.Server
}

// NewServer creates the API server and registers all routes.
func NewServer(cfg config.ServerConfig, students StudentAPI, drafts DraftAPI,
	db *database.Client) *Server {
	s := &Server{
		students: students,
		drafts:   drafts,
		db:       db,
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery(), requestLogger(), securityHeaders())

	router.GET("/health", s.healthHandler)

	v1 := router.Group("/api/v1")
	{
		v1.POST("/students", s.createStudentHandler)
		v1.GET("/students", s.listStudentsHandler)
		v1.GET("/students/:id", s.getStudentHandler)
		v1.PUT("/students/:id", s.updateStudentHandler)
		v1.DELETE("/students/:id", s.deleteStudentHandler)

		v1.POST("/students/:id/redact/preview", s.previewRedactionHandler)
		v1.POST("/students/:id/redact/check", s.checkRedactionHandler)

		v1.POST("/drafts", s.createDraftHandler)
		v1.GET("/drafts", s.listDraftsHandler)
		v1.GET("/drafts/:id", s.getDraftHandler)
	}

	s.http = &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// Handler returns the HTTP handler, for tests.
func (s *Server) Handler() http.Handler {
	return s.http.Handler
}

// Start serves HTTP until Shutdown is called.
func (s *Server) Start() error {
	slog.Info("API server listening", "addr", s.http.Addr)
	if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown drains in-flight requests and stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}
