package ui

import (
	"fmt"
	"html/template"
	"io/fs"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"heartrisk/internal/config"
	"heartrisk/ports"
)

// Server is the form-facing web server. The classifier handle is injected
// once at startup and treated as read-only for the process lifetime.
type Server struct {
	router        *gin.Engine
	classifier    ports.Classifier
	templates     *template.Template
	embeddedFiles fs.FS
	delays        config.DelayConfig
	reports       *reportStore
}

// NewServer builds the UI server, parsing templates from the embedded
// filesystem and wiring routes.
func NewServer(cfg *config.Config, classifier ports.Classifier, embeddedFiles fs.FS) (*Server, error) {
	gin.SetMode(cfg.Server.GinMode)

	s := &Server{
		router:        gin.Default(),
		classifier:    classifier,
		embeddedFiles: embeddedFiles,
		delays:        cfg.Delays,
		reports:       newReportStore(),
	}

	if err := s.parseTemplates(); err != nil {
		return nil, err
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s, nil
}

func (s *Server) parseTemplates() error {
	funcMap := template.FuncMap{
		"mul":   func(a, b float64) float64 { return a * b },
		"addf":  func(a, b float64) float64 { return a + b },
		"pct":   func(v float64) string { return fmt.Sprintf("%.2f%%", v*100) },
		"upper": strings.ToUpper,
	}

	templatesFS, err := fs.Sub(s.embeddedFiles, "ui/templates")
	if err != nil {
		return fmt.Errorf("failed to create templates filesystem: %w", err)
	}

	templates, err := template.New("").Funcs(funcMap).ParseFS(templatesFS, "*.html")
	if err != nil {
		return fmt.Errorf("failed to parse templates: %w", err)
	}
	s.templates = templates
	return nil
}

// setupMiddleware serves static assets from the embedded filesystem.
func (s *Server) setupMiddleware() {
	staticFS, err := fs.Sub(s.embeddedFiles, "ui/static")
	if err != nil {
		log.Printf("[Static] Error creating static filesystem: %v", err)
		return
	}
	s.router.StaticFS("/static", http.FS(staticFS))
}

// setupRoutes configures the application routes
func (s *Server) setupRoutes() {
	s.router.GET("/", s.handleIndex)
	s.router.POST("/predict", s.handlePredict)
	s.router.GET("/report/:id/csv", s.handleReportCSV)
	s.router.GET("/report/:id/xlsx", s.handleReportXLSX)
	s.router.GET("/about", s.handleAbout)
}

// Router exposes the underlying handler, used by main and by tests.
func (s *Server) Router() http.Handler {
	return s.router
}

// Start starts the web server
func (s *Server) Start(addr string) error {
	log.Printf("Starting heart disease predictor UI on http://%s", addr)
	return s.router.Run(addr)
}

func (s *Server) renderTemplate(c *gin.Context, templateName string, data interface{}) {
	c.Header("Content-Type", "text/html; charset=utf-8")
	if err := s.templates.ExecuteTemplate(c.Writer, templateName, data); err != nil {
		log.Printf("Template error: %v", err)
		c.String(http.StatusInternalServerError, "Template rendering failed")
	}
}
