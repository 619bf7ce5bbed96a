// Package server hosts the optional live-edit helper: it serves the current
// viewer, accepts edited documents, and re-runs the enrichment pass on
// demand.
package server

import (
	"log/slog"
	"net/http"
	"net/url"
	"path"
	"strings"

	"github.com/gin-gonic/gin"

	"KnowledgeBase/internal/classify"
	"KnowledgeBase/internal/domain"
	"KnowledgeBase/internal/ports"
	"KnowledgeBase/internal/usecase"
)

// Deps wires everything the handlers need.
type Deps struct {
	Store     ports.Store
	StorePath string
	HTMLPath  string
	Refresher *usecase.Refresher
	Renderer  ports.Renderer
	Arxiv     ports.ArxivSource
	Logger    *slog.Logger
}

// Server wraps the gin engine with the helper endpoints.
type Server struct {
	engine *gin.Engine
	deps   Deps
}

// New builds the router. Gin runs in release mode; the helper is a local
// convenience, not a service.
func New(deps Deps) *Server {
	gin.SetMode(gin.ReleaseMode)

	s := &Server{engine: gin.New(), deps: deps}
	s.engine.Use(gin.Recovery(), corsMiddleware())

	s.engine.GET("/", s.handleViewer)
	s.engine.HEAD("/", s.handleViewer)

	api := s.engine.Group("/api")
	{
		api.GET("/knowledge-base", s.handleKnowledgeBase)
		api.HEAD("/knowledge-base", s.handleKnowledgeBase)
		api.POST("/save", s.handleSave)
		api.POST("/enrich", s.handleEnrich)
		api.POST("/lookup-title", s.handleLookupTitle)
	}

	return s
}

// Handler exposes the router for tests.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run blocks serving on addr.
func (s *Server) Run(addr string) error {
	s.deps.Logger.Info("live-edit helper listening", "addr", addr)
	return s.engine.Run(addr)
}

func (s *Server) handleViewer(c *gin.Context) {
	c.File(s.deps.HTMLPath)
}

func (s *Server) handleKnowledgeBase(c *gin.Context) {
	c.File(s.deps.StorePath)
}

func (s *Server) handleSave(c *gin.Context) {
	var kb domain.KnowledgeBase
	if err := c.ShouldBindJSON(&kb); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	if err := s.deps.Store.Save(c.Request.Context(), &kb); err != nil {
		s.deps.Logger.Error("save failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": err.Error()})
		return
	}
	if err := s.deps.Renderer.Regenerate(&kb); err != nil {
		s.deps.Logger.Error("viewer regeneration failed, store is saved", "error", err)
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "knowledge base saved"})
}

func (s *Server) handleEnrich(c *gin.Context) {
	report, err := s.deps.Refresher.Run(c.Request.Context())
	if err != nil {
		s.deps.Logger.Error("enrich failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":          true,
		"processed":        report.Processed,
		"enriched":         report.Enriched,
		"already_enriched": report.AlreadyEnriched,
		"non_paper":        report.NonPaper,
		"failed":           report.Failed,
	})
}

func (s *Server) handleLookupTitle(c *gin.Context) {
	var req struct {
		URL string `json:"url"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.URL == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "url is required"})
		return
	}

	if id, ok := classify.ArxivID(req.URL); ok {
		meta, err := s.deps.Arxiv.Lookup(c.Request.Context(), id)
		if err != nil {
			s.deps.Logger.Warn("title lookup failed", "id", id, "error", err)
			c.JSON(http.StatusOK, gin.H{"success": false, "error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "title": meta.Title, "kind": "arxiv"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "title": titleFromURL(req.URL), "kind": "url"})
}

// titleFromURL guesses a display title from the last path segment.
func titleFromURL(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}

	segment := path.Base(strings.TrimSuffix(parsed.Path, "/"))
	if segment == "." || segment == "/" {
		return parsed.Hostname()
	}
	if ext := path.Ext(segment); ext != "" {
		segment = strings.TrimSuffix(segment, ext)
	}
	segment = strings.NewReplacer("-", " ", "_", " ").Replace(segment)
	return strings.TrimSpace(segment)
}

// corsMiddleware lets a file:// copy of the viewer talk to the helper.
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, HEAD, POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
