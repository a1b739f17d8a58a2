package server

import (
	"embed"
	"io/fs"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/atikulmunna/gdkit/internal/hub"
	"github.com/atikulmunna/gdkit/internal/model"
	"github.com/atikulmunna/gdkit/internal/placeholder"
	"github.com/atikulmunna/gdkit/internal/pngenc"
	"github.com/atikulmunna/gdkit/internal/report"
)

//go:embed all:web
var webFS embed.FS

const maxPreviewSize = 2048

// Options configures the preview server. Hub and Report are optional; the
// report and websocket endpoints are only mounted when they are set.
type Options struct {
	Pilots []model.ColorSpec
	Size   int
	Hub    *hub.Hub
	Report *report.Report
	Log    *slog.Logger
}

// Server holds the Gin engine for the portrait preview and clean dashboard.
type Server struct {
	engine *gin.Engine
	opts   Options
	port   string
}

// New creates a preview server listening on port.
func New(opts Options, port string) *Server {
	if opts.Pilots == nil {
		opts.Pilots = placeholder.DefaultPilots
	}
	if opts.Size == 0 {
		opts.Size = placeholder.DefaultSize
	}
	if opts.Log == nil {
		opts.Log = slog.Default()
	}

	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery())

	// Disable automatic redirects that cause 301 issues.
	engine.RedirectTrailingSlash = false
	engine.RedirectFixedPath = false

	s := &Server{
		engine: engine,
		opts:   opts,
		port:   port,
	}

	s.setupRoutes()
	return s
}

// serveEmbedded reads a file from the embedded FS and writes it with the given content type.
func serveEmbedded(webContent fs.FS, name string, contentType string) gin.HandlerFunc {
	data, err := fs.ReadFile(webContent, name)
	return func(c *gin.Context) {
		if err != nil {
			c.String(http.StatusNotFound, "file not found: %s", name)
			return
		}
		c.Data(http.StatusOK, contentType, data)
	}
}

func (s *Server) setupRoutes() {
	webContent, _ := fs.Sub(webFS, "web")

	s.engine.GET("/", serveEmbedded(webContent, "index.html", "text/html; charset=utf-8"))

	s.engine.GET("/healthz", func(c *gin.Context) {
		body := gin.H{
			"status": "ok",
			"pilots": len(s.opts.Pilots),
		}
		if s.opts.Hub != nil {
			body["clients"] = s.opts.Hub.Subscribers()
			body["dropped_events"] = s.opts.Hub.Dropped()
		}
		c.JSON(http.StatusOK, body)
	})

	s.engine.GET("/api/pilots", func(c *gin.Context) {
		c.JSON(http.StatusOK, s.opts.Pilots)
	})

	s.engine.GET("/pilots/:file", s.handlePortrait)

	if s.opts.Report != nil {
		s.engine.GET("/api/report", func(c *gin.Context) {
			c.JSON(http.StatusOK, s.opts.Report.Snapshot())
		})
	}

	if s.opts.Hub != nil {
		s.engine.GET("/ws", s.handleWebSocket)
	}
}

// handlePortrait encodes a pilot portrait on the fly. An optional size
// query parameter overrides the configured edge length.
func (s *Server) handlePortrait(c *gin.Context) {
	spec, ok := placeholder.Lookup(s.opts.Pilots, c.Param("file"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown pilot"})
		return
	}

	size := s.opts.Size
	if q := c.Query("size"); q != "" {
		n, err := strconv.Atoi(q)
		if err != nil || n < 1 || n > maxPreviewSize {
			c.JSON(http.StatusBadRequest, gin.H{"error": "size must be between 1 and 2048"})
			return
		}
		size = n
	}

	data, err := pngenc.EncodeSolidColorImage(size, size, spec.R, spec.G, spec.B)
	if err != nil {
		s.opts.Log.Error("serve.encode", "file", spec.File, "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Data(http.StatusOK, "image/png", data)
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Start runs the server. Blocks until the server is stopped.
func (s *Server) Start() error {
	return s.engine.Run(":" + s.port)
}
