// Package server exposes a local HTTP control surface for the dictation
// engine: status and health probes, a command endpoint for scripting and
// hotkey daemons, and read-only access to past recordings.
package server

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/alkime/dictate/internal/config"
	"github.com/alkime/dictate/internal/profile"
	"github.com/alkime/dictate/internal/state"
	"github.com/gin-contrib/static"
	"github.com/gin-gonic/gin"
)

// Controller is the command surface the server drives. It is implemented
// by the application layer; the server never touches the recorder or the
// machine's transition rules directly.
type Controller interface {
	StartRecording(ctx context.Context) error
	StopRecording(ctx context.Context) error
	ToggleRecording(ctx context.Context) error
	CancelRecording() error
	Reset() error
}

// Command actions accepted by POST /command.
const (
	ActionStart  = "start"
	ActionStop   = "stop"
	ActionToggle = "toggle"
	ActionCancel = "cancel"
	ActionReset  = "reset"
)

// commandRequest is the body of POST /command.
type commandRequest struct {
	Action string `json:"action" binding:"required"`
}

// Server represents the local control HTTP server.
type Server struct {
	config   *config.Config
	logger   *slog.Logger
	machine  *state.Machine
	profiles *profile.Manager
	ctrl     Controller
	router   *gin.Engine
}

// New creates a new Server instance.
func New(
	cfg *config.Config,
	logger *slog.Logger,
	machine *state.Machine,
	profiles *profile.Manager,
	ctrl Controller,
	recordingsDir string,
) *Server {
	// Set Gin mode based on environment
	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.Default()

	server := &Server{
		config:   cfg,
		logger:   logger,
		machine:  machine,
		profiles: profiles,
		ctrl:     ctrl,
		router:   router,
	}

	setupSecurityMiddleware(router, cfg, logger)
	server.setupRoutes(recordingsDir)

	return server
}

// Run starts the HTTP server.
func Run(s *Server) error {
	addr := s.config.ControlAddr + ":" + s.config.ControlPort
	s.logger.Info("Control server listening", "addr", addr)

	return s.router.Run(addr)
}

// Router exposes the underlying engine for tests.
func (s *Server) Router() *gin.Engine {
	return s.router
}

// setupRoutes configures all HTTP routes.
func (s *Server) setupRoutes(recordingsDir string) {
	s.router.GET("/health", s.handleHealth)
	s.router.GET("/status", s.handleStatus)
	s.router.GET("/profiles", s.handleProfiles)
	s.router.POST("/command", s.handleCommand)

	// Browse past recordings. static.Serve handles path traversal and
	// directory listing is disabled.
	s.router.Use(static.Serve("/recordings", static.LocalFile(recordingsDir, false)))
}

// handleHealth handles the health check endpoint.
func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "dictate",
	})
}

// handleStatus reports the machine state, its derived flags, and the
// active profile.
func (s *Server) handleStatus(c *gin.Context) {
	current := s.machine.Current()

	c.JSON(http.StatusOK, gin.H{
		"state":         current.String(),
		"flags":         state.Snapshot(current),
		"activeProfile": s.profiles.Active(),
		"timestamp":     time.Now().UTC(),
	})
}

// handleProfiles lists the configured formatting profiles.
func (s *Server) handleProfiles(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"active":   s.profiles.Active(),
		"profiles": s.profiles.All(),
	})
}

// handleCommand executes a control action against the engine.
func (s *Server) handleCommand(c *gin.Context) {
	var req commandRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid command body"})
		return
	}

	var err error

	switch req.Action {
	case ActionStart:
		err = s.ctrl.StartRecording(c.Request.Context())
	case ActionStop:
		err = s.ctrl.StopRecording(c.Request.Context())
	case ActionToggle:
		err = s.ctrl.ToggleRecording(c.Request.Context())
	case ActionCancel:
		err = s.ctrl.CancelRecording()
	case ActionReset:
		err = s.ctrl.Reset()
	default:
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "unknown action: " + req.Action})
		return
	}

	if err != nil {
		s.logger.Warn("Command rejected", "action", req.Action, "error", err)
		c.JSON(http.StatusConflict, gin.H{"success": false, "error": err.Error()})

		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"state":   s.machine.Current().String(),
	})
}
