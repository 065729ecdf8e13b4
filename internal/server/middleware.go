package server

import (
	"log/slog"

	"github.com/alkime/dictate/internal/config"
	"github.com/gin-contrib/secure"
	"github.com/gin-gonic/gin"
)

// setupSecurityMiddleware configures and applies security middleware to
// the router. The control server binds to loopback, so the headers that
// matter are the ones a local browser respects when serving recordings.
func setupSecurityMiddleware(router *gin.Engine, cfg *config.Config, logger *slog.Logger) {
	secureMiddleware := secure.New(secure.Config{
		FrameDeny:             true,
		ContentTypeNosniff:    true,
		BrowserXssFilter:      true,
		ReferrerPolicy:        "strict-origin-when-cross-origin",
		ContentSecurityPolicy: "default-src 'self'",
	})
	router.Use(secureMiddleware)

	logger.Debug("Configured security middleware", "env", cfg.Env)
}
