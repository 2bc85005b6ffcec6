package httpserver

import (
	"github.com/gin-gonic/gin"

	"github.com/gelugu/judah-bot/pkg/response"
)

// Health response constants (single source for version and service identity).
const (
	HealthVersion = "1.0.0"
	ServiceName   = "judah-bot"
)

func (srv HTTPServer) status(c *gin.Context, state string) {
	updates := "polling"
	if srv.telegramHandler != nil {
		updates = "webhook"
	}
	response.OK(c, gin.H{
		"status":  state,
		"service": ServiceName,
		"version": HealthVersion,
		"updates": updates,
	})
}

// healthCheck handles health check requests
// @Summary Health Check
// @Description Check if the bot is healthy
// @Tags Health
// @Produce json
// @Success 200 {object} response.Resp "Bot is healthy"
// @Router /health [get]
func (srv HTTPServer) healthCheck(c *gin.Context) {
	srv.status(c, "healthy")
}

// readyCheck handles readiness check requests
// @Summary Readiness Check
// @Description Check if the bot is ready to receive updates
// @Tags Health
// @Produce json
// @Success 200 {object} response.Resp "Bot is ready"
// @Router /ready [get]
func (srv HTTPServer) readyCheck(c *gin.Context) {
	srv.status(c, "ready")
}

// liveCheck handles liveness check requests
// @Summary Liveness Check
// @Description Check if the process is alive
// @Tags Health
// @Produce json
// @Success 200 {object} response.Resp "Bot is alive"
// @Router /live [get]
func (srv HTTPServer) liveCheck(c *gin.Context) {
	srv.status(c, "alive")
}
