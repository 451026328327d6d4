package avatar_routers

import (
	"github.com/gin-gonic/gin"

	avatarApi "github.com/rapidaai/avatar/api/avatar-api/api"
	"github.com/rapidaai/avatar/config"
	"github.com/rapidaai/avatar/pkg/commons"
)

// ResponseApiRoute mounts the question → enriched answer endpoints.
func ResponseApiRoute(cfg *config.AppConfig, engine *gin.Engine, logger commons.Logger, responseApi *avatarApi.ResponseApi) {
	engine.POST("/response", responseApi.Respond)
	// legacy routes the avatar frontend still calls
	engine.POST("/tts", responseApi.Respond)
	engine.POST("/sts", responseApi.Respond)
}

// SessionApiRoute mounts the realtime-room grant endpoint.
func SessionApiRoute(cfg *config.AppConfig, engine *gin.Engine, logger commons.Logger, sessionApi *avatarApi.SessionApi) {
	engine.GET("/session-details", sessionApi.SessionDetails)
	engine.GET("/api/connection-details", sessionApi.SessionDetails)
}

// HealthCheckRoutes mounts liveness probes.
func HealthCheckRoutes(cfg *config.AppConfig, engine *gin.Engine, logger commons.Logger) {
	logger.Info("HealthCheckRoutes added to engine.")
	engine.GET("/healthz", avatarApi.Healthz)
}
