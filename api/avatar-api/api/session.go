// Copyright (c) 2023-2025 RapidaAI
// Author: Prashant Srivastav <prashant@rapida.ai>
//
// Licensed under GPL-2.0 with Rapida Additional Terms.
// See LICENSE.md or contact sales@rapida.ai for commercial usage.
package avatar_api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	internal_session "github.com/rapidaai/avatar/api/avatar-api/internal/session"
	"github.com/rapidaai/avatar/config"
	"github.com/rapidaai/avatar/pkg/commons"
)

// SessionApi exposes realtime-room connection details. The broker is nil
// when signing credentials were absent at startup; the endpoint then reports
// the configuration problem instead of failing some other way per request.
type SessionApi struct {
	cfg    *config.AppConfig
	logger commons.Logger
	broker *internal_session.Broker
}

func NewSessionApi(cfg *config.AppConfig, logger commons.Logger, broker *internal_session.Broker) *SessionApi {
	return &SessionApi{cfg: cfg, logger: logger, broker: broker}
}

// SessionDetails handles GET /session-details.
func (api *SessionApi) SessionDetails(c *gin.Context) {
	if api.broker == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "realtime session credentials are not configured"})
		return
	}
	grant, err := api.broker.IssueGrant()
	if err != nil {
		api.logger.Errorf("session: could not issue grant: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not issue session grant"})
		return
	}
	c.JSON(http.StatusOK, grant)
}
