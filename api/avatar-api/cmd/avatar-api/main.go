// Copyright (c) 2023-2025 RapidaAI
// Author: Prashant Srivastav <prashant@rapida.ai>
//
// Licensed under GPL-2.0 with Rapida Additional Terms.
// See LICENSE.md or contact sales@rapida.ai for commercial usage.
package main

import (
	"errors"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	avatarApi "github.com/rapidaai/avatar/api/avatar-api/api"
	internal_agent "github.com/rapidaai/avatar/api/avatar-api/internal/agent"
	internal_fallback "github.com/rapidaai/avatar/api/avatar-api/internal/fallback"
	internal_knowledge "github.com/rapidaai/avatar/api/avatar-api/internal/knowledge"
	internal_session "github.com/rapidaai/avatar/api/avatar-api/internal/session"
	internal_synthesizes "github.com/rapidaai/avatar/api/avatar-api/internal/synthesizes"
	internal_transcriber "github.com/rapidaai/avatar/api/avatar-api/internal/transcriber"
	internal_type "github.com/rapidaai/avatar/api/avatar-api/internal/type"
	avatarRouters "github.com/rapidaai/avatar/api/avatar-api/router"
	"github.com/rapidaai/avatar/config"
	"github.com/rapidaai/avatar/pkg/commons"
	"github.com/rapidaai/avatar/pkg/utils"
)

func main() {
	cfg, err := config.NewAppConfig()
	if err != nil {
		panic(err)
	}

	var loggerOpts []commons.LoggerOption
	if cfg.LogFile != "" {
		loggerOpts = append(loggerOpts, commons.WithLogFile(cfg.LogFile))
	}
	if cfg.LogDebug {
		loggerOpts = append(loggerOpts, commons.WithDebug())
	}
	logger, err := commons.NewApplicationLogger(loggerOpts...)
	if err != nil {
		panic(err)
	}

	corpus, err := internal_knowledge.Load(logger, cfg.KnowledgeDir)
	if err != nil {
		logger.Fatalf("unable to load knowledge corpus: %v", err)
	}

	// Capabilities with absent credentials are disabled here, once, instead
	// of failing on every request.
	transcriber := wireTranscriber(logger, cfg)
	answerer := wireAnswerer(logger, cfg, corpus)
	enricher := wireEnricher(logger, cfg)
	broker := wireBroker(logger, cfg)

	var extraTriggers []string
	if cfg.FallbackTriggers != "" {
		extraTriggers = strings.Split(cfg.FallbackTriggers, commons.SEPARATOR)
	}
	fallback := internal_fallback.New(logger, extraTriggers)

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:    []string{"Origin", "Content-Type", "Accept"},
	}))

	responseApi := avatarApi.NewResponseApi(cfg, logger, transcriber, answerer, fallback, enricher)
	sessionApi := avatarApi.NewSessionApi(cfg, logger, broker)

	avatarRouters.HealthCheckRoutes(cfg, engine, logger)
	avatarRouters.ResponseApiRoute(cfg, engine, logger, responseApi)
	avatarRouters.SessionApiRoute(cfg, engine, logger, sessionApi)

	logger.Infof("avatar-api listening on port %s", cfg.HTTPPort)
	if err := engine.Run(":" + cfg.HTTPPort); err != nil {
		logger.Fatalf("http server stopped: %v", err)
	}
}

func wireTranscriber(logger commons.Logger, cfg *config.AppConfig) internal_transcriber.Transcriber {
	t, err := internal_transcriber.NewWhisperTranscriber(logger, cfg)
	if err != nil {
		logConfigurationError(logger, "transcription", err)
		return nil
	}
	return t
}

func wireAnswerer(logger commons.Logger, cfg *config.AppConfig, corpus string) internal_agent.Answerer {
	a, err := internal_agent.NewAnswerer(logger, cfg, corpus)
	if err != nil {
		logConfigurationError(logger, "agent", err)
		return nil
	}
	logger.Infof("agent backend: %s", cfg.AgentMode)
	return a
}

func wireEnricher(logger commons.Logger, cfg *config.AppConfig) internal_synthesizes.Enricher {
	synthesizer, err := internal_synthesizes.NewElevenLabsSynthesizer(logger, cfg, utils.Option{})
	if err != nil {
		logConfigurationError(logger, "voice synthesis", err)
		return nil
	}
	return internal_synthesizes.NewPipeline(logger, synthesizer, cfg.SynthesisConcurrency)
}

func wireBroker(logger commons.Logger, cfg *config.AppConfig) *internal_session.Broker {
	b, err := internal_session.NewBroker(logger, cfg)
	if err != nil {
		logConfigurationError(logger, "realtime sessions", err)
		return nil
	}
	return b
}

func logConfigurationError(logger commons.Logger, capability string, err error) {
	var cfgErr *internal_type.ConfigurationError
	if errors.As(err, &cfgErr) {
		logger.Warnf("%s disabled: %v", capability, cfgErr)
		return
	}
	logger.Fatalf("unable to wire %s: %v", capability, err)
}
