// Copyright (c) 2023-2025 RapidaAI
// Author: Prashant Srivastav <prashant@rapida.ai>
//
// Licensed under GPL-2.0 with Rapida Additional Terms.
// See LICENSE.md or contact sales@rapida.ai for commercial usage.
package avatar_api

import (
	"encoding/base64"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	internal_agent "github.com/rapidaai/avatar/api/avatar-api/internal/agent"
	internal_fallback "github.com/rapidaai/avatar/api/avatar-api/internal/fallback"
	internal_synthesizes "github.com/rapidaai/avatar/api/avatar-api/internal/synthesizes"
	internal_transcriber "github.com/rapidaai/avatar/api/avatar-api/internal/transcriber"
	internal_type "github.com/rapidaai/avatar/api/avatar-api/internal/type"
	"github.com/rapidaai/avatar/config"
	"github.com/rapidaai/avatar/pkg/commons"
)

// ResponseApi is the boundary for the question → enriched answer pipeline.
// Each stage degrades rather than failing the request: transcription or
// agent trouble yields the fallback bundle, synthesis trouble yields
// text-only messages. The client always gets a well-formed bundle.
type ResponseApi struct {
	cfg         *config.AppConfig
	logger      commons.Logger
	transcriber internal_transcriber.Transcriber
	answerer    internal_agent.Answerer
	fallback    *internal_fallback.Provider
	enricher    internal_synthesizes.Enricher
}

func NewResponseApi(
	cfg *config.AppConfig,
	logger commons.Logger,
	transcriber internal_transcriber.Transcriber,
	answerer internal_agent.Answerer,
	fallback *internal_fallback.Provider,
	enricher internal_synthesizes.Enricher,
) *ResponseApi {
	return &ResponseApi{
		cfg:         cfg,
		logger:      logger,
		transcriber: transcriber,
		answerer:    answerer,
		fallback:    fallback,
		enricher:    enricher,
	}
}

type responseRequest struct {
	Message string `json:"message"`
	Audio   string `json:"audio"` // base64-encoded audio, any codec
}

type responseBody struct {
	Messages []internal_type.Message `json:"messages"`
}

// Respond handles POST /response (and the /tts, /sts aliases the avatar
// frontend still calls). It accepts either typed text or recorded audio.
func (api *ResponseApi) Respond(c *gin.Context) {
	var req responseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if strings.TrimSpace(req.Message) == "" && strings.TrimSpace(req.Audio) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": internal_type.ErrEmptyQuestion.Error()})
		return
	}

	question, ok := api.resolveQuestion(c, &req)
	if !ok {
		// transcription produced no usable question; answer with the
		// canned bundle instead of reaching the agent
		api.reply(c, api.fallback.DefaultFor(""))
		return
	}

	if bundle, triggered := api.fallback.TriggeredBy(question); triggered {
		api.reply(c, bundle)
		return
	}

	bundle, err := api.answer(c, question)
	if err != nil {
		api.logger.Errorf("response: agent could not answer %q: %v", question, err)
		bundle = api.fallback.DefaultFor(question)
	}
	api.reply(c, bundle)
}

// resolveQuestion returns the question text, transcribing first when the
// request carries audio. Transcription must complete before the agent call.
func (api *ResponseApi) resolveQuestion(c *gin.Context, req *responseRequest) (string, bool) {
	if strings.TrimSpace(req.Audio) == "" {
		return req.Message, true
	}

	raw, err := base64.StdEncoding.DecodeString(req.Audio)
	if err != nil {
		api.logger.Errorf("response: audio payload is not valid base64: %v", err)
		return "", false
	}
	if api.transcriber == nil {
		api.logger.Error("response: audio received but transcription is not configured")
		return "", false
	}
	question, err := api.transcriber.Transcribe(c.Request.Context(), raw)
	if err != nil {
		api.logger.Errorf("response: %v", err)
		return "", false
	}
	return question, true
}

func (api *ResponseApi) answer(c *gin.Context, question string) ([]internal_type.Message, error) {
	if api.answerer == nil {
		return nil, &internal_type.ConfigurationError{Missing: "OPENAI_API_KEY"}
	}
	return api.answerer.Answer(c.Request.Context(), question)
}

func (api *ResponseApi) reply(c *gin.Context, bundle []internal_type.Message) {
	if api.enricher != nil {
		bundle = api.enricher.Enrich(c.Request.Context(), bundle)
	}
	c.JSON(http.StatusOK, responseBody{Messages: bundle})
}
