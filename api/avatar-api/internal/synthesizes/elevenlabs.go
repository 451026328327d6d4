// Copyright (c) 2023-2025 RapidaAI
// Author: Prashant Srivastav <prashant@rapida.ai>
//
// Licensed under GPL-2.0 with Rapida Additional Terms.
// See LICENSE.md or contact sales@rapida.ai for commercial usage.
package internal_synthesizes

import (
	"context"
	"fmt"

	"github.com/go-resty/resty/v2"

	internal_type "github.com/rapidaai/avatar/api/avatar-api/internal/type"
	"github.com/rapidaai/avatar/config"
	"github.com/rapidaai/avatar/pkg/commons"
	"github.com/rapidaai/avatar/pkg/utils"
)

const elevenLabsBaseURL = "https://api.elevenlabs.io"

// Synthesizer turns message text into speech audio plus viseme timing.
type Synthesizer interface {
	Synthesize(ctx context.Context, text string) (audioBase64 string, visemes []internal_type.Viseme, err error)
}

type elevenLabsSynthesizer struct {
	logger     commons.Logger
	client     *resty.Client
	voice      string
	model      string
	stability  float64
	similarity float64
}

// alignment is ElevenLabs' per-character timing metadata. It replaces the
// separate audio-analysis pass the avatar pipeline used to need for mouth
// cues.
type alignment struct {
	Characters          []string  `json:"characters"`
	CharacterStartTimes []float64 `json:"character_start_times_seconds"`
	CharacterEndTimes   []float64 `json:"character_end_times_seconds"`
}

type synthesisOutput struct {
	AudioBase64 string     `json:"audio_base64"`
	Alignment   *alignment `json:"alignment"`
}

// NewElevenLabsSynthesizer builds the ElevenLabs with-timestamps client.
// Recognized options: speaker.voice, speaker.model, speaker.stability,
// speaker.similarity.
func NewElevenLabsSynthesizer(logger commons.Logger, cfg *config.AppConfig, opts utils.Option) (Synthesizer, error) {
	if cfg.ElevenLabsKey == "" {
		return nil, &internal_type.ConfigurationError{Missing: "ELEVEN_LABS_API_KEY"}
	}

	voice := cfg.ElevenLabsVoice
	if v, err := opts.GetString("speaker.voice"); err == nil && v != "" {
		voice = v
	}
	model := cfg.ElevenLabsModel
	if m, err := opts.GetString("speaker.model"); err == nil && m != "" {
		model = m
	}
	stability := 0.5
	if s, err := opts.GetFloat64("speaker.stability"); err == nil {
		stability = s
	}
	similarity := 0.75
	if s, err := opts.GetFloat64("speaker.similarity"); err == nil {
		similarity = s
	}

	client := resty.New().
		SetBaseURL(elevenLabsBaseURL).
		SetHeader("xi-api-key", cfg.ElevenLabsKey).
		SetHeader("Content-Type", "application/json")

	return &elevenLabsSynthesizer{
		logger:     logger,
		client:     client,
		voice:      voice,
		model:      model,
		stability:  stability,
		similarity: similarity,
	}, nil
}

func (s *elevenLabsSynthesizer) Synthesize(ctx context.Context, text string) (string, []internal_type.Viseme, error) {
	var out synthesisOutput
	resp, err := s.client.R().
		SetContext(ctx).
		SetQueryParam("output_format", "mp3_44100_128").
		SetBody(map[string]interface{}{
			"text":     text,
			"model_id": s.model,
			"voice_settings": map[string]interface{}{
				"stability":        s.stability,
				"similarity_boost": s.similarity,
			},
		}).
		SetResult(&out).
		Post(fmt.Sprintf("/v1/text-to-speech/%s/with-timestamps", s.voice))
	if err != nil {
		return "", nil, fmt.Errorf("elevenlabs: %w", err)
	}
	if resp.IsError() {
		return "", nil, fmt.Errorf("elevenlabs: %s: %s", resp.Status(), resp.String())
	}
	if out.AudioBase64 == "" {
		return "", nil, fmt.Errorf("elevenlabs: response carried no audio")
	}

	visemes := visemesFromAlignment(out.Alignment)
	return out.AudioBase64, visemes, nil
}
