// Copyright (c) 2023-2025 RapidaAI
// Author: Prashant Srivastav <prashant@rapida.ai>
//
// Licensed under GPL-2.0 with Rapida Additional Terms.
// See LICENSE.md or contact sales@rapida.ai for commercial usage.
package config

import (
	"time"

	"github.com/spf13/viper"
)

// AgentMode selects the conversational backend variant at configuration time.
type AgentMode string

const (
	// AgentModeCompletion answers with a single chat completion carrying the
	// knowledge corpus in the system prompt.
	AgentModeCompletion AgentMode = "completion"
	// AgentModeAssistant drives the assistants thread/run lifecycle.
	AgentModeAssistant AgentMode = "assistant"
)

// AppConfig is process-wide static configuration. It is loaded once at
// startup and treated as read-only for the process lifetime; components
// receive it explicitly in their constructors.
type AppConfig struct {
	HTTPPort string
	LogFile  string
	LogDebug bool

	// conversational agent backend
	OpenAIKey         string
	OpenAIAssistantID string
	AgentMode         AgentMode
	AgentModel        string
	AgentPollInterval time.Duration
	AgentDeadline     time.Duration
	AgentMaxPolls     int

	// voice synthesis
	ElevenLabsKey        string
	ElevenLabsVoice      string
	ElevenLabsModel      string
	SynthesisConcurrency int

	// realtime room provider
	LiveKitURL       string
	LiveKitAPIKey    string
	LiveKitAPISecret string

	// knowledge corpus for the completion variant
	KnowledgeDir string

	// extra fallback trigger phrases, SEPARATOR-joined
	FallbackTriggers string
}

// NewAppConfig reads configuration from the environment. Absent credentials
// are not an error here: each capability checks its own requirements when it
// is wired and is disabled when they are missing.
func NewAppConfig() (*AppConfig, error) {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("HTTP_PORT", "3000")
	v.SetDefault("AGENT_MODE", string(AgentModeCompletion))
	v.SetDefault("AGENT_MODEL", "gpt-4o")
	v.SetDefault("AGENT_POLL_INTERVAL", "2s")
	v.SetDefault("AGENT_DEADLINE", "60s")
	v.SetDefault("AGENT_MAX_POLLS", 30)
	v.SetDefault("ELEVEN_LABS_VOICE_ID", "cgSgspJ2msm6clMCkdW9")
	v.SetDefault("ELEVEN_LABS_MODEL_ID", "eleven_turbo_v2_5")
	v.SetDefault("SYNTHESIS_CONCURRENCY", 4)
	v.SetDefault("KNOWLEDGE_DIR", "resources")

	cfg := &AppConfig{
		HTTPPort: v.GetString("HTTP_PORT"),
		LogFile:  v.GetString("LOG_FILE"),
		LogDebug: v.GetBool("LOG_DEBUG"),

		OpenAIKey:         v.GetString("OPENAI_API_KEY"),
		OpenAIAssistantID: v.GetString("OPENAI_ASSISTANT_ID"),
		AgentMode:         AgentMode(v.GetString("AGENT_MODE")),
		AgentModel:        v.GetString("AGENT_MODEL"),
		AgentPollInterval: v.GetDuration("AGENT_POLL_INTERVAL"),
		AgentDeadline:     v.GetDuration("AGENT_DEADLINE"),
		AgentMaxPolls:     v.GetInt("AGENT_MAX_POLLS"),

		ElevenLabsKey:        v.GetString("ELEVEN_LABS_API_KEY"),
		ElevenLabsVoice:      v.GetString("ELEVEN_LABS_VOICE_ID"),
		ElevenLabsModel:      v.GetString("ELEVEN_LABS_MODEL_ID"),
		SynthesisConcurrency: v.GetInt("SYNTHESIS_CONCURRENCY"),

		LiveKitURL:       v.GetString("LIVEKIT_URL"),
		LiveKitAPIKey:    v.GetString("LIVEKIT_API_KEY"),
		LiveKitAPISecret: v.GetString("LIVEKIT_API_SECRET"),

		KnowledgeDir:     v.GetString("KNOWLEDGE_DIR"),
		FallbackTriggers: v.GetString("FALLBACK_TRIGGERS"),
	}
	return cfg, nil
}
