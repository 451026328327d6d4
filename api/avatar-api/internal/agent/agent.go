// Copyright (c) 2023-2025 RapidaAI
// Author: Prashant Srivastav <prashant@rapida.ai>
//
// Licensed under GPL-2.0 with Rapida Additional Terms.
// See LICENSE.md or contact sales@rapida.ai for commercial usage.
package internal_agent

import (
	"context"
	"fmt"

	internal_type "github.com/rapidaai/avatar/api/avatar-api/internal/type"
	"github.com/rapidaai/avatar/config"
	"github.com/rapidaai/avatar/pkg/commons"
)

// Answerer is the conversational backend capability. Implementations are
// selected at configuration time, never at request time.
type Answerer interface {
	// Answer produces the agent's reply to one question as an ordered
	// message bundle. Any failure is reported as *internal_type.AgentError;
	// no thread/run state survives the call.
	Answer(ctx context.Context, question string) ([]internal_type.Message, error)
}

// RunStatus is the backend-side lifecycle of one agent run. Transitions only
// move forward; Completed, Failed, Expired and Cancelled are terminal.
type RunStatus string

const (
	RunQueued         RunStatus = "queued"
	RunInProgress     RunStatus = "in_progress"
	RunRequiresAction RunStatus = "requires_action"
	RunCompleted      RunStatus = "completed"
	RunFailed         RunStatus = "failed"
	RunExpired        RunStatus = "expired"
	RunCancelled      RunStatus = "cancelled"
)

// Terminal reports whether the run can make no further progress.
func (s RunStatus) Terminal() bool {
	switch s {
	case RunCompleted, RunFailed, RunExpired, RunCancelled:
		return true
	}
	return false
}

// NewAnswerer wires the backend variant named by cfg.AgentMode.
func NewAnswerer(logger commons.Logger, cfg *config.AppConfig, corpus string) (Answerer, error) {
	switch cfg.AgentMode {
	case config.AgentModeCompletion:
		return NewCompletionAnswerer(logger, cfg, corpus)
	case config.AgentModeAssistant:
		return NewAssistantAnswerer(logger, cfg)
	default:
		return nil, fmt.Errorf("unknown agent mode %q", cfg.AgentMode)
	}
}
