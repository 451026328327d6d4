// Copyright (c) 2023-2025 RapidaAI
// Author: Prashant Srivastav <prashant@rapida.ai>
//
// Licensed under GPL-2.0 with Rapida Additional Terms.
// See LICENSE.md or contact sales@rapida.ai for commercial usage.
package internal_type

import (
	"errors"
	"fmt"
)

// ErrEmptyQuestion rejects a request before any downstream call is made.
var ErrEmptyQuestion = errors.New("question is empty")

// AgentErrorKind classifies why the conversational agent produced no answer.
type AgentErrorKind string

const (
	AgentTransport AgentErrorKind = "transport"
	AgentTimeout   AgentErrorKind = "timeout"
	AgentFailed    AgentErrorKind = "failed"
	AgentEmpty     AgentErrorKind = "empty"
)

// AgentError aborts the whole answer attempt; the caller falls back to a
// canned response. It is never surfaced raw to the client.
type AgentError struct {
	Kind AgentErrorKind
	Err  error
}

func (e *AgentError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("agent %s: %v", e.Kind, e.Err)
	}
	return fmt.Sprintf("agent %s", e.Kind)
}

func (e *AgentError) Unwrap() error { return e.Err }

// TranscriptionError means no question text could be produced from audio.
// The request must not proceed to the agent.
type TranscriptionError struct {
	Stage string // "normalize" or "transcribe"
	Err   error
}

func (e *TranscriptionError) Error() string {
	return fmt.Sprintf("transcription %s: %v", e.Stage, e.Err)
}

func (e *TranscriptionError) Unwrap() error { return e.Err }

// SynthesisError degrades a single message to text-only; it never aborts the
// bundle.
type SynthesisError struct {
	Index int
	Err   error
}

func (e *SynthesisError) Error() string {
	return fmt.Sprintf("synthesis for message %d: %v", e.Index, e.Err)
}

func (e *SynthesisError) Unwrap() error { return e.Err }

// ConfigurationError marks a capability that cannot be offered because a
// required credential is absent. It is a wiring-time condition, not a
// per-request one.
type ConfigurationError struct {
	Missing string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("missing configuration: %s", e.Missing)
}
