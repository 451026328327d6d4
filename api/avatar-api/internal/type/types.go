// Copyright (c) 2023-2025 RapidaAI
// Author: Prashant Srivastav <prashant@rapida.ai>
//
// Licensed under GPL-2.0 with Rapida Additional Terms.
// See LICENSE.md or contact sales@rapida.ai for commercial usage.
package internal_type

// MessageRole identifies who produced a message in a conversation exchange.
type MessageRole string

const (
	RoleUser      MessageRole = "user"
	RoleAssistant MessageRole = "assistant"
)

// Viseme is one mouth-shape cue for avatar lip animation. Value is a
// Rhubarb-style cue code (A–H, X for rest); Start and Duration are seconds
// relative to the beginning of the message audio.
type Viseme struct {
	Value    string  `json:"value"`
	Start    float64 `json:"start"`
	Duration float64 `json:"duration"`
}

// Message is one beat of the assistant's reply. Audio and Visemes are empty
// until enrichment; a message whose synthesis failed stays text-only.
type Message struct {
	Role    MessageRole `json:"-"`
	Text    string      `json:"text"`
	Audio   string      `json:"audio,omitempty"` // base64-encoded mp3
	Visemes []Viseme    `json:"visemes,omitempty"`
}

// SessionGrant carries everything a client needs to join a realtime room.
// Grants are minted on demand and never persisted; validity is enforced by
// the room provider.
type SessionGrant struct {
	ServerURL        string `json:"serverUrl"`
	RoomName         string `json:"roomName"`
	ParticipantName  string `json:"participantName"`
	ParticipantToken string `json:"participantToken"`
}
