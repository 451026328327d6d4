// Copyright (c) 2023-2025 RapidaAI
// Author: Prashant Srivastav <prashant@rapida.ai>
//
// Licensed under GPL-2.0 with Rapida Additional Terms.
// See LICENSE.md or contact sales@rapida.ai for commercial usage.
package internal_fallback

import (
	"strings"

	internal_type "github.com/rapidaai/avatar/api/avatar-api/internal/type"
	"github.com/rapidaai/avatar/pkg/commons"
)

// Provider supplies canned response bundles. It is the last line of defense:
// pure, deterministic, and free of any external dependency.
type Provider struct {
	logger   commons.Logger
	triggers []trigger
	defaults []internal_type.Message
}

type trigger struct {
	phrases []string
	bundle  []internal_type.Message
}

// New builds the provider. extraTriggers adds greeting phrases from
// configuration on top of the built-in set.
func New(logger commons.Logger, extraTriggers []string) *Provider {
	greeting := []internal_type.Message{
		{Role: internal_type.RoleAssistant, Text: "Hey there! How can I help you today?"},
	}
	farewell := []internal_type.Message{
		{Role: internal_type.RoleAssistant, Text: "Goodbye! It was lovely talking to you."},
	}
	thanks := []internal_type.Message{
		{Role: internal_type.RoleAssistant, Text: "You're very welcome!"},
	}

	greetingPhrases := []string{"hello", "hi", "hey", "good morning", "good afternoon", "good evening"}
	for _, extra := range extraTriggers {
		if p := normalize(extra); p != "" {
			greetingPhrases = append(greetingPhrases, p)
		}
	}

	return &Provider{
		logger: logger,
		triggers: []trigger{
			{phrases: greetingPhrases, bundle: greeting},
			{phrases: []string{"bye", "goodbye", "see you", "see ya"}, bundle: farewell},
			{phrases: []string{"thanks", "thank you"}, bundle: thanks},
		},
		defaults: []internal_type.Message{
			{Role: internal_type.RoleAssistant, Text: "I'm having a little trouble reaching my brain right now."},
			{Role: internal_type.RoleAssistant, Text: "Could you ask me that again in a moment?"},
		},
	}
}

// TriggeredBy returns the canned bundle for questions that should bypass the
// agent entirely, saving a round trip for small talk.
func (p *Provider) TriggeredBy(question string) ([]internal_type.Message, bool) {
	q := normalize(question)
	if q == "" {
		return nil, false
	}
	for _, t := range p.triggers {
		for _, phrase := range t.phrases {
			if q == phrase {
				return clone(t.bundle), true
			}
		}
	}
	return nil, false
}

// DefaultFor is the answer of last resort when the agent cannot produce one.
// Same question in, same bundle out.
func (p *Provider) DefaultFor(question string) []internal_type.Message {
	if bundle, ok := p.TriggeredBy(question); ok {
		return bundle
	}
	return clone(p.defaults)
}

func normalize(q string) string {
	q = strings.ToLower(strings.TrimSpace(q))
	return strings.TrimRight(q, ".!?, ")
}

func clone(msgs []internal_type.Message) []internal_type.Message {
	out := make([]internal_type.Message, len(msgs))
	copy(out, msgs)
	return out
}
