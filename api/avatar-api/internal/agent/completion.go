// Copyright (c) 2023-2025 RapidaAI
// Author: Prashant Srivastav <prashant@rapida.ai>
//
// Licensed under GPL-2.0 with Rapida Additional Terms.
// See LICENSE.md or contact sales@rapida.ai for commercial usage.
package internal_agent

import (
	"context"
	"fmt"
	"strings"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	internal_type "github.com/rapidaai/avatar/api/avatar-api/internal/type"
	"github.com/rapidaai/avatar/config"
	"github.com/rapidaai/avatar/pkg/commons"
)

// completionAnswerer is the direct-completion variant: a single synchronous
// call carrying the knowledge corpus plus the question. No thread/run state.
type completionAnswerer struct {
	logger commons.Logger
	client openai.Client
	model  string
	prompt string
}

// NewCompletionAnswerer builds the direct-completion backend. Extra request
// options (base URL overrides for tests) are appended after the credential.
func NewCompletionAnswerer(logger commons.Logger, cfg *config.AppConfig, corpus string, opts ...option.RequestOption) (Answerer, error) {
	if cfg.OpenAIKey == "" {
		return nil, &internal_type.ConfigurationError{Missing: "OPENAI_API_KEY"}
	}
	clientOpts := append([]option.RequestOption{option.WithAPIKey(cfg.OpenAIKey)}, opts...)
	return &completionAnswerer{
		logger: logger,
		client: openai.NewClient(clientOpts...),
		model:  cfg.AgentModel,
		prompt: systemPrompt(corpus),
	}, nil
}

func systemPrompt(corpus string) string {
	base := "You are a knowledgeable assistant answering spoken questions. " +
		"Keep answers short, conversational and free of unpronounceable punctuation."
	if corpus == "" {
		return base
	}
	return fmt.Sprintf("%s Below is important company information, including product details, refund policies, and general policies:\n%s", base, corpus)
}

func (a *completionAnswerer) Answer(ctx context.Context, question string) ([]internal_type.Message, error) {
	completion, err := a.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(a.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(a.prompt),
			openai.UserMessage(question),
		},
	})
	if err != nil {
		return nil, &internal_type.AgentError{Kind: internal_type.AgentTransport, Err: err}
	}
	if len(completion.Choices) == 0 {
		return nil, &internal_type.AgentError{Kind: internal_type.AgentEmpty, Err: fmt.Errorf("no choices returned")}
	}
	text := strings.TrimSpace(completion.Choices[0].Message.Content)
	if text == "" {
		return nil, &internal_type.AgentError{Kind: internal_type.AgentEmpty, Err: fmt.Errorf("empty completion content")}
	}
	return []internal_type.Message{{Role: internal_type.RoleAssistant, Text: text}}, nil
}
