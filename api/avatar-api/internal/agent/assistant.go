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
	"time"

	"github.com/go-resty/resty/v2"

	internal_type "github.com/rapidaai/avatar/api/avatar-api/internal/type"
	"github.com/rapidaai/avatar/config"
	"github.com/rapidaai/avatar/pkg/commons"
)

const assistantBaseURL = "https://api.openai.com/v1"

// assistantAnswerer is the run-lifecycle variant: thread → message → run →
// bounded polling → newest assistant message. All thread/run state lives on
// the backend and is not retained past the request.
type assistantAnswerer struct {
	logger       commons.Logger
	client       *resty.Client
	assistantID  string
	pollInterval time.Duration
	deadline     time.Duration
	maxPolls     int
}

type threadEnvelope struct {
	ID string `json:"id"`
}

type runEnvelope struct {
	ID     string    `json:"id"`
	Status RunStatus `json:"status"`
}

type messageContent struct {
	Type string `json:"type"`
	Text struct {
		Value string `json:"value"`
	} `json:"text"`
}

type messageEnvelope struct {
	ID      string           `json:"id"`
	Role    string           `json:"role"`
	Content []messageContent `json:"content"`
}

type messageListEnvelope struct {
	Data []messageEnvelope `json:"data"`
}

// NewAssistantAnswerer builds the run-lifecycle backend.
func NewAssistantAnswerer(logger commons.Logger, cfg *config.AppConfig) (Answerer, error) {
	if cfg.OpenAIKey == "" {
		return nil, &internal_type.ConfigurationError{Missing: "OPENAI_API_KEY"}
	}
	if cfg.OpenAIAssistantID == "" {
		return nil, &internal_type.ConfigurationError{Missing: "OPENAI_ASSISTANT_ID"}
	}
	client := resty.New().
		SetBaseURL(assistantBaseURL).
		SetAuthToken(cfg.OpenAIKey).
		SetHeader("Content-Type", "application/json").
		SetHeader("OpenAI-Beta", "assistants=v2")

	return &assistantAnswerer{
		logger:       logger,
		client:       client,
		assistantID:  cfg.OpenAIAssistantID,
		pollInterval: cfg.AgentPollInterval,
		deadline:     cfg.AgentDeadline,
		maxPolls:     cfg.AgentMaxPolls,
	}, nil
}

func (a *assistantAnswerer) Answer(ctx context.Context, question string) ([]internal_type.Message, error) {
	thread, err := a.createThread(ctx)
	if err != nil {
		return nil, &internal_type.AgentError{Kind: internal_type.AgentTransport, Err: err}
	}
	a.logger.Debugf("assistant: created thread %s", thread.ID)

	if err := a.postMessage(ctx, thread.ID, question); err != nil {
		return nil, &internal_type.AgentError{Kind: internal_type.AgentTransport, Err: err}
	}

	run, err := a.startRun(ctx, thread.ID)
	if err != nil {
		return nil, &internal_type.AgentError{Kind: internal_type.AgentTransport, Err: err}
	}

	run, err = a.awaitRun(ctx, thread.ID, run)
	if err != nil {
		return nil, err
	}

	if run.Status != RunCompleted {
		return nil, &internal_type.AgentError{
			Kind: internal_type.AgentFailed,
			Err:  fmt.Errorf("run %s ended with status %s", run.ID, run.Status),
		}
	}

	answer, err := a.latestAssistantMessage(ctx, thread.ID)
	if err != nil {
		return nil, err
	}
	return []internal_type.Message{answer}, nil
}

// awaitRun polls the run at a fixed interval until it is terminal, capped by
// both a poll budget and a wall-clock deadline. The backend offers no push
// channel here, so a hanging run must time out on our side.
func (a *assistantAnswerer) awaitRun(ctx context.Context, threadID string, run runEnvelope) (runEnvelope, error) {
	expiry := time.NewTimer(a.deadline)
	defer expiry.Stop()

	for polls := 0; !run.Status.Terminal(); polls++ {
		if polls >= a.maxPolls {
			return run, &internal_type.AgentError{
				Kind: internal_type.AgentTimeout,
				Err:  fmt.Errorf("run %s still %s after %d polls", run.ID, run.Status, polls),
			}
		}
		// requires_action means the run wants tool output we cannot supply.
		if run.Status == RunRequiresAction {
			return run, &internal_type.AgentError{
				Kind: internal_type.AgentFailed,
				Err:  fmt.Errorf("run %s requires tool action", run.ID),
			}
		}

		select {
		case <-ctx.Done():
			return run, &internal_type.AgentError{Kind: internal_type.AgentTransport, Err: ctx.Err()}
		case <-expiry.C:
			return run, &internal_type.AgentError{
				Kind: internal_type.AgentTimeout,
				Err:  fmt.Errorf("run %s exceeded deadline %s", run.ID, a.deadline),
			}
		case <-time.After(a.pollInterval):
		}

		refreshed, err := a.getRun(ctx, threadID, run.ID)
		if err != nil {
			return run, &internal_type.AgentError{Kind: internal_type.AgentTransport, Err: err}
		}
		run = refreshed
		a.logger.Debugf("assistant: run %s status %s", run.ID, run.Status)
	}
	return run, nil
}

func (a *assistantAnswerer) createThread(ctx context.Context) (threadEnvelope, error) {
	var thread threadEnvelope
	resp, err := a.client.R().
		SetContext(ctx).
		SetBody(map[string]interface{}{}).
		SetResult(&thread).
		Post("/threads")
	if err != nil {
		return thread, fmt.Errorf("create thread: %w", err)
	}
	if resp.IsError() {
		return thread, fmt.Errorf("create thread: %s: %s", resp.Status(), resp.String())
	}
	return thread, nil
}

func (a *assistantAnswerer) postMessage(ctx context.Context, threadID, question string) error {
	resp, err := a.client.R().
		SetContext(ctx).
		SetBody(map[string]interface{}{
			"role":    string(internal_type.RoleUser),
			"content": question,
		}).
		Post(fmt.Sprintf("/threads/%s/messages", threadID))
	if err != nil {
		return fmt.Errorf("post message: %w", err)
	}
	if resp.IsError() {
		return fmt.Errorf("post message: %s: %s", resp.Status(), resp.String())
	}
	return nil
}

func (a *assistantAnswerer) startRun(ctx context.Context, threadID string) (runEnvelope, error) {
	var run runEnvelope
	resp, err := a.client.R().
		SetContext(ctx).
		SetBody(map[string]interface{}{"assistant_id": a.assistantID}).
		SetResult(&run).
		Post(fmt.Sprintf("/threads/%s/runs", threadID))
	if err != nil {
		return run, fmt.Errorf("start run: %w", err)
	}
	if resp.IsError() {
		return run, fmt.Errorf("start run: %s: %s", resp.Status(), resp.String())
	}
	return run, nil
}

func (a *assistantAnswerer) getRun(ctx context.Context, threadID, runID string) (runEnvelope, error) {
	var run runEnvelope
	resp, err := a.client.R().
		SetContext(ctx).
		SetResult(&run).
		Get(fmt.Sprintf("/threads/%s/runs/%s", threadID, runID))
	if err != nil {
		return run, fmt.Errorf("get run: %w", err)
	}
	if resp.IsError() {
		return run, fmt.Errorf("get run: %s: %s", resp.Status(), resp.String())
	}
	return run, nil
}

// latestAssistantMessage fetches the thread messages newest-first and returns
// the most recent assistant one.
func (a *assistantAnswerer) latestAssistantMessage(ctx context.Context, threadID string) (internal_type.Message, error) {
	var list messageListEnvelope
	resp, err := a.client.R().
		SetContext(ctx).
		SetQueryParam("order", "desc").
		SetResult(&list).
		Get(fmt.Sprintf("/threads/%s/messages", threadID))
	if err != nil {
		return internal_type.Message{}, &internal_type.AgentError{Kind: internal_type.AgentTransport, Err: fmt.Errorf("list messages: %w", err)}
	}
	if resp.IsError() {
		return internal_type.Message{}, &internal_type.AgentError{Kind: internal_type.AgentTransport, Err: fmt.Errorf("list messages: %s", resp.Status())}
	}

	for _, msg := range list.Data {
		if msg.Role != string(internal_type.RoleAssistant) {
			continue
		}
		var parts []string
		for _, c := range msg.Content {
			if c.Type == "text" && c.Text.Value != "" {
				parts = append(parts, c.Text.Value)
			}
		}
		text := strings.TrimSpace(strings.Join(parts, "\n"))
		if text == "" {
			continue
		}
		return internal_type.Message{Role: internal_type.RoleAssistant, Text: text}, nil
	}
	return internal_type.Message{}, &internal_type.AgentError{
		Kind: internal_type.AgentEmpty,
		Err:  fmt.Errorf("thread %s has no assistant message", threadID),
	}
}
