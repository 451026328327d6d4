// Copyright (c) 2023-2025 RapidaAI
// Author: Prashant Srivastav <prashant@rapida.ai>
//
// Licensed under GPL-2.0 with Rapida Additional Terms.
// See LICENSE.md or contact sales@rapida.ai for commercial usage.
package internal_transcriber

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	internal_type "github.com/rapidaai/avatar/api/avatar-api/internal/type"
	"github.com/rapidaai/avatar/config"
	"github.com/rapidaai/avatar/pkg/commons"
)

// Transcriber converts raw audio bytes (arbitrary input codec) into text.
type Transcriber interface {
	Transcribe(ctx context.Context, audio []byte) (string, error)
}

type whisperTranscriber struct {
	logger commons.Logger
	client openai.Client
	// normalize transcodes arbitrary input audio into the mp3 at dst.
	// Injectable for testing; defaults to an ffmpeg pass.
	normalize func(ctx context.Context, audio []byte, dst string) error
}

// NewWhisperTranscriber builds the whisper-backed transcription adapter.
// Extra request options (base URL overrides for tests) are appended after
// the credential.
func NewWhisperTranscriber(logger commons.Logger, cfg *config.AppConfig, opts ...option.RequestOption) (Transcriber, error) {
	if cfg.OpenAIKey == "" {
		return nil, &internal_type.ConfigurationError{Missing: "OPENAI_API_KEY"}
	}
	clientOpts := append([]option.RequestOption{option.WithAPIKey(cfg.OpenAIKey)}, opts...)
	return &whisperTranscriber{
		logger:    logger,
		client:    openai.NewClient(clientOpts...),
		normalize: normalizeWithFFmpeg,
	}, nil
}

// Transcribe normalizes the audio to mp3 in a transient file, submits it to
// whisper, and removes the transient file on every exit path.
func (w *whisperTranscriber) Transcribe(ctx context.Context, audio []byte) (string, error) {
	if len(audio) == 0 {
		return "", &internal_type.TranscriptionError{Stage: "normalize", Err: fmt.Errorf("no audio data")}
	}

	dst := filepath.Join(os.TempDir(), fmt.Sprintf("avatar-stt-%s.mp3", uuid.NewString()))
	defer func() {
		if err := os.Remove(dst); err != nil && !os.IsNotExist(err) {
			w.logger.Warnf("whisper: could not remove transient audio %s: %v", dst, err)
		}
	}()

	if err := w.normalize(ctx, audio, dst); err != nil {
		return "", &internal_type.TranscriptionError{Stage: "normalize", Err: err}
	}

	f, err := os.Open(dst)
	if err != nil {
		return "", &internal_type.TranscriptionError{Stage: "transcribe", Err: err}
	}
	defer f.Close()

	resp, err := w.client.Audio.Transcriptions.New(ctx, openai.AudioTranscriptionNewParams{
		Model: openai.AudioModelWhisper1,
		File:  f,
	})
	if err != nil {
		return "", &internal_type.TranscriptionError{Stage: "transcribe", Err: err}
	}

	text := strings.TrimSpace(resp.Text)
	if text == "" {
		return "", &internal_type.TranscriptionError{Stage: "transcribe", Err: fmt.Errorf("empty transcript")}
	}
	w.logger.Debugf("whisper: transcribed %d bytes into %q", len(audio), text)
	return text, nil
}

// normalizeWithFFmpeg transcodes whatever container/codec the client sent
// into mono mp3 that whisper accepts.
func normalizeWithFFmpeg(ctx context.Context, audio []byte, dst string) error {
	cmd := exec.CommandContext(ctx, "ffmpeg",
		"-y",
		"-i", "pipe:0",
		"-ar", "44100",
		"-ac", "1",
		"-b:a", "32k",
		dst,
	)
	cmd.Stdin = bytes.NewReader(audio)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("ffmpeg: %w: %s", err, lastLine(stderr.String()))
	}
	return nil
}

func lastLine(s string) string {
	lines := strings.Split(strings.TrimSpace(s), "\n")
	if len(lines) == 0 {
		return ""
	}
	return strings.TrimSpace(lines[len(lines)-1])
}
