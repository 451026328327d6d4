// Copyright (c) 2023-2025 RapidaAI
// Author: Prashant Srivastav <prashant@rapida.ai>
//
// Licensed under GPL-2.0 with Rapida Additional Terms.
// See LICENSE.md or contact sales@rapida.ai for commercial usage.
package internal_synthesizes

import (
	"context"

	"golang.org/x/sync/errgroup"

	internal_type "github.com/rapidaai/avatar/api/avatar-api/internal/type"
	"github.com/rapidaai/avatar/pkg/commons"
)

// Enricher attaches audio and viseme timing to a message bundle.
type Enricher interface {
	// Enrich never shortens or reorders the bundle. A message whose
	// synthesis fails comes back text-only.
	Enrich(ctx context.Context, bundle []internal_type.Message) []internal_type.Message
}

type pipeline struct {
	logger      commons.Logger
	synthesizer Synthesizer
	concurrency int
}

// NewPipeline builds the enrichment pipeline over the given synthesizer.
func NewPipeline(logger commons.Logger, synthesizer Synthesizer, concurrency int) Enricher {
	if concurrency < 1 {
		concurrency = 1
	}
	return &pipeline{
		logger:      logger,
		synthesizer: synthesizer,
		concurrency: concurrency,
	}
}

// Enrich synthesizes every message concurrently and reassembles results by
// index, so ordering is decided by position rather than completion time.
func (p *pipeline) Enrich(ctx context.Context, bundle []internal_type.Message) []internal_type.Message {
	out := make([]internal_type.Message, len(bundle))
	copy(out, bundle)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.concurrency)

	for i := range out {
		g.Go(func() error {
			msg := &out[i]
			if msg.Text == "" {
				return nil
			}
			audio, visemes, err := p.synthesizer.Synthesize(gctx, msg.Text)
			if err != nil {
				// degrade this message to text-only, keep the bundle
				synthErr := &internal_type.SynthesisError{Index: i, Err: err}
				p.logger.Errorf("enrichment degraded: %v", synthErr)
				return nil
			}
			msg.Audio = audio
			msg.Visemes = visemes
			return nil
		})
	}
	// goroutines report every failure as a degradation, never an error
	_ = g.Wait()
	return out
}
