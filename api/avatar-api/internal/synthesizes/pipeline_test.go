package internal_synthesizes

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	internal_type "github.com/rapidaai/avatar/api/avatar-api/internal/type"
	"github.com/rapidaai/avatar/pkg/commons"
)

func newTestLogger() commons.Logger {
	l, _ := commons.NewApplicationLogger()
	return l
}

// stubSynthesizer answers from a script and can fail or delay per text.
type stubSynthesizer struct {
	mu       sync.Mutex
	failFor  map[string]bool
	delayFor map[string]time.Duration
	calls    []string
}

func (s *stubSynthesizer) Synthesize(ctx context.Context, text string) (string, []internal_type.Viseme, error) {
	s.mu.Lock()
	s.calls = append(s.calls, text)
	fail := s.failFor[text]
	delay := s.delayFor[text]
	s.mu.Unlock()

	if delay > 0 {
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return "", nil, ctx.Err()
		}
	}
	if fail {
		return "", nil, fmt.Errorf("synthesis refused for %q", text)
	}
	return "audio-for-" + text, []internal_type.Viseme{{Value: "D", Start: 0, Duration: 0.2}}, nil
}

func bundleOf(texts ...string) []internal_type.Message {
	msgs := make([]internal_type.Message, len(texts))
	for i, t := range texts {
		msgs[i] = internal_type.Message{Role: internal_type.RoleAssistant, Text: t}
	}
	return msgs
}

func TestEnrich_AllMessagesGetAudioAndVisemes(t *testing.T) {
	stub := &stubSynthesizer{}
	p := NewPipeline(newTestLogger(), stub, 4)

	in := bundleOf("first", "second", "third")
	out := p.Enrich(context.Background(), in)

	require.Len(t, out, 3)
	for i, msg := range out {
		assert.Equal(t, in[i].Text, msg.Text)
		assert.Equal(t, "audio-for-"+in[i].Text, msg.Audio)
		assert.NotEmpty(t, msg.Visemes)
	}
}

func TestEnrich_PreservesOrderUnderConcurrency(t *testing.T) {
	// the first message resolves last; order must still hold
	stub := &stubSynthesizer{delayFor: map[string]time.Duration{
		"slow": 50 * time.Millisecond,
	}}
	p := NewPipeline(newTestLogger(), stub, 4)

	in := bundleOf("slow", "fast-one", "fast-two")
	out := p.Enrich(context.Background(), in)

	require.Len(t, out, 3)
	assert.Equal(t, "slow", out[0].Text)
	assert.Equal(t, "fast-one", out[1].Text)
	assert.Equal(t, "fast-two", out[2].Text)
	for _, msg := range out {
		assert.NotEmpty(t, msg.Audio)
	}
}

func TestEnrich_SingleFailureDegradesOnlyThatMessage(t *testing.T) {
	stub := &stubSynthesizer{failFor: map[string]bool{"middle": true}}
	p := NewPipeline(newTestLogger(), stub, 4)

	in := bundleOf("start", "middle", "end")
	out := p.Enrich(context.Background(), in)

	require.Len(t, out, 3)

	assert.NotEmpty(t, out[0].Audio)
	assert.NotEmpty(t, out[0].Visemes)

	assert.Equal(t, "middle", out[1].Text)
	assert.Empty(t, out[1].Audio)
	assert.Empty(t, out[1].Visemes)

	assert.NotEmpty(t, out[2].Audio)
	assert.NotEmpty(t, out[2].Visemes)
}

func TestEnrich_TextPreservedExactly(t *testing.T) {
	stub := &stubSynthesizer{}
	p := NewPipeline(newTestLogger(), stub, 2)

	in := bundleOf("Refunds are accepted within 30 days.")
	out := p.Enrich(context.Background(), in)

	require.Len(t, out, 1)
	assert.Equal(t, "Refunds are accepted within 30 days.", out[0].Text)
	assert.NotEmpty(t, out[0].Visemes)
}

func TestEnrich_EmptyBundle(t *testing.T) {
	p := NewPipeline(newTestLogger(), &stubSynthesizer{}, 2)
	out := p.Enrich(context.Background(), nil)
	assert.Empty(t, out)
}

func TestEnrich_SkipsEmptyText(t *testing.T) {
	stub := &stubSynthesizer{}
	p := NewPipeline(newTestLogger(), stub, 2)

	out := p.Enrich(context.Background(), []internal_type.Message{{Role: internal_type.RoleAssistant}})
	require.Len(t, out, 1)
	assert.Empty(t, out[0].Audio)
	assert.Empty(t, stub.calls)
}
