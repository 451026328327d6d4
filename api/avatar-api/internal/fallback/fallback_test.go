package internal_fallback

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	internal_type "github.com/rapidaai/avatar/api/avatar-api/internal/type"
	"github.com/rapidaai/avatar/pkg/commons"
)

func newTestLogger() commons.Logger {
	l, _ := commons.NewApplicationLogger()
	return l
}

func TestTriggeredBy_Greetings(t *testing.T) {
	p := New(newTestLogger(), nil)

	for _, q := range []string{"hello", "Hello!", "  HEY  ", "good morning."} {
		bundle, ok := p.TriggeredBy(q)
		assert.True(t, ok, q)
		require.NotEmpty(t, bundle)
		assert.Equal(t, internal_type.RoleAssistant, bundle[0].Role)
		assert.NotEmpty(t, bundle[0].Text)
	}
}

func TestTriggeredBy_RealQuestionPassesThrough(t *testing.T) {
	p := New(newTestLogger(), nil)

	_, ok := p.TriggeredBy("What is your refund policy?")
	assert.False(t, ok)

	_, ok = p.TriggeredBy("")
	assert.False(t, ok)
}

func TestTriggeredBy_ConfiguredExtras(t *testing.T) {
	p := New(newTestLogger(), []string{"Howdy", " yo "})

	_, ok := p.TriggeredBy("howdy")
	assert.True(t, ok)
	_, ok = p.TriggeredBy("yo!")
	assert.True(t, ok)
}

func TestDefaultFor_Deterministic(t *testing.T) {
	p := New(newTestLogger(), nil)

	first := p.DefaultFor("What is your refund policy?")
	second := p.DefaultFor("What is your refund policy?")
	assert.Equal(t, first, second)
	require.NotEmpty(t, first)
	for _, msg := range first {
		assert.NotEmpty(t, msg.Text)
	}
}

func TestDefaultFor_ReturnsFreshSlice(t *testing.T) {
	p := New(newTestLogger(), nil)

	first := p.DefaultFor("q")
	first[0].Text = "mutated"
	second := p.DefaultFor("q")
	assert.NotEqual(t, "mutated", second[0].Text)
}

func TestDefaultFor_GreetingStillCanned(t *testing.T) {
	p := New(newTestLogger(), nil)

	bundle := p.DefaultFor("hello")
	triggered, ok := p.TriggeredBy("hello")
	require.True(t, ok)
	assert.Equal(t, triggered, bundle)
}
