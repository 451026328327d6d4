package internal_synthesizes

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	internal_type "github.com/rapidaai/avatar/api/avatar-api/internal/type"
	"github.com/rapidaai/avatar/config"
	"github.com/rapidaai/avatar/pkg/utils"
)

func alignmentOf(chars string, step float64) *alignment {
	a := &alignment{}
	for i, ch := range chars {
		a.Characters = append(a.Characters, string(ch))
		a.CharacterStartTimes = append(a.CharacterStartTimes, float64(i)*step)
		a.CharacterEndTimes = append(a.CharacterEndTimes, float64(i+1)*step)
	}
	return a
}

func TestVisemesFromAlignment_MergesRuns(t *testing.T) {
	// "mm" both map to A and must merge into one marker
	v := visemesFromAlignment(alignmentOf("mma", 0.1))

	require.GreaterOrEqual(t, len(v), 2)
	assert.Equal(t, "A", v[0].Value)
	assert.InDelta(t, 0.0, v[0].Start, 1e-9)
	assert.InDelta(t, 0.2, v[0].Duration, 1e-9)
	assert.Equal(t, "D", v[1].Value)
	assert.InDelta(t, 0.2, v[1].Start, 1e-9)
}

func TestVisemesFromAlignment_EndsAtRest(t *testing.T) {
	v := visemesFromAlignment(alignmentOf("pa", 0.1))
	assert.Equal(t, restCue, v[len(v)-1].Value)
}

func TestVisemesFromAlignment_PunctuationIsRest(t *testing.T) {
	v := visemesFromAlignment(alignmentOf("a !", 0.1))
	// space and bang collapse into a single rest run after the vowel
	require.Len(t, v, 2)
	assert.Equal(t, "D", v[0].Value)
	assert.Equal(t, restCue, v[1].Value)
}

func TestVisemesFromAlignment_MissingAlignment(t *testing.T) {
	for _, a := range []*alignment{
		nil,
		{},
		{Characters: []string{"a"}}, // mismatched time arrays
	} {
		v := visemesFromAlignment(a)
		require.Len(t, v, 1)
		assert.Equal(t, restCue, v[0].Value)
	}
}

func TestVisemesFromAlignment_StartsAndDurationsMonotonic(t *testing.T) {
	v := visemesFromAlignment(alignmentOf("hello world", 0.05))
	last := -1.0
	for _, marker := range v {
		assert.Greater(t, marker.Start, last)
		assert.GreaterOrEqual(t, marker.Duration, 0.0)
		last = marker.Start
	}
}

func TestElevenLabsSynthesize_ParsesAlignment(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/text-to-speech/test-voice/with-timestamps", r.URL.Path)
		assert.Equal(t, "test-el-key", r.Header.Get("xi-api-key"))

		var body map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "hi", body["text"])

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(synthesisOutput{
			AudioBase64: "bXAzLWJ5dGVz",
			Alignment:   alignmentOf("hi", 0.1),
		})
	}))
	defer srv.Close()

	s, err := NewElevenLabsSynthesizer(newTestLogger(), &config.AppConfig{
		ElevenLabsKey:   "test-el-key",
		ElevenLabsVoice: "default-voice",
		ElevenLabsModel: "eleven_turbo_v2_5",
	}, utils.Option{"speaker.voice": "test-voice"})
	require.NoError(t, err)
	s.(*elevenLabsSynthesizer).client.SetBaseURL(srv.URL)

	audio, visemes, err := s.Synthesize(context.Background(), "hi")
	require.NoError(t, err)
	assert.Equal(t, "bXAzLWJ5dGVz", audio)
	assert.NotEmpty(t, visemes)
	assert.Equal(t, "C", visemes[0].Value) // h and i share the C cue
}

func TestElevenLabsSynthesize_BackendError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"detail": "voice not found"}`, http.StatusNotFound)
	}))
	defer srv.Close()

	s, err := NewElevenLabsSynthesizer(newTestLogger(), &config.AppConfig{ElevenLabsKey: "k"}, utils.Option{})
	require.NoError(t, err)
	s.(*elevenLabsSynthesizer).client.SetBaseURL(srv.URL)

	_, _, err = s.Synthesize(context.Background(), "hi")
	assert.Error(t, err)
}

func TestNewElevenLabsSynthesizer_MissingKey(t *testing.T) {
	_, err := NewElevenLabsSynthesizer(newTestLogger(), &config.AppConfig{}, utils.Option{})
	var cfgErr *internal_type.ConfigurationError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "ELEVEN_LABS_API_KEY", cfgErr.Missing)
}
