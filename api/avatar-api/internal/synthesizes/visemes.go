// Copyright (c) 2023-2025 RapidaAI
// Author: Prashant Srivastav <prashant@rapida.ai>
//
// Licensed under GPL-2.0 with Rapida Additional Terms.
// See LICENSE.md or contact sales@rapida.ai for commercial usage.
package internal_synthesizes

import (
	"strings"

	internal_type "github.com/rapidaai/avatar/api/avatar-api/internal/type"
)

// Mouth cue codes follow the Rhubarb lip-sync alphabet the avatar frontend
// animates with: A closed lips, B slightly open, C open, D wide open,
// E rounded, F puckered, G teeth on lip, H tongue up, X rest.
const restCue = "X"

var letterCues = map[rune]string{
	'p': "A", 'b': "A", 'm': "A",
	'c': "B", 'd': "B", 'g': "B", 'k': "B", 'n': "B",
	's': "B", 't': "B", 'x': "B", 'y': "B", 'z': "B", 'j': "B",
	'e': "C", 'i': "C", 'h': "C",
	'a': "D",
	'o': "E", 'r': "E",
	'u': "F", 'q': "F", 'w': "F",
	'f': "G", 'v': "G",
	'l': "H",
}

// visemesFromAlignment derives mouth cues from per-character synthesis
// timing. Consecutive characters mapping to the same cue are merged into one
// marker; characters without a mouth shape (spaces, punctuation) become rest.
// When the synthesis metadata carries no alignment, a single rest marker is
// returned so the sequence is never empty.
func visemesFromAlignment(a *alignment) []internal_type.Viseme {
	if a == nil || len(a.Characters) == 0 ||
		len(a.CharacterStartTimes) != len(a.Characters) ||
		len(a.CharacterEndTimes) != len(a.Characters) {
		return []internal_type.Viseme{{Value: restCue, Start: 0, Duration: 0}}
	}

	var out []internal_type.Viseme
	for i, ch := range a.Characters {
		cue := cueFor(ch)
		start := a.CharacterStartTimes[i]
		end := a.CharacterEndTimes[i]
		if end < start {
			end = start
		}

		if n := len(out); n > 0 && out[n-1].Value == cue {
			// extend the previous marker over this character
			out[n-1].Duration = end - out[n-1].Start
			continue
		}
		out = append(out, internal_type.Viseme{
			Value:    cue,
			Start:    start,
			Duration: end - start,
		})
	}

	if len(out) == 0 {
		return []internal_type.Viseme{{Value: restCue, Start: 0, Duration: 0}}
	}
	// close the mouth at the end of the utterance
	if out[len(out)-1].Value != restCue {
		last := out[len(out)-1]
		out = append(out, internal_type.Viseme{
			Value: restCue,
			Start: last.Start + last.Duration,
		})
	}
	return out
}

func cueFor(character string) string {
	ch := strings.ToLower(character)
	if ch == "" {
		return restCue
	}
	if cue, ok := letterCues[rune(ch[0])]; ok {
		return cue
	}
	return restCue
}
