// Package kitten holds the shared types and configuration for the audio
// feedback system: tips queued by hook invocations, voices and personalities
// applied before synthesis, and the process-wide Config.
package kitten

import (
	"fmt"
	"time"
)

// TipSource identifies which lifecycle event produced a tip.
type TipSource string

const (
	// SourceEditAnalysis marks tips produced by file-edit analysis hooks.
	SourceEditAnalysis TipSource = "edit-analysis"
	// SourceTaskCompletion marks tips produced by task-completion hooks.
	SourceTaskCompletion TipSource = "task-completion"
)

// Tip is a single piece of feedback text queued for speech. Tips are
// immutable once created and are consumed when the queue is drained.
type Tip struct {
	Text      string    `json:"text"`
	Source    TipSource `json:"source"`
	Timestamp time.Time `json:"timestamp"`
}

// NewTip creates a tip stamped with the current time.
func NewTip(text string, source TipSource) Tip {
	return Tip{Text: text, Source: source, Timestamp: time.Now()}
}

// Voices available in the synthesis model.
var Voices = []string{
	"expr-voice-2-m", "expr-voice-2-f",
	"expr-voice-3-m", "expr-voice-3-f",
	"expr-voice-4-m", "expr-voice-4-f",
	"expr-voice-5-m", "expr-voice-5-f",
}

// IsValidVoice reports whether v names a known voice.
func IsValidVoice(v string) bool {
	for _, known := range Voices {
		if v == known {
			return true
		}
	}
	return false
}

// Personality is a named speaking style applied to text before synthesis.
type Personality string

const (
	PersonalityGrizzled     Personality = "grizzled"
	PersonalityFriendly     Personality = "friendly"
	PersonalityProfessional Personality = "professional"
	PersonalityZen          Personality = "zen"
)

// Personalities lists all valid personalities.
var Personalities = []Personality{
	PersonalityGrizzled,
	PersonalityFriendly,
	PersonalityProfessional,
	PersonalityZen,
}

// ParsePersonality validates a personality name, defaulting to friendly for
// the empty string.
func ParsePersonality(s string) (Personality, error) {
	if s == "" {
		return PersonalityFriendly, nil
	}
	for _, p := range Personalities {
		if Personality(s) == p {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownPersonality, s)
}

// Tone is a named announcement style selecting both a prefix and a voice.
type Tone string

const (
	ToneSuccess Tone = "success"
	ToneWarning Tone = "warning"
	ToneInfo    Tone = "info"
	ToneError   Tone = "error"
)

// Tones lists all valid announcement tones.
var Tones = []Tone{ToneSuccess, ToneWarning, ToneInfo, ToneError}

// ParseTone validates a tone name, defaulting to info for the empty string.
func ParseTone(s string) (Tone, error) {
	if s == "" {
		return ToneInfo, nil
	}
	for _, t := range Tones {
		if Tone(s) == t {
			return t, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownTone, s)
}
