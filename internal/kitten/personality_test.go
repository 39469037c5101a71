package kitten

import (
	"errors"
	"testing"
)

func TestApplyPersonality(t *testing.T) {
	tests := []struct {
		name        string
		text        string
		personality Personality
		want        string
	}{
		{
			name:        "friendly passes through",
			text:        "Nice refactor.",
			personality: PersonalityFriendly,
			want:        "Nice refactor.",
		},
		{
			name:        "grizzled adds prefix and trailing dots",
			text:        "That function is too long",
			personality: PersonalityGrizzled,
			want:        "Listen kid, That function is too long.....",
		},
		{
			name:        "grizzled keeps an existing Kid opener",
			text:        "Kid, you did fine",
			personality: PersonalityGrizzled,
			want:        "Kid, you did fine.....",
		},
		{
			name:        "grizzled keeps an existing Listen opener",
			text:        "Listen, this works",
			personality: PersonalityGrizzled,
			want:        "Listen, this works.....",
		},
		{
			name:        "grizzled does not stack dots",
			text:        "Already trailing.....",
			personality: PersonalityGrizzled,
			want:        "Listen kid, Already trailing.....",
		},
		{
			name:        "zen prefixes",
			text:        "the test knows the answer",
			personality: PersonalityZen,
			want:        "Consider this: the test knows the answer",
		},
		{
			name:        "professional prefixes",
			text:        "the build passed",
			personality: PersonalityProfessional,
			want:        "Please note: the build passed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ApplyPersonality(tt.text, tt.personality); got != tt.want {
				t.Errorf("ApplyPersonality() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestAnnouncementText(t *testing.T) {
	tests := []struct {
		tone Tone
		want string
	}{
		{ToneSuccess, "Great news! Tests pass......"},
		{ToneWarning, "Heads up: Tests pass......"},
		{ToneInfo, "Just so you know, Tests pass......"},
		{ToneError, "Oh no! Tests pass......"},
	}
	for _, tt := range tests {
		if got := AnnouncementText("Tests pass", tt.tone); got != tt.want {
			t.Errorf("AnnouncementText(%q) = %q, want %q", tt.tone, got, tt.want)
		}
	}
}

func TestToneVoice(t *testing.T) {
	tests := []struct {
		tone Tone
		want string
	}{
		{ToneSuccess, "expr-voice-3-f"},
		{ToneWarning, "expr-voice-4-m"},
		{ToneError, "expr-voice-5-m"},
		{ToneInfo, "expr-voice-2-m"}, // falls back to the default
	}
	for _, tt := range tests {
		if got := ToneVoice(tt.tone, "expr-voice-2-m"); got != tt.want {
			t.Errorf("ToneVoice(%q) = %q, want %q", tt.tone, got, tt.want)
		}
	}
}

func TestParsePersonality(t *testing.T) {
	if p, err := ParsePersonality(""); err != nil || p != PersonalityFriendly {
		t.Errorf("ParsePersonality(\"\") = %q, %v; want friendly", p, err)
	}
	if p, err := ParsePersonality("zen"); err != nil || p != PersonalityZen {
		t.Errorf("ParsePersonality(zen) = %q, %v", p, err)
	}
	if _, err := ParsePersonality("sarcastic"); !errors.Is(err, ErrUnknownPersonality) {
		t.Errorf("ParsePersonality(sarcastic) error = %v, want ErrUnknownPersonality", err)
	}
}

func TestParseTone(t *testing.T) {
	if tone, err := ParseTone(""); err != nil || tone != ToneInfo {
		t.Errorf("ParseTone(\"\") = %q, %v; want info", tone, err)
	}
	if tone, err := ParseTone("error"); err != nil || tone != ToneError {
		t.Errorf("ParseTone(error) = %q, %v", tone, err)
	}
	if _, err := ParseTone("sad"); !errors.Is(err, ErrUnknownTone) {
		t.Errorf("ParseTone(sad) error = %v, want ErrUnknownTone", err)
	}
}
