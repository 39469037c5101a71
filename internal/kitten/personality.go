package kitten

import "strings"

// ApplyPersonality rewrites text in the given speaking style. The friendly
// personality leaves text untouched.
func ApplyPersonality(text string, p Personality) string {
	switch p {
	case PersonalityGrizzled:
		if !strings.HasPrefix(text, "Kid,") && !strings.HasPrefix(text, "Listen,") {
			text = "Listen kid, " + text
		}
		if !strings.HasSuffix(text, ".....") {
			text += "....."
		}
	case PersonalityZen:
		text = "Consider this: " + text
	case PersonalityProfessional:
		text = "Please note: " + text
	}
	return text
}

// tonePrefixes are spoken before an announcement message.
var tonePrefixes = map[Tone]string{
	ToneSuccess: "Great news!",
	ToneWarning: "Heads up:",
	ToneInfo:    "Just so you know,",
	ToneError:   "Oh no!",
}

// toneVoices select a voice per announcement tone. Info uses the configured
// default voice, so it is absent here.
var toneVoices = map[Tone]string{
	ToneSuccess: "expr-voice-3-f",
	ToneWarning: "expr-voice-4-m",
	ToneError:   "expr-voice-5-m",
}

// AnnouncementText builds the full spoken form of an announcement. The
// trailing dots force a pause before the synthesis engine cuts off.
func AnnouncementText(message string, tone Tone) string {
	return tonePrefixes[tone] + " " + message + "......"
}

// ToneVoice returns the voice for a tone, or fallback for tones without a
// dedicated voice.
func ToneVoice(tone Tone, fallback string) string {
	if v, ok := toneVoices[tone]; ok {
		return v
	}
	return fallback
}
