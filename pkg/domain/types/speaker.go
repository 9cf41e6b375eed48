package types

import "fmt"

// Speaker represents who authored a dialogue turn
type Speaker string

const (
	SpeakerUser      Speaker = "user"
	SpeakerAssistant Speaker = "assistant"
)

// AllSpeakers returns all valid speakers
func AllSpeakers() []Speaker {
	return []Speaker{
		SpeakerUser,
		SpeakerAssistant,
	}
}

// IsValid checks if the speaker is valid
func (s Speaker) IsValid() bool {
	switch s {
	case SpeakerUser, SpeakerAssistant:
		return true
	default:
		return false
	}
}

// String returns the string representation of the speaker
func (s Speaker) String() string {
	return string(s)
}

// ParseSpeaker parses a string into a Speaker
func ParseSpeaker(s string) (Speaker, error) {
	speaker := Speaker(s)
	if !speaker.IsValid() {
		return "", fmt.Errorf("invalid speaker: %s", s)
	}
	return speaker, nil
}
