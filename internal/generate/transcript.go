package generate

import (
	"fmt"
	"strings"
)

// Speaker identifies who said a chat turn.
type Speaker string

const (
	SpeakerStudent Speaker = "user"
	SpeakerTutor   Speaker = "assistant"
)

// Turn is one message in a tutor conversation.
type Turn struct {
	Role    Speaker `json:"role"`
	Content string  `json:"content"`
}

// Label returns the name the speaker goes by in a transcript.
func (s Speaker) Label() string {
	if s == SpeakerStudent {
		return "Leerling"
	}
	return "Tutor"
}

// FormatTranscript renders turns as "Leerling: ..." and "Tutor: ..."
// blocks separated by blank lines.
func FormatTranscript(turns []Turn) string {
	parts := make([]string, len(turns))
	for i, t := range turns {
		parts[i] = fmt.Sprintf("%s: %s", t.Role.Label(), t.Content)
	}
	return strings.Join(parts, "\n\n")
}
