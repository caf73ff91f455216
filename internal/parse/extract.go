// Package parse turns raw completion text into flashcards, quiz questions
// and theory outlines. A JSON block is tried first; flashcards and quiz
// fall back to line heuristics when no usable JSON is found.
package parse

import (
	"encoding/json"
	"strings"
)

const (
	// MaxFlashcards caps the flashcards returned from one completion.
	MaxFlashcards = 15

	// MaxQuizQuestions caps the quiz questions returned from one completion.
	MaxQuizQuestions = 8
)

// ExtractJSON returns the span from the first '{' to the last '}' in raw.
// Markdown fences and prose around the object are ignored.
func ExtractJSON(raw string) (string, bool) {
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start < 0 || end <= start {
		return "", false
	}
	return raw[start : end+1], true
}

// topLevel decodes the extracted JSON block and returns the field named key.
// It reports false when there is no block, the block is not valid JSON, or
// the field is missing or null.
func topLevel(raw, key string) (json.RawMessage, bool) {
	block, ok := ExtractJSON(raw)
	if !ok {
		return nil, false
	}
	var obj map[string]json.RawMessage
	if err := json.Unmarshal([]byte(block), &obj); err != nil {
		return nil, false
	}
	field, ok := obj[key]
	if !ok || string(field) == "null" {
		return nil, false
	}
	return field, true
}

// topLevelArray is topLevel for array-valued fields, returning the elements.
func topLevelArray(raw, key string) ([]json.RawMessage, bool) {
	field, ok := topLevel(raw, key)
	if !ok {
		return nil, false
	}
	var items []json.RawMessage
	if err := json.Unmarshal(field, &items); err != nil {
		return nil, false
	}
	return items, true
}

// lines splits raw into trimmed, non-blank lines.
func lines(raw string) []string {
	var out []string
	for _, l := range strings.Split(raw, "\n") {
		if l = strings.TrimSpace(l); l != "" {
			out = append(out, l)
		}
	}
	return out
}
