package parse

import (
	"encoding/json"
	"regexp"
	"strings"

	"github.com/abhisek/leerkit/internal/wizard"
)

// Flashcards recovers flashcards from a completion. IDs are left empty for
// the caller to assign. An empty result means nothing usable was found.
func Flashcards(raw string) []wizard.Flashcard {
	if items, ok := topLevelArray(raw, "flashcards"); ok {
		return capFlashcards(strictFlashcards(items))
	}
	return capFlashcards(heuristicFlashcards(raw))
}

func strictFlashcards(items []json.RawMessage) []wizard.Flashcard {
	cards := make([]wizard.Flashcard, 0, len(items))
	for _, item := range items {
		if !conforms(flashcardValidator, item) {
			continue
		}
		var c struct {
			Front string `json:"front"`
			Back  string `json:"back"`
		}
		if err := json.Unmarshal(item, &c); err != nil {
			continue
		}
		p := partialFlashcard{front: strings.TrimSpace(c.Front), back: strings.TrimSpace(c.Back)}
		if p.complete() {
			cards = append(cards, p.card())
		}
	}
	return cards
}

// The first marker on the line ends the prefix; the value may itself
// contain "front" or "back".
var (
	frontMarker = regexp.MustCompile(`(?i)^.*?\bfront\s*:\s*`)
	backMarker  = regexp.MustCompile(`(?i)^.*?\bback\s*:\s*`)
)

// heuristicFlashcards reads "front:"/"back:" lines. A front line starts a
// new record; a record is kept only once it has both sides, so a front
// without a back is dropped when the next front arrives.
func heuristicFlashcards(raw string) []wizard.Flashcard {
	var (
		cards []wizard.Flashcard
		cur   partialFlashcard
	)
	for _, line := range lines(raw) {
		switch {
		case strings.Contains(line, "front:") || strings.Contains(line, "Front:"):
			if cur.complete() {
				cards = append(cards, cur.card())
			}
			cur = partialFlashcard{front: markerValue(frontMarker, line)}
		case strings.Contains(line, "back:") || strings.Contains(line, "Back:"):
			cur.back = markerValue(backMarker, line)
		}
	}
	if cur.complete() {
		cards = append(cards, cur.card())
	}
	return cards
}

func markerValue(marker *regexp.Regexp, line string) string {
	v := line
	if loc := marker.FindStringIndex(line); loc != nil {
		v = line[loc[1]:]
	}
	v = strings.ReplaceAll(v, `"`, "")
	return strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(v), ","))
}

type partialFlashcard struct {
	front string
	back  string
}

func (p partialFlashcard) complete() bool {
	return p.front != "" && p.back != ""
}

func (p partialFlashcard) card() wizard.Flashcard {
	return wizard.Flashcard{Front: p.front, Back: p.back}
}

func capFlashcards(cards []wizard.Flashcard) []wizard.Flashcard {
	if len(cards) > MaxFlashcards {
		return cards[:MaxFlashcards]
	}
	return cards
}
