// Package flashcards flips through the generated flashcards.
package flashcards

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/leerkit/internal/screen"
	"github.com/abhisek/leerkit/internal/ui/components"
	"github.com/abhisek/leerkit/internal/ui/layout"
	"github.com/abhisek/leerkit/internal/ui/theme"
	"github.com/abhisek/leerkit/internal/wizard"
)

// FlashcardScreen shows one card, front first.
type FlashcardScreen struct {
	cards   []wizard.Flashcard
	index   int
	flipped bool
}

var _ screen.Screen = (*FlashcardScreen)(nil)
var _ screen.KeyHintProvider = (*FlashcardScreen)(nil)

// New creates the flipper on the first card.
func New(cards []wizard.Flashcard) *FlashcardScreen {
	return &FlashcardScreen{cards: cards}
}

func (s *FlashcardScreen) Init() tea.Cmd {
	return nil
}

func (s *FlashcardScreen) Title() string {
	return "Flashcards"
}

func (s *FlashcardScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Spatie", Description: "Omdraaien"},
		{Key: "←→", Description: "Vorige/volgende"},
		{Key: "Esc", Description: "Terug"},
	}
}

func (s *FlashcardScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return s, nil
	}
	switch kmsg.String() {
	case "space", "enter":
		s.flipped = !s.flipped
	case "right", "l", "n":
		if s.index < len(s.cards)-1 {
			s.index++
			s.flipped = false
		}
	case "left", "h", "p":
		if s.index > 0 {
			s.index--
			s.flipped = false
		}
	}
	return s, nil
}

func (s *FlashcardScreen) View(width, height int) string {
	if len(s.cards) == 0 {
		return ""
	}
	card := s.cards[s.index]
	cw := min(layout.ContentWidth(width), 56)

	side, text := "Voorkant", card.Front
	if s.flipped {
		side, text = "Achterkant", card.Back
	}

	var b strings.Builder
	b.WriteString(layout.Centered(theme.Hint.Render(fmt.Sprintf("Kaart %d van %d · %s", s.index+1, len(s.cards), side)), width))
	b.WriteString("\n\n")
	b.WriteString(layout.Centered(components.Card(theme.Body.Render(text), cw, s.flipped), width))
	b.WriteString("\n\n")
	b.WriteString(layout.Centered(theme.Hint.Render("Druk op spatie om de kaart om te draaien"), width))
	return b.String()
}

// Position reports the current card index and whether it shows its back.
func (s *FlashcardScreen) Position() (int, bool) {
	return s.index, s.flipped
}
