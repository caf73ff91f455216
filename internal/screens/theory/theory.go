// Package theory is the reader for the generated theory overview.
package theory

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/leerkit/internal/screen"
	"github.com/abhisek/leerkit/internal/ui/components"
	"github.com/abhisek/leerkit/internal/ui/layout"
	"github.com/abhisek/leerkit/internal/ui/theme"
	"github.com/abhisek/leerkit/internal/wizard"
)

// TheoryScreen shows one section at a time.
type TheoryScreen struct {
	sections []wizard.TheorySection
	index    int
	scroll   int
}

var _ screen.Screen = (*TheoryScreen)(nil)
var _ screen.KeyHintProvider = (*TheoryScreen)(nil)

// New creates the reader positioned on the first section.
func New(sections []wizard.TheorySection) *TheoryScreen {
	return &TheoryScreen{sections: sections}
}

func (s *TheoryScreen) Init() tea.Cmd {
	return nil
}

func (s *TheoryScreen) Title() string {
	return "Theorie"
}

func (s *TheoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "←→", Description: "Onderdeel"},
		{Key: "↑↓", Description: "Scroll"},
		{Key: "Esc", Description: "Terug"},
	}
}

func (s *TheoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return s, nil
	}
	switch kmsg.String() {
	case "right", "l", "tab", "n":
		if s.index < len(s.sections)-1 {
			s.index++
			s.scroll = 0
		}
	case "left", "h", "shift+tab", "p":
		if s.index > 0 {
			s.index--
			s.scroll = 0
		}
	case "down", "j":
		s.scroll++
	case "up", "k":
		if s.scroll > 0 {
			s.scroll--
		}
	}
	return s, nil
}

func (s *TheoryScreen) View(width, height int) string {
	if len(s.sections) == 0 {
		return ""
	}
	sec := s.sections[s.index]
	cw := layout.ContentWidth(width)

	var b strings.Builder
	b.WriteString(layout.Centered(theme.Heading.Render(sec.Title), width))
	b.WriteString("\n\n")

	body := lipgloss.NewStyle().Width(cw).Foreground(theme.Text).Render(sec.Content)
	lines := strings.Split(body, "\n")

	room := max(height-5, 1)
	s.scroll = min(s.scroll, max(len(lines)-room, 0))
	end := min(s.scroll+room, len(lines))

	pad := strings.Repeat(" ", max((width-cw)/2, 0))
	for _, l := range lines[s.scroll:end] {
		b.WriteString(pad + l + "\n")
	}
	b.WriteString("\n")

	progress := float64(s.index+1) / float64(len(s.sections))
	bar := components.NewProgressBar(fmt.Sprintf("%d/%d", s.index+1, len(s.sections)), progress, false, cw)
	b.WriteString(pad + bar.View())
	return b.String()
}

// Current returns the section on screen.
func (s *TheoryScreen) Current() wizard.TheorySection {
	return s.sections[s.index]
}
