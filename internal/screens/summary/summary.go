// Package summary shows the result of a quiz attempt.
package summary

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/leerkit/internal/practice"
	"github.com/abhisek/leerkit/internal/router"
	"github.com/abhisek/leerkit/internal/screen"
	"github.com/abhisek/leerkit/internal/ui/components"
	"github.com/abhisek/leerkit/internal/ui/layout"
	"github.com/abhisek/leerkit/internal/ui/theme"
	"github.com/abhisek/leerkit/internal/wizard"
)

// SummaryScreen displays the quiz score and a per-question review.
type SummaryScreen struct {
	score     practice.Score
	questions []wizard.QuizQuestion
	retry     func() screen.Screen
}

var _ screen.Screen = (*SummaryScreen)(nil)
var _ screen.KeyHintProvider = (*SummaryScreen)(nil)

// New creates a SummaryScreen. retry, when set, builds a fresh attempt.
func New(score practice.Score, questions []wizard.QuizQuestion, retry func() screen.Screen) *SummaryScreen {
	return &SummaryScreen{score: score, questions: questions, retry: retry}
}

func (s *SummaryScreen) Init() tea.Cmd {
	return nil
}

func (s *SummaryScreen) Title() string {
	return "Resultaat"
}

func (s *SummaryScreen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{{Key: "Enter", Description: "Home"}}
	if s.retry != nil {
		hints = append(hints, layout.KeyHint{Key: "R", Description: "Opnieuw"})
	}
	return hints
}

func (s *SummaryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyPressMsg); ok {
		switch kmsg.String() {
		case "enter", "esc":
			return s, func() tea.Msg { return router.PopToRootMsg{} }
		case "r":
			if s.retry != nil {
				next := s.retry()
				return s, func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} }
			}
		}
	}
	return s, nil
}

func (s *SummaryScreen) View(width, height int) string {
	cw := layout.ContentWidth(width)
	sc := s.score

	var b strings.Builder
	b.WriteString(layout.Centered(theme.Title.Render(verdict(sc.Percent)), width))
	b.WriteString("\n\n")
	b.WriteString(layout.Centered(theme.Body.Render(
		fmt.Sprintf("%d van de %d goed (%d%%)", sc.Correct, sc.Total, sc.Percent)), width))
	b.WriteString("\n\n")
	b.WriteString(layout.Centered(components.NewProgressBar("", float64(sc.Percent)/100, true, min(cw, 48)).View(), width))
	b.WriteString("\n\n")

	pad := strings.Repeat(" ", max((width-cw)/2, 0))
	for i, a := range sc.Answers {
		mark := theme.Correct.Render("✓")
		if !a.IsCorrect {
			mark = theme.Incorrect.Render("✗")
		}
		question := ""
		if i < len(s.questions) {
			question = s.questions[i].Question
		}
		line := fmt.Sprintf("%d. %s", i+1, question)
		if !a.IsCorrect {
			line += lipgloss.NewStyle().Foreground(theme.TextDim).Render(
				fmt.Sprintf("  (juist: %s)", practice.Letter(a.Correct)))
		}
		b.WriteString(pad + mark + " " + line + "\n")
	}
	return b.String()
}

func verdict(percent int) string {
	switch {
	case percent >= 80:
		return "Uitstekend!"
	case percent >= 55:
		return "Voldoende, goed bezig"
	default:
		return "Blijf oefenen"
	}
}
