// Package quiz runs the practice quiz one question at a time.
package quiz

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/leerkit/internal/practice"
	"github.com/abhisek/leerkit/internal/router"
	"github.com/abhisek/leerkit/internal/screen"
	"github.com/abhisek/leerkit/internal/screens/summary"
	"github.com/abhisek/leerkit/internal/ui/components"
	"github.com/abhisek/leerkit/internal/ui/layout"
	"github.com/abhisek/leerkit/internal/ui/theme"
	"github.com/abhisek/leerkit/internal/wizard"
)

// QuizScreen asks each question once and hands the score to the summary.
type QuizScreen struct {
	questions []wizard.QuizQuestion
	index     int
	mc        components.MultiChoice
	answers   map[string]int
}

var _ screen.Screen = (*QuizScreen)(nil)
var _ screen.KeyHintProvider = (*QuizScreen)(nil)

// New starts a fresh attempt at questions.
func New(questions []wizard.QuizQuestion) *QuizScreen {
	s := &QuizScreen{questions: questions, answers: make(map[string]int)}
	s.load()
	return s
}

func (s *QuizScreen) load() {
	if s.index < len(s.questions) {
		q := s.questions[s.index]
		s.mc = components.NewMultiChoice(q.Question, q.Options, q.CorrectAnswer)
	}
}

func (s *QuizScreen) Init() tea.Cmd {
	return nil
}

func (s *QuizScreen) Title() string {
	return "Oefenquiz"
}

func (s *QuizScreen) KeyHints() []layout.KeyHint {
	if s.mc.Submitted {
		return []layout.KeyHint{
			{Key: "Enter", Description: "Volgende"},
			{Key: "Esc", Description: "Stoppen"},
		}
	}
	return []layout.KeyHint{
		{Key: "A-C", Description: "Antwoord"},
		{Key: "↑↓ Enter", Description: "Kies"},
		{Key: "Esc", Description: "Stoppen"},
	}
}

func (s *QuizScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if len(s.questions) == 0 {
		return s, nil
	}
	if kmsg, ok := msg.(tea.KeyPressMsg); ok && s.mc.Submitted && kmsg.String() == "enter" {
		return s, s.next()
	}

	wasSubmitted := s.mc.Submitted
	s.mc, _ = s.mc.Update(msg)
	if s.mc.Submitted && !wasSubmitted {
		s.answers[s.questions[s.index].ID] = s.mc.ChosenIndex
	}
	return s, nil
}

// next moves on, or replaces this screen with the score once the last
// question has been answered.
func (s *QuizScreen) next() tea.Cmd {
	if s.index < len(s.questions)-1 {
		s.index++
		s.load()
		return nil
	}
	score := practice.ScoreQuiz(s.questions, s.answers)
	questions := s.questions
	retry := func() screen.Screen { return New(questions) }
	return func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: summary.New(score, questions, retry)}
	}
}

func (s *QuizScreen) View(width, height int) string {
	if len(s.questions) == 0 {
		return ""
	}
	cw := layout.ContentWidth(width)
	pad := strings.Repeat(" ", max((width-cw)/2, 0))

	var b strings.Builder
	bar := components.NewProgressBar(
		fmt.Sprintf("Vraag %d van %d", s.index+1, len(s.questions)),
		float64(s.index)/float64(len(s.questions)), false, cw)
	b.WriteString(pad + bar.View() + "\n\n")

	for _, l := range strings.Split(strings.TrimRight(s.mc.View(), "\n"), "\n") {
		b.WriteString(pad + l + "\n")
	}

	if s.mc.Submitted {
		b.WriteString("\n")
		if s.mc.IsCorrect() {
			b.WriteString(pad + theme.Correct.Render("Goed!"))
		} else {
			correct := s.questions[s.index].CorrectAnswer
			b.WriteString(pad + theme.Incorrect.Render("Helaas. Het juiste antwoord is "+practice.Letter(correct)+"."))
		}
	}
	return b.String()
}

// Answers returns the chosen option per question id so far.
func (s *QuizScreen) Answers() map[string]int {
	return s.answers
}
