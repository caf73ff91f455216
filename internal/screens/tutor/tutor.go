// Package tutor is the chat screen of the practice environment.
package tutor

import (
	"context"
	"errors"
	"slices"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/leerkit/internal/generate"
	"github.com/abhisek/leerkit/internal/screen"
	"github.com/abhisek/leerkit/internal/ui/components"
	"github.com/abhisek/leerkit/internal/ui/layout"
	"github.com/abhisek/leerkit/internal/ui/theme"
	"github.com/abhisek/leerkit/internal/wizard"
)

// fallbackWelcome opens the conversation when no welcome was generated.
const fallbackWelcome = "Hoi! Ik ben je AI-tutor. Waar wil je mee beginnen?"

// Replier answers a student message as the tutor. *generate.Service
// implements it.
type Replier interface {
	Reply(ctx context.Context, persona string, history []generate.Turn, message string) (string, error)
}

type replyMsg struct {
	text string
	err  error
}

// TutorScreen is a conversation with the session's tutor.
type TutorScreen struct {
	replier Replier
	persona string
	history []generate.Turn
	input   components.TextInput
	waiting bool
	errMsg  string
}

var _ screen.Screen = (*TutorScreen)(nil)
var _ screen.KeyHintProvider = (*TutorScreen)(nil)

// New creates the tutor screen. Without a generated chatbot the persona
// is assembled from content and a generic welcome is shown.
func New(replier Replier, cb *wizard.ChatbotConfig, content wizard.ContentInput) *TutorScreen {
	persona := generate.TutorPrompt(content)
	welcome := fallbackWelcome
	if cb != nil {
		if cb.Prompt != "" {
			persona = cb.Prompt
		}
		if cb.WelcomeMessage != "" {
			welcome = cb.WelcomeMessage
		}
	}
	return &TutorScreen{
		replier: replier,
		persona: persona,
		history: []generate.Turn{{Role: generate.SpeakerTutor, Content: welcome}},
		input:   components.NewTextInput("Stel je vraag...", 2000),
	}
}

func (s *TutorScreen) Init() tea.Cmd {
	return s.input.Init()
}

func (s *TutorScreen) Title() string {
	return "AI Tutor"
}

func (s *TutorScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Verstuur"},
		{Key: "Esc", Description: "Terug"},
	}
}

func (s *TutorScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case replyMsg:
		s.waiting = false
		if msg.err != nil {
			s.errMsg = errorText(msg.err)
			return s, nil
		}
		s.history = append(s.history, generate.Turn{Role: generate.SpeakerTutor, Content: msg.text})
		return s, nil

	case tea.KeyPressMsg:
		if msg.String() == "enter" {
			return s, s.send()
		}
	}

	if s.waiting {
		return s, nil
	}
	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

// send posts the typed message and asks the tutor for a reply.
func (s *TutorScreen) send() tea.Cmd {
	text := s.input.Value()
	if text == "" || s.waiting {
		return nil
	}
	if s.replier == nil {
		s.errMsg = "AI is niet geconfigureerd."
		return nil
	}

	prior := slices.Clone(s.history)
	s.history = append(s.history, generate.Turn{Role: generate.SpeakerStudent, Content: text})
	s.input.Reset()
	s.waiting = true
	s.errMsg = ""

	replier, persona := s.replier, s.persona
	return func() tea.Msg {
		reply, err := replier.Reply(context.Background(), persona, prior, text)
		return replyMsg{text: reply, err: err}
	}
}

func errorText(err error) string {
	var gerr *generate.Error
	if errors.As(err, &gerr) {
		return gerr.Message
	}
	return err.Error()
}

func (s *TutorScreen) View(width, height int) string {
	cw := layout.ContentWidth(width)
	s.input.SetWidth(cw - 4)

	var lines []string
	for _, t := range s.history {
		label := theme.Tutor.Render(t.Role.Label() + ":")
		if t.Role == generate.SpeakerStudent {
			label = theme.Student.Render(t.Role.Label() + ":")
		}
		body := lipgloss.NewStyle().Width(cw).Foreground(theme.Text).Render(t.Content)
		lines = append(lines, label)
		lines = append(lines, strings.Split(body, "\n")...)
		lines = append(lines, "")
	}
	if s.waiting {
		lines = append(lines, theme.Hint.Render("De tutor denkt na..."), "")
	}
	if s.errMsg != "" {
		lines = append(lines, theme.Incorrect.Render(s.errMsg), "")
	}

	// Keep the newest lines; the input takes the bottom two rows.
	if room := height - 2; room > 0 && len(lines) > room {
		lines = lines[len(lines)-room:]
	}

	pad := strings.Repeat(" ", max((width-cw)/2, 0))
	var b strings.Builder
	for _, l := range lines {
		b.WriteString(pad + l + "\n")
	}
	b.WriteString("\n" + pad + s.input.View())
	return b.String()
}

// History returns the conversation so far.
func (s *TutorScreen) History() []generate.Turn {
	return s.history
}
