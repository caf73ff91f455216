package home

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/leerkit/internal/practice"
	"github.com/abhisek/leerkit/internal/router"
	"github.com/abhisek/leerkit/internal/screen"
	"github.com/abhisek/leerkit/internal/screens/flashcards"
	"github.com/abhisek/leerkit/internal/screens/placeholder"
	"github.com/abhisek/leerkit/internal/screens/quiz"
	"github.com/abhisek/leerkit/internal/screens/theory"
	"github.com/abhisek/leerkit/internal/screens/tutor"
	"github.com/abhisek/leerkit/internal/ui/components"
	"github.com/abhisek/leerkit/internal/ui/layout"
	"github.com/abhisek/leerkit/internal/ui/theme"
	"github.com/abhisek/leerkit/internal/wizard"
)

var moduleLabels = map[wizard.Module]string{
	wizard.ModuleChatbot:    "AI Tutor",
	wizard.ModuleTheory:     "Theorie",
	wizard.ModuleFlashcards: "Flashcards",
	wizard.ModuleQuiz:       "Oefenquiz",
}

// HomeScreen lists the accepted modules of the finished environment.
type HomeScreen struct {
	menu    components.Menu
	modules []wizard.Module
	subject string
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ screen.KeyHintProvider = (*HomeScreen)(nil)

// New creates the home screen for st. The first module in practice order
// is preselected; with nothing accepted only the tutor is offered.
func New(st wizard.State, replier tutor.Replier) *HomeScreen {
	modules := practice.Available(st.AcceptedModules)
	if len(modules) == 0 {
		modules = []wizard.Module{practice.FirstModule(nil)}
	}

	items := make([]components.MenuItem, 0, len(modules)+1)
	for _, m := range modules {
		open, hint := moduleScreen(m, st, replier)
		items = append(items, components.MenuItem{
			Label: moduleLabels[m],
			Hint:  hint,
			Action: func() tea.Cmd {
				return func() tea.Msg { return router.PushScreenMsg{Screen: open()} }
			},
		})
	}
	items = append(items, components.MenuItem{Label: "Afsluiten", Action: func() tea.Cmd { return tea.Quit }})

	menu := components.NewMenu(items)
	first := practice.FirstModule(st.AcceptedModules)
	for i, m := range modules {
		if m == first {
			menu.Selected = i
			break
		}
	}

	return &HomeScreen{menu: menu, modules: modules, subject: subjectLine(st.Content)}
}

// moduleScreen returns a factory for the module's screen and a short
// menu hint describing its content.
func moduleScreen(m wizard.Module, st wizard.State, replier tutor.Replier) (func() screen.Screen, string) {
	g := st.Generated
	empty := func(title string) func() screen.Screen {
		return func() screen.Screen {
			return placeholder.New(title, "Voor deze module is nog niets gegenereerd.\nRond eerst de wizard af.")
		}
	}

	switch m {
	case wizard.ModuleChatbot:
		return func() screen.Screen { return tutor.New(replier, st.Generated.Chatbot, st.Content) }, ""
	case wizard.ModuleTheory:
		if len(g.TheoryOverview) == 0 {
			return empty("Theorie"), "leeg"
		}
		return func() screen.Screen { return theory.New(g.TheoryOverview) }, fmt.Sprintf("%d onderdelen", len(g.TheoryOverview))
	case wizard.ModuleFlashcards:
		if len(g.Flashcards) == 0 {
			return empty("Flashcards"), "leeg"
		}
		return func() screen.Screen { return flashcards.New(g.Flashcards) }, fmt.Sprintf("%d kaarten", len(g.Flashcards))
	default:
		if len(g.Quiz) == 0 {
			return empty("Oefenquiz"), "leeg"
		}
		return func() screen.Screen { return quiz.New(g.Quiz) }, fmt.Sprintf("%d vragen", len(g.Quiz))
	}
}

func subjectLine(c wizard.ContentInput) string {
	s := strings.TrimSpace(c.SubjectText)
	if s == "" && len(c.UploadedFileContents) > 0 {
		s = "Geüpload document"
	}
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i]
	}
	if r := []rune(s); len(r) > 48 {
		s = string(r[:48]) + "…"
	}
	return s
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	cw := layout.ContentWidth(width)

	var b strings.Builder
	b.WriteString(layout.Centered(theme.Title.Render("Jouw leeromgeving"), width))
	b.WriteString("\n")
	if h.subject != "" {
		b.WriteString(layout.Centered(theme.Hint.Render(h.subject), width))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(layout.Centered(components.Card(h.menu.View(), min(cw, 48), false), width))

	return lipgloss.NewStyle().
		Height(height).
		AlignVertical(lipgloss.Center).
		Render(b.String())
}

func (h *HomeScreen) Title() string {
	return "Home"
}

func (h *HomeScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Kies"},
		{Key: "Enter", Description: "Open"},
		{Key: "Ctrl+C", Description: "Stop"},
	}
}

// Modules returns the modules offered, in menu order.
func (h *HomeScreen) Modules() []wizard.Module {
	return h.modules
}

// Selected returns the module under the cursor, if any.
func (h *HomeScreen) Selected() (wizard.Module, bool) {
	if h.menu.Selected < len(h.modules) {
		return h.modules[h.menu.Selected], true
	}
	return "", false
}
