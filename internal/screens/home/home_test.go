package home

import (
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/leerkit/internal/router"
	"github.com/abhisek/leerkit/internal/screens/placeholder"
	"github.com/abhisek/leerkit/internal/screens/theory"
	"github.com/abhisek/leerkit/internal/wizard"
)

func stateWith(accepted ...wizard.Module) wizard.State {
	st := wizard.InitialState()
	st.AcceptedModules = accepted
	st.Generated.TheoryOverview = []wizard.TheorySection{{ID: "1", Title: "Oriëntatie", Content: "Cellen", Kind: wizard.SectionOrientation}}
	return st
}

func TestHome_ModulesInPracticeOrder(t *testing.T) {
	h := New(stateWith(wizard.ModuleQuiz, wizard.ModuleTheory), nil)

	got := h.Modules()
	if len(got) != 2 || got[0] != wizard.ModuleTheory || got[1] != wizard.ModuleQuiz {
		t.Fatalf("Modules = %v, want [theory quiz]", got)
	}
	if m, ok := h.Selected(); !ok || m != wizard.ModuleTheory {
		t.Errorf("Selected = %v, want theory preselected", m)
	}
}

func TestHome_NothingAcceptedOffersTutor(t *testing.T) {
	h := New(stateWith(), nil)
	if got := h.Modules(); len(got) != 1 || got[0] != wizard.ModuleChatbot {
		t.Errorf("Modules = %v, want [chatbot]", got)
	}
}

func TestHome_EnterOpensModule(t *testing.T) {
	h := New(stateWith(wizard.ModuleTheory), nil)

	_, cmd := h.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected a command on Enter")
	}
	push, ok := cmd().(router.PushScreenMsg)
	if !ok {
		t.Fatalf("expected PushScreenMsg, got %T", cmd())
	}
	if _, ok := push.Screen.(*theory.TheoryScreen); !ok {
		t.Errorf("expected theory screen, got %T", push.Screen)
	}
}

func TestHome_EmptyModuleShowsPlaceholder(t *testing.T) {
	h := New(stateWith(wizard.ModuleFlashcards), nil)

	_, cmd := h.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	push := cmd().(router.PushScreenMsg)
	if _, ok := push.Screen.(*placeholder.PlaceholderScreen); !ok {
		t.Errorf("expected placeholder for a module without content, got %T", push.Screen)
	}
}

func TestHome_NavigateToQuit(t *testing.T) {
	h := New(stateWith(wizard.ModuleTheory), nil)
	h.Update(tea.KeyPressMsg{Code: tea.KeyDown})

	if _, ok := h.Selected(); ok {
		t.Error("cursor should be on the quit item")
	}
	if view := h.View(100, 30); view == "" {
		t.Error("expected non-empty view")
	}
}
