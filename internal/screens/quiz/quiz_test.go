package quiz

import (
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/leerkit/internal/router"
	"github.com/abhisek/leerkit/internal/screens/summary"
	"github.com/abhisek/leerkit/internal/wizard"
)

func questions() []wizard.QuizQuestion {
	return []wizard.QuizQuestion{
		{ID: "q1", Question: "Q1", Options: []string{"a", "b", "c"}, CorrectAnswer: 1},
		{ID: "q2", Question: "Q2", Options: []string{"a", "b", "c"}, CorrectAnswer: 0},
	}
}

func letter(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func TestQuiz_AnswerByLetterAndArrow(t *testing.T) {
	s := New(questions())

	s.Update(letter('b'))
	if got := s.Answers()["q1"]; got != 1 {
		t.Fatalf("q1 answer = %d, want 1", got)
	}

	// Enter after answering moves to the next question.
	if _, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter}); cmd != nil {
		t.Fatal("expected no command before the last question")
	}

	s.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	s.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if got := s.Answers()["q2"]; got != 2 {
		t.Fatalf("q2 answer = %d, want 2", got)
	}
}

func TestQuiz_AnswerIsFinal(t *testing.T) {
	s := New(questions())
	s.Update(letter('a'))
	s.Update(letter('b'))
	if got := s.Answers()["q1"]; got != 0 {
		t.Errorf("q1 answer changed to %d", got)
	}
}

func TestQuiz_FinishShowsSummary(t *testing.T) {
	s := New(questions())
	s.Update(letter('b'))
	s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	s.Update(letter('c'))

	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected summary command after the last question")
	}
	msg, ok := cmd().(router.ReplaceScreenMsg)
	if !ok {
		t.Fatalf("expected ReplaceScreenMsg, got %T", cmd())
	}
	if _, ok := msg.Screen.(*summary.SummaryScreen); !ok {
		t.Errorf("expected summary screen, got %T", msg.Screen)
	}
}
