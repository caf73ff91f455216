package practice

import (
	"reflect"
	"testing"

	"github.com/abhisek/leerkit/internal/wizard"
)

func TestFirstModule(t *testing.T) {
	tests := []struct {
		name     string
		accepted []wizard.Module
		want     wizard.Module
	}{
		{"nothing accepted", nil, wizard.ModuleChatbot},
		{"theory before flashcards", []wizard.Module{wizard.ModuleFlashcards, wizard.ModuleTheory}, wizard.ModuleTheory},
		{"only quiz", []wizard.Module{wizard.ModuleQuiz}, wizard.ModuleQuiz},
		{"chatbot wins", []wizard.Module{wizard.ModuleQuiz, wizard.ModuleChatbot}, wizard.ModuleChatbot},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FirstModule(tt.accepted); got != tt.want {
				t.Errorf("FirstModule(%v) = %s, want %s", tt.accepted, got, tt.want)
			}
		})
	}
}

func TestAvailable(t *testing.T) {
	got := Available([]wizard.Module{wizard.ModuleQuiz, wizard.ModuleFlashcards, wizard.ModuleChatbot})
	want := []wizard.Module{wizard.ModuleChatbot, wizard.ModuleFlashcards, wizard.ModuleQuiz}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Available = %v, want %v", got, want)
	}
}

func TestLetter(t *testing.T) {
	for i, want := range []string{"A", "B", "C"} {
		if got := Letter(i); got != want {
			t.Errorf("Letter(%d) = %q, want %q", i, got, want)
		}
	}
	if Letter(-1) != "?" {
		t.Error("negative index should be ?")
	}
}

func TestScoreQuiz(t *testing.T) {
	questions := []wizard.QuizQuestion{
		{ID: "q1", CorrectAnswer: 0},
		{ID: "q2", CorrectAnswer: 2},
		{ID: "q3", CorrectAnswer: 1},
	}
	s := ScoreQuiz(questions, map[string]int{"q1": 0, "q2": 1})

	if s.Correct != 1 || s.Total != 3 || s.Percent != 33 {
		t.Errorf("unexpected score %+v", s)
	}
	if !s.Answers[0].IsCorrect || s.Answers[1].IsCorrect {
		t.Errorf("unexpected per-question results %+v", s.Answers)
	}
	if s.Answers[2].Answered || s.Answers[2].Chosen != -1 {
		t.Errorf("q3 should be unanswered, got %+v", s.Answers[2])
	}
}

func TestScoreQuiz_Empty(t *testing.T) {
	s := ScoreQuiz(nil, nil)
	if s.Total != 0 || s.Percent != 0 {
		t.Errorf("unexpected score %+v", s)
	}
}
