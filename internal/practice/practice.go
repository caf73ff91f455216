// Package practice holds the logic of the finished learning environment:
// which module opens first and how a quiz attempt is scored.
package practice

import (
	"math"

	"github.com/abhisek/leerkit/internal/wizard"
)

// FirstModule returns the module the environment opens on: the first
// accepted one in practice order, or the chatbot when nothing was accepted.
func FirstModule(accepted []wizard.Module) wizard.Module {
	for _, m := range wizard.Modules {
		for _, a := range accepted {
			if a == m {
				return m
			}
		}
	}
	return wizard.ModuleChatbot
}

// Available lists the accepted modules in practice order.
func Available(accepted []wizard.Module) []wizard.Module {
	var out []wizard.Module
	for _, m := range wizard.Modules {
		for _, a := range accepted {
			if a == m {
				out = append(out, m)
				break
			}
		}
	}
	return out
}

// Letter returns the option label for index i: 0 is "A".
func Letter(i int) string {
	if i < 0 || i > 25 {
		return "?"
	}
	return string(rune('A' + i))
}

// Answer is the result for one question.
type Answer struct {
	QuestionID string `json:"questionId"`
	Chosen     int    `json:"chosen"`
	Correct    int    `json:"correct"`
	Answered   bool   `json:"answered"`
	IsCorrect  bool   `json:"isCorrect"`
}

// Score is the result of a quiz attempt.
type Score struct {
	Correct int      `json:"correct"`
	Total   int      `json:"total"`
	Percent int      `json:"percent"`
	Answers []Answer `json:"answers"`
}

// ScoreQuiz checks answers, keyed by question id, against questions.
// Unanswered questions count as wrong.
func ScoreQuiz(questions []wizard.QuizQuestion, answers map[string]int) Score {
	s := Score{Total: len(questions), Answers: make([]Answer, len(questions))}
	for i, q := range questions {
		chosen, ok := answers[q.ID]
		a := Answer{QuestionID: q.ID, Correct: q.CorrectAnswer, Answered: ok, Chosen: -1}
		if ok {
			a.Chosen = chosen
			a.IsCorrect = chosen == q.CorrectAnswer
		}
		if a.IsCorrect {
			s.Correct++
		}
		s.Answers[i] = a
	}
	if s.Total > 0 {
		s.Percent = int(math.Round(float64(s.Correct) / float64(s.Total) * 100))
	}
	return s
}
