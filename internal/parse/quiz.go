package parse

import (
	"encoding/json"
	"regexp"
	"strings"

	"github.com/abhisek/leerkit/internal/wizard"
)

// OptionCount is the number of answer options every question carries.
const OptionCount = 3

// Quiz recovers multiple-choice questions from a completion. Entries
// without a question, exactly three options and a correct index in [0,2]
// are dropped. IDs are left empty for the caller to assign.
func Quiz(raw string) []wizard.QuizQuestion {
	if items, ok := topLevelArray(raw, "quiz"); ok {
		return capQuiz(strictQuiz(items))
	}
	return capQuiz(heuristicQuiz(raw))
}

func strictQuiz(items []json.RawMessage) []wizard.QuizQuestion {
	qs := make([]wizard.QuizQuestion, 0, len(items))
	for _, item := range items {
		if !conforms(quizValidator, item) {
			continue
		}
		var q struct {
			Question      string   `json:"question"`
			Options       []string `json:"options"`
			CorrectAnswer float64  `json:"correctAnswer"`
		}
		if err := json.Unmarshal(item, &q); err != nil {
			continue
		}
		answer := int(q.CorrectAnswer)
		p := partialQuestion{
			question: strings.TrimSpace(q.Question),
			options:  q.Options,
			answer:   &answer,
		}
		if p.complete() {
			qs = append(qs, p.build())
		}
	}
	return qs
}

var (
	questionLine = regexp.MustCompile(`^\d+\.\s*`)
	optionLine   = regexp.MustCompile(`^[ABC]\)\s*`)
	answerToken  = regexp.MustCompile(`\b[ABC]\b`)
)

// heuristicQuiz reads numbered questions with "A)".."C)" options and an
// answer line mentioning "correct" or "antwoord".
func heuristicQuiz(raw string) []wizard.QuizQuestion {
	var (
		qs  []wizard.QuizQuestion
		cur *partialQuestion
	)
	flush := func() {
		if cur != nil && cur.complete() {
			qs = append(qs, cur.build())
		}
	}

	for _, line := range lines(raw) {
		switch {
		case questionLine.MatchString(line):
			flush()
			cur = &partialQuestion{question: strings.TrimSpace(questionLine.ReplaceAllString(line, ""))}
		case optionLine.MatchString(line):
			if cur != nil {
				cur.options = append(cur.options, strings.TrimSpace(optionLine.ReplaceAllString(line, "")))
			}
		case mentionsAnswer(line):
			if cur == nil {
				continue
			}
			if idx, ok := answerIndex(line); ok {
				cur.answer = &idx
			}
		}
	}
	flush()
	return qs
}

// answerIndex names the correct option on an answer line. After a colon
// the first standalone letter wins, so "Antwoord: B (niet A)" reads B.
// Without one the last letter wins, so "Correct is B" skips the C of
// "Correct".
func answerIndex(line string) (int, bool) {
	if _, after, ok := strings.Cut(line, ":"); ok {
		if tok := answerToken.FindString(after); tok != "" {
			return int(tok[0] - 'A'), true
		}
	}
	tokens := answerToken.FindAllString(line, -1)
	if len(tokens) == 0 {
		return 0, false
	}
	return int(tokens[len(tokens)-1][0] - 'A'), true
}

func mentionsAnswer(line string) bool {
	l := strings.ToLower(line)
	return strings.Contains(l, "correct") || strings.Contains(l, "antwoord")
}

// partialQuestion accumulates a question while lines are read. answer is
// nil until a correct option has been named.
type partialQuestion struct {
	question string
	options  []string
	answer   *int
}

func (p *partialQuestion) complete() bool {
	return p.question != "" &&
		len(p.options) == OptionCount &&
		p.answer != nil && *p.answer >= 0 && *p.answer < OptionCount
}

func (p *partialQuestion) build() wizard.QuizQuestion {
	return wizard.QuizQuestion{
		Question:      p.question,
		Options:       append([]string{}, p.options...),
		CorrectAnswer: *p.answer,
	}
}

func capQuiz(qs []wizard.QuizQuestion) []wizard.QuizQuestion {
	if len(qs) > MaxQuizQuestions {
		return qs[:MaxQuizQuestions]
	}
	return qs
}
