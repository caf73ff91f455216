package generate

import (
	"encoding/json"
	"testing"

	"github.com/abhisek/leerkit/internal/llm"
)

func TestSchemas_ValidateOuterShapeOnly(t *testing.T) {
	tests := []struct {
		name   string
		schema *llm.Schema
		raw    string
		ok     bool
	}{
		{"quiz with a short entry", QuizSchema, `{"quiz":[{"question":"Q1","options":["A","B","C"],"correctAnswer":1},{"question":"Q2","options":["A","B"],"correctAnswer":0}]}`, true},
		{"quiz empty", QuizSchema, `{"quiz":[]}`, true},
		{"quiz missing", QuizSchema, `{"questions":[]}`, false},
		{"quiz as object", QuizSchema, `{"quiz":{}}`, false},
		{"flashcards with extra id", FlashcardsSchema, `{"flashcards":[{"id":"1","front":"F","back":"B"}]}`, true},
		{"flashcards missing", FlashcardsSchema, `{}`, false},
		{"theory partial", TheorySchema, `{"theory":{"orientation":"O"}}`, true},
		{"theory as array", TheorySchema, `{"theory":[]}`, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.schema.Validate(json.RawMessage(tt.raw))
			if tt.ok && err != nil {
				t.Fatalf("expected valid, got %v", err)
			}
			if !tt.ok && err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}
