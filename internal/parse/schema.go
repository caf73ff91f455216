package parse

import (
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// Entry schemas are checked one element at a time so a single malformed
// entry never rejects the batch.

var flashcardEntrySchema = map[string]any{
	"type":     "object",
	"required": []any{"front", "back"},
	"properties": map[string]any{
		"front": map[string]any{"type": "string", "minLength": 1},
		"back":  map[string]any{"type": "string", "minLength": 1},
	},
}

var quizEntrySchema = map[string]any{
	"type":     "object",
	"required": []any{"question", "options", "correctAnswer"},
	"properties": map[string]any{
		"question": map[string]any{"type": "string", "minLength": 1},
		"options": map[string]any{
			"type":     "array",
			"minItems": 3,
			"maxItems": 3,
			"items":    map[string]any{"type": "string"},
		},
		"correctAnswer": map[string]any{"type": "integer", "minimum": 0, "maximum": 2},
	},
}

var (
	flashcardValidator = mustCompile("flashcard-entry", flashcardEntrySchema)
	quizValidator      = mustCompile("quiz-entry", quizEntrySchema)
)

func mustCompile(name string, def map[string]any) *jsonschema.Schema {
	// The compiler wants a decoded JSON document, not Go literals.
	b, err := json.Marshal(def)
	if err != nil {
		panic(fmt.Sprintf("parse: marshal schema %s: %v", name, err))
	}
	var doc any
	if err := json.Unmarshal(b, &doc); err != nil {
		panic(fmt.Sprintf("parse: decode schema %s: %v", name, err))
	}

	c := jsonschema.NewCompiler()
	url := fmt.Sprintf("schema://%s.json", name)
	if err := c.AddResource(url, doc); err != nil {
		panic(fmt.Sprintf("parse: add schema %s: %v", name, err))
	}
	s, err := c.Compile(url)
	if err != nil {
		panic(fmt.Sprintf("parse: compile schema %s: %v", name, err))
	}
	return s
}

// conforms reports whether a single raw entry satisfies schema.
func conforms(schema *jsonschema.Schema, raw json.RawMessage) bool {
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return false
	}
	return schema.Validate(v) == nil
}
