package generate

import "github.com/abhisek/leerkit/internal/llm"

// envelope accepts any response carrying key with the given JSON type.
// Entries inside it are filtered by package parse.
func envelope(key, typ string) map[string]any {
	return map[string]any{
		"type":       "object",
		"required":   []any{key},
		"properties": map[string]any{key: map[string]any{"type": typ}},
	}
}

// FlashcardsSchema is requested when structured output is enabled.
var FlashcardsSchema = &llm.Schema{
	Name:        "flashcards",
	Envelope:    envelope("flashcards", "array"),
	Description: "A set of study flashcards with a short prompt on the front and an explanation on the back",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"flashcards": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"front": map[string]any{
							"type":        "string",
							"description": "Korte vraag of term",
						},
						"back": map[string]any{
							"type":        "string",
							"description": "Heldere uitleg of antwoord",
						},
					},
					"required":             []any{"front", "back"},
					"additionalProperties": false,
				},
			},
		},
		"required":             []any{"flashcards"},
		"additionalProperties": false,
	},
}

// QuizSchema is requested when structured output is enabled.
var QuizSchema = &llm.Schema{
	Name:        "quiz",
	Envelope:    envelope("quiz", "array"),
	Description: "Multiple choice questions with three options and the index of the correct one",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"quiz": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"question": map[string]any{
							"type": "string",
						},
						"options": map[string]any{
							"type":     "array",
							"items":    map[string]any{"type": "string"},
							"minItems": 3,
							"maxItems": 3,
						},
						"correctAnswer": map[string]any{
							"type":        "integer",
							"description": "Index (0, 1 of 2) van het juiste antwoord",
							"minimum":     0,
							"maximum":     2,
						},
					},
					"required":             []any{"question", "options", "correctAnswer"},
					"additionalProperties": false,
				},
			},
		},
		"required":             []any{"quiz"},
		"additionalProperties": false,
	},
}

// TheorySchema is requested when structured output is enabled.
var TheorySchema = &llm.Schema{
	Name:        "theory",
	Envelope:    envelope("theory", "object"),
	Description: "A structured theory overview: orientation, key concepts, connections, application and essence",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"theory": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"orientation": map[string]any{"type": "string"},
					"concepts": map[string]any{
						"type": "array",
						"items": map[string]any{
							"type": "object",
							"properties": map[string]any{
								"title":      map[string]any{"type": "string"},
								"definition": map[string]any{"type": "string"},
								"metaphor":   map[string]any{"type": "string"},
							},
							"required":             []any{"title", "definition", "metaphor"},
							"additionalProperties": false,
						},
					},
					"connections": map[string]any{"type": "string"},
					"application": map[string]any{
						"type": "object",
						"properties": map[string]any{
							"example": map[string]any{"type": "string"},
							"steps": map[string]any{
								"type":  "array",
								"items": map[string]any{"type": "string"},
							},
						},
						"required":             []any{"example", "steps"},
						"additionalProperties": false,
					},
					"essence": map[string]any{
						"type":  "array",
						"items": map[string]any{"type": "string"},
					},
				},
				"required":             []any{"orientation", "concepts", "connections", "application", "essence"},
				"additionalProperties": false,
			},
		},
		"required":             []any{"theory"},
		"additionalProperties": false,
	},
}
