package llm

import (
	"regexp"
	"strings"
)

// ModelCost holds pricing in USD per one million tokens.
type ModelCost struct {
	InputPerMTok  float64
	OutputPerMTok float64
}

// Cost returns the USD cost of a call with the given token counts.
func (c ModelCost) Cost(inputTokens, outputTokens int) float64 {
	return float64(inputTokens)*c.InputPerMTok/1_000_000 +
		float64(outputTokens)*c.OutputPerMTok/1_000_000
}

// versionSuffix matches the snapshot suffixes providers append to the
// model they report back ("-001", "-20250514").
var versionSuffix = regexp.MustCompile(`-(\d{3}|\d{8})$`)

// LookupCost returns the pricing for the model a response reported, or
// nil if unknown. OpenRouter ids ("google/gemini-2.5-flash"), Gemini
// resource names ("models/gemini-2.5-pro") and snapshot suffixes resolve
// to the base model. OpenRouter ":free" variants cost nothing.
func LookupCost(modelID string) *ModelCost {
	id := strings.ToLower(strings.TrimSpace(modelID))
	if base, ok := strings.CutSuffix(id, ":free"); ok && base != "" {
		return &ModelCost{}
	}
	if i := strings.LastIndex(id, "/"); i >= 0 {
		id = id[i+1:]
	}

	for _, candidate := range []string{id, versionSuffix.ReplaceAllString(id, "")} {
		if c, ok := modelCosts[candidate]; ok {
			return &c
		}
	}
	return nil
}

// modelCosts covers the default and smart models of each provider, plus
// the common alternatives users configure. From models.dev, 2026-02.
var modelCosts = map[string]ModelCost{
	// Gemini, the default provider
	"gemini-2.0-flash":       {0.1, 0.4},
	"gemini-2.0-flash-lite":  {0.075, 0.3},
	"gemini-2.5-flash":       {0.3, 2.5},
	"gemini-2.5-flash-lite":  {0.1, 0.4},
	"gemini-2.5-pro":         {1.25, 10},
	"gemini-3-flash-preview": {0.5, 3},
	"gemini-3-pro-preview":   {2, 12},
	"gemini-flash-latest":    {0.3, 2.5},

	// OpenAI
	"gpt-4o":       {2.5, 10},
	"gpt-4o-mini":  {0.15, 0.6},
	"gpt-4.1":      {2, 8},
	"gpt-4.1-mini": {0.4, 1.6},
	"gpt-4.1-nano": {0.1, 0.4},
	"gpt-5":        {1.25, 10},
	"gpt-5-mini":   {0.25, 2},
	"gpt-5-nano":   {0.05, 0.4},

	// Anthropic
	"claude-haiku-4-5":  {1, 5},
	"claude-sonnet-4":   {3, 15},
	"claude-sonnet-4-0": {3, 15},
	"claude-sonnet-4-5": {3, 15},
	"claude-opus-4-5":   {5, 25},
	"claude-3-5-haiku":  {0.8, 4},
}
