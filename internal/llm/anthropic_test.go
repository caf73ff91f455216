package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

// newTestAnthropicProvider points the SDK at handler with its own retries
// off; retrying is RetryProvider's job.
func newTestAnthropicProvider(t *testing.T, handler http.HandlerFunc) *AnthropicProvider {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client := anthropic.NewClient(
		option.WithAPIKey("test-key"),
		option.WithBaseURL(server.URL),
		option.WithMaxRetries(0),
	)
	return &AnthropicProvider{
		client:     &client,
		model:      resolveModel("claude-haiku", anthropicModels),
		smartModel: resolveModel("claude-sonnet", anthropicModels),
	}
}

// messageHandler answers with text and records the requested model.
func messageHandler(text string, gotModel *string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Model string `json:"model"`
		}
		_ = json.NewDecoder(r.Body).Decode(&body)
		if gotModel != nil {
			*gotModel = body.Model
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"id":          "msg_test",
			"type":        "message",
			"role":        "assistant",
			"content":     []map[string]any{{"type": "text", "text": text}},
			"model":       body.Model,
			"stop_reason": "end_turn",
			"usage":       map[string]any{"input_tokens": 50, "output_tokens": 30},
		})
	}
}

func TestAnthropicProvider_TutorReplyUsesSmartModel(t *testing.T) {
	var gotModel string
	p := newTestAnthropicProvider(t, messageHandler("Goede vraag! Wat weet je al over cellen?", &gotModel))

	resp, err := p.Generate(context.Background(), Request{
		System:    "Je bent een geduldige tutor.",
		Messages:  []Message{{Role: RoleUser, Content: "Wat is een cel?"}},
		MaxTokens: 256,
		Quality:   QualitySmart,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotModel != "claude-sonnet-4-20250514" {
		t.Errorf("expected smart model, got %q", gotModel)
	}
	if resp.Usage.InputTokens != 50 || resp.StopReason != "end" {
		t.Errorf("unexpected response %+v", resp)
	}
	if resp.Text() != "Goede vraag! Wat weet je al over cellen?" {
		t.Errorf("unexpected text %q", resp.Text())
	}
}

func TestAnthropicProvider_StructuredBatch(t *testing.T) {
	tests := []struct {
		name    string
		schema  *Schema
		wantErr bool
	}{
		{"strict definition rejects the batch", quizSchema(false), true},
		{"envelope keeps the batch", quizSchema(true), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newTestAnthropicProvider(t, messageHandler(mixedQuiz, nil))
			resp, err := p.Generate(context.Background(), Request{
				Messages:  []Message{{Role: RoleUser, Content: "Maak een toets."}},
				MaxTokens: 512,
				Schema:    tt.schema,
			})
			if tt.wantErr {
				var inv *ErrInvalidResponse
				if !errors.As(err, &inv) {
					t.Fatalf("expected ErrInvalidResponse, got %T: %v", err, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			var got struct {
				Quiz []json.RawMessage `json:"quiz"`
			}
			if err := json.Unmarshal(resp.Content, &got); err != nil || len(got.Quiz) != 2 {
				t.Errorf("expected both raw entries passed on, got %s", resp.Content)
			}
		})
	}
}

func TestAnthropicProvider_ErrorMapping(t *testing.T) {
	tests := []struct {
		status int
		typ    string
		check  func(error) bool
	}{
		{http.StatusTooManyRequests, "rate_limit_error", func(err error) bool {
			var e *ErrRateLimit
			return errors.As(err, &e)
		}},
		{http.StatusInternalServerError, "api_error", func(err error) bool {
			var e *ErrProviderUnavailable
			return errors.As(err, &e)
		}},
		{http.StatusBadRequest, "invalid_request_error", func(err error) bool {
			var e *ErrRequestRejected
			return errors.As(err, &e) && e.StatusCode == http.StatusBadRequest
		}},
	}
	for _, tt := range tests {
		t.Run(tt.typ, func(t *testing.T) {
			p := newTestAnthropicProvider(t, func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(tt.status)
				json.NewEncoder(w).Encode(map[string]any{
					"type":  "error",
					"error": map[string]any{"type": tt.typ, "message": http.StatusText(tt.status)},
				})
			})
			_, err := p.Generate(context.Background(), Request{
				Messages:  []Message{{Role: RoleUser, Content: "test"}},
				MaxTokens: 100,
			})
			if !tt.check(err) {
				t.Fatalf("unexpected error mapping for %d: %T (%v)", tt.status, err, err)
			}
		})
	}
}

func TestAnthropicModelMapping(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"claude-sonnet", "claude-sonnet-4-20250514"},
		{"claude-haiku", "claude-haiku-4-5-20251001"},
		{"claude-opus-4-5", "claude-opus-4-5"},
	}
	for _, tt := range tests {
		if got := resolveModel(tt.input, anthropicModels); got != tt.expected {
			t.Errorf("resolveModel(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}
