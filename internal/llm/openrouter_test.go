package llm

import (
	"context"
	"net/http/httptest"
	"testing"
)

func TestNewOpenRouterProvider_RequiresKey(t *testing.T) {
	if _, err := NewOpenRouterProvider(OpenRouterConfig{Model: "google/gemini-2.5-flash"}); err == nil {
		t.Fatal("expected error for empty API key")
	}
}

func TestOpenRouterProvider_RoutesByQuality(t *testing.T) {
	var gotModel string
	server := httptest.NewServer(completionHandler(t, "Hallo! Waar wil je mee beginnen?", &gotModel))
	t.Cleanup(server.Close)

	p, err := NewOpenRouterProvider(OpenRouterConfig{
		APIKey:     "sk-or-test",
		Model:      "google/gemini-2.5-flash",
		SmartModel: "anthropic/claude-sonnet-4",
		BaseURL:    server.URL + "/v1",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.ModelID() != "google/gemini-2.5-flash" {
		t.Errorf("vendor model ids pass through unmapped, got %q", p.ModelID())
	}

	tests := []struct {
		quality Quality
		want    string
	}{
		{QualityDefault, "google/gemini-2.5-flash"},
		{QualitySmart, "anthropic/claude-sonnet-4"},
	}
	for _, tt := range tests {
		resp, err := p.Generate(context.Background(), Request{
			Messages: []Message{{Role: RoleUser, Content: "Start de tutor."}},
			Quality:  tt.quality,
		})
		if err != nil {
			t.Fatalf("quality %q: unexpected error: %v", tt.quality, err)
		}
		if gotModel != tt.want {
			t.Errorf("quality %q sent model %q, want %q", tt.quality, gotModel, tt.want)
		}
		if LookupCost(resp.Model) == nil {
			t.Errorf("no pricing for reported model %q", resp.Model)
		}
	}
}
