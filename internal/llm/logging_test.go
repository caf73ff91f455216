package llm

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/abhisek/leerkit/internal/store"
)

// recordingRepo implements store.EventRepo, keeping appended events.
type recordingRepo struct {
	events []store.LLMRequestEventData
	err    error
}

func (r *recordingRepo) AppendLLMRequest(_ context.Context, data store.LLMRequestEventData) error {
	r.events = append(r.events, data)
	return r.err
}
func (r *recordingRepo) QueryLLMEvents(_ context.Context, _ store.QueryOpts) ([]store.LLMEventRecord, error) {
	return nil, nil
}
func (r *recordingRepo) GetLLMEvent(_ context.Context, _ int) (*store.LLMEventRecord, error) {
	return nil, nil
}
func (r *recordingRepo) LLMUsageByPurpose(_ context.Context) ([]store.PurposeUsage, error) {
	return nil, nil
}
func (r *recordingRepo) LLMUsageByModel(_ context.Context) ([]store.ModelUsage, error) {
	return nil, nil
}

func TestLogging_RecordsEvent(t *testing.T) {
	repo := &recordingRepo{}
	mock := NewMockProvider(MockResponse{
		Content: json.RawMessage(`{"quiz":[]}`),
		Usage:   Usage{InputTokens: 12, OutputTokens: 3},
	})
	p := WithLogging(mock, repo, nil)

	ctx := WithPurpose(context.Background(), "quiz")
	req := Request{System: "sys", Messages: []Message{{Role: RoleUser, Content: "maak een toets"}}}
	if _, err := p.Generate(ctx, req); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(repo.events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(repo.events))
	}
	e := repo.events[0]
	if e.Purpose != "quiz" || !e.Success || e.InputTokens != 12 || e.OutputTokens != 3 {
		t.Errorf("unexpected event %+v", e)
	}
	if e.RequestBody != "[system]\nsys\n\n[user]\nmaak een toets\n\n" {
		t.Errorf("unexpected request body %q", e.RequestBody)
	}
	if e.ResponseBody != `{"quiz":[]}` {
		t.Errorf("unexpected response body %q", e.ResponseBody)
	}
}

func TestLogging_FailureLoggedAndRecorded(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	repo := &recordingRepo{err: errors.New("db locked")}
	mock := NewMockProvider(MockResponse{Err: &ErrProviderUnavailable{Err: errors.New("503")}})
	p := WithLogging(mock, repo, zap.New(core))

	_, err := p.Generate(context.Background(), Request{})
	var unavail *ErrProviderUnavailable
	if !errors.As(err, &unavail) {
		t.Fatalf("expected provider error passed through, got %v", err)
	}
	if len(repo.events) != 1 || repo.events[0].Success || repo.events[0].ErrorMessage == "" {
		t.Fatalf("expected failed event recorded, got %+v", repo.events)
	}
	if logs.FilterMessage("llm request failed").Len() != 1 {
		t.Error("expected request failure warning")
	}
	if logs.FilterMessage("record llm request event").Len() != 1 {
		t.Error("expected event recording warning")
	}
}

func TestWrap_EachAttemptLogged(t *testing.T) {
	repo := &recordingRepo{}
	mock := NewMockProvider(
		MockResponse{Err: &ErrRateLimit{Err: errors.New("429")}},
		MockResponse{Content: json.RawMessage(`ok`)},
	)
	cfg := DefaultRetryConfig()
	p := Wrap(mock, cfg, repo, nil).(*RetryProvider)
	p.wait = func(context.Context, time.Duration) error { return nil }

	resp, err := p.Generate(context.Background(), Request{})
	if err != nil || resp.Text() != "ok" {
		t.Fatalf("expected success, got %v", err)
	}
	if len(repo.events) != 2 {
		t.Fatalf("expected 2 attempt events, got %d", len(repo.events))
	}
}

func TestLogging_IncludesRequestID(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	p := WithLogging(NewMockProvider(MockText("hallo")), nil, zap.New(core))

	ctx := WithRequestID(WithPurpose(context.Background(), "chat"), "req-42")
	if _, err := p.Generate(ctx, Request{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	entries := logs.FilterMessage("llm request").All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 log entry, got %d", len(entries))
	}
	if got := entries[0].ContextMap()["request_id"]; got != "req-42" {
		t.Errorf("request_id = %v", got)
	}
}
