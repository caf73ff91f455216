package generate

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/abhisek/leerkit/internal/llm"
	"github.com/abhisek/leerkit/internal/parse"
	"github.com/abhisek/leerkit/internal/wizard"
)

func newTestService(responses ...llm.MockResponse) (*Service, *llm.MockProvider) {
	mock := llm.NewMockProvider(responses...)
	svc := NewService(mock, DefaultConfig(), nil)
	n := 0
	svc.newID = func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
	return svc, mock
}

func text(s string) llm.MockResponse {
	return llm.MockText(s)
}

// fastRetry keeps the real retry loop but with millisecond waits.
func fastRetry(p llm.Provider) llm.Provider {
	return llm.Wrap(p, llm.RetryConfig{
		MaxAttempts:    4,
		InitialWait:    time.Millisecond,
		MaxWait:        time.Millisecond,
		Multiplier:     2,
		AttemptTimeout: time.Second,
	}, nil, nil)
}

func asError(t *testing.T, err error) *Error {
	t.Helper()
	var gerr *Error
	if !errors.As(err, &gerr) {
		t.Fatalf("expected *generate.Error, got %T: %v", err, err)
	}
	return gerr
}

func TestFlashcards_AssignsIDsAndCaps(t *testing.T) {
	var cards []string
	for i := 0; i < 20; i++ {
		cards = append(cards, fmt.Sprintf(`{"front":"F%d","back":"B%d"}`, i, i))
	}
	raw := "Hier zijn je kaartjes:\n```json\n{\"flashcards\":[" + strings.Join(cards, ",") + "]}\n```"
	svc, mock := newTestService(text(raw))

	got, err := svc.Flashcards(context.Background(), "De fotosynthese", wizard.LevelHAVO)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != parse.MaxFlashcards {
		t.Fatalf("expected %d cards, got %d", parse.MaxFlashcards, len(got))
	}
	if got[0].ID != "id-1" || got[14].Front != "F14" {
		t.Errorf("unexpected cards %+v", got)
	}

	req := mock.Calls[0]
	prompt := req.Messages[0].Content
	if !strings.Contains(prompt, "De fotosynthese") || !strings.Contains(prompt, "HAVO niveau") {
		t.Errorf("prompt missing content or level:\n%s", prompt)
	}
	if req.Schema != nil {
		t.Error("schema should only be sent with structured output enabled")
	}
	if req.Quality != llm.QualityDefault {
		t.Errorf("generation should use the default model, got %q", req.Quality)
	}
}

func TestFlashcards_HeuristicFallback(t *testing.T) {
	svc, _ := newTestService(text("Front: Cel\nBack: Kleinste eenheid van leven\nFront: Kern\nBack: Bevat DNA"))

	got, err := svc.Flashcards(context.Background(), "biologie", wizard.LevelVMBO)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 || got[1].Back != "Bevat DNA" {
		t.Errorf("unexpected cards %+v", got)
	}
}

func TestFlashcards_Unstructured(t *testing.T) {
	svc, _ := newTestService(text("Sorry, daar kan ik niet mee helpen."))

	_, err := svc.Flashcards(context.Background(), "biologie", wizard.LevelVMBO)
	gerr := asError(t, err)
	if gerr.Kind != KindUnstructured {
		t.Errorf("expected unstructured, got %s", gerr.Kind)
	}
	if gerr.Message != "De AI kon geen geldige flashcards genereren. Probeer het opnieuw." {
		t.Errorf("unexpected message %q", gerr.Message)
	}
}

func TestGenerate_MissingInput(t *testing.T) {
	tests := []struct {
		name    string
		content string
		level   wizard.Level
	}{
		{"empty content", "  ", wizard.LevelHBO},
		{"empty level", "stof", ""},
		{"unknown level", "stof", "MASTER"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, mock := newTestService()
			_, err := svc.Quiz(context.Background(), tt.content, tt.level)
			gerr := asError(t, err)
			if gerr.Kind != KindValidation || gerr.Message != MissingInputMessage {
				t.Errorf("unexpected error %+v", gerr)
			}
			if mock.CallCount() != 0 {
				t.Error("validation failure must not call the provider")
			}
		})
	}
}

func TestGenerate_NotConfigured(t *testing.T) {
	svc := NewService(nil, DefaultConfig(), nil)

	_, err := svc.Theory(context.Background(), "stof", wizard.LevelHBO)
	gerr := asError(t, err)
	if gerr.Kind != KindConfiguration || gerr.Message != "API configuratie ontbreekt" {
		t.Errorf("unexpected error %+v", gerr)
	}
	if !errors.Is(err, llm.ErrNotConfigured) {
		t.Error("expected ErrNotConfigured in chain")
	}
}

func TestQuiz_DropsInvalidAndPurpose(t *testing.T) {
	svc, mock := newTestService(text(`{"quiz":[{"question":"Q1","options":["A","B","C"],"correctAnswer":1},{"question":"Q2","options":["A","B"],"correctAnswer":0}]}`))

	got, err := svc.Quiz(context.Background(), "stof", wizard.LevelMBO)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 || got[0].Question != "Q1" || got[0].CorrectAnswer != 1 || got[0].ID != "id-1" {
		t.Errorf("unexpected questions %+v", got)
	}
	if mock.CallCount() != 1 {
		t.Fatalf("expected 1 call, got %d", mock.CallCount())
	}
}

func TestQuiz_StructuredOutputSendsSchema(t *testing.T) {
	mock := llm.NewMockProvider(text(`{"quiz":[{"question":"Q1","options":["A","B","C"],"correctAnswer":2}]}`))
	cfg := DefaultConfig()
	cfg.StructuredOutput = true
	svc := NewService(mock, cfg, nil)

	if _, err := svc.Quiz(context.Background(), "stof", wizard.LevelMBO); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if mock.Calls[0].Schema != QuizSchema {
		t.Error("expected quiz schema on request")
	}
}

func TestQuiz_StructuredOutputDropsOnlyInvalidEntries(t *testing.T) {
	raw := `{"quiz":[{"question":"Q1","options":["A","B","C"],"correctAnswer":1},{"question":"Q2","options":["A","B"],"correctAnswer":0}]}`
	mock := llm.NewMockProvider(text(raw))
	cfg := DefaultConfig()
	cfg.StructuredOutput = true
	svc := NewService(fastRetry(mock), cfg, nil)

	got, err := svc.Quiz(context.Background(), "stof", wizard.LevelVWO)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 || got[0].Question != "Q1" || got[0].CorrectAnswer != 1 {
		t.Errorf("expected only Q1, got %+v", got)
	}
	if mock.CallCount() != 1 {
		t.Errorf("a partly invalid batch should not be retried, got %d calls", mock.CallCount())
	}
}

func TestFlashcards_StructuredOutputToleratesExtraKeys(t *testing.T) {
	raw := `{"flashcards":[{"id":"x","front":"Cel","back":"Bouwsteen"},{"front":"Kern"}]}`
	mock := llm.NewMockProvider(text(raw))
	cfg := DefaultConfig()
	cfg.StructuredOutput = true
	svc := NewService(mock, cfg, nil)

	got, err := svc.Flashcards(context.Background(), "stof", wizard.LevelVWO)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 || got[0].Front != "Cel" {
		t.Errorf("unexpected cards %+v", got)
	}
}

func TestTheory_Sections(t *testing.T) {
	raw := `{"theory":{"orientation":"Je leert over cellen.","concepts":[{"title":"Cel","definition":"Bouwsteen","metaphor":"Een baksteen"}],"connections":"Cellen vormen weefsels.","application":{"example":"Een ui","steps":["Snijd","Kijk"]},"essence":["Alles bestaat uit cellen"]}}`
	svc, _ := newTestService(text(raw))

	got, err := svc.Theory(context.Background(), "stof", wizard.LevelPO)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 5 {
		t.Fatalf("expected 5 sections, got %d", len(got))
	}
	if got[1].ID != "concept-0" || got[1].Kind != wizard.SectionConcept {
		t.Errorf("unexpected concept section %+v", got[1])
	}
}

func TestTheory_NoJSONFails(t *testing.T) {
	svc, _ := newTestService(text("ORIËNTATIE\nJe leert over cellen."))

	_, err := svc.Theory(context.Background(), "stof", wizard.LevelPO)
	gerr := asError(t, err)
	if gerr.Kind != KindUnstructured || gerr.Message != "De AI kon geen geldig theorie-overzicht genereren. Probeer het opnieuw." {
		t.Errorf("unexpected error %+v", gerr)
	}
}

func TestGenerate_RateLimitThenSuccess(t *testing.T) {
	mock := llm.NewMockProvider(
		llm.MockResponse{Err: &llm.ErrRateLimit{Err: errors.New("429")}},
		text(`{"flashcards":[{"front":"a","back":"b"}]}`),
	)
	svc := NewService(fastRetry(mock), DefaultConfig(), nil)

	got, err := svc.Flashcards(context.Background(), "stof", wizard.LevelHBO)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 || mock.CallCount() != 2 {
		t.Errorf("expected 1 card after 2 calls, got %d cards / %d calls", len(got), mock.CallCount())
	}
}

func TestGenerate_RetriesExhausted(t *testing.T) {
	var responses []llm.MockResponse
	for i := 0; i < 4; i++ {
		responses = append(responses, llm.MockResponse{Err: &llm.ErrProviderUnavailable{Err: errors.New("500")}})
	}
	mock := llm.NewMockProvider(responses...)
	svc := NewService(fastRetry(mock), DefaultConfig(), nil)

	_, err := svc.Quiz(context.Background(), "stof", wizard.LevelHBO)
	gerr := asError(t, err)
	if gerr.Kind != KindTransient || gerr.Attempts != 4 {
		t.Errorf("unexpected error %+v", gerr)
	}
	if gerr.Message != "Quiz generatie mislukt na 4 pogingen." {
		t.Errorf("unexpected message %q", gerr.Message)
	}
	if len(gerr.Suggestions) != 3 || gerr.Suggestions[1] != "Probeer je tekst korter te maken" {
		t.Errorf("unexpected suggestions %v", gerr.Suggestions)
	}
	if !strings.Contains(err.Error(), "4") {
		t.Errorf("error should mention attempt count: %v", err)
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		err  error
		kind Kind
		msg  string
	}{
		{"rejected", &llm.ErrRequestRejected{StatusCode: 400, Err: errors.New("bad")}, KindRejected, actionQuiz.failed},
		{"single timeout", &llm.ErrTimeout{After: 30 * time.Second}, KindTransient, actionQuiz.slow},
		{"exhausted timeouts", &llm.ErrRetriesExhausted{Attempts: 4, Err: &llm.ErrTimeout{After: 30 * time.Second}}, KindTransient, actionQuiz.slow},
		{"invalid response", &llm.ErrInvalidResponse{Err: errors.New("schema")}, KindUnstructured, actionQuiz.empty},
		{"max tokens", &llm.ErrMaxTokensExceeded{}, KindRejected, actionQuiz.failed},
		{"not configured", fmt.Errorf("init: %w", llm.ErrNotConfigured), KindConfiguration, "API configuratie ontbreekt"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := actionQuiz.classify(tt.err)
			if got.Kind != tt.kind || got.Message != tt.msg {
				t.Errorf("classify(%v) = %s %q, want %s %q", tt.err, got.Kind, got.Message, tt.kind, tt.msg)
			}
			if !errors.Is(got, tt.err) {
				t.Error("original error should stay in the chain")
			}
		})
	}
}

func TestStartTutor(t *testing.T) {
	svc, mock := newTestService(text("  Welkom! Ik help je met cellen.  "))
	c := wizard.InitialState().Content
	c.SubjectText = "Cellen zijn de bouwstenen van het leven."

	cb, err := svc.StartTutor(context.Background(), c)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cb.WelcomeMessage != "Welkom! Ik help je met cellen." || cb.Accepted {
		t.Errorf("unexpected chatbot %+v", cb)
	}
	if !strings.HasPrefix(cb.Prompt, wizard.DefaultDidactics) || !strings.Contains(cb.Prompt, "ONDERWIJSNIVEAU: HBO") {
		t.Errorf("unexpected persona:\n%s", cb.Prompt)
	}

	req := mock.Calls[0]
	if req.Quality != llm.QualitySmart {
		t.Errorf("tutor should use the smart model, got %q", req.Quality)
	}
	if !strings.HasSuffix(req.Messages[0].Content, startInstruction) {
		t.Error("start prompt should end with the start instruction")
	}
}

func TestStartTutor_RequiresContent(t *testing.T) {
	svc, mock := newTestService()
	_, err := svc.StartTutor(context.Background(), wizard.InitialState().Content)
	if asError(t, err).Kind != KindValidation || mock.CallCount() != 0 {
		t.Errorf("expected validation failure without a call, got %v", err)
	}
}

func TestReply_Transcript(t *testing.T) {
	svc, mock := newTestService(text("Goede vraag!"))
	history := []Turn{
		{Role: SpeakerTutor, Content: "Welkom"},
		{Role: SpeakerStudent, Content: "Wat is een cel?"},
		{Role: SpeakerTutor, Content: "De kleinste eenheid."},
	}

	reply, err := svc.Reply(context.Background(), "PERSONA", history, " En een kern? ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if reply != "Goede vraag!" {
		t.Errorf("unexpected reply %q", reply)
	}

	want := "PERSONA\n\nGESPREK TOT NU TOE:\nTutor: Welkom\n\nLeerling: Wat is een cel?\n\nTutor: De kleinste eenheid.\n\n" +
		"Leerling: En een kern?\n\nReageer nu als de AI-tutor:"
	if got := mock.Calls[0].Messages[0].Content; got != want {
		t.Errorf("unexpected prompt:\n%s\nwant:\n%s", got, want)
	}
}

func TestReply_EmptyMessage(t *testing.T) {
	svc, _ := newTestService()
	_, err := svc.Reply(context.Background(), "PERSONA", nil, "   ")
	if asError(t, err).Kind != KindValidation {
		t.Errorf("expected validation error, got %v", err)
	}
}

func TestChat_QualityAndEmptyReply(t *testing.T) {
	svc, mock := newTestService(text("antwoord"), text("   "))

	got, err := svc.Chat(context.Background(), "hallo", llm.QualitySmart)
	if err != nil || got != "antwoord" {
		t.Fatalf("unexpected result %q, %v", got, err)
	}
	if mock.Calls[0].Quality != llm.QualitySmart {
		t.Error("quality hint not forwarded")
	}

	_, err = svc.Chat(context.Background(), "hallo", llm.QualityDefault)
	if asError(t, err).Kind != KindUnstructured {
		t.Errorf("expected unstructured error for blank reply, got %v", err)
	}
}
