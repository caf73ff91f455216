package generate

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/abhisek/leerkit/internal/llm"
	"github.com/abhisek/leerkit/internal/wizard"
)

func machineWithContent(t *testing.T, subject string, level wizard.Level) *wizard.Machine {
	t.Helper()
	m := wizard.New(wizard.NewMemoryStore())
	m.UpdateContent(context.Background(), wizard.ContentPatch{SubjectText: &subject, Level: &level})
	return m
}

func TestGenerateFlashcards_CommitsToMachine(t *testing.T) {
	svc, mock := newTestService(text(`{"flashcards":[{"front":"Cel","back":"Bouwsteen"}]}`))
	m := machineWithContent(t, "Over cellen", wizard.LevelVWO)

	cards, err := svc.GenerateFlashcards(context.Background(), m)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	st := m.State()
	if len(st.Generated.Flashcards) != 1 || st.Generated.Flashcards[0] != cards[0] {
		t.Errorf("flashcards not committed: %+v", st.Generated.Flashcards)
	}
	if !strings.Contains(mock.Calls[0].Messages[0].Content, "VWO niveau") {
		t.Error("session level not used in prompt")
	}
}

func TestGenerateQuiz_FailureLeavesStateUnchanged(t *testing.T) {
	svc, _ := newTestService(llm.MockResponse{Err: &llm.ErrRequestRejected{StatusCode: 400, Err: errors.New("bad")}})
	m := machineWithContent(t, "Over cellen", wizard.LevelVWO)
	existing := []wizard.QuizQuestion{{ID: "old", Question: "Q", Options: []string{"a", "b", "c"}}}
	m.UpdateGenerated(context.Background(), wizard.GeneratedPatch{Quiz: &existing})

	_, err := svc.GenerateQuiz(context.Background(), m)
	if asError(t, err).Kind != KindRejected {
		t.Fatalf("expected rejected error, got %v", err)
	}
	if q := m.State().Generated.Quiz; len(q) != 1 || q[0].ID != "old" {
		t.Errorf("quiz should be untouched, got %+v", q)
	}
}

func TestGenerateTheory_UsesUploadedContents(t *testing.T) {
	svc, mock := newTestService(text(`{"theory":{"orientation":"O","concepts":[],"connections":"","essence":[]}}`))
	m := wizard.New(wizard.NewMemoryStore())
	m.AddUpload(context.Background(), wizard.UploadedFile{Name: "h1.pdf"}, "Tekst uit de PDF")

	sections, err := svc.GenerateTheory(context.Background(), m)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(sections) != 1 || sections[0].Kind != wizard.SectionOrientation {
		t.Errorf("unexpected sections %+v", sections)
	}
	if len(m.State().Generated.TheoryOverview) != 1 {
		t.Error("theory not committed")
	}
	if !strings.Contains(mock.Calls[0].Messages[0].Content, "Tekst uit de PDF") {
		t.Error("uploaded text not in prompt")
	}
}

func TestStartTutorSession_AndReply(t *testing.T) {
	svc, mock := newTestService(text("Welkom!"), text("Een kern bevat DNA."))
	m := machineWithContent(t, "Over cellen", wizard.LevelHBO)

	cb, err := svc.StartTutorSession(context.Background(), m)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got := m.State().Generated.Chatbot
	if got == nil || got.WelcomeMessage != "Welkom!" || got.Accepted {
		t.Fatalf("chatbot not committed: %+v", got)
	}

	history := []Turn{{Role: SpeakerTutor, Content: cb.WelcomeMessage}}
	reply, err := svc.ReplyInSession(context.Background(), m, history, "Wat is een kern?")
	if err != nil || reply != "Een kern bevat DNA." {
		t.Fatalf("unexpected reply %q, %v", reply, err)
	}
	if !strings.HasPrefix(mock.Calls[1].Messages[0].Content, cb.Prompt) {
		t.Error("reply should use the stored persona")
	}
}

func TestStartTutorSession_RegenerateKeepsAcceptance(t *testing.T) {
	svc, _ := newTestService(text("Welkom!"), text("Welkom terug!"))
	m := machineWithContent(t, "Over cellen", wizard.LevelHBO)
	ctx := context.Background()

	if _, err := svc.StartTutorSession(ctx, m); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	m.AcceptModule(ctx, wizard.ModuleChatbot)

	cb, err := svc.StartTutorSession(ctx, m)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	st := m.State()
	if !cb.Accepted || !st.Generated.Chatbot.Accepted || st.Generated.Chatbot.WelcomeMessage != "Welkom terug!" {
		t.Errorf("regenerated tutor should stay accepted: %+v", st.Generated.Chatbot)
	}
	if !st.IsAccepted(wizard.ModuleChatbot) || len(st.AcceptedModules) != 1 {
		t.Errorf("unexpected accepted modules %v", st.AcceptedModules)
	}
}

func TestFormatTranscript(t *testing.T) {
	if got := FormatTranscript(nil); got != "" {
		t.Errorf("empty transcript = %q", got)
	}
	got := FormatTranscript([]Turn{{Role: SpeakerStudent, Content: "hoi"}, {Role: SpeakerTutor, Content: "hallo"}})
	if got != "Leerling: hoi\n\nTutor: hallo" {
		t.Errorf("unexpected transcript %q", got)
	}
}
