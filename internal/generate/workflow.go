package generate

import (
	"context"

	"github.com/abhisek/leerkit/internal/wizard"
)

// The workflows below read the session's content, generate, and commit
// the result to the machine. On failure the session is left unchanged.

// GenerateFlashcards replaces the session's flashcards.
func (s *Service) GenerateFlashcards(ctx context.Context, m *wizard.Machine) ([]wizard.Flashcard, error) {
	c := m.State().Content
	cards, err := s.Flashcards(ctx, c.Subject(), c.Level)
	if err != nil {
		return nil, err
	}
	m.UpdateGenerated(ctx, wizard.GeneratedPatch{Flashcards: &cards})
	return cards, nil
}

// GenerateQuiz replaces the session's quiz.
func (s *Service) GenerateQuiz(ctx context.Context, m *wizard.Machine) ([]wizard.QuizQuestion, error) {
	c := m.State().Content
	questions, err := s.Quiz(ctx, c.Subject(), c.Level)
	if err != nil {
		return nil, err
	}
	m.UpdateGenerated(ctx, wizard.GeneratedPatch{Quiz: &questions})
	return questions, nil
}

// GenerateTheory replaces the session's theory overview.
func (s *Service) GenerateTheory(ctx context.Context, m *wizard.Machine) ([]wizard.TheorySection, error) {
	c := m.State().Content
	sections, err := s.Theory(ctx, c.Subject(), c.Level)
	if err != nil {
		return nil, err
	}
	m.UpdateGenerated(ctx, wizard.GeneratedPatch{TheoryOverview: &sections})
	return sections, nil
}

// StartTutorSession generates the tutor persona and welcome message and
// stores them as the session's chatbot. A regenerated tutor stays
// accepted if the chatbot module already was.
func (s *Service) StartTutorSession(ctx context.Context, m *wizard.Machine) (*wizard.ChatbotConfig, error) {
	st := m.State()
	cb, err := s.StartTutor(ctx, st.Content)
	if err != nil {
		return nil, err
	}
	cb.Accepted = st.IsAccepted(wizard.ModuleChatbot)
	m.UpdateGenerated(ctx, wizard.GeneratedPatch{Chatbot: cb})
	return cb, nil
}

// ReplyInSession answers message with the session's tutor persona,
// falling back to one assembled from the current content.
func (s *Service) ReplyInSession(ctx context.Context, m *wizard.Machine, history []Turn, message string) (string, error) {
	st := m.State()
	persona := TutorPrompt(st.Content)
	if st.Generated.Chatbot != nil && st.Generated.Chatbot.Prompt != "" {
		persona = st.Generated.Chatbot.Prompt
	}
	return s.Reply(ctx, persona, history, message)
}
