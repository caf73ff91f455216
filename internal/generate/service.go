// Package generate turns subject content into flashcards, quizzes, theory
// overviews and tutor replies through an llm.Provider.
package generate

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/abhisek/leerkit/internal/llm"
	"github.com/abhisek/leerkit/internal/parse"
	"github.com/abhisek/leerkit/internal/wizard"
)

// Config holds generation settings.
type Config struct {
	MaxTokens     int
	ChatMaxTokens int
	Temperature   float64

	// StructuredOutput asks the provider for schema-conforming JSON
	// instead of relying on the prompt's format description alone.
	StructuredOutput bool
}

// DefaultConfig returns sensible defaults for generation.
func DefaultConfig() Config {
	return Config{
		MaxTokens:     8192,
		ChatMaxTokens: 1024,
		Temperature:   0.7,
	}
}

// Service issues one provider call per action and normalizes the result.
type Service struct {
	provider llm.Provider
	cfg      Config
	logger   *zap.Logger
	newID    func() string
}

// NewService creates a generation service. A nil provider is allowed;
// every call then fails with a configuration error.
func NewService(provider llm.Provider, cfg Config, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{provider: provider, cfg: cfg, logger: logger, newID: uuid.NewString}
}

// Flashcards generates up to parse.MaxFlashcards cards for content.
func (s *Service) Flashcards(ctx context.Context, content string, level wizard.Level) ([]wizard.Flashcard, error) {
	raw, err := s.structured(ctx, actionFlashcards, content, level, buildFlashcardsPrompt, FlashcardsSchema)
	if err != nil {
		return nil, err
	}

	cards := parse.Flashcards(raw)
	if len(cards) == 0 {
		s.logger.Warn("no flashcards recovered", zap.Int("response_len", len(raw)))
		return nil, actionFlashcards.unstructured()
	}
	for i := range cards {
		cards[i].ID = s.newID()
	}
	return cards, nil
}

// Quiz generates up to parse.MaxQuizQuestions questions for content.
func (s *Service) Quiz(ctx context.Context, content string, level wizard.Level) ([]wizard.QuizQuestion, error) {
	raw, err := s.structured(ctx, actionQuiz, content, level, buildQuizPrompt, QuizSchema)
	if err != nil {
		return nil, err
	}

	questions := parse.Quiz(raw)
	if len(questions) == 0 {
		s.logger.Warn("no quiz questions recovered", zap.Int("response_len", len(raw)))
		return nil, actionQuiz.unstructured()
	}
	for i := range questions {
		questions[i].ID = s.newID()
	}
	return questions, nil
}

// Theory generates the sectioned theory overview for content.
func (s *Service) Theory(ctx context.Context, content string, level wizard.Level) ([]wizard.TheorySection, error) {
	raw, err := s.structured(ctx, actionTheory, content, level, buildTheoryPrompt, TheorySchema)
	if err != nil {
		return nil, err
	}

	outline, ok := parse.Theory(raw)
	if !ok {
		s.logger.Warn("no theory outline recovered", zap.Int("response_len", len(raw)))
		return nil, actionTheory.unstructured()
	}
	return outline.Sections(), nil
}

// StartTutor assembles the tutor persona from c and asks for the
// welcome message. The returned config is not yet accepted.
func (s *Service) StartTutor(ctx context.Context, c wizard.ContentInput) (*wizard.ChatbotConfig, error) {
	if !c.HasContent() || strings.TrimSpace(c.Didactics) == "" {
		return nil, validation("Vakinhoud en didactiek zijn vereist")
	}

	persona := TutorPrompt(c)
	welcome, err := s.complete(ctx, actionTutorStart, buildStartPrompt(persona), llm.QualitySmart)
	if err != nil {
		return nil, err
	}
	return &wizard.ChatbotConfig{Prompt: persona, WelcomeMessage: welcome}, nil
}

// Reply answers message as the tutor described by persona, given the
// conversation so far.
func (s *Service) Reply(ctx context.Context, persona string, history []Turn, message string) (string, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return "", validation("Bericht is vereist")
	}
	if strings.TrimSpace(persona) == "" {
		return "", validation("Start eerst de chatbot")
	}
	return s.complete(ctx, actionTutorReply, buildReplyPrompt(persona, history, message), llm.QualitySmart)
}

// Chat sends prompt verbatim and returns the reply.
func (s *Service) Chat(ctx context.Context, prompt string, quality llm.Quality) (string, error) {
	if strings.TrimSpace(prompt) == "" {
		return "", validation("Bericht is vereist")
	}
	return s.complete(ctx, actionChat, prompt, quality)
}

// complete runs a single-prompt conversational call.
func (s *Service) complete(ctx context.Context, a action, prompt string, quality llm.Quality) (string, error) {
	if s.provider == nil {
		return "", notConfigured(llm.ErrNotConfigured)
	}

	req := llm.UserPrompt(prompt)
	req.MaxTokens = s.cfg.ChatMaxTokens
	req.Temperature = s.cfg.Temperature
	req.Quality = quality

	resp, err := s.provider.Generate(llm.WithPurpose(ctx, a.purpose), req)
	if err != nil {
		s.logger.Warn("chat call failed", zap.String("purpose", a.purpose), zap.Error(err))
		return "", a.classify(err)
	}
	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", a.unstructured()
	}
	return text, nil
}

// structured runs a generation call and returns the raw completion text.
func (s *Service) structured(ctx context.Context, a action, content string, level wizard.Level,
	build func(string, wizard.Level) string, schema *llm.Schema) (string, error) {
	if strings.TrimSpace(content) == "" || !level.Valid() {
		return "", validation(MissingInputMessage)
	}
	if s.provider == nil {
		return "", notConfigured(llm.ErrNotConfigured)
	}

	req := llm.UserPrompt(build(content, level))
	req.MaxTokens = s.cfg.MaxTokens
	req.Temperature = s.cfg.Temperature
	if s.cfg.StructuredOutput {
		req.Schema = schema
	}

	resp, err := s.provider.Generate(llm.WithPurpose(ctx, a.purpose), req)
	if err != nil {
		s.logger.Warn("generation failed", zap.String("purpose", a.purpose), zap.Error(err))
		return "", a.classify(err)
	}
	return resp.Text(), nil
}
