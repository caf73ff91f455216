package wizard

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/mod/semver"
)

// DefaultSessionKey is the fixed slot a session is persisted under.
const DefaultSessionKey = "learning-environment-state"

// formatVersion tags persisted state. A stored state whose major version
// differs is discarded on rehydrate.
const formatVersion = "v1.0.0"

type envelope struct {
	Version string `json:"version"`
	State   State  `json:"state"`
}

// Machine owns the wizard state and mirrors every mutation to a Store.
// It is safe for concurrent use.
type Machine struct {
	mu     sync.Mutex
	state  State
	store  Store
	key    string
	logger *zap.Logger
}

// Option configures a Machine.
type Option func(*Machine)

// WithSessionKey overrides DefaultSessionKey.
func WithSessionKey(key string) Option {
	return func(m *Machine) {
		if key != "" {
			m.key = key
		}
	}
}

// WithLogger sets the logger used for persistence failures.
func WithLogger(l *zap.Logger) Option {
	return func(m *Machine) {
		if l != nil {
			m.logger = l
		}
	}
}

// New creates a Machine in the initial state. Call Rehydrate to restore a
// previously persisted session.
func New(store Store, opts ...Option) *Machine {
	m := &Machine{
		state:  InitialState(),
		store:  store,
		key:    DefaultSessionKey,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Rehydrate replaces the in-memory state with the persisted copy. It
// reports whether a stored state was restored. Read and decode failures
// are logged and leave the current state in place.
func (m *Machine) Rehydrate(ctx context.Context) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	data, err := m.store.Load(ctx, m.key)
	if errors.Is(err, ErrNotFound) {
		return false
	}
	if err != nil {
		m.logger.Warn("load wizard state", zap.String("key", m.key), zap.Error(err))
		return false
	}

	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		m.logger.Warn("decode wizard state", zap.String("key", m.key), zap.Error(err))
		return false
	}
	if !semver.IsValid(env.Version) || semver.Major(env.Version) != semver.Major(formatVersion) {
		m.logger.Warn("discarding wizard state with incompatible version",
			zap.String("key", m.key), zap.String("version", env.Version))
		return false
	}

	m.state = normalize(env.State)
	return true
}

// State returns a copy of the current state.
func (m *Machine) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state.clone()
}

// Step returns the current step.
func (m *Machine) Step() Step {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state.CurrentStep
}

// UpdateContent merges p into the content input.
func (m *Machine) UpdateContent(ctx context.Context, p ContentPatch) State {
	return m.mutate(ctx, func(s *State) { p.apply(&s.Content) })
}

// UpdateGenerated merges p into the generated artifacts.
func (m *Machine) UpdateGenerated(ctx context.Context, p GeneratedPatch) State {
	return m.mutate(ctx, func(s *State) { p.apply(&s.Generated) })
}

// AddUpload appends an extracted document to the content input.
func (m *Machine) AddUpload(ctx context.Context, file UploadedFile, text string) State {
	return m.mutate(ctx, func(s *State) {
		UploadPatch(s.Content, file, text).apply(&s.Content)
	})
}

// AcceptModule records mod as accepted. Accepting twice is a no-op.
func (m *Machine) AcceptModule(ctx context.Context, mod Module) State {
	return m.mutate(ctx, func(s *State) {
		if s.IsAccepted(mod) {
			return
		}
		s.AcceptedModules = append(s.AcceptedModules, mod)
		if mod == ModuleChatbot && s.Generated.Chatbot != nil {
			s.Generated.Chatbot.Accepted = true
		}
	})
}

// Advance moves one step forward, stopping at the last step.
func (m *Machine) Advance(ctx context.Context) State {
	return m.mutate(ctx, func(s *State) { s.CurrentStep = clampStep(s.CurrentStep + 1) })
}

// Retreat moves one step back, stopping at the first step.
func (m *Machine) Retreat(ctx context.Context) State {
	return m.mutate(ctx, func(s *State) { s.CurrentStep = clampStep(s.CurrentStep - 1) })
}

// JumpTo moves to step, clamped to the valid range.
func (m *Machine) JumpTo(ctx context.Context, step Step) State {
	return m.mutate(ctx, func(s *State) { s.CurrentStep = clampStep(step) })
}

// MarkComplete flags the environment as finished.
func (m *Machine) MarkComplete(ctx context.Context) State {
	return m.mutate(ctx, func(s *State) { s.Complete = true })
}

// Reset restores the initial state and erases the persisted copy.
func (m *Machine) Reset(ctx context.Context) State {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.state = InitialState()
	if err := m.store.Delete(ctx, m.key); err != nil {
		m.logger.Warn("erase wizard state", zap.String("key", m.key), zap.Error(err))
	}
	return m.state.clone()
}

func (m *Machine) mutate(ctx context.Context, fn func(*State)) State {
	m.mu.Lock()
	defer m.mu.Unlock()

	fn(&m.state)
	m.persistLocked(ctx)
	return m.state.clone()
}

// persistLocked writes the current state. Failures are logged only.
func (m *Machine) persistLocked(ctx context.Context) {
	data, err := json.Marshal(envelope{Version: formatVersion, State: m.state})
	if err != nil {
		m.logger.Warn("encode wizard state", zap.Error(err))
		return
	}
	if err := m.store.Save(ctx, m.key, data); err != nil {
		m.logger.Warn("persist wizard state", zap.String("key", m.key), zap.Error(err))
	}
}

// normalize repairs a decoded state so it satisfies the machine's invariants.
func normalize(s State) State {
	s.CurrentStep = clampStep(s.CurrentStep)
	if !s.Content.Level.Valid() {
		s.Content.Level = DefaultLevel
	}
	s.Content.UploadedFiles = []UploadedFile{}
	if s.Content.UploadedFileContents == nil {
		s.Content.UploadedFileContents = []string{}
	}
	if s.Generated.Flashcards == nil {
		s.Generated.Flashcards = []Flashcard{}
	}
	if s.Generated.TheoryOverview == nil {
		s.Generated.TheoryOverview = []TheorySection{}
	}
	if s.Generated.Quiz == nil {
		s.Generated.Quiz = []QuizQuestion{}
	}

	accepted := make([]Module, 0, len(s.AcceptedModules))
	seen := make(map[Module]bool, len(s.AcceptedModules))
	for _, mod := range s.AcceptedModules {
		if seen[mod] {
			continue
		}
		seen[mod] = true
		accepted = append(accepted, mod)
	}
	s.AcceptedModules = accepted
	return s
}
