package wizard

import "strings"

// CanProceed reports whether the user may leave the current step. The
// machine never enforces this; front ends gate their "next" action on it.
func CanProceed(s State) bool {
	switch s.CurrentStep {
	case StepContent:
		return s.Content.HasContent() && strings.TrimSpace(s.Content.Didactics) != ""
	case StepTutor:
		return s.Generated.Chatbot != nil
	case StepFlashcards, StepTheory, StepQuiz:
		// Optional modules; declining one skips ahead.
		return true
	default:
		return false
	}
}

// StepModule returns the module generated in step s, if any.
func StepModule(s Step) (Module, bool) {
	switch s {
	case StepTutor:
		return ModuleChatbot, true
	case StepFlashcards:
		return ModuleFlashcards, true
	case StepTheory:
		return ModuleTheory, true
	case StepQuiz:
		return ModuleQuiz, true
	}
	return "", false
}
