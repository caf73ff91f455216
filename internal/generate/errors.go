package generate

import (
	"errors"
	"fmt"

	"github.com/abhisek/leerkit/internal/llm"
)

// Kind classifies a failure by what the user can do about it.
type Kind string

const (
	KindConfiguration Kind = "configuration"
	KindValidation    Kind = "validation"
	KindTransient     Kind = "transient"
	KindUnstructured  Kind = "unstructured"
	KindRejected      Kind = "rejected"
)

// Error is a user-facing failure. Message is shown as is; Suggestions
// are concrete remedies.
type Error struct {
	Kind        Kind
	Message     string
	Suggestions []string
	Attempts    int
	Err         error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

const (
	suggestConnection = "Controleer je internetverbinding"
	suggestShorter    = "Probeer je tekst korter te maken"
	suggestWait       = "Wacht een minuut en probeer opnieuw"
	suggestConfigure  = "Stel een API-sleutel in (bijvoorbeeld GEMINI_API_KEY) en start opnieuw"
)

// MissingInputMessage is returned when content or level is absent.
const MissingInputMessage = "Content en niveau zijn vereist"

// action describes one generation action for error reporting.
type action struct {
	purpose string
	label   string // "Quiz generatie" in "Quiz generatie mislukt na 4 pogingen."
	slow    string
	empty   string
	failed  string
	long    bool // the subject text is part of the prompt
}

var (
	actionFlashcards = action{
		purpose: "flashcards",
		label:   "Flashcard generatie",
		slow:    "De flashcard generatie duurt te lang. Controleer je internetverbinding en probeer het opnieuw.",
		empty:   "De AI kon geen geldige flashcards genereren. Probeer het opnieuw.",
		failed:  "Er is een fout opgetreden bij het genereren van flashcards",
		long:    true,
	}
	actionQuiz = action{
		purpose: "quiz",
		label:   "Quiz generatie",
		slow:    "De quiz generatie duurt te lang. Controleer je internetverbinding en probeer het opnieuw.",
		empty:   "De AI kon geen geldige quizvragen genereren. Probeer het opnieuw.",
		failed:  "Er is een fout opgetreden bij het genereren van de quiz",
		long:    true,
	}
	actionTheory = action{
		purpose: "theory",
		label:   "Theorie generatie",
		slow:    "De theorie generatie duurt te lang. Controleer je internetverbinding en probeer het opnieuw.",
		empty:   "De AI kon geen geldig theorie-overzicht genereren. Probeer het opnieuw.",
		failed:  "Er is een fout opgetreden bij het genereren van het theorie-overzicht",
		long:    true,
	}
	actionTutorStart = action{
		purpose: "tutor-start",
		label:   "Chatbot start",
		slow:    "De chatbot start duurt te lang. Controleer je internetverbinding en probeer het opnieuw.",
		empty:   "De tutor gaf geen antwoord. Probeer het opnieuw.",
		failed:  "Er is een fout opgetreden bij het starten van de chatbot",
	}
	actionTutorReply = action{
		purpose: "tutor-reply",
		label:   "Bericht versturen",
		slow:    "Het bericht versturen duurt te lang. Controleer je internetverbinding en probeer het opnieuw.",
		empty:   "De tutor gaf geen antwoord. Probeer het opnieuw.",
		failed:  "Er is een fout opgetreden bij het versturen van het bericht",
	}
	actionChat = action{
		purpose: "chat",
		label:   "Chat",
		slow:    "Het antwoord duurt te lang. Controleer je internetverbinding en probeer het opnieuw.",
		empty:   "De AI gaf geen antwoord. Probeer het opnieuw.",
		failed:  "Er is een fout opgetreden bij het verwerken van het bericht",
	}
)

func (a action) suggestions() []string {
	if a.long {
		return []string{suggestConnection, suggestShorter, suggestWait}
	}
	return []string{suggestConnection, suggestWait}
}

func (a action) unstructured() *Error {
	return &Error{Kind: KindUnstructured, Message: a.empty, Suggestions: []string{suggestWait}}
}

func validation(msg string) *Error {
	return &Error{Kind: KindValidation, Message: msg}
}

func notConfigured(err error) *Error {
	return &Error{
		Kind:        KindConfiguration,
		Message:     llm.ErrNotConfigured.Error(),
		Suggestions: []string{suggestConfigure},
		Err:         err,
	}
}

// classify turns a provider error into the Error shown for a.
func (a action) classify(err error) *Error {
	if errors.Is(err, llm.ErrNotConfigured) {
		return notConfigured(err)
	}

	var rejected *llm.ErrRequestRejected
	if errors.As(err, &rejected) {
		return &Error{Kind: KindRejected, Message: a.failed, Suggestions: []string{suggestShorter}, Err: err}
	}

	var exhausted *llm.ErrRetriesExhausted
	if errors.As(err, &exhausted) {
		var timeout *llm.ErrTimeout
		if errors.As(exhausted.Err, &timeout) {
			return &Error{Kind: KindTransient, Message: a.slow, Suggestions: a.suggestions(), Attempts: exhausted.Attempts, Err: err}
		}
		return &Error{
			Kind:        KindTransient,
			Message:     fmt.Sprintf("%s mislukt na %d pogingen.", a.label, exhausted.Attempts),
			Suggestions: a.suggestions(),
			Attempts:    exhausted.Attempts,
			Err:         err,
		}
	}

	var timeout *llm.ErrTimeout
	if errors.As(err, &timeout) {
		return &Error{Kind: KindTransient, Message: a.slow, Suggestions: a.suggestions(), Attempts: 1, Err: err}
	}

	var invalid *llm.ErrInvalidResponse
	if errors.As(err, &invalid) {
		return &Error{Kind: KindUnstructured, Message: a.empty, Suggestions: []string{suggestWait}, Err: err}
	}

	var tooLong *llm.ErrMaxTokensExceeded
	if errors.As(err, &tooLong) {
		return &Error{Kind: KindRejected, Message: a.failed, Suggestions: []string{suggestShorter}, Err: err}
	}

	return &Error{Kind: KindTransient, Message: a.failed, Suggestions: a.suggestions(), Attempts: 1, Err: err}
}
