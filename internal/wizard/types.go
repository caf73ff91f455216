package wizard

import (
	"fmt"
	"strings"
)

// Step is a position in the linear wizard, 1 through 6.
type Step int

const (
	StepContent Step = iota + 1
	StepTutor
	StepFlashcards
	StepTheory
	StepQuiz
	StepReview
)

const (
	FirstStep = StepContent
	LastStep  = StepReview
)

var stepTitles = map[Step]string{
	StepContent:    "Content input",
	StepTutor:      "Tutor preview",
	StepFlashcards: "Flashcards",
	StepTheory:     "Theory overview",
	StepQuiz:       "Practice quiz",
	StepReview:     "Final review",
}

// Title returns the display name of the step.
func (s Step) Title() string {
	if t, ok := stepTitles[s]; ok {
		return t
	}
	return fmt.Sprintf("Step %d", int(s))
}

// clampStep forces s into [FirstStep, LastStep].
func clampStep(s Step) Step {
	if s < FirstStep {
		return FirstStep
	}
	if s > LastStep {
		return LastStep
	}
	return s
}

// Level is the schooling tier the generated material is tuned for.
type Level string

const (
	LevelPO   Level = "PO"
	LevelVMBO Level = "VMBO"
	LevelHAVO Level = "HAVO"
	LevelVWO  Level = "VWO"
	LevelMBO  Level = "MBO"
	LevelHBO  Level = "HBO"
	LevelUNI  Level = "UNI"
)

// DefaultLevel is used for a fresh session.
const DefaultLevel = LevelHBO

// Levels lists all education levels from primary school to university.
var Levels = []Level{LevelPO, LevelVMBO, LevelHAVO, LevelVWO, LevelMBO, LevelHBO, LevelUNI}

// ParseLevel returns the Level matching s, ignoring case and surrounding space.
func ParseLevel(s string) (Level, error) {
	want := strings.ToUpper(strings.TrimSpace(s))
	for _, l := range Levels {
		if string(l) == want {
			return l, nil
		}
	}
	return "", fmt.Errorf("unknown education level %q", s)
}

// Valid reports whether l is one of the known levels.
func (l Level) Valid() bool {
	_, err := ParseLevel(string(l))
	return err == nil
}

// Module is an optional generated artifact the user can accept.
type Module string

const (
	ModuleChatbot    Module = "chatbot"
	ModuleFlashcards Module = "flashcards"
	ModuleTheory     Module = "theory"
	ModuleQuiz       Module = "quiz"
)

// Modules lists every module in practice order.
var Modules = []Module{ModuleChatbot, ModuleTheory, ModuleFlashcards, ModuleQuiz}

// ParseModule returns the Module named s.
func ParseModule(s string) (Module, error) {
	m := Module(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Modules {
		if m == known {
			return m, nil
		}
	}
	return "", fmt.Errorf("unknown module %q", s)
}

// UploadedFile describes a document the user uploaded. The raw handle
// lives only in memory; its extracted text is kept in UploadedFileContents.
type UploadedFile struct {
	Name string
	Size int64
	Data []byte
}

// ContentInput is the subject matter and settings collected in step 1.
type ContentInput struct {
	SubjectText          string         `json:"subjectText"`
	UploadedFiles        []UploadedFile `json:"-"`
	UploadedFileContents []string       `json:"uploadedFileContents"`
	Didactics            string         `json:"didactics"`
	Level                Level          `json:"level"`
}

// Subject returns the text used as source material: the typed subject
// text, or the uploaded document texts when nothing was typed.
func (c ContentInput) Subject() string {
	if c.SubjectText != "" {
		return c.SubjectText
	}
	return strings.Join(c.UploadedFileContents, "\n\n")
}

// HasContent reports whether any source material is present.
func (c ContentInput) HasContent() bool {
	return strings.TrimSpace(c.SubjectText) != "" || len(c.UploadedFileContents) > 0
}

// ChatbotConfig is the tutor persona produced in step 2.
type ChatbotConfig struct {
	Prompt         string `json:"prompt"`
	WelcomeMessage string `json:"welcomeMessage"`
	Accepted       bool   `json:"isAccepted"`
}

type Flashcard struct {
	ID    string `json:"id"`
	Front string `json:"front"`
	Back  string `json:"back"`
}

type QuizQuestion struct {
	ID            string   `json:"id"`
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer int      `json:"correctAnswer"`
}

// SectionKind classifies a block of the theory overview.
type SectionKind string

const (
	SectionOrientation SectionKind = "orientation"
	SectionConcept     SectionKind = "concept"
	SectionConnections SectionKind = "connections"
	SectionApplication SectionKind = "application"
	SectionEssence     SectionKind = "essence"
)

type TheorySection struct {
	ID      string      `json:"id"`
	Title   string      `json:"title"`
	Content string      `json:"content"`
	Kind    SectionKind `json:"type"`
}

// GeneratedContent holds the artifacts produced by steps 2 through 5.
type GeneratedContent struct {
	Chatbot        *ChatbotConfig  `json:"chatbot"`
	Flashcards     []Flashcard     `json:"flashcards"`
	TheoryOverview []TheorySection `json:"theoryOverview"`
	Quiz           []QuizQuestion  `json:"quiz"`
}

// State is the whole wizard session.
type State struct {
	CurrentStep     Step             `json:"currentStep"`
	Content         ContentInput     `json:"content"`
	Generated       GeneratedContent `json:"generatedContent"`
	AcceptedModules []Module         `json:"acceptedModules"`
	Complete        bool             `json:"isComplete"`
}

// IsAccepted reports whether m is in the accepted list.
func (s State) IsAccepted(m Module) bool {
	for _, a := range s.AcceptedModules {
		if a == m {
			return true
		}
	}
	return false
}

// InitialState returns the state of a fresh session.
func InitialState() State {
	return State{
		CurrentStep: FirstStep,
		Content: ContentInput{
			UploadedFiles:        []UploadedFile{},
			UploadedFileContents: []string{},
			Didactics:            DefaultDidactics,
			Level:                DefaultLevel,
		},
		Generated: GeneratedContent{
			Flashcards:     []Flashcard{},
			TheoryOverview: []TheorySection{},
			Quiz:           []QuizQuestion{},
		},
		AcceptedModules: []Module{},
	}
}

// clone returns a deep copy so callers never share slices with the machine.
func (s State) clone() State {
	out := s
	out.Content.UploadedFiles = append([]UploadedFile{}, s.Content.UploadedFiles...)
	out.Content.UploadedFileContents = append([]string{}, s.Content.UploadedFileContents...)
	if s.Generated.Chatbot != nil {
		cb := *s.Generated.Chatbot
		out.Generated.Chatbot = &cb
	}
	out.Generated.Flashcards = append([]Flashcard{}, s.Generated.Flashcards...)
	out.Generated.TheoryOverview = append([]TheorySection{}, s.Generated.TheoryOverview...)
	out.Generated.Quiz = make([]QuizQuestion, len(s.Generated.Quiz))
	for i, q := range s.Generated.Quiz {
		q.Options = append([]string{}, q.Options...)
		out.Generated.Quiz[i] = q
	}
	out.AcceptedModules = append([]Module{}, s.AcceptedModules...)
	return out
}

// DefaultDidactics is the tutor persona a new session starts with.
const DefaultDidactics = "Je bent een deskundige tutor die complexe concepten helder en stapsgewijs uitlegt. " +
	"Je past je uitleg aan op het niveau van de lerende en gebruikt concrete voorbeelden en analogieën om abstracte concepten toegankelijk te maken. " +
	"Je structureert je uitleg logisch: eerst de hoofdlijnen, dan de details. " +
	"Je controleert regelmatig of de lerende het begrijpt door korte samenvattingen te geven en te vragen of alles duidelijk is. " +
	"Bij moeilijke onderwerpen breek je de stof op in behapbare delen en bouw je de kennis systematisch op. " +
	"Pedagogisch gezien creëer je een veilige leeromgeving waarin fouten maken een natuurlijk onderdeel van het leerproces is. " +
	"Je benadert elke lerende met geduld, respect en oprechte interesse in hun ontwikkeling. " +
	"Door positieve bekrachtiging en het benadrukken van groei bouw je het zelfvertrouwen op en stimuleer je een groeimindset waarbij uitdagingen gezien worden als kansen om te leren. " +
	"Je erkent verschillende leerstijlen en achtergronden, moedigt zelfreflectie en metacognitie aan, " +
	"en verbindt de leerstof met de persoonlijke doelen en interesses van de lerende om intrinsieke motivatie te bevorderen."
