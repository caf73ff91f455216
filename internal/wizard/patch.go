package wizard

import "strings"

// ContentPatch carries the ContentInput fields to overwrite. Nil fields
// are left untouched.
type ContentPatch struct {
	SubjectText          *string        `json:"subjectText,omitempty"`
	UploadedFiles        []UploadedFile `json:"-"`
	UploadedFileContents *[]string      `json:"uploadedFileContents,omitempty"`
	Didactics            *string        `json:"didactics,omitempty"`
	Level                *Level         `json:"level,omitempty"`
}

func (p ContentPatch) apply(c *ContentInput) {
	if p.SubjectText != nil {
		c.SubjectText = *p.SubjectText
	}
	if p.UploadedFiles != nil {
		c.UploadedFiles = append([]UploadedFile{}, p.UploadedFiles...)
	}
	if p.UploadedFileContents != nil {
		c.UploadedFileContents = append([]string{}, (*p.UploadedFileContents)...)
	}
	if p.Didactics != nil {
		c.Didactics = *p.Didactics
	}
	if p.Level != nil {
		c.Level = *p.Level
	}
}

// GeneratedPatch carries the GeneratedContent fields to overwrite.
// Contents are stored as given; option counts are not re-checked here.
type GeneratedPatch struct {
	Chatbot        *ChatbotConfig   `json:"chatbot,omitempty"`
	Flashcards     *[]Flashcard     `json:"flashcards,omitempty"`
	TheoryOverview *[]TheorySection `json:"theoryOverview,omitempty"`
	Quiz           *[]QuizQuestion  `json:"quiz,omitempty"`
}

func (p GeneratedPatch) apply(g *GeneratedContent) {
	if p.Chatbot != nil {
		cb := *p.Chatbot
		g.Chatbot = &cb
	}
	if p.Flashcards != nil {
		g.Flashcards = append([]Flashcard{}, (*p.Flashcards)...)
	}
	if p.TheoryOverview != nil {
		g.TheoryOverview = append([]TheorySection{}, (*p.TheoryOverview)...)
	}
	if p.Quiz != nil {
		qs := make([]QuizQuestion, len(*p.Quiz))
		for i, q := range *p.Quiz {
			q.Options = append([]string{}, q.Options...)
			qs[i] = q
		}
		g.Quiz = qs
	}
}

// UploadSeparator is placed between existing subject text and an appended document.
const UploadSeparator = "\n\n--- Geüpload document ---\n\n"

// UploadPatch returns the patch that appends an extracted document to c:
// the text joins the subject text and the file is tracked as uploaded.
func UploadPatch(c ContentInput, file UploadedFile, text string) ContentPatch {
	sep := ""
	if strings.TrimSpace(c.SubjectText) != "" {
		sep = UploadSeparator
	}
	subject := c.SubjectText + sep + text
	contents := append(append([]string{}, c.UploadedFileContents...), text)
	files := append(append([]UploadedFile{}, c.UploadedFiles...), file)
	return ContentPatch{
		SubjectText:          &subject,
		UploadedFiles:        files,
		UploadedFileContents: &contents,
	}
}
