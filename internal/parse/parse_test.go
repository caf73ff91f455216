package parse

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strings"
	"testing"

	"github.com/abhisek/leerkit/internal/wizard"
)

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
		ok   bool
	}{
		{"bare", `{"a":1}`, `{"a":1}`, true},
		{"fenced", "```json\n{\"a\":{\"b\":2}}\n```", `{"a":{"b":2}}`, true},
		{"prose", "Hier is het:\n{\"a\":1}\nSucces!", `{"a":1}`, true},
		{"none", "geen json", "", false},
		{"reversed", "} {", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ExtractJSON(tt.raw)
			if ok != tt.ok || got != tt.want {
				t.Errorf("expected (%q, %v), got (%q, %v)", tt.want, tt.ok, got, ok)
			}
		})
	}
}

func TestFlashcards_Strict(t *testing.T) {
	raw := "```json\n" + `{"flashcards":[{"front":"Cel","back":"Kleinste eenheid van leven"},` +
		`{"front":"","back":"leeg"},{"front":"DNA","back":"Erfelijk materiaal"}]}` + "\n```"

	got := Flashcards(raw)
	want := []wizard.Flashcard{
		{Front: "Cel", Back: "Kleinste eenheid van leven"},
		{Front: "DNA", Back: "Erfelijk materiaal"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestFlashcards_CapPreservesOrder(t *testing.T) {
	var cards []map[string]string
	for i := range 20 {
		cards = append(cards, map[string]string{"front": fmt.Sprintf("F%d", i), "back": fmt.Sprintf("B%d", i)})
	}
	raw, _ := json.Marshal(map[string]any{"flashcards": cards})

	got := Flashcards(string(raw))
	if len(got) != MaxFlashcards {
		t.Fatalf("expected %d cards, got %d", MaxFlashcards, len(got))
	}
	for i, c := range got {
		if c.Front != fmt.Sprintf("F%d", i) {
			t.Errorf("card %d: expected F%d, got %s", i, i, c.Front)
		}
	}
}

func TestFlashcards_HeuristicMatchesJSON(t *testing.T) {
	tests := []struct {
		name    string
		jsonRaw string
		textRaw string
	}{
		{
			name: "quoted and plain values",
			jsonRaw: `{"flashcards":[{"front":"Mitose","back":"Deling van de celkern"},` +
				`{"front":"Meiose","back":"Reductiedeling"}]}`,
			textRaw: `Hier zijn je kaartjes:
Front: "Mitose"
Back: "Deling van de celkern"

front: Meiose
back: Reductiedeling
`,
		},
		{
			name: "values containing the marker words",
			jsonRaw: `{"flashcards":[{"front":"Wat is een front-end?","back":"Terugkoppeling, ook wel feedback genoemd"},` +
				`{"front":"Backup of front?","back":"Kopie aan de back-end"}]}`,
			textRaw: `Front: Wat is een front-end?
Back: Terugkoppeling, ook wel feedback genoemd
1. Front: Backup of front?
   Back: Kopie aan de back-end
`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fromJSON := Flashcards(tt.jsonRaw)
			fromText := Flashcards(tt.textRaw)
			if len(fromJSON) != 2 {
				t.Fatalf("expected 2 cards from JSON, got %d", len(fromJSON))
			}
			if !reflect.DeepEqual(fromJSON, fromText) {
				t.Fatalf("expected heuristic %v to equal JSON %v", fromText, fromJSON)
			}
		})
	}
}

func TestFlashcards_HeuristicDropsIncomplete(t *testing.T) {
	raw := "Front: Alleen voorkant\nFront: Compleet\nBack: Ja\nFront: Staart zonder achterkant"
	got := Flashcards(raw)
	want := []wizard.Flashcard{{Front: "Compleet", Back: "Ja"}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestFlashcards_JSONWithoutFieldFallsBack(t *testing.T) {
	raw := "{\"cards\": []}\nFront: X\nBack: Y"
	got := Flashcards(raw)
	if len(got) != 1 || got[0].Front != "X" {
		t.Fatalf("expected heuristic card, got %v", got)
	}
}

func TestFlashcards_Nothing(t *testing.T) {
	if got := Flashcards("Sorry, daar kan ik niet mee helpen."); len(got) != 0 {
		t.Fatalf("expected no cards, got %v", got)
	}
}

func TestQuiz_DropsWrongOptionCount(t *testing.T) {
	raw := `{"quiz":[{"question":"Q1","options":["A","B","C"],"correctAnswer":1},` +
		`{"question":"Q2","options":["A","B"],"correctAnswer":0}]}`

	got := Quiz(raw)
	if len(got) != 1 {
		t.Fatalf("expected 1 question, got %d", len(got))
	}
	if got[0].Question != "Q1" || got[0].CorrectAnswer != 1 {
		t.Errorf("expected Q1 with answer 1, got %+v", got[0])
	}
}

func TestQuiz_ShapeValidation(t *testing.T) {
	raw := `{"quiz":[
		{"question":"ok","options":["a","b","c"],"correctAnswer":2},
		{"question":"","options":["a","b","c"],"correctAnswer":0},
		{"question":"geen index","options":["a","b","c"]},
		{"question":"tekst index","options":["a","b","c"],"correctAnswer":"1"},
		{"question":"buiten bereik","options":["a","b","c"],"correctAnswer":3},
		{"question":"negatief","options":["a","b","c"],"correctAnswer":-1},
		{"question":"vier","options":["a","b","c","d"],"correctAnswer":0},
		"geen object"
	]}`

	got := Quiz(raw)
	if len(got) != 1 || got[0].Question != "ok" {
		t.Fatalf("expected only the valid entry, got %+v", got)
	}
	for _, q := range got {
		if len(q.Options) != OptionCount || q.CorrectAnswer < 0 || q.CorrectAnswer > 2 {
			t.Errorf("invalid question returned: %+v", q)
		}
	}
}

func TestQuiz_FilterThenCap(t *testing.T) {
	var qs []map[string]any
	for i := range 3 {
		qs = append(qs, map[string]any{"question": fmt.Sprintf("bad%d", i), "options": []string{"a"}, "correctAnswer": 0})
	}
	for i := range 10 {
		qs = append(qs, map[string]any{"question": fmt.Sprintf("Q%d", i), "options": []string{"a", "b", "c"}, "correctAnswer": i % 3})
	}
	raw, _ := json.Marshal(map[string]any{"quiz": qs})

	got := Quiz(string(raw))
	if len(got) != MaxQuizQuestions {
		t.Fatalf("expected %d questions, got %d", MaxQuizQuestions, len(got))
	}
	if got[0].Question != "Q0" || got[7].Question != "Q7" {
		t.Errorf("expected Q0..Q7, got %s..%s", got[0].Question, got[7].Question)
	}
}

func TestQuiz_Heuristic(t *testing.T) {
	raw := `1. Wat is de hoofdstad van Nederland?
A) Rotterdam
B) Amsterdam
C) Den Haag
Correct antwoord: B

2. Welke rivier stroomt door Keulen?
A) Rijn
B) Maas
C) Schelde
Antwoord: A

3. Vraag zonder antwoord
A) x
B) y
C) z

4. Te weinig opties
A) x
B) y
Correct: C
`
	got := Quiz(raw)
	want := []wizard.QuizQuestion{
		{Question: "Wat is de hoofdstad van Nederland?", Options: []string{"Rotterdam", "Amsterdam", "Den Haag"}, CorrectAnswer: 1},
		{Question: "Welke rivier stroomt door Keulen?", Options: []string{"Rijn", "Maas", "Schelde"}, CorrectAnswer: 0},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %+v, got %+v", want, got)
	}
}

func TestQuiz_HeuristicAnswerLine(t *testing.T) {
	tests := []struct {
		line string
		want int
	}{
		{"Correct antwoord: B", 1},
		{"Het juiste antwoord: B (niet A)", 1},
		{"Antwoord: C, want A en B kloppen niet", 2},
		{"Correct is A", 0},
		{"Het correcte antwoord is C", 2},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			raw := "1. Vraag\nA) a\nB) b\nC) c\n" + tt.line
			got := Quiz(raw)
			if len(got) != 1 {
				t.Fatalf("expected 1 question, got %d", len(got))
			}
			if got[0].CorrectAnswer != tt.want {
				t.Errorf("CorrectAnswer = %d, want %d", got[0].CorrectAnswer, tt.want)
			}
		})
	}
}

func TestQuiz_HeuristicCapped(t *testing.T) {
	var b strings.Builder
	for i := 1; i <= 12; i++ {
		fmt.Fprintf(&b, "%d. Vraag %d\nA) a\nB) b\nC) c\nCorrect: C\n", i, i)
	}
	got := Quiz(b.String())
	if len(got) != MaxQuizQuestions {
		t.Fatalf("expected %d questions, got %d", MaxQuizQuestions, len(got))
	}
	if got[0].CorrectAnswer != 2 {
		t.Errorf("expected answer 2, got %d", got[0].CorrectAnswer)
	}
}

func TestTheory(t *testing.T) {
	raw := "```json\n" + `{"theory":{
		"orientation":"Je leert over cellen.",
		"concepts":[{"title":"Celmembraan","definition":"Grens van de cel","metaphor":"Een poortwachter"},
			{"definition":"Zonder titel","metaphor":" "}],
		"connections":"Alles hangt samen.",
		"application":{"example":"Een plantencel","steps":["Bekijk","Benoem"]},
		"essence":["Cellen leven","Membranen filteren"]
	}}` + "\n```"

	o, ok := Theory(raw)
	if !ok {
		t.Fatal("expected outline")
	}
	secs := o.Sections()
	if len(secs) != 6 {
		t.Fatalf("expected 6 sections, got %d", len(secs))
	}

	wantIDs := []string{"orientation", "concept-0", "concept-1", "connections", "application", "essence"}
	for i, id := range wantIDs {
		if secs[i].ID != id {
			t.Errorf("section %d: expected id %q, got %q", i, id, secs[i].ID)
		}
	}
	if secs[1].Content != "Grens van de cel\n\nMetafoor: Een poortwachter" {
		t.Errorf("unexpected concept content %q", secs[1].Content)
	}
	if secs[2].Title != "Concept 2" {
		t.Errorf("expected fallback title, got %q", secs[2].Title)
	}
	if secs[2].Content != "Zonder titel" {
		t.Errorf("blank metaphor should be left out, got %q", secs[2].Content)
	}
	if secs[4].Content != "Een plantencel\n\nStappen:\n1. Bekijk\n2. Benoem" {
		t.Errorf("unexpected application content %q", secs[4].Content)
	}
	if secs[5].Title != EssenceTitle || secs[5].Content != "• Cellen leven\n• Membranen filteren" {
		t.Errorf("unexpected essence section %+v", secs[5])
	}
	if secs[5].Kind != wizard.SectionEssence {
		t.Errorf("expected essence kind, got %q", secs[5].Kind)
	}
}

func TestTheory_NoFallback(t *testing.T) {
	tests := []string{
		"ORIËNTATIE\nJe leert over cellen.",
		`{"overview":{"orientation":"x"}}`,
		`{"theory":{}}`,
		`{"theory":`,
	}
	for _, raw := range tests {
		if _, ok := Theory(raw); ok {
			t.Errorf("expected failure for %q", raw)
		}
	}
}
