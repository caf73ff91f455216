package parse

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/abhisek/leerkit/internal/wizard"
)

// Outline is the structured theory overview a completion describes.
type Outline struct {
	Orientation string       `json:"orientation"`
	Concepts    []Concept    `json:"concepts"`
	Connections string       `json:"connections"`
	Application *Application `json:"application"`
	Essence     []string     `json:"essence"`
}

type Concept struct {
	Title      string `json:"title"`
	Definition string `json:"definition"`
	Metaphor   string `json:"metaphor"`
}

type Application struct {
	Example string   `json:"example"`
	Steps   []string `json:"steps"`
}

// Theory decodes the "theory" object of a completion. There is no line
// heuristic for theory; ok is false when no usable object is present.
func Theory(raw string) (*Outline, bool) {
	field, ok := topLevel(raw, "theory")
	if !ok {
		return nil, false
	}
	var o Outline
	if err := json.Unmarshal(field, &o); err != nil {
		return nil, false
	}
	if len(o.Sections()) == 0 {
		return nil, false
	}
	return &o, true
}

// EssenceTitle heads the closing section of a theory overview.
const EssenceTitle = "Essentie - Onthoud vooral dit..."

// Sections flattens the outline into display sections. Absent parts are
// skipped.
func (o *Outline) Sections() []wizard.TheorySection {
	var out []wizard.TheorySection

	if o.Orientation != "" {
		out = append(out, wizard.TheorySection{
			ID: "orientation", Title: "Oriëntatie", Content: o.Orientation, Kind: wizard.SectionOrientation,
		})
	}

	for i, c := range o.Concepts {
		title := c.Title
		if title == "" {
			title = fmt.Sprintf("Concept %d", i+1)
		}
		content := c.Definition
		if m := strings.TrimSpace(c.Metaphor); m != "" {
			content += "\n\nMetafoor: " + m
		}
		out = append(out, wizard.TheorySection{
			ID:      fmt.Sprintf("concept-%d", i),
			Title:   title,
			Content: content,
			Kind:    wizard.SectionConcept,
		})
	}

	if o.Connections != "" {
		out = append(out, wizard.TheorySection{
			ID: "connections", Title: "Samenhang", Content: o.Connections, Kind: wizard.SectionConnections,
		})
	}

	if o.Application != nil {
		var b strings.Builder
		b.WriteString(o.Application.Example)
		b.WriteString("\n\nStappen:")
		for i, step := range o.Application.Steps {
			fmt.Fprintf(&b, "\n%d. %s", i+1, step)
		}
		out = append(out, wizard.TheorySection{
			ID: "application", Title: "Toepassing", Content: b.String(), Kind: wizard.SectionApplication,
		})
	}

	if len(o.Essence) > 0 {
		points := make([]string, len(o.Essence))
		for i, p := range o.Essence {
			points[i] = "• " + p
		}
		out = append(out, wizard.TheorySection{
			ID: "essence", Title: EssenceTitle, Content: strings.Join(points, "\n"), Kind: wizard.SectionEssence,
		})
	}

	return out
}
