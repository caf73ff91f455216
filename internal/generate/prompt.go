package generate

import (
	"fmt"
	"strings"

	"github.com/abhisek/leerkit/internal/wizard"
)

func buildFlashcardsPrompt(content string, level wizard.Level) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Je bent een expert in het maken van educatieve flashcards. Genereer precies 15 flashcards voor het %s niveau op basis van de volgende vakinhoud.\n\n", level)
	fmt.Fprintf(&b, "VAKINHOUDELIJKE KENNIS:\n%s\n\n", content)
	fmt.Fprintf(&b, `INSTRUCTIES:
1. Maak precies 15 flashcards
2. Elke flashcard moet een korte vraag/term zijn op de voorkant en een heldere uitleg op de achterkant
3. Pas de moeilijkheidsgraad aan op het %s niveau
4. Zorg voor variatie in vraagtypen (definitie, toepassing, voorbeeld, etc.)
5. Gebruik duidelijke, eenvoudige taal
6. Voorkom overlapping tussen kaartjes

GEWENST OUTPUT FORMAAT (JSON):
{
  "flashcards": [
    {
      "front": "Korte vraag of term",
      "back": "Heldere uitleg of antwoord"
    }
  ]
}

Genereer nu de flashcards:`, level)

	return b.String()
}

func buildQuizPrompt(content string, level wizard.Level) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Je bent een expert in het maken van educatieve toetsvragen. Genereer precies 8 multiple choice vragen voor het %s niveau op basis van de volgende vakinhoud.\n\n", level)
	fmt.Fprintf(&b, "VAKINHOUDELIJKE KENNIS:\n%s\n\n", content)
	fmt.Fprintf(&b, `INSTRUCTIES:
1. Maak precies 8 multiple choice vragen
2. Elke vraag heeft exact 3 antwoordalternatieven (A, B, C)
3. Pas de moeilijkheidsgraad aan op het %[1]s niveau
4. Zorg voor variatie in vraagtypen (begrip, toepassing, analyse)
5. Maak vragen die de kernconcepten testen
6. Eén antwoord per vraag is correct
7. Maak de foute antwoorden plausibel maar duidelijk fout
8. Gebruik duidelijke, eenvoudige taal geschikt voor %[1]s

GEWENST OUTPUT FORMAAT (JSON):
{
  "quiz": [
    {
      "question": "De vraag tekst hier",
      "options": [
        "Antwoordoptie A",
        "Antwoordoptie B",
        "Antwoordoptie C"
      ],
      "correctAnswer": 0
    }
  ]
}

BELANGRIJK: correctAnswer is de index (0, 1, of 2) van het juiste antwoord in de options array.

Genereer nu de 8 toetsvragen:`, level)

	return b.String()
}

func buildTheoryPrompt(content string, level wizard.Level) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Je bent een expert in het maken van educatieve theorie-overzichten. Creëer een gestructureerd theorie-overzicht voor het %s niveau op basis van de volgende vakinhoud.\n\n", level)
	fmt.Fprintf(&b, "VAKINHOUDELIJKE KENNIS:\n%s\n\n", content)
	fmt.Fprintf(&b, `INSTRUCTIES:
Maak een theorie-overzicht met EXACT de volgende structuur:

1. ORIËNTATIE (maximaal 3 zinnen)
   - Wat ga je leren en waarom is dit relevant?

2. KERNCONCEPTEN (3-5 hoofdpunten)
   - Elk concept in eigen blok
   - Definitie in begrijpelijke taal voor %s niveau
   - Concrete metafoor/analogie per concept

3. SAMENHANG
   - Hoe verhouden concepten zich tot elkaar?

4. TOEPASSING
   - Eén concreet, herkenbaar voorbeeld
   - Stapsgewijze uitwerking

5. ESSENTIE
   - Kernboodschap in 2-3 punten
   - "Onthoud vooral dit..."

GEWENST OUTPUT FORMAAT (JSON):
{
  "theory": {
    "orientation": "Tekst voor oriëntatie sectie",
    "concepts": [
      {
        "title": "Concept naam",
        "definition": "Definitie in begrijpelijke taal",
        "metaphor": "Concrete metafoor of analogie"
      }
    ],
    "connections": "Uitleg van samenhang tussen concepten",
    "application": {
      "example": "Concreet voorbeeld",
      "steps": ["Stap 1", "Stap 2", "Stap 3"]
    },
    "essence": [
      "Kernpunt 1",
      "Kernpunt 2",
      "Kernpunt 3"
    ]
  }
}

Genereer nu het theorie-overzicht:`, level)

	return b.String()
}

// TutorPrompt assembles the tutor persona: the didactics, the subject
// content and the education level.
func TutorPrompt(c wizard.ContentInput) string {
	var b strings.Builder

	b.WriteString(c.Didactics)
	fmt.Fprintf(&b, "\n\nVAKINHOUDELIJKE KENNIS:\n%s\n\n", c.Subject())
	fmt.Fprintf(&b, "ONDERWIJSNIVEAU: %s\n\n", c.Level)
	fmt.Fprintf(&b, "Je hebt toegang tot bovenstaande vakinhoudelijke kennis en moet hiermee leerlingen op %s-niveau helpen leren. "+
		"Gebruik deze kennis als basis voor je uitleg en voorbeelden.\n\n", c.Level)
	b.WriteString(`Wanneer een leerling "start" zegt of het gesprek begint, geef dan een korte, hartelijke welkomstboodschap ` +
		`waarin je uitlegt waar je mee kunt helpen op basis van de vakinhoud. Houd dit beknopt (maximaal 3 zinnen).`)

	return b.String()
}

const startInstruction = "Leerling heeft zojuist op start gedrukt. Geef nu je welkomstboodschap."

func buildStartPrompt(persona string) string {
	return persona + "\n\n" + startInstruction
}

func buildReplyPrompt(persona string, history []Turn, message string) string {
	var b strings.Builder

	b.WriteString(persona)
	fmt.Fprintf(&b, "\n\nGESPREK TOT NU TOE:\n%s\n\n", FormatTranscript(history))
	fmt.Fprintf(&b, "Leerling: %s\n\n", message)
	b.WriteString("Reageer nu als de AI-tutor:")

	return b.String()
}
