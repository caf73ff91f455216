package extract

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/ledongthuc/pdf"
)

// Placeholders stand in for PDF text that could not be recovered.
const (
	PlaceholderNoText = "[PDF bevat geen leesbare tekst. Dit kan gebeuren bij gescande documenten of afbeeldingen. " +
		"Probeer een ander bestand of kopieer de tekst handmatig.]"
	PlaceholderEncrypted  = "[PDF is beveiligd met een wachtwoord. Upload een onbeveiligd bestand.]"
	PlaceholderInvalidPDF = "[PDF bestand is beschadigd of ongeldig. Probeer een ander bestand.]"
	PlaceholderUnreadable = "[PDF kon niet worden gelezen. Probeer een ander bestand of kopieer de tekst handmatig.]"
)

// minPDFText is the shortest extraction treated as real content.
const minPDFText = 10

// pdfContent returns the normalized text of data or a placeholder.
func pdfContent(data []byte) string {
	text, err := pdfText(data)
	if err != nil {
		return pdfPlaceholder(err)
	}
	text = normalize(text)
	if len([]rune(text)) < minPDFText {
		return PlaceholderNoText
	}
	return text
}

func pdfText(data []byte) (text string, err error) {
	// The reader panics on some malformed cross-reference tables.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("malformed PDF: %v", r)
		}
	}()

	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("pdf reader: %w", err)
	}
	plain, err := r.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("pdf plaintext: %w", err)
	}
	b, err := io.ReadAll(plain)
	if err != nil {
		return "", fmt.Errorf("pdf read: %w", err)
	}
	return string(b), nil
}

func pdfPlaceholder(err error) string {
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "encrypt") || strings.Contains(msg, "password"):
		return PlaceholderEncrypted
	case strings.Contains(msg, "not a pdf") || strings.Contains(msg, "malformed") || strings.Contains(msg, "invalid pdf"):
		return PlaceholderInvalidPDF
	default:
		return PlaceholderUnreadable
	}
}
