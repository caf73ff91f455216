// Package extract pulls plain text out of uploaded Word and PDF documents.
package extract

import (
	"errors"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/gabriel-vasile/mimetype"
)

// MaxSize is the largest accepted upload.
const MaxSize = 10 * 1024 * 1024

var (
	ErrUnsupportedType = errors.New("Alleen .pdf en .docx bestanden zijn ondersteund")
	ErrTooLarge        = errors.New("Bestand is te groot (max 10MB)")
	ErrEmptyFile       = errors.New("Geen bestand gevonden")
	ErrUnreadable      = errors.New("Het bestand kon niet worden gelezen")
)

// Kind is a supported document format.
type Kind string

const (
	KindDOCX Kind = "docx"
	KindPDF  Kind = "pdf"
)

// Label returns the human-readable file type.
func (k Kind) Label() string {
	switch k {
	case KindDOCX:
		return "Word Document (.docx)"
	case KindPDF:
		return "PDF Document (.pdf)"
	}
	return string(k)
}

// Result is the text extracted from one document.
type Result struct {
	Filename       string `json:"filename"`
	Size           int64  `json:"size"`
	FileType       string `json:"fileType"`
	Content        string `json:"content"`
	WordCount      int    `json:"wordCount"`
	CharacterCount int    `json:"characterCount"`
}

// KindOf classifies name by extension, case-insensitively.
func KindOf(name string) (Kind, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".docx":
		return KindDOCX, nil
	case ".pdf":
		return KindPDF, nil
	}
	return "", ErrUnsupportedType
}

// Check rejects a file before any bytes are parsed: unknown extension,
// empty content or more than MaxSize bytes.
func Check(name string, size int64) (Kind, error) {
	kind, err := KindOf(name)
	if err != nil {
		return "", err
	}
	if size <= 0 {
		return "", ErrEmptyFile
	}
	if size > MaxSize {
		return "", ErrTooLarge
	}
	return kind, nil
}

// Extract returns the text of a .docx or .pdf document. PDFs that yield
// little or no text produce a placeholder explaining why, not an error.
func Extract(name string, data []byte) (*Result, error) {
	kind, err := Check(name, int64(len(data)))
	if err != nil {
		return nil, err
	}

	var text string
	switch kind {
	case KindDOCX:
		if !sniffed(data, "application/vnd.openxmlformats-officedocument.wordprocessingml.document", "application/zip") {
			return nil, fmt.Errorf("%w: %s is geen geldig Word-document", ErrUnreadable, name)
		}
		text, err = docxText(data)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrUnreadable, err)
		}
	case KindPDF:
		if !sniffed(data, "application/pdf") {
			text = PlaceholderInvalidPDF
		} else {
			text = pdfContent(data)
		}
	}

	return &Result{
		Filename:       name,
		Size:           int64(len(data)),
		FileType:       kind.Label(),
		Content:        text,
		WordCount:      len(strings.Fields(text)),
		CharacterCount: utf8.RuneCountInString(text),
	}, nil
}

// sniffed reports whether the detected type of data, or one of its
// parents, is any of mimes.
func sniffed(data []byte, mimes ...string) bool {
	for mt := mimetype.Detect(data); mt != nil; mt = mt.Parent() {
		for _, m := range mimes {
			if mt.Is(m) {
				return true
			}
		}
	}
	return false
}

var (
	manyNewlines = regexp.MustCompile(`\n{3,}`)
	spaceRuns    = regexp.MustCompile(`[ \t]+`)
)

// normalize unifies line endings, caps blank lines at one and collapses
// runs of spaces and tabs.
func normalize(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = manyNewlines.ReplaceAllString(s, "\n\n")
	s = spaceRuns.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}
