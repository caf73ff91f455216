package api

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"go.uber.org/zap"

	"github.com/abhisek/leerkit/internal/extract"
	"github.com/abhisek/leerkit/internal/wizard"
)

// multipartOverhead is allowed on top of the file itself.
const multipartOverhead = 1 << 20

// readUpload reads and extracts the "file" form field.
func (h *Handler) readUpload(w http.ResponseWriter, r *http.Request) (*extract.Result, []byte, error) {
	r.Body = http.MaxBytesReader(w, r.Body, h.opts.MaxUploadBytes+multipartOverhead)
	if err := r.ParseMultipartForm(h.opts.MaxUploadBytes + multipartOverhead); err != nil {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			return nil, nil, extract.ErrTooLarge
		}
		return nil, nil, extract.ErrEmptyFile
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		return nil, nil, extract.ErrEmptyFile
	}
	defer file.Close()

	if _, err := extract.Check(header.Filename, header.Size); err != nil {
		return nil, nil, err
	}

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", extract.ErrUnreadable, err)
	}

	res, err := extract.Extract(header.Filename, data)
	if err != nil {
		return nil, nil, err
	}
	h.logger.Info("document extracted",
		zap.String("file", res.Filename),
		zap.String("type", res.FileType),
		zap.Int("words", res.WordCount))
	return res, data, nil
}

// Upload extracts a document without touching the session.
func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) {
	res, _, err := h.readUpload(w, r)
	if err != nil {
		h.writeError(w, err)
		return
	}
	jsonResponse(w, map[string]any{"success": true, "result": res}, http.StatusOK)
}

// UploadToState extracts a document and appends it to the session content.
func (h *Handler) UploadToState(w http.ResponseWriter, r *http.Request) {
	res, data, err := h.readUpload(w, r)
	if err != nil {
		h.writeError(w, err)
		return
	}
	file := wizard.UploadedFile{Name: res.Filename, Size: res.Size, Data: data}
	st := h.machine.AddUpload(r.Context(), file, res.Content)
	jsonResponse(w, map[string]any{"success": true, "result": res, "state": st}, http.StatusOK)
}
