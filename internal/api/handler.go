// Package api serves the wizard over a JSON HTTP API.
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"slices"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/abhisek/leerkit/internal/extract"
	"github.com/abhisek/leerkit/internal/generate"
	"github.com/abhisek/leerkit/internal/metrics"
	"github.com/abhisek/leerkit/internal/wizard"
)

// Options configures the handler and router.
type Options struct {
	AllowedOrigins []string

	// RateLimit generation calls per client per RateWindow. Zero disables.
	RateLimit  int
	RateWindow time.Duration

	MaxUploadBytes int64

	// Metrics, when set, instruments every route and serves /metrics.
	Metrics *metrics.Metrics
}

// Handler holds the single wizard session served by this process.
type Handler struct {
	machine  *wizard.Machine
	gen      *generate.Service
	logger   *zap.Logger
	opts     Options
	upgrader websocket.Upgrader
}

// NewHandler creates the API handler.
func NewHandler(machine *wizard.Machine, gen *generate.Service, logger *zap.Logger, opts Options) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.MaxUploadBytes <= 0 {
		opts.MaxUploadBytes = extract.MaxSize
	}
	h := &Handler{machine: machine, gen: gen, logger: logger, opts: opts}
	h.upgrader = websocket.Upgrader{CheckOrigin: h.originAllowed}
	return h
}

func (h *Handler) originAllowed(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	return slices.Contains(h.opts.AllowedOrigins, "*") || slices.Contains(h.opts.AllowedOrigins, origin)
}

// errorBody is the JSON shape of every failure.
type errorBody struct {
	Error       string   `json:"error"`
	Kind        string   `json:"kind,omitempty"`
	Suggestions []string `json:"suggestions,omitempty"`
	Attempts    int      `json:"attempts,omitempty"`
}

func jsonResponse(w http.ResponseWriter, data any, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func errorResponse(w http.ResponseWriter, message string, status int) {
	jsonResponse(w, errorBody{Error: message}, status)
}

// writeError maps a service error to a status and JSON body.
func (h *Handler) writeError(w http.ResponseWriter, err error) {
	var gerr *generate.Error
	if errors.As(err, &gerr) {
		jsonResponse(w, errorBody{
			Error:       gerr.Message,
			Kind:        string(gerr.Kind),
			Suggestions: gerr.Suggestions,
			Attempts:    gerr.Attempts,
		}, statusFor(gerr.Kind))
		return
	}

	switch {
	case errors.Is(err, extract.ErrUnsupportedType),
		errors.Is(err, extract.ErrTooLarge),
		errors.Is(err, extract.ErrEmptyFile):
		errorResponse(w, rootMessage(err), http.StatusBadRequest)
	case errors.Is(err, extract.ErrUnreadable):
		jsonResponse(w, errorBody{
			Error:       "Er is een fout opgetreden bij het verwerken van het bestand: " + err.Error(),
			Suggestions: []string{"Controleer of het bestand niet beschadigd is en probeer opnieuw."},
		}, http.StatusUnprocessableEntity)
	default:
		h.logger.Error("unhandled api error", zap.Error(err))
		errorResponse(w, "Er is een onverwachte fout opgetreden", http.StatusInternalServerError)
	}
}

func statusFor(k generate.Kind) int {
	switch k {
	case generate.KindValidation:
		return http.StatusBadRequest
	case generate.KindConfiguration:
		return http.StatusInternalServerError
	case generate.KindTransient:
		return http.StatusServiceUnavailable
	default:
		return http.StatusBadGateway
	}
}

// rootMessage returns the message of the innermost wrapped error.
func rootMessage(err error) string {
	for {
		next := errors.Unwrap(err)
		if next == nil {
			return err.Error()
		}
		err = next
	}
}

func decodeJSON(r *http.Request, v any) error {
	return json.NewDecoder(r.Body).Decode(v)
}

// Health reports liveness and the current wizard step.
func (h *Handler) Health(w http.ResponseWriter, _ *http.Request) {
	jsonResponse(w, map[string]any{
		"status":    "ok",
		"step":      h.machine.Step(),
		"timestamp": time.Now().UTC(),
	}, http.StatusOK)
}
