package api

import (
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/abhisek/leerkit/internal/generate"
	"github.com/abhisek/leerkit/internal/llm"
	"github.com/abhisek/leerkit/internal/practice"
	"github.com/abhisek/leerkit/internal/wizard"
)

type generateRequest struct {
	Content string `json:"content"`
	Level   string `json:"niveau"`
}

// Generate runs a stateless generation for the posted content and level.
func (h *Handler) Generate(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if err := decodeJSON(r, &req); err != nil {
		errorResponse(w, "Ongeldige JSON", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.Content) == "" || strings.TrimSpace(req.Level) == "" {
		errorResponse(w, generate.MissingInputMessage, http.StatusBadRequest)
		return
	}
	level, err := wizard.ParseLevel(req.Level)
	if err != nil {
		errorResponse(w, generate.MissingInputMessage, http.StatusBadRequest)
		return
	}

	ctx := r.Context()
	switch kind := mux.Vars(r)["kind"]; kind {
	case "flashcards":
		cards, err := h.gen.Flashcards(ctx, req.Content, level)
		if err != nil {
			h.writeError(w, err)
			return
		}
		jsonResponse(w, map[string]any{"success": true, "flashcards": cards}, http.StatusOK)
	case "quiz":
		questions, err := h.gen.Quiz(ctx, req.Content, level)
		if err != nil {
			h.writeError(w, err)
			return
		}
		jsonResponse(w, map[string]any{"success": true, "quiz": questions}, http.StatusOK)
	case "theory":
		sections, err := h.gen.Theory(ctx, req.Content, level)
		if err != nil {
			h.writeError(w, err)
			return
		}
		jsonResponse(w, map[string]any{"success": true, "theory": sections}, http.StatusOK)
	default:
		errorResponse(w, "Onbekend type: "+kind, http.StatusNotFound)
	}
}

// GenerateForState generates from the session content and stores the result.
func (h *Handler) GenerateForState(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var (
		result any
		err    error
	)
	switch kind := mux.Vars(r)["kind"]; kind {
	case "flashcards":
		result, err = h.gen.GenerateFlashcards(ctx, h.machine)
	case "quiz":
		result, err = h.gen.GenerateQuiz(ctx, h.machine)
	case "theory":
		result, err = h.gen.GenerateTheory(ctx, h.machine)
	case "tutor", "chatbot":
		result, err = h.gen.StartTutorSession(ctx, h.machine)
	default:
		errorResponse(w, "Onbekend type: "+kind, http.StatusNotFound)
		return
	}
	if err != nil {
		h.writeError(w, err)
		return
	}
	jsonResponse(w, map[string]any{"success": true, "result": result, "state": h.machine.State()}, http.StatusOK)
}

type chatRequest struct {
	Message string `json:"message"`
	AIModel string `json:"aiModel"`
}

// Chat forwards one assembled prompt with a quality hint.
func (h *Handler) Chat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := decodeJSON(r, &req); err != nil {
		errorResponse(w, "Ongeldige JSON", http.StatusBadRequest)
		return
	}
	reply, err := h.gen.Chat(r.Context(), req.Message, llm.ParseQuality(req.AIModel))
	if err != nil {
		h.writeError(w, err)
		return
	}
	jsonResponse(w, map[string]string{"response": reply}, http.StatusOK)
}

// StartTutor creates the session's tutor and returns its welcome message.
func (h *Handler) StartTutor(w http.ResponseWriter, r *http.Request) {
	cb, err := h.gen.StartTutorSession(r.Context(), h.machine)
	if err != nil {
		h.writeError(w, err)
		return
	}
	jsonResponse(w, cb, http.StatusOK)
}

type replyRequest struct {
	History []generate.Turn `json:"history"`
	Message string          `json:"message"`
}

// TutorReply answers a student message in the context of history.
func (h *Handler) TutorReply(w http.ResponseWriter, r *http.Request) {
	var req replyRequest
	if err := decodeJSON(r, &req); err != nil {
		errorResponse(w, "Ongeldige JSON", http.StatusBadRequest)
		return
	}
	reply, err := h.gen.ReplyInSession(r.Context(), h.machine, req.History, req.Message)
	if err != nil {
		h.writeError(w, err)
		return
	}
	jsonResponse(w, map[string]string{"response": reply}, http.StatusOK)
}

type scoreRequest struct {
	Answers map[string]int `json:"answers"`
}

// ScoreQuiz scores answers against the session quiz.
func (h *Handler) ScoreQuiz(w http.ResponseWriter, r *http.Request) {
	var req scoreRequest
	if err := decodeJSON(r, &req); err != nil {
		errorResponse(w, "Ongeldige JSON", http.StatusBadRequest)
		return
	}
	jsonResponse(w, practice.ScoreQuiz(h.machine.State().Generated.Quiz, req.Answers), http.StatusOK)
}
