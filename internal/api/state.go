package api

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/abhisek/leerkit/internal/wizard"
)

// stateResponse is the state plus the derived navigation flags.
type stateResponse struct {
	wizard.State
	CanProceed bool   `json:"canProceed"`
	StepTitle  string `json:"stepTitle"`
}

func (h *Handler) respondState(w http.ResponseWriter, st wizard.State) {
	jsonResponse(w, stateResponse{State: st, CanProceed: wizard.CanProceed(st), StepTitle: st.CurrentStep.Title()}, http.StatusOK)
}

func (h *Handler) GetState(w http.ResponseWriter, _ *http.Request) {
	h.respondState(w, h.machine.State())
}

func (h *Handler) ResetState(w http.ResponseWriter, r *http.Request) {
	h.respondState(w, h.machine.Reset(r.Context()))
}

func (h *Handler) UpdateContent(w http.ResponseWriter, r *http.Request) {
	var patch wizard.ContentPatch
	if err := decodeJSON(r, &patch); err != nil {
		errorResponse(w, "Ongeldige JSON", http.StatusBadRequest)
		return
	}
	if patch.Level != nil && !patch.Level.Valid() {
		errorResponse(w, "Onbekend onderwijsniveau: "+string(*patch.Level), http.StatusBadRequest)
		return
	}
	h.respondState(w, h.machine.UpdateContent(r.Context(), patch))
}

func (h *Handler) UpdateGenerated(w http.ResponseWriter, r *http.Request) {
	var patch wizard.GeneratedPatch
	if err := decodeJSON(r, &patch); err != nil {
		errorResponse(w, "Ongeldige JSON", http.StatusBadRequest)
		return
	}
	h.respondState(w, h.machine.UpdateGenerated(r.Context(), patch))
}

// AcceptModule accepts the named module and moves to the next step.
func (h *Handler) AcceptModule(w http.ResponseWriter, r *http.Request) {
	mod, err := wizard.ParseModule(mux.Vars(r)["module"])
	if err != nil {
		errorResponse(w, err.Error(), http.StatusBadRequest)
		return
	}
	h.machine.AcceptModule(r.Context(), mod)
	if r.URL.Query().Get("advance") == "false" {
		h.respondState(w, h.machine.State())
		return
	}
	h.respondState(w, h.machine.Advance(r.Context()))
}

func (h *Handler) Next(w http.ResponseWriter, r *http.Request) {
	h.respondState(w, h.machine.Advance(r.Context()))
}

func (h *Handler) Back(w http.ResponseWriter, r *http.Request) {
	h.respondState(w, h.machine.Retreat(r.Context()))
}

func (h *Handler) JumpTo(w http.ResponseWriter, r *http.Request) {
	n, err := strconv.Atoi(mux.Vars(r)["step"])
	if err != nil {
		errorResponse(w, "Ongeldige stap", http.StatusBadRequest)
		return
	}
	h.respondState(w, h.machine.JumpTo(r.Context(), wizard.Step(n)))
}

func (h *Handler) Complete(w http.ResponseWriter, r *http.Request) {
	h.respondState(w, h.machine.MarkComplete(r.Context()))
}

func (h *Handler) CanProceed(w http.ResponseWriter, _ *http.Request) {
	st := h.machine.State()
	jsonResponse(w, map[string]any{
		"step":       st.CurrentStep,
		"canProceed": wizard.CanProceed(st),
	}, http.StatusOK)
}
