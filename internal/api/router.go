package api

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
)

// NewRouter builds the HTTP router with every endpoint.
func NewRouter(h *Handler) http.Handler {
	r := mux.NewRouter()
	r.Use(requestID)
	if h.opts.Metrics != nil {
		r.Use(h.opts.Metrics.Middleware)
		r.Handle("/metrics", h.opts.Metrics.Handler()).Methods("GET")
	}

	api := r.PathPrefix("/api/v1").Subrouter()

	api.HandleFunc("/health", h.Health).Methods("GET")

	// Wizard state
	api.HandleFunc("/state", h.GetState).Methods("GET")
	api.HandleFunc("/state", h.ResetState).Methods("DELETE")
	api.HandleFunc("/state/reset", h.ResetState).Methods("POST")
	api.HandleFunc("/state/content", h.UpdateContent).Methods("PATCH")
	api.HandleFunc("/state/generated", h.UpdateGenerated).Methods("PATCH")
	api.HandleFunc("/state/accept/{module}", h.AcceptModule).Methods("POST")
	api.HandleFunc("/state/next", h.Next).Methods("POST")
	api.HandleFunc("/state/back", h.Back).Methods("POST")
	api.HandleFunc("/state/step/{step:[0-9]+}", h.JumpTo).Methods("POST")
	api.HandleFunc("/state/complete", h.Complete).Methods("POST")
	api.HandleFunc("/state/can-proceed", h.CanProceed).Methods("GET")
	api.HandleFunc("/state/upload", h.UploadToState).Methods("POST")
	api.HandleFunc("/quiz/score", h.ScoreQuiz).Methods("POST")

	// Documents
	api.HandleFunc("/upload", h.Upload).Methods("POST")

	// Everything that calls the LLM is rate limited.
	llmRoutes := api.NewRoute().Subrouter()
	if h.opts.RateLimit > 0 && h.opts.RateWindow > 0 {
		llmRoutes.Use(newRateLimiter(h.opts.RateLimit, h.opts.RateWindow).Middleware)
	}
	llmRoutes.HandleFunc("/generate/{kind}", h.Generate).Methods("POST")
	llmRoutes.HandleFunc("/state/generate/{kind}", h.GenerateForState).Methods("POST")
	llmRoutes.HandleFunc("/chat", h.Chat).Methods("POST")
	llmRoutes.HandleFunc("/tutor/start", h.StartTutor).Methods("POST")
	llmRoutes.HandleFunc("/tutor/reply", h.TutorReply).Methods("POST")
	llmRoutes.HandleFunc("/ws/tutor", h.TutorSocket).Methods("GET")

	c := cors.New(cors.Options{
		AllowedOrigins: h.opts.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", "Authorization", requestIDHeader},
		ExposedHeaders: []string{requestIDHeader},
	})

	return c.Handler(r)
}
