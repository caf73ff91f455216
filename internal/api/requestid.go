package api

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/abhisek/leerkit/internal/llm"
)

const requestIDHeader = "X-Request-ID"

// requestID echoes the caller's X-Request-ID, or assigns one, and carries
// it into the context so LLM log lines can be matched to the request.
func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(requestIDHeader)
		if id == "" || len(id) > 128 {
			id = uuid.NewString()
		}
		w.Header().Set(requestIDHeader, id)
		next.ServeHTTP(w, r.WithContext(llm.WithRequestID(r.Context(), id)))
	})
}
