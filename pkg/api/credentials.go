package api

import (
	"net/http"
	"strconv"

	"github.com/cuemby/nebula/pkg/language"
)

// requireCredentials parses and validates the Nebula-Credentials
// header (§4.8). The header value is a single-line, double-quoted
// notarized document; the server validates it exactly like any other
// document — chain walk against the stored certificate its Certificate
// citation embeds — before letting the request reach a namespace
// handler.
func (s *Server) requireCredentials(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := r.Header.Get("Nebula-Credentials")
		if raw == "" {
			writeStatus(w, http.StatusBadRequest, "missing Nebula-Credentials header")
			return
		}

		unquoted, err := strconv.Unquote(raw)
		if err != nil {
			writeStatus(w, http.StatusBadRequest, "malformed Nebula-Credentials header")
			return
		}

		doc, err := language.ParseDocument([]byte(unquoted))
		if err != nil {
			writeStatus(w, http.StatusBadRequest, "malformed credential document")
			return
		}

		if err := s.engine.Validate(r.Context(), doc); err != nil {
			writeStatus(w, http.StatusBadRequest, "credential validation failed")
			return
		}

		next.ServeHTTP(w, r)
	})
}

func writeStatus(w http.ResponseWriter, status int, message string) {
	w.WriteHeader(status)
	_, _ = w.Write([]byte(message))
}
