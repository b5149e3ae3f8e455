package handler

import "net/http"

// Health handles GET /.
// Plaintext on purpose: the frontend and deploy probes only check for a 200.
func (s *Server) Health(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte("Hello, World!"))
}
