package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
)

// chatRequest is the body of POST /chat.
type chatRequest struct {
	Message string `json:"message"`
}

// chatResponse is the success body of POST /chat.
type chatResponse struct {
	Response string `json:"response"`
}

// chatError is the failure body of POST /chat. The flat {"error": string}
// shape is a contract with the frontend — do not change it to the trip
// endpoints' envelope.
type chatError struct {
	Error string `json:"error"`
}

// Chat handles POST /chat: one prompt in, one assistant reply out.
// Provider failures surface as 502 — the request died upstream of us.
func (s *Server) Chat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, chatError{Error: "invalid request body"})
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		writeJSON(w, http.StatusBadRequest, chatError{Error: "message is required"})
		return
	}

	reply, err := s.chat.Respond(r.Context(), req.Message)
	if err != nil {
		slog.Error("chat completion failed", "error", err)
		writeJSON(w, http.StatusBadGateway, chatError{Error: err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, chatResponse{Response: reply})
}
