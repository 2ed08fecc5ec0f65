package main

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"i4.energy/across/smscmd/cmdparse"
	"i4.energy/across/smscmd/dispatch"
	"i4.energy/across/smscmd/settings"
)

// SMSSender sends text messages. *modem.Modem implements it.
type SMSSender interface {
	SendSMS(ctx context.Context, recipient, message string) error
}

// Server handles incoming HTTP requests for sending SMS and running
// device commands
type Server struct {
	Logger     *slog.Logger
	Modem      SMSSender
	Dispatcher *dispatch.Dispatcher
	Settings   *settings.Store
}

// ServeHTTP implements the http.Handler interface for the Server struct
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /sms", s.handleSMS)
	mux.HandleFunc("POST /command", s.handleCommand)
	mux.HandleFunc("GET /settings", s.handleSettings)
	mux.ServeHTTP(w, r)
}

func (s *Server) sendError(w http.ResponseWriter, message string, statusCode int) {
	if message == "" {
		w.WriteHeader(statusCode)
		return
	}

	type ErrorResponse struct {
		Message string `json:"message"`
	}
	s.sendJSON(w, ErrorResponse{Message: message}, statusCode)
}

func (s *Server) sendJSON(w http.ResponseWriter, v any, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.Logger.Error("Failed to write response", "error", err)
	}
}

// handleSMS processes incoming HTTP POST requests to send SMS messages
func (s *Server) handleSMS(w http.ResponseWriter, r *http.Request) {
	type SMSRequest struct {
		To      string `json:"to"`
		Message string `json:"message"`
	}

	var req SMSRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.sendError(w, err.Error(), http.StatusBadRequest)
		return
	}

	if req.To == "" || req.Message == "" {
		s.sendError(w, "both 'to' and 'message' fields are required", http.StatusBadRequest)
		return
	}

	if err := s.Modem.SendSMS(r.Context(), req.To, req.Message); err != nil {
		s.Logger.Error("Failed to send SMS", "error", err, "to", req.To)
		s.sendError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	s.Logger.Info("SMS sent successfully", "to", req.To, "message_length", len(req.Message))
	w.WriteHeader(http.StatusOK)
}

// handleCommand runs one command line through the dispatcher, the same
// way a line received by SMS is handled
func (s *Server) handleCommand(w http.ResponseWriter, r *http.Request) {
	type CommandRequest struct {
		Line string `json:"line"`
	}
	type CommandResponse struct {
		Command string   `json:"command,omitempty"`
		Outcome string   `json:"outcome"`
		Detail  string   `json:"detail,omitempty"`
		Tokens  []string `json:"tokens,omitempty"`
		Reply   string   `json:"reply"`
	}

	var req CommandRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.sendError(w, err.Error(), http.StatusBadRequest)
		return
	}

	res := s.Dispatcher.Handle(req.Line)

	status := http.StatusOK
	switch res.Outcome {
	case cmdparse.CommandNotFound:
		status = http.StatusNotFound
	case cmdparse.NotEnoughData, cmdparse.InvalidData:
		status = http.StatusUnprocessableEntity
	}

	s.sendJSON(w, CommandResponse{
		Command: res.Command,
		Outcome: res.Outcome.String(),
		Detail:  res.Detail,
		Tokens:  res.Tokens,
		Reply:   res.String(),
	}, status)
}

// handleSettings returns every device parameter
func (s *Server) handleSettings(w http.ResponseWriter, r *http.Request) {
	s.sendJSON(w, s.Settings.Snapshot(), http.StatusOK)
}
