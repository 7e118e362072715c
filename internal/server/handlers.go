// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/shauraya-mohan/chatbot/internal/export"
	"github.com/shauraya-mohan/chatbot/internal/markup"
	"github.com/shauraya-mohan/chatbot/internal/model"
	"github.com/shauraya-mohan/chatbot/internal/router"
	"github.com/shauraya-mohan/chatbot/internal/session"
	"github.com/shauraya-mohan/chatbot/internal/telemetry"
)

// ============================================================================
// WIRE TYPES
// ============================================================================

// MessageRequest is the body of POST /api/messages.
type MessageRequest struct {
	Message string `json:"message"`
}

// ReplyResponse is one rendered message.
type ReplyResponse struct {
	ID               string            `json:"id"`
	Role             model.Role        `json:"role"`
	Mode             router.RenderMode `json:"mode"`
	HTML             string            `json:"html,omitempty"`
	Text             string            `json:"text,omitempty"`
	RevealIntervalMs int64             `json:"reveal_interval_ms,omitempty"`
	Table            *markup.Table     `json:"table,omitempty"`
	Time             string            `json:"time"`
	Fallback         bool              `json:"fallback,omitempty"`
}

// MessageResponse is returned by the submission endpoints.
type MessageResponse struct {
	Reply ReplyResponse `json:"reply"`
}

// HistoryMessage is one entry of GET /api/history.
type HistoryMessage struct {
	ID      string     `json:"id"`
	Role    model.Role `json:"role"`
	Content string     `json:"content"`
	HTML    string     `json:"html"`
	Time    string     `json:"time"`
}

// HistoryResponse is the body of GET /api/history.
type HistoryResponse struct {
	ConversationID  string                  `json:"conversation_id"`
	Messages        []HistoryMessage        `json:"messages"`
	EstimatedTokens int                     `json:"estimated_tokens"`
	Usage           *telemetry.UsageSummary `json:"usage,omitempty"`
}

// QuickActionResponse is one entry of GET /api/quick-actions.
type QuickActionResponse struct {
	Index   int    `json:"index"`
	Label   string `json:"label"`
	Message string `json:"message"`
}

// HealthResponse is the body of GET /healthz.
type HealthResponse struct {
	Status          string `json:"status"`
	ReferenceLoaded bool   `json:"reference_loaded"`
	Busy            bool   `json:"busy"`
}

type errorBody struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// ============================================================================
// HANDLERS
// ============================================================================

func (s *Server) handleMessage(w http.ResponseWriter, r *http.Request) {
	var req MessageRequest
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "too_large", "Message is too long.")
			return
		}
		writeError(w, http.StatusBadRequest, "invalid_body", "Request body must be {\"message\": \"...\"}.")
		return
	}

	reply, err := s.sess.Submit(r.Context(), req.Message)
	s.writeReply(w, r, reply, err)
}

func (s *Server) handleQuickAction(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_index", "Quick action index must be a number.")
		return
	}

	reply, err := s.sess.SubmitQuickAction(r.Context(), index)
	s.writeReply(w, r, reply, err)
}

func (s *Server) writeReply(w http.ResponseWriter, r *http.Request, reply session.Reply, err error) {
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, MessageResponse{Reply: s.replyResponse(reply)})
	case errors.Is(err, session.ErrEmptyMessage):
		writeError(w, http.StatusBadRequest, "empty_message", "Message must not be empty.")
	case errors.Is(err, session.ErrBusy):
		writeError(w, http.StatusConflict, "busy", "Still answering the previous message.")
	case errors.Is(err, session.ErrUnknownQuickAction):
		writeError(w, http.StatusNotFound, "unknown_quick_action", "No such quick action.")
	default:
		s.logger.Error("submission failed",
			zap.String("request_id", middleware.GetReqID(r.Context())),
			zap.Error(err),
		)
		writeError(w, http.StatusInternalServerError, "internal_error", "Internal Server Error")
	}
}

func (s *Server) replyResponse(reply session.Reply) ReplyResponse {
	resp := ReplyResponse{
		ID:       reply.Message.ID,
		Role:     reply.Message.Role,
		Mode:     reply.Mode,
		Table:    reply.Doc.Table,
		Time:     reply.Message.FormattedTime(),
		Fallback: reply.Fallback,
	}
	if reply.Mode.IsImmediate() {
		resp.HTML = markup.RenderHTML(reply.Doc)
	} else {
		resp.Text = reply.Message.Content
		resp.RevealIntervalMs = s.opts.RevealInterval.Milliseconds()
	}
	return resp
}

func (s *Server) handleGreeting(w http.ResponseWriter, r *http.Request) {
	greeting, ok := s.sess.Greeting()
	if !ok {
		writeError(w, http.StatusNotFound, "no_greeting", "No greeting configured.")
		return
	}
	doc := markup.ExtractTable(greeting.Content)
	writeJSON(w, http.StatusOK, ReplyResponse{
		ID:    greeting.ID,
		Role:  greeting.Role,
		Mode:  router.Immediate,
		HTML:  markup.RenderHTML(doc),
		Table: doc.Table,
		Time:  greeting.FormattedTime(),
	})
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	conv := s.sess.Conversation()
	history := conv.Sequence()

	resp := HistoryResponse{
		ConversationID:  conv.ID,
		Messages:        make([]HistoryMessage, len(history)),
		EstimatedTokens: conv.EstimateTokens(),
	}
	for i, msg := range history {
		resp.Messages[i] = HistoryMessage{
			ID:      msg.ID,
			Role:    msg.Role,
			Content: msg.Content,
			HTML:    markup.ToHTML(msg.Content),
			Time:    msg.FormattedTime(),
		}
	}
	if s.usage != nil {
		summary := s.usage.Summary()
		resp.Usage = &summary
	}
	writeJSON(w, http.StatusOK, resp)
}

// handleTranscript returns the conversation as a downloadable file. The
// format query parameter picks markdown (default), html or json.
func (s *Server) handleTranscript(w http.ResponseWriter, r *http.Request) {
	format := r.URL.Query().Get("format")
	if format == "" {
		format = "markdown"
	}
	exp, err := export.ForFormat(format, export.DefaultOptions())
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_format", err.Error())
		return
	}

	t := export.Transcript{Messages: s.sess.History()}
	if s.usage != nil {
		t.Tokens = s.usage.Summary().Tokens.Total()
	}
	body, err := exp.Export(t)
	if err != nil {
		s.logger.Error("transcript export failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "export_failed", "could not export the conversation")
		return
	}

	w.Header().Set("Content-Type", exp.MimeType())
	w.Header().Set("Content-Disposition", `attachment; filename="transcript`+exp.FileExtension()+`"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}

func (s *Server) handleQuickActions(w http.ResponseWriter, r *http.Request) {
	actions := s.sess.QuickActions()
	resp := make([]QuickActionResponse, len(actions))
	for i, qa := range actions {
		resp[i] = QuickActionResponse{Index: i, Label: qa.Label, Message: qa.Message}
	}
	writeJSON(w, http.StatusOK, map[string]any{"quick_actions": resp})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	resp := HealthResponse{
		Status:          "ok",
		ReferenceLoaded: s.sess.Ready(),
		Busy:            s.sess.Busy(),
	}
	status := http.StatusOK
	if !resp.ReferenceLoaded {
		resp.Status = "loading"
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, status, resp)
}

// ============================================================================
// HELPERS
// ============================================================================

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	var body errorBody
	body.Error.Code = code
	body.Error.Message = message
	writeJSON(w, status, body)
}
