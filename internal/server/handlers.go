package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/santisabra00/finagent/internal/agent"
	"github.com/santisabra00/finagent/internal/common"
)

// --- System handlers ---

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet, http.MethodHead) {
		return
	}
	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "ok",
		"uptime":  time.Since(s.app.StartupTime).Round(time.Second).String(),
		"version": common.GetVersion(),
	})
}

func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet, http.MethodHead) {
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{
		"version": common.GetVersion(),
		"build":   common.GetBuild(),
		"commit":  common.GetGitCommit(),
	})
}

// --- Chat handlers ---

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	var req struct {
		Text string `json:"text"`
	}
	if !DecodeJSON(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		WriteError(w, http.StatusBadRequest, "Field 'text' is required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), s.app.Config.Agent.GetChatTimeout())
	defer cancel()

	reply, err := s.app.ChatService.Chat(ctx, req.Text)
	if err != nil {
		if errors.Is(err, agent.ErrMaxToolRounds) {
			WriteError(w, http.StatusBadGateway, "Model exceeded the tool round limit")
			return
		}
		WriteError(w, http.StatusBadGateway, fmt.Sprintf("Chat error: %v", err))
		return
	}

	WriteJSON(w, http.StatusOK, map[string]string{"reply": reply})
}

func (s *Server) handleChatReset(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}
	if err := s.app.ChatService.Reset(r.Context()); err != nil {
		WriteError(w, http.StatusInternalServerError, fmt.Sprintf("Reset error: %v", err))
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{"status": "reset"})
}

func (s *Server) handleChatHistory(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}
	turns, err := s.app.Storage.ConversationStore().History(r.Context())
	if err != nil {
		WriteError(w, http.StatusInternalServerError, fmt.Sprintf("History error: %v", err))
		return
	}
	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"turns": turns,
		"count": len(turns),
	})
}
