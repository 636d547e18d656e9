package session

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"gamey/internal/domain/session"
	"gamey/internal/httpresponse"
	sessionuc "gamey/internal/usecase/session"
	"gamey/internal/utils"
)

const (
	pingInterval = 30 * time.Second
	writeWait    = 10 * time.Second
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

type SessionHandler struct {
	log       *zap.SugaredLogger
	sessionUC *sessionuc.SessionUseCase
	hub       *Hub
}

func NewSessionHandler(log *zap.SugaredLogger, sessionUC *sessionuc.SessionUseCase, hub *Hub) *SessionHandler {
	return &SessionHandler{log: log, sessionUC: sessionUC, hub: hub}
}

func (h *SessionHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	version, ok := h.checkVersion(w, r)
	if !ok {
		return
	}

	var req session.CreateSessionRequest
	if err := utils.DecodeOptionalJSONRequest(w, r, &req); err != nil {
		httpresponse.WriteDecodeError(w, err, httpresponse.ErrorResponse{ApiVersion: version})
		return
	}

	s, err := h.sessionUC.Create(r.Context(), req)
	if err != nil {
		httpresponse.WriteDomainError(w, h.log, err, httpresponse.ErrorResponse{ApiVersion: version, BotID: req.BotID})
		return
	}
	httpresponse.WriteResponseWithStatus(w, http.StatusCreated, s)
}

func (h *SessionHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	version, ok := h.checkVersion(w, r)
	if !ok {
		return
	}

	s, err := h.sessionUC.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httpresponse.WriteDomainError(w, h.log, err, httpresponse.ErrorResponse{ApiVersion: version})
		return
	}
	httpresponse.WriteResponseWithStatus(w, http.StatusOK, s)
}

func (h *SessionHandler) HandleMove(w http.ResponseWriter, r *http.Request) {
	version, ok := h.checkVersion(w, r)
	if !ok {
		return
	}

	var req session.SessionMoveRequest
	if err := utils.DecodeJSONRequest(w, r, &req); err != nil {
		httpresponse.WriteDecodeError(w, err, httpresponse.ErrorResponse{ApiVersion: version})
		return
	}

	id := chi.URLParam(r, "id")
	s, err := h.sessionUC.Move(r.Context(), id, req.Coordinates())
	if err != nil {
		httpresponse.WriteDomainError(w, h.log, err, httpresponse.ErrorResponse{ApiVersion: version})
		return
	}

	if payload, err := json.Marshal(s); err == nil {
		h.hub.Publish(id, payload)
	} else {
		h.log.Errorw("failed to encode session update", "id", id, "error", err)
	}
	httpresponse.WriteResponseWithStatus(w, http.StatusOK, s)
}

// HandleSubscribe upgrades to a websocket that first receives the current
// session and then every accepted move.
func (h *SessionHandler) HandleSubscribe(w http.ResponseWriter, r *http.Request) {
	version, ok := h.checkVersion(w, r)
	if !ok {
		return
	}

	id := chi.URLParam(r, "id")
	current, err := h.sessionUC.Get(r.Context(), id)
	if err != nil {
		httpresponse.WriteDomainError(w, h.log, err, httpresponse.ErrorResponse{ApiVersion: version})
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warnw("websocket upgrade failed", "id", id, "error", err)
		return
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()
	updates, unsubscribe := h.hub.Subscribe(ctx, id)
	defer unsubscribe()

	// the client only talks to close the socket
	go func() {
		defer cancel()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err := conn.WriteJSON(current); err != nil {
		return
	}

	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case payload, ok := <-updates:
			if !ok {
				return
			}
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				h.log.Debugw("websocket write failed", "id", id, "error", err)
				return
			}
		}
	}
}

func (h *SessionHandler) checkVersion(w http.ResponseWriter, r *http.Request) (string, bool) {
	version := chi.URLParam(r, "api_version")
	if err := utils.CheckApiVersion(version); err != nil {
		httpresponse.WriteDomainError(w, h.log, err, httpresponse.ErrorResponse{ApiVersion: version})
		return version, false
	}
	return version, true
}
