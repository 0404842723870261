package gateway

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/mcdev12/draftroom/internal/httpjson"
)

// WebSocketHandler handles WebSocket upgrade requests for draft rooms.
type WebSocketHandler struct {
	connectionManager *ConnectionManager
}

// NewWebSocketHandler creates a new WebSocket handler.
func NewWebSocketHandler(cm *ConnectionManager) *WebSocketHandler {
	return &WebSocketHandler{connectionManager: cm}
}

// HandleDraftConnection upgrades a client into a draft room identified by the
// draft_id query parameter.
func (h *WebSocketHandler) HandleDraftConnection(w http.ResponseWriter, r *http.Request) {
	draftIDStr := r.URL.Query().Get("draft_id")
	if draftIDStr == "" {
		httpjson.Error(w, http.StatusBadRequest, "draft_id is required")
		return
	}

	draftID, err := uuid.Parse(draftIDStr)
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid draft_id")
		return
	}

	if err := h.connectionManager.Upgrade(w, r, draftID); err != nil {
		log.Error().
			Err(err).
			Str("draft_id", draftID.String()).
			Msg("failed to upgrade websocket connection")
		return
	}
}

// HandleConnectionStats reports active connection counts.
func (h *WebSocketHandler) HandleConnectionStats(w http.ResponseWriter, r *http.Request) {
	httpjson.Write(w, http.StatusOK, h.connectionManager.Stats())
}

// RegisterRoutes registers the WebSocket routes on the mux.
func (h *WebSocketHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /ws/draft", h.HandleDraftConnection)
	mux.HandleFunc("GET /ws/stats", h.HandleConnectionStats)
}
