package players

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/mcdev12/draftroom/internal/admin"
	"github.com/mcdev12/draftroom/internal/httpjson"
	"github.com/mcdev12/draftroom/internal/models"
)

// Service exposes the player pool operations over JSON HTTP.
type Service struct {
	app   *App
	guard *admin.Guard
}

func NewService(app *App, guard *admin.Guard) *Service {
	return &Service{app: app, guard: guard}
}

// RegisterRoutes attaches the player endpoints to mux.
func (s *Service) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/players", s.handleListPlayers)
	mux.HandleFunc("POST /api/import-players", s.handleImportPlayers)
	mux.HandleFunc("POST /api/replace-undrafted-players", s.handleReplaceUndrafted)
}

func (s *Service) handleListPlayers(w http.ResponseWriter, r *http.Request) {
	draftID, err := uuid.Parse(r.URL.Query().Get("draft_id"))
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, "draft_id is required")
		return
	}
	list, err := s.app.ListPlayers(r.Context(), draftID)
	if err != nil {
		writePlayerError(w, err)
		return
	}
	httpjson.Write(w, http.StatusOK, map[string][]models.Player{"players": list})
}

type importRequest struct {
	DraftID uuid.UUID `json:"draft_id"`
	CSV     string    `json:"csv"`
}

type importResponse struct {
	Imported int `json:"imported"`
}

func (s *Service) handleImportPlayers(w http.ResponseWriter, r *http.Request) {
	if !s.guard.Authorized(r) {
		httpjson.Error(w, http.StatusUnauthorized, "admin code required")
		return
	}
	var req importRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.DraftID == uuid.Nil || req.CSV == "" {
		httpjson.Error(w, http.StatusBadRequest, "draft_id and csv are required")
		return
	}

	count, err := s.app.ImportPlayers(r.Context(), req.DraftID, req.CSV)
	if err != nil {
		writePlayerError(w, err)
		return
	}
	httpjson.Write(w, http.StatusOK, importResponse{Imported: count})
}

type replaceUndraftedRequest struct {
	DraftID uuid.UUID `json:"draft_id"`
}

type replaceUndraftedResponse struct {
	Removed int `json:"removed"`
}

func (s *Service) handleReplaceUndrafted(w http.ResponseWriter, r *http.Request) {
	if !s.guard.Authorized(r) {
		httpjson.Error(w, http.StatusUnauthorized, "admin code required")
		return
	}
	var req replaceUndraftedRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.DraftID == uuid.Nil {
		httpjson.Error(w, http.StatusBadRequest, "draft_id is required")
		return
	}

	removed, err := s.app.ReplaceUndrafted(r.Context(), req.DraftID)
	if err != nil {
		writePlayerError(w, err)
		return
	}
	httpjson.Write(w, http.StatusOK, replaceUndraftedResponse{Removed: removed})
}

func writePlayerError(w http.ResponseWriter, err error) {
	switch {
	case IsCSVError(err):
		httpjson.Error(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, ErrPlayerNotFound):
		httpjson.Error(w, http.StatusNotFound, err.Error())
	default:
		log.Error().Err(err).Msg("player request failed")
		httpjson.Error(w, http.StatusInternalServerError, "internal error")
	}
}
