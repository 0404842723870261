package teams

import (
	"context"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/mcdev12/draftroom/internal/admin"
	"github.com/mcdev12/draftroom/internal/httpjson"
	"github.com/mcdev12/draftroom/internal/models"
)

// Service exposes team membership and import operations over JSON HTTP.
type Service struct {
	app   *App
	guard *admin.Guard
}

func NewService(app *App, guard *admin.Guard) *Service {
	return &Service{app: app, guard: guard}
}

// RegisterRoutes attaches the team endpoints to mux.
func (s *Service) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/join-team", s.handleJoinTeam)
	mux.HandleFunc("GET /api/teams", s.handleListTeams)
	mux.HandleFunc("POST /api/import-teams", s.handleImportTeams)
	mux.HandleFunc("POST /api/replace-teams", s.handleReplaceTeams)
}

type joinTeamRequest struct {
	DraftID uuid.UUID `json:"draft_id"`
	Code    string    `json:"code"`
}

type joinTeamResponse struct {
	TeamID uuid.UUID `json:"team_id"`
	Name   string    `json:"name"`
}

func (s *Service) handleJoinTeam(w http.ResponseWriter, r *http.Request) {
	var req joinTeamRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.DraftID == uuid.Nil {
		httpjson.Error(w, http.StatusBadRequest, "draft_id is required")
		return
	}

	team, err := s.app.JoinTeam(r.Context(), req.DraftID, req.Code)
	if err != nil {
		writeTeamError(w, err)
		return
	}
	httpjson.Write(w, http.StatusOK, joinTeamResponse{TeamID: team.ID, Name: team.Name})
}

func (s *Service) handleListTeams(w http.ResponseWriter, r *http.Request) {
	draftID, err := uuid.Parse(r.URL.Query().Get("draft_id"))
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, "draft_id is required")
		return
	}
	list, err := s.app.ListTeams(r.Context(), draftID)
	if err != nil {
		writeTeamError(w, err)
		return
	}
	httpjson.Write(w, http.StatusOK, map[string][]models.Team{"teams": list})
}

type importRequest struct {
	DraftID uuid.UUID `json:"draft_id"`
	CSV     string    `json:"csv"`
}

type importResponse struct {
	Imported int `json:"imported"`
}

func (s *Service) handleImportTeams(w http.ResponseWriter, r *http.Request) {
	s.handleImport(w, r, s.app.ImportTeams)
}

func (s *Service) handleReplaceTeams(w http.ResponseWriter, r *http.Request) {
	s.handleImport(w, r, s.app.ReplaceTeams)
}

func (s *Service) handleImport(w http.ResponseWriter, r *http.Request,
	apply func(ctx context.Context, draftID uuid.UUID, csvText string) (int, error)) {
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

	count, err := apply(r.Context(), req.DraftID, req.CSV)
	if err != nil {
		writeTeamError(w, err)
		return
	}
	httpjson.Write(w, http.StatusOK, importResponse{Imported: count})
}

func writeTeamError(w http.ResponseWriter, err error) {
	if ve, ok := IsValidation(err); ok {
		httpjson.Write(w, http.StatusBadRequest, map[string]any{
			"error": ve.Error(),
			"rows":  ve.Rows,
		})
		return
	}
	switch {
	case errors.Is(err, ErrInvalidJoinCode):
		httpjson.Error(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, ErrTeamNotFound):
		httpjson.Error(w, http.StatusNotFound, err.Error())
	case errors.Is(err, ErrReplaceBlocked), errors.Is(err, ErrDuplicateJoinCode):
		httpjson.Error(w, http.StatusConflict, err.Error())
	default:
		log.Error().Err(err).Msg("team request failed")
		httpjson.Error(w, http.StatusInternalServerError, "internal error")
	}
}
