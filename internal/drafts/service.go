package drafts

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/mcdev12/draftroom/internal/admin"
	"github.com/mcdev12/draftroom/internal/httpjson"
)

// Service exposes draft lifecycle operations over JSON HTTP.
type Service struct {
	repo  *Repository
	guard *admin.Guard
}

func NewService(repo *Repository, guard *admin.Guard) *Service {
	return &Service{repo: repo, guard: guard}
}

// RegisterRoutes attaches the draft endpoints to mux.
func (s *Service) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/draft", s.handleGetDraft)
	mux.HandleFunc("POST /api/create-draft", s.handleCreateDraft)
	mux.HandleFunc("POST /api/reset-draft", s.handleResetDraft)
}

func (s *Service) handleGetDraft(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.URL.Query().Get("draft_id"))
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, "draft_id is required")
		return
	}
	draft, err := s.repo.GetDraft(r.Context(), id)
	if err != nil {
		writeDraftError(w, err)
		return
	}
	httpjson.Write(w, http.StatusOK, draft)
}

type createDraftRequest struct {
	Name string `json:"name"`
}

func (s *Service) handleCreateDraft(w http.ResponseWriter, r *http.Request) {
	if !s.guard.Authorized(r) {
		httpjson.Error(w, http.StatusUnauthorized, "admin code required")
		return
	}
	var req createDraftRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.Name == "" {
		httpjson.Error(w, http.StatusBadRequest, "name is required")
		return
	}
	draft, err := s.repo.CreateDraft(r.Context(), req.Name)
	if err != nil {
		writeDraftError(w, err)
		return
	}
	httpjson.Write(w, http.StatusOK, draft)
}

type resetDraftRequest struct {
	DraftID uuid.UUID `json:"draft_id"`
}

func (s *Service) handleResetDraft(w http.ResponseWriter, r *http.Request) {
	if !s.guard.Authorized(r) {
		httpjson.Error(w, http.StatusUnauthorized, "admin code required")
		return
	}
	var req resetDraftRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.DraftID == uuid.Nil {
		httpjson.Error(w, http.StatusBadRequest, "draft_id is required")
		return
	}
	if _, err := s.repo.GetDraft(r.Context(), req.DraftID); err != nil {
		writeDraftError(w, err)
		return
	}
	if err := s.repo.ResetDraft(r.Context(), req.DraftID); err != nil {
		writeDraftError(w, err)
		return
	}
	log.Info().Str("draft_id", req.DraftID.String()).Msg("reset draft")
	httpjson.Write(w, http.StatusOK, map[string]bool{"ok": true})
}

func writeDraftError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrDraftNotFound):
		httpjson.Error(w, http.StatusNotFound, err.Error())
	default:
		log.Error().Err(err).Msg("draft request failed")
		httpjson.Error(w, http.StatusInternalServerError, "internal error")
	}
}
