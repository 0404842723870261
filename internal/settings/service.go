package settings

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/mcdev12/draftroom/internal/admin"
	"github.com/mcdev12/draftroom/internal/httpjson"
	"github.com/mcdev12/draftroom/internal/models"
)

// Service exposes settings and the admin-code check over JSON HTTP.
type Service struct {
	app   *App
	guard *admin.Guard
}

func NewService(app *App, guard *admin.Guard) *Service {
	return &Service{app: app, guard: guard}
}

// RegisterRoutes attaches the settings endpoints to mux.
func (s *Service) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/draft-settings", s.handleGetSettings)
	mux.HandleFunc("POST /api/save-draft-settings", s.handleSaveSettings)
	mux.HandleFunc("POST /api/admin/check", s.handleAdminCheck)
}

func (s *Service) handleGetSettings(w http.ResponseWriter, r *http.Request) {
	draftID, err := uuid.Parse(r.URL.Query().Get("draft_id"))
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, "draft_id is required")
		return
	}
	got, err := s.app.GetSettings(r.Context(), draftID)
	if err != nil {
		writeSettingsError(w, err)
		return
	}
	httpjson.Write(w, http.StatusOK, got)
}

type saveSettingsRequest struct {
	DraftID           uuid.UUID `json:"draft_id"`
	NominationSeconds int       `json:"nomination_seconds"`
	BidSeconds        int       `json:"bid_seconds"`
	QuietHoursEnabled bool      `json:"quiet_hours_enabled"`
	QuietStartMinute  int       `json:"quiet_start_minute"`
	QuietEndMinute    int       `json:"quiet_end_minute"`
	QuietTimezone     string    `json:"quiet_timezone"`
}

type okResponse struct {
	OK bool `json:"ok"`
}

func (s *Service) handleSaveSettings(w http.ResponseWriter, r *http.Request) {
	if !s.guard.Authorized(r) {
		httpjson.Error(w, http.StatusUnauthorized, "admin code required")
		return
	}
	var req saveSettingsRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	err := s.app.Save(r.Context(), &models.DraftSettings{
		DraftID:           req.DraftID,
		NominationSeconds: req.NominationSeconds,
		BidSeconds:        req.BidSeconds,
		QuietHoursEnabled: req.QuietHoursEnabled,
		QuietStartMinute:  req.QuietStartMinute,
		QuietEndMinute:    req.QuietEndMinute,
		QuietTimezone:     req.QuietTimezone,
	})
	if err != nil {
		writeSettingsError(w, err)
		return
	}
	httpjson.Write(w, http.StatusOK, okResponse{OK: true})
}

type adminCheckRequest struct {
	Code string `json:"code"`
}

func (s *Service) handleAdminCheck(w http.ResponseWriter, r *http.Request) {
	var req adminCheckRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	if !s.guard.Check(req.Code) {
		httpjson.Write(w, http.StatusUnauthorized, okResponse{OK: false})
		return
	}
	httpjson.Write(w, http.StatusOK, okResponse{OK: true})
}

func writeSettingsError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidSettings):
		httpjson.Error(w, http.StatusBadRequest, err.Error())
	default:
		log.Error().Err(err).Msg("settings request failed")
		httpjson.Error(w, http.StatusInternalServerError, "internal error")
	}
}
