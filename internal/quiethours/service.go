package quiethours

import (
	"crypto/subtle"
	"net/http"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/mcdev12/draftroom/internal/admin"
	"github.com/mcdev12/draftroom/internal/httpjson"
)

// Service exposes quiet hours ticks over JSON HTTP. The admin tick is for
// manual triggering; the cron route authenticates with a shared secret so
// external schedulers can drive it.
type Service struct {
	app        *App
	guard      *admin.Guard
	cronSecret string
}

func NewService(app *App, guard *admin.Guard, cronSecret string) *Service {
	return &Service{app: app, guard: guard, cronSecret: cronSecret}
}

// RegisterRoutes attaches the quiet hours endpoints to mux.
func (s *Service) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/quiet-hours-tick", s.handleTick)
	mux.HandleFunc("GET /api/quiet-hours-cron", s.handleCron)
}

type tickRequest struct {
	DraftID uuid.UUID `json:"draft_id"`
}

func (s *Service) handleTick(w http.ResponseWriter, r *http.Request) {
	if !s.guard.Authorized(r) {
		httpjson.Error(w, http.StatusUnauthorized, "admin code required")
		return
	}
	var req tickRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.DraftID == uuid.Nil {
		httpjson.Error(w, http.StatusBadRequest, "draft_id is required")
		return
	}
	s.apply(w, r, req.DraftID)
}

func (s *Service) handleCron(w http.ResponseWriter, r *http.Request) {
	secret := r.URL.Query().Get("secret")
	if s.cronSecret == "" ||
		subtle.ConstantTimeCompare([]byte(secret), []byte(s.cronSecret)) != 1 {
		httpjson.Error(w, http.StatusUnauthorized, "invalid cron secret")
		return
	}
	draftID, err := uuid.Parse(r.URL.Query().Get("draft_id"))
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, "draft_id is required")
		return
	}
	s.apply(w, r, draftID)
}

func (s *Service) apply(w http.ResponseWriter, r *http.Request, draftID uuid.UUID) {
	result, err := s.app.Apply(r.Context(), draftID)
	if err != nil {
		log.Error().Err(err).Str("draft_id", draftID.String()).Msg("quiet hours tick failed")
		httpjson.Error(w, http.StatusInternalServerError, "internal error")
		return
	}
	httpjson.Write(w, http.StatusOK, result)
}
