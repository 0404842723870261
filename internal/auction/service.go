package auction

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/mcdev12/draftroom/internal/admin"
	"github.com/mcdev12/draftroom/internal/httpjson"
	"github.com/mcdev12/draftroom/internal/models"
	"github.com/mcdev12/draftroom/internal/players"
	"github.com/mcdev12/draftroom/internal/teams"
)

// Service exposes the auction operations over JSON HTTP.
type Service struct {
	app   *App
	guard *admin.Guard
}

func NewService(app *App, guard *admin.Guard) *Service {
	return &Service{app: app, guard: guard}
}

// RegisterRoutes attaches the auction endpoints to mux.
func (s *Service) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/bid", s.handleBid)
	mux.HandleFunc("POST /api/nominate", s.handleNominate)
	mux.HandleFunc("POST /api/finalize", s.handleFinalize)
	mux.HandleFunc("POST /api/auto-finalize", s.handleAutoFinalize)
}

type bidRequest struct {
	DraftID   uuid.UUID `json:"draft_id"`
	AuctionID uuid.UUID `json:"auction_id"`
	TeamCode  string    `json:"team_code"`
	Amount    int       `json:"amount"`
}

type auctionResponse struct {
	Auction *models.Auction `json:"auction"`
}

func (s *Service) handleBid(w http.ResponseWriter, r *http.Request) {
	var req bidRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.DraftID == uuid.Nil || req.AuctionID == uuid.Nil || req.TeamCode == "" {
		httpjson.Error(w, http.StatusBadRequest, "draft_id, auction_id and team_code are required")
		return
	}

	auction, err := s.app.PlaceBid(r.Context(), PlaceBidRequest{
		DraftID:   req.DraftID,
		AuctionID: req.AuctionID,
		TeamCode:  req.TeamCode,
		Amount:    req.Amount,
	})
	if err != nil {
		writeAuctionError(w, err)
		return
	}
	httpjson.Write(w, http.StatusOK, auctionResponse{Auction: auction})
}

type nominateRequest struct {
	DraftID  uuid.UUID  `json:"draft_id"`
	PlayerID uuid.UUID  `json:"player_id"`
	TeamID   *uuid.UUID `json:"team_id,omitempty"`
}

func (s *Service) handleNominate(w http.ResponseWriter, r *http.Request) {
	if !s.guard.Authorized(r) {
		httpjson.Error(w, http.StatusUnauthorized, "admin code required")
		return
	}
	var req nominateRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.DraftID == uuid.Nil || req.PlayerID == uuid.Nil {
		httpjson.Error(w, http.StatusBadRequest, "draft_id and player_id are required")
		return
	}

	auction, err := s.app.Nominate(r.Context(), req.DraftID, req.PlayerID, req.TeamID)
	if err != nil {
		writeAuctionError(w, err)
		return
	}
	httpjson.Write(w, http.StatusOK, auctionResponse{Auction: auction})
}

type finalizeRequest struct {
	DraftID   uuid.UUID `json:"draft_id"`
	AuctionID uuid.UUID `json:"auction_id"`
	Force     bool      `json:"force,omitempty"`
}

type finalizeResponse struct {
	Status FinalizeStatus `json:"status"`
}

func (s *Service) handleFinalize(w http.ResponseWriter, r *http.Request) {
	if !s.guard.Authorized(r) {
		httpjson.Error(w, http.StatusUnauthorized, "admin code required")
		return
	}
	var req finalizeRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.DraftID == uuid.Nil || req.AuctionID == uuid.Nil {
		httpjson.Error(w, http.StatusBadRequest, "draft_id and auction_id are required")
		return
	}

	status, err := s.app.Finalize(r.Context(), req.DraftID, req.AuctionID, req.Force)
	if err != nil {
		writeAuctionError(w, err)
		return
	}
	httpjson.Write(w, http.StatusOK, finalizeResponse{Status: status})
}

type autoFinalizeRequest struct {
	DraftID uuid.UUID `json:"draft_id"`
}

type autoFinalizeResponse struct {
	Finalized int `json:"finalized"`
}

func (s *Service) handleAutoFinalize(w http.ResponseWriter, r *http.Request) {
	var req autoFinalizeRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.DraftID == uuid.Nil {
		httpjson.Error(w, http.StatusBadRequest, "draft_id is required")
		return
	}

	count, err := s.app.SweepExpired(r.Context(), req.DraftID)
	if err != nil {
		writeAuctionError(w, err)
		return
	}
	httpjson.Write(w, http.StatusOK, autoFinalizeResponse{Finalized: count})
}

func writeAuctionError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, teams.ErrInvalidJoinCode):
		httpjson.Error(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, ErrAuctionNotFound), errors.Is(err, players.ErrPlayerNotFound), errors.Is(err, ErrWrongDraft):
		httpjson.Error(w, http.StatusNotFound, err.Error())
	case errors.Is(err, ErrBidTooLow):
		httpjson.Error(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, ErrAuctionClosed),
		errors.Is(err, ErrAuctionPaused),
		errors.Is(err, ErrAuctionEnded),
		errors.Is(err, ErrAlreadyDrafted),
		errors.Is(err, ErrDuplicateAuction),
		errors.Is(err, ErrNotExpiredYet),
		errors.Is(err, ErrNoRosterSpace),
		errors.Is(err, ErrInsufficientBudget),
		errors.Is(err, ErrBidConflict):
		httpjson.Error(w, http.StatusConflict, err.Error())
	default:
		log.Error().Err(err).Msg("auction request failed")
		httpjson.Error(w, http.StatusInternalServerError, "internal error")
	}
}
