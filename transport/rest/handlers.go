package rest

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
	"github.com/rocketscienceinc/tictactoe-engine/transport/payload"
)

const defaultResultsLimit = 20

var (
	ErrInvalidDelay = errors.New("delay_ms must be a non-negative number")
	ErrInvalidLimit = errors.New("limit must be a positive number")
	ErrListResults  = errors.New("failed to list results")
)

type matchService interface {
	Snapshot() entity.Match
	Submit(playerIdx int, action entity.Action) error
	SetBotDelay(delay time.Duration)
	Results(ctx context.Context, limit int64) ([]entity.MatchResult, error)
}

type handlers struct {
	logger *slog.Logger
	match  matchService
}

type errorResponse struct {
	Error string `json:"error"`
}

type botDelayRequest struct {
	DelayMS *int64 `json:"delay_ms"`
}

func (that *handlers) ping(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("pong")); err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
}

func (that *handlers) getMatch(w http.ResponseWriter, _ *http.Request) {
	that.writeJSON(w, http.StatusOK, payload.NewMatch(that.match.Snapshot()))
}

func (that *handlers) submitAction(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "submitAction")

	playerIdx, err := strconv.Atoi(chi.URLParam(r, "player"))
	if err != nil {
		that.writeError(w, http.StatusBadRequest, apperror.ErrUnknownPlayer)
		return
	}

	var req payload.Action
	if err = json.NewDecoder(r.Body).Decode(&req); err != nil {
		that.writeError(w, http.StatusBadRequest, err)
		return
	}

	action, err := req.ToEntity()
	if err != nil {
		that.writeError(w, http.StatusBadRequest, err)
		return
	}

	if err = that.match.Submit(playerIdx, action); err != nil {
		log.Debug("action rejected", "player", playerIdx, "action", action.String(), "error", err)
		that.writeError(w, statusFor(err), err)

		return
	}

	w.WriteHeader(http.StatusAccepted)
}

func (that *handlers) setBotDelay(w http.ResponseWriter, r *http.Request) {
	var req botDelayRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		that.writeError(w, http.StatusBadRequest, err)
		return
	}

	if req.DelayMS == nil || *req.DelayMS < 0 {
		that.writeError(w, http.StatusBadRequest, ErrInvalidDelay)
		return
	}

	that.match.SetBotDelay(time.Duration(*req.DelayMS) * time.Millisecond)

	w.WriteHeader(http.StatusNoContent)
}

func (that *handlers) results(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "results")

	limit := int64(defaultResultsLimit)
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || parsed <= 0 {
			that.writeError(w, http.StatusBadRequest, ErrInvalidLimit)
			return
		}

		limit = parsed
	}

	results, err := that.match.Results(r.Context(), limit)
	if err != nil {
		log.Error("failed to list results", "error", err)
		that.writeError(w, http.StatusInternalServerError, ErrListResults)

		return
	}

	that.writeJSON(w, http.StatusOK, results)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, apperror.ErrUnknownPlayer), errors.Is(err, apperror.ErrInvalidCell):
		return http.StatusBadRequest
	case errors.Is(err, apperror.ErrNotHumanPlayer):
		return http.StatusForbidden
	case errors.Is(err, apperror.ErrNotYourTurn),
		errors.Is(err, apperror.ErrCellOccupied),
		errors.Is(err, apperror.ErrActionPending),
		errors.Is(err, apperror.ErrUnexpectedAction),
		errors.Is(err, apperror.ErrGameFinished):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func (that *handlers) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		that.logger.Error("failed to write response", "error", err)
	}
}

func (that *handlers) writeError(w http.ResponseWriter, status int, err error) {
	that.writeJSON(w, status, errorResponse{Error: err.Error()})
}
