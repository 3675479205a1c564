package rest

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
	"github.com/rocketscienceinc/tictactoe-engine/internal/usecase"
)

type matchUseCase interface {
	GetMode(ctx context.Context) (entity.Mode, error)
	SetMode(ctx context.Context, mode entity.Mode) error
	ToggleMode(ctx context.Context) (entity.Mode, error)

	NewMatch(ctx context.Context, mode entity.Mode) (*entity.Match, error)
	GetMatch(ctx context.Context, id string) (*entity.Match, error)
	MakeTurn(ctx context.Context, id string, player entity.Player, cell entity.Cell) (*usecase.Turn, error)
	Abandon(ctx context.Context, id string) error
}

type handlers struct {
	logger *slog.Logger
	uMatch matchUseCase
}

type turnRequest struct {
	Player entity.Player `json:"player,omitempty"`
	Cell   entity.Cell   `json:"cell"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (that *handlers) getMode(w http.ResponseWriter, r *http.Request) {
	mode, err := that.uMatch.GetMode(r.Context())
	if err != nil {
		that.writeError(w, r, err)
		return
	}

	that.writeJSON(w, http.StatusOK, entity.ModeRecord{GameMode: mode})
}

func (that *handlers) setMode(w http.ResponseWriter, r *http.Request) {
	var record entity.ModeRecord
	if err := json.NewDecoder(r.Body).Decode(&record); err != nil {
		that.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	if err := that.uMatch.SetMode(r.Context(), record.GameMode); err != nil {
		that.writeError(w, r, err)
		return
	}

	that.writeJSON(w, http.StatusOK, record)
}

func (that *handlers) toggleMode(w http.ResponseWriter, r *http.Request) {
	mode, err := that.uMatch.ToggleMode(r.Context())
	if err != nil {
		that.writeError(w, r, err)
		return
	}

	that.writeJSON(w, http.StatusOK, entity.ModeRecord{GameMode: mode})
}

func (that *handlers) newMatch(w http.ResponseWriter, r *http.Request) {
	// the body is optional, the saved mode is used without it
	var record entity.ModeRecord
	if err := json.NewDecoder(r.Body).Decode(&record); err != nil && !errors.Is(err, io.EOF) {
		that.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	match, err := that.uMatch.NewMatch(r.Context(), record.GameMode)
	if err != nil {
		that.writeError(w, r, err)
		return
	}

	that.writeJSON(w, http.StatusCreated, match)
}

func (that *handlers) getMatch(w http.ResponseWriter, r *http.Request) {
	match, err := that.uMatch.GetMatch(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		that.writeError(w, r, err)
		return
	}

	that.writeJSON(w, http.StatusOK, match)
}

func (that *handlers) abandonMatch(w http.ResponseWriter, r *http.Request) {
	if err := that.uMatch.Abandon(r.Context(), chi.URLParam(r, "id")); err != nil {
		that.writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (that *handlers) makeTurn(w http.ResponseWriter, r *http.Request) {
	var req turnRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		that.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	turn, err := that.uMatch.MakeTurn(r.Context(), chi.URLParam(r, "id"), req.Player, req.Cell)
	if err != nil {
		that.writeError(w, r, err)
		return
	}

	that.writeJSON(w, http.StatusOK, turn)
}

func (that *handlers) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		that.logger.Error("request failed", "method", r.Method, "path", r.URL.Path, "error", err)
		that.writeJSON(w, status, errorResponse{Error: http.StatusText(status)})
		return
	}

	that.writeJSON(w, status, errorResponse{Error: err.Error()})
}

func (that *handlers) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		that.logger.Error("failed to write response", "error", err)
	}
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, apperror.ErrCellOccupied),
		errors.Is(err, apperror.ErrNotYourTurn),
		errors.Is(err, apperror.ErrGameFinished),
		errors.Is(err, apperror.ErrInputDisabled):
		return http.StatusConflict
	case errors.Is(err, apperror.ErrInvalidCell),
		errors.Is(err, apperror.ErrInvalidPlayer),
		errors.Is(err, apperror.ErrInvalidMode):
		return http.StatusBadRequest
	case errors.Is(err, apperror.ErrMatchNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
