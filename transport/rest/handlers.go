package rest

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/rocketscienceinc/tictactoe/internal/apperror"
	"github.com/rocketscienceinc/tictactoe/internal/entity"
)

type turnRequest struct {
	Cell *int `json:"cell"`
}

type modeRequest struct {
	Mode string `json:"mode"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (that *Server) handleGetGame(w http.ResponseWriter, _ *http.Request) {
	that.writeJSON(w, http.StatusOK, that.engine.Snapshot())
}

// handleTurn - a rejected turn is not an error, the unchanged game is returned.
func (that *Server) handleTurn(w http.ResponseWriter, r *http.Request) {
	var req turnRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		that.writeError(w, fmt.Errorf("%w: %w", apperror.ErrBadRequest, err))
		return
	}

	if req.Cell == nil {
		that.writeError(w, fmt.Errorf("%w: cell is required", apperror.ErrBadRequest))
		return
	}

	that.writeJSON(w, http.StatusOK, that.engine.MakeTurn(*req.Cell))
}

func (that *Server) handleReset(w http.ResponseWriter, _ *http.Request) {
	that.writeJSON(w, http.StatusOK, that.engine.Reset())
}

func (that *Server) handleResetScores(w http.ResponseWriter, _ *http.Request) {
	that.writeJSON(w, http.StatusOK, that.engine.ResetScores())
}

func (that *Server) handleSetMode(w http.ResponseWriter, r *http.Request) {
	var req modeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		that.writeError(w, fmt.Errorf("%w: %w", apperror.ErrBadRequest, err))
		return
	}

	mode, err := entity.ParseMode(req.Mode)
	if err != nil {
		that.writeError(w, fmt.Errorf("%w: %w", apperror.ErrBadRequest, err))
		return
	}

	that.writeJSON(w, http.StatusOK, that.engine.SetMode(mode))
}

func (that *Server) handleToggleMode(w http.ResponseWriter, _ *http.Request) {
	that.writeJSON(w, http.StatusOK, that.engine.ToggleMode())
}

func (that *Server) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(payload); err != nil {
		that.logger.Error("failed to write response", "error", err)
	}
}

func (that *Server) writeError(w http.ResponseWriter, err error) {
	that.logger.Debug("bad request", "error", err)
	that.writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
}
