package websocket

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rocketscienceinc/tictactoe/internal/apperror"
	"github.com/rocketscienceinc/tictactoe/internal/entity"
)

func errUnknownAction(action string) error {
	return fmt.Errorf("%w: %q", apperror.ErrUnknownAction, action)
}

func (that *Server) handleGameState(_ context.Context, msg *Message, conn *connection) error {
	return that.sendGame(conn, msg.Action, that.engine.Snapshot())
}

// handleGameTurn - an illegal turn answers with the unchanged game.
func (that *Server) handleGameTurn(_ context.Context, msg *Message, conn *connection) error {
	var payloadReq Payload
	if err := json.Unmarshal(msg.Payload, &payloadReq); err != nil {
		return that.sendErrorResponse(conn, msg.Action, fmt.Errorf("%w: %w", apperror.ErrBadRequest, err))
	}

	if payloadReq.Cell == nil {
		return that.sendErrorResponse(conn, msg.Action, fmt.Errorf("%w: cell is required", apperror.ErrBadRequest))
	}

	return that.sendGame(conn, msg.Action, that.engine.MakeTurn(*payloadReq.Cell))
}

func (that *Server) handleGameReset(_ context.Context, msg *Message, conn *connection) error {
	return that.sendGame(conn, msg.Action, that.engine.Reset())
}

func (that *Server) handleScoresReset(_ context.Context, msg *Message, conn *connection) error {
	return that.sendGame(conn, msg.Action, that.engine.ResetScores())
}

// handleGameMode - switches to the requested mode, or toggles it when no mode is given.
func (that *Server) handleGameMode(_ context.Context, msg *Message, conn *connection) error {
	var payloadReq Payload
	if len(msg.Payload) > 0 {
		if err := json.Unmarshal(msg.Payload, &payloadReq); err != nil {
			return that.sendErrorResponse(conn, msg.Action, fmt.Errorf("%w: %w", apperror.ErrBadRequest, err))
		}
	}

	if payloadReq.Mode == "" {
		return that.sendGame(conn, msg.Action, that.engine.ToggleMode())
	}

	mode, err := entity.ParseMode(payloadReq.Mode)
	if err != nil {
		return that.sendErrorResponse(conn, msg.Action, fmt.Errorf("%w: %w", apperror.ErrBadRequest, err))
	}

	return that.sendGame(conn, msg.Action, that.engine.SetMode(mode))
}

func (that *Server) sendGame(conn *connection, action string, snapshot entity.Snapshot) error {
	if err := conn.send(action, Payload{Game: &snapshot}); err != nil {
		return fmt.Errorf("failed to send response: %w", err)
	}

	return nil
}

func (that *Server) sendErrorResponse(conn *connection, action string, cause error) error {
	that.logger.Debug("bad request", "action", action, "error", cause)

	if err := conn.send(action, Payload{Error: cause.Error()}); err != nil {
		return fmt.Errorf("failed to send error response: %w", err)
	}

	return nil
}
