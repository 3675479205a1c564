package websocket

import (
	"context"
	"fmt"

	"github.com/gorilla/websocket"
)

func (that *Server) handleModeGet(ctx context.Context, msg *Message, conn *websocket.Conn) error {
	log := that.logger.With("method", "handleModeGet")

	mode, err := that.uMatch.GetMode(ctx)
	if err != nil {
		log.Error("failed to get mode", "error", err)
		return that.sendErrorResponse(conn, msg.Action, "failed to get mode")
	}

	return that.sendMessage(conn, msg.Action, Payload{Mode: mode})
}

func (that *Server) handleModeSet(ctx context.Context, msg *Message, conn *websocket.Conn) error {
	payloadReq, err := decodePayload(msg)
	if err != nil {
		return that.sendErrorResponse(conn, msg.Action, err.Error())
	}

	if err = that.uMatch.SetMode(ctx, payloadReq.Mode); err != nil {
		return that.sendErrorResponse(conn, msg.Action, fmt.Sprintf("mode %q: %v", payloadReq.Mode, err))
	}

	return that.sendMessage(conn, msg.Action, Payload{Mode: payloadReq.Mode})
}

func (that *Server) handleNewMatch(ctx context.Context, msg *Message, conn *websocket.Conn) error {
	log := that.logger.With("method", "handleNewMatch")

	payloadReq, err := decodePayload(msg)
	if err != nil {
		return that.sendErrorResponse(conn, msg.Action, err.Error())
	}

	match, err := that.uMatch.NewMatch(ctx, payloadReq.Mode)
	if err != nil {
		log.Error("failed to create match", "error", err)
		return that.sendErrorResponse(conn, msg.Action, fmt.Sprintf("failed to create a new match: %v", err))
	}

	log.Info("match started", "matchID", match.ID, "mode", match.Mode)

	return that.sendMessage(conn, msg.Action, Payload{Match: match})
}

func (that *Server) handleGetMatch(ctx context.Context, msg *Message, conn *websocket.Conn) error {
	payloadReq, err := decodePayload(msg)
	if err != nil {
		return that.sendErrorResponse(conn, msg.Action, err.Error())
	}

	if payloadReq.MatchID == "" {
		return that.sendErrorResponse(conn, msg.Action, "matchId is required")
	}

	match, err := that.uMatch.GetMatch(ctx, payloadReq.MatchID)
	if err != nil {
		return that.sendErrorResponse(conn, msg.Action, fmt.Sprintf("match %s: %v", payloadReq.MatchID, err))
	}

	return that.sendMessage(conn, msg.Action, Payload{Match: match})
}

func (that *Server) handleMatchTurn(ctx context.Context, msg *Message, conn *websocket.Conn) error {
	log := that.logger.With("method", "handleMatchTurn")

	payloadReq, err := decodePayload(msg)
	if err != nil {
		return that.sendErrorResponse(conn, msg.Action, err.Error())
	}

	if payloadReq.MatchID == "" {
		return that.sendErrorResponse(conn, msg.Action, "matchId is required")
	}

	if payloadReq.Cell == nil {
		return that.sendErrorResponse(conn, msg.Action, "cell is required")
	}

	log = log.With("matchID", payloadReq.MatchID)

	turn, err := that.uMatch.MakeTurn(ctx, payloadReq.MatchID, payloadReq.Player, *payloadReq.Cell)
	if err != nil {
		log.Info("turn rejected", "error", err)
		return that.sendErrorResponse(conn, msg.Action, fmt.Sprintf("match %s: %v", payloadReq.MatchID, err))
	}

	cell := turn.Cell

	return that.sendMessage(conn, msg.Action, Payload{
		Match:        turn.Match,
		Player:       turn.Player,
		Cell:         &cell,
		ComputerCell: turn.ComputerCell,
	})
}

func (that *Server) handleMatchLeave(ctx context.Context, msg *Message, conn *websocket.Conn) error {
	payloadReq, err := decodePayload(msg)
	if err != nil {
		return that.sendErrorResponse(conn, msg.Action, err.Error())
	}

	if payloadReq.MatchID == "" {
		return that.sendErrorResponse(conn, msg.Action, "matchId is required")
	}

	if err = that.uMatch.Abandon(ctx, payloadReq.MatchID); err != nil {
		return that.sendErrorResponse(conn, msg.Action, fmt.Sprintf("match %s: %v", payloadReq.MatchID, err))
	}

	return that.sendMessage(conn, msg.Action, Payload{MatchID: payloadReq.MatchID})
}
