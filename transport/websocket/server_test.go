package websocket

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
	"github.com/rocketscienceinc/tictactoe-engine/internal/repository"
	"github.com/rocketscienceinc/tictactoe-engine/internal/service"
	"github.com/rocketscienceinc/tictactoe-engine/internal/usecase"
)

type firstSource struct{}

func (firstSource) Intn(int) int { return 0 }

func dial(t *testing.T) *websocket.Conn {
	t.Helper()

	return dialWithContext(t, context.Background())
}

// dialWithContext connects to a server whose requests derive from ctx, as under Start.
func dialWithContext(t *testing.T, ctx context.Context) *websocket.Conn {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	manager := usecase.NewMatchManager(
		logger,
		repository.NewMemoryMatchRepository(),
		repository.NewFileModeRepository(filepath.Join(t.TempDir(), "ticTacToe.json")),
		service.NewMoveSelector(firstSource{}),
		0,
	)

	srv := httptest.NewUnstartedServer(New(logger, manager).Handler())
	srv.Config.BaseContext = func(net.Listener) context.Context { return ctx }
	srv.Start()
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"

	conn, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = resp.Body.Close()
		_ = conn.Close()
	})

	return conn
}

func send(t *testing.T, conn *websocket.Conn, action, payload string) (string, Payload) {
	t.Helper()

	msg := Message{Action: action}
	if payload != "" {
		msg.Payload = json.RawMessage(payload)
	}

	require.NoError(t, conn.WriteJSON(msg))

	var resp Message
	require.NoError(t, conn.ReadJSON(&resp))

	var body Payload
	require.NoError(t, json.Unmarshal(resp.Payload, &body))

	return resp.Action, body
}

func TestModeActions(t *testing.T) {
	conn := dial(t)

	// Given: a fresh mode store
	action, body := send(t, conn, actionModeGet, "")
	require.Equal(t, actionModeGet, action)
	assert.Equal(t, entity.ModeWithFriend, body.Mode)

	// When: the client selects the computer opponent
	_, body = send(t, conn, actionModeSet, `{"gameMode":"withComputer"}`)
	require.Empty(t, body.Error)

	// Then: the selection is returned by mode:get
	_, body = send(t, conn, actionModeGet, "")
	assert.Equal(t, entity.ModeWithComputer, body.Mode)

	t.Run("an unknown mode is rejected", func(t *testing.T) {
		_, body := send(t, conn, actionModeSet, `{"gameMode":"online"}`)
		assert.Contains(t, body.Error, "invalid")
	})
}

func TestMatchActions(t *testing.T) {
	t.Run("a friend match alternates turns", func(t *testing.T) {
		conn := dial(t)

		_, body := send(t, conn, actionMatchNew, `{"gameMode":"withFriend"}`)
		require.Empty(t, body.Error)
		require.NotNil(t, body.Match)

		id := body.Match.ID

		_, body = send(t, conn, actionMatchTurn, `{"matchId":"`+id+`","cell":1}`)
		require.Empty(t, body.Error)
		assert.Equal(t, entity.Circle, body.Player)
		assert.Equal(t, entity.Cross, body.Match.State.Turn)
		assert.Zero(t, body.ComputerCell)

		_, body = send(t, conn, actionMatchGet, `{"matchId":"`+id+`"}`)
		require.Empty(t, body.Error)
		assert.True(t, body.Match.State.Circle.Contains(1))
	})

	t.Run("the computer answers in computer mode", func(t *testing.T) {
		conn := dial(t)

		_, body := send(t, conn, actionMatchNew, `{"gameMode":"withComputer"}`)
		require.Empty(t, body.Error)

		id := body.Match.ID

		_, body = send(t, conn, actionMatchTurn, `{"matchId":"`+id+`","cell":5}`)
		require.Empty(t, body.Error)
		assert.Equal(t, entity.Cell(1), body.ComputerCell)
		assert.Equal(t, entity.Circle, body.Match.State.Turn)
	})

	t.Run("rule violations come back as errors", func(t *testing.T) {
		conn := dial(t)

		_, body := send(t, conn, actionMatchNew, "")
		id := body.Match.ID

		_, body = send(t, conn, actionMatchTurn, `{"matchId":"`+id+`","cell":1}`)
		require.Empty(t, body.Error)

		action, body := send(t, conn, actionMatchTurn, `{"matchId":"`+id+`","cell":1}`)
		assert.Equal(t, actionMatchTurn, action)
		assert.Contains(t, body.Error, "occupied")

		_, body = send(t, conn, actionMatchTurn, `{"matchId":"`+id+`"}`)
		assert.Equal(t, "cell is required", body.Error)
	})

	t.Run("leaving removes the match", func(t *testing.T) {
		conn := dial(t)

		_, body := send(t, conn, actionMatchNew, "")
		id := body.Match.ID

		_, body = send(t, conn, actionMatchLeave, `{"matchId":"`+id+`"}`)
		require.Empty(t, body.Error)
		assert.Equal(t, id, body.MatchID)

		_, body = send(t, conn, actionMatchGet, `{"matchId":"`+id+`"}`)
		assert.Contains(t, body.Error, "not found")
	})
}

func TestUnknownAction(t *testing.T) {
	conn := dial(t)

	action, body := send(t, conn, "game:join", `{}`)

	assert.Equal(t, "game:join", action)
	assert.Equal(t, "unknown action", body.Error)
}

func TestShutdownClosesConnections(t *testing.T) {
	// Given: an open connection to a running server
	ctx, cancel := context.WithCancel(context.Background())
	conn := dialWithContext(t, ctx)

	_, body := send(t, conn, actionModeGet, "")
	require.Empty(t, body.Error)

	// When: the application stops
	cancel()

	// Then: the server says goodbye and hangs up
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	_, _, err := conn.ReadMessage()
	assert.True(t, websocket.IsCloseError(err, websocket.CloseGoingAway), "unexpected error: %v", err)
}
