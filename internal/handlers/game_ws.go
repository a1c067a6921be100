package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/websocket"

	"github.com/vancomm/minesweeper-agent/internal/agent"
)

/*
Watch upgrades the connection and lets the client drive the agent with
one-letter text commands:

	g	send current state
	s	make one move
	r	run until the game ends

Every command is answered with the full run state as JSON.
*/
func (g GameHandler) Watch(w http.ResponseWriter, r *http.Request) {
	run, a, ok := g.fetchRun(w, r)
	if !ok {
		return
	}

	c, err := g.ws.Upgrader.Upgrade(w, r, nil)
	if err != nil {
		g.logger.Error("unable to upgrade", "error", err)
		return
	}
	defer c.Close()

	for {
		mt, message, err := c.ReadMessage()
		if err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure) {
				g.logger.Warn("abnormal ws break", "error", err)
			}
			break
		}
		if mt != websocket.TextMessage {
			break
		}

		var stepErr error
		switch cmd := strings.TrimSpace(string(message)); cmd {
		case "g":
		case "s":
			_, stepErr = a.Step()
		case "r":
			_, stepErr = a.Play(a.Board().CellCount())
		default:
			if err := c.WriteJSON(wrapError(
				&unknownCommandError{cmd},
			)); err != nil {
				g.logger.Error("unable to write json", "error", err)
				return
			}
			continue
		}
		if stepErr != nil && stepErr != agent.ErrGameOver {
			g.logger.Error("agent failed to move", "error", stepErr)
			return
		}

		if stepErr == nil {
			if run, err = g.saveRun(r, run, a); err != nil {
				g.logger.Error("unable to update game run in db", "error", err)
				return
			}
		}

		if err := c.WriteJSON(NewGameRunDTO(run, a)); err != nil {
			g.logger.Error("unable to write json", "error", err)
			break
		}
		if a.Done() {
			deadline := time.Now().Add(time.Second)
			c.WriteControl(websocket.CloseMessage, websocket.FormatCloseMessage(
				websocket.CloseNormalClosure, "game over",
			), deadline)
			break
		}
	}
}

type unknownCommandError struct {
	command string
}

func (e *unknownCommandError) Error() string {
	return "unknown command " + e.command
}
