package server

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/nikogura/portfolio/pkg/graph"
	"github.com/nikogura/portfolio/pkg/visual"
)

// DefaultFrameInterval paces the live simulation at roughly 60 frames per second.
const DefaultFrameInterval = 16 * time.Millisecond

const (
	liveWriteWait     = 5 * time.Second
	liveCommandBuffer = 16
	liveMaxMessage    = 1024
)

// Live message types.
const (
	MsgFrame   = "frame"
	MsgSettled = "settled"
	MsgDetail  = "detail"
	MsgMiss    = "miss"
	MsgError   = "error"

	CmdPin     = "pin"
	CmdRelease = "release"
	CmdSelect  = "select"
	CmdReheat  = "reheat"
)

// LiveCommand is a message from the browser.
type LiveCommand struct {
	Type string  `json:"type"`
	ID   string  `json:"id,omitempty"`
	X    float64 `json:"x,omitempty"`
	Y    float64 `json:"y,omitempty"`
}

// LiveMessage is a message to the browser.
type LiveMessage struct {
	Type    string        `json:"type"`
	Frame   *graph.Frame  `json:"frame,omitempty"`
	Detail  *graph.Detail `json:"detail,omitempty"`
	Ticks   int           `json:"ticks,omitempty"`
	Message string        `json:"message,omitempty"`
}

func (s *Server) upgrader() (u websocket.Upgrader) {
	u = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 4096,
		CheckOrigin:     s.checkOrigin,
	}
	return u
}

// checkOrigin accepts same-origin requests, and cross-origin ones from the
// CORS allow list. An empty allow list accepts everything.
func (s *Server) checkOrigin(r *http.Request) (ok bool) {
	origin := r.Header.Get("Origin")
	if origin == "" || len(s.allowedOrigins) == 0 {
		ok = true
		return ok
	}
	for _, allowed := range s.allowedOrigins {
		if allowed == origin {
			ok = true
			return ok
		}
	}
	return ok
}

// LiveGraph streams a force simulation of :kind over a websocket. The
// simulation runs on this goroutine; commands arrive from a reader goroutine
// over a channel. Closing the socket cancels the simulation.
func (s *Server) LiveGraph(c *gin.Context) {
	kind := c.Param("kind")
	g, err := s.graphFor(kind)
	if err != nil {
		respondGraphError(c, err)
		return
	}

	u := s.upgrader()
	conn, err := u.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		s.log.Warn("websocket upgrade failed", "kind", kind, "error", err)
		return
	}
	defer conn.Close()

	log := s.log.With("kind", kind, "remote", c.ClientIP())
	log.Debug("live simulation connected")

	ctx, cancel := context.WithCancel(c.Request.Context())
	defer cancel()

	commands := make(chan LiveCommand, liveCommandBuffer)
	go readCommands(ctx, cancel, conn, commands)

	sim := graph.NewSimulation(g, s.canvas, graph.DefaultForceConfig())
	ticker := time.NewTicker(s.frameInterval)
	defer ticker.Stop()

	send := func(msg LiveMessage) (ok bool) {
		_ = conn.SetWriteDeadline(time.Now().Add(liveWriteWait))
		writeErr := conn.WriteJSON(msg)
		if writeErr != nil {
			log.Debug("live write failed", "error", writeErr)
			cancel()
			return ok
		}
		ok = true
		return ok
	}

	settled := false
	for {
		select {
		case <-ctx.Done():
			log.Debug("live simulation closed", "ticks", sim.Ticks())
			return

		case cmd := <-commands:
			if !s.applyCommand(g, sim, cmd, send) {
				return
			}
			if !sim.Done() {
				settled = false
			}

		case <-ticker.C:
			if sim.Done() {
				if !settled {
					settled = true
					if !send(LiveMessage{Type: MsgSettled, Ticks: sim.Ticks()}) {
						return
					}
				}
				continue
			}

			sim.Step()
			frame := sim.Frame()
			if !send(LiveMessage{Type: MsgFrame, Frame: &frame}) {
				return
			}
		}
	}
}

// applyCommand mutates the simulation. It returns false once the socket is gone.
func (s *Server) applyCommand(g *graph.Graph, sim *graph.Simulation, cmd LiveCommand, send func(LiveMessage) bool) (ok bool) {
	var err error

	switch cmd.Type {
	case CmdPin:
		err = sim.Pin(cmd.ID, cmd.X, cmd.Y)
	case CmdRelease:
		err = sim.Release(cmd.ID)
	case CmdReheat:
		sim.Reheat()
	case CmdSelect:
		layout := graph.Result{Layout: graph.LayoutForce, Canvas: s.canvas, Positions: sim.Positions()}
		hit := false
		scene := visual.NewScene(g, layout, visual.Options{
			OnSelect: func(detail graph.Detail) {
				hit = true
				ok = send(LiveMessage{Type: MsgDetail, Detail: &detail})
			},
		})
		_, _, err = scene.Select(cmd.X, cmd.Y)
		if err == nil && !hit {
			ok = send(LiveMessage{Type: MsgMiss})
		}
		if err == nil {
			return ok
		}
	default:
		ok = send(LiveMessage{Type: MsgError, Message: "unknown command " + cmd.Type})
		return ok
	}

	if err != nil {
		ok = send(LiveMessage{Type: MsgError, Message: err.Error()})
		return ok
	}

	ok = true
	return ok
}

// readCommands forwards browser messages until the socket fails, then cancels.
func readCommands(ctx context.Context, cancel context.CancelFunc, conn *websocket.Conn, commands chan<- LiveCommand) {
	defer cancel()
	conn.SetReadLimit(liveMaxMessage)

	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			return
		}

		// Malformed messages become an unknown command and get an error reply.
		var cmd LiveCommand
		if json.Unmarshal(raw, &cmd) != nil {
			cmd = LiveCommand{Type: "malformed"}
		}

		select {
		case commands <- cmd:
		case <-ctx.Done():
			return
		}
	}
}
