// Package server exposes a running simulation over WebSocket: it broadcasts
// JSON frames of the latest snapshot at a capped rate and accepts transport
// control commands from viewers.
package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/pkg/errors"

	"wiregrid/internal/circuitfile"
	"wiregrid/internal/core"
	"wiregrid/internal/sim"
)

// Frame is one snapshot pushed to viewers. Kinds holds legend runes, Levels
// '0'/'1' characters, both row by row.
type Frame struct {
	Type    string   `json:"type"`
	Width   int      `json:"width"`
	Height  int      `json:"height"`
	Kinds   []string `json:"kinds"`
	Levels  []string `json:"levels"`
	Running bool     `json:"running"`
}

// EncodeFrame renders a snapshot into the wire format.
func EncodeFrame(g *core.Grid, running bool) Frame {
	f := Frame{Type: "frame", Width: g.W, Height: g.H, Running: running}
	for y := 0; y < g.H; y++ {
		kinds := make([]rune, g.W)
		levels := make([]rune, g.W)
		for x := 0; x < g.W; x++ {
			c := g.At(x, y)
			kinds[x] = circuitfile.Rune(c.Kind)
			levels[x] = '0'
			if c.Level {
				levels[x] = '1'
			}
		}
		f.Kinds = append(f.Kinds, string(kinds))
		f.Levels = append(f.Levels, string(levels))
	}
	return f
}

// Server couples a simulator to a websocket hub.
type Server struct {
	sim    *sim.Simulator
	source *core.Grid
	hub    *Hub
	addr   string
	fps    int
	logger *log.Logger
}

// New builds a server around a simulator already compiled from source. The
// source grid is kept for reset commands.
func New(s *sim.Simulator, source *core.Grid, addr string, fps int, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	return &Server{sim: s, source: source.Clone(), hub: NewHub(), addr: addr, fps: fps, logger: logger}
}

// Run serves until the listener fails. Frames go out at the configured rate
// whether or not the simulation is running, so an idle viewer still sees the
// current state.
func (s *Server) Run() error {
	go s.hub.Run()
	go s.pumpFrames()

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		ServeWS(s.hub, s.logger, w, r)
	})
	s.logger.Info("live view listening", "addr", s.addr)
	return errors.Wrap(http.ListenAndServe(s.addr, mux), "live view server")
}

// pumpFrames broadcasts snapshots and applies viewer controls.
func (s *Server) pumpFrames() {
	pacer := core.NewPacer(s.fps)
	tick := time.NewTicker(2 * time.Millisecond)
	defer tick.Stop()
	for {
		select {
		case ctl := <-s.hub.Controls:
			s.apply(ctl)
		case <-tick.C:
			if !pacer.Due() {
				continue
			}
			frame := EncodeFrame(s.sim.Snapshot(), s.sim.Running())
			data, err := json.Marshal(frame)
			if err != nil {
				s.logger.Error("encode frame", "err", err)
				continue
			}
			select {
			case s.hub.Broadcast <- data:
			default:
			}
		}
	}
}

// apply executes one viewer control, gating each transport command on the
// simulator state so misordered clicks cannot trip a precondition.
func (s *Server) apply(ctl Control) {
	switch ctl.Type {
	case "start":
		if !s.sim.Running() {
			s.sim.Start()
			s.logger.Info("simulation started")
		}
	case "stop":
		if s.sim.Running() {
			s.sim.Stop()
			s.logger.Info("simulation stopped")
		}
	case "step":
		if !s.sim.Running() {
			s.sim.StepOnce()
		}
	case "reset":
		if !s.sim.Running() {
			g := s.source.Clone()
			s.sim.Reset(g)
			s.logger.Info("simulation reset")
		}
	case "set_period":
		if ctl.Value < 0 {
			return
		}
		s.sim.SetPeriod(time.Duration(ctl.Value * float64(time.Millisecond)))
		s.logger.Info("period changed", "ms", ctl.Value)
	default:
		s.logger.Warn("unknown control", "type", ctl.Type)
	}
}
