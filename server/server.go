package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/coreman2200/funtimes-blinkt/blinkt"
	"github.com/coreman2200/funtimes-blinkt/model"
)

// MaxDelay caps the delay a remote client may ask for.
const MaxDelay = 10 * time.Second

// Command is one control message. Fields not used by Op are ignored.
type Command struct {
	Op        string   `json:"op"`
	Index     int      `json:"index,omitempty"`
	Red       int      `json:"red,omitempty"`
	Green     int      `json:"green,omitempty"`
	Blue      int      `json:"blue,omitempty"`
	Intensity *float64 `json:"intensity,omitempty"`
	Enable    bool     `json:"enable,omitempty"`
	Millis    int64    `json:"millis,omitempty"`
}

type Reply struct {
	OK    bool   `json:"ok"`
	Op    string `json:"op,omitempty"`
	Prev  *bool  `json:"prev,omitempty"`
	Line  *int   `json:"line,omitempty"`
	Error string `json:"error,omitempty"`
}

type LedState struct {
	I int   `json:"i"`
	N uint8 `json:"intensity"`
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

type Health struct {
	Refs      int        `json:"refs"`
	Debug     bool       `json:"debug"`
	DataLine  int        `json:"data_line"`
	ClockLine int        `json:"clock_line"`
	Leds      []LedState `json:"leds"`
}

// Server exposes a strip to remote clients. Every open control socket holds
// one reference on the strip for as long as it is connected.
type Server struct {
	strip *blinkt.Strip
	up    websocket.Upgrader
}

func New(s *blinkt.Strip) *Server {
	return &Server{
		strip: s,
		up:    websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }},
	}
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/control", s.HandleControlWS)
	mux.HandleFunc("/health", s.HandleHealth)
	return mux
}

func (s *Server) HandleControlWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.up.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	s.strip.Acquire()
	log.Debug().Str("remote", r.RemoteAddr).Msg("control client connected")
	defer func() {
		conn.Close()
		s.strip.Release()
		log.Debug().Str("remote", r.RemoteAddr).Msg("control client gone")
	}()

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			return
		}
		var cmd Command
		var rep Reply
		if err := json.Unmarshal(data, &cmd); err != nil {
			rep = Reply{Error: fmt.Sprintf("bad command: %v", err)}
		} else {
			rep = s.Apply(cmd)
		}
		b, _ := json.Marshal(rep)
		if err := conn.WriteMessage(websocket.TextMessage, b); err != nil {
			log.Debug().Err(err).Msg("write reply")
			return
		}
	}
}

// Apply runs one command against the strip.
func (s *Server) Apply(c Command) Reply {
	rep := Reply{OK: true, Op: c.Op}
	lvl := model.Unchanged
	if c.Intensity != nil {
		lvl = model.Intensity(*c.Intensity)
	}
	switch c.Op {
	case "set_led":
		s.strip.SetLED(c.Index, c.Red, c.Green, c.Blue, lvl)
	case "set_all":
		s.strip.SetAll(c.Red, c.Green, c.Blue, lvl)
	case "set_intensity":
		if v, ok := lvl.Value(); ok {
			s.strip.SetIntensity(c.Index, v)
		}
	case "set_intensity_all":
		if v, ok := lvl.Value(); ok {
			s.strip.SetIntensityAll(v)
		}
	case "refresh":
		s.strip.Refresh()
	case "reset":
		s.strip.Reset()
	case "delay":
		d := time.Duration(c.Millis) * time.Millisecond
		if d > MaxDelay {
			d = MaxDelay
		}
		s.strip.Delay(d)
	case "enable_debug":
		prev := s.strip.EnableDebug(c.Enable)
		rep.Prev = &prev
	case "enable_reset_on_release":
		prev := s.strip.EnableResetOnRelease(c.Enable)
		rep.Prev = &prev
	case "get_data_line":
		n := s.strip.DataLine()
		rep.Line = &n
	case "get_clock_line":
		n := s.strip.ClockLine()
		rep.Line = &n
	default:
		return Reply{Op: c.Op, Error: fmt.Sprintf("unknown op %q", c.Op)}
	}
	return rep
}

func (s *Server) HandleHealth(w http.ResponseWriter, r *http.Request) {
	snap := s.strip.Snapshot()
	h := Health{
		Refs:      s.strip.Refs(),
		Debug:     s.strip.Debug(),
		DataLine:  s.strip.DataLine(),
		ClockLine: s.strip.ClockLine(),
	}
	for i, l := range snap.Leds() {
		h.Leds = append(h.Leds, LedState{I: i, N: l.Intensity(), R: l.Red(), G: l.Green(), B: l.Blue()})
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(h)
}
