package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coreman2200/funtimes-blinkt/apa102"
	"github.com/coreman2200/funtimes-blinkt/blinkt"
	"github.com/coreman2200/funtimes-blinkt/model"
)

type sink struct {
	mu     sync.Mutex
	frames [][]byte
}

func (s *sink) Write(frame []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.frames = append(s.frames, append([]byte{}, frame...))
	return nil
}

func (s *sink) Close() error { return nil }

func (s *sink) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.frames)
}

func (s *sink) last() []byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.frames[len(s.frames)-1]
}

func fptr(v float64) *float64 { return &v }

func dial(t *testing.T, ts *httptest.Server) *websocket.Conn {
	t.Helper()
	u := "ws" + strings.TrimPrefix(ts.URL, "http") + "/control"
	c, _, err := websocket.DefaultDialer.Dial(u, nil)
	require.NoError(t, err)
	return c
}

func send(t *testing.T, c *websocket.Conn, cmd any) Reply {
	t.Helper()
	require.NoError(t, c.WriteJSON(cmd))
	var rep Reply
	require.NoError(t, c.ReadJSON(&rep))
	return rep
}

func eventually(t *testing.T, cond func() bool) {
	t.Helper()
	assert.Eventually(t, cond, time.Second, 5*time.Millisecond)
}

func TestApply(t *testing.T) {
	out := &sink{}
	st := blinkt.New(out)
	s := New(st)

	assert.True(t, s.Apply(Command{Op: "set_all", Red: 255, Intensity: fptr(1)}).OK)
	assert.True(t, s.Apply(Command{Op: "set_led", Index: 7, Blue: 0x1ff}).OK)
	assert.True(t, s.Apply(Command{Op: "set_led", Index: 8, Green: 9}).OK)
	assert.True(t, s.Apply(Command{Op: "set_intensity", Index: 1, Intensity: fptr(0.5)}).OK)
	assert.True(t, s.Apply(Command{Op: "set_intensity", Index: 2}).OK)
	assert.True(t, s.Apply(Command{Op: "refresh"}).OK)

	leds, err := apa102.Decode(out.last())
	require.NoError(t, err)
	assert.Equal(t, model.NewLed(255, 0, 0, 31), leds[0])
	assert.Equal(t, model.NewLed(255, 0, 0, 15), leds[1])
	assert.Equal(t, model.NewLed(255, 0, 0, 31), leds[2])
	assert.Equal(t, model.NewLed(0, 0, 0xff, 31), leds[7])

	rep := s.Apply(Command{Op: "set_intensity_all", Intensity: fptr(-1)})
	assert.True(t, rep.OK)

	rep = s.Apply(Command{Op: "enable_debug", Enable: false})
	require.NotNil(t, rep.Prev)
	assert.False(t, *rep.Prev)

	rep = s.Apply(Command{Op: "enable_reset_on_release", Enable: false})
	require.NotNil(t, rep.Prev)
	assert.True(t, *rep.Prev)

	rep = s.Apply(Command{Op: "get_data_line"})
	require.NotNil(t, rep.Line)
	assert.Equal(t, 23, *rep.Line)
	rep = s.Apply(Command{Op: "get_clock_line"})
	require.NotNil(t, rep.Line)
	assert.Equal(t, 24, *rep.Line)

	assert.True(t, s.Apply(Command{Op: "delay", Millis: 1}).OK)
	assert.True(t, s.Apply(Command{Op: "reset"}).OK)
	snap := st.Snapshot()
	assert.Equal(t, model.FrameBuffer{}, snap)

	rep = s.Apply(Command{Op: "explode"})
	assert.False(t, rep.OK)
	assert.Contains(t, rep.Error, "explode")
}

func TestControlClientsHoldReferences(t *testing.T) {
	out := &sink{}
	st := blinkt.New(out)
	ts := httptest.NewServer(New(st).Handler())
	defer ts.Close()

	a := dial(t, ts)
	b := dial(t, ts)
	eventually(t, func() bool { return st.Refs() == 2 })

	rep := send(t, a, Command{Op: "set_all", Red: 10, Green: 20, Blue: 30, Intensity: fptr(1)})
	assert.True(t, rep.OK)
	rep = send(t, b, Command{Op: "refresh"})
	assert.True(t, rep.OK)
	require.Equal(t, 1, out.count())

	require.NoError(t, a.Close())
	eventually(t, func() bool { return st.Refs() == 1 })
	assert.Equal(t, 1, out.count())

	require.NoError(t, b.Close())
	eventually(t, func() bool { return st.Refs() == 0 })
	eventually(t, func() bool { return out.count() == 2 })
	assert.Equal(t, apa102.Encode(&model.FrameBuffer{}), out.last())
}

func TestControlBadMessage(t *testing.T) {
	st := blinkt.New(&sink{})
	ts := httptest.NewServer(New(st).Handler())
	defer ts.Close()

	c := dial(t, ts)
	defer c.Close()
	require.NoError(t, c.WriteMessage(websocket.TextMessage, []byte("{nope")))
	var rep Reply
	require.NoError(t, c.ReadJSON(&rep))
	assert.False(t, rep.OK)
	assert.Contains(t, rep.Error, "bad command")

	// the connection stays usable
	rep = send(t, c, Command{Op: "get_clock_line"})
	assert.True(t, rep.OK)
}

func TestHealth(t *testing.T) {
	st := blinkt.New(&sink{})
	st.SetLED(3, 1, 2, 3, model.Intensity(1))
	st.Acquire()
	ts := httptest.NewServer(New(st).Handler())
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var h Health
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&h))
	assert.Equal(t, 1, h.Refs)
	assert.Equal(t, 23, h.DataLine)
	assert.Equal(t, 24, h.ClockLine)
	require.Len(t, h.Leds, model.NumLEDs)
	assert.Equal(t, LedState{I: 3, N: 31, R: 1, G: 2, B: 3}, h.Leds[3])
}
