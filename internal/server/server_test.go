package server

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"

	"github.com/atikulmunna/gdkit/internal/hub"
	"github.com/atikulmunna/gdkit/internal/model"
	"github.com/atikulmunna/gdkit/internal/pngenc"
	"github.com/atikulmunna/gdkit/internal/report"
)

var quiet = slog.New(slog.NewTextHandler(io.Discard, nil))

func get(t *testing.T, h http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestPilotsEndpoint(t *testing.T) {
	s := New(Options{Log: quiet}, "0")

	rec := get(t, s.Handler(), "/api/pilots")
	require.Equal(t, http.StatusOK, rec.Code)

	var pilots []model.ColorSpec
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &pilots))
	require.Len(t, pilots, 7)
	require.Equal(t, "tank_commander_pilot.png", pilots[0].File)
}

func TestPortraitEndpoint(t *testing.T) {
	s := New(Options{Log: quiet, Size: 16}, "0")

	rec := get(t, s.Handler(), "/pilots/scavenger_pilot.png")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "image/png", rec.Header().Get("Content-Type"))

	img, err := pngenc.Decode(rec.Body.Bytes())
	require.NoError(t, err)
	require.Equal(t, uint32(16), img.Header.Width)
	r, g, b, ok := img.Solid()
	require.True(t, ok)
	require.Equal(t, [3]uint8{150, 200, 100}, [3]uint8{r, g, b})
}

func TestPortraitSizeQuery(t *testing.T) {
	s := New(Options{Log: quiet}, "0")

	rec := get(t, s.Handler(), "/pilots/berserker_pilot.png?size=4")
	require.Equal(t, http.StatusOK, rec.Code)
	img, err := pngenc.Decode(rec.Body.Bytes())
	require.NoError(t, err)
	require.Equal(t, uint32(4), img.Header.Height)

	for _, bad := range []string{"0", "abc", "5000"} {
		rec := get(t, s.Handler(), "/pilots/berserker_pilot.png?size="+bad)
		require.Equal(t, http.StatusBadRequest, rec.Code, "size=%s", bad)
	}
}

func TestPortraitUnknownPilot(t *testing.T) {
	s := New(Options{Log: quiet}, "0")
	rec := get(t, s.Handler(), "/pilots/nobody.png")
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestIndexAndHealth(t *testing.T) {
	s := New(Options{Log: quiet}, "0")

	rec := get(t, s.Handler(), "/")
	require.Equal(t, http.StatusOK, rec.Code)
	require.True(t, strings.Contains(rec.Body.String(), "Pilot portraits"))

	rec = get(t, s.Handler(), "/healthz")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `"status":"ok"`)
}

func TestReportEndpointOnlyWhenConfigured(t *testing.T) {
	rec := get(t, New(Options{Log: quiet}, "0").Handler(), "/api/report")
	require.Equal(t, http.StatusNotFound, rec.Code)

	rep := report.New()
	rep.Record(model.CleanEvent{Path: "a.gd", Removed: 2})
	rec = get(t, New(Options{Log: quiet, Report: rep}, "0").Handler(), "/api/report")
	require.Equal(t, http.StatusOK, rec.Code)

	var stats report.Stats
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &stats))
	require.Equal(t, 2, stats.Total)
}

func TestWebSocketStreamsCleanEvents(t *testing.T) {
	input := make(chan model.CleanEvent, 1)
	h := hub.New(input, quiet)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go h.Start(ctx)

	s := New(Options{Log: quiet, Hub: h}, "0")
	ts := httptest.NewServer(s.Handler())
	defer ts.Close()

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	// Wait for the handler to subscribe before publishing.
	require.Eventually(t, func() bool { return h.Subscribers() == 1 }, 3*time.Second, 20*time.Millisecond)
	input <- model.CleanEvent{Path: "wave_manager.gd", Removed: 5}

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(3*time.Second)))
	var msg wsMessage
	require.NoError(t, conn.ReadJSON(&msg))
	require.Equal(t, "wave_manager.gd", msg.Path)
	require.Equal(t, 5, msg.Removed)
}
