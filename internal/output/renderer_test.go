package output

import (
	"bufio"
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/atikulmunna/gdkit/internal/model"
)

func TestJSONRenderer(t *testing.T) {
	var buf bytes.Buffer
	renderer := NewJSONRenderer(&buf)

	renderer.Banner("Cleaning")
	renderer.Cleaned(model.CleanEvent{
		Timestamp: time.Date(2026, 2, 17, 12, 0, 0, 0, time.UTC),
		Path:      "scripts/player_controller.gd",
		Removed:   3,
	})
	renderer.Summary(3)

	sc := bufio.NewScanner(&buf)
	var lines []map[string]any
	for sc.Scan() {
		var got map[string]any
		if err := json.Unmarshal(sc.Bytes(), &got); err != nil {
			t.Fatalf("invalid JSON output: %v\nraw: %s", err, sc.Text())
		}
		lines = append(lines, got)
	}

	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}
	if lines[0]["event"] != "banner" || lines[0]["title"] != "Cleaning" {
		t.Errorf("unexpected banner line: %v", lines[0])
	}
	clean, ok := lines[1]["clean"].(map[string]any)
	if !ok {
		t.Fatalf("expected clean object, got %v", lines[1])
	}
	if clean["removed"].(float64) != 3 {
		t.Errorf("expected removed 3, got %v", clean["removed"])
	}
	if lines[2]["total"].(float64) != 3 {
		t.Errorf("expected total 3, got %v", lines[2]["total"])
	}
}

func TestTextRendererCleanLines(t *testing.T) {
	var buf bytes.Buffer
	r := NewTextRenderer(&buf)

	r.Banner("Cleaning debug prints")
	r.Processing("a.gd")
	r.Cleaned(model.CleanEvent{Path: "a.gd", Removed: 2})
	r.Cleaned(model.CleanEvent{Path: "b.gd"})
	r.Cleaned(model.CleanEvent{Path: "c.gd", Missing: true})
	r.Summary(2)

	out := buf.String()
	for _, want := range []string{
		"Cleaning debug prints",
		"Processing: ",
		"Removed 2 debug prints",
		"No prints to remove",
		"File not found: c.gd",
		"Total: Removed 2 debug print statements",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in output:\n%s", want, out)
		}
	}
}

func TestTextRendererPlaceholders(t *testing.T) {
	var buf bytes.Buffer
	r := NewTextRenderer(&buf)

	r.Created(model.ImageEvent{Path: "tank_commander_pilot.png", Name: "Tank Commander"})
	r.Done(7)

	out := buf.String()
	if !strings.Contains(out, "tank_commander_pilot.png") || !strings.Contains(out, "-> Tank Commander") {
		t.Errorf("missing created line:\n%s", out)
	}
	if !strings.Contains(out, "Created 7 placeholder portraits") {
		t.Errorf("missing summary:\n%s", out)
	}
}

func TestPublisherForwardsCleanEvents(t *testing.T) {
	ch := make(chan model.CleanEvent, 1)
	var buf bytes.Buffer
	m := Multi{NewTextRenderer(&buf), NewPublisher(ch)}

	m.Banner("ignored by publisher")
	m.Cleaned(model.CleanEvent{Path: "a.gd", Removed: 1})

	select {
	case ev := <-ch:
		if ev.Path != "a.gd" {
			t.Errorf("expected a.gd, got %s", ev.Path)
		}
	default:
		t.Fatal("expected event on channel")
	}
	if !strings.Contains(buf.String(), "Removed 1 debug prints") {
		t.Errorf("expected text renderer to receive event too")
	}
}

func TestNewPicksFormat(t *testing.T) {
	if _, ok := New("JSON", nil).(*JSONRenderer); !ok {
		t.Error("expected JSON renderer")
	}
	if _, ok := New("text", nil).(*TextRenderer); !ok {
		t.Error("expected text renderer")
	}
}
