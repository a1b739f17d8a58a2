package placeholder

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/atikulmunna/gdkit/internal/model"
	"github.com/atikulmunna/gdkit/internal/pngenc"
)

// DefaultSize is the edge length of a pilot portrait in pixels.
const DefaultSize = 256

// DefaultPilots are the pilot archetype portraits, coloured by role.
var DefaultPilots = []model.ColorSpec{
	{File: "tank_commander_pilot.png", Name: "Tank Commander", R: 128, G: 128, B: 200}, // blue, tank
	{File: "speed_demon_pilot.png", Name: "Speed Demon", R: 255, G: 255, B: 100},       // yellow, speed
	{File: "engineer_pilot.png", Name: "Engineer", R: 150, G: 150, B: 150},             // gray, support
	{File: "dual_wielder_pilot.png", Name: "Dual Wielder", R: 200, G: 100, B: 100},     // red, dps
	{File: "combo_master_pilot.png", Name: "Combo Master", R: 255, G: 150, B: 50},      // orange, dps
	{File: "scavenger_pilot.png", Name: "Scavenger", R: 150, G: 200, B: 100},           // green, support
	{File: "berserker_pilot.png", Name: "Berserker", R: 200, G: 50, B: 200},            // magenta, dps
}

// Reporter receives progress for a generation batch.
type Reporter interface {
	Created(ev model.ImageEvent)
	Done(count int)
}

// Config describes one generation batch.
type Config struct {
	OutDir string
	Size   int
	Pilots []model.ColorSpec
}

// Generator writes solid-colour placeholder portraits.
type Generator struct {
	cfg      Config
	reporter Reporter
	log      *slog.Logger
}

// New creates a Generator. Zero values in cfg fall back to the working
// directory, DefaultSize and DefaultPilots.
func New(cfg Config, r Reporter, log *slog.Logger) *Generator {
	if cfg.OutDir == "" {
		cfg.OutDir = "."
	}
	if cfg.Size == 0 {
		cfg.Size = DefaultSize
	}
	if cfg.Pilots == nil {
		cfg.Pilots = DefaultPilots
	}
	if log == nil {
		log = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	return &Generator{cfg: cfg, reporter: r, log: log}
}

// Generate encodes and writes every configured portrait, overwriting
// existing files. The first failure stops the batch and is returned along
// with the paths already written.
func (g *Generator) Generate(ctx context.Context) ([]string, error) {
	if err := os.MkdirAll(g.cfg.OutDir, 0o755); err != nil {
		return nil, &model.OpError{Op: "mkdir", Path: g.cfg.OutDir, Err: err}
	}

	var written []string
	for _, spec := range g.cfg.Pilots {
		if err := ctx.Err(); err != nil {
			return written, err
		}

		data, err := pngenc.EncodeSolidColorImage(g.cfg.Size, g.cfg.Size, spec.R, spec.G, spec.B)
		if err != nil {
			return written, fmt.Errorf("encode %s: %w", spec.File, err)
		}

		path := filepath.Join(g.cfg.OutDir, spec.File)
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return written, &model.OpError{Op: "write", Path: path, Err: err}
		}
		written = append(written, path)

		g.log.Debug("placeholder.written", "path", path, "bytes", len(data))
		g.reporter.Created(model.ImageEvent{
			Timestamp: time.Now(),
			Path:      path,
			Name:      spec.Name,
			Width:     g.cfg.Size,
			Height:    g.cfg.Size,
			Bytes:     len(data),
		})
	}

	g.reporter.Done(len(written))
	g.log.Info("placeholder.finished", "dir", g.cfg.OutDir, "count", len(written))
	return written, nil
}

// Lookup finds a pilot by output file name.
func Lookup(pilots []model.ColorSpec, file string) (model.ColorSpec, bool) {
	for _, p := range pilots {
		if p.File == file {
			return p, true
		}
	}
	return model.ColorSpec{}, false
}
