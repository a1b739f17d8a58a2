package cleaner

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/atikulmunna/gdkit/internal/filter"
	"github.com/atikulmunna/gdkit/internal/model"
	"github.com/atikulmunna/gdkit/internal/report"
)

const bannerTitle = "Cleaning debug prints from Space Shooter scripts"

// Reporter receives progress for a cleaning batch.
type Reporter interface {
	Banner(title string)
	Processing(path string)
	Cleaned(ev model.CleanEvent)
	Summary(total int)
}

// Hinter annotates a removed line with the remove pattern it resembles.
type Hinter interface {
	Hint(line string) (string, bool)
}

// Config describes one cleaning batch.
type Config struct {
	BaseDir string   // directory the target entries are relative to
	Files   []string // target entries, plain paths or doublestar globs
	DryRun  bool     // classify and report without rewriting files
}

// Cleaner strips debug print lines from a list of script files.
type Cleaner struct {
	cfg        Config
	classifier filter.Classifier
	reporter   Reporter
	log        *slog.Logger
}

// New creates a Cleaner. A nil logger discards diagnostics.
func New(cfg Config, c filter.Classifier, r Reporter, log *slog.Logger) *Cleaner {
	if log == nil {
		log = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	return &Cleaner{
		cfg:        cfg,
		classifier: c,
		reporter:   r,
		log:        log,
	}
}

// Targets returns the resolved target paths in configured order.
func (c *Cleaner) Targets() ([]string, error) {
	return ResolveTargets(c.cfg.BaseDir, c.cfg.Files)
}

// Run cleans every target in order. Missing targets are reported and
// skipped; any other I/O error stops the batch. Files handled before the
// failure keep their changes.
func (c *Cleaner) Run(ctx context.Context) (*report.Report, error) {
	rep := report.New()

	targets, err := c.Targets()
	if err != nil {
		return rep, err
	}

	c.reporter.Banner(bannerTitle)
	for _, path := range targets {
		if err := ctx.Err(); err != nil {
			return rep, err
		}

		ev, err := c.CleanFile(path)
		if err != nil {
			return rep, err
		}
		rep.Record(ev)
	}
	c.reporter.Summary(rep.Total())

	c.log.Info("clean.finished", "files", len(targets), "removed", rep.Total(), "dry_run", c.cfg.DryRun)
	return rep, nil
}

// CleanFile cleans a single file and reports the outcome.
func (c *Cleaner) CleanFile(path string) (model.CleanEvent, error) {
	ev := model.CleanEvent{Timestamp: time.Now(), Path: path, DryRun: c.cfg.DryRun}

	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		ev.Missing = true
		c.log.Info("clean.missing", "path", path)
		c.reporter.Cleaned(ev)
		return ev, nil
	}
	if err != nil {
		return ev, &model.OpError{Op: "stat", Path: path, Err: err}
	}

	c.reporter.Processing(path)

	raw, err := os.ReadFile(path)
	if err != nil {
		return ev, &model.OpError{Op: "read", Path: path, Err: err}
	}

	kept, removed := filter.FilterLines(c.classifier, filter.SplitLines(string(raw)))
	ev.Removed = len(removed)
	c.logRemoved(path, removed)

	if ev.Removed > 0 && !c.cfg.DryRun {
		out := strings.Join(kept, "")
		if err := writeFileAtomic(path, []byte(out), info.Mode().Perm()); err != nil {
			return ev, &model.OpError{Op: "write", Path: path, Err: err}
		}
	}

	c.reporter.Cleaned(ev)
	return ev, nil
}

func (c *Cleaner) logRemoved(path string, lines []string) {
	if !c.log.Enabled(context.Background(), slog.LevelDebug) {
		return
	}
	h, _ := c.classifier.(Hinter)
	for _, line := range lines {
		attrs := []any{"path", path, "line", strings.TrimRight(line, "\r\n")}
		if h != nil {
			if hint, ok := h.Hint(line); ok {
				attrs = append(attrs, "hint", hint)
			}
		}
		c.log.Debug("clean.removed", attrs...)
	}
}
