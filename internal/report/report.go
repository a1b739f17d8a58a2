package report

import (
	"context"
	"sync"
	"time"

	"github.com/atikulmunna/gdkit/internal/model"
)

// FileCount is the removal count recorded for one target file.
type FileCount struct {
	Path    string `json:"path"`
	Removed int    `json:"removed"`
	Missing bool   `json:"missing,omitempty"`
}

// Stats holds a point-in-time snapshot of a cleaning run.
type Stats struct {
	Uptime  string      `json:"uptime"`
	Files   []FileCount `json:"files"`
	Total   int         `json:"total"`
	Cleaned int         `json:"cleaned"` // files with at least one removal
	Missing int         `json:"missing"`
	Passes  int         `json:"passes"` // events recorded, including re-cleans in watch mode
}

// Report accumulates per-file and total removal counts. It is safe for
// concurrent use so the preview server can read it while a watch loop records.
type Report struct {
	mu        sync.RWMutex
	startTime time.Time
	order     []string
	files     map[string]*FileCount
	total     int
	passes    int
}

// New creates an empty Report.
func New() *Report {
	return &Report{
		startTime: time.Now(),
		files:     make(map[string]*FileCount),
	}
}

// Record adds a clean event. Repeated events for the same path accumulate.
func (r *Report) Record(ev model.CleanEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()

	fc, ok := r.files[ev.Path]
	if !ok {
		fc = &FileCount{Path: ev.Path}
		r.files[ev.Path] = fc
		r.order = append(r.order, ev.Path)
	}
	fc.Removed += ev.Removed
	fc.Missing = ev.Missing
	r.total += ev.Removed
	r.passes++
}

// Total returns the number of lines removed so far.
func (r *Report) Total() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.total
}

// Snapshot returns the current counts in first-seen order.
func (r *Report) Snapshot() Stats {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s := Stats{
		Uptime: time.Since(r.startTime).Truncate(time.Second).String(),
		Files:  make([]FileCount, 0, len(r.order)),
		Total:  r.total,
		Passes: r.passes,
	}
	for _, p := range r.order {
		fc := *r.files[p]
		s.Files = append(s.Files, fc)
		switch {
		case fc.Missing:
			s.Missing++
		case fc.Removed > 0:
			s.Cleaned++
		}
	}
	return s
}

// Start records events from a hub subscription. Blocks until the context is
// cancelled or the channel is closed.
func (r *Report) Start(ctx context.Context, events <-chan model.CleanEvent) {
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-events:
			if !ok {
				return
			}
			r.Record(ev)
		}
	}
}
