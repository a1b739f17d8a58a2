package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/atikulmunna/gdkit/internal/model"
)

// Renderer writes batch progress to an output stream. It satisfies both the
// cleaner and the placeholder reporter interfaces.
type Renderer interface {
	Banner(title string)
	Processing(path string)
	Cleaned(ev model.CleanEvent)
	Summary(total int)
	Created(ev model.ImageEvent)
	Done(count int)
}

// ---------------------------------------------------------------------------
// Text Renderer (styled terminal output)
// ---------------------------------------------------------------------------

const ruleWidth = 60

var (
	styleRule    = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	styleTitle   = lipgloss.NewStyle().Bold(true)
	stylePath    = lipgloss.NewStyle().Foreground(lipgloss.Color("39")) // cyan
	styleRemoved = lipgloss.NewStyle().Foreground(lipgloss.Color("42")) // green
	styleNone    = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Faint(true)
	styleMissing = lipgloss.NewStyle().Foreground(lipgloss.Color("220")) // yellow
	styleTotal   = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true)
)

// TextRenderer prints progress as styled lines.
type TextRenderer struct {
	w io.Writer
}

// NewTextRenderer returns a Renderer that writes styled text to w, or to
// stdout when w is nil.
func NewTextRenderer(w io.Writer) *TextRenderer {
	if w == nil {
		w = os.Stdout
	}
	return &TextRenderer{w: w}
}

func (r *TextRenderer) rule() {
	fmt.Fprintln(r.w, styleRule.Render(strings.Repeat("=", ruleWidth)))
}

func (r *TextRenderer) Banner(title string) {
	r.rule()
	fmt.Fprintln(r.w, styleTitle.Render(title))
	r.rule()
}

func (r *TextRenderer) Processing(path string) {
	fmt.Fprintf(r.w, "Processing: %s\n", stylePath.Render(path))
}

func (r *TextRenderer) Cleaned(ev model.CleanEvent) {
	switch {
	case ev.Missing:
		fmt.Fprintln(r.w, styleMissing.Render("File not found: "+ev.Path))
	case ev.Removed == 0:
		fmt.Fprintln(r.w, styleNone.Render("  - No prints to remove"))
	case ev.DryRun:
		fmt.Fprintln(r.w, styleRemoved.Render(fmt.Sprintf("  ✓ Would remove %d debug prints", ev.Removed)))
	default:
		fmt.Fprintln(r.w, styleRemoved.Render(fmt.Sprintf("  ✓ Removed %d debug prints", ev.Removed)))
	}
}

func (r *TextRenderer) Summary(total int) {
	r.rule()
	fmt.Fprintln(r.w, styleTotal.Render(fmt.Sprintf("✓ Total: Removed %d debug print statements", total)))
	r.rule()
}

func (r *TextRenderer) Created(ev model.ImageEvent) {
	fmt.Fprintf(r.w, "Created: %s\n", stylePath.Render(ev.Path))
	fmt.Fprintf(r.w, "  -> %s\n", ev.Name)
}

func (r *TextRenderer) Done(count int) {
	fmt.Fprintln(r.w)
	fmt.Fprintln(r.w, styleTotal.Render(fmt.Sprintf("Done! Created %d placeholder portraits.", count)))
	fmt.Fprintln(r.w, "These can be replaced with actual artwork later.")
}

// ---------------------------------------------------------------------------
// JSON Renderer (structured output for piping)
// ---------------------------------------------------------------------------

// JSONRenderer prints each event as a single JSON object per line.
type JSONRenderer struct {
	enc *json.Encoder
}

// NewJSONRenderer returns a Renderer that writes JSON lines to w, or to
// stdout when w is nil.
func NewJSONRenderer(w io.Writer) *JSONRenderer {
	if w == nil {
		w = os.Stdout
	}
	return &JSONRenderer{enc: json.NewEncoder(w)}
}

type jsonLine struct {
	Event string            `json:"event"`
	Title string            `json:"title,omitempty"`
	Path  string            `json:"path,omitempty"`
	Total *int              `json:"total,omitempty"`
	Clean *model.CleanEvent `json:"clean,omitempty"`
	Image *model.ImageEvent `json:"image,omitempty"`
}

func (r *JSONRenderer) emit(l jsonLine) {
	_ = r.enc.Encode(l)
}

func (r *JSONRenderer) Banner(title string)    { r.emit(jsonLine{Event: "banner", Title: title}) }
func (r *JSONRenderer) Processing(path string) { r.emit(jsonLine{Event: "processing", Path: path}) }
func (r *JSONRenderer) Cleaned(ev model.CleanEvent) {
	r.emit(jsonLine{Event: "cleaned", Path: ev.Path, Clean: &ev})
}
func (r *JSONRenderer) Summary(total int) { r.emit(jsonLine{Event: "summary", Total: &total}) }
func (r *JSONRenderer) Created(ev model.ImageEvent) {
	r.emit(jsonLine{Event: "created", Path: ev.Path, Image: &ev})
}
func (r *JSONRenderer) Done(count int) { r.emit(jsonLine{Event: "done", Total: &count}) }

// ---------------------------------------------------------------------------
// Composition
// ---------------------------------------------------------------------------

// Discard drops all output. Used for silent runs.
type Discard struct{}

func (Discard) Banner(string)            {}
func (Discard) Processing(string)        {}
func (Discard) Cleaned(model.CleanEvent) {}
func (Discard) Summary(int)              {}
func (Discard) Created(model.ImageEvent) {}
func (Discard) Done(int)                 {}

// Multi fans every call out to each renderer in order.
type Multi []Renderer

func (m Multi) Banner(title string) {
	for _, r := range m {
		r.Banner(title)
	}
}

func (m Multi) Processing(path string) {
	for _, r := range m {
		r.Processing(path)
	}
}

func (m Multi) Cleaned(ev model.CleanEvent) {
	for _, r := range m {
		r.Cleaned(ev)
	}
}

func (m Multi) Summary(total int) {
	for _, r := range m {
		r.Summary(total)
	}
}

func (m Multi) Created(ev model.ImageEvent) {
	for _, r := range m {
		r.Created(ev)
	}
}

func (m Multi) Done(count int) {
	for _, r := range m {
		r.Done(count)
	}
}

// Publisher forwards clean events to a channel, typically a hub input, and
// ignores everything else. Sends block when the channel is full.
type Publisher struct {
	Discard
	ch chan<- model.CleanEvent
}

// NewPublisher returns a Renderer that sends clean events to ch.
func NewPublisher(ch chan<- model.CleanEvent) *Publisher {
	return &Publisher{ch: ch}
}

func (p *Publisher) Cleaned(ev model.CleanEvent) {
	p.ch <- ev
}

// New picks a renderer by format name: "json" or anything else for text.
func New(format string, w io.Writer) Renderer {
	switch strings.ToLower(format) {
	case "json":
		return NewJSONRenderer(w)
	default:
		return NewTextRenderer(w)
	}
}
