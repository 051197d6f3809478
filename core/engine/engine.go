// Package engine wires the lexicon, script converter, segmenter,
// annotator, and layout planner into the single facade the app layers
// consume. An Engine is built once from a loaded lexicon and is safe
// for unsynchronized concurrent reads afterwards; every operation is a
// pure function of its inputs plus that shared immutable state.
package engine

import (
	"sync"

	"github.com/pinlyric/pinlyric/core/annotate"
	"github.com/pinlyric/pinlyric/core/layout"
	"github.com/pinlyric/pinlyric/core/lexicon"
	"github.com/pinlyric/pinlyric/core/script"
	"github.com/pinlyric/pinlyric/core/segment"
)

// Engine is the annotation core. The zero value is unusable; construct
// with New.
type Engine struct {
	lex      *lexicon.Lexicon
	measurer layout.Measurer
	phonetic annotate.PhoneticFunc

	buildOnce sync.Once
	table     *script.Table
	seg       *segment.Segmenter
	ann       *annotate.Annotator
}

// Option configures an Engine.
type Option func(*Engine)

// WithMeasurer supplies the text-measurement capability used by
// ComputeWrapPlan. Without one, every wrap plan is empty (single row).
func WithMeasurer(m layout.Measurer) Option {
	return func(e *Engine) { e.measurer = m }
}

// WithPhonetic overrides the per-character phonetic primitive. The
// default derives syllables from single-character lexicon entries.
func WithPhonetic(fn annotate.PhoneticFunc) Option {
	return func(e *Engine) { e.phonetic = fn }
}

// New returns an Engine over lex. Tables are built lazily on first use;
// call Build eagerly to pay the cost at startup instead.
func New(lex *lexicon.Lexicon, opts ...Option) *Engine {
	e := &Engine{lex: lex}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Build constructs the conversion and segmentation tables. It is
// idempotent; concurrent and repeated calls build exactly once.
func (e *Engine) Build() {
	e.buildOnce.Do(func() {
		e.table = script.Build(e.lex)
		e.seg = segment.New(e.lex)
		phonetic := e.phonetic
		if phonetic == nil {
			phonetic = annotate.PhoneticFromLexicon(e.lex)
		}
		e.ann = annotate.New(e.seg, phonetic)
	})
}

// Lexicon returns the engine's lexicon.
func (e *Engine) Lexicon() *lexicon.Lexicon {
	return e.lex
}

// SegmentAndAnnotate returns one annotation unit per character of line.
func (e *Engine) SegmentAndAnnotate(line string) []string {
	e.Build()
	return e.ann.Annotate(line)
}

// FindWordAt resolves the character at offset to its containing
// dictionary word. A miss is a normal outcome, not an error.
func (e *Engine) FindWordAt(line string, offset int) (segment.Match, bool) {
	e.Build()
	return e.seg.FindWordAt(line, offset)
}

// ToSimplified converts text to simplified script.
func (e *Engine) ToSimplified(text string) string {
	e.Build()
	return e.table.ToSimplified(text)
}

// ToTraditional converts text to traditional script.
func (e *Engine) ToTraditional(text string) string {
	e.Build()
	return e.table.ToTraditional(text)
}

// ComputeWrapPlan returns the shared row boundaries for glyphs and its
// annotation stream at maxWidth. Misaligned input or a missing
// measurer yields an empty plan, rendering as one unbroken row.
func (e *Engine) ComputeWrapPlan(glyphs string, annotations []string, maxWidth float64) layout.Plan {
	e.Build()
	return layout.Compute(glyphs, annotations, maxWidth, e.measurer)
}

// WrapRows applies ComputeWrapPlan and splits both streams into paired
// rows, a convenience for callers that render row by row.
func (e *Engine) WrapRows(glyphs string, annotations []string, maxWidth float64) []layout.Row {
	plan := e.ComputeWrapPlan(glyphs, annotations, maxWidth)
	return layout.Split(glyphs, annotations, plan)
}
