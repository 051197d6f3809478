// Package layout computes shared wrap points for a glyph string and its
// positionally-aligned annotation stream, so that character i stays
// vertically paired with annotation unit i no matter how many rows the
// line wraps into.
package layout

import "strings"

// Style selects which font metrics a measurement uses. Glyphs and
// annotations render in different fonts and sizes, so they measure
// differently for the same width budget.
type Style string

const (
	// StyleGlyph measures the main lyric text.
	StyleGlyph Style = "glyph"
	// StyleAnnotation measures the phonetic annotation text.
	StyleAnnotation Style = "annotation"
)

// Measurer is the external text-measurement capability, normally backed
// by the rendering layer's layout engine.
type Measurer interface {
	// LineBreak returns the character offset into text at which the
	// first rendered row ends when laid out at maxWidth. It must
	// return at least 1 for non-empty text.
	LineBreak(text string, style Style, maxWidth float64) int

	// Rows returns the number of rendered rows text occupies at
	// maxWidth.
	Rows(text string, style Style, maxWidth float64) int
}

// Safety factors shave the width budget slightly so that rounding at
// the exact boundary cannot push a measured-as-fitting row over the
// edge when rendered. Annotations get a larger margin because their
// joined string is measured in a different font than it renders in.
const (
	glyphSafety      = 0.98
	annotationSafety = 0.95
)

// Plan is an ordered sequence of character offsets marking row
// boundaries in both streams. Empty means a single unwrapped row.
type Plan []int

// Compute returns the wrap plan for glyphs and its annotation stream at
// maxWidth. If the annotation stream's length does not match the glyph
// count, an empty plan is returned and the caller renders everything as
// one unbroken row; a misaligned pair is degraded, never an error.
func Compute(glyphs string, annotations []string, maxWidth float64, m Measurer) Plan {
	runes := []rune(glyphs)
	n := len(runes)
	if n == 0 || len(annotations) != n || m == nil {
		return nil
	}

	var plan Plan
	offset := 0
	for {
		end := offset + m.LineBreak(string(runes[offset:]), StyleGlyph, maxWidth*glyphSafety)
		if end <= offset {
			end = offset + 1
		}
		if end > n {
			end = n
		}

		// The glyph row fits; now make sure its annotation row does
		// too, shrinking to the longest prefix that fits.
		if !annotationFits(annotations[offset:end], maxWidth, m) {
			fit := 0
			for trial := end - offset - 1; trial >= 1; trial-- {
				if annotationFits(annotations[offset:offset+trial], maxWidth, m) {
					fit = trial
					break
				}
			}
			if fit == 0 {
				// Even one glyph's annotation overflows; force
				// one-character progress so the loop terminates.
				fit = 1
			}
			end = offset + fit
		}

		if end >= n {
			return plan
		}
		plan = append(plan, end)
		offset = end
	}
}

func annotationFits(units []string, maxWidth float64, m Measurer) bool {
	text := JoinUnits(units)
	if text == "" {
		return true
	}
	return m.Rows(text, StyleAnnotation, maxWidth*annotationSafety) <= 1
}

// JoinUnits renders an annotation slice the way it is measured and
// displayed: syllables separated by single spaces, empty units
// (whitespace positions) collapsing into the separator.
func JoinUnits(units []string) string {
	parts := make([]string, 0, len(units))
	for _, u := range units {
		if u != "" {
			parts = append(parts, u)
		}
	}
	return strings.Join(parts, " ")
}

// Row is one rendered row of a wrapped line: the glyph slice and its
// aligned annotation units, with the half-open character range they
// cover.
type Row struct {
	Glyphs      string
	Annotations []string
	Start       int
	End         int
}

// Split applies a wrap plan to both streams, returning the paired rows.
// Concatenating the glyph slices reconstructs glyphs exactly.
func Split(glyphs string, annotations []string, plan Plan) []Row {
	runes := []rune(glyphs)
	n := len(runes)
	rows := make([]Row, 0, len(plan)+1)
	prev := 0
	boundaries := append(append([]int{}, plan...), n)
	for _, next := range boundaries {
		if next < prev {
			next = prev
		}
		if next > n {
			next = n
		}
		var units []string
		if len(annotations) == n {
			units = annotations[prev:next]
		}
		rows = append(rows, Row{
			Glyphs:      string(runes[prev:next]),
			Annotations: units,
			Start:       prev,
			End:         next,
		})
		prev = next
	}
	return rows
}
