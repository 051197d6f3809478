// Package annotate turns a lyric line into its per-character phonetic
// annotation stream. The output always has exactly one unit per input
// character; the layout engine depends on that 1:1 pairing.
package annotate

import (
	"strings"

	"github.com/pinlyric/pinlyric/core/lexicon"
	"github.com/pinlyric/pinlyric/core/segment"
)

// PhoneticFunc converts a single character to its phonetic rendering.
// Implementations must return fallback for characters they cannot
// classify; the annotator always passes the character itself as the
// fallback, so passthrough is guaranteed regardless of the
// implementation's own default policy.
type PhoneticFunc func(ch rune, fallback string) string

// Annotator produces annotation-unit sequences from segmented lines.
// It is safe for concurrent use.
type Annotator struct {
	seg      *segment.Segmenter
	phonetic PhoneticFunc
}

// New returns an Annotator over seg. If phonetic is nil, every
// unmatched character annotates as itself.
func New(seg *segment.Segmenter, phonetic PhoneticFunc) *Annotator {
	if phonetic == nil {
		phonetic = func(_ rune, fallback string) string { return fallback }
	}
	return &Annotator{seg: seg, phonetic: phonetic}
}

// Annotate returns one annotation unit per character of line:
// the empty string for whitespace, the character itself for
// punctuation, and a phonetic syllable otherwise. Annotating the same
// line twice yields identical output.
func (a *Annotator) Annotate(line string) []string {
	runes := []rune(line)
	units := make([]string, 0, len(runes))
	for _, span := range a.seg.Segment(line) {
		switch span.Kind {
		case segment.SpanSpace:
			units = append(units, "")
		case segment.SpanPunct:
			units = append(units, string(runes[span.Start]))
		case segment.SpanWord:
			units = append(units, a.wordUnits(runes[span.Start:span.End], span.Entry)...)
		default:
			ch := runes[span.Start]
			units = append(units, a.phonetic(ch, string(ch)))
		}
	}
	return units
}

// wordUnits annotates each character of a matched word. When the
// entry's pinyin has one syllable per character, syllables are assigned
// positionally; otherwise each character is resolved on its own.
func (a *Annotator) wordUnits(word []rune, entry *lexicon.Entry) []string {
	units := make([]string, 0, len(word))
	if entry != nil {
		syllables := strings.Fields(entry.Pinyin)
		if len(syllables) == len(word) {
			for _, syl := range syllables {
				units = append(units, MarkSyllable(syl))
			}
			return units
		}
	}
	for _, ch := range word {
		units = append(units, a.phonetic(ch, string(ch)))
	}
	return units
}

// PhoneticFromLexicon builds the default per-character phonetic
// primitive from single-character lexicon entries, with tone
// diacritics. Characters absent from the lexicon resolve to the
// supplied fallback.
func PhoneticFromLexicon(lex *lexicon.Lexicon) PhoneticFunc {
	return func(ch rune, fallback string) string {
		key := string(ch)
		e, ok := lex.LookupExact(key)
		if !ok {
			e, ok = lex.ScanByForm(key)
		}
		if !ok || e.Pinyin == "" {
			return fallback
		}
		syllables := strings.Fields(e.Pinyin)
		if len(syllables) == 0 {
			return fallback
		}
		return MarkSyllable(syllables[0])
	}
}
