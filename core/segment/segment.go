// Package segment implements greedy longest-match word segmentation
// over the lexicon. It backs both annotation (left-to-right token
// stream) and tap-to-translate (resolving a character offset to its
// containing word).
package segment

import (
	"unicode"

	"github.com/pinlyric/pinlyric/core/lexicon"
)

// MaxMatchLen is the longest window, in characters, ever tried against
// the lexicon. This is a compatibility constant, not derived from the
// lexicon: entries longer than 4 characters are never matched as a
// whole unit.
const MaxMatchLen = 4

// Match is a dictionary hit over a half-open character range of the
// display string. Offsets are character positions, not byte offsets.
type Match struct {
	Entry *lexicon.Entry
	Start int
	End   int
}

// SpanKind classifies a tokenized span.
type SpanKind int

const (
	// SpanWord is a span matched against the lexicon.
	SpanWord SpanKind = iota
	// SpanSpace is a single whitespace character.
	SpanSpace
	// SpanPunct is a single punctuation character, passed through.
	SpanPunct
	// SpanUnknown is a single character with no lexicon match.
	SpanUnknown
)

// Span is one token of a left-to-right segmentation. Entry is set only
// for SpanWord.
type Span struct {
	Kind  SpanKind
	Start int
	End   int
	Entry *lexicon.Entry
}

// punctuation is the fixed set of characters emitted verbatim as their
// own annotation unit.
var punctuation = map[rune]bool{
	'，': true, '。': true, '！': true, '？': true, '；': true,
	'：': true, '、': true, '（': true, '）': true, '《': true,
	'》': true, '「': true, '」': true, '『': true, '』': true,
	'“': true, '”': true, '‘': true, '’': true, '…': true,
	'—': true, '·': true,
	',': true, '.': true, '!': true, '?': true, ';': true,
	':': true, '(': true, ')': true, '"': true, '\'': true,
	'-': true,
}

// IsPunctuation reports whether ch is in the fixed punctuation set.
func IsPunctuation(ch rune) bool {
	return punctuation[ch]
}

// Segmenter tokenizes text against a lexicon. It is stateless apart
// from the shared immutable lexicon and safe for concurrent use.
type Segmenter struct {
	lex *lexicon.Lexicon
}

// New returns a Segmenter over lex.
func New(lex *lexicon.Lexicon) *Segmenter {
	return &Segmenter{lex: lex}
}

// lookup tries an exact traditional-key lookup first, then a
// form-scan, so simplified-script input resolves against the
// traditional-keyed lexicon.
func (s *Segmenter) lookup(word string) (*lexicon.Entry, bool) {
	if e, ok := s.lex.LookupExact(word); ok {
		return e, true
	}
	return s.lex.ScanByForm(word)
}

// matchAt tries window lengths maxLen down to 1 starting at start,
// returning the first lexicon hit.
func (s *Segmenter) matchAt(runes []rune, start, maxLen int) (Match, bool) {
	for length := maxLen; length >= 1; length-- {
		end := start + length
		if end > len(runes) {
			continue
		}
		if e, ok := s.lookup(string(runes[start:end])); ok {
			return Match{Entry: e, Start: start, End: end}, true
		}
	}
	return Match{}, false
}

// Segment tokenizes line left to right: whitespace and punctuation
// advance one character, everything else is matched greedily with
// windows of MaxMatchLen down to 1, falling back to a single unknown
// character.
func (s *Segmenter) Segment(line string) []Span {
	runes := []rune(line)
	spans := make([]Span, 0, len(runes))
	for i := 0; i < len(runes); {
		ch := runes[i]
		switch {
		case unicode.IsSpace(ch):
			spans = append(spans, Span{Kind: SpanSpace, Start: i, End: i + 1})
			i++
		case punctuation[ch]:
			spans = append(spans, Span{Kind: SpanPunct, Start: i, End: i + 1})
			i++
		default:
			if m, ok := s.matchAt(runes, i, MaxMatchLen); ok {
				spans = append(spans, Span{Kind: SpanWord, Start: m.Start, End: m.End, Entry: m.Entry})
				i = m.End
			} else {
				spans = append(spans, Span{Kind: SpanUnknown, Start: i, End: i + 1})
				i++
			}
		}
	}
	return spans
}

// FindWordAt resolves a tapped character offset to its containing
// word. Window lengths are tried from MaxMatchLen down, and within a
// length, start offsets in increasing order, so the longest compound
// containing the offset wins, and among equals the one whose start is
// leftmost. A length-1 window is the single-character fallback. The
// ordering is user-observable and must not change.
func (s *Segmenter) FindWordAt(line string, offset int) (Match, bool) {
	runes := []rune(line)
	if offset < 0 || offset >= len(runes) {
		return Match{}, false
	}
	for length := MaxMatchLen; length >= 1; length-- {
		start := offset - length + 1
		if start < 0 {
			start = 0
		}
		for ; start <= offset; start++ {
			end := start + length
			if end > len(runes) {
				continue
			}
			if e, ok := s.lookup(string(runes[start:end])); ok {
				return Match{Entry: e, Start: start, End: end}, true
			}
		}
	}
	return Match{}, false
}
