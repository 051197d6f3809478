// Package script converts text between Traditional and Simplified
// Chinese. The character mapping tables are derived from the lexicon at
// build time, so conversion works from the same bundled dictionary the
// rest of the engine uses, with a small hand-curated override table for
// characters whose mapping is sense-dependent.
package script

import (
	"sort"
	"unicode/utf8"

	"github.com/pinlyric/pinlyric/core/lexicon"
)

// Override pins one simplified/traditional character pair,
// unconditionally overriding whatever the frequency-derived passes
// produced for either character.
type Override struct {
	Simplified  rune
	Traditional rune
}

// defaultOverrides pins sense-dependent simplifications to the
// traditional form that dominates in running text. A simplified
// character like 发 merges several traditional characters (發/髮);
// frequency-derived construction can pick the wrong one depending on
// which entry happens to rank higher.
var defaultOverrides = []Override{
	{'发', '發'},
	{'后', '後'},
	{'里', '裡'},
	{'只', '隻'},
	{'台', '臺'},
	{'众', '眾'},
	{'历', '歷'},
	{'复', '復'},
	{'钟', '鐘'},
	{'游', '遊'},
}

// Table holds the two character-level conversion mappings. A Table is
// built once and is safe for unsynchronized concurrent reads.
type Table struct {
	tradToSimp map[rune]rune
	simpToTrad map[rune]rune
}

// Build constructs the conversion mappings from lex and the default
// override table.
func Build(lex *lexicon.Lexicon) *Table {
	return BuildWithOverrides(lex, defaultOverrides)
}

// BuildWithOverrides constructs the conversion mappings from lex and an
// explicit override table.
//
// Construction runs three passes over the entries, most frequent first
// (ties keep lexicon entry order):
//
//  1. Every character of an entry whose traditional and simplified forms
//     are identical goes into a no-conversion set; the modern form is
//     already canonical, so those characters are excluded from both
//     mappings as sources and as targets.
//  2. Entries whose forms differ are zipped character by character.
//     Pairs touching the no-conversion set are skipped. The
//     traditional-to-simplified direction always takes the latest pair;
//     the simplified-to-traditional direction keeps the first writer, so
//     the highest-frequency candidate wins.
//  3. Overrides force both directions unconditionally.
func BuildWithOverrides(lex *lexicon.Lexicon, overrides []Override) *Table {
	t := &Table{
		tradToSimp: make(map[rune]rune),
		simpToTrad: make(map[rune]rune),
	}
	if lex == nil {
		applyOverrides(t, overrides)
		return t
	}

	src := lex.Entries()
	entries := make([]*lexicon.Entry, len(src))
	copy(entries, src)
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Frequency > entries[j].Frequency
	})

	noConvert := make(map[rune]bool)
	for _, e := range entries {
		if e.Traditional == e.Simplified {
			for _, ch := range e.Traditional {
				noConvert[ch] = true
			}
		}
	}

	for _, e := range entries {
		if e.Traditional == e.Simplified {
			continue
		}
		trad := []rune(e.Traditional)
		simp := []rune(e.Simplified)
		n := len(trad)
		if len(simp) < n {
			n = len(simp)
		}
		for i := 0; i < n; i++ {
			tc, sc := trad[i], simp[i]
			if noConvert[tc] || noConvert[sc] {
				continue
			}
			if tc == sc {
				continue
			}
			t.tradToSimp[tc] = sc
			if _, ok := t.simpToTrad[sc]; !ok {
				t.simpToTrad[sc] = tc
			}
		}
	}

	applyOverrides(t, overrides)
	return t
}

func applyOverrides(t *Table, overrides []Override) {
	for _, o := range overrides {
		t.simpToTrad[o.Simplified] = o.Traditional
		t.tradToSimp[o.Traditional] = o.Simplified
	}
}

// ToSimplified converts text to simplified script. Unmapped characters
// pass through unchanged. Invalid UTF-8 input is returned as-is rather
// than partially converted.
func (t *Table) ToSimplified(text string) string {
	return t.convert(text, t.tradToSimpMap())
}

// ToTraditional converts text to traditional script. Unmapped
// characters pass through unchanged. Invalid UTF-8 input is returned
// as-is rather than partially converted.
func (t *Table) ToTraditional(text string) string {
	return t.convert(text, t.simpToTradMap())
}

func (t *Table) tradToSimpMap() map[rune]rune {
	if t == nil {
		return nil
	}
	return t.tradToSimp
}

func (t *Table) simpToTradMap() map[rune]rune {
	if t == nil {
		return nil
	}
	return t.simpToTrad
}

func (t *Table) convert(text string, mapping map[rune]rune) string {
	if !utf8.ValidString(text) {
		return text
	}
	if len(mapping) == 0 {
		return text
	}
	out := make([]rune, 0, utf8.RuneCountInString(text))
	for _, ch := range text {
		if mapped, ok := mapping[ch]; ok {
			out = append(out, mapped)
		} else {
			out = append(out, ch)
		}
	}
	return string(out)
}
