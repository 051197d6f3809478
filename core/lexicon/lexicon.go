// Package lexicon provides the immutable in-memory dictionary that the
// segmentation, annotation, and script-conversion layers are built on.
// A Lexicon is loaded once at startup and is safe for unsynchronized
// concurrent reads afterwards.
package lexicon

// Entry is a single dictionary record. Entries are immutable once loaded.
type Entry struct {
	// Traditional is the traditional-script headword and the primary key.
	Traditional string `json:"traditional"`

	// Simplified is the simplified-script form of the headword.
	Simplified string `json:"simplified"`

	// Pinyin is the numbered romanization (e.g. "ni3 hao3"), one
	// syllable per character of the headword.
	Pinyin string `json:"pinyin"`

	// Glosses are the English definitions, in source order.
	Glosses []string `json:"definitions"`

	// Frequency is the corpus frequency rank, higher is more common.
	// Zero means unranked.
	Frequency int `json:"frequency,omitempty"`
}

// CharLen returns the length of the headword in characters.
func (e *Entry) CharLen() int {
	return len([]rune(e.Traditional))
}

// Lexicon maps traditional-form headwords to entries. It also keeps a
// secondary form index so that simplified-script input can be resolved
// without a linear scan; the index is built so that lookup results are
// identical to a first-match scan in original entry order.
type Lexicon struct {
	entries []*Entry
	byTrad  map[string]*Entry
	byForm  map[string]*Entry
}

// New returns an empty Lexicon.
func New() *Lexicon {
	return &Lexicon{
		byTrad: make(map[string]*Entry),
		byForm: make(map[string]*Entry),
	}
}

// FromEntries builds a Lexicon from entries in load order.
func FromEntries(entries []*Entry) *Lexicon {
	l := New()
	for _, e := range entries {
		l.Add(e)
	}
	return l
}

// Add inserts an entry. A duplicate traditional key overwrites the
// earlier entry's contents in place, keeping its position in entry order.
func (l *Lexicon) Add(e *Entry) {
	if e == nil || e.Traditional == "" {
		return
	}
	if prev, ok := l.byTrad[e.Traditional]; ok {
		*prev = *e
		if e.Simplified != "" {
			if _, ok := l.byForm[e.Simplified]; !ok {
				l.byForm[e.Simplified] = prev
			}
		}
		return
	}
	l.entries = append(l.entries, e)
	l.byTrad[e.Traditional] = e
	// First writer wins, per form, so index lookups match a linear
	// scan in entry order.
	if _, ok := l.byForm[e.Traditional]; !ok {
		l.byForm[e.Traditional] = e
	}
	if e.Simplified != "" {
		if _, ok := l.byForm[e.Simplified]; !ok {
			l.byForm[e.Simplified] = e
		}
	}
}

// LookupExact returns the entry whose traditional form equals key.
// A missing entry is a normal outcome, not an error.
func (l *Lexicon) LookupExact(key string) (*Entry, bool) {
	if l == nil {
		return nil, false
	}
	e, ok := l.byTrad[key]
	return e, ok
}

// ScanByForm returns the first entry, in original entry order, whose
// traditional or simplified form equals text. Used when the input is
// not keyed by its traditional form, e.g. simplified-script lyrics
// against a traditional-keyed table.
func (l *Lexicon) ScanByForm(text string) (*Entry, bool) {
	if l == nil {
		return nil, false
	}
	e, ok := l.byForm[text]
	return e, ok
}

// Len returns the number of entries.
func (l *Lexicon) Len() int {
	if l == nil {
		return 0
	}
	return len(l.entries)
}

// Entries returns all entries in load order. The returned slice is
// shared; callers must not modify it.
func (l *Lexicon) Entries() []*Entry {
	if l == nil {
		return nil
	}
	return l.entries
}
