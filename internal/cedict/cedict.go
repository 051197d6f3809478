// Package cedict loads the bundled CC-CEDICT lexicon. Two formats are
// supported: the upstream CEDICT text format
//
//	傳統 传统 [chuan2 tong3] /tradition/convention/
//
// and the app's preprocessed JSON bundle, which additionally carries
// corpus frequency ranks. Either may be compressed with xz or gzip.
package cedict

import (
	"bufio"
	"compress/gzip"
	"encoding/json"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
	"github.com/ulikunitz/xz"

	"github.com/pinlyric/pinlyric/core/errors"
	"github.com/pinlyric/pinlyric/core/lexicon"
)

// cedictLine is the grammar for one CEDICT record line.
type cedictLine struct {
	Traditional string   `parser:"@Word"`
	Simplified  string   `parser:"@Word"`
	Pinyin      string   `parser:"@Pinyin"`
	Glosses     []string `parser:"@Gloss+"`
}

var cedictLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Pinyin", Pattern: `\[[^\]\n]*\]`},
	{Name: "Gloss", Pattern: `/[^/\n]*`},
	{Name: "Word", Pattern: `[^\s/\[\]]+`},
	{Name: "whitespace", Pattern: `[ \t]+`},
})

var lineParser = participle.MustBuild[cedictLine](
	participle.Lexer(cedictLexer),
)

// Load reads a lexicon bundle from path. Compression (.xz, .gz) and
// format (.json vs CEDICT text) are detected from the file name.
func Load(path string) (*lexicon.Lexicon, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.NewIO("open", path, err)
	}
	defer f.Close()

	var r io.Reader = f
	name := path
	switch {
	case strings.HasSuffix(name, ".xz"):
		xzr, err := xz.NewReader(f)
		if err != nil {
			return nil, errors.NewIO("decompress", path, err)
		}
		r = xzr
		name = strings.TrimSuffix(name, ".xz")
	case strings.HasSuffix(name, ".gz"):
		gzr, err := gzip.NewReader(f)
		if err != nil {
			return nil, errors.NewIO("decompress", path, err)
		}
		defer gzr.Close()
		r = gzr
		name = strings.TrimSuffix(name, ".gz")
	}

	if strings.HasSuffix(name, ".json") {
		return ParseJSON(r)
	}
	lex, err := Parse(r)
	if err != nil {
		return nil, errors.Wrapf(err, "load %s", path)
	}
	return lex, nil
}

// Parse reads the CEDICT text format. Comment lines (#) are skipped and
// malformed lines are dropped rather than failing the whole load.
// Duplicate traditional headwords merge: glosses append behind a
// bracketed pinyin marker, and the higher frequency wins.
func Parse(r io.Reader) (*lexicon.Lexicon, error) {
	lex := lexicon.New()
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		rec, err := lineParser.ParseString("", line)
		if err != nil {
			continue
		}
		entry := recordToEntry(rec)
		if entry == nil {
			continue
		}
		merge(lex, entry)
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.NewParse("CEDICT", "", err.Error())
	}
	return lex, nil
}

func recordToEntry(rec *cedictLine) *lexicon.Entry {
	pinyin := strings.TrimSpace(strings.Trim(rec.Pinyin, "[]"))
	glosses := make([]string, 0, len(rec.Glosses))
	for _, g := range rec.Glosses {
		g = strings.TrimSpace(strings.TrimPrefix(g, "/"))
		if g != "" {
			glosses = append(glosses, g)
		}
	}
	if rec.Traditional == "" || len(glosses) == 0 {
		return nil
	}
	return &lexicon.Entry{
		Traditional: rec.Traditional,
		Simplified:  rec.Simplified,
		Pinyin:      pinyin,
		Glosses:     glosses,
	}
}

// merge adds entry to lex, folding a duplicate headword into the
// existing record instead of overwriting it.
func merge(lex *lexicon.Lexicon, entry *lexicon.Entry) {
	prev, ok := lex.LookupExact(entry.Traditional)
	if !ok {
		lex.Add(entry)
		return
	}
	if entry.Pinyin != prev.Pinyin {
		prev.Pinyin = prev.Pinyin + "; " + entry.Pinyin
	}
	prev.Glosses = append(prev.Glosses, "["+entry.Pinyin+"]")
	prev.Glosses = append(prev.Glosses, entry.Glosses...)
	if entry.Frequency > prev.Frequency {
		prev.Frequency = entry.Frequency
	}
}

// ParseJSON reads the preprocessed JSON bundle: a map from traditional
// headword to entry. Entries load in sorted key order so that entry
// order, and therefore scan and tie-break results, are deterministic.
func ParseJSON(r io.Reader) (*lexicon.Lexicon, error) {
	var records map[string]*lexicon.Entry
	dec := json.NewDecoder(r)
	if err := dec.Decode(&records); err != nil {
		return nil, errors.NewParse("CEDICT JSON", "", err.Error())
	}
	keys := make([]string, 0, len(records))
	for k := range records {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	lex := lexicon.New()
	for _, k := range keys {
		entry := records[k]
		if entry == nil {
			continue
		}
		if entry.Traditional == "" {
			entry.Traditional = k
		}
		lex.Add(entry)
	}
	return lex, nil
}
