// Command pinlyric is the CLI for the pinlyric annotation engine.
// It annotates lyric lines with pinyin, converts between Traditional
// and Simplified script, resolves tap lookups, manages the song and
// vocabulary store, and serves the REST API.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/alecthomas/kong"

	"github.com/pinlyric/pinlyric/core/engine"
	"github.com/pinlyric/pinlyric/core/layout"
	"github.com/pinlyric/pinlyric/internal/cedict"
	"github.com/pinlyric/pinlyric/internal/logging"
	"github.com/pinlyric/pinlyric/internal/lyric"
	"github.com/pinlyric/pinlyric/internal/server"
	"github.com/pinlyric/pinlyric/internal/store"
)

const version = "0.2.0"

// CLI defines the command-line interface for pinlyric.
var CLI struct {
	// Global flags
	Lexicon   string `name:"lexicon" short:"l" help:"Lexicon bundle path (CEDICT text or JSON, optionally .xz/.gz)" env:"PINLYRIC_LEXICON" type:"path"`
	DB        string `name:"db" help:"Study store database path" env:"PINLYRIC_DB" type:"path"`
	LogLevel  string `name:"log-level" default:"info" enum:"debug,info,warn,error" help:"Log level"`
	LogFormat string `name:"log-format" default:"text" enum:"text,json" help:"Log format"`

	Annotate AnnotateCmd `cmd:"" help:"Annotate a lyric line with pinyin"`
	Convert  ConvertCmd  `cmd:"" help:"Convert text between Traditional and Simplified script"`
	Lookup   LookupCmd   `cmd:"" help:"Look up the word at a character offset"`
	Lexinfo  LexinfoCmd  `cmd:"" name:"lexicon-info" help:"Show lexicon bundle statistics and checksum"`
	Song     SongGroup   `cmd:"" help:"Song store operations"`
	Vocab    VocabGroup  `cmd:"" help:"Saved vocabulary operations"`
	Serve    ServeCmd    `cmd:"" help:"Start the REST API server"`
	Version  VersionCmd  `cmd:"" help:"Print version information"`
}

// SongGroup contains song store operations.
type SongGroup struct {
	Add    SongAddCmd    `cmd:"" help:"Import a lyric file (LRC or TTML) as a song"`
	List   SongListCmd   `cmd:"" help:"List stored songs"`
	Show   SongShowCmd   `cmd:"" help:"Show a stored song, annotated"`
	Remove SongRemoveCmd `cmd:"" name:"rm" help:"Delete a stored song"`
}

// VocabGroup contains saved-vocabulary operations.
type VocabGroup struct {
	Add  VocabAddCmd  `cmd:"" help:"Save a word to the vocabulary list"`
	List VocabListCmd `cmd:"" help:"List saved vocabulary"`
}

// appContext carries lazily-built shared state into command Run
// methods.
type appContext struct {
	eng *engine.Engine
	st  *store.Store
}

// Engine loads the lexicon and builds the annotation engine once.
func (a *appContext) Engine() (*engine.Engine, error) {
	if a.eng != nil {
		return a.eng, nil
	}
	if CLI.Lexicon == "" {
		return nil, fmt.Errorf("no lexicon bundle: pass --lexicon or set PINLYRIC_LEXICON")
	}
	start := time.Now()
	lex, err := cedict.Load(CLI.Lexicon)
	if err != nil {
		return nil, err
	}
	logging.LexiconLoaded(CLI.Lexicon, lex.Len(), time.Since(start))
	a.eng = engine.New(lex, engine.WithMeasurer(layout.TerminalMeasurer{}))
	a.eng.Build()
	return a.eng, nil
}

// Store opens the study store once.
func (a *appContext) Store() (*store.Store, error) {
	if a.st != nil {
		return a.st, nil
	}
	path := CLI.DB
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		path = filepath.Join(home, ".pinlyric", "study.db")
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, err
		}
	}
	st, err := store.Open(path)
	if err != nil {
		return nil, err
	}
	a.st = st
	return st, nil
}

// AnnotateCmd annotates a line and prints glyphs and pinyin rows.
type AnnotateCmd struct {
	Width float64 `name:"width" short:"w" help:"Wrap to this width in terminal cells (0 = no wrap)"`
	Line  string  `arg:"" help:"Lyric line to annotate"`
}

// Run executes the annotate command.
func (c *AnnotateCmd) Run(app *appContext) error {
	eng, err := app.Engine()
	if err != nil {
		return err
	}
	units := eng.SegmentAndAnnotate(c.Line)
	if c.Width <= 0 {
		fmt.Println(layout.JoinUnits(units))
		fmt.Println(c.Line)
		return nil
	}
	for _, row := range eng.WrapRows(c.Line, units, c.Width) {
		fmt.Println(layout.JoinUnits(row.Annotations))
		fmt.Println(row.Glyphs)
	}
	return nil
}

// ConvertCmd converts between scripts.
type ConvertCmd struct {
	To   string `name:"to" required:"" enum:"simplified,traditional" help:"Target script"`
	Text string `arg:"" help:"Text to convert"`
}

// Run executes the convert command.
func (c *ConvertCmd) Run(app *appContext) error {
	eng, err := app.Engine()
	if err != nil {
		return err
	}
	if c.To == "simplified" {
		fmt.Println(eng.ToSimplified(c.Text))
	} else {
		fmt.Println(eng.ToTraditional(c.Text))
	}
	return nil
}

// LookupCmd resolves the word containing a character offset.
type LookupCmd struct {
	Offset int    `name:"offset" short:"o" required:"" help:"Character offset of the tapped glyph"`
	Line   string `arg:"" help:"Lyric line"`
}

// Run executes the lookup command.
func (c *LookupCmd) Run(app *appContext) error {
	eng, err := app.Engine()
	if err != nil {
		return err
	}
	match, ok := eng.FindWordAt(c.Line, c.Offset)
	if !ok {
		fmt.Println("no match")
		return nil
	}
	e := match.Entry
	fmt.Printf("%s (%s) [%s] at [%d,%d)\n",
		e.Traditional, e.Simplified, e.Pinyin, match.Start, match.End)
	for _, gloss := range e.Glosses {
		fmt.Printf("  - %s\n", gloss)
	}
	return nil
}

// LexinfoCmd prints bundle statistics and its BLAKE3 checksum.
type LexinfoCmd struct{}

// Run executes the lexicon-info command.
func (c *LexinfoCmd) Run(app *appContext) error {
	eng, err := app.Engine()
	if err != nil {
		return err
	}
	sum, err := cedict.Checksum(CLI.Lexicon)
	if err != nil {
		return err
	}
	fmt.Printf("bundle:  %s\n", CLI.Lexicon)
	fmt.Printf("entries: %d\n", eng.Lexicon().Len())
	fmt.Printf("blake3:  %s\n", sum)
	return nil
}

// SongAddCmd imports a lyric file into the store.
type SongAddCmd struct {
	Title  string `name:"title" help:"Song title (defaults to the file's metadata or name)"`
	Artist string `name:"artist" help:"Artist name"`
	File   string `arg:"" type:"existingfile" help:"Lyric file (.lrc, .ttml/.xml)"`
}

// Run executes the song add command.
func (c *SongAddCmd) Run(app *appContext) error {
	f, err := os.Open(c.File)
	if err != nil {
		return err
	}
	defer f.Close()

	var parsed *lyric.Lyric
	switch strings.ToLower(filepath.Ext(c.File)) {
	case ".ttml", ".xml":
		parsed, err = lyric.ParseTTML(f)
	default:
		parsed, err = lyric.ParseLRC(f)
	}
	if err != nil {
		return err
	}

	song := &store.Song{Title: c.Title, Artist: c.Artist, Lines: parsed.Lines}
	if song.Title == "" {
		song.Title = parsed.Title
	}
	if song.Title == "" {
		song.Title = strings.TrimSuffix(filepath.Base(c.File), filepath.Ext(c.File))
	}
	if song.Artist == "" {
		song.Artist = parsed.Artist
	}

	st, err := app.Store()
	if err != nil {
		return err
	}
	if err := st.AddSong(song); err != nil {
		return err
	}
	fmt.Printf("added %s (%d lines) as %s\n", song.Title, len(song.Lines), song.ID)
	return nil
}

// SongListCmd lists stored songs.
type SongListCmd struct{}

// Run executes the song list command.
func (c *SongListCmd) Run(app *appContext) error {
	st, err := app.Store()
	if err != nil {
		return err
	}
	songs, err := st.ListSongs()
	if err != nil {
		return err
	}
	for _, song := range songs {
		fmt.Printf("%s  %s — %s\n", song.ID, song.Title, song.Artist)
	}
	return nil
}

// SongShowCmd prints a stored song with pinyin annotation.
type SongShowCmd struct {
	Width float64 `name:"width" short:"w" default:"60" help:"Wrap width in terminal cells"`
	ID    string  `arg:"" help:"Song ID"`
}

// Run executes the song show command.
func (c *SongShowCmd) Run(app *appContext) error {
	st, err := app.Store()
	if err != nil {
		return err
	}
	song, err := st.GetSong(c.ID)
	if err != nil {
		return err
	}
	eng, err := app.Engine()
	if err != nil {
		return err
	}
	fmt.Printf("%s — %s\n\n", song.Title, song.Artist)
	for _, line := range song.Lines {
		units := eng.SegmentAndAnnotate(line.Text)
		for _, row := range eng.WrapRows(line.Text, units, c.Width) {
			fmt.Println(layout.JoinUnits(row.Annotations))
			fmt.Println(row.Glyphs)
		}
		fmt.Println()
	}
	return nil
}

// SongRemoveCmd deletes a stored song.
type SongRemoveCmd struct {
	ID string `arg:"" help:"Song ID"`
}

// Run executes the song rm command.
func (c *SongRemoveCmd) Run(app *appContext) error {
	st, err := app.Store()
	if err != nil {
		return err
	}
	return st.DeleteSong(c.ID)
}

// VocabAddCmd saves a word, filling pinyin and gloss from the lexicon.
type VocabAddCmd struct {
	Song string `name:"song" help:"Song ID the word came from"`
	Word string `arg:"" help:"Word to save (traditional or simplified)"`
}

// Run executes the vocab add command.
func (c *VocabAddCmd) Run(app *appContext) error {
	eng, err := app.Engine()
	if err != nil {
		return err
	}
	item := &store.VocabItem{Traditional: c.Word, SongID: c.Song}
	lex := eng.Lexicon()
	entry, ok := lex.LookupExact(c.Word)
	if !ok {
		entry, ok = lex.ScanByForm(c.Word)
	}
	if ok {
		item.Traditional = entry.Traditional
		item.Simplified = entry.Simplified
		item.Pinyin = entry.Pinyin
		if len(entry.Glosses) > 0 {
			item.Gloss = strings.Join(entry.Glosses, "; ")
		}
	}
	st, err := app.Store()
	if err != nil {
		return err
	}
	if err := st.AddVocab(item); err != nil {
		return err
	}
	fmt.Printf("saved %s as %s\n", item.Traditional, item.ID)
	return nil
}

// VocabListCmd lists saved vocabulary.
type VocabListCmd struct{}

// Run executes the vocab list command.
func (c *VocabListCmd) Run(app *appContext) error {
	st, err := app.Store()
	if err != nil {
		return err
	}
	items, err := st.ListVocab()
	if err != nil {
		return err
	}
	for _, item := range items {
		fmt.Printf("%s (%s) [%s] %s\n",
			item.Traditional, item.Simplified, item.Pinyin, item.Gloss)
	}
	return nil
}

// ServeCmd starts the REST API server.
type ServeCmd struct {
	Port    int      `name:"port" short:"p" default:"8480" help:"Listen port"`
	Origins []string `name:"allow-origin" help:"Allowed WebSocket origins"`
}

// Run executes the serve command.
func (c *ServeCmd) Run(app *appContext) error {
	eng, err := app.Engine()
	if err != nil {
		return err
	}
	st, err := app.Store()
	if err != nil {
		return err
	}
	srv := server.New(server.Config{Port: c.Port, AllowedOrigins: c.Origins}, eng, st)
	return srv.Start()
}

// VersionCmd prints version information.
type VersionCmd struct{}

// Run executes the version command.
func (c *VersionCmd) Run(app *appContext) error {
	fmt.Printf("pinlyric %s\n", version)
	return nil
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("pinlyric"),
		kong.Description("Offline pinyin annotation, script conversion, and lyric study tools."),
		kong.UsageOnError(),
	)

	level := logging.LevelInfo
	switch CLI.LogLevel {
	case "debug":
		level = logging.LevelDebug
	case "warn":
		level = logging.LevelWarn
	case "error":
		level = logging.LevelError
	}
	format := logging.FormatText
	if CLI.LogFormat == "json" {
		format = logging.FormatJSON
	}
	logging.InitLogger(level, format)

	app := &appContext{}
	err := ctx.Run(app)
	if app.st != nil {
		app.st.Close()
	}
	ctx.FatalIfErrorf(err)
}
