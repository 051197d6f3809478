// Package store persists songs, their lyric lines, and the user's
// saved vocabulary in SQLite. The annotation core never touches this;
// the CLI and server use it around the engine.
package store

import (
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/pinlyric/pinlyric/core/errors"
	"github.com/pinlyric/pinlyric/core/sqlite"
	"github.com/pinlyric/pinlyric/internal/lyric"
)

const schema = `
CREATE TABLE IF NOT EXISTS songs (
	id         TEXT PRIMARY KEY,
	title      TEXT NOT NULL,
	artist     TEXT NOT NULL DEFAULT '',
	created_at TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS lyric_lines (
	song_id  TEXT NOT NULL REFERENCES songs(id) ON DELETE CASCADE,
	line_no  INTEGER NOT NULL,
	start_ms INTEGER NOT NULL DEFAULT -1,
	text     TEXT NOT NULL,
	PRIMARY KEY (song_id, line_no)
);
CREATE TABLE IF NOT EXISTS vocabulary (
	id          TEXT PRIMARY KEY,
	traditional TEXT NOT NULL,
	simplified  TEXT NOT NULL DEFAULT '',
	pinyin      TEXT NOT NULL DEFAULT '',
	gloss       TEXT NOT NULL DEFAULT '',
	song_id     TEXT NOT NULL DEFAULT '',
	added_at    TEXT NOT NULL
);
`

// Song is a stored song with its lyric lines.
type Song struct {
	ID        string       `json:"id"`
	Title     string       `json:"title"`
	Artist    string       `json:"artist,omitempty"`
	CreatedAt time.Time    `json:"created_at"`
	Lines     []lyric.Line `json:"lines,omitempty"`
}

// VocabItem is one saved word, optionally linked to the song it was
// tapped in.
type VocabItem struct {
	ID          string    `json:"id"`
	Traditional string    `json:"traditional"`
	Simplified  string    `json:"simplified,omitempty"`
	Pinyin      string    `json:"pinyin,omitempty"`
	Gloss       string    `json:"gloss,omitempty"`
	SongID      string    `json:"song_id,omitempty"`
	AddedAt     time.Time `json:"added_at"`
}

// Store wraps the SQLite database.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the store at path. Use ":memory:"
// for an ephemeral store in tests.
func Open(path string) (*Store, error) {
	db, err := sqlite.Open(path)
	if err != nil {
		return nil, errors.NewIO("open", path, err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "apply schema")
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// AddSong stores a song and its lines, assigning an ID when empty.
func (s *Store) AddSong(song *Song) error {
	if song.Title == "" {
		return errors.NewValidation("title", "must not be empty")
	}
	if song.ID == "" {
		song.ID = uuid.NewString()
	}
	if song.CreatedAt.IsZero() {
		song.CreatedAt = time.Now().UTC()
	}

	tx, err := s.db.Begin()
	if err != nil {
		return errors.Wrap(err, "begin transaction")
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		`INSERT INTO songs (id, title, artist, created_at) VALUES (?, ?, ?, ?)`,
		song.ID, song.Title, song.Artist, song.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return errors.Wrapf(err, "insert song %s", song.ID)
	}
	for i, line := range song.Lines {
		_, err = tx.Exec(
			`INSERT INTO lyric_lines (song_id, line_no, start_ms, text) VALUES (?, ?, ?, ?)`,
			song.ID, i, line.StartMS, line.Text,
		)
		if err != nil {
			return errors.Wrapf(err, "insert line %d of song %s", i, song.ID)
		}
	}
	return tx.Commit()
}

// GetSong returns a song with its lines.
func (s *Store) GetSong(id string) (*Song, error) {
	song := &Song{ID: id}
	var createdAt string
	err := s.db.QueryRow(
		`SELECT title, artist, created_at FROM songs WHERE id = ?`, id,
	).Scan(&song.Title, &song.Artist, &createdAt)
	if err == sql.ErrNoRows {
		return nil, errors.NewNotFound("song", id)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "query song %s", id)
	}
	song.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)

	rows, err := s.db.Query(
		`SELECT start_ms, text FROM lyric_lines WHERE song_id = ? ORDER BY line_no`, id,
	)
	if err != nil {
		return nil, errors.Wrapf(err, "query lines of song %s", id)
	}
	defer rows.Close()
	for rows.Next() {
		var line lyric.Line
		if err := rows.Scan(&line.StartMS, &line.Text); err != nil {
			return nil, errors.Wrap(err, "scan lyric line")
		}
		song.Lines = append(song.Lines, line)
	}
	return song, rows.Err()
}

// ListSongs returns all songs, newest first, without lines.
func (s *Store) ListSongs() ([]*Song, error) {
	rows, err := s.db.Query(
		`SELECT id, title, artist, created_at FROM songs ORDER BY created_at DESC, id`,
	)
	if err != nil {
		return nil, errors.Wrap(err, "query songs")
	}
	defer rows.Close()

	var songs []*Song
	for rows.Next() {
		song := &Song{}
		var createdAt string
		if err := rows.Scan(&song.ID, &song.Title, &song.Artist, &createdAt); err != nil {
			return nil, errors.Wrap(err, "scan song")
		}
		song.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		songs = append(songs, song)
	}
	return songs, rows.Err()
}

// DeleteSong removes a song and its lines.
func (s *Store) DeleteSong(id string) error {
	res, err := s.db.Exec(`DELETE FROM songs WHERE id = ?`, id)
	if err != nil {
		return errors.Wrapf(err, "delete song %s", id)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return errors.NewNotFound("song", id)
	}
	_, err = s.db.Exec(`DELETE FROM lyric_lines WHERE song_id = ?`, id)
	return errors.Wrapf(err, "delete lines of song %s", id)
}

// AddVocab saves a vocabulary item, assigning an ID when empty.
func (s *Store) AddVocab(item *VocabItem) error {
	if item.Traditional == "" {
		return errors.NewValidation("traditional", "must not be empty")
	}
	if item.ID == "" {
		item.ID = uuid.NewString()
	}
	if item.AddedAt.IsZero() {
		item.AddedAt = time.Now().UTC()
	}
	_, err := s.db.Exec(
		`INSERT INTO vocabulary (id, traditional, simplified, pinyin, gloss, song_id, added_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		item.ID, item.Traditional, item.Simplified, item.Pinyin,
		item.Gloss, item.SongID, item.AddedAt.Format(time.RFC3339),
	)
	return errors.Wrapf(err, "insert vocab %s", item.Traditional)
}

// ListVocab returns all saved vocabulary, newest first.
func (s *Store) ListVocab() ([]*VocabItem, error) {
	rows, err := s.db.Query(
		`SELECT id, traditional, simplified, pinyin, gloss, song_id, added_at
		 FROM vocabulary ORDER BY added_at DESC, id`,
	)
	if err != nil {
		return nil, errors.Wrap(err, "query vocabulary")
	}
	defer rows.Close()

	var items []*VocabItem
	for rows.Next() {
		item := &VocabItem{}
		var addedAt string
		err := rows.Scan(&item.ID, &item.Traditional, &item.Simplified,
			&item.Pinyin, &item.Gloss, &item.SongID, &addedAt)
		if err != nil {
			return nil, errors.Wrap(err, "scan vocab item")
		}
		item.AddedAt, _ = time.Parse(time.RFC3339, addedAt)
		items = append(items, item)
	}
	return items, rows.Err()
}
