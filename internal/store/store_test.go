package store

import (
	"testing"

	"github.com/pinlyric/pinlyric/core/errors"
	"github.com/pinlyric/pinlyric/internal/lyric"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	st, err := Open(":memory:")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { st.Close() })
	return st
}

func TestSongRoundTrip(t *testing.T) {
	st := openTestStore(t)

	song := &Song{
		Title:  "月亮代表我的心",
		Artist: "鄧麗君",
		Lines: []lyric.Line{
			{StartMS: 12300, Text: "你問我愛你有多深"},
			{StartMS: 18550, Text: "我愛你有幾分"},
		},
	}
	if err := st.AddSong(song); err != nil {
		t.Fatalf("AddSong: %v", err)
	}
	if song.ID == "" {
		t.Fatal("AddSong should assign an ID")
	}

	got, err := st.GetSong(song.ID)
	if err != nil {
		t.Fatalf("GetSong: %v", err)
	}
	if got.Title != song.Title || got.Artist != song.Artist {
		t.Errorf("got %q/%q; want %q/%q", got.Title, got.Artist, song.Title, song.Artist)
	}
	if len(got.Lines) != 2 {
		t.Fatalf("len(Lines) = %d; want 2", len(got.Lines))
	}
	if got.Lines[0].StartMS != 12300 || got.Lines[0].Text != "你問我愛你有多深" {
		t.Errorf("Lines[0] = %+v", got.Lines[0])
	}
}

func TestAddSongValidation(t *testing.T) {
	st := openTestStore(t)
	err := st.AddSong(&Song{})
	if err == nil {
		t.Fatal("AddSong without title should fail")
	}
	if !errors.Is(err, errors.ErrInvalidInput) {
		t.Errorf("error = %v; want ErrInvalidInput", err)
	}
}

func TestGetSongNotFound(t *testing.T) {
	st := openTestStore(t)
	_, err := st.GetSong("missing")
	if err == nil {
		t.Fatal("GetSong(missing) should fail")
	}
	if !errors.Is(err, errors.ErrNotFound) {
		t.Errorf("error = %v; want ErrNotFound", err)
	}
}

func TestListAndDeleteSongs(t *testing.T) {
	st := openTestStore(t)
	for _, title := range []string{"甲", "乙"} {
		if err := st.AddSong(&Song{Title: title}); err != nil {
			t.Fatalf("AddSong(%s): %v", title, err)
		}
	}

	songs, err := st.ListSongs()
	if err != nil {
		t.Fatalf("ListSongs: %v", err)
	}
	if len(songs) != 2 {
		t.Fatalf("len(songs) = %d; want 2", len(songs))
	}

	if err := st.DeleteSong(songs[0].ID); err != nil {
		t.Fatalf("DeleteSong: %v", err)
	}
	songs, err = st.ListSongs()
	if err != nil {
		t.Fatalf("ListSongs: %v", err)
	}
	if len(songs) != 1 {
		t.Errorf("len(songs) = %d after delete; want 1", len(songs))
	}

	if err := st.DeleteSong("missing"); !errors.Is(err, errors.ErrNotFound) {
		t.Errorf("DeleteSong(missing) = %v; want ErrNotFound", err)
	}
}

func TestVocabRoundTrip(t *testing.T) {
	st := openTestStore(t)

	item := &VocabItem{
		Traditional: "你好",
		Simplified:  "你好",
		Pinyin:      "ni3 hao3",
		Gloss:       "hello",
	}
	if err := st.AddVocab(item); err != nil {
		t.Fatalf("AddVocab: %v", err)
	}
	if item.ID == "" {
		t.Fatal("AddVocab should assign an ID")
	}

	items, err := st.ListVocab()
	if err != nil {
		t.Fatalf("ListVocab: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("len(items) = %d; want 1", len(items))
	}
	if items[0].Traditional != "你好" || items[0].Gloss != "hello" {
		t.Errorf("item = %+v", items[0])
	}
}

func TestAddVocabValidation(t *testing.T) {
	st := openTestStore(t)
	if err := st.AddVocab(&VocabItem{}); !errors.Is(err, errors.ErrInvalidInput) {
		t.Errorf("AddVocab without word = %v; want ErrInvalidInput", err)
	}
}
