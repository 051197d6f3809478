package lyric

import (
	"strings"
	"testing"
)

func TestParseLRC(t *testing.T) {
	src := `[ti:月亮代表我的心]
[ar:鄧麗君]
[00:12.30]你問我愛你有多深
[00:18.55]我愛你有幾分

[01:02]月亮代表我的心
`
	got, err := ParseLRC(strings.NewReader(src))
	if err != nil {
		t.Fatalf("ParseLRC: %v", err)
	}
	if got.Title != "月亮代表我的心" {
		t.Errorf("Title = %q", got.Title)
	}
	if got.Artist != "鄧麗君" {
		t.Errorf("Artist = %q", got.Artist)
	}
	if len(got.Lines) != 3 {
		t.Fatalf("len(Lines) = %d; want 3", len(got.Lines))
	}
	if got.Lines[0].StartMS != 12300 || got.Lines[0].Text != "你問我愛你有多深" {
		t.Errorf("Lines[0] = %+v", got.Lines[0])
	}
	if got.Lines[2].StartMS != 62000 {
		t.Errorf("Lines[2].StartMS = %d; want 62000", got.Lines[2].StartMS)
	}
}

func TestParseLRCMultipleTimeTags(t *testing.T) {
	src := "[00:10.00][00:50.00]重複的副歌\n"
	got, err := ParseLRC(strings.NewReader(src))
	if err != nil {
		t.Fatalf("ParseLRC: %v", err)
	}
	if len(got.Lines) != 2 {
		t.Fatalf("len(Lines) = %d; want 2", len(got.Lines))
	}
	if got.Lines[0].StartMS != 10000 || got.Lines[1].StartMS != 50000 {
		t.Errorf("starts = %d, %d; want 10000, 50000", got.Lines[0].StartMS, got.Lines[1].StartMS)
	}
	if got.Lines[0].Text != "重複的副歌" || got.Lines[1].Text != got.Lines[0].Text {
		t.Errorf("texts = %q, %q", got.Lines[0].Text, got.Lines[1].Text)
	}
}

func TestParseLRCSortsByTime(t *testing.T) {
	src := "[00:50.00]後\n[00:10.00]先\n"
	got, err := ParseLRC(strings.NewReader(src))
	if err != nil {
		t.Fatalf("ParseLRC: %v", err)
	}
	if got.Lines[0].Text != "先" || got.Lines[1].Text != "後" {
		t.Errorf("lines out of time order: %+v", got.Lines)
	}
}

func TestParseTTML(t *testing.T) {
	src := `<?xml version="1.0" encoding="UTF-8"?>
<tt xmlns="http://www.w3.org/ns/ttml" xmlns:ttm="http://www.w3.org/ns/ttml#metadata">
  <head><metadata><ttm:title>夜曲</ttm:title></metadata></head>
  <body>
    <div>
      <p begin="00:12.30" end="00:18.00">一群嗜血的螞蟻</p>
      <p begin="12.5s">被腐肉所吸引</p>
      <p>無時間標記</p>
    </div>
  </body>
</tt>`
	got, err := ParseTTML(strings.NewReader(src))
	if err != nil {
		t.Fatalf("ParseTTML: %v", err)
	}
	if got.Title != "夜曲" {
		t.Errorf("Title = %q; want 夜曲", got.Title)
	}
	if len(got.Lines) != 3 {
		t.Fatalf("len(Lines) = %d; want 3", len(got.Lines))
	}
	byText := map[string]int{}
	for _, line := range got.Lines {
		byText[line.Text] = line.StartMS
	}
	if byText["一群嗜血的螞蟻"] != 12300 {
		t.Errorf("begin = %d; want 12300", byText["一群嗜血的螞蟻"])
	}
	if byText["被腐肉所吸引"] != 12500 {
		t.Errorf("begin = %d; want 12500", byText["被腐肉所吸引"])
	}
	if byText["無時間標記"] != -1 {
		t.Errorf("untimed line StartMS = %d; want -1", byText["無時間標記"])
	}
}

func TestParseTTMLInvalid(t *testing.T) {
	if _, err := ParseTTML(strings.NewReader("<not-closed")); err == nil {
		t.Skip("xml parser tolerated truncated input")
	}
}

func TestParseClock(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"00:12.30", 12300},
		{"01:02:03.5", 3723500},
		{"12.5s", 12500},
		{"340ms", 340},
		{"", -1},
		{"abc", -1},
		{"1:2:3:4", -1},
	}
	for _, tt := range tests {
		if got := parseClock(tt.in); got != tt.want {
			t.Errorf("parseClock(%q) = %d; want %d", tt.in, got, tt.want)
		}
	}
}
