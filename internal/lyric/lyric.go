// Package lyric parses timed lyric files into plain lines the
// annotation engine can consume. LRC and TTML timed text are
// supported; timing is kept so playback can highlight the current
// line, but the engine itself only ever sees the text.
package lyric

import "sort"

// Line is one lyric line with its start time in milliseconds. A start
// of -1 means the source carried no timing for the line.
type Line struct {
	StartMS int    `json:"start_ms"`
	Text    string `json:"text"`
}

// Lyric is a parsed lyric document.
type Lyric struct {
	Title  string `json:"title,omitempty"`
	Artist string `json:"artist,omitempty"`
	Lines  []Line `json:"lines"`
}

// sortLines orders lines by start time, keeping source order for
// untimed lines and equal timestamps.
func sortLines(lines []Line) {
	sort.SliceStable(lines, func(i, j int) bool {
		if lines[i].StartMS < 0 || lines[j].StartMS < 0 {
			return false
		}
		return lines[i].StartMS < lines[j].StartMS
	})
}
