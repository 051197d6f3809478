package lyric

import (
	"bufio"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/pinlyric/pinlyric/core/errors"
)

var (
	lrcTimeTag = regexp.MustCompile(`^\[(\d+):(\d{1,2}(?:\.\d{1,3})?)\]`)
	lrcMetaTag = regexp.MustCompile(`^\[([a-z]+):(.*)\]$`)
)

// ParseLRC parses the LRC lyric format. A line may carry several time
// tags ("[00:12.34][01:02.50]词"), producing one Line per tag. Metadata
// tags ti (title) and ar (artist) are honored; unknown tags and
// untagged lines are ignored.
func ParseLRC(r io.Reader) (*Lyric, error) {
	out := &Lyric{}
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		raw := strings.TrimSpace(scanner.Text())
		if raw == "" {
			continue
		}

		var starts []int
		rest := raw
		for {
			m := lrcTimeTag.FindStringSubmatch(rest)
			if m == nil {
				break
			}
			minutes, _ := strconv.Atoi(m[1])
			seconds, err := strconv.ParseFloat(m[2], 64)
			if err == nil {
				starts = append(starts, minutes*60000+int(seconds*1000))
			}
			rest = rest[len(m[0]):]
		}

		if len(starts) == 0 {
			if m := lrcMetaTag.FindStringSubmatch(raw); m != nil {
				switch m[1] {
				case "ti":
					out.Title = strings.TrimSpace(m[2])
				case "ar":
					out.Artist = strings.TrimSpace(m[2])
				}
			}
			continue
		}

		text := strings.TrimSpace(rest)
		for _, start := range starts {
			out.Lines = append(out.Lines, Line{StartMS: start, Text: text})
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.NewParse("LRC", "", err.Error())
	}
	sortLines(out.Lines)
	return out, nil
}
