package lyric

import (
	"io"
	"strconv"
	"strings"

	"github.com/antchfx/xmlquery"

	"github.com/pinlyric/pinlyric/core/errors"
)

// ParseTTML parses TTML timed text (the format used by several lyric
// providers). Each <p> element becomes one line, timed by its begin
// attribute; lines without one get StartMS -1.
func ParseTTML(r io.Reader) (*Lyric, error) {
	doc, err := xmlquery.Parse(r)
	if err != nil {
		return nil, errors.NewParse("TTML", "", err.Error())
	}

	out := &Lyric{}
	if title := xmlquery.FindOne(doc, "//ttm:title"); title != nil {
		out.Title = strings.TrimSpace(title.InnerText())
	}

	for _, p := range xmlquery.Find(doc, "//p") {
		text := strings.TrimSpace(p.InnerText())
		if text == "" {
			continue
		}
		out.Lines = append(out.Lines, Line{
			StartMS: parseClock(p.SelectAttr("begin")),
			Text:    text,
		})
	}
	sortLines(out.Lines)
	return out, nil
}

// parseClock converts a TTML time expression to milliseconds. Supported
// forms: "hh:mm:ss.fff", "mm:ss.fff", and offset times like "12.5s" or
// "340ms". Anything else yields -1.
func parseClock(expr string) int {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return -1
	}

	if strings.HasSuffix(expr, "ms") {
		if v, err := strconv.ParseFloat(strings.TrimSuffix(expr, "ms"), 64); err == nil {
			return int(v)
		}
		return -1
	}
	if strings.HasSuffix(expr, "s") && !strings.Contains(expr, ":") {
		if v, err := strconv.ParseFloat(strings.TrimSuffix(expr, "s"), 64); err == nil {
			return int(v * 1000)
		}
		return -1
	}

	parts := strings.Split(expr, ":")
	if len(parts) < 2 || len(parts) > 3 {
		return -1
	}
	total := 0.0
	for _, part := range parts {
		v, err := strconv.ParseFloat(part, 64)
		if err != nil {
			return -1
		}
		total = total*60 + v
	}
	return int(total * 1000)
}
