package layout

// TerminalMeasurer measures text in terminal cells: CJK characters are
// two cells wide, everything else one. It lets the CLI preview wrapped
// lines without a real rendering layer; GUI callers supply their own
// Measurer backed by actual font metrics.
type TerminalMeasurer struct{}

// LineBreak implements Measurer.
func (TerminalMeasurer) LineBreak(text string, _ Style, maxWidth float64) int {
	budget := int(maxWidth)
	width := 0
	count := 0
	for _, ch := range text {
		w := cellWidth(ch)
		if count > 0 && width+w > budget {
			return count
		}
		width += w
		count++
	}
	return count
}

// Rows implements Measurer.
func (TerminalMeasurer) Rows(text string, style Style, maxWidth float64) int {
	if text == "" {
		return 0
	}
	rows := 0
	runes := []rune(text)
	for len(runes) > 0 {
		n := TerminalMeasurer{}.LineBreak(string(runes), style, maxWidth)
		if n <= 0 {
			n = 1
		}
		runes = runes[n:]
		rows++
	}
	return rows
}

func cellWidth(ch rune) int {
	switch {
	case ch >= 0x1100 && ch <= 0x115F, // Hangul jamo
		ch >= 0x2E80 && ch <= 0x303E, // CJK radicals, punctuation
		ch >= 0x3041 && ch <= 0x33FF, // kana, CJK compat
		ch >= 0x3400 && ch <= 0x4DBF, // CJK ext A
		ch >= 0x4E00 && ch <= 0x9FFF, // CJK unified
		ch >= 0xA000 && ch <= 0xA4CF, // Yi
		ch >= 0xAC00 && ch <= 0xD7A3, // Hangul syllables
		ch >= 0xF900 && ch <= 0xFAFF, // CJK compat ideographs
		ch >= 0xFE30 && ch <= 0xFE4F, // CJK compat forms
		ch >= 0xFF00 && ch <= 0xFF60, // fullwidth forms
		ch >= 0xFFE0 && ch <= 0xFFE6,
		ch >= 0x20000 && ch <= 0x2FFFD,
		ch >= 0x30000 && ch <= 0x3FFFD:
		return 2
	}
	return 1
}
