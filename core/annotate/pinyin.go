package annotate

import (
	"strings"
	"unicode"
)

// toneMarks maps a base vowel to its four toned forms. The neutral
// tone (5 or 0) keeps the bare vowel.
var toneMarks = map[rune][4]rune{
	'a': {'ā', 'á', 'ǎ', 'à'},
	'e': {'ē', 'é', 'ě', 'è'},
	'i': {'ī', 'í', 'ǐ', 'ì'},
	'o': {'ō', 'ó', 'ǒ', 'ò'},
	'u': {'ū', 'ú', 'ǔ', 'ù'},
	'ü': {'ǖ', 'ǘ', 'ǚ', 'ǜ'},
	'A': {'Ā', 'Á', 'Ǎ', 'À'},
	'E': {'Ē', 'É', 'Ě', 'È'},
	'I': {'Ī', 'Í', 'Ǐ', 'Ì'},
	'O': {'Ō', 'Ó', 'Ǒ', 'Ò'},
	'U': {'Ū', 'Ú', 'Ǔ', 'Ù'},
	'Ü': {'Ǖ', 'Ǘ', 'Ǚ', 'Ǜ'},
}

// MarkTones converts a whitespace-separated numbered pinyin string
// (the lexicon's "ni3 hao3" form) to diacritic form ("nǐ hǎo").
// Syllables that do not look like numbered pinyin pass through
// unchanged.
func MarkTones(numbered string) string {
	fields := strings.Fields(numbered)
	for i, f := range fields {
		fields[i] = MarkSyllable(f)
	}
	return strings.Join(fields, " ")
}

// MarkSyllable converts a single numbered syllable ("lu:4", "hao3") to
// diacritic form ("lǜ", "hǎo"). Input without a trailing tone digit is
// returned unchanged apart from ü normalization.
func MarkSyllable(syl string) string {
	if syl == "" {
		return syl
	}
	tone := -1
	body := syl
	last := syl[len(syl)-1]
	if last >= '0' && last <= '5' {
		tone = int(last - '0')
		body = syl[:len(syl)-1]
	}

	// CEDICT writes ü as "u:" or "v".
	body = strings.ReplaceAll(body, "u:", "ü")
	body = strings.ReplaceAll(body, "U:", "Ü")
	body = strings.ReplaceAll(body, "v", "ü")
	body = strings.ReplaceAll(body, "V", "Ü")

	if tone < 1 || tone > 4 {
		return body
	}

	runes := []rune(body)
	idx := toneVowelIndex(runes)
	if idx < 0 {
		return body
	}
	if marked, ok := toneMarks[runes[idx]]; ok {
		runes[idx] = marked[tone-1]
	}
	return string(runes)
}

// toneVowelIndex picks the vowel that carries the tone mark: a or e if
// present, the o of "ou", otherwise the last vowel.
func toneVowelIndex(runes []rune) int {
	lowered := make([]rune, len(runes))
	for i, r := range runes {
		lowered[i] = unicode.ToLower(r)
	}
	for i, r := range lowered {
		if r == 'a' || r == 'e' {
			return i
		}
	}
	for i := 0; i < len(lowered)-1; i++ {
		if lowered[i] == 'o' && lowered[i+1] == 'u' {
			return i
		}
	}
	for i := len(lowered) - 1; i >= 0; i-- {
		switch lowered[i] {
		case 'i', 'o', 'u', 'ü':
			return i
		}
	}
	return -1
}
