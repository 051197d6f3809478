package annotate

import "testing"

func TestMarkSyllable(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"ni3", "nǐ"},
		{"hao3", "hǎo"},
		{"shi4", "shì"},
		{"jie4", "jiè"},
		{"ma1", "mā"},
		{"men5", "men"}, // neutral tone
		{"men0", "men"},
		{"lu:4", "lǜ"},  // CEDICT ü as u:
		{"nv3", "nǚ"},   // CEDICT ü as v
		{"ou3", "ǒu"},   // ou marks the o
		{"gui4", "guì"}, // no a/e/ou: last vowel
		{"xiong1", "xiōng"},
		{"Bei3", "Běi"}, // capitalized proper noun
		{"r5", "r"},     // erhua remnant
		{"", ""},
		{"hao", "hao"},   // no tone digit
		{"xyz9", "xyz9"}, // not pinyin, passthrough
	}
	for _, tt := range tests {
		if got := MarkSyllable(tt.in); got != tt.want {
			t.Errorf("MarkSyllable(%q) = %q; want %q", tt.in, got, tt.want)
		}
	}
}

func TestMarkTones(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"ni3 hao3", "nǐ hǎo"},
		{"shi4 jie4", "shì jiè"},
		{"peng2 you5", "péng you"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := MarkTones(tt.in); got != tt.want {
			t.Errorf("MarkTones(%q) = %q; want %q", tt.in, got, tt.want)
		}
	}
}
