package script

import (
	"testing"

	"github.com/pinlyric/pinlyric/core/lexicon"
)

func buildSample(t *testing.T, overrides []Override) *Table {
	t.Helper()
	lex := lexicon.FromEntries([]*lexicon.Entry{
		{Traditional: "聽", Simplified: "听", Frequency: 900},
		{Traditional: "說話", Simplified: "说话", Frequency: 800},
		{Traditional: "你好", Simplified: "你好", Frequency: 1000},
		{Traditional: "馬", Simplified: "马", Frequency: 700},
	})
	return BuildWithOverrides(lex, overrides)
}

func TestConvertRoundTrip(t *testing.T) {
	table := buildSample(t, nil)

	tests := []struct {
		in, wantSimp, wantTrad string
	}{
		{"聽說話", "听说话", "聽說話"},
		{"听说话", "听说话", "聽說話"},
		{"你好", "你好", "你好"},       // no-conversion entry
		{"abc 123", "abc 123", "abc 123"}, // unmapped passthrough
		{"", "", ""},
	}
	for _, tt := range tests {
		if got := table.ToSimplified(tt.in); got != tt.wantSimp {
			t.Errorf("ToSimplified(%q) = %q; want %q", tt.in, got, tt.wantSimp)
		}
		if got := table.ToTraditional(tt.in); got != tt.wantTrad {
			t.Errorf("ToTraditional(%q) = %q; want %q", tt.in, got, tt.wantTrad)
		}
	}
}

func TestConvertDeterministic(t *testing.T) {
	table := buildSample(t, nil)
	in := "聽馬说话"
	first := table.ToSimplified(in)
	for i := 0; i < 3; i++ {
		if got := table.ToSimplified(in); got != first {
			t.Fatalf("ToSimplified not deterministic: %q then %q", first, got)
		}
	}
}

func TestNoConversionExclusion(t *testing.T) {
	// 好 appears both in an identical-form entry and in a differing
	// pair; the identical-form entry must exclude it from mapping.
	lex := lexicon.FromEntries([]*lexicon.Entry{
		{Traditional: "好", Simplified: "好", Frequency: 1000},
		{Traditional: "好馬", Simplified: "好马", Frequency: 900},
	})
	table := BuildWithOverrides(lex, nil)

	if got := table.ToSimplified("好"); got != "好" {
		t.Errorf("ToSimplified(好) = %q; want passthrough", got)
	}
	if got := table.ToTraditional("好"); got != "好" {
		t.Errorf("ToTraditional(好) = %q; want passthrough", got)
	}
	// The pair not touching the no-conversion set still maps.
	if got := table.ToSimplified("馬"); got != "马" {
		t.Errorf("ToSimplified(馬) = %q; want 马", got)
	}
}

func TestSimpToTradFirstWriterWins(t *testing.T) {
	// Both 乾 and 幹 simplify to 干. The higher-frequency entry must
	// own the simplified-to-traditional direction; the
	// traditional-to-simplified direction maps both.
	lex := lexicon.FromEntries([]*lexicon.Entry{
		{Traditional: "幹", Simplified: "干", Frequency: 500},
		{Traditional: "乾", Simplified: "干", Frequency: 900},
	})
	table := BuildWithOverrides(lex, nil)

	if got := table.ToTraditional("干"); got != "乾" {
		t.Errorf("ToTraditional(干) = %q; want 乾 (highest frequency wins)", got)
	}
	if got := table.ToSimplified("乾"); got != "干" {
		t.Errorf("ToSimplified(乾) = %q; want 干", got)
	}
	if got := table.ToSimplified("幹"); got != "干" {
		t.Errorf("ToSimplified(幹) = %q; want 干", got)
	}
}

func TestFrequencyTieKeepsEntryOrder(t *testing.T) {
	// Equal frequencies: the stable sort keeps lexicon order, so the
	// first entry wins the simplified-to-traditional slot.
	lex := lexicon.FromEntries([]*lexicon.Entry{
		{Traditional: "裡", Simplified: "里", Frequency: 100},
		{Traditional: "裏", Simplified: "里", Frequency: 100},
	})
	table := BuildWithOverrides(lex, nil)
	if got := table.ToTraditional("里"); got != "裡" {
		t.Errorf("ToTraditional(里) = %q; want 裡 (entry order on tie)", got)
	}
}

func TestOverridePrecedence(t *testing.T) {
	overrides := []Override{{Simplified: '干', Traditional: '幹'}}
	lex := lexicon.FromEntries([]*lexicon.Entry{
		{Traditional: "乾", Simplified: "干", Frequency: 900},
		{Traditional: "幹", Simplified: "干", Frequency: 500},
	})
	table := BuildWithOverrides(lex, overrides)

	if got := table.ToTraditional("干"); got != "幹" {
		t.Errorf("ToTraditional(干) = %q; want override 幹", got)
	}
	if got := table.ToSimplified("幹"); got != "干" {
		t.Errorf("ToSimplified(幹) = %q; want 干", got)
	}
}

func TestDefaultOverrides(t *testing.T) {
	table := Build(lexicon.New())
	for _, o := range defaultOverrides {
		if got := table.ToTraditional(string(o.Simplified)); got != string(o.Traditional) {
			t.Errorf("ToTraditional(%c) = %q; want %c", o.Simplified, got, o.Traditional)
		}
		if got := table.ToSimplified(string(o.Traditional)); got != string(o.Simplified) {
			t.Errorf("ToSimplified(%c) = %q; want %c", o.Traditional, got, o.Simplified)
		}
	}
}

func TestInvalidUTF8Passthrough(t *testing.T) {
	table := buildSample(t, nil)
	in := "聽" + string([]byte{0xff, 0xfe})
	if got := table.ToSimplified(in); got != in {
		t.Errorf("invalid UTF-8 should pass through unchanged; got %q", got)
	}
}

func TestNilAndEmptyTable(t *testing.T) {
	var table *Table
	if got := table.ToSimplified("聽"); got != "聽" {
		t.Errorf("nil table ToSimplified = %q; want passthrough", got)
	}
	empty := BuildWithOverrides(nil, nil)
	if got := empty.ToTraditional("听"); got != "听" {
		t.Errorf("empty table ToTraditional = %q; want passthrough", got)
	}
}

func TestZipStopsAtShorterForm(t *testing.T) {
	// Mismatched form lengths zip up to the shorter length only.
	lex := lexicon.FromEntries([]*lexicon.Entry{
		{Traditional: "發發發", Simplified: "发", Frequency: 100},
	})
	table := BuildWithOverrides(lex, nil)
	if got := table.ToSimplified("發"); got != "发" {
		t.Errorf("ToSimplified(發) = %q; want 发", got)
	}
}
