package lexicon

import "testing"

func sample() *Lexicon {
	return FromEntries([]*Entry{
		{Traditional: "你好", Simplified: "你好", Pinyin: "ni3 hao3", Glosses: []string{"hello"}},
		{Traditional: "世界", Simplified: "世界", Pinyin: "shi4 jie4", Glosses: []string{"world"}},
		{Traditional: "聽", Simplified: "听", Pinyin: "ting1", Glosses: []string{"to listen"}, Frequency: 900},
		{Traditional: "廳", Simplified: "厅", Pinyin: "ting1", Glosses: []string{"hall"}, Frequency: 400},
	})
}

func TestLookupExact(t *testing.T) {
	lex := sample()

	e, ok := lex.LookupExact("你好")
	if !ok {
		t.Fatal("LookupExact(你好) not found")
	}
	if e.Pinyin != "ni3 hao3" {
		t.Errorf("Pinyin = %q; want %q", e.Pinyin, "ni3 hao3")
	}

	if _, ok := lex.LookupExact("不在"); ok {
		t.Error("LookupExact(不在) should not be found")
	}

	// Simplified forms are not primary keys.
	if _, ok := lex.LookupExact("听"); ok {
		t.Error("LookupExact(听) should miss; 听 is a simplified form")
	}
}

func TestScanByForm(t *testing.T) {
	lex := sample()

	tests := []struct {
		form string
		want string // expected traditional key, "" = miss
	}{
		{"聽", "聽"},
		{"听", "聽"},
		{"厅", "廳"},
		{"你好", "你好"},
		{"不在", ""},
	}
	for _, tt := range tests {
		e, ok := lex.ScanByForm(tt.form)
		if tt.want == "" {
			if ok {
				t.Errorf("ScanByForm(%q) = %v; want miss", tt.form, e.Traditional)
			}
			continue
		}
		if !ok || e.Traditional != tt.want {
			t.Errorf("ScanByForm(%q) = %v, %v; want %q", tt.form, e, ok, tt.want)
		}
	}
}

func TestScanByFormFirstMatchWins(t *testing.T) {
	// Two entries share the simplified form 干; the earlier one must
	// win, matching a linear scan in entry order.
	lex := FromEntries([]*Entry{
		{Traditional: "乾", Simplified: "干", Pinyin: "gan1", Glosses: []string{"dry"}},
		{Traditional: "幹", Simplified: "干", Pinyin: "gan4", Glosses: []string{"to do"}},
	})
	e, ok := lex.ScanByForm("干")
	if !ok || e.Traditional != "乾" {
		t.Errorf("ScanByForm(干) = %v, %v; want first entry 乾", e, ok)
	}
}

func TestAddDuplicateOverwrites(t *testing.T) {
	lex := New()
	lex.Add(&Entry{Traditional: "好", Simplified: "好", Pinyin: "hao3", Glosses: []string{"good"}})
	lex.Add(&Entry{Traditional: "好", Simplified: "好", Pinyin: "hao4", Glosses: []string{"to like"}})

	if lex.Len() != 1 {
		t.Fatalf("Len() = %d; want 1", lex.Len())
	}
	e, _ := lex.LookupExact("好")
	if e.Pinyin != "hao4" {
		t.Errorf("duplicate should overwrite; Pinyin = %q, want %q", e.Pinyin, "hao4")
	}
}

func TestEntriesKeepLoadOrder(t *testing.T) {
	lex := sample()
	entries := lex.Entries()
	if len(entries) != 4 {
		t.Fatalf("len(Entries()) = %d; want 4", len(entries))
	}
	if entries[0].Traditional != "你好" || entries[3].Traditional != "廳" {
		t.Errorf("entries out of load order: first %q last %q",
			entries[0].Traditional, entries[3].Traditional)
	}
}

func TestNilLexicon(t *testing.T) {
	var lex *Lexicon
	if _, ok := lex.LookupExact("你"); ok {
		t.Error("nil lexicon LookupExact should miss")
	}
	if _, ok := lex.ScanByForm("你"); ok {
		t.Error("nil lexicon ScanByForm should miss")
	}
	if lex.Len() != 0 {
		t.Error("nil lexicon Len should be 0")
	}
}
