package kana

import "testing"

func TestTableSizes(t *testing.T) {
	if got := len(Hiragana()); got != 84 {
		t.Fatalf("hiragana table has %d entries, want 84", got)
	}
	if got := len(Katakana()); got != 90 {
		t.Fatalf("katakana table has %d entries, want 90", got)
	}
	// the three key sets are disjoint, so the baseline is their sum
	if got, want := len(Baseline()), 84+90+len(CommonKanji()); got != want {
		t.Fatalf("baseline has %d entries, want %d", got, want)
	}
}

func TestTableValues(t *testing.T) {
	tests := []struct {
		key  string
		want string
	}{
		{"し", "ɕi"},
		{"じ", "ʥi"},
		{"ち", "ʨi"},
		{"つ", "ʦɯ"},
		{"ふ", "ɸɯ"},
		{"わ", "ɰa"},
		{"ん", "ɴ"},
		{"っ", "ʔ"},
		{"ヺ", "vo"},
		{"ヶ", "ke"},
		{"咲", "saki"},
	}
	baseline := Baseline()
	for _, tt := range tests {
		if got := baseline[tt.key]; got != tt.want {
			t.Fatalf("baseline[%q] = %q, want %q", tt.key, got, tt.want)
		}
	}
}

func TestTablesReturnCopies(t *testing.T) {
	h := Hiragana()
	h["あ"] = "mutated"
	if got := Hiragana()["あ"]; got != "a" {
		t.Fatalf("table aliased by caller mutation: got %q", got)
	}
	b := Baseline()
	delete(b, "ア")
	if _, ok := Baseline()["ア"]; !ok {
		t.Fatal("baseline aliased by caller mutation")
	}
}

func TestToHiragana(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"トム", "とむ"},
		{"リンゴ", "りんご"},
		{"ヴ", "ゔ"},
		{"ヶ", "ゖ"},
		{"カタカナとひらがな", "かたかなとひらがな"},
		{"ローマ", "ろーま"}, // ー has no hiragana form
		{"abc 漢字", "abc 漢字"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := ToHiragana(tt.input); got != tt.want {
			t.Fatalf("ToHiragana(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestIsKana(t *testing.T) {
	for _, r := range "あんッゟヿ" {
		if !IsKana(r) {
			t.Fatalf("IsKana(%q) = false, want true", r)
		}
	}
	for _, r := range "a漢。1" {
		if IsKana(r) {
			t.Fatalf("IsKana(%q) = true, want false", r)
		}
	}
}

func TestIsKanji(t *testing.T) {
	for _, r := range "咲日本語" {
		if !IsKanji(r) {
			t.Fatalf("IsKanji(%q) = false, want true", r)
		}
	}
	for _, r := range "あアa1" {
		if IsKanji(r) {
			t.Fatalf("IsKanji(%q) = true, want false", r)
		}
	}
}
