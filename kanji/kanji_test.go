package kanji

import (
	"strings"
	"testing"
)

func TestIsKanji(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		r    rune
		want bool
	}{
		{"common kanji", '日', true},
		{"range start", 0x4E00, true},
		{"range end", 0x9FAF, true},
		{"past range end", 0x9FB0, false},
		{"extension A start", 0x3400, true},
		{"extension A end", 0x4DBF, true},
		{"hiragana", 'あ', false},
		{"katakana", 'ア', false},
		{"latin", 'a', false},
		{"ideographic full stop", '。', false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := IsKanji(tt.r); got != tt.want {
				t.Errorf("IsKanji(%U) = %v, want %v", tt.r, got, tt.want)
			}
		})
	}
}

func TestContainsKanji(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want bool
	}{
		{"日本語", true},
		{"test", false},
		{"", false},
		{"ひらがなカタカナ", false},
		{"abc漢def", true},
	}
	for _, tt := range tests {
		if got := ContainsKanji(tt.in); got != tt.want {
			t.Errorf("ContainsKanji(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestKatakanaToHiragana(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{"カタカナ", "かたかな"},
		{"abc", "abc"},
		{"", ""},
		{"ニホンゴ", "にほんご"},
		{"ひらがな", "ひらがな"},
		{"日本ゴ", "日本ご"},
		{"ヴ", "ゔ"},
		{"ラーメン", "らーめん"},
		{"ヽ・", "ゝ・"},
		{"゠ヷヺヿ", "゠ヷヺヿ"},
	}
	for _, tt := range tests {
		if got := KatakanaToHiragana(tt.in); got != tt.want {
			t.Errorf("KatakanaToHiragana(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestKatakanaToHiraganaIdempotent(t *testing.T) {
	t.Parallel()

	for _, in := range []string{"トウキョウ", "とうきょう", "東京タワー"} {
		once := KatakanaToHiragana(in)
		if twice := KatakanaToHiragana(once); twice != once {
			t.Errorf("second conversion of %q changed %q to %q", in, once, twice)
		}
	}
}

func TestNormalizeReading(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{"い.り", "いり"},
		{"-かわ", "かわ"},
		{"ニチ", "にち"},
	}
	for _, tt := range tests {
		if got := NormalizeReading(tt.in); got != tt.want {
			t.Errorf("NormalizeReading(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestStem(t *testing.T) {
	t.Parallel()

	if got := Stem("い.り"); got != "い" {
		t.Errorf("Stem(い.り) = %q, want い", got)
	}
	if got := Stem("-がわ"); got != "がわ" {
		t.Errorf("Stem(-がわ) = %q, want がわ", got)
	}
}

func TestDefaultReading(t *testing.T) {
	t.Parallel()

	if r, ok := DefaultReading('日'); !ok || r != "にち" {
		t.Errorf("DefaultReading(日) = %q, %v", r, ok)
	}
	if _, ok := DefaultReading('鬱'); ok {
		t.Error("DefaultReading(鬱) should be absent")
	}
}

const sampleKanjidic2 = `<?xml version="1.0" encoding="UTF-8"?>
<kanjidic2>
<header><file_version>4</file_version></header>
<character>
<literal>入</literal>
<reading_meaning><rmgroup>
<reading r_type="pinyin">ru4</reading>
<reading r_type="ja_on">ニュウ</reading>
<reading r_type="ja_kun">い.る</reading>
</rmgroup></reading_meaning>
</character>
<character>
<literal>川</literal>
<reading_meaning><rmgroup>
<reading r_type="ja_on">セン</reading>
<reading r_type="ja_kun">かわ</reading>
</rmgroup></reading_meaning>
</character>
<character>
<literal>ab</literal>
<reading_meaning><rmgroup><reading r_type="ja_on">エー</reading></rmgroup></reading_meaning>
</character>
</kanjidic2>`

func TestParseKanjidic2(t *testing.T) {
	t.Parallel()

	table, err := ParseKanjidic2(strings.NewReader(sampleKanjidic2))
	if err != nil {
		t.Fatalf("ParseKanjidic2() error = %v", err)
	}
	if len(table) != 2 {
		t.Fatalf("expected 2 entries, got %d: %v", len(table), table)
	}
	if got := table['入']; len(got) != 2 || got[0] != "ニュウ" || got[1] != "い.る" {
		t.Errorf("readings for 入 = %v", got)
	}
	if r, ok := table.Reading('川'); !ok || r != "せん" {
		t.Errorf("Reading(川) = %q, %v, want せん", r, ok)
	}
	if _, ok := table.Reading('山'); ok {
		t.Error("Reading(山) should be absent")
	}
}

func TestParseKanjidic2Malformed(t *testing.T) {
	t.Parallel()

	if _, err := ParseKanjidic2(strings.NewReader("<kanjidic2><character>")); err == nil {
		t.Error("expected error for truncated document")
	}
}
