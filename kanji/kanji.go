package kanji

import (
	"strings"
	"unicode/utf8"
)

const (
	hiraganaStart = 0x3040
	katakanaStart = 0x30A0

	// kanaOffset is the distance between a katakana rune and its hiragana twin.
	kanaOffset = katakanaStart - hiraganaStart
)

// IsKanji reports whether r is a CJK Unified Ideograph (U+4E00–U+9FAF)
// or in Extension A (U+3400–U+4DBF).
func IsKanji(r rune) bool {
	return (r >= 0x4E00 && r <= 0x9FAF) || (r >= 0x3400 && r <= 0x4DBF)
}

// ContainsKanji reports whether any rune of s is a kanji.
func ContainsKanji(s string) bool {
	for _, r := range s {
		if IsKanji(r) {
			return true
		}
	}
	return false
}

// hasHiraganaTwin reports whether katakana r has a hiragana counterpart at
// r-kanaOffset. The prolonged sound mark, the middle dot and ヷ-ヺ do not.
func hasHiraganaTwin(r rune) bool {
	return (r >= 0x30A1 && r <= 0x30F6) || r == 0x30FD || r == 0x30FE
}

// KatakanaToHiragana converts katakana to hiragana for furigana display.
// Only ァ-ヶ (U+30A1-U+30F6) and ヽヾ are shifted. ー (U+30FC), ・ (U+30FB),
// ゠ (U+30A0), ヷ-ヺ (U+30F7-U+30FA) and ヿ (U+30FF) are copied unchanged,
// as is every rune outside the katakana block.
func KatakanaToHiragana(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if hasHiraganaTwin(r) {
			r -= kanaOffset
		}
		b.WriteRune(r)
	}
	return b.String()
}

// NormalizeReading removes Kanjidic2 markers ('.' separating okurigana and
// '-' marking prefixes/suffixes) and converts katakana to hiragana so that
// "い.り" compares equal to "いり".
func NormalizeReading(s string) string {
	s = strings.Map(func(r rune) rune {
		if r == '.' || r == '-' {
			return -1
		}
		return r
	}, s)
	return KatakanaToHiragana(s)
}

// Stem returns the part of a Kanjidic2 reading that belongs to the kanji
// itself, dropping okurigana after '.' and affix markers.
func Stem(s string) string {
	if i := strings.IndexRune(s, '.'); i >= 0 {
		s = s[:i]
	}
	return NormalizeReading(s)
}

// isSingleRune reports whether s holds exactly one rune.
func isSingleRune(s string) bool {
	return s != "" && utf8.RuneCountInString(s) == 1
}
