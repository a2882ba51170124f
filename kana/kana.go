/*
Package kana carries the baseline phoneme tables for the Japanese kana
syllabaries: per-character IPA values for basic hiragana and katakana
(small forms and the old w-row included) plus a handful of common kanji.
These tables seed sparse dictionaries and serve as the fallback
dictionary when no external one is loaded.

Phoneme values use single-character IPA affricate ligatures (ʨ, ʥ, ʦ)
throughout, matching what dict.FoldLigatures produces.
*/
package kana

import (
	"maps"
	"strings"
	"unicode"
)

var hiragana = map[string]string{
	"あ": "a", "い": "i", "う": "ɯ", "え": "e", "お": "o",
	"か": "ka", "き": "ki", "く": "kɯ", "け": "ke", "こ": "ko",
	"が": "ga", "ぎ": "gi", "ぐ": "gɯ", "げ": "ge", "ご": "go",
	"さ": "sa", "し": "ɕi", "す": "sɯ", "せ": "se", "そ": "so",
	"ざ": "za", "じ": "ʥi", "ず": "zɯ", "ぜ": "ze", "ぞ": "zo",
	"た": "ta", "ち": "ʨi", "つ": "ʦɯ", "て": "te", "と": "to",
	"だ": "da", "ぢ": "ʥi", "づ": "zɯ", "で": "de", "ど": "do",
	"な": "na", "に": "ni", "ぬ": "nɯ", "ね": "ne", "の": "no",
	"は": "ha", "ひ": "çi", "ふ": "ɸɯ", "へ": "he", "ほ": "ho",
	"ば": "ba", "び": "bi", "ぶ": "bɯ", "べ": "be", "ぼ": "bo",
	"ぱ": "pa", "ぴ": "pi", "ぷ": "pɯ", "ぺ": "pe", "ぽ": "po",
	"ま": "ma", "み": "mi", "む": "mɯ", "め": "me", "も": "mo",
	"や": "ja", "ゆ": "jɯ", "よ": "jo",
	"ら": "ɾa", "り": "ɾi", "る": "ɾɯ", "れ": "ɾe", "ろ": "ɾo",
	"わ": "ɰa", "ゐ": "i", "ゑ": "e", "を": "o", "ん": "ɴ",
	"ゔ": "vɯ",
	// small forms
	"ぁ": "a", "ぃ": "i", "ぅ": "ɯ", "ぇ": "e", "ぉ": "o",
	"ゃ": "ja", "ゅ": "jɯ", "ょ": "jo",
	"ゎ": "ɰa", "っ": "ʔ",
}

var katakana = map[string]string{
	"ア": "a", "イ": "i", "ウ": "ɯ", "エ": "e", "オ": "o",
	"カ": "ka", "キ": "ki", "ク": "kɯ", "ケ": "ke", "コ": "ko",
	"ガ": "ga", "ギ": "gi", "グ": "gɯ", "ゲ": "ge", "ゴ": "go",
	"サ": "sa", "シ": "ɕi", "ス": "sɯ", "セ": "se", "ソ": "so",
	"ザ": "za", "ジ": "ʥi", "ズ": "zɯ", "ゼ": "ze", "ゾ": "zo",
	"タ": "ta", "チ": "ʨi", "ツ": "ʦɯ", "テ": "te", "ト": "to",
	"ダ": "da", "ヂ": "ʥi", "ヅ": "zɯ", "デ": "de", "ド": "do",
	"ナ": "na", "ニ": "ni", "ヌ": "nɯ", "ネ": "ne", "ノ": "no",
	"ハ": "ha", "ヒ": "çi", "フ": "ɸɯ", "ヘ": "he", "ホ": "ho",
	"バ": "ba", "ビ": "bi", "ブ": "bɯ", "ベ": "be", "ボ": "bo",
	"パ": "pa", "ピ": "pi", "プ": "pɯ", "ペ": "pe", "ポ": "po",
	"マ": "ma", "ミ": "mi", "ム": "mɯ", "メ": "me", "モ": "mo",
	"ヤ": "ja", "ユ": "jɯ", "ヨ": "jo",
	"ラ": "ɾa", "リ": "ɾi", "ル": "ɾɯ", "レ": "ɾe", "ロ": "ɾo",
	"ワ": "ɰa", "ヰ": "i", "ヱ": "e", "ヲ": "o", "ン": "ɴ",
	"ヴ": "vɯ", "ヵ": "ka", "ヶ": "ke",
	// small forms
	"ァ": "a", "ィ": "i", "ゥ": "ɯ", "ェ": "e", "ォ": "o",
	"ャ": "ja", "ュ": "jɯ", "ョ": "jo",
	"ヮ": "ɰa", "ッ": "ʔ",
	// extended katakana
	"ヷ": "va", "ヸ": "vi", "ヹ": "ve", "ヺ": "vo",
}

var commonKanji = map[string]string{
	"咲": "saki",
}

// Hiragana returns a fresh copy of the basic hiragana table.
func Hiragana() map[string]string {
	return maps.Clone(hiragana)
}

// Katakana returns a fresh copy of the basic katakana table, extended
// forms included.
func Katakana() map[string]string {
	return maps.Clone(katakana)
}

// CommonKanji returns a fresh copy of the common-kanji table.
func CommonKanji() map[string]string {
	return maps.Clone(commonKanji)
}

// Baseline returns the union of all three tables as a fresh map. It is a
// small but complete per-character dictionary: any pure-kana text
// converts fully with it.
func Baseline() map[string]string {
	entries := Hiragana()
	maps.Copy(entries, katakana)
	maps.Copy(entries, commonKanji)
	return entries
}

// ToHiragana folds katakana scalars in s to their hiragana counterparts
// by code-point shift. Extended katakana without a hiragana form (ヷ ヸ ヹ ヺ
// and the prolonged sound mark) and all other scalars pass through.
func ToHiragana(s string) string {
	return strings.Map(func(r rune) rune {
		if r >= 'ァ' && r <= 'ヶ' {
			return r - 0x60
		}
		return r
	}, s)
}

// IsKana reports whether r belongs to the Hiragana or Katakana script.
// Shared marks of script Common, like the prolonged sound mark ー, do not
// count.
func IsKana(r rune) bool {
	return unicode.Is(unicode.Hiragana, r) || unicode.Is(unicode.Katakana, r)
}

// IsKanji reports whether r is a Han ideograph.
func IsKanji(r rune) bool {
	return unicode.Is(unicode.Han, r)
}
