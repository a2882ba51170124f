package dict

import (
	"encoding/json"
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/npillmayer/jpho/kana"
	"golang.org/x/text/unicode/norm"
)

// Ligatures maps multi-scalar IPA affricate spellings to the
// single-scalar ligature forms a phonemizer vocabulary carries.
var Ligatures = map[string]string{
	"dʑ": "ʥ", // U+02A5 voiced alveolo-palatal affricate
	"tɕ": "ʨ", // U+02A8 voiceless alveolo-palatal affricate
	"ts": "ʦ", // U+02A6 voiceless alveolar affricate
	"dz": "ʣ", // U+02A3 voiced alveolar affricate
	"tʃ": "ʧ", // U+02A7 voiceless postalveolar affricate
	"dʒ": "ʤ", // U+02A4 voiced postalveolar affricate
}

// Punctuation passes through conversion unchanged, so dictionaries must
// not map it. These are the keys StripPunctuation removes.
var punctuation = []string{
	"。", "、", "！", "？", "：", "；", "「", "」", "『", "』",
	"（", "）", "・", "　", "〜", "゛", "゜",
	".", ",", "!", "?", ":", ";", "-", "—", "…",
	"(", ")", "[", "]", "\"", "'", " ", "\n", "\t",
}

var ligatureReplacer = newLigatureReplacer()

// newLigatureReplacer orders sources longest first so that overlapping
// spellings fold to the longer ligature.
func newLigatureReplacer() *strings.Replacer {
	sources := slices.SortedFunc(maps.Keys(Ligatures), func(a, b string) int {
		if d := len(b) - len(a); d != 0 {
			return d
		}
		return strings.Compare(a, b)
	})
	pairs := make([]string, 0, 2*len(sources))
	for _, src := range sources {
		pairs = append(pairs, src, Ligatures[src])
	}
	return strings.NewReplacer(pairs...)
}

// FoldLigatures rewrites multi-scalar affricate spellings in a phoneme
// string to their ligature forms.
func FoldLigatures(phoneme string) string {
	return ligatureReplacer.Replace(phoneme)
}

// FillKana adds the baseline kana and common-kanji entries missing from
// entries and returns how many were added. Existing entries are never
// overwritten.
func FillKana(entries map[string]string) int {
	added := 0
	for text, phoneme := range kana.Baseline() {
		if _, ok := entries[text]; !ok {
			entries[text] = phoneme
			added++
		}
	}
	return added
}

// StripPunctuation removes punctuation keys from entries and returns how
// many were present.
func StripPunctuation(entries map[string]string) int {
	removed := 0
	for _, p := range punctuation {
		if _, ok := entries[p]; ok {
			delete(entries, p)
			removed++
		}
	}
	return removed
}

// NormalizeKeys rewrites dictionary keys to Unicode NFC and returns how
// many changed. On collision the entry that already had the normalized
// form wins, then the lexicographically smallest denormalized key.
func NormalizeKeys(entries map[string]string) int {
	changed := 0
	for _, key := range slices.Sorted(maps.Keys(entries)) {
		normalized := norm.NFC.String(key)
		if normalized == key {
			continue
		}
		if _, ok := entries[normalized]; !ok {
			entries[normalized] = entries[key]
		}
		delete(entries, key)
		changed++
	}
	return changed
}

// AlignStats reports what Align changed.
type AlignStats struct {
	Added   int // baseline kana and kanji entries filled in
	Removed int // punctuation entries dropped
	Folded  int // phoneme values rewritten to ligature form
}

func (s AlignStats) String() string {
	return fmt.Sprintf("%d added, %d punctuation removed, %d folded to ligatures",
		s.Added, s.Removed, s.Folded)
}

// Align runs the dictionary preparation sequence in place: fill in the
// kana baseline, strip punctuation entries, then fold every phoneme
// value to ligature form.
func Align(entries map[string]string) AlignStats {
	stats := AlignStats{
		Added:   FillKana(entries),
		Removed: StripPunctuation(entries),
	}
	for key, phoneme := range entries {
		if folded := FoldLigatures(phoneme); folded != phoneme {
			entries[key] = folded
			stats.Folded++
		}
	}
	return stats
}

// Violation flags a dictionary entry whose phoneme string uses a scalar
// outside the phonemizer vocabulary.
type Violation struct {
	Text    string // dictionary key
	Phoneme string
	Invalid rune // first out-of-vocabulary scalar
}

func (v Violation) String() string {
	return fmt.Sprintf("%q -> %q (invalid %q)", v.Text, v.Phoneme, v.Invalid)
}

// ValidateVocab checks every phoneme string against an allowed scalar
// set and returns one violation per offending entry, first bad scalar
// only, sorted by dictionary key.
func ValidateVocab(entries map[string]string, vocab map[rune]bool) []Violation {
	var violations []Violation
	for text, phoneme := range entries {
		for _, r := range phoneme {
			if !vocab[r] {
				violations = append(violations, Violation{Text: text, Phoneme: phoneme, Invalid: r})
				break
			}
		}
	}
	slices.SortFunc(violations, func(a, b Violation) int {
		return strings.Compare(a.Text, b.Text)
	})
	return violations
}

// ReadVocab decodes a phonemizer vocabulary JSON object and returns its
// single-scalar keys as an allowed set. Values (token ids) and longer
// keys are ignored; a longer key can never match one scalar.
func ReadVocab(r io.Reader) (map[rune]bool, error) {
	var raw map[string]json.RawMessage
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("decoding vocabulary JSON: %w", err)
	}
	vocab := make(map[rune]bool, len(raw))
	for key := range raw {
		if r, size := utf8.DecodeRuneInString(key); size == len(key) {
			vocab[r] = true
		}
	}
	return vocab, nil
}
