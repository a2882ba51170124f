package jpho

import "unicode/utf8"

// codepoints is a decoded view of a UTF-8 string: the Unicode scalar values
// in order, plus a parallel byte-offset table with one extra entry so that
// offsets[i+1]-offsets[i] is the encoded length of scalar i and the final
// entry equals the total byte length.
//
// Callers are expected to hand in well-formed UTF-8. If they do not, each
// offending byte decodes to U+FFFD for matching purposes, while slice still
// copies the original bytes through unchanged.
type codepoints struct {
	text    string
	scalars []rune
	offsets []int
}

func decode(s string) codepoints {
	n := utf8.RuneCountInString(s)
	cp := codepoints{
		text:    s,
		scalars: make([]rune, 0, n),
		offsets: make([]int, 0, n+1),
	}
	for i, r := range s {
		cp.scalars = append(cp.scalars, r)
		cp.offsets = append(cp.offsets, i)
	}
	cp.offsets = append(cp.offsets, len(s))
	return cp
}

// slice returns the substring spelled by scalars [i,j), byte-for-byte from
// the original text.
func (cp codepoints) slice(i, j int) string {
	return cp.text[cp.offsets[i]:cp.offsets[j]]
}
