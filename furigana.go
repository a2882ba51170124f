package jpho

import "strings"

// Sentinel pair delimiting a pinned reading in the marked intermediate
// text. Private-use code points, vanishingly unlikely in ordinary input;
// the pipeline strips them from every result regardless.
const (
	readingStart = '\uE000'
	readingEnd   = '\uE001'
)

// maxHintLookahead bounds the compound-resolution probe after a hint's
// closing bracket, in scalars.
const maxHintLookahead = 6

// MarkReadings resolves furigana hints of the form 漢字「かんじ」 and returns an
// intermediate text in which each pinned reading replaces its span, wrapped
// in a sentinel pair so that segmentation keeps it intact as one token.
// Particles following a hint still segment on their own; no separate
// particle list is needed.
//
// The span of a hint is the maximal run of non-whitespace, non-」 scalars
// immediately before the opening bracket. A hint with an empty reading is
// dropped entirely. When a segmenter is supplied and the span plus a short
// lookahead after the closing bracket forms a word-list entry, that
// compound is emitted verbatim instead and the hint is dropped: the word
// list's own segmentation already produces the correct unit (e.g. 見「み」て
// stays 見て when 見て is a known word).
//
// Text outside hints, including unpaired brackets, is copied through
// unchanged.
func MarkReadings(text string, seg *Segmenter) string {
	cp := decode(text)
	scalars := cp.scalars
	var sb strings.Builder
	sb.Grow(len(text))
	pos := 0
	for pos < len(scalars) {
		open := scanFor(scalars, pos, '「')
		if open < 0 {
			sb.WriteString(cp.slice(pos, len(scalars)))
			break
		}
		closing := scanFor(scalars, open+1, '」')
		if closing < 0 {
			// no closing bracket: malformed, keep the remainder verbatim
			sb.WriteString(cp.slice(pos, len(scalars)))
			break
		}
		spanStart := open
		for spanStart > pos && !isSpace(scalars[spanStart-1]) && scalars[spanStart-1] != '」' {
			spanStart--
		}
		sb.WriteString(cp.slice(pos, spanStart))
		reading := strings.TrimSpace(cp.slice(open+1, closing))
		if reading == "" {
			pos = closing + 1 // the whole hint contributes nothing
			continue
		}
		span := cp.slice(spanStart, open)
		if n := compoundLength(cp, closing+1, span, seg); n > 0 {
			tracer().Debugf("furigana hint on %q resolved to compound %q", span, span+cp.slice(closing+1, closing+1+n))
			sb.WriteString(span)
			sb.WriteString(cp.slice(closing+1, closing+1+n))
			pos = closing + 1 + n
			continue
		}
		sb.WriteRune(readingStart)
		sb.WriteString(reading)
		sb.WriteRune(readingEnd)
		pos = closing + 1
	}
	return sb.String()
}

// compoundLength probes lookahead windows after the closing bracket and
// returns the scalar length of the shortest window for which span+window is
// a complete word-list entry, or 0 if none is. Windows grow one scalar at a
// time up to maxHintLookahead; byte widths play no role.
func compoundLength(cp codepoints, after int, span string, seg *Segmenter) int {
	if seg == nil {
		return 0
	}
	limit := min(maxHintLookahead, len(cp.scalars)-after)
	for n := 1; n <= limit; n++ {
		if seg.ContainsWord(span + cp.slice(after, after+n)) {
			return n
		}
	}
	return 0
}

func scanFor(scalars []rune, from int, want rune) int {
	for i := from; i < len(scalars); i++ {
		if scalars[i] == want {
			return i
		}
	}
	return -1
}

// stripMarkers removes every sentinel scalar from s. It also scrubs
// sentinels that were present in the caller's input verbatim, so pipeline
// output never leaks them.
func stripMarkers(s string) string {
	if !strings.ContainsRune(s, readingStart) && !strings.ContainsRune(s, readingEnd) {
		return s
	}
	var sb strings.Builder
	sb.Grow(len(s))
	for _, r := range s {
		if r != readingStart && r != readingEnd {
			sb.WriteRune(r)
		}
	}
	return sb.String()
}
