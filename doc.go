/*
Package jpho converts Japanese text into a phonemic (IPA-like)
transcription by greedy longest-match substitution against a phoneme
dictionary, with optional word-boundary spacing derived from a second
longest-match pass over a word list.

Three engines cooperate, each built on a prefix trie over Unicode
scalar values:

  - Converter replaces the longest dictionary entry found at each
    position with its phoneme string; scalars without an entry pass
    through unchanged.
  - Segmenter splits text into word tokens, grouping unmatched
    grammatical runs (particles, inflections) into single tokens.
  - MarkReadings resolves inline furigana hints of the form 漢字「かんじ」,
    pinning the bracketed reading through segmentation.

Pipeline ties the three together: hint resolution, segmentation, then
per-token conversion joined with spaces.

Dictionaries and word lists are plain in-memory collections; parsing of
concrete file formats (JSON, line-oriented word lists, the binary trie
format) lives in the dict subpackage.

Further Reading

	https://en.wikipedia.org/wiki/Furigana
	https://en.wikipedia.org/wiki/Help:IPA/Japanese

----------------------------------------------------------------------

# BSD License

Copyright (c) Norbert Pillmayer <norbert@pillmayer@com>

All rights reserved.

License information is available in the LICENSE file.
*/
package jpho

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'jpho'
func tracer() tracing.Trace {
	return tracing.Select("jpho")
}

func assert(condition bool, msg string) {
	if !condition {
		panic(msg)
	}
}
