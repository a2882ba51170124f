package jpho

import (
	"fmt"
	"io"

	"github.com/npillmayer/jpho/trie"
)

// WordReader yields word-list entries one-by-one.
// It should return io.EOF when the stream is exhausted.
type WordReader interface {
	Next() (word string, err error)
}

// Segmenter splits Japanese text into word tokens by greedy longest match
// against a word list. Spans that match no word are grouped into single
// "grammar" tokens (particles, inflections, unknown words) rather than one
// token per character.
//
// A segmenter is built once and is read-only afterwards; concurrent
// segmentations are safe.
type Segmenter struct {
	words      *trie.Trie[struct{}]
	lexicon    *trie.Trie[string] // optional, see NewSegmenterWithLexicon
	Identifier string             // identifies the word list
}

// NewSegmenter builds a segmenter from a word list. Blank entries are
// ignored; duplicates are no-ops.
func NewSegmenter(words []string) *Segmenter {
	s := &Segmenter{words: trie.New[struct{}]()}
	for _, w := range words {
		s.addWord(w)
	}
	return s
}

// NewSegmenterWithLexicon builds a segmenter that additionally consults a
// phoneme dictionary when the word list has no match at the current
// position. Dictionary entries then act as segmentation units of their own,
// which keeps token boundaries useful even with a sparse (or empty) word
// list. The fallback applies to the initial match only, never inside the
// grammar-run lookahead.
func NewSegmenterWithLexicon(words []string, lex *Converter) *Segmenter {
	s := NewSegmenter(words)
	if lex != nil {
		s.lexicon = lex.entries
	}
	return s
}

// LoadWords builds a segmenter from a streaming, format-agnostic source.
//
// File format parsing is intentionally outside the base package. Use
// adapters like package dict to parse concrete formats and feed this API.
func LoadWords(name string, reader WordReader) (*Segmenter, error) {
	s := &Segmenter{
		words:      trie.New[struct{}](),
		Identifier: name,
	}
	for {
		word, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("loading word list %q: %w", name, err)
		}
		s.addWord(word)
	}
	stats := s.words.Stats()
	tracer().Infof("word list %q loaded, %d words in %d trie nodes",
		name, stats.Keys, stats.Nodes)
	return s, nil
}

func (s *Segmenter) addWord(word string) {
	if word == "" {
		return
	}
	s.words.Insert(word, struct{}{})
}

// ContainsWord reports whether word is a complete word-list entry (not
// merely a prefix of one).
func (s *Segmenter) ContainsWord(word string) bool {
	if s == nil || s.words == nil {
		return false
	}
	return s.words.Contains(word)
}

// Len returns the number of words in the list.
func (s *Segmenter) Len() int {
	if s == nil || s.words == nil {
		return 0
	}
	return s.words.Len()
}

// Segment splits text into tokens in input order. ASCII whitespace (space,
// tab, CR, LF) separates tokens and is consumed, never emitted. Protected
// spans produced by MarkReadings are kept intact as single tokens. No token
// is ever empty, and no scalar is dropped or duplicated across tokens.
// A nil segmenter segments like one with an empty word list.
func (s *Segmenter) Segment(text string) []string {
	if s == nil || s.words == nil {
		s = NewSegmenter(nil)
	}
	return s.segment(text, s.lexicon)
}

func (s *Segmenter) segment(text string, lexicon *trie.Trie[string]) []string {
	cp := decode(text)
	scalars := cp.scalars
	var tokens []string
	pos := 0
	for pos < len(scalars) {
		if isSpace(scalars[pos]) {
			pos++
			continue
		}
		if scalars[pos] == readingStart {
			// protected span: up to and including the closing sentinel,
			// or the rest of the text if the closing sentinel is missing
			end := pos + 1
			for end < len(scalars) && scalars[end] != readingEnd {
				end++
			}
			if end < len(scalars) {
				end++
			}
			tokens = append(tokens, cp.slice(pos, end))
			pos = end
			continue
		}
		if length := s.matchAt(scalars, pos, lexicon); length > 0 {
			tokens = append(tokens, cp.slice(pos, pos+length))
			pos += length
			continue
		}
		// grammar run: group scalars until a word match starts or
		// whitespace is reached
		start := pos
		pos++
		for pos < len(scalars) && !isSpace(scalars[pos]) && !s.wordAhead(scalars, pos) {
			pos++
		}
		tokens = append(tokens, cp.slice(start, pos))
	}
	return tokens
}

// matchAt returns the length of the longest word-list match at pos, falling
// back to the lexicon when the word list has nothing there.
func (s *Segmenter) matchAt(scalars []rune, pos int, lexicon *trie.Trie[string]) int {
	length, _, _ := s.words.LongestMatch(scalars, pos)
	if length == 0 && lexicon != nil {
		length, _, _ = lexicon.LongestMatch(scalars, pos)
	}
	return length
}

// wordAhead reports whether a word-list match starts at pos. It decides
// where a grammar run ends.
func (s *Segmenter) wordAhead(scalars []rune, pos int) bool {
	length, _, _ := s.words.LongestMatch(scalars, pos)
	return length > 0
}

// isSpace reports the ASCII whitespace scalars that separate tokens.
func isSpace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\r' || r == '\n'
}
