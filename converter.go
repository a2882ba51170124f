package jpho

import (
	"fmt"
	"io"
	"strings"

	"github.com/npillmayer/jpho/trie"
)

// Match records one successful dictionary hit during detailed conversion.
// Start is the byte offset of the matched substring within the converted
// text.
type Match struct {
	Original string `json:"original"`
	Phoneme  string `json:"phoneme"`
	Start    int    `json:"start"`
}

func (m Match) String() string {
	return fmt.Sprintf("%q -> %q (pos %d)", m.Original, m.Phoneme, m.Start)
}

// ConversionResult is the outcome of a detailed conversion: the phoneme
// string (identical to what Convert returns), the dictionary matches in
// input order, and every scalar that had no dictionary entry and was copied
// through verbatim.
type ConversionResult struct {
	Phonemes  string   `json:"phonemes"`
	Matches   []Match  `json:"matches"`
	Unmatched []string `json:"unmatched,omitempty"`
}

// EntryReader yields phoneme dictionary entries one-by-one.
// It should return io.EOF when the stream is exhausted.
type EntryReader interface {
	Next() (text string, phoneme string, err error)
}

// Converter is a loaded phoneme dictionary.
//
// It replaces the longest dictionary entry found at each position of the
// input with the entry's phoneme string. A converter is built once and is
// read-only afterwards; concurrent conversions are safe.
type Converter struct {
	entries    *trie.Trie[string]
	Identifier string // identifies the dictionary
}

// NewConverter builds a converter from an in-memory dictionary mapping
// original text to phoneme strings. Duplicate keys resolve last-write-wins
// (map semantics make that moot here, but streaming loaders behave the
// same way).
func NewConverter(entries map[string]string) *Converter {
	c := &Converter{entries: trie.New[string]()}
	for text, phoneme := range entries {
		c.entries.Insert(text, phoneme)
	}
	return c
}

// LoadEntries builds a converter from a streaming, format-agnostic source.
//
// File format parsing is intentionally outside the base package. Use
// adapters like package dict to parse concrete formats and feed this API.
func LoadEntries(name string, reader EntryReader) (*Converter, error) {
	c := &Converter{
		entries:    trie.New[string](),
		Identifier: name,
	}
	for {
		text, phoneme, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("loading phoneme entries %q: %w", name, err)
		}
		c.entries.Insert(text, phoneme)
	}
	stats := c.entries.Stats()
	tracer().Infof("phoneme dictionary %q loaded, %d entries in %d trie nodes",
		name, stats.Keys, stats.Nodes)
	return c, nil
}

// Len returns the number of dictionary entries.
func (c *Converter) Len() int {
	if c == nil || c.entries == nil {
		return 0
	}
	return c.entries.Len()
}

// Convert transcribes text in a single greedy left-to-right pass: at each
// position the longest dictionary entry wins and the position advances past
// it; scalars without any entry are copied through unchanged. There is no
// backtracking and no re-matching of consumed positions.
func (c *Converter) Convert(text string) string {
	if c == nil || c.entries == nil {
		return text
	}
	cp := decode(text)
	var sb strings.Builder
	sb.Grow(len(text))
	pos := 0
	for pos < len(cp.scalars) {
		length, phoneme, _ := c.entries.LongestMatch(cp.scalars, pos)
		if length > 0 {
			sb.WriteString(phoneme)
			pos += length
		} else {
			sb.WriteString(cp.slice(pos, pos+1))
			pos++
		}
	}
	return sb.String()
}

// ConvertDetailed performs the same traversal as Convert but additionally
// reports a match record per dictionary hit and collects unmatched scalars.
func (c *Converter) ConvertDetailed(text string) ConversionResult {
	cp := decode(text)
	var result ConversionResult
	var sb strings.Builder
	sb.Grow(len(text))
	pos := 0
	for pos < len(cp.scalars) {
		var length int
		var phoneme string
		if c != nil && c.entries != nil {
			length, phoneme, _ = c.entries.LongestMatch(cp.scalars, pos)
		}
		if length > 0 {
			sb.WriteString(phoneme)
			result.Matches = append(result.Matches, Match{
				Original: cp.slice(pos, pos+length),
				Phoneme:  phoneme,
				Start:    cp.offsets[pos],
			})
			pos += length
		} else {
			single := cp.slice(pos, pos+1)
			sb.WriteString(single)
			result.Unmatched = append(result.Unmatched, single)
			pos++
		}
	}
	result.Phonemes = sb.String()
	return result
}
