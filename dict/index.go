package dict

import (
	"slices"

	"github.com/derekparker/trie"
)

// Index is a prefix-search view over a loaded dictionary, built for
// lookup tooling rather than conversion. It is write-once: build it with
// NewIndex, then only query it.
type Index struct {
	t    *trie.Trie
	size int
}

// NewIndex indexes the entries of a phoneme dictionary.
func NewIndex(entries map[string]string) *Index {
	t := trie.New()
	for text, phoneme := range entries {
		t.Add(text, phoneme)
	}
	return &Index{t: t, size: len(entries)}
}

// Len returns the number of indexed entries.
func (ix *Index) Len() int { return ix.size }

// Lookup returns the phoneme string for exactly the given text.
func (ix *Index) Lookup(text string) (string, bool) {
	node, ok := ix.t.Find(text)
	if !ok {
		return "", false
	}
	phoneme, ok := node.Meta().(string)
	return phoneme, ok
}

// SearchPrefix returns the dictionary keys starting with prefix, in
// lexicographic order. A positive limit caps the result; zero or
// negative means unlimited.
func (ix *Index) SearchPrefix(prefix string, limit int) []string {
	keys := ix.t.PrefixSearch(prefix)
	slices.Sort(keys)
	if limit > 0 && len(keys) > limit {
		keys = keys[:limit]
	}
	return keys
}
