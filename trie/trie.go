/*
Package trie implements a prefix trie over Unicode scalar values with
generic payloads. It is intended for write-once/read-many dictionary
workloads: build the trie up front, then run longest-match queries
against it from as many goroutines as you like.
*/
package trie

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to a trace with key 'jpho.trie'.
func tracer() tracing.Trace {
	return tracing.Select("jpho.trie")
}

// Trie is a prefix tree keyed by sequences of Unicode scalar values.
// Every node owns its children; there is no sharing between paths.
// A node may carry a payload of type T. The zero value is an empty trie
// ready for use.
type Trie[T any] struct {
	root node[T]
	size int // number of keys carrying a payload
}

type node[T any] struct {
	children map[rune]*node[T]
	value    T
	hasValue bool
}

// New creates an empty trie.
func New[T any]() *Trie[T] {
	return &Trie[T]{}
}

// Insert associates value with key, creating intermediate nodes as needed.
// Re-inserting an existing key overwrites its payload (last write wins).
// The empty key is legal and sets the payload of the root node.
func (t *Trie[T]) Insert(key string, value T) {
	n := &t.root
	for _, r := range key {
		if n.children == nil {
			n.children = make(map[rune]*node[T])
		}
		child, ok := n.children[r]
		if !ok {
			child = &node[T]{}
			n.children[r] = child
		}
		n = child
	}
	if !n.hasValue {
		t.size++
	}
	n.value = value
	n.hasValue = true
}

// LongestMatch walks the trie along scalars[start], scalars[start+1], …
// as long as children exist, remembering the most recent node that carries
// a payload. It returns the length (in scalars) of the best match together
// with its payload. ok is false if no prefix of any key matched at all.
//
// When several keys share a prefix, the longest key wins, even if a shorter
// key is itself a complete entry nested inside a longer one. The walk takes
// O(match length) steps, independent of the number of keys stored.
func (t *Trie[T]) LongestMatch(scalars []rune, start int) (length int, value T, ok bool) {
	n := &t.root
	if n.hasValue {
		value, ok = n.value, true
	}
	for i := start; i < len(scalars); i++ {
		child := n.children[scalars[i]]
		if child == nil {
			break
		}
		n = child
		if n.hasValue {
			length, value, ok = i-start+1, n.value, true
		}
	}
	return length, value, ok
}

// Contains reports whether key is a complete entry. A key that is merely a
// proper prefix of a longer entry does not count, even though its path
// exists in the trie.
func (t *Trie[T]) Contains(key string) bool {
	n := &t.root
	for _, r := range key {
		n = n.children[r]
		if n == nil {
			return false
		}
	}
	return n.hasValue
}

// Len returns the number of distinct keys stored in the trie.
func (t *Trie[T]) Len() int {
	return t.size
}

// Stats reports density metrics for a trie.
type Stats struct {
	Keys  int // keys carrying a payload
	Nodes int // allocated nodes, root included
}

// Stats walks the whole trie and counts its nodes.
func (t *Trie[T]) Stats() Stats {
	s := Stats{Keys: t.size, Nodes: countNodes(&t.root)}
	tracer().Debugf("trie density: %d keys over %d nodes", s.Keys, s.Nodes)
	return s
}

func countNodes[T any](n *node[T]) int {
	count := 1
	for _, child := range n.children {
		count += countNodes(child)
	}
	return count
}
