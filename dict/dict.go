// Package dict parses phoneme dictionaries and word lists for package
// jpho: JSON objects of text to phoneme, line-oriented word lists, and
// the compact binary trie format, each optionally xz-compressed. It also
// carries the preparation steps that keep a dictionary aligned with a
// phonemizer vocabulary.
package dict

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/npillmayer/jpho"
	"github.com/npillmayer/schuko/tracing"
	"github.com/ulikunitz/xz"
)

func tracer() tracing.Trace {
	return tracing.Select("jpho.dict")
}

// ReadEntries decodes a JSON object mapping original text to phoneme
// strings, the on-disk dictionary format.
func ReadEntries(r io.Reader) (map[string]string, error) {
	var entries map[string]string
	if err := json.NewDecoder(r).Decode(&entries); err != nil {
		return nil, fmt.Errorf("decoding phoneme JSON: %w", err)
	}
	return entries, nil
}

// JSONReader streams entries of a JSON dictionary object one-by-one,
// without materializing the whole map. It implements jpho.EntryReader.
type JSONReader struct {
	dec     *json.Decoder
	started bool
	done    bool
}

func NewJSONReader(r io.Reader) *JSONReader {
	return &JSONReader{dec: json.NewDecoder(r)}
}

// Next returns the next (text, phoneme) pair.
// It returns io.EOF when the object is exhausted.
func (r *JSONReader) Next() (string, string, error) {
	if r.done {
		return "", "", io.EOF
	}
	if !r.started {
		tok, err := r.dec.Token()
		if err != nil {
			return "", "", err
		}
		if delim, ok := tok.(json.Delim); !ok || delim != '{' {
			return "", "", fmt.Errorf("phoneme JSON: top-level value is %v, want an object", tok)
		}
		r.started = true
	}
	if !r.dec.More() {
		if _, err := r.dec.Token(); err != nil { // closing brace
			return "", "", err
		}
		r.done = true
		return "", "", io.EOF
	}
	tok, err := r.dec.Token()
	if err != nil {
		return "", "", err
	}
	text, ok := tok.(string)
	if !ok {
		return "", "", fmt.Errorf("phoneme JSON: key is %v, want a string", tok)
	}
	var phoneme string
	if err := r.dec.Decode(&phoneme); err != nil {
		return "", "", fmt.Errorf("phoneme JSON: value for %q: %w", text, err)
	}
	return text, phoneme, nil
}

// ReadWordList reads a line-oriented word list. Surrounding whitespace is
// trimmed and blank lines are skipped.
func ReadWordList(r io.Reader) ([]string, error) {
	var words []string
	scanner := NewWordScanner(r)
	for {
		word, err := scanner.Next()
		if err == io.EOF {
			return words, nil
		}
		if err != nil {
			return nil, err
		}
		words = append(words, word)
	}
}

// WordScanner streams words from a line-oriented list. It implements
// jpho.WordReader.
type WordScanner struct {
	scanner *bufio.Scanner
}

func NewWordScanner(r io.Reader) *WordScanner {
	return &WordScanner{scanner: bufio.NewScanner(r)}
}

// Next returns the next non-blank line with surrounding whitespace
// trimmed. It returns io.EOF when exhausted.
func (s *WordScanner) Next() (string, error) {
	for s.scanner.Scan() {
		word := strings.TrimSpace(s.scanner.Text())
		if word == "" {
			continue
		}
		return word, nil
	}
	if err := s.scanner.Err(); err != nil {
		return "", err
	}
	return "", io.EOF
}

type xzReadCloser struct {
	io.Reader
	file *os.File
}

func (rc xzReadCloser) Close() error { return rc.file.Close() }

// Open opens a dictionary or word-list file, transparently decompressing
// when the name ends in .xz.
func Open(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	if filepath.Ext(path) != ".xz" {
		return f, nil
	}
	xr, err := xz.NewReader(bufio.NewReader(f))
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	return xzReadCloser{Reader: xr, file: f}, nil
}

type xzWriteCloser struct {
	xw   *xz.Writer
	file *os.File
}

func (wc xzWriteCloser) Write(p []byte) (int, error) { return wc.xw.Write(p) }

func (wc xzWriteCloser) Close() error {
	if err := wc.xw.Close(); err != nil {
		wc.file.Close()
		return err
	}
	return wc.file.Close()
}

// Create creates a dictionary file for writing, transparently
// compressing when the name ends in .xz. Closing flushes the stream.
func Create(path string) (io.WriteCloser, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	if filepath.Ext(path) != ".xz" {
		return f, nil
	}
	xw, err := xz.NewWriter(f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("creating %s: %w", path, err)
	}
	return xzWriteCloser{xw: xw, file: f}, nil
}

// LoadConverter loads a phoneme dictionary from path, dispatching on the
// file name: .json for the JSON object format, .trie for the binary trie
// format, either with an optional .xz suffix. The converter's Identifier
// is the bare file name.
func LoadConverter(path string) (*jpho.Converter, error) {
	name, format := splitFormat(path)
	f, err := Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	start := time.Now()
	var reader jpho.EntryReader
	switch format {
	case ".json":
		reader = NewJSONReader(f)
	case ".trie":
		reader, err = NewTrieReader(f)
		if err != nil {
			return nil, fmt.Errorf("dictionary %s: %w", path, err)
		}
	default:
		return nil, fmt.Errorf("dictionary %s: unsupported format %q", path, format)
	}
	conv, err := jpho.LoadEntries(name, reader)
	if err != nil {
		return nil, err
	}
	tracer().Infof("dictionary %q loaded in %s", name, time.Since(start))
	return conv, nil
}

// LoadSegmenter loads a word list (.txt, optionally .xz) from path.
func LoadSegmenter(path string) (*jpho.Segmenter, error) {
	name, format := splitFormat(path)
	if format != ".txt" {
		return nil, fmt.Errorf("word list %s: unsupported format %q", path, format)
	}
	f, err := Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	start := time.Now()
	seg, err := jpho.LoadWords(name, NewWordScanner(f))
	if err != nil {
		return nil, err
	}
	tracer().Infof("word list %q loaded in %s", name, time.Since(start))
	return seg, nil
}

// LoadDictionary reads a dictionary file into a map, dispatching on the
// file name like LoadConverter does. Use it when the entries themselves
// are needed, for indexing or preparation; use LoadConverter to go
// straight to a ready converter.
func LoadDictionary(path string) (map[string]string, error) {
	_, format := splitFormat(path)
	f, err := Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	switch format {
	case ".json":
		return ReadEntries(f)
	case ".trie":
		r, err := NewTrieReader(f)
		if err != nil {
			return nil, fmt.Errorf("dictionary %s: %w", path, err)
		}
		entries := make(map[string]string, r.Count())
		for {
			text, phoneme, err := r.Next()
			if err == io.EOF {
				return entries, nil
			}
			if err != nil {
				return nil, fmt.Errorf("dictionary %s: %w", path, err)
			}
			entries[text] = phoneme
		}
	default:
		return nil, fmt.Errorf("dictionary %s: unsupported format %q", path, format)
	}
}

// WriteDictionary writes entries to path in the format its name implies,
// .json or .trie with an optional .xz layer. JSON output has sorted keys
// and binary output sorted entries, so rewriting a dictionary is
// reproducible.
func WriteDictionary(path string, entries map[string]string) error {
	_, format := splitFormat(path)
	var write func(io.Writer) error
	switch format {
	case ".json":
		write = func(w io.Writer) error {
			return json.NewEncoder(w).Encode(entries)
		}
	case ".trie":
		write = func(w io.Writer) error {
			return WriteTrie(w, entries)
		}
	default:
		return fmt.Errorf("dictionary %s: unsupported format %q", path, format)
	}
	wc, err := Create(path)
	if err != nil {
		return err
	}
	if err := write(wc); err != nil {
		wc.Close()
		return err
	}
	return wc.Close()
}

// splitFormat returns the bare name of path without directories and
// format suffixes, plus the format extension with any .xz layer removed.
func splitFormat(path string) (name, format string) {
	base := strings.TrimSuffix(filepath.Base(path), ".xz")
	format = filepath.Ext(base)
	return strings.TrimSuffix(base, format), format
}
