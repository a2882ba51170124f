package dict

import (
	"io"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/ulikunitz/xz"
)

func mustOpenFixture(t *testing.T, file string) *os.File {
	t.Helper()
	f, err := os.Open(filepath.Join("testdata", file))
	if err != nil {
		t.Fatalf("cannot open fixture %s: %v", file, err)
	}
	t.Cleanup(func() { f.Close() })
	return f
}

func TestReadEntries(t *testing.T) {
	entries, err := ReadEntries(strings.NewReader(`{"日本": "nihoɴ", "語": "go"}`))
	if err != nil {
		t.Fatal(err)
	}
	want := map[string]string{"日本": "nihoɴ", "語": "go"}
	if !reflect.DeepEqual(entries, want) {
		t.Fatalf("got %v, want %v", entries, want)
	}
}

func TestReadEntriesFixture(t *testing.T) {
	entries, err := ReadEntries(mustOpenFixture(t, "phonemes.json"))
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 10 {
		t.Fatalf("fixture has %d entries, want 10", len(entries))
	}
	if entries["リンゴ"] != "riŋgo" {
		t.Fatalf("entries[リンゴ] = %q, want %q", entries["リンゴ"], "riŋgo")
	}
}

func TestReadEntriesRejectsNonObject(t *testing.T) {
	if _, err := ReadEntries(strings.NewReader(`["日本"]`)); err == nil {
		t.Fatal("expected an error for a non-object dictionary")
	}
}

func TestJSONReaderStreams(t *testing.T) {
	src := `{"日本": "nihoɴ", "語": "go", "です": "desɨ"}`
	r := NewJSONReader(strings.NewReader(src))
	got := make(map[string]string)
	for {
		text, phoneme, err := r.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatal(err)
		}
		got[text] = phoneme
	}
	want, err := ReadEntries(strings.NewReader(src))
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("streamed %v, want %v", got, want)
	}
	if _, _, err := r.Next(); err != io.EOF {
		t.Fatalf("Next after EOF = %v, want io.EOF", err)
	}
}

func TestJSONReaderEmptyObject(t *testing.T) {
	r := NewJSONReader(strings.NewReader(`{}`))
	if _, _, err := r.Next(); err != io.EOF {
		t.Fatalf("Next = %v, want io.EOF", err)
	}
}

func TestJSONReaderRejectsNonObject(t *testing.T) {
	r := NewJSONReader(strings.NewReader(`[1, 2]`))
	if _, _, err := r.Next(); err == nil || err == io.EOF {
		t.Fatalf("Next = %v, want a format error", err)
	}
}

func TestReadWordList(t *testing.T) {
	words, err := ReadWordList(strings.NewReader("日本語\n\n  私  \nリンゴ\n"))
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"日本語", "私", "リンゴ"}
	if !reflect.DeepEqual(words, want) {
		t.Fatalf("got %v, want %v", words, want)
	}
}

func TestWordScannerEOF(t *testing.T) {
	s := NewWordScanner(strings.NewReader("あ\n"))
	if word, err := s.Next(); err != nil || word != "あ" {
		t.Fatalf("Next = %q, %v", word, err)
	}
	for range 2 {
		if _, err := s.Next(); err != io.EOF {
			t.Fatalf("Next after exhaustion = %v, want io.EOF", err)
		}
	}
}

func TestOpenPlain(t *testing.T) {
	path := filepath.Join(t.TempDir(), "words.txt")
	if err := os.WriteFile(path, []byte("日本語\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	rc, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer rc.Close()
	data, err := io.ReadAll(rc)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "日本語\n" {
		t.Fatalf("read %q", data)
	}
}

func TestOpenXZ(t *testing.T) {
	path := filepath.Join(t.TempDir(), "words.txt.xz")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	xw, err := xz.NewWriter(f)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := xw.Write([]byte("日本語\n私\n")); err != nil {
		t.Fatal(err)
	}
	if err := xw.Close(); err != nil {
		t.Fatal(err)
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}

	rc, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer rc.Close()
	data, err := io.ReadAll(rc)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "日本語\n私\n" {
		t.Fatalf("read %q", data)
	}
}

func TestLoadConverterJSON(t *testing.T) {
	conv, err := LoadConverter(filepath.Join("testdata", "phonemes.json"))
	if err != nil {
		t.Fatal(err)
	}
	if conv.Len() != 10 {
		t.Fatalf("Len = %d, want 10", conv.Len())
	}
	if conv.Identifier != "phonemes" {
		t.Fatalf("Identifier = %q, want %q", conv.Identifier, "phonemes")
	}
	if got := conv.Convert("日本語です"); got != "nihoɴgodesɨ" {
		t.Fatalf("Convert = %q, want %q", got, "nihoɴgodesɨ")
	}
}

func TestLoadConverterTrie(t *testing.T) {
	entries := map[string]string{"日本": "nihoɴ", "語": "go"}
	path := filepath.Join(t.TempDir(), "ja.trie")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := WriteTrie(f, entries); err != nil {
		t.Fatal(err)
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}

	conv, err := LoadConverter(path)
	if err != nil {
		t.Fatal(err)
	}
	if conv.Len() != 2 || conv.Identifier != "ja" {
		t.Fatalf("Len = %d, Identifier = %q", conv.Len(), conv.Identifier)
	}
	if got := conv.Convert("日本語"); got != "nihoɴgo" {
		t.Fatalf("Convert = %q, want %q", got, "nihoɴgo")
	}
}

func TestLoadConverterTrieXZ(t *testing.T) {
	entries := map[string]string{"日本": "nihoɴ"}
	path := filepath.Join(t.TempDir(), "ja.trie.xz")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	xw, err := xz.NewWriter(f)
	if err != nil {
		t.Fatal(err)
	}
	if err := WriteTrie(xw, entries); err != nil {
		t.Fatal(err)
	}
	if err := xw.Close(); err != nil {
		t.Fatal(err)
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}

	conv, err := LoadConverter(path)
	if err != nil {
		t.Fatal(err)
	}
	if conv.Len() != 1 || conv.Identifier != "ja" {
		t.Fatalf("Len = %d, Identifier = %q", conv.Len(), conv.Identifier)
	}
}

func TestLoadConverterUnsupportedFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ja.csv")
	if err := os.WriteFile(path, []byte("a,b\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadConverter(path); err == nil {
		t.Fatal("expected an error for an unsupported format")
	}
}

func TestLoadSegmenter(t *testing.T) {
	seg, err := LoadSegmenter(filepath.Join("testdata", "words.txt"))
	if err != nil {
		t.Fatal(err)
	}
	if seg.Len() != 6 {
		t.Fatalf("Len = %d, want 6", seg.Len())
	}
	for _, word := range []string{"日本語", "学校", "見て"} {
		if !seg.ContainsWord(word) {
			t.Fatalf("ContainsWord(%q) = false", word)
		}
	}
	if seg.Identifier != "words" {
		t.Fatalf("Identifier = %q, want %q", seg.Identifier, "words")
	}
}

func TestLoadSegmenterUnsupportedFormat(t *testing.T) {
	if _, err := LoadSegmenter(filepath.Join("testdata", "phonemes.json")); err == nil {
		t.Fatal("expected an error for a non-list format")
	}
}

func TestDictionaryRoundTrip(t *testing.T) {
	entries := map[string]string{
		"日本":  "nihoɴ",
		"日本語": "nihoɴgo",
		"です":  "desɨ",
	}
	dir := t.TempDir()
	for _, file := range []string{"ja.json", "ja.trie", "ja.json.xz", "ja.trie.xz"} {
		path := filepath.Join(dir, file)
		if err := WriteDictionary(path, entries); err != nil {
			t.Fatalf("%s: %v", file, err)
		}
		got, err := LoadDictionary(path)
		if err != nil {
			t.Fatalf("%s: %v", file, err)
		}
		if !reflect.DeepEqual(got, entries) {
			t.Fatalf("%s: got %v, want %v", file, got, entries)
		}
	}
}

func TestWriteDictionaryUnsupportedFormat(t *testing.T) {
	err := WriteDictionary(filepath.Join(t.TempDir(), "ja.csv"), map[string]string{"あ": "a"})
	if err == nil {
		t.Fatal("expected an error for an unsupported format")
	}
}

func TestSplitFormat(t *testing.T) {
	tests := []struct {
		path   string
		name   string
		format string
	}{
		{"ja_phonemes.json", "ja_phonemes", ".json"},
		{"data/japanese.trie.xz", "japanese", ".trie"},
		{"/abs/ja_words.txt", "ja_words", ".txt"},
		{"plain", "plain", ""},
	}
	for _, tt := range tests {
		name, format := splitFormat(tt.path)
		if name != tt.name || format != tt.format {
			t.Fatalf("splitFormat(%q) = %q, %q, want %q, %q",
				tt.path, name, format, tt.name, tt.format)
		}
	}
}
