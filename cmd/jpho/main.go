// Command jpho converts Japanese text to a phonemic transcription.
// It wraps the jpho library with dictionary loading, segmentation and
// dictionary maintenance commands.
package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/alecthomas/kong"

	"github.com/npillmayer/jpho"
	"github.com/npillmayer/jpho/dict"
	"github.com/npillmayer/jpho/kana"
)

const version = "1.0.0"

var CLI struct {
	Dict  string `name:"dict" short:"d" help:"Phoneme dictionary (.json or .trie, optionally .xz). Defaults to the built-in kana tables." type:"path"`
	Words string `name:"words" short:"w" help:"Word list for segmentation (.txt, optionally .xz)." type:"path"`

	Convert ConvertCmd `cmd:"" default:"withargs" help:"Convert text to phonemes, or start an interactive prompt"`
	Segment SegmentCmd `cmd:"" help:"Segment text into words and grammar runs"`
	Lookup  LookupCmd  `cmd:"" help:"Search dictionary entries by prefix"`
	Compile CompileCmd `cmd:"" help:"Compile a dictionary to another format, typically the binary trie"`
	Fix     FixCmd     `cmd:"" help:"Prepare a dictionary: fill kana, strip punctuation, fold ligatures"`
	Version VersionCmd `cmd:"" help:"Print version information"`
}

func loadConverter() (*jpho.Converter, error) {
	if CLI.Dict == "" {
		conv := jpho.NewConverter(kana.Baseline())
		conv.Identifier = "kana"
		return conv, nil
	}
	return dict.LoadConverter(CLI.Dict)
}

func loadWords() ([]string, error) {
	if CLI.Words == "" {
		return nil, nil
	}
	f, err := dict.Open(CLI.Words)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return dict.ReadWordList(f)
}

func loadDictionary() (map[string]string, error) {
	if CLI.Dict == "" {
		return kana.Baseline(), nil
	}
	return dict.LoadDictionary(CLI.Dict)
}

// ConvertCmd runs the full pipeline: furigana hints, segmentation,
// per-token conversion.
type ConvertCmd struct {
	Detailed bool     `help:"Print match records and unmatched scalars."`
	JSON     bool     `help:"Emit the detailed result as JSON."`
	Plain    bool     `help:"Convert directly, without segmentation or furigana hints."`
	Wa       bool     `default:"true" negatable:"" help:"Speak the topic particle は as wa."`
	Text     []string `arg:"" optional:"" help:"Text to convert; omit for an interactive prompt."`
}

func (c *ConvertCmd) Run() error {
	conv, err := loadConverter()
	if err != nil {
		return err
	}
	seg, err := c.segmenter()
	if err != nil {
		return err
	}
	p := jpho.NewPipeline(conv, seg)
	if c.Wa {
		p.AddOverride("は", "wa")
	}
	if len(c.Text) > 0 {
		return c.emit(p, conv, strings.Join(c.Text, " "))
	}
	return c.interactive(p, conv)
}

func (c *ConvertCmd) segmenter() (*jpho.Segmenter, error) {
	if CLI.Words == "" {
		return jpho.NewSegmenter(nil), nil
	}
	return dict.LoadSegmenter(CLI.Words)
}

func (c *ConvertCmd) emit(p *jpho.Pipeline, conv *jpho.Converter, text string) error {
	if c.JSON || c.Detailed {
		var result jpho.ConversionResult
		if c.Plain {
			result = conv.ConvertDetailed(text)
		} else {
			result = p.ConvertDetailed(text)
		}
		if c.JSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(result)
		}
		fmt.Println(result.Phonemes)
		for _, m := range result.Matches {
			fmt.Printf("  %s\n", m)
		}
		if len(result.Unmatched) > 0 {
			fmt.Printf("  unmatched: %s\n", strings.Join(result.Unmatched, " "))
		}
		return nil
	}
	if c.Plain {
		fmt.Println(conv.Convert(text))
		return nil
	}
	fmt.Println(p.Convert(text))
	return nil
}

func (c *ConvertCmd) interactive(p *jpho.Pipeline, conv *jpho.Converter) error {
	fmt.Printf("jpho %s, dictionary %q (%d entries)\n", version, conv.Identifier, conv.Len())
	fmt.Println(`Type text to convert, "quit" or "exit" to leave.`)
	scanner := bufio.NewScanner(os.Stdin)
	fmt.Print("> ")
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "quit" || line == "exit" {
			return nil
		}
		if line != "" {
			start := time.Now()
			if err := c.emit(p, conv, line); err != nil {
				return err
			}
			fmt.Printf("[%s]\n", time.Since(start).Round(time.Microsecond))
		}
		fmt.Print("> ")
	}
	return scanner.Err()
}

// SegmentCmd prints the segmentation of its input, one token per line.
type SegmentCmd struct {
	Text []string `arg:"" help:"Text to segment."`
}

func (c *SegmentCmd) Run() error {
	conv, err := loadConverter()
	if err != nil {
		return err
	}
	words, err := loadWords()
	if err != nil {
		return err
	}
	seg := jpho.NewSegmenterWithLexicon(words, conv)
	for _, token := range seg.Segment(strings.Join(c.Text, " ")) {
		fmt.Println(token)
	}
	return nil
}

// LookupCmd searches the dictionary by key prefix.
type LookupCmd struct {
	Prefix string `arg:"" help:"Key prefix to search for."`
	Limit  int    `default:"20" help:"Maximum number of results."`
}

func (c *LookupCmd) Run() error {
	entries, err := loadDictionary()
	if err != nil {
		return err
	}
	ix := dict.NewIndex(entries)
	keys := ix.SearchPrefix(c.Prefix, c.Limit)
	if len(keys) == 0 {
		fmt.Printf("no entries with prefix %q\n", c.Prefix)
		return nil
	}
	for _, key := range keys {
		phoneme, _ := ix.Lookup(key)
		fmt.Printf("%s\t%s\n", key, phoneme)
	}
	return nil
}

// CompileCmd rewrites a dictionary in another on-disk format.
type CompileCmd struct {
	In  string `arg:"" help:"Source dictionary (.json or .trie, optionally .xz)." type:"existingfile"`
	Out string `arg:"" help:"Target file; format follows the name." type:"path"`
}

func (c *CompileCmd) Run() error {
	entries, err := dict.LoadDictionary(c.In)
	if err != nil {
		return err
	}
	if err := dict.WriteDictionary(c.Out, entries); err != nil {
		return err
	}
	fmt.Printf("%d entries written to %s\n", len(entries), c.Out)
	fmt.Printf("fingerprint %s\n", dict.Fingerprint(entries))
	return nil
}

// FixCmd runs the dictionary preparation sequence and writes the result.
type FixCmd struct {
	In    string `arg:"" help:"Source dictionary." type:"existingfile"`
	Out   string `arg:"" help:"Target file; format follows the name." type:"path"`
	Vocab string `help:"Phonemizer vocabulary JSON to validate against." type:"existingfile"`
	NFC   bool   `help:"Normalize dictionary keys to NFC."`
}

func (c *FixCmd) Run() error {
	entries, err := dict.LoadDictionary(c.In)
	if err != nil {
		return err
	}
	stats := dict.Align(entries)
	fmt.Println(stats)
	if c.NFC {
		fmt.Printf("%d keys normalized\n", dict.NormalizeKeys(entries))
	}
	if c.Vocab != "" {
		if err := c.validate(entries); err != nil {
			return err
		}
	}
	if err := dict.WriteDictionary(c.Out, entries); err != nil {
		return err
	}
	fmt.Printf("%d entries written to %s\n", len(entries), c.Out)
	fmt.Printf("fingerprint %s\n", dict.Fingerprint(entries))
	return nil
}

func (c *FixCmd) validate(entries map[string]string) error {
	f, err := os.Open(c.Vocab)
	if err != nil {
		return err
	}
	defer f.Close()
	vocab, err := dict.ReadVocab(f)
	if err != nil {
		return err
	}
	violations := dict.ValidateVocab(entries, vocab)
	if len(violations) == 0 {
		fmt.Println("all phonemes inside the vocabulary")
		return nil
	}
	fmt.Printf("%d entries outside the vocabulary:\n", len(violations))
	for _, v := range violations {
		fmt.Printf("  %s\n", v)
	}
	return nil
}

// VersionCmd prints the version.
type VersionCmd struct{}

func (c *VersionCmd) Run() error {
	fmt.Printf("jpho %s\n", version)
	return nil
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("jpho"),
		kong.Description("Japanese text to phonemic transcription"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
	)
	err := ctx.Run(ctx)
	ctx.FatalIfErrorf(err)
}
