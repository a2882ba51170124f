package jpho

import (
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/npillmayer/jpho/trie"
)

// cacheSize bounds the per-token conversion cache of a pipeline.
const cacheSize = 100_000

// Pipeline composes the three engines: furigana hint resolution, word
// segmentation of the marked text, and per-token phoneme conversion joined
// with single spaces. Sentinel delimiters never survive into its output.
//
// Segmentation inside the pipeline always has a lexicon fallback: the
// segmenter's own (if built with NewSegmenterWithLexicon), otherwise the
// pipeline's converter. That keeps token boundaries aligned with the
// phoneme dictionary even when the word list is sparse.
type Pipeline struct {
	conv      *Converter
	seg       *Segmenter
	overrides map[string]string
	cache     *lru.Cache[string, string]
}

// NewPipeline builds a pipeline with an LRU cache of per-token conversion
// results. Repeated tokens (particles, common words) hit the cache on
// realistic text.
func NewPipeline(conv *Converter, seg *Segmenter) *Pipeline {
	p := newPipeline(conv, seg)
	cache, err := lru.New[string, string](cacheSize)
	assert(err == nil, "cache size must be positive")
	p.cache = cache
	return p
}

// NewPipelineNoCache builds a pipeline that converts every token afresh.
func NewPipelineNoCache(conv *Converter, seg *Segmenter) *Pipeline {
	return newPipeline(conv, seg)
}

func newPipeline(conv *Converter, seg *Segmenter) *Pipeline {
	assert(conv != nil, "pipeline needs a converter")
	assert(seg != nil, "pipeline needs a segmenter")
	return &Pipeline{conv: conv, seg: seg}
}

// AddOverride pins the conversion of one exact token, bypassing the
// dictionary. Tokens are compared with sentinel delimiters stripped. The
// classic use is the topic particle は, written "ha" but spoken "wa":
//
//	p.AddOverride("は", "wa")
//
// Overrides are build-time configuration; adding them concurrently with
// conversion calls is not safe.
func (p *Pipeline) AddOverride(token, phoneme string) {
	if p.overrides == nil {
		p.overrides = make(map[string]string)
	}
	p.overrides[token] = phoneme
}

// Convert transcribes text with word-boundary spacing: furigana hints are
// resolved first, the marked text is segmented, each token is converted,
// and the results are joined with single spaces. Every sentinel delimiter
// is stripped from the final string, including any that were present in the
// input itself.
func (p *Pipeline) Convert(text string) string {
	marked := MarkReadings(text, p.seg)
	tokens := p.seg.segment(marked, p.segmentLexicon())
	tracer().Debugf("pipeline: %d tokens", len(tokens))
	parts := make([]string, len(tokens))
	for i, token := range tokens {
		parts[i] = p.convertToken(token)
	}
	return stripMarkers(strings.Join(parts, " "))
}

// ConvertDetailed performs the same steps as Convert while accumulating
// match and unmatched records across tokens.
//
// Known limitation: match offsets are relative to the concatenated tokens
// of the marked intermediate text, not to positions in the caller's
// original string. Whenever furigana hints rewrote the text, the two
// disagree.
func (p *Pipeline) ConvertDetailed(text string) ConversionResult {
	marked := MarkReadings(text, p.seg)
	tokens := p.seg.segment(marked, p.segmentLexicon())
	var result ConversionResult
	parts := make([]string, 0, len(tokens))
	offset := 0
	for _, token := range tokens {
		if phoneme, ok := p.overrides[stripMarkers(token)]; ok {
			parts = append(parts, phoneme)
			result.Matches = append(result.Matches, Match{
				Original: stripMarkers(token),
				Phoneme:  phoneme,
				Start:    offset,
			})
			offset += len(token)
			continue
		}
		tr := p.conv.ConvertDetailed(token)
		for _, m := range tr.Matches {
			m.Start += offset
			result.Matches = append(result.Matches, m)
		}
		for _, u := range tr.Unmatched {
			if u != string(readingStart) && u != string(readingEnd) {
				result.Unmatched = append(result.Unmatched, u)
			}
		}
		parts = append(parts, tr.Phonemes)
		offset += len(token)
	}
	result.Phonemes = stripMarkers(strings.Join(parts, " "))
	return result
}

// convertToken applies overrides, then the cache, then the converter.
func (p *Pipeline) convertToken(token string) string {
	if phoneme, ok := p.overrides[stripMarkers(token)]; ok {
		return phoneme
	}
	if p.cache != nil {
		if phoneme, ok := p.cache.Get(token); ok {
			return phoneme
		}
	}
	phoneme := p.conv.Convert(token)
	if p.cache != nil {
		p.cache.Add(token, phoneme)
	}
	return phoneme
}

func (p *Pipeline) segmentLexicon() *trie.Trie[string] {
	if p.seg.lexicon != nil {
		return p.seg.lexicon
	}
	return p.conv.entries
}
