package dict

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"maps"
	"slices"
)

// Binary dictionary format "JPHO", version 1.0. All integers little-endian:
//
//	4 bytes   magic "JPHO"
//	u16, u16  major version (must be 1), minor version (must be 0)
//	u32       entry count
//	per entry uvarint key length, key bytes (UTF-8),
//	          uvarint value length, value bytes (UTF-8)
const (
	trieMagic = "JPHO"
	trieMajor = 1
	trieMinor = 0
)

// maxBlobLen caps a single key or value; longer lengths indicate a
// corrupt file rather than a plausible entry.
const maxBlobLen = 1 << 20

var (
	// ErrFormat reports a file that is not a JPHO binary dictionary.
	ErrFormat = errors.New("dict: not a JPHO dictionary")
	// ErrVersion reports a JPHO dictionary of an unsupported version.
	ErrVersion = errors.New("dict: unsupported JPHO version")
)

type trieHeader struct {
	Magic [4]byte
	Major uint16
	Minor uint16
	Count uint32
}

// TrieReader streams entries from a binary dictionary. The header is
// validated on construction. It implements jpho.EntryReader.
type TrieReader struct {
	r     *bufio.Reader
	count uint32
	read  uint32
}

// NewTrieReader validates the JPHO header of r and returns a reader
// positioned at the first entry. It fails with ErrFormat on a bad magic
// number and ErrVersion on a version other than 1.0.
func NewTrieReader(r io.Reader) (*TrieReader, error) {
	br := bufio.NewReader(r)
	var header trieHeader
	if err := binary.Read(br, binary.LittleEndian, &header); err != nil {
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			return nil, fmt.Errorf("%w: truncated header", ErrFormat)
		}
		return nil, err
	}
	if string(header.Magic[:]) != trieMagic {
		return nil, fmt.Errorf("%w: bad magic number", ErrFormat)
	}
	if header.Major != trieMajor || header.Minor != trieMinor {
		return nil, fmt.Errorf("%w: %d.%d", ErrVersion, header.Major, header.Minor)
	}
	return &TrieReader{r: br, count: header.Count}, nil
}

// Count returns the entry count declared in the header.
func (t *TrieReader) Count() int { return int(t.count) }

// Next returns the next (text, phoneme) pair.
// It returns io.EOF after the declared number of entries.
func (t *TrieReader) Next() (string, string, error) {
	if t.read == t.count {
		return "", "", io.EOF
	}
	key, err := readBlob(t.r)
	if err != nil {
		return "", "", fmt.Errorf("entry %d key: %w", t.read, err)
	}
	value, err := readBlob(t.r)
	if err != nil {
		return "", "", fmt.Errorf("entry %d value: %w", t.read, err)
	}
	t.read++
	return key, value, nil
}

func readBlob(r *bufio.Reader) (string, error) {
	n, err := binary.ReadUvarint(r)
	if err != nil {
		if err == io.EOF {
			err = io.ErrUnexpectedEOF
		}
		return "", err
	}
	if n > maxBlobLen {
		return "", fmt.Errorf("%w: implausible length %d", ErrFormat, n)
	}
	buf := make([]byte, n)
	if _, err := io.ReadFull(r, buf); err != nil {
		return "", err
	}
	return string(buf), nil
}

// WriteTrie writes entries to w in the JPHO binary format. Entries are
// written in sorted key order, so equal maps produce identical bytes.
func WriteTrie(w io.Writer, entries map[string]string) error {
	keys := slices.Sorted(maps.Keys(entries))
	bw := bufio.NewWriter(w)
	header := trieHeader{
		Major: trieMajor,
		Minor: trieMinor,
		Count: uint32(len(keys)),
	}
	copy(header.Magic[:], trieMagic)
	if err := binary.Write(bw, binary.LittleEndian, header); err != nil {
		return err
	}
	var buf [binary.MaxVarintLen64]byte
	for _, key := range keys {
		for _, blob := range [2]string{key, entries[key]} {
			n := binary.PutUvarint(buf[:], uint64(len(blob)))
			if _, err := bw.Write(buf[:n]); err != nil {
				return err
			}
			if _, err := bw.WriteString(blob); err != nil {
				return err
			}
		}
	}
	return bw.Flush()
}
