package dict

import (
	"encoding/binary"
	"encoding/hex"
	"maps"
	"slices"

	"github.com/zeebo/blake3"
)

// Fingerprint returns a hex-encoded BLAKE3 digest identifying the content
// of a dictionary. Entries are hashed in sorted key order with
// length-prefixed framing, so the digest depends only on the entries, not
// on map order or file encoding: a JSON dictionary and its compiled
// binary form fingerprint identically.
func Fingerprint(entries map[string]string) string {
	h := blake3.New()
	var buf [binary.MaxVarintLen64]byte
	for _, key := range slices.Sorted(maps.Keys(entries)) {
		for _, blob := range [2]string{key, entries[key]} {
			n := binary.PutUvarint(buf[:], uint64(len(blob)))
			h.Write(buf[:n])
			h.Write([]byte(blob))
		}
	}
	return hex.EncodeToString(h.Sum(nil))
}
