package driver

import (
	"crypto/sha256"
	"encoding/binary"

	"postfix/internal/version"
)

// Digest is a SHA-256 value; file hashes and cache keys share it.
type Digest [sha256.Size]byte

// combineDigest: H(content || parts...).
func combineDigest(content Digest, parts ...[]byte) Digest {
	h := sha256.New()
	_, _ = h.Write(content[:])
	for _, p := range parts {
		_, _ = h.Write(p)
	}
	var out Digest
	copy(out[:], h.Sum(nil))
	return out
}

// cacheKey identifies one rewrite result: the same content rewritten with
// the same output-affecting options by the same build.
func cacheKey(content Digest, opts Options) Digest {
	var knobs [9]byte
	binary.LittleEndian.PutUint64(knobs[:8], uint64(opts.maxDepth())) // #nosec G115 -- maxDepth > 0
	knobs[8] = byte(opts.Mode)
	return combineDigest(content, knobs[:], []byte(version.Version))
}
