package codec

import (
	"encoding/hex"

	"github.com/zeebo/blake3"
)

// Hash is a 32-byte BLAKE3 digest
type Hash [32]byte

// DomainKey is a 32-byte key for BLAKE3 keyed hashing. The bytes are
// the ASCII domain name zero-padded to 32 bytes.
type DomainKey [32]byte

// Domain keys. Changing one invalidates every hash in that domain.
var (
	ContentDomain  = newDomainKey("scenelink.content")
	LinkHashDomain = newDomainKey("scenelink.linkhash")
	ObjectDomain   = newDomainKey("scenelink.object")
)

func newDomainKey(name string) DomainKey {
	var k DomainKey
	copy(k[:], name)
	return k
}

// Hasher accumulates data for a keyed hash
type Hasher struct {
	h *blake3.Hasher
}

// NewHasher starts a keyed hash in the given domain
func NewHasher(key DomainKey) *Hasher {
	// NewKeyed only fails for keys that are not 32 bytes long
	h, err := blake3.NewKeyed(key[:])
	if err != nil {
		panic("codec: BLAKE3 keyed hash initialization failed: " + err.Error())
	}
	return &Hasher{h: h}
}

// Write adds data to the hash. It never fails.
func (h *Hasher) Write(p []byte) (int, error) {
	return h.h.Write(p)
}

// Sum returns the digest of everything written so far
func (h *Hasher) Sum() Hash {
	var out Hash
	copy(out[:], h.h.Sum(nil))
	return out
}

// KeyedHash hashes data in one call
func KeyedHash(key DomainKey, data []byte) Hash {
	h := NewHasher(key)
	h.Write(data)
	return h.Sum()
}

// HashValue hashes the deterministic CBOR encoding of v
func HashValue(key DomainKey, v any) (Hash, error) {
	data, err := Marshal(v)
	if err != nil {
		return Hash{}, err
	}
	return KeyedHash(key, data), nil
}

// String returns the full hex digest
func (h Hash) String() string {
	return hex.EncodeToString(h[:])
}

// Short returns the hex of the first 16 bytes
func (h Hash) Short() string {
	return hex.EncodeToString(h[:16])
}

// IsZero reports whether h is the zero hash
func (h Hash) IsZero() bool {
	return h == Hash{}
}
