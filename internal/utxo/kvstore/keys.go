package kvstore

import (
	"encoding/binary"
	"fmt"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
)

// HashSize is the encoded size of a block or transaction hash.
const HashSize = chainhash.HashSize

// Key concatenates key parts.
func Key(parts ...[]byte) []byte {
	n := 0
	for _, p := range parts {
		n += len(p)
	}
	k := make([]byte, 0, n)
	for _, p := range parts {
		k = append(k, p...)
	}
	return k
}

// Hash encodes a hex hash string to its fixed-size key form.
func Hash(s string) ([]byte, error) {
	if len(s) != 2*HashSize {
		return nil, fmt.Errorf("invalid hash %q: want %d hex chars", s, 2*HashSize)
	}
	h, err := chainhash.NewHashFromStr(s)
	if err != nil {
		return nil, fmt.Errorf("invalid hash %q: %w", s, err)
	}
	return h[:], nil
}

// HashString decodes a key-form hash back to its hex string.
func HashString(b []byte) (string, error) {
	h, err := chainhash.NewHash(b)
	if err != nil {
		return "", fmt.Errorf("decode hash: %w", err)
	}
	return h.String(), nil
}

// Uint32 encodes v big-endian so keys sort numerically.
func Uint32(v uint32) []byte {
	b := make([]byte, 4)
	binary.BigEndian.PutUint32(b, v)
	return b
}

// Uint64 encodes v big-endian so keys sort numerically.
func Uint64(v uint64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, v)
	return b
}

// Int64 encodes a signed value in eight bytes. It is meant for values, not ordered keys.
func Int64(v int64) []byte {
	return Uint64(uint64(v))
}

// DecodeInt64 decodes a value written by Int64.
func DecodeInt64(b []byte) (int64, error) {
	if len(b) < 8 {
		return 0, fmt.Errorf("decode int64: short value of %d bytes", len(b))
	}
	return int64(binary.BigEndian.Uint64(b)), nil
}

// String encodes s with a one-byte length prefix, so a string key part is never
// a prefix of a longer one.
func String(s string) ([]byte, error) {
	if len(s) > 0xff {
		return nil, fmt.Errorf("key string too long: %d", len(s))
	}
	return append([]byte{byte(len(s))}, s...), nil
}

// DecodeUint32 decodes a big-endian value written by Uint32.
func DecodeUint32(b []byte) uint32 {
	return binary.BigEndian.Uint32(b)
}

// DecodeUint64 decodes a big-endian value written by Uint64.
func DecodeUint64(b []byte) uint64 {
	return binary.BigEndian.Uint64(b)
}
