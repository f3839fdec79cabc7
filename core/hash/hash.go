// Package hash provides the domain-separated BLAKE3 transcript behind key
// fingerprints and tally receipts.
package hash

import (
	"bytes"
	"encoding"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math/big"

	"github.com/mr-shifu/paillier/lib/params"
	"github.com/zeebo/blake3"
)

const DigestLengthBytes = params.SecBytes * 2 // 64

const separator = "PAILLIER-BLAKE3"

// WriterToWithDomain is implemented by types that feed themselves into a
// Hash under their own domain tag.
type WriterToWithDomain interface {
	io.WriterTo
	Domain() string
}

// Hash absorbs a sequence of tagged values. Its extendable output makes
// Digest usable as a deterministic io.Reader.
type Hash struct {
	h *blake3.Hasher
}

// New returns a Hash keyed with the package separator and initialData.
// Values WriteAny rejects are skipped.
func New(initialData ...interface{}) *Hash {
	hash := &Hash{h: blake3.New()}
	_, _ = hash.h.WriteString(separator)
	_ = hash.WriteAny(initialData...)
	return hash
}

// Digest returns a stream of output bytes for the current state.
func (hash *Hash) Digest() io.Reader {
	return hash.h.Digest()
}

// Sum returns the first DigestLengthBytes bytes of Digest.
func (hash *Hash) Sum() []byte {
	out := make([]byte, DigestLengthBytes)
	if _, err := io.ReadFull(hash.Digest(), out); err != nil {
		panic(fmt.Sprintf("hash.Sum: internal hash failure: %v", err))
	}
	return out
}

// WriteAny absorbs each value as a length-prefixed (tag, bytes) pair.
//
// Accepted: []byte, string, *big.Int, WriterToWithDomain and
// encoding.BinaryMarshaler, tried in that order. Nothing is written for a
// value that fails, but earlier values in the same call stay absorbed.
func (hash *Hash) WriteAny(data ...interface{}) error {
	for _, d := range data {
		tag, b, err := encode(d)
		if err != nil {
			return fmt.Errorf("hash.WriteAny: %w", err)
		}
		hash.frame(tag, b)
	}
	return nil
}

func encode(d interface{}) (string, []byte, error) {
	switch v := d.(type) {
	case []byte:
		if v == nil {
			return "", nil, errors.New("nil []byte")
		}
		return "[]byte", v, nil
	case string:
		return "string", []byte(v), nil
	case *big.Int:
		if v == nil {
			return "", nil, errors.New("nil *big.Int")
		}
		// GobEncode keeps the sign
		b, err := v.GobEncode()
		return "big.Int", b, err
	case WriterToWithDomain:
		var buf bytes.Buffer
		if _, err := v.WriteTo(&buf); err != nil {
			return "", nil, fmt.Errorf("%T: %w", v, err)
		}
		return v.Domain(), buf.Bytes(), nil
	case encoding.BinaryMarshaler:
		b, err := v.MarshalBinary()
		if err != nil {
			return "", nil, fmt.Errorf("%T: %w", v, err)
		}
		return fmt.Sprintf("%T", v), b, nil
	}
	return "", nil, fmt.Errorf("unsupported type %T", d)
}

// frame writes len(tag) ‖ tag ‖ len(data) ‖ data with big-endian uint64 lengths.
func (hash *Hash) frame(tag string, data []byte) {
	var n [8]byte
	binary.BigEndian.PutUint64(n[:], uint64(len(tag)))
	_, _ = hash.h.Write(n[:])
	_, _ = hash.h.WriteString(tag)
	binary.BigEndian.PutUint64(n[:], uint64(len(data)))
	_, _ = hash.h.Write(n[:])
	_, _ = hash.h.Write(data)
}

// Clone returns an independent copy of the current state.
func (hash *Hash) Clone() *Hash {
	return &Hash{h: hash.h.Clone()}
}

// Fork returns a clone with data absorbed, leaving hash unchanged.
func (hash *Hash) Fork(data ...interface{}) (*Hash, error) {
	f := hash.Clone()
	if err := f.WriteAny(data...); err != nil {
		return nil, err
	}
	return f, nil
}
