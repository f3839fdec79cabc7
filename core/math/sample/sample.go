package sample

import (
	cryptorand "crypto/rand"
	"errors"
	"fmt"
	"io"

	"github.com/cronokirby/saferith"
)

// maxIterations bounds rejection sampling; hitting it means the reader is broken.
const maxIterations = 255

var (
	ErrMaxIterations = errors.New("sample: failed to generate after 255 iterations")
	ErrBitLength     = errors.New("sample: prime bit length must be at least 2")
	ErrEqualPrimes   = errors.New("sample: sampled identical primes")
)

func readerOrDefault(rand io.Reader) io.Reader {
	if rand == nil {
		return cryptorand.Reader
	}
	return rand
}

// ModN samples an element of ℤₙ uniformly at random.
func ModN(rand io.Reader, n *saferith.Modulus) (*saferith.Nat, error) {
	rand = readerOrDefault(rand)
	bitLen := n.BitLen()
	buf := make([]byte, (bitLen+7)/8)
	// clear the bits above the length of n so that rejection succeeds half the time
	mask := byte(0xff >> (8*len(buf) - bitLen))

	out := new(saferith.Nat)
	for i := 0; i < maxIterations; i++ {
		if _, err := io.ReadFull(rand, buf); err != nil {
			return nil, fmt.Errorf("sample: failed to read random bytes: %w", err)
		}
		buf[0] &= mask
		out.SetBytes(buf)
		if _, _, lt := out.CmpMod(n); lt == 1 {
			return out, nil
		}
	}
	return nil, ErrMaxIterations
}

// UnitModN samples an element of ℤₙˣ uniformly at random.
// The result lies in [1, n) and is coprime to n.
func UnitModN(rand io.Reader, n *saferith.Modulus) (*saferith.Nat, error) {
	for i := 0; i < maxIterations; i++ {
		u, err := ModN(rand, n)
		if err != nil {
			return nil, err
		}
		if u.IsUnit(n) == 1 {
			return u, nil
		}
	}
	return nil, ErrMaxIterations
}

// Prime returns a random prime of exactly bits bits.
func Prime(rand io.Reader, bits int) (*saferith.Nat, error) {
	if bits < 2 {
		return nil, ErrBitLength
	}
	p, err := cryptorand.Prime(readerOrDefault(rand), bits)
	if err != nil {
		return nil, fmt.Errorf("sample: prime generation failed: %w", err)
	}
	return new(saferith.Nat).SetBig(p, bits), nil
}

// PrimePair samples two independent primes of the same bit length.
// It fails with ErrEqualPrimes rather than return p = q.
func PrimePair(rand io.Reader, bits int) (p, q *saferith.Nat, err error) {
	if p, err = Prime(rand, bits); err != nil {
		return nil, nil, err
	}
	if q, err = Prime(rand, bits); err != nil {
		return nil, nil, err
	}
	if p.Eq(q) == 1 {
		return nil, nil, ErrEqualPrimes
	}
	return p, q, nil
}
