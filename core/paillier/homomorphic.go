package paillier

import (
	"fmt"
	"io"
	"math/big"

	"github.com/cronokirby/saferith"
)

// Add returns the homomorphic sum ct₁ ⊕ ct₂, which decrypts to m₁ + m₂ (mod n).
//
// ct = ct₁⋅ct₂ (mod n²)
func (pk *PublicKey) Add(ct1, ct2 *Ciphertext) (*Ciphertext, error) {
	if err := pk.validateCiphertext(ct1); err != nil {
		return nil, err
	}
	if err := pk.validateCiphertext(ct2); err != nil {
		return nil, err
	}
	c := new(saferith.Nat).ModMul(ct1.c, ct2.c, pk.nSquared.Modulus)
	return &Ciphertext{c: c}, nil
}

// Mul returns the homomorphic product k ⊙ ct, which decrypts to m⋅k (mod n).
//
// ct' = ctᵏ (mod n²)
func (pk *PublicKey) Mul(ct *Ciphertext, k *big.Int) (*Ciphertext, error) {
	if k == nil {
		return nil, ErrNilValue
	}
	if k.Sign() < 0 {
		return nil, fmt.Errorf("%w: %s", ErrNegativeScalar, k)
	}
	if err := pk.validateCiphertext(ct); err != nil {
		return nil, err
	}
	c := pk.nSquared.Exp(ct.c, natFromBig(k))
	return &Ciphertext{c: c}, nil
}

// AddPlaintext returns a ciphertext of m₁ + m (mod n) without a fresh nonce.
//
// ct' = ct⋅gᵐ (mod n²)
func (pk *PublicKey) AddPlaintext(ct *Ciphertext, m *Plaintext) (*Ciphertext, error) {
	if err := pk.validateCiphertext(ct); err != nil {
		return nil, err
	}
	if err := pk.validatePlaintext(m); err != nil {
		return nil, err
	}
	gm := pk.nSquared.Exp(pk.g, m.m)
	c := new(saferith.Nat).ModMul(ct.c, gm, pk.nSquared.Modulus)
	return &Ciphertext{c: c}, nil
}

// Randomize multiplies the ciphertext's nonce by a fresh one read from rand.
// The result decrypts to the same plaintext but is unlinkable to ct.
//
// ct' = ct⋅rⁿ (mod n²)
func (pk *PublicKey) Randomize(rand io.Reader, ct *Ciphertext) (*Ciphertext, error) {
	if err := pk.validateCiphertext(ct); err != nil {
		return nil, err
	}
	nonce, err := pk.Nonce(rand)
	if err != nil {
		return nil, fmt.Errorf("paillier: sampling nonce: %w", err)
	}
	rn := pk.nSquared.Exp(nonce, pk.n.Nat())
	c := new(saferith.Nat).ModMul(ct.c, rn, pk.nSquared.Modulus)
	return &Ciphertext{c: c}, nil
}
