// Package paillier implements the Paillier cryptosystem with the simple
// generator g = n + 1.
//
// Ciphertexts are additively homomorphic:
//
//	Dec(Add(Enc(m₁), Enc(m₂))) = m₁ + m₂ (mod n)
//	Dec(Mul(Enc(m), k))        = m ⋅ k   (mod n)
//
// All randomness is read from an explicit io.Reader; a nil reader selects
// crypto/rand.Reader.
package paillier

import (
	"errors"
	"fmt"
	"io"
	"math/big"

	"github.com/cronokirby/saferith"
	"github.com/mr-shifu/paillier/core/math/sample"
	"github.com/mr-shifu/paillier/lib/params"
)

var (
	ErrKeyGeneration    = errors.New("paillier: key generation failed")
	ErrInvalidBitLength = errors.New("paillier: prime bit length too small")
	ErrNoInverse        = errors.New("paillier: λ has no inverse modulo n²")
	ErrEqualPrimes      = errors.New("paillier: prime factors are equal")
	ErrPrimeBitLength   = errors.New("paillier: prime factors differ in bit length")
	ErrNotPrime         = errors.New("paillier: supposed prime factor is not prime")
	ErrModulusEven      = errors.New("paillier: modulus n is even")

	ErrNilValue             = errors.New("paillier: nil value")
	ErrPlaintextOutOfRange  = errors.New("paillier: plaintext outside [0, n)")
	ErrCiphertextOutOfRange = errors.New("paillier: ciphertext outside [0, n²)")
	ErrInvalidNonce         = errors.New("paillier: nonce outside [1, n)")
	ErrNegativeScalar       = errors.New("paillier: negative scalar")
	ErrKeyMismatch          = errors.New("paillier: secret key does not match public key")
)

var oneNat = new(saferith.Nat).SetUint64(1)

// KeyGen samples two independent primes of bits bits each and derives a key pair.
//
// It does not retry: any failure, including the (practically impossible) case
// of λ having no inverse modulo n², is returned wrapped in ErrKeyGeneration.
func KeyGen(rand io.Reader, bits int) (*PublicKey, *SecretKey, error) {
	if bits < params.MinBitsPrime {
		return nil, nil, fmt.Errorf("%w: %w: %d", ErrKeyGeneration, ErrInvalidBitLength, bits)
	}

	p, q, err := sample.PrimePair(rand, bits)
	if errors.Is(err, sample.ErrEqualPrimes) {
		return nil, nil, fmt.Errorf("%w: %w", ErrKeyGeneration, ErrEqualPrimes)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %w", ErrKeyGeneration, err)
	}

	sk, err := NewSecretKeyFromPrimes(p, q)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %w", ErrKeyGeneration, err)
	}
	return sk.PublicKey, sk, nil
}

// Decrypt decrypts ct with sk after checking that pk is the public half of sk.
func Decrypt(ct *Ciphertext, pk *PublicKey, sk *SecretKey) (*Plaintext, error) {
	if pk == nil || sk == nil {
		return nil, ErrNilValue
	}
	if !pk.Equal(sk.PublicKey) {
		return nil, ErrKeyMismatch
	}
	return sk.Decrypt(ct)
}

// natFromBig converts a non-negative x, keeping at least one bit of capacity.
func natFromBig(x *big.Int) *saferith.Nat {
	size := x.BitLen()
	if size == 0 {
		size = 1
	}
	return new(saferith.Nat).SetBig(x, size)
}
