package paillier

import (
	"github.com/cronokirby/saferith"
	"github.com/mr-shifu/paillier/core/math/arith"
)

// SecretKey is the secret key corresponding to a Paillier PublicKey.
//
// λ = (p-1)(q-1) is used in place of the Carmichael function lcm(p-1, q-1),
// paired with μ = λ⁻¹ (mod n²). The pairing is internally consistent: both
// must come from the same λ.
type SecretKey struct {
	*PublicKey
	// p, q such that n = p⋅q
	p, q *saferith.Nat
	// lambda = λ = (p-1)(q-1)
	lambda *saferith.Nat
	// mu = μ = λ⁻¹ (mod n²)
	mu *saferith.Nat
	// muModN = μ (mod n)
	muModN *saferith.Nat
	// nSquared = p²⋅q², used to exponentiate with the CRT
	nSquared *arith.Modulus
}

// NewSecretKeyFromPrimes derives a key pair from two distinct primes of equal
// bit length.
func NewSecretKeyFromPrimes(p, q *saferith.Nat) (*SecretKey, error) {
	if p == nil || q == nil {
		return nil, ErrNilValue
	}
	if err := ValidatePrimes(p, q); err != nil {
		return nil, err
	}

	n := new(saferith.Nat).Mul(p, q, -1)
	pMinus1 := new(saferith.Nat).Sub(p, oneNat, -1)
	qMinus1 := new(saferith.Nat).Sub(q, oneNat, -1)
	lambda := new(saferith.Nat).Mul(pMinus1, qMinus1, -1)

	// μ = λ⁻¹ (mod n²)
	nSquaredBig := new(saferith.Nat).Mul(n, n, -1).Big()
	muBig, ok := arith.ModInverse(lambda.Big(), nSquaredBig)
	if !ok {
		return nil, ErrNoInverse
	}
	mu := new(saferith.Nat).SetBig(muBig, nSquaredBig.BitLen())

	pk := NewPublicKey(saferith.ModulusFromNat(n))
	return &SecretKey{
		PublicKey: pk,
		p:         p.Clone(),
		q:         q.Clone(),
		lambda:    lambda,
		mu:        mu,
		muModN:    new(saferith.Nat).Mod(mu, pk.N()),
		nSquared:  arith.SquaredModulusFromPrimes(p, q),
	}, nil
}

// ValidatePrimes checks the conditions NewSecretKeyFromPrimes relies on:
// p and q are distinct primes of the same bit length.
func ValidatePrimes(p, q *saferith.Nat) error {
	if !p.Big().ProbablyPrime(20) || !q.Big().ProbablyPrime(20) {
		return ErrNotPrime
	}
	if p.TrueLen() != q.TrueLen() {
		return ErrPrimeBitLength
	}
	if p.Eq(q) == 1 {
		return ErrEqualPrimes
	}
	return nil
}

// P returns the first of the two factors composing this key.
func (sk *SecretKey) P() *saferith.Nat {
	return sk.p.Clone()
}

// Q returns the second of the two factors composing this key.
func (sk *SecretKey) Q() *saferith.Nat {
	return sk.q.Clone()
}

// Lambda returns λ = (p-1)(q-1).
func (sk *SecretKey) Lambda() *saferith.Nat {
	return sk.lambda.Clone()
}

// Mu returns μ = λ⁻¹ (mod n²).
func (sk *SecretKey) Mu() *saferith.Nat {
	return sk.mu.Clone()
}

// Decrypt returns the plaintext m ∈ [0, n) encrypted in ct.
// It returns an error if ct is not in [0, n²).
//
// A ciphertext produced under a different key decrypts to a meaningless value.
func (sk *SecretKey) Decrypt(ct *Ciphertext) (*Plaintext, error) {
	if err := sk.PublicKey.validateCiphertext(ct); err != nil {
		return nil, err
	}
	n := sk.PublicKey.N()

	// u = c^λ 				(mod n²)
	result := sk.nSquared.Exp(ct.c, sk.lambda)
	// u = c^λ - 1
	result.Sub(result, oneNat, -1)
	// L(u) = [(c^λ - 1)/n]
	result.Div(result, n, -1)
	// m = L(u) • μ 			(mod n)
	result.Mod(result, n)
	result.ModMul(result, sk.muModN, n)

	return &Plaintext{m: result}, nil
}
