package arith

import (
	"github.com/cronokirby/saferith"
)

// Modulus wraps a saferith.Modulus and enables faster modular exponentiation when
// a factorization into two coprime factors is known.
// When m = a⋅b, xᵉ (mod m) can be computed with one exponentiation mod a and
// one mod b, recombined with Garner's formula.
type Modulus struct {
	// represents modulus m
	*saferith.Modulus
	// m = a⋅b, gcd(a, b) = 1
	a, b *saferith.Modulus
	// aInv = a⁻¹ (mod b)
	aNat, aInv *saferith.Nat
}

// ModulusFromN creates a simple wrapper around a given modulus n.
// The modulus is not copied.
func ModulusFromN(n *saferith.Modulus) *Modulus {
	return &Modulus{
		Modulus: n,
	}
}

// ModulusFromFactors creates the cached values needed to accelerate
// exponentiation mod a⋅b. The factors must be odd and coprime.
func ModulusFromFactors(a, b *saferith.Nat) *Modulus {
	m := new(saferith.Nat).Mul(a, b, -1)
	bMod := saferith.ModulusFromNat(b)
	aRed := new(saferith.Nat).Mod(a, bMod)
	return &Modulus{
		Modulus: saferith.ModulusFromNat(m),
		a:       saferith.ModulusFromNat(a),
		b:       bMod,
		aNat:    new(saferith.Nat).SetNat(a),
		aInv:    new(saferith.Nat).ModInverse(aRed, bMod),
	}
}

// SquaredModulusFromPrimes returns n² for n = p⋅q, factored as p²⋅q².
func SquaredModulusFromPrimes(p, q *saferith.Nat) *Modulus {
	pSquared := new(saferith.Nat).Mul(p, p, -1)
	qSquared := new(saferith.Nat).Mul(q, q, -1)
	return ModulusFromFactors(pSquared, qSquared)
}

// Exp is equivalent to (saferith.Nat).Exp(x, e, m.Modulus).
// It returns xᵉ (mod m).
func (m *Modulus) Exp(x, e *saferith.Nat) *saferith.Nat {
	if m.HasFactorization() {
		var xa, xb saferith.Nat
		xa.Exp(new(saferith.Nat).Mod(x, m.a), e, m.a) // x₁ = xᵉ (mod a)
		xb.Exp(new(saferith.Nat).Mod(x, m.b), e, m.b) // x₂ = xᵉ (mod b)
		// r = x₁ + a ⋅ [a⁻¹ (mod b)] ⋅ [x₂ - x₁] (mod m)
		xa.Mod(&xa, m.Modulus)
		xb.Mod(&xb, m.Modulus)
		r := new(saferith.Nat).ModSub(&xb, &xa, m.Modulus)
		r.ModMul(r, new(saferith.Nat).Mod(m.aInv, m.Modulus), m.Modulus)
		r.ModMul(r, new(saferith.Nat).Mod(m.aNat, m.Modulus), m.Modulus)
		r.ModAdd(r, &xa, m.Modulus)
		return r
	}
	return new(saferith.Nat).Exp(new(saferith.Nat).Mod(x, m.Modulus), e, m.Modulus)
}

// HasFactorization reports whether Exp uses the CRT path.
func (m *Modulus) HasFactorization() bool {
	return m.a != nil && m.b != nil && m.aNat != nil && m.aInv != nil
}
