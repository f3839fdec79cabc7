package arith

import (
	"math/big"
)

// ExtendedGCD returns g = gcd(a, b) together with Bézout coefficients x, y
// such that a⋅x + b⋅y = g. The inputs may be negative; g is never negative.
//
// ExtendedGCD(0, b) = (b, 0, 1) for b ≥ 0.
func ExtendedGCD(a, b *big.Int) (g, x, y *big.Int) {
	if a.Sign() == 0 {
		if b.Sign() < 0 {
			return new(big.Int).Neg(b), big.NewInt(0), big.NewInt(-1)
		}
		return new(big.Int).Set(b), big.NewInt(0), big.NewInt(1)
	}

	oldR, r := new(big.Int).Set(a), new(big.Int).Set(b)
	oldS, s := big.NewInt(1), big.NewInt(0)
	oldT, t := big.NewInt(0), big.NewInt(1)

	// invariant: a⋅oldS + b⋅oldT = oldR and a⋅s + b⋅t = r
	var q, tmp big.Int
	for r.Sign() != 0 {
		q.Quo(oldR, r)

		tmp.Mul(&q, r)
		oldR, r = r, new(big.Int).Sub(oldR, &tmp)

		tmp.Mul(&q, s)
		oldS, s = s, new(big.Int).Sub(oldS, &tmp)

		tmp.Mul(&q, t)
		oldT, t = t, new(big.Int).Sub(oldT, &tmp)
	}

	if oldR.Sign() < 0 {
		oldR.Neg(oldR)
		oldS.Neg(oldS)
		oldT.Neg(oldT)
	}
	return oldR, oldS, oldT
}

// ModInverse returns x ∈ [0, m) with a⋅x ≡ 1 (mod m).
// The boolean is false when no inverse exists, i.e. gcd(a, m) ≠ 1, or when m ≤ 0.
func ModInverse(a, m *big.Int) (*big.Int, bool) {
	if m.Sign() <= 0 {
		return nil, false
	}
	g, x, _ := ExtendedGCD(a, m)
	if g.Cmp(big.NewInt(1)) != 0 {
		return nil, false
	}
	// x may be negative: x = ((x rem m) + m) mod m
	x.Rem(x, m)
	x.Add(x, m)
	x.Mod(x, m)
	return x, true
}

// ModInverseBruteForce returns the same result as ModInverse by testing every
// candidate in [1, m). The scan is linear in m, so this is only usable for
// moduli of a few dozen bits (see params.BitsBruteForceMax); it serves as a
// reference for ModInverse.
func ModInverseBruteForce(a, m *big.Int) (*big.Int, bool) {
	if m.Sign() <= 0 {
		return nil, false
	}
	one := big.NewInt(1)
	if m.Cmp(one) == 0 {
		// every integer is congruent to 0 ≡ 1 (mod 1)
		return new(big.Int), true
	}

	aRed := new(big.Int).Mod(a, m)
	var prod big.Int
	for x := big.NewInt(1); x.Cmp(m) < 0; x.Add(x, one) {
		prod.Mul(aRed, x)
		prod.Mod(&prod, m)
		if prod.Cmp(one) == 0 {
			return x, true
		}
	}
	return nil, false
}
