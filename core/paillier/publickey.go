package paillier

import (
	"fmt"
	"io"
	"math/big"

	"github.com/cronokirby/saferith"
	"github.com/mr-shifu/paillier/core/hash"
	"github.com/mr-shifu/paillier/core/math/arith"
	"github.com/mr-shifu/paillier/core/math/sample"
)

// PublicKey is a Paillier public key (n, g) with g = n + 1.
type PublicKey struct {
	// n = p⋅q
	n *arith.Modulus
	// nSquared = n²
	nSquared *arith.Modulus
	// g = n + 1
	g *saferith.Nat
}

// NewPublicKey returns the public key with modulus n.
func NewPublicKey(n *saferith.Modulus) *PublicKey {
	nNat := n.Nat()
	nSquared := new(saferith.Nat).Mul(nNat, nNat, -1)
	g := new(saferith.Nat).Add(nNat, oneNat, n.BitLen()+1)
	return &PublicKey{
		n:        arith.ModulusFromN(n),
		nSquared: arith.ModulusFromN(saferith.ModulusFromNat(nSquared)),
		g:        g,
	}
}

// N returns the modulus n.
func (pk *PublicKey) N() *saferith.Modulus {
	return pk.n.Modulus
}

// NSquared returns n².
func (pk *PublicKey) NSquared() *saferith.Modulus {
	return pk.nSquared.Modulus
}

// G returns a copy of the generator n + 1.
func (pk *PublicKey) G() *saferith.Nat {
	return pk.g.Clone()
}

// Equal returns true if pk and other share the modulus n.
func (pk *PublicKey) Equal(other *PublicKey) bool {
	if pk == nil || other == nil {
		return pk == other
	}
	return pk.n.Nat().Eq(other.n.Nat()) == 1
}

// Validate checks that n is odd.
func (pk *PublicKey) Validate() error {
	if pk.n.Nat().Byte(0)&1 != 1 {
		return ErrModulusEven
	}
	return nil
}

// NewPlaintext range-checks m against [0, n).
func (pk *PublicKey) NewPlaintext(m *big.Int) (*Plaintext, error) {
	if m == nil {
		return nil, ErrNilValue
	}
	if m.Sign() < 0 || m.Cmp(pk.n.Big()) >= 0 {
		return nil, fmt.Errorf("%w: %s", ErrPlaintextOutOfRange, m)
	}
	return &Plaintext{m: natFromBig(m)}, nil
}

// NewCiphertext range-checks c against [0, n²).
func (pk *PublicKey) NewCiphertext(c *big.Int) (*Ciphertext, error) {
	if c == nil {
		return nil, ErrNilValue
	}
	if c.Sign() < 0 || c.Cmp(pk.nSquared.Big()) >= 0 {
		return nil, ErrCiphertextOutOfRange
	}
	return &Ciphertext{c: natFromBig(c)}, nil
}

// Nonce returns a suitable nonce r ∈ ℤₙˣ for encryption.
func (pk *PublicKey) Nonce(rand io.Reader) (*saferith.Nat, error) {
	return sample.UnitModN(rand, pk.n.Modulus)
}

// Encrypt returns the encryption of m under pk with a fresh nonce read from rand.
//
// ct = gᵐ⋅rⁿ (mod n²)
func (pk *PublicKey) Encrypt(rand io.Reader, m *Plaintext) (*Ciphertext, error) {
	if err := pk.validatePlaintext(m); err != nil {
		return nil, err
	}
	nonce, err := pk.Nonce(rand)
	if err != nil {
		return nil, fmt.Errorf("paillier: sampling nonce: %w", err)
	}
	return pk.encWithNonce(m, nonce), nil
}

// EncryptWithNonce returns the encryption of m under pk using the given nonce.
// Reusing a nonce links ciphertexts; callers must draw one per encryption.
func (pk *PublicKey) EncryptWithNonce(m *Plaintext, nonce *saferith.Nat) (*Ciphertext, error) {
	if err := pk.validatePlaintext(m); err != nil {
		return nil, err
	}
	if err := pk.validateNonce(nonce); err != nil {
		return nil, err
	}
	return pk.encWithNonce(m, nonce), nil
}

func (pk *PublicKey) encWithNonce(m *Plaintext, nonce *saferith.Nat) *Ciphertext {
	nNat := pk.n.Nat()
	gm := pk.nSquared.Exp(pk.g, m.m)   // gᵐ (mod n²)
	rn := pk.nSquared.Exp(nonce, nNat) // rⁿ (mod n²)
	c := new(saferith.Nat).ModMul(gm, rn, pk.nSquared.Modulus)
	return &Ciphertext{c: c}
}

// ValidateCiphertexts returns true if every ciphertext lies in [0, n²).
func (pk *PublicKey) ValidateCiphertexts(cts ...*Ciphertext) bool {
	for _, ct := range cts {
		if pk.validateCiphertext(ct) != nil {
			return false
		}
	}
	return true
}

func (pk *PublicKey) validatePlaintext(m *Plaintext) error {
	if m == nil || m.m == nil {
		return ErrNilValue
	}
	if _, _, lt := m.m.CmpMod(pk.n.Modulus); lt != 1 {
		return ErrPlaintextOutOfRange
	}
	return nil
}

func (pk *PublicKey) validateCiphertext(ct *Ciphertext) error {
	if ct == nil || ct.c == nil {
		return ErrNilValue
	}
	if _, _, lt := ct.c.CmpMod(pk.nSquared.Modulus); lt != 1 {
		return ErrCiphertextOutOfRange
	}
	return nil
}

func (pk *PublicKey) validateNonce(nonce *saferith.Nat) error {
	if nonce == nil {
		return ErrNilValue
	}
	if _, _, lt := nonce.CmpMod(pk.n.Modulus); lt != 1 || nonce.EqZero() == 1 {
		return ErrInvalidNonce
	}
	return nil
}

// SKI returns the subject key identifier of pk, a hash of n.
func (pk *PublicKey) SKI() []byte {
	return hash.New(pk).Sum()
}

// WriteTo implements io.WriterTo and should be used within the hash.Hash function.
func (pk *PublicKey) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(pk.n.Bytes())
	return int64(n), err
}

// Domain implements hash.WriterToWithDomain, and separates this type within hash.Hash.
func (*PublicKey) Domain() string {
	return "Paillier PublicKey"
}
