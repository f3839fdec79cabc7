package paillier

import (
	"errors"
	"io"
	"math/big"

	"github.com/cronokirby/saferith"
)

// Plaintext is an integer in [0, n), created through PublicKey.NewPlaintext
// or by decryption.
type Plaintext struct {
	m *saferith.Nat
}

// Big returns the plaintext as a big.Int.
func (m *Plaintext) Big() *big.Int {
	return m.m.Big()
}

// Nat returns a copy of the plaintext.
func (m *Plaintext) Nat() *saferith.Nat {
	return m.m.Clone()
}

// Equal returns true if m and other hold the same integer.
func (m *Plaintext) Equal(other *Plaintext) bool {
	if m == nil || other == nil {
		return m == other
	}
	return m.Big().Cmp(other.Big()) == 0
}

func (m *Plaintext) String() string {
	return m.Big().String()
}

// Ciphertext is an integer in [0, n²).
type Ciphertext struct {
	c *saferith.Nat
}

// Big returns the ciphertext as a big.Int.
func (ct *Ciphertext) Big() *big.Int {
	return ct.c.Big()
}

// Equal checks whether ct ≡ other (mod n²).
func (ct *Ciphertext) Equal(other *Ciphertext) bool {
	if ct == nil || other == nil {
		return ct == other
	}
	return ct.Big().Cmp(other.Big()) == 0
}

// Clone returns a deep copy of ct.
func (ct *Ciphertext) Clone() *Ciphertext {
	return &Ciphertext{c: ct.c.Clone()}
}

// MarshalBinary implements encoding.BinaryMarshaler.
func (ct *Ciphertext) MarshalBinary() ([]byte, error) {
	if ct.c == nil {
		return nil, ErrNilValue
	}
	return ct.c.MarshalBinary()
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler. The result is not
// range-checked; use PublicKey.ValidateCiphertexts before trusting it.
func (ct *Ciphertext) UnmarshalBinary(data []byte) error {
	if len(data) == 0 {
		return errors.New("paillier: empty ciphertext encoding")
	}
	c := new(saferith.Nat)
	if err := c.UnmarshalBinary(data); err != nil {
		return err
	}
	ct.c = c
	return nil
}

// WriteTo implements io.WriterTo and should be used within the hash.Hash function.
func (ct *Ciphertext) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(ct.c.Bytes())
	return int64(n), err
}

// Domain implements hash.WriterToWithDomain, and separates this type within hash.Hash.
func (*Ciphertext) Domain() string {
	return "Paillier Ciphertext"
}
