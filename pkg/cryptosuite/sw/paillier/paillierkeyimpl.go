package paillier

import (
	"errors"
	"io"
	"math/big"

	"github.com/cronokirby/saferith"
	pailliercore "github.com/mr-shifu/paillier/core/paillier"
	comm_paillier "github.com/mr-shifu/paillier/pkg/common/cryptosuite/paillier"
)

var ErrPublicKeyOnly = errors.New("paillier: key has no secret part")

type PaillierKey struct {
	secretKey *pailliercore.SecretKey
	publicKey *pailliercore.PublicKey
}

var _ comm_paillier.PaillierKey = PaillierKey{}

// NewPaillierKey wraps a key pair. sk may be nil for a public-only key.
func NewPaillierKey(sk *pailliercore.SecretKey, pk *pailliercore.PublicKey) PaillierKey {
	if pk == nil && sk != nil {
		pk = sk.PublicKey
	}
	return PaillierKey{secretKey: sk, publicKey: pk}
}

// SKI returns the Subject Key Identifier of the key derived from N param of public key.
func (k PaillierKey) SKI() []byte {
	return k.publicKey.SKI()
}

// Private returns true if the key contains secret key.
func (k PaillierKey) Private() bool {
	return k.secretKey != nil
}

// PublicKey returns the public key part of the key.
func (k PaillierKey) PublicKey() comm_paillier.PaillierKey {
	return PaillierKey{nil, k.publicKey}
}

func (k PaillierKey) PublicKeyRaw() *pailliercore.PublicKey {
	return k.publicKey
}

// ParamN returns the N param of the key.
func (k PaillierKey) ParamN() *saferith.Modulus {
	return k.publicKey.N()
}

func (k PaillierKey) Encrypt(rand io.Reader, m *big.Int) (*pailliercore.Ciphertext, error) {
	pt, err := k.publicKey.NewPlaintext(m)
	if err != nil {
		return nil, err
	}
	return k.publicKey.Encrypt(rand, pt)
}

func (k PaillierKey) Decrypt(ct *pailliercore.Ciphertext) (*big.Int, error) {
	if k.secretKey == nil {
		return nil, ErrPublicKeyOnly
	}
	m, err := k.secretKey.Decrypt(ct)
	if err != nil {
		return nil, err
	}
	return m.Big(), nil
}

func (k PaillierKey) Add(ct1, ct2 *pailliercore.Ciphertext) (*pailliercore.Ciphertext, error) {
	return k.publicKey.Add(ct1, ct2)
}

func (k PaillierKey) Mul(ct *pailliercore.Ciphertext, m *big.Int) (*pailliercore.Ciphertext, error) {
	return k.publicKey.Mul(ct, m)
}
