package paillier

import (
	"io"
	"math/big"

	"github.com/cronokirby/saferith"
	"github.com/mr-shifu/paillier/core/paillier"
	"github.com/mr-shifu/paillier/pkg/common/keyopts"
)

type PaillierKey interface {
	// SKI returns the Subject Key Identifier of the key, derived from n.
	SKI() []byte

	// Private returns true if the key contains the secret key.
	Private() bool

	// PublicKey returns the public part of the key.
	PublicKey() PaillierKey

	// PublicKeyRaw returns the underlying Paillier public key.
	PublicKeyRaw() *paillier.PublicKey

	// ParamN returns the modulus n.
	ParamN() *saferith.Modulus

	// Encrypt encrypts m ∈ [0, n) with a nonce read from rand.
	Encrypt(rand io.Reader, m *big.Int) (*paillier.Ciphertext, error)

	// Decrypt decrypts ct; it fails on public-only keys.
	Decrypt(ct *paillier.Ciphertext) (*big.Int, error)

	// Add returns a ciphertext of the sum of the plaintexts of ct1 and ct2.
	Add(ct1, ct2 *paillier.Ciphertext) (*paillier.Ciphertext, error)

	// Mul returns a ciphertext of the plaintext of ct multiplied by k.
	Mul(ct *paillier.Ciphertext, k *big.Int) (*paillier.Ciphertext, error)
}

type PaillierKeyManager interface {
	// GenerateKey generates a new key pair and stores it under the "id" option.
	GenerateKey(opts keyopts.Options) (PaillierKey, error)

	// ImportKey stores an existing key under the "id" option.
	ImportKey(key PaillierKey, opts keyopts.Options) (PaillierKey, error)

	// GetKey returns the key stored under the "id" option.
	GetKey(opts keyopts.Options) (PaillierKey, error)

	// DeleteKey removes the key stored under the "id" option.
	DeleteKey(opts keyopts.Options) error
}
