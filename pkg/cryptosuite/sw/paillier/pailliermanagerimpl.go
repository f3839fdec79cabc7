package paillier

import (
	"encoding/hex"
	"io"
	"log/slog"

	"github.com/google/uuid"
	pailliercore "github.com/mr-shifu/paillier/core/paillier"
	"github.com/mr-shifu/paillier/lib/params"
	comm_paillier "github.com/mr-shifu/paillier/pkg/common/cryptosuite/paillier"
	"github.com/mr-shifu/paillier/pkg/common/keyopts"
	"github.com/mr-shifu/paillier/pkg/common/vault"
	mem_keyopts "github.com/mr-shifu/paillier/pkg/keyopts"
	"github.com/pkg/errors"
)

var ErrInvalidKey = errors.New("paillier: invalid key")

type PaillierKeyManager struct {
	v    vault.Vault
	kr   keyopts.KeyOpts
	rand io.Reader
	bits int
	log  *slog.Logger
}

var _ comm_paillier.PaillierKeyManager = (*PaillierKeyManager)(nil)

type Option func(*PaillierKeyManager)

// WithLogger sets the logger for key lifecycle events.
func WithLogger(l *slog.Logger) Option {
	return func(mgr *PaillierKeyManager) {
		mgr.log = l
	}
}

// WithRand sets the randomness source used for key generation.
func WithRand(rand io.Reader) Option {
	return func(mgr *PaillierKeyManager) {
		mgr.rand = rand
	}
}

// WithBits sets the bit length of each generated prime.
func WithBits(bits int) Option {
	return func(mgr *PaillierKeyManager) {
		mgr.bits = bits
	}
}

func NewPaillierKeyManager(v vault.Vault, kr keyopts.KeyOpts, opts ...Option) *PaillierKeyManager {
	mgr := &PaillierKeyManager{
		v:    v,
		kr:   kr,
		bits: params.BitsPrime,
		log:  slog.Default(),
	}
	for _, opt := range opts {
		opt(mgr)
	}
	return mgr
}

// GenerateKey generates a new Paillier key pair and stores it under the "id"
// option. When opts carries no "id", a random UUID is set on opts.
func (mgr *PaillierKeyManager) GenerateKey(opts keyopts.Options) (comm_paillier.PaillierKey, error) {
	if err := ensureKeyID(opts); err != nil {
		return nil, err
	}

	pk, sk, err := pailliercore.KeyGen(mgr.rand, mgr.bits)
	if err != nil {
		mgr.log.Error("paillier key generation failed", "bits", mgr.bits, "error", err)
		return nil, errors.WithMessage(err, "paillier: failed to generate key")
	}

	key := NewPaillierKey(sk, pk)
	if err := mgr.store(key, opts); err != nil {
		return nil, err
	}
	return key, nil
}

// ImportKey stores key under the "id" option.
func (mgr *PaillierKeyManager) ImportKey(key comm_paillier.PaillierKey, opts keyopts.Options) (comm_paillier.PaillierKey, error) {
	if key == nil || key.PublicKeyRaw() == nil {
		return nil, ErrInvalidKey
	}
	if err := key.PublicKeyRaw().Validate(); err != nil {
		return nil, errors.WithMessage(err, "paillier: invalid public key")
	}
	if err := ensureKeyID(opts); err != nil {
		return nil, err
	}
	if err := mgr.store(key, opts); err != nil {
		return nil, err
	}
	return key, nil
}

// GetKey returns the key stored under the "id" option.
func (mgr *PaillierKeyManager) GetKey(opts keyopts.Options) (comm_paillier.PaillierKey, error) {
	kd, err := mgr.kr.Get(opts)
	if err != nil {
		return nil, err
	}
	key, err := mgr.v.Get(kd.SKI)
	if err != nil {
		return nil, errors.WithMessage(err, "paillier: failed to get key from vault")
	}
	return key, nil
}

// DeleteKey removes the key stored under the "id" option.
func (mgr *PaillierKeyManager) DeleteKey(opts keyopts.Options) error {
	kd, err := mgr.kr.Get(opts)
	if err != nil {
		return err
	}
	if err := mgr.v.Delete(kd.SKI); err != nil {
		return err
	}
	if err := mgr.kr.Delete(opts); err != nil {
		return err
	}
	mgr.log.Info("paillier key deleted", "key_id", kd.KeyID, "ski", kd.SKI)
	return nil
}

func (mgr *PaillierKeyManager) store(key comm_paillier.PaillierKey, opts keyopts.Options) error {
	ski := hex.EncodeToString(key.SKI())
	_, err := mgr.v.Get(ski)
	shared := err == nil

	// store key to vault
	if err := mgr.v.Import(ski, key); err != nil {
		return errors.WithMessage(err, "paillier: failed to import key to vault")
	}

	// link key ID to the key SKI
	if err := mgr.kr.Import(ski, opts); err != nil {
		// another key ID may still point at this SKI
		if !shared {
			_ = mgr.v.Delete(ski)
		}
		return errors.WithMessage(err, "paillier: failed to link key ID")
	}

	kid, _ := opts.Get("id")
	mgr.log.Info("paillier key stored", "key_id", kid, "ski", ski, "private", key.Private(), "bits", key.ParamN().BitLen())
	return nil
}

// ensureKeyID sets a random "id" on opts when none is given and rejects
// unusable ones before any key material is generated.
func ensureKeyID(opts keyopts.Options) error {
	if opts == nil {
		return errors.New("paillier: nil key options")
	}
	if _, ok := opts.Get("id"); !ok {
		if err := opts.Set("id", uuid.NewString()); err != nil {
			return err
		}
	}
	_, err := mem_keyopts.KeyID(opts)
	return err
}
