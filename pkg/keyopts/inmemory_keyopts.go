package keyopts

import (
	"errors"
	"sort"
	"sync"

	"github.com/mr-shifu/paillier/pkg/common/keyopts"
)

var (
	ErrInvalidParamsKeyID = errors.New("keyopts: invalid keyID")
	ErrInvalidSKI         = errors.New("keyopts: invalid SKI")
	ErrKeyNotFound        = errors.New("keyopts: key not found")
)

type KeyOpts struct {
	lock sync.RWMutex

	// keys is a map of KeyID to key metadata{SKI}.
	keys map[string]*keyopts.KeyData
}

var _ keyopts.KeyOpts = (*KeyOpts)(nil)

func NewInMemoryKeyOpts() *KeyOpts {
	return &KeyOpts{
		keys: make(map[string]*keyopts.KeyData),
	}
}

func (kr *KeyOpts) Import(ski string, opts keyopts.Options) error {
	kid, err := KeyID(opts)
	if err != nil {
		return err
	}
	if ski == "" {
		return ErrInvalidSKI
	}

	kr.lock.Lock()
	defer kr.lock.Unlock()

	kr.keys[kid] = &keyopts.KeyData{
		KeyID: kid,
		SKI:   ski,
	}
	return nil
}

func (kr *KeyOpts) Get(opts keyopts.Options) (*keyopts.KeyData, error) {
	kid, err := KeyID(opts)
	if err != nil {
		return nil, err
	}

	kr.lock.RLock()
	defer kr.lock.RUnlock()

	k, ok := kr.keys[kid]
	if !ok {
		return nil, ErrKeyNotFound
	}
	kd := *k
	return &kd, nil
}

func (kr *KeyOpts) Delete(opts keyopts.Options) error {
	kid, err := KeyID(opts)
	if err != nil {
		return err
	}

	kr.lock.Lock()
	defer kr.lock.Unlock()

	if _, ok := kr.keys[kid]; !ok {
		return ErrKeyNotFound
	}
	delete(kr.keys, kid)
	return nil
}

// KeyIDs returns the known key IDs in sorted order.
func (kr *KeyOpts) KeyIDs() []string {
	kr.lock.RLock()
	defer kr.lock.RUnlock()

	ids := make([]string, 0, len(kr.keys))
	for id := range kr.keys {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
