package vault

import (
	"errors"
	"sync"

	comm_paillier "github.com/mr-shifu/paillier/pkg/common/cryptosuite/paillier"
	"github.com/mr-shifu/paillier/pkg/common/vault"
)

var (
	ErrKeyNotFound = errors.New("vault: key not found")
	ErrInvalidKey  = errors.New("vault: invalid key")
)

type InMemoryVault struct {
	lock sync.RWMutex
	keys map[string]comm_paillier.PaillierKey
}

var _ vault.Vault = (*InMemoryVault)(nil)

func NewInMemoryVault() *InMemoryVault {
	return &InMemoryVault{
		keys: make(map[string]comm_paillier.PaillierKey),
	}
}

func (store *InMemoryVault) Import(ski string, key comm_paillier.PaillierKey) error {
	if ski == "" || key == nil {
		return ErrInvalidKey
	}

	store.lock.Lock()
	defer store.lock.Unlock()

	store.keys[ski] = key
	return nil
}

func (store *InMemoryVault) Get(ski string) (comm_paillier.PaillierKey, error) {
	store.lock.RLock()
	defer store.lock.RUnlock()

	key, ok := store.keys[ski]
	if !ok {
		return nil, ErrKeyNotFound
	}
	return key, nil
}

func (store *InMemoryVault) Delete(ski string) error {
	store.lock.Lock()
	defer store.lock.Unlock()

	delete(store.keys, ski)
	return nil
}
