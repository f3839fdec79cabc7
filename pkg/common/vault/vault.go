package vault

import (
	comm_paillier "github.com/mr-shifu/paillier/pkg/common/cryptosuite/paillier"
)

// Vault holds keys indexed by their Subject Key Identifier.
type Vault interface {
	Import(ski string, key comm_paillier.PaillierKey) error
	Get(ski string) (comm_paillier.PaillierKey, error)
	Delete(ski string) error
}
