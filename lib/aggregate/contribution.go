package aggregate

import (
	"errors"

	"github.com/fxamacker/cbor/v2"
	"github.com/google/uuid"
	"github.com/mr-shifu/paillier/core/paillier"
)

var ErrInvalidContribution = errors.New("aggregate: invalid contribution")

// Contribution is one encrypted value submitted to a Tally.
type Contribution struct {
	ID         uuid.UUID            `cbor:"1,keyasint"`
	Ciphertext *paillier.Ciphertext `cbor:"2,keyasint"`
}

// NewContribution wraps ct with a fresh random ID.
func NewContribution(ct *paillier.Ciphertext) Contribution {
	return Contribution{ID: uuid.New(), Ciphertext: ct}
}

// contribution has the fields of Contribution but none of its methods, so
// cbor encodes it as a map.
type contribution Contribution

// MarshalBinary encodes the contribution as CBOR.
func (c Contribution) MarshalBinary() ([]byte, error) {
	if c.Ciphertext == nil {
		return nil, ErrInvalidContribution
	}
	return cbor.Marshal(contribution(c))
}

// UnmarshalContribution decodes a CBOR contribution. The ciphertext is not
// checked against any key; Tally.Submit does that.
func UnmarshalContribution(data []byte) (Contribution, error) {
	var c contribution
	if err := cbor.Unmarshal(data, &c); err != nil {
		return Contribution{}, err
	}
	if c.Ciphertext == nil || c.ID == uuid.Nil {
		return Contribution{}, ErrInvalidContribution
	}
	return Contribution(c), nil
}
