package aggregate

import (
	"errors"
	"fmt"
	"log/slog"
	"math/big"
	"sync"

	"github.com/google/uuid"
	"github.com/mr-shifu/paillier/core/hash"
	"github.com/mr-shifu/paillier/core/paillier"
)

var ErrDuplicateContribution = errors.New("aggregate: duplicate contribution")

// Tally accumulates contributions under a single public key.
// It is safe for concurrent use.
//
// Every accepted contribution is absorbed into a transcript that starts from
// the public key. The receipt for a contribution binds the transcript up to
// and including it with its position in the tally.
type Tally struct {
	pk  *paillier.PublicKey
	log *slog.Logger

	mu         sync.Mutex
	sum        *paillier.Ciphertext
	transcript *hash.Hash
	receipts   map[uuid.UUID][]byte
}

type Option func(*Tally)

// WithLogger sets the logger used to report submissions.
func WithLogger(l *slog.Logger) Option {
	return func(t *Tally) {
		t.log = l
	}
}

func NewTally(pk *paillier.PublicKey, opts ...Option) (*Tally, error) {
	zero, err := Zero(pk)
	if err != nil {
		return nil, err
	}
	t := &Tally{
		pk:         pk,
		log:        slog.Default(),
		sum:        zero,
		transcript: hash.New(pk),
		receipts:   make(map[uuid.UUID][]byte),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t, nil
}

// Submit adds c to the running sum. Contributions are identified by ID and
// counted at most once.
func (t *Tally) Submit(c Contribution) error {
	if c.Ciphertext == nil || c.ID == uuid.Nil {
		return ErrInvalidContribution
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if _, ok := t.receipts[c.ID]; ok {
		t.log.Warn("duplicate contribution rejected", "contribution", c.ID)
		return fmt.Errorf("%w: %s", ErrDuplicateContribution, c.ID)
	}
	sum, err := t.pk.Add(t.sum, c.Ciphertext)
	if err != nil {
		t.log.Warn("invalid contribution rejected", "contribution", c.ID, "error", err)
		return fmt.Errorf("%w: %w", ErrInvalidContribution, err)
	}

	transcript, err := t.transcript.Fork(c.ID, c.Ciphertext)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidContribution, err)
	}
	position := big.NewInt(int64(len(t.receipts) + 1))
	receipt, err := transcript.Fork("receipt", position)
	if err != nil {
		return err
	}

	t.sum = sum
	t.transcript = transcript
	t.receipts[c.ID] = receipt.Sum()
	t.log.Debug("contribution accepted", "contribution", c.ID, "count", len(t.receipts))
	return nil
}

// Receipt returns the receipt issued when the contribution with the given ID
// was accepted.
func (t *Tally) Receipt(id uuid.UUID) ([]byte, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	r, ok := t.receipts[id]
	if !ok {
		return nil, false
	}
	return append([]byte(nil), r...), true
}

// Transcript returns a digest of the public key and every accepted
// contribution in order of acceptance.
func (t *Tally) Transcript() []byte {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.transcript.Sum()
}

// Sum returns a copy of the current encrypted total.
func (t *Tally) Sum() *paillier.Ciphertext {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.sum.Clone()
}

// Count returns the number of accepted contributions.
func (t *Tally) Count() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.receipts)
}
