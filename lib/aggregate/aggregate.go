// Package aggregate sums Paillier-encrypted values, such as ballots or
// amounts, without decrypting the individual contributions.
package aggregate

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/big"

	"github.com/cronokirby/saferith"
	"github.com/mr-shifu/paillier/core/paillier"
	"golang.org/x/sync/errgroup"
)

var ErrNoKey = errors.New("aggregate: nil public key")

// EncryptAll encrypts msgs under pk using at most workers goroutines.
//
// Nonces are read from rand sequentially before the parallel phase, so rand
// need not be safe for concurrent use and a seeded reader gives reproducible
// output.
func EncryptAll(ctx context.Context, rand io.Reader, pk *paillier.PublicKey, msgs []*big.Int, workers int) ([]*paillier.Ciphertext, error) {
	if pk == nil {
		return nil, ErrNoKey
	}

	pts := make([]*paillier.Plaintext, len(msgs))
	nonces := make([]*saferith.Nat, len(msgs))
	for i, m := range msgs {
		pt, err := pk.NewPlaintext(m)
		if err != nil {
			return nil, fmt.Errorf("aggregate: message %d: %w", i, err)
		}
		nonce, err := pk.Nonce(rand)
		if err != nil {
			return nil, fmt.Errorf("aggregate: message %d: %w", i, err)
		}
		pts[i], nonces[i] = pt, nonce
	}

	cts := make([]*paillier.Ciphertext, len(msgs))
	g, ctx := errgroup.WithContext(ctx)
	if workers > 0 {
		g.SetLimit(workers)
	}
	for i := range msgs {
		i := i
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			ct, err := pk.EncryptWithNonce(pts[i], nonces[i])
			if err != nil {
				return fmt.Errorf("aggregate: message %d: %w", i, err)
			}
			cts[i] = ct
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return cts, nil
}

// Zero returns the deterministic encryption of 0 with nonce 1, the neutral
// element of homomorphic addition.
func Zero(pk *paillier.PublicKey) (*paillier.Ciphertext, error) {
	if pk == nil {
		return nil, ErrNoKey
	}
	return pk.NewCiphertext(big.NewInt(1))
}

// Sum returns the homomorphic sum of cts. An empty input yields Zero(pk).
func Sum(pk *paillier.PublicKey, cts ...*paillier.Ciphertext) (*paillier.Ciphertext, error) {
	acc, err := Zero(pk)
	if err != nil {
		return nil, err
	}
	for i, ct := range cts {
		if acc, err = pk.Add(acc, ct); err != nil {
			return nil, fmt.Errorf("aggregate: ciphertext %d: %w", i, err)
		}
	}
	return acc, nil
}
