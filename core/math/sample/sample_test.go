package sample

import (
	"bytes"
	"crypto/rand"
	"errors"
	"testing"

	"github.com/cronokirby/saferith"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) {
	return 0, errors.New("entropy exhausted")
}

func TestModN(t *testing.T) {
	n := saferith.ModulusFromUint64(1000003)
	for i := 0; i < 1000; i++ {
		x, err := ModN(rand.Reader, n)
		require.NoError(t, err)
		_, _, lt := x.CmpMod(n)
		assert.Equal(t, saferith.Choice(1), lt)
	}
}

func TestModNDeterministic(t *testing.T) {
	n := saferith.ModulusFromUint64(1 << 40)
	seed := bytes.Repeat([]byte{0x5a}, 64)

	x1, err := ModN(bytes.NewReader(seed), n)
	require.NoError(t, err)
	x2, err := ModN(bytes.NewReader(seed), n)
	require.NoError(t, err)
	assert.Equal(t, saferith.Choice(1), x1.Eq(x2))
}

func TestUnitModN(t *testing.T) {
	// n = 3⋅5⋅7 has many non-units
	n := saferith.ModulusFromUint64(105)
	for i := 0; i < 500; i++ {
		u, err := UnitModN(rand.Reader, n)
		require.NoError(t, err)
		assert.Equal(t, saferith.Choice(1), u.IsUnit(n))
		assert.Equal(t, saferith.Choice(0), u.EqZero())
	}
}

func TestReaderFailure(t *testing.T) {
	n := saferith.ModulusFromUint64(97)
	_, err := ModN(failingReader{}, n)
	assert.Error(t, err)
	_, err = UnitModN(failingReader{}, n)
	assert.Error(t, err)
	_, err = Prime(failingReader{}, 64)
	assert.Error(t, err)

	// a reader that only yields values ≥ n exhausts the iteration budget
	_, err = ModN(bytes.NewReader(bytes.Repeat([]byte{0xff}, 1024)), saferith.ModulusFromUint64(129))
	assert.ErrorIs(t, err, ErrMaxIterations)
}

func TestPrime(t *testing.T) {
	_, err := Prime(rand.Reader, 1)
	assert.ErrorIs(t, err, ErrBitLength)

	for _, bits := range []int{16, 64, 256} {
		p, err := Prime(nil, bits)
		require.NoError(t, err)
		assert.Equal(t, bits, p.TrueLen())
		assert.True(t, p.Big().ProbablyPrime(20))
	}
}

func TestPrimePair(t *testing.T) {
	p, q, err := PrimePair(rand.Reader, 128)
	require.NoError(t, err)
	assert.Equal(t, saferith.Choice(0), p.Eq(q))
	assert.Equal(t, p.TrueLen(), q.TrueLen())

	_, _, err = PrimePair(rand.Reader, 2)
	assert.ErrorIs(t, err, ErrEqualPrimes)
}
