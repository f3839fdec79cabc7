package paillier

import (
	"crypto/rand"
	"math/big"
	"sync"
	"testing"

	"github.com/cronokirby/saferith"
	"github.com/mr-shifu/paillier/core/hash"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testBits = 512

var (
	testOnce sync.Once
	testPK   *PublicKey
	testSK   *SecretKey
	testErr  error
)

func testKey(t *testing.T) (*PublicKey, *SecretKey) {
	t.Helper()
	testOnce.Do(func() {
		testPK, testSK, testErr = KeyGen(rand.Reader, testBits)
	})
	require.NoError(t, testErr)
	return testPK, testSK
}

func plaintext(t *testing.T, pk *PublicKey, m int64) *Plaintext {
	t.Helper()
	pt, err := pk.NewPlaintext(big.NewInt(m))
	require.NoError(t, err)
	return pt
}

func TestKeyGen(t *testing.T) {
	pk, sk := testKey(t)

	n := pk.N().Big()
	p, q := sk.P().Big(), sk.Q().Big()

	assert.Equal(t, uint(1), n.Bit(0), "n must be odd")
	assert.False(t, n.ProbablyPrime(20), "n must be composite")
	assert.True(t, p.ProbablyPrime(20))
	assert.True(t, q.ProbablyPrime(20))
	assert.NotEqual(t, 0, p.Cmp(q))
	assert.Equal(t, testBits, p.BitLen())
	assert.Equal(t, testBits, q.BitLen())
	assert.Equal(t, 0, new(big.Int).Mul(p, q).Cmp(n))

	g := new(big.Int).Add(n, big.NewInt(1))
	assert.Equal(t, 0, pk.G().Big().Cmp(g), "g must be n+1")
	assert.NoError(t, pk.Validate())

	// λ = (p-1)(q-1) and λ⋅μ ≡ 1 (mod n²)
	pm1 := new(big.Int).Sub(p, big.NewInt(1))
	qm1 := new(big.Int).Sub(q, big.NewInt(1))
	assert.Equal(t, 0, sk.Lambda().Big().Cmp(new(big.Int).Mul(pm1, qm1)))
	nSquared := new(big.Int).Mul(n, n)
	prod := new(big.Int).Mul(sk.Lambda().Big(), sk.Mu().Big())
	assert.Equal(t, int64(1), prod.Mod(prod, nSquared).Int64())
}

func TestKeyGenInvalidBits(t *testing.T) {
	_, _, err := KeyGen(rand.Reader, 1)
	assert.ErrorIs(t, err, ErrKeyGeneration)
	assert.ErrorIs(t, err, ErrInvalidBitLength)
}

func TestKeyGenEqualPrimes(t *testing.T) {
	// the only 2-bit prime with both top bits set is 3
	_, _, err := KeyGen(rand.Reader, 2)
	assert.ErrorIs(t, err, ErrKeyGeneration)
	assert.ErrorIs(t, err, ErrEqualPrimes)
}

func TestNewSecretKeyFromPrimes(t *testing.T) {
	nat := func(x uint64) *saferith.Nat { return new(saferith.Nat).SetUint64(x) }

	// n = 6, λ = 2, gcd(λ, 36) = 2
	_, err := NewSecretKeyFromPrimes(nat(2), nat(3))
	assert.ErrorIs(t, err, ErrNoInverse)

	_, err = NewSecretKeyFromPrimes(nat(11), nat(11))
	assert.ErrorIs(t, err, ErrEqualPrimes)

	_, err = NewSecretKeyFromPrimes(nat(11), nat(17))
	assert.ErrorIs(t, err, ErrPrimeBitLength)

	_, err = NewSecretKeyFromPrimes(nat(11), nat(15))
	assert.ErrorIs(t, err, ErrNotPrime)

	_, err = NewSecretKeyFromPrimes(nil, nat(11))
	assert.ErrorIs(t, err, ErrNilValue)

	sk, err := NewSecretKeyFromPrimes(nat(11), nat(13))
	require.NoError(t, err)
	assert.Equal(t, int64(143), sk.N().Big().Int64())
	assert.Equal(t, int64(120), sk.Lambda().Big().Int64())

	for m := int64(0); m < 143; m++ {
		ct, err := sk.Encrypt(rand.Reader, plaintext(t, sk.PublicKey, m))
		require.NoError(t, err)
		res, err := sk.Decrypt(ct)
		require.NoError(t, err)
		assert.Equal(t, m, res.Big().Int64())
	}
}

func TestEncryptDecrypt(t *testing.T) {
	pk, sk := testKey(t)

	m, ok := new(big.Int).SetString("4236483582634342425878462735423874625", 10)
	require.True(t, ok)
	pt, err := pk.NewPlaintext(m)
	require.NoError(t, err)

	ct, err := pk.Encrypt(rand.Reader, pt)
	require.NoError(t, err)
	assert.True(t, pk.ValidateCiphertexts(ct))

	res, err := sk.Decrypt(ct)
	require.NoError(t, err)
	assert.Equal(t, 0, res.Big().Cmp(m))

	res, err = Decrypt(ct, pk, sk)
	require.NoError(t, err)
	assert.True(t, res.Equal(pt))
}

func TestEncryptDecryptBounds(t *testing.T) {
	pk, sk := testKey(t)

	nMinus1 := new(big.Int).Sub(pk.N().Big(), big.NewInt(1))
	for _, m := range []*big.Int{big.NewInt(0), big.NewInt(1), nMinus1} {
		pt, err := pk.NewPlaintext(m)
		require.NoError(t, err)
		ct, err := pk.Encrypt(nil, pt)
		require.NoError(t, err)
		res, err := sk.Decrypt(ct)
		require.NoError(t, err)
		assert.Equal(t, 0, res.Big().Cmp(m), "m = %s", m)
	}
}

func TestEncryptRandomized(t *testing.T) {
	pk, sk := testKey(t)
	pt := plaintext(t, pk, 42)

	seen := make(map[string]struct{})
	for i := 0; i < 100; i++ {
		ct, err := pk.Encrypt(rand.Reader, pt)
		require.NoError(t, err)
		key := ct.Big().String()
		_, dup := seen[key]
		assert.False(t, dup, "ciphertext collision")
		seen[key] = struct{}{}

		res, err := sk.Decrypt(ct)
		require.NoError(t, err)
		assert.Equal(t, int64(42), res.Big().Int64())
	}
}

func TestEncryptSeeded(t *testing.T) {
	pk, sk := testKey(t)
	pt := plaintext(t, pk, 7)

	ct1, err := pk.Encrypt(hash.New([]byte("seed")).Digest(), pt)
	require.NoError(t, err)
	ct2, err := pk.Encrypt(hash.New([]byte("seed")).Digest(), pt)
	require.NoError(t, err)
	assert.True(t, ct1.Equal(ct2))

	ct3, err := pk.Encrypt(hash.New([]byte("other seed")).Digest(), pt)
	require.NoError(t, err)
	assert.False(t, ct1.Equal(ct3))

	res, err := sk.Decrypt(ct1)
	require.NoError(t, err)
	assert.Equal(t, int64(7), res.Big().Int64())
}

func TestEncryptWithNonce(t *testing.T) {
	pk, sk := testKey(t)
	pt := plaintext(t, pk, 99)

	nonce, err := pk.Nonce(rand.Reader)
	require.NoError(t, err)
	ct1, err := pk.EncryptWithNonce(pt, nonce)
	require.NoError(t, err)
	ct2, err := pk.EncryptWithNonce(pt, nonce)
	require.NoError(t, err)
	assert.True(t, ct1.Equal(ct2))

	res, err := sk.Decrypt(ct1)
	require.NoError(t, err)
	assert.Equal(t, int64(99), res.Big().Int64())

	_, err = pk.EncryptWithNonce(pt, new(saferith.Nat).SetUint64(0))
	assert.ErrorIs(t, err, ErrInvalidNonce)
	_, err = pk.EncryptWithNonce(pt, pk.N().Nat())
	assert.ErrorIs(t, err, ErrInvalidNonce)
}

func TestDomainChecks(t *testing.T) {
	pk, sk := testKey(t)

	_, err := pk.NewPlaintext(big.NewInt(-1))
	assert.ErrorIs(t, err, ErrPlaintextOutOfRange)
	_, err = pk.NewPlaintext(pk.N().Big())
	assert.ErrorIs(t, err, ErrPlaintextOutOfRange)
	_, err = pk.NewPlaintext(nil)
	assert.ErrorIs(t, err, ErrNilValue)

	_, err = pk.NewCiphertext(pk.NSquared().Big())
	assert.ErrorIs(t, err, ErrCiphertextOutOfRange)
	_, err = pk.NewCiphertext(big.NewInt(-5))
	assert.ErrorIs(t, err, ErrCiphertextOutOfRange)

	_, err = sk.Decrypt(nil)
	assert.ErrorIs(t, err, ErrNilValue)
	_, err = pk.Encrypt(rand.Reader, &Plaintext{})
	assert.ErrorIs(t, err, ErrNilValue)

	// a plaintext valid for a larger modulus is rejected by a smaller key
	small, err := NewSecretKeyFromPrimes(new(saferith.Nat).SetUint64(11), new(saferith.Nat).SetUint64(13))
	require.NoError(t, err)
	_, err = small.Encrypt(rand.Reader, plaintext(t, pk, 500))
	assert.ErrorIs(t, err, ErrPlaintextOutOfRange)
}

func TestDecryptKeyMismatch(t *testing.T) {
	pk, sk := testKey(t)
	other, err := NewSecretKeyFromPrimes(new(saferith.Nat).SetUint64(11), new(saferith.Nat).SetUint64(13))
	require.NoError(t, err)

	ct, err := pk.Encrypt(rand.Reader, plaintext(t, pk, 1))
	require.NoError(t, err)

	_, err = Decrypt(ct, other.PublicKey, sk)
	assert.ErrorIs(t, err, ErrKeyMismatch)
	_, err = Decrypt(ct, nil, sk)
	assert.ErrorIs(t, err, ErrNilValue)
}

func TestPublicKeyEqualAndSKI(t *testing.T) {
	pk, sk := testKey(t)

	clone := NewPublicKey(pk.N())
	assert.True(t, pk.Equal(clone))
	assert.True(t, pk.Equal(sk.PublicKey))
	assert.Equal(t, pk.SKI(), clone.SKI())

	other, err := NewSecretKeyFromPrimes(new(saferith.Nat).SetUint64(11), new(saferith.Nat).SetUint64(13))
	require.NoError(t, err)
	assert.False(t, pk.Equal(other.PublicKey))
	assert.NotEqual(t, pk.SKI(), other.SKI())
}

func TestCiphertextBinary(t *testing.T) {
	pk, sk := testKey(t)

	ct, err := pk.Encrypt(rand.Reader, plaintext(t, pk, 31337))
	require.NoError(t, err)
	data, err := ct.MarshalBinary()
	require.NoError(t, err)

	var decoded Ciphertext
	require.NoError(t, decoded.UnmarshalBinary(data))
	assert.True(t, ct.Equal(&decoded))
	assert.True(t, pk.ValidateCiphertexts(&decoded))

	res, err := sk.Decrypt(&decoded)
	require.NoError(t, err)
	assert.Equal(t, int64(31337), res.Big().Int64())

	assert.Error(t, decoded.UnmarshalBinary(nil))
}

func TestEqualNil(t *testing.T) {
	pk, _ := testKey(t)

	ct, err := pk.Encrypt(rand.Reader, plaintext(t, pk, 7))
	require.NoError(t, err)
	assert.False(t, ct.Equal(nil))
	assert.True(t, (*Ciphertext)(nil).Equal(nil))

	pt := plaintext(t, pk, 7)
	assert.False(t, pt.Equal(nil))
	assert.True(t, (*Plaintext)(nil).Equal(nil))
}
