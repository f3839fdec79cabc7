package params

const (
	SecParam = 256
	SecBytes = SecParam / 8

	// BitsPrime is the default bit length of each Paillier prime factor.
	BitsPrime       = 4 * SecParam      // = 1024
	BitsPaillier    = 2 * BitsPrime     // = 2048
	BytesPaillier   = BitsPaillier / 8  // = 256
	BytesCiphertext = 2 * BytesPaillier // = 512

	// MinBitsPrime is the smallest prime length accepted by key generation.
	// Such keys are only useful in tests.
	MinBitsPrime = 2

	// BitsBruteForceMax bounds the moduli the linear-scan inverse is meant for.
	BitsBruteForceMax = 24
)
