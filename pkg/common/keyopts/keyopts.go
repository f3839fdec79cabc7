package keyopts

type KeyData struct {
	KeyID string
	SKI   string
}

type Options interface {
	Set(kVs ...interface{}) error
	Get(key string) (interface{}, bool)
}

// KeyOpts manages the key metadata referred to by a key ID.
type KeyOpts interface {
	// Import links the key identified by ski to the "id" option.
	Import(ski string, opts Options) error

	// Get returns the key metadata linked to the "id" option.
	Get(opts Options) (*KeyData, error)

	// Delete removes the key metadata linked to the "id" option.
	Delete(opts Options) error

	// KeyIDs returns all known key IDs.
	KeyIDs() []string
}
