package keyopts

import (
	"errors"

	com_keyopts "github.com/mr-shifu/paillier/pkg/common/keyopts"
)

// Options is a set of key/value pairs selecting a key. The "id" entry holds
// the key ID.
type Options map[string]interface{}

var _ com_keyopts.Options = Options{}

var ErrInvalidOptions = errors.New("keyopts: invalid options")

func NewOptions() Options {
	return make(Options)
}

// Set stores alternating keys and values. Keys must be strings.
func (opts Options) Set(kVs ...interface{}) error {
	if len(kVs)%2 != 0 {
		return ErrInvalidOptions
	}

	for i := 0; i < len(kVs); i += 2 {
		key, ok := kVs[i].(string)
		if !ok {
			return ErrInvalidOptions
		}
		opts[key] = kVs[i+1]
	}

	return nil
}

func (opts Options) Get(key string) (interface{}, bool) {
	val, ok := opts[key]
	return val, ok
}

// KeyID returns the "id" option.
func KeyID(opts com_keyopts.Options) (string, error) {
	if opts == nil {
		return "", ErrInvalidParamsKeyID
	}
	ID, ok := opts.Get("id")
	if !ok {
		return "", ErrInvalidParamsKeyID
	}
	kid, ok := ID.(string)
	if !ok || kid == "" {
		return "", ErrInvalidParamsKeyID
	}
	return kid, nil
}
