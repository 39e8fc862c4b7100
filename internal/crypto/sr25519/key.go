// Package sr25519 derives Substrate sr25519 keys along //hard and /soft
// junction paths.
package sr25519

import (
	schnorrkel "github.com/ChainSafe/go-schnorrkel"
	"github.com/pkg/errors"
)

// KeyLen is the length of mini secrets, secret scalars and public keys
const KeyLen = 32

var (
	// ErrHardenedFromPublic is returned when a hard junction is applied to a public key
	ErrHardenedFromPublic = errors.New("cannot derive a hard junction from a public key")
	// ErrInvalidKey is returned for malformed keys
	ErrInvalidKey = errors.New("invalid key")
)

// Key is an sr25519 key pair or a public key
type Key struct {
	secret *schnorrkel.SecretKey
	public *schnorrkel.PublicKey
}

// FromMiniSecret expands a 32 byte mini secret key
func FromMiniSecret(b []byte) (*Key, error) {
	if len(b) != KeyLen {
		return nil, errors.Wrapf(ErrInvalidKey, "mini secret must be %d bytes, got %d", KeyLen, len(b))
	}

	var raw [KeyLen]byte
	copy(raw[:], b)

	mini, err := schnorrkel.NewMiniSecretKeyFromRaw(raw)
	if err != nil {
		return nil, errors.Wrap(ErrInvalidKey, err.Error())
	}

	return fromSecret(mini.ExpandEd25519())
}

// FromPublicKey builds a public-only key
func FromPublicKey(b []byte) (*Key, error) {
	if len(b) != KeyLen {
		return nil, errors.Wrapf(ErrInvalidKey, "public key must be %d bytes, got %d", KeyLen, len(b))
	}

	var raw [KeyLen]byte
	copy(raw[:], b)

	pub := &schnorrkel.PublicKey{}
	if err := pub.Decode(raw); err != nil {
		return nil, errors.Wrap(ErrInvalidKey, err.Error())
	}

	return &Key{public: pub}, nil
}

func fromSecret(secret *schnorrkel.SecretKey) (*Key, error) {
	pub, err := secret.Public()
	if err != nil {
		return nil, errors.Wrap(err, "failed to compute public key")
	}

	return &Key{secret: secret, public: pub}, nil
}

// Derive applies one junction
func (k *Key) Derive(j Junction) (*Key, error) {
	if j.Hard {
		if k.secret == nil {
			return nil, ErrHardenedFromPublic
		}

		ext, err := schnorrkel.DeriveKeyHard(k.secret, nil, j.ChainCode)
		if err != nil {
			return nil, errors.Wrap(err, "failed to derive hard junction")
		}

		secret, err := ext.Secret()
		if err != nil {
			return nil, errors.Wrap(err, "failed to derive hard junction")
		}

		return fromSecret(secret)
	}

	var parent schnorrkel.DerivableKey = k.public
	if k.secret != nil {
		parent = k.secret
	}

	ext, err := schnorrkel.DeriveKeySoft(parent, nil, j.ChainCode)
	if err != nil {
		return nil, errors.Wrap(err, "failed to derive soft junction")
	}

	if k.secret == nil {
		pub, err := ext.Public()
		if err != nil {
			return nil, errors.Wrap(err, "failed to derive soft junction")
		}

		return &Key{public: pub}, nil
	}

	secret, err := ext.Secret()
	if err != nil {
		return nil, errors.Wrap(err, "failed to derive soft junction")
	}

	return fromSecret(secret)
}

// DerivePath applies every junction of path in order
func (k *Key) DerivePath(path []Junction) (*Key, error) {
	key := k
	for _, j := range path {
		child, err := key.Derive(j)
		if err != nil {
			return nil, err
		}
		key = child
	}

	return key, nil
}

// IsPrivate reports whether the secret key is known
func (k *Key) IsPrivate() bool {
	return k.secret != nil
}

// PublicKey returns the 32 byte public key
func (k *Key) PublicKey() []byte {
	b := k.public.Encode()

	return b[:]
}

// PrivateKey returns the 32 byte secret scalar, nil for public keys
func (k *Key) PrivateKey() []byte {
	if k.secret == nil {
		return nil
	}

	b := k.secret.Encode()

	return b[:]
}
