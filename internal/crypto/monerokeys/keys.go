// Package monerokeys derives Monero spend/view keys and subaddress keys.
package monerokeys

import (
	"encoding/binary"

	"filippo.io/edwards25519"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/pkg/errors"
)

// KeyLen is the length of Monero scalars and points
const KeyLen = 32

var subaddrPrefix = []byte("SubAddr\x00") //nolint:gochecknoglobals

// ErrInvalidKey is returned for malformed keys
var ErrInvalidKey = errors.New("invalid key")

// Keys is a Monero key set. privSpend is nil for view-only wallets.
type Keys struct {
	privSpend *edwards25519.Scalar
	privView  *edwards25519.Scalar
	pubSpend  *edwards25519.Point
	pubView   *edwards25519.Point
}

// FromSeed derives the keys from a seed. A 32 byte seed is reduced into the
// private spend key, any other length is hashed with Keccak-256 first.
func FromSeed(seed []byte) (*Keys, error) {
	if len(seed) == 0 {
		return nil, errors.Wrap(ErrInvalidKey, "empty seed")
	}

	b := seed
	if len(seed) != KeyLen {
		b = crypto.Keccak256(seed)
	}

	return fromSpendScalar(scReduce32(b))
}

// FromPrivateSpendKey builds the keys from a canonical private spend key
func FromPrivateSpendKey(b []byte) (*Keys, error) {
	if len(b) != KeyLen {
		return nil, errors.Wrapf(ErrInvalidKey, "private spend key must be %d bytes, got %d", KeyLen, len(b))
	}

	s, err := edwards25519.NewScalar().SetCanonicalBytes(b)
	if err != nil {
		return nil, errors.Wrap(ErrInvalidKey, "private spend key is not a canonical scalar")
	}

	return fromSpendScalar(s)
}

// FromWatchOnly builds view-only keys from the public spend key and the private view key
func FromWatchOnly(pubSpend, privView []byte) (*Keys, error) {
	if len(pubSpend) != KeyLen || len(privView) != KeyLen {
		return nil, errors.Wrapf(ErrInvalidKey, "keys must be %d bytes", KeyLen)
	}

	b, err := new(edwards25519.Point).SetBytes(pubSpend)
	if err != nil {
		return nil, errors.Wrap(ErrInvalidKey, "public spend key is not a curve point")
	}

	a, err := edwards25519.NewScalar().SetCanonicalBytes(privView)
	if err != nil {
		return nil, errors.Wrap(ErrInvalidKey, "private view key is not a canonical scalar")
	}

	return &Keys{
		privView: a,
		pubSpend: b,
		pubView:  new(edwards25519.Point).ScalarBaseMult(a),
	}, nil
}

func fromSpendScalar(s *edwards25519.Scalar) (*Keys, error) {
	if s.Equal(edwards25519.NewScalar()) == 1 {
		return nil, errors.Wrap(ErrInvalidKey, "private spend key is zero")
	}

	a := scReduce32(crypto.Keccak256(s.Bytes()))

	return &Keys{
		privSpend: s,
		privView:  a,
		pubSpend:  new(edwards25519.Point).ScalarBaseMult(s),
		pubView:   new(edwards25519.Point).ScalarBaseMult(a),
	}, nil
}

// IsPrivate reports whether the private spend key is known
func (k *Keys) IsPrivate() bool {
	return k.privSpend != nil
}

// PrivateSpendKey returns the private spend key, nil for view-only keys
func (k *Keys) PrivateSpendKey() []byte {
	if k.privSpend == nil {
		return nil
	}

	return k.privSpend.Bytes()
}

// PrivateViewKey returns the private view key
func (k *Keys) PrivateViewKey() []byte {
	return k.privView.Bytes()
}

// PublicSpendKey returns the public spend key
func (k *Keys) PublicSpendKey() []byte {
	return k.pubSpend.Bytes()
}

// PublicViewKey returns the public view key
func (k *Keys) PublicViewKey() []byte {
	return k.pubView.Bytes()
}

// Subaddress returns the public spend and view keys of subaddress (major, minor).
// (0, 0) is the primary address.
func (k *Keys) Subaddress(major, minor uint32) (spend, view []byte, err error) {
	if major == 0 && minor == 0 {
		return k.PublicSpendKey(), k.PublicViewKey(), nil
	}

	data := make([]byte, 0, len(subaddrPrefix)+2*KeyLen+8) //nolint:mnd
	data = append(data, subaddrPrefix...)
	data = append(data, k.privView.Bytes()...)
	data = binary.LittleEndian.AppendUint32(data, major)
	data = binary.LittleEndian.AppendUint32(data, minor)

	m := scReduce32(crypto.Keccak256(data))

	d := new(edwards25519.Point).Add(k.pubSpend, new(edwards25519.Point).ScalarBaseMult(m))
	if d.Equal(edwards25519.NewIdentityPoint()) == 1 {
		return nil, nil, errors.New("subaddress spend key is the identity point")
	}

	c := new(edwards25519.Point).ScalarMult(k.privView, d)

	return d.Bytes(), c.Bytes(), nil
}

// scReduce32 reduces a 32 byte little endian integer modulo the group order
func scReduce32(b []byte) *edwards25519.Scalar {
	var wide [64]byte
	copy(wide[:], b)

	s, err := edwards25519.NewScalar().SetUniformBytes(wide[:])
	if err != nil {
		// input is always 64 bytes
		panic(err)
	}

	return s
}
