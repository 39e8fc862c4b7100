// Package electrumv1 implements the deterministic key sequence of Electrum V1
// (pre 2.0) wallets.
package electrumv1

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/pkg/errors"
)

const (
	// MasterKeyLen is the length of the master private key
	MasterKeyLen = 32
	// SeedLen is the length of the raw Electrum V1 seed
	SeedLen = 16

	stretchRounds = 100000
)

// ErrInvalidKey is returned for malformed master keys
var ErrInvalidKey = errors.New("invalid key")

// Key is an Electrum V1 master or child key pair
type Key struct {
	priv *btcec.PrivateKey
	pub  *btcec.PublicKey
}

// StretchSeed turns a raw 16 byte seed into the master private key
func StretchSeed(seed []byte) ([]byte, error) {
	if len(seed) != SeedLen {
		return nil, errors.Wrapf(ErrInvalidKey, "seed must be %d bytes, got %d", SeedLen, len(seed))
	}

	hexSeed := []byte(hex.EncodeToString(seed))
	x := append([]byte(nil), hexSeed...)
	for range stretchRounds {
		h := sha256.Sum256(append(x, hexSeed...))
		x = h[:]
	}

	return x, nil
}

// NewFromPrivateKey builds the master key from a 32 byte private key
func NewFromPrivateKey(b []byte) (*Key, error) {
	if len(b) != MasterKeyLen {
		return nil, errors.Wrapf(ErrInvalidKey, "private key must be %d bytes, got %d", MasterKeyLen, len(b))
	}

	var scalar btcec.ModNScalar
	if overflow := scalar.SetByteSlice(b); overflow || scalar.IsZero() {
		return nil, errors.Wrap(ErrInvalidKey, "private key is not a valid scalar")
	}

	priv, pub := btcec.PrivKeyFromBytes(b)

	return &Key{priv: priv, pub: pub}, nil
}

// NewFromPublicKey builds a watch-only master key. b is the 64 byte x||y
// encoding used by Electrum or any SEC1 encoding.
func NewFromPublicKey(b []byte) (*Key, error) {
	if len(b) == 64 { //nolint:mnd
		b = append([]byte{0x04}, b...)
	}

	pub, err := btcec.ParsePubKey(b)
	if err != nil {
		return nil, errors.Wrap(ErrInvalidKey, err.Error())
	}

	return &Key{pub: pub}, nil
}

// IsPrivate reports whether the key holds a private key
func (k *Key) IsPrivate() bool {
	return k.priv != nil
}

// PublicKey returns the public key
func (k *Key) PublicKey() *btcec.PublicKey {
	return k.pub
}

// PrivateKey returns the private key, nil for watch-only keys
func (k *Key) PrivateKey() *btcec.PrivateKey {
	return k.priv
}

// Child returns the key at (change, index) of the master key k
func (k *Key) Child(change, index uint32) (*Key, error) {
	seq := k.sequence(change, index)

	var seqPoint, masterPoint, childPoint btcec.JacobianPoint
	btcec.ScalarBaseMultNonConst(&seq, &seqPoint)
	k.pub.AsJacobian(&masterPoint)
	btcec.AddNonConst(&masterPoint, &seqPoint, &childPoint)
	if (childPoint.X.IsZero() && childPoint.Y.IsZero()) || childPoint.Z.IsZero() {
		return nil, errors.New("child public key is the point at infinity")
	}
	childPoint.ToAffine()

	child := &Key{pub: btcec.NewPublicKey(&childPoint.X, &childPoint.Y)}
	if k.priv == nil {
		return child, nil
	}

	var scalar btcec.ModNScalar
	scalar.Set(&k.priv.Key)
	scalar.Add(&seq)
	if scalar.IsZero() {
		return nil, errors.New("child private key is zero")
	}
	privBytes := scalar.Bytes()
	child.priv, _ = btcec.PrivKeyFromBytes(privBytes[:])

	return child, nil
}

// sequence is sha256d("index:change:" || mpk) where mpk is x||y of the master key
func (k *Key) sequence(change, index uint32) btcec.ModNScalar {
	mpk := k.pub.SerializeUncompressed()[1:]
	data := append([]byte(fmt.Sprintf("%d:%d:", index, change)), mpk...)

	first := sha256.Sum256(data)
	second := sha256.Sum256(first[:])

	var seq btcec.ModNScalar
	seq.SetBytes(&second)

	return seq
}
