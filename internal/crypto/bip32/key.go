// Package bip32 wraps btcutil's hdkeychain for secp256k1 BIP32 trees with
// caller supplied version bytes.
package bip32

import (
	"encoding/binary"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcutil/hdkeychain"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/pkg/errors"
)

const (
	// HardenedKeyStart is the first hardened index
	HardenedKeyStart = hdkeychain.HardenedKeyStart

	chainCodeLen = 32
	privKeyLen   = 32
)

var (
	// ErrHardenedFromPublic is returned when a hardened child of a public key is requested
	ErrHardenedFromPublic = errors.New("cannot derive a hardened key from a public key")
	// ErrIndexOutOfRange is returned for indexes >= 2^31
	ErrIndexOutOfRange = errors.New("index out of range")
	// ErrInvalidKey is returned for malformed keys
	ErrInvalidKey = errors.New("invalid key")
)

// Key is a secp256k1 extended key. It is immutable once built and safe for
// concurrent use.
type Key struct {
	ext *hdkeychain.ExtendedKey
	pub *btcec.PublicKey
}

// newKey resolves the public key of ext up front. hdkeychain caches it on
// first use, so the cache must be filled before the key is shared.
func newKey(ext *hdkeychain.ExtendedKey) (*Key, error) {
	pub, err := ext.ECPubKey()
	if err != nil {
		return nil, errors.Wrap(ErrInvalidKey, err.Error())
	}

	return &Key{ext: ext, pub: pub}, nil
}

// NewMasterFromSeed computes the master key of seed
func NewMasterFromSeed(seed []byte) (*Key, error) {
	ext, err := hdkeychain.NewMaster(seed, &chaincfg.MainNetParams)
	if err != nil {
		return nil, errors.Wrap(ErrInvalidKey, err.Error())
	}

	return newKey(ext)
}

// NewFromPrivateKey builds a depth 0 key with a zero chain code
func NewFromPrivateKey(priv []byte) (*Key, error) {
	if len(priv) != privKeyLen {
		return nil, errors.Wrapf(ErrInvalidKey, "private key must be %d bytes, got %d", privKeyLen, len(priv))
	}

	var scalar btcec.ModNScalar
	if overflow := scalar.SetByteSlice(priv); overflow || scalar.IsZero() {
		return nil, errors.Wrap(ErrInvalidKey, "private key is not a valid scalar")
	}

	version := chaincfg.MainNetParams.HDPrivateKeyID[:]
	ext := hdkeychain.NewExtendedKey(version, priv, make([]byte, chainCodeLen), []byte{0, 0, 0, 0}, 0, 0, true)

	return newKey(ext)
}

// NewFromPublicKey builds a depth 0 public-only key with a zero chain code.
// depth sets the depth the key is considered to be at.
func NewFromPublicKey(pub []byte, depth uint8) (*Key, error) {
	pubKey, err := btcec.ParsePubKey(pub)
	if err != nil {
		return nil, errors.Wrap(ErrInvalidKey, err.Error())
	}

	version := chaincfg.MainNetParams.HDPublicKeyID[:]
	ext := hdkeychain.NewExtendedKey(version, pubKey.SerializeCompressed(), make([]byte, chainCodeLen),
		[]byte{0, 0, 0, 0}, depth, 0, false)

	return newKey(ext)
}

// ParseExtended decodes a base58check extended key and returns it with its version bytes
func ParseExtended(s string) (*Key, [4]byte, error) {
	var version [4]byte

	ext, err := hdkeychain.NewKeyFromString(s)
	if err != nil {
		return nil, version, errors.Wrap(ErrInvalidKey, err.Error())
	}

	copy(version[:], ext.Version())

	if ext.IsPrivate() {
		if _, err := ext.ECPrivKey(); err != nil {
			return nil, version, errors.Wrap(ErrInvalidKey, err.Error())
		}
	}

	key, err := newKey(ext)
	if err != nil {
		return nil, version, err
	}

	return key, version, nil
}

// Derive returns the child at index (< 2^31), hardened or not
func (k *Key) Derive(index uint32, hardened bool) (*Key, error) {
	if index >= HardenedKeyStart {
		return nil, errors.Wrapf(ErrIndexOutOfRange, "index %d", index)
	}

	if hardened {
		if !k.ext.IsPrivate() {
			return nil, ErrHardenedFromPublic
		}
		index += HardenedKeyStart
	}

	child, err := k.ext.Derive(index)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to derive child %d", index)
	}

	return newKey(child)
}

// IsPrivate reports whether the key holds a private key
func (k *Key) IsPrivate() bool {
	return k.ext.IsPrivate()
}

// Depth returns the depth of the key in its tree
func (k *Key) Depth() uint8 {
	return k.ext.Depth()
}

// ChildIndex returns the index the key was derived at, hardened bit included
func (k *Key) ChildIndex() uint32 {
	return k.ext.ChildIndex()
}

// PublicKey returns the public key
func (k *Key) PublicKey() *btcec.PublicKey {
	return k.pub
}

// PrivateKey returns the private key, nil for public keys
func (k *Key) PrivateKey() *btcec.PrivateKey {
	if !k.ext.IsPrivate() {
		return nil
	}

	priv, err := k.ext.ECPrivKey()
	if err != nil {
		panic(err)
	}

	return priv
}

// Neuter returns the public-only version of the key
func (k *Key) Neuter() *Key {
	if !k.ext.IsPrivate() {
		return k
	}

	return &Key{ext: k.rebuild(k.ext.Version(), k.pub.SerializeCompressed(), false), pub: k.pub}
}

// ExtendedPublic serializes the public extended key with version
func (k *Key) ExtendedPublic(version [4]byte) string {
	return k.rebuild(version[:], k.pub.SerializeCompressed(), false).String()
}

// ExtendedPrivate serializes the private extended key with version, "" for public keys
func (k *Key) ExtendedPrivate(version [4]byte) string {
	priv := k.PrivateKey()
	if priv == nil {
		return ""
	}

	return k.rebuild(version[:], priv.Serialize(), true).String()
}

func (k *Key) rebuild(version, key []byte, private bool) *hdkeychain.ExtendedKey {
	parentFP := make([]byte, 4) //nolint:mnd
	binary.BigEndian.PutUint32(parentFP, k.ext.ParentFingerprint())

	return hdkeychain.NewExtendedKey(version, key, k.ext.ChainCode(), parentFP, k.ext.Depth(), k.ext.ChildIndex(), private)
}
