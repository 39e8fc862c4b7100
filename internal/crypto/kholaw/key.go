// Package kholaw implements BIP32-Ed25519 (Khovratovich/Law) key derivation
// as used by Cardano Shelley wallets.
package kholaw

import (
	"crypto/hmac"
	"crypto/sha512"
	"encoding/binary"

	"filippo.io/edwards25519"
	"github.com/pkg/errors"
)

const (
	// HardenedKeyStart is the first hardened index
	HardenedKeyStart uint32 = 0x80000000

	// PrivateKeyLen is the length of kL||kR
	PrivateKeyLen = 64
	// PublicKeyLen is the length of an ed25519 point
	PublicKeyLen = 32
	// ChainCodeLen is the length of the chain code
	ChainCodeLen = 32
	// IcarusMaterialLen is the length of the Icarus master key material kL||kR||cc
	IcarusMaterialLen = PrivateKeyLen + ChainCodeLen

	halfLen = 32
)

const (
	tagHardenedZ = 0x00
	tagHardenedC = 0x01
	tagSoftZ     = 0x02
	tagSoftC     = 0x03
)

var (
	// ErrHardenedFromPublic is returned when a hardened child of a public key is requested
	ErrHardenedFromPublic = errors.New("cannot derive a hardened key from a public key")
	// ErrIndexOutOfRange is returned for indexes >= 2^31
	ErrIndexOutOfRange = errors.New("index out of range")
	// ErrInvalidKey is returned for malformed keys
	ErrInvalidKey = errors.New("invalid key")
)

// Key is an extended ed25519 key
type Key struct {
	kl        [halfLen]byte
	kr        [halfLen]byte
	pub       [PublicKeyLen]byte
	chainCode [ChainCodeLen]byte
	private   bool
}

// NewMasterFromIcarus builds the master key from the 96 bytes of Icarus
// material, clamping kL
func NewMasterFromIcarus(material []byte) (*Key, error) {
	if len(material) != IcarusMaterialLen {
		return nil, errors.Wrapf(ErrInvalidKey, "master material must be %d bytes, got %d", IcarusMaterialLen, len(material))
	}

	k := &Key{private: true}
	copy(k.kl[:], material[:halfLen])
	copy(k.kr[:], material[halfLen:PrivateKeyLen])
	copy(k.chainCode[:], material[PrivateKeyLen:])

	k.kl[0] &= 0b1111_1000
	k.kl[31] &= 0b0001_1111
	k.kl[31] |= 0b0100_0000

	pub, err := publicFromKL(k.kl)
	if err != nil {
		return nil, err
	}
	k.pub = pub

	return k, nil
}

// NewFromPrivateKey builds a key from kL||kR and a chain code
func NewFromPrivateKey(priv, chainCode []byte) (*Key, error) {
	if len(priv) != PrivateKeyLen {
		return nil, errors.Wrapf(ErrInvalidKey, "private key must be %d bytes, got %d", PrivateKeyLen, len(priv))
	}
	if len(chainCode) != ChainCodeLen {
		return nil, errors.Wrapf(ErrInvalidKey, "chain code must be %d bytes, got %d", ChainCodeLen, len(chainCode))
	}

	k := &Key{private: true}
	copy(k.kl[:], priv[:halfLen])
	copy(k.kr[:], priv[halfLen:])
	copy(k.chainCode[:], chainCode)

	if k.kl[31]&0b1000_0000 != 0 {
		return nil, errors.Wrap(ErrInvalidKey, "highest bit of kL must be clear")
	}

	pub, err := publicFromKL(k.kl)
	if err != nil {
		return nil, err
	}
	k.pub = pub

	return k, nil
}

// NewFromPublicKey builds a public-only key from a point and a chain code
func NewFromPublicKey(pub, chainCode []byte) (*Key, error) {
	if len(pub) != PublicKeyLen {
		return nil, errors.Wrapf(ErrInvalidKey, "public key must be %d bytes, got %d", PublicKeyLen, len(pub))
	}
	if len(chainCode) != ChainCodeLen {
		return nil, errors.Wrapf(ErrInvalidKey, "chain code must be %d bytes, got %d", ChainCodeLen, len(chainCode))
	}

	if _, err := new(edwards25519.Point).SetBytes(pub); err != nil {
		return nil, errors.Wrap(ErrInvalidKey, "public key is not a curve point")
	}

	k := &Key{}
	copy(k.pub[:], pub)
	copy(k.chainCode[:], chainCode)

	return k, nil
}

// Derive returns the child at index (< 2^31), hardened or not
func (k *Key) Derive(index uint32, hardened bool) (*Key, error) {
	if index >= HardenedKeyStart {
		return nil, errors.Wrapf(ErrIndexOutOfRange, "index %d", index)
	}

	if hardened {
		if !k.private {
			return nil, ErrHardenedFromPublic
		}

		return k.deriveHardened(index + HardenedKeyStart)
	}

	if k.private {
		return k.deriveSoftPrivate(index)
	}

	return k.deriveSoftPublic(index)
}

func (k *Key) deriveHardened(index uint32) (*Key, error) {
	data := make([]byte, 0, 1+PrivateKeyLen+4) //nolint:mnd
	data = append(data, k.kl[:]...)
	data = append(data, k.kr[:]...)
	data = binary.LittleEndian.AppendUint32(data, index)

	z := k.hmac(tagHardenedZ, data)
	c := k.hmac(tagHardenedC, data)

	return k.childPrivate(z, c)
}

func (k *Key) deriveSoftPrivate(index uint32) (*Key, error) {
	data := binary.LittleEndian.AppendUint32(append([]byte(nil), k.pub[:]...), index)

	z := k.hmac(tagSoftZ, data)
	c := k.hmac(tagSoftC, data)

	return k.childPrivate(z, c)
}

func (k *Key) deriveSoftPublic(index uint32) (*Key, error) {
	data := binary.LittleEndian.AppendUint32(append([]byte(nil), k.pub[:]...), index)

	z := k.hmac(tagSoftZ, data)
	c := k.hmac(tagSoftC, data)

	var zero [halfLen]byte
	zl8 := add28Mul8(zero, z[:28])

	s, err := scalarFromLE(zl8)
	if err != nil {
		return nil, err
	}

	parent, err := new(edwards25519.Point).SetBytes(k.pub[:])
	if err != nil {
		return nil, errors.Wrap(ErrInvalidKey, "public key is not a curve point")
	}

	child := new(edwards25519.Point).Add(parent, new(edwards25519.Point).ScalarBaseMult(s))
	if child.Equal(edwards25519.NewIdentityPoint()) == 1 {
		return nil, errors.New("child public key is the identity point")
	}

	ck := &Key{}
	copy(ck.pub[:], child.Bytes())
	copy(ck.chainCode[:], c[halfLen:])

	return ck, nil
}

func (k *Key) childPrivate(z, c []byte) (*Key, error) {
	ck := &Key{private: true}
	ck.kl = add28Mul8(k.kl, z[:28])
	ck.kr = add256(k.kr, z[halfLen:])
	copy(ck.chainCode[:], c[halfLen:])

	pub, err := publicFromKL(ck.kl)
	if err != nil {
		return nil, err
	}
	ck.pub = pub

	return ck, nil
}

func (k *Key) hmac(tag byte, data []byte) []byte {
	mac := hmac.New(sha512.New, k.chainCode[:])
	mac.Write([]byte{tag})
	mac.Write(data)

	return mac.Sum(nil)
}

// IsPrivate reports whether the key holds kL||kR
func (k *Key) IsPrivate() bool {
	return k.private
}

// PublicKey returns the 32 byte public point
func (k *Key) PublicKey() []byte {
	return append([]byte(nil), k.pub[:]...)
}

// PrivateKey returns kL||kR, nil for public keys
func (k *Key) PrivateKey() []byte {
	if !k.private {
		return nil
	}

	return append(append([]byte(nil), k.kl[:]...), k.kr[:]...)
}

// ChainCode returns the chain code
func (k *Key) ChainCode() []byte {
	return append([]byte(nil), k.chainCode[:]...)
}

// XPrv returns kL||kR||cc, nil for public keys
func (k *Key) XPrv() []byte {
	if !k.private {
		return nil
	}

	return append(k.PrivateKey(), k.chainCode[:]...)
}

// XPub returns A||cc
func (k *Key) XPub() []byte {
	return append(k.PublicKey(), k.chainCode[:]...)
}

// Neuter returns the public-only version of the key
func (k *Key) Neuter() *Key {
	return &Key{pub: k.pub, chainCode: k.chainCode}
}

func publicFromKL(kl [halfLen]byte) ([PublicKeyLen]byte, error) {
	var pub [PublicKeyLen]byte

	s, err := scalarFromLE(kl)
	if err != nil {
		return pub, err
	}

	copy(pub[:], new(edwards25519.Point).ScalarBaseMult(s).Bytes())

	return pub, nil
}

// scalarFromLE reduces a 256 bit little endian integer modulo the group order
func scalarFromLE(b [halfLen]byte) (*edwards25519.Scalar, error) {
	var wide [64]byte
	copy(wide[:], b[:])

	s, err := edwards25519.NewScalar().SetUniformBytes(wide[:])
	if err != nil {
		return nil, errors.Wrap(err, "failed to reduce scalar")
	}

	if s.Equal(edwards25519.NewScalar()) == 1 {
		return nil, errors.Wrap(ErrInvalidKey, "scalar is zero")
	}

	return s, nil
}

// add28Mul8 returns x + 8*y where y is 28 bytes, little endian
func add28Mul8(x [halfLen]byte, y []byte) [halfLen]byte {
	var out [halfLen]byte
	var carry uint16

	for i := range 28 {
		r := uint16(x[i]) + uint16(y[i])<<3 + carry
		out[i] = byte(r)
		carry = r >> 8
	}

	for i := 28; i < halfLen; i++ {
		r := uint16(x[i]) + carry
		out[i] = byte(r)
		carry = r >> 8
	}

	return out
}

// add256 returns x + y mod 2^256, little endian
func add256(x [halfLen]byte, y []byte) [halfLen]byte {
	var out [halfLen]byte
	var carry uint16

	for i := range halfLen {
		r := uint16(x[i]) + uint16(y[i]) + carry
		out[i] = byte(r)
		carry = r >> 8
	}

	return out
}
