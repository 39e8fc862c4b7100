package address

import (
	"github.com/btcsuite/btcd/btcutil/bech32"
	"github.com/pkg/errors"
	"github/chapool/go-hdwallet/internal/wallet"
	"golang.org/x/crypto/blake2b"
)

// Shelley address headers (high nibble), the low nibble is the network id
const (
	CardanoHeaderBase   byte = 0x00
	CardanoHeaderReward byte = 0xe0

	cardanoKeyHashLen = 28
)

// CardanoKeyHash returns the blake2b-224 hash of a public key
func CardanoKeyHash(pub []byte) []byte {
	h, err := blake2b.New(cardanoKeyHashLen, nil)
	if err != nil {
		// size is valid and no key is used
		panic(err)
	}
	h.Write(pub)

	return h.Sum(nil)
}

// CardanoBaseAddress returns the Shelley base address of a payment and a staking key
func CardanoBaseAddress(hrp string, networkID byte, paymentPub, stakePub []byte) (string, error) {
	return CardanoAddressFromHashes(hrp, CardanoHeaderBase|networkID, CardanoKeyHash(paymentPub), CardanoKeyHash(stakePub))
}

// CardanoRewardAddress returns the Shelley reward address of a staking key
func CardanoRewardAddress(hrp string, networkID byte, stakePub []byte) (string, error) {
	return CardanoAddressFromHashes(hrp, CardanoHeaderReward|networkID, CardanoKeyHash(stakePub))
}

// CardanoAddressFromHashes encodes header||hashes as bech32
func CardanoAddressFromHashes(hrp string, header byte, hashes ...[]byte) (string, error) {
	payload := []byte{header}
	for _, h := range hashes {
		payload = append(payload, h...)
	}

	return Bech32(hrp, payload)
}

// Bech32 encodes data with hrp, without the BIP-0173 length limit
func Bech32(hrp string, data []byte) (string, error) {
	conv, err := bech32.ConvertBits(data, 8, 5, true) //nolint:mnd
	if err != nil {
		return "", errors.Wrap(wallet.ErrDerivation, err.Error())
	}

	s, err := bech32.Encode(hrp, conv)
	if err != nil {
		return "", errors.Wrap(wallet.ErrDerivation, err.Error())
	}

	return s, nil
}

// DecodeBech32 decodes a bech32 string of any length
func DecodeBech32(s string) (string, []byte, error) {
	hrp, conv, err := bech32.DecodeNoLimit(s)
	if err != nil {
		return "", nil, errors.Wrap(wallet.ErrInvalidKeyMaterial, err.Error())
	}

	data, err := bech32.ConvertBits(conv, 5, 8, false) //nolint:mnd
	if err != nil {
		return "", nil, errors.Wrap(wallet.ErrInvalidKeyMaterial, err.Error())
	}

	return hrp, data, nil
}
