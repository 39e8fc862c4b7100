package address

import (
	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcec/v2/schnorr"
	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/btcsuite/btcd/txscript"
	"github.com/pkg/errors"
	"github/chapool/go-hdwallet/internal/coinconf"
	"github/chapool/go-hdwallet/internal/wallet"
)

// witness v0 key hash program: OP_0 PUSH20
const (
	opZero     = 0x00
	opPush20   = 0x14
	cashAddrV0 = 0x00
)

type service struct {
	conf   *coinconf.Config
	params *chaincfg.Params
}

// NewService creates the encoder of a secp256k1 coin
//
//nolint:ireturn // Returning interface is intentional for dependency injection
func NewService(conf *coinconf.Config) (Service, error) {
	if conf.Curve != coinconf.Secp256k1 {
		return nil, errors.Wrapf(wallet.ErrUnsupportedParameter, "%s is not a secp256k1 coin", conf.CoinName())
	}

	return &service{
		conf:   conf,
		params: ChainParams(conf),
	}, nil
}

// ChainParams builds the btcd network parameters of a secp256k1 coin
func ChainParams(conf *coinconf.Config) *chaincfg.Params {
	return &chaincfg.Params{
		Name:             string(conf.Coin),
		PubKeyHashAddrID: conf.P2PKHNetVer,
		ScriptHashAddrID: conf.P2SHNetVer,
		PrivateKeyID:     conf.WIFNetVer,
		Bech32HRPSegwit:  conf.HRP,
		HDPublicKeyID:    conf.Versions.Public,
		HDPrivateKeyID:   conf.Versions.Private,
		HDCoinType:       conf.CoinType,
	}
}

// Address encodes the public key with the address type of the coin
func (s *service) Address(pub *btcec.PublicKey) (string, error) {
	var (
		addr btcutil.Address
		err  error
	)

	switch s.conf.Address {
	case coinconf.AddrP2PKH:
		addr, err = btcutil.NewAddressPubKeyHash(btcutil.Hash160(pub.SerializeCompressed()), s.params)
	case coinconf.AddrP2PKHUncompressed:
		addr, err = btcutil.NewAddressPubKeyHash(btcutil.Hash160(pub.SerializeUncompressed()), s.params)
	case coinconf.AddrP2SHP2WPKH:
		script := append([]byte{opZero, opPush20}, btcutil.Hash160(pub.SerializeCompressed())...)
		addr, err = btcutil.NewAddressScriptHash(script, s.params)
	case coinconf.AddrP2WPKH:
		addr, err = btcutil.NewAddressWitnessPubKeyHash(btcutil.Hash160(pub.SerializeCompressed()), s.params)
	case coinconf.AddrP2TR:
		outputKey := txscript.ComputeTaprootKeyNoScript(pub)
		addr, err = btcutil.NewAddressTaproot(schnorr.SerializePubKey(outputKey), s.params)
	case coinconf.AddrCashAddrP2PKH:
		return CashAddr(s.conf.HRP, cashAddrV0, btcutil.Hash160(pub.SerializeCompressed()))
	case coinconf.AddrEthereum:
		return EthereumAddress(pub), nil
	default:
		return "", errors.Wrapf(wallet.ErrUnsupportedParameter, "address type %d is not a secp256k1 address", s.conf.Address)
	}

	if err != nil {
		return "", errors.Wrap(wallet.ErrDerivation, err.Error())
	}

	return addr.EncodeAddress(), nil
}

// WIF encodes the private key in wallet import format, "" if the coin has none
func (s *service) WIF(priv *btcec.PrivateKey) (string, error) {
	if !s.conf.HasWIF {
		return "", nil
	}

	compressed := s.conf.Address != coinconf.AddrP2PKHUncompressed

	wif, err := btcutil.NewWIF(priv, s.params, compressed)
	if err != nil {
		return "", errors.Wrap(wallet.ErrDerivation, err.Error())
	}

	return wif.String(), nil
}
