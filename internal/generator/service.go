package generator

import (
	"context"
	"encoding/hex"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github/chapool/go-hdwallet/internal/coinconf"
	"github/chapool/go-hdwallet/internal/config"
	"github/chapool/go-hdwallet/internal/metrics"
	"github/chapool/go-hdwallet/internal/util"
	"github/chapool/go-hdwallet/internal/wallet"
	"github/chapool/go-hdwallet/internal/wallet/bip"
	"github/chapool/go-hdwallet/internal/wallet/cardano"
	"github/chapool/go-hdwallet/internal/wallet/electrum"
	"github/chapool/go-hdwallet/internal/wallet/factory"
	"golang.org/x/sync/errgroup"
)

type service struct {
	conf      config.Generate
	lists     config.Mnemonic
	indent    string
	overwrite bool
	recorder  *metrics.Recorder
}

// NewService creates a generator using the generation and output settings
// of conf. recorder may be nil.
//
//nolint:ireturn // Returning interface is intentional for dependency injection
func NewService(conf config.Config, recorder *metrics.Recorder) Service {
	return &service{
		conf:      conf.Generate,
		lists:     conf.Mnemonic,
		indent:    strings.Repeat(" ", conf.Output.Indent),
		overwrite: conf.Output.Overwrite,
		recorder:  recorder,
	}
}

// Generate creates and generates the wallet of req
func (s *service) Generate(ctx context.Context, req Request) (*wallet.Wallet, error) {
	w, err := s.generate(ctx, req)
	if err != nil {
		if s.recorder != nil {
			s.recorder.ObserveFailure(err)
		}

		return nil, err
	}

	if s.recorder != nil {
		s.recorder.ObserveWallet(w)
	}

	return w, nil
}

func (s *service) generate(ctx context.Context, req Request) (*wallet.Wallet, error) {
	log := util.LogFromContext(ctx)

	coin, err := coinconf.ParseCoin(req.Coin)
	if err != nil {
		return nil, err
	}

	spec, err := coinconf.ParseSpec(req.Spec)
	if err != nil {
		return nil, err
	}

	fopts := []factory.Option{factory.WithLogger(*log)}
	if req.Root == RootRandom || req.Root == RootMnemonic || req.Root == "" {
		conf, err := coinconf.Lookup(coin, spec)
		if err != nil {
			return nil, err
		}

		provider, err := MnemonicProvider(s.lists, conf)
		if err != nil {
			return nil, err
		}
		fopts = append(fopts, factory.WithMnemonicProvider(provider))
	}

	f, err := factory.New(coin, spec, fopts...)
	if err != nil {
		return nil, err
	}

	name := req.Name
	if name == "" {
		name = uuid.NewString()
	}

	shell, err := s.create(f, name, req)
	if err != nil {
		return nil, err
	}

	opts, err := s.options(f.Config().Family, shell.Supported(), req)
	if err != nil {
		return nil, err
	}

	return shell.Generate(opts...)
}

func (s *service) create(f *factory.Factory, name string, req Request) (*wallet.Shell, error) {
	switch req.Root {
	case RootRandom, "":
		wordsNum := req.WordsNum
		if wordsNum == 0 {
			conf := f.Config()
			wordsNum = factory.WordsNum(&conf, s.conf.WordsNum)
		}

		return f.CreateRandom(name, wordsNum)
	case RootMnemonic:
		return f.CreateFromMnemonic(name, req.Input, req.Passphrase)
	case RootExtendedKey:
		return f.CreateFromExtendedKey(name, strings.TrimSpace(req.Input))
	case RootSeed, RootPrivateKey, RootPublicKey:
		b, err := DecodeHex(req.Input)
		if err != nil {
			return nil, err
		}

		switch req.Root {
		case RootSeed:
			return f.CreateFromSeed(name, b)
		case RootPrivateKey:
			return f.CreateFromPrivateKey(name, b)
		default:
			return f.CreateFromPublicKey(name, b)
		}
	default:
		return nil, errors.Wrapf(wallet.ErrUnsupportedParameter, "unknown root %q", req.Root)
	}
}

// options converts the set fields of req, the address number falls back to
// the configured default when the spec generates addresses
func (s *service) options(family coinconf.Family, supported wallet.Option, req Request) ([]wallet.GenerateOption, error) {
	var opts []wallet.GenerateOption

	if req.Account != nil {
		opts = append(opts, wallet.WithAccount(*req.Account))
	}

	if req.Change != nil {
		change, err := familyChange(family, *req.Change)
		if err != nil {
			return nil, err
		}
		opts = append(opts, wallet.WithChange(change))
	}

	addrNum := s.conf.AddressNum
	if req.AddressNum != nil {
		addrNum = *req.AddressNum
	}
	if s.conf.MaxAddressNum > 0 && addrNum > s.conf.MaxAddressNum {
		return nil, errors.Wrapf(wallet.ErrUnsupportedParameter, "address number %d exceeds the limit of %d",
			addrNum, s.conf.MaxAddressNum)
	}
	if req.AddressNum != nil || supported&wallet.OptAddressNum != 0 {
		opts = append(opts, wallet.WithAddressNum(addrNum))
	}

	if req.AddressOffset != nil {
		opts = append(opts, wallet.WithAddressOffset(*req.AddressOffset))
	}

	if req.Path != "" {
		opts = append(opts, wallet.WithPath(req.Path))
	}

	return opts, nil
}

//nolint:ireturn // each family has its own change enum
func familyChange(family coinconf.Family, idx uint32) (wallet.Change, error) {
	switch family {
	case coinconf.FamilyBip:
		return bip.Change(idx), nil
	case coinconf.FamilyCardano:
		return cardano.Change(idx), nil
	case coinconf.FamilyElectrumV1, coinconf.FamilyElectrumV2:
		return electrum.Change(idx), nil
	case coinconf.FamilyMonero, coinconf.FamilyAlgorand, coinconf.FamilySubstrate:
		return nil, errors.Wrapf(wallet.ErrUnsupportedParameter, "%s wallets have no change chain", family)
	default:
		return nil, errors.Wrapf(wallet.ErrUnsupportedParameter, "%s wallets have no change chain", family)
	}
}

// Save writes w to dir as <name>.json, an existing file is only replaced
// when overwriting is configured
func (s *service) Save(w *wallet.Wallet, dir string) (string, error) {
	path := filepath.Join(dir, filepath.Base(w.Name())+".json")

	save := wallet.CreateFileIndent
	if s.overwrite {
		save = wallet.SaveToFileIndent
	}

	if err := save(w, path, s.indent); err != nil {
		return "", err
	}

	return path, nil
}

// GenerateBatch generates and saves reqs in parallel
func (s *service) GenerateBatch(ctx context.Context, reqs []Request, dir string, parallel int) ([]Result, error) {
	log := util.LogFromContext(ctx)

	if parallel <= 0 {
		parallel = runtime.NumCPU()
	}

	reqs = append([]Request(nil), reqs...)
	names := make(map[string]struct{}, len(reqs))
	for i := range reqs {
		if reqs[i].Name == "" {
			reqs[i].Name = uuid.NewString()
		}
		if _, ok := names[reqs[i].Name]; ok {
			return nil, errors.Wrapf(wallet.ErrUnsupportedParameter, "duplicate wallet name %q", reqs[i].Name)
		}
		names[reqs[i].Name] = struct{}{}
	}

	results := make([]Result, len(reqs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(parallel)

	for i, req := range reqs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			w, err := s.Generate(gctx, req)
			if err != nil {
				return errors.Wrapf(err, "batch entry %d", i)
			}

			path, err := s.Save(w, dir)
			if err != nil {
				return err
			}

			results[i] = Result{Wallet: w, Path: path}

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		log.Error().Err(err).Msg("Batch generation failed")
		return nil, err
	}

	log.Info().Int("wallets", len(results)).Str("dir", dir).Msg("Batch generation completed")

	return results, nil
}

// DecodeHex decodes hex encoded key material, a 0x prefix is allowed
func DecodeHex(s string) ([]byte, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "0x")

	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, errors.Wrapf(wallet.ErrInvalidKeyMaterial, "invalid hex: %v", err)
	}

	return b, nil
}
