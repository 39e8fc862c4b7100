package generator_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github/chapool/go-hdwallet/internal/config"
	"github/chapool/go-hdwallet/internal/generator"
	"github/chapool/go-hdwallet/internal/metrics"
	"github/chapool/go-hdwallet/internal/wallet"
)

const abandonMnemonic = "abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon about"

func testConfig() config.Config {
	return config.Config{
		Generate: config.Generate{AddressNum: 3, WordsNum: 12, MaxAddressNum: 100},
		Output:   config.Output{Dir: ".", Indent: 2},
	}
}

func ptr(v uint32) *uint32 {
	return &v
}

func addresses(t *testing.T, w *wallet.Wallet) wallet.Document {
	t.Helper()

	doc, ok := wallet.ToDocument(w).Sub("address")
	require.True(t, ok)

	return doc
}

func TestGenerateFromMnemonic(t *testing.T) {
	svc := generator.NewService(testConfig(), nil)

	w, err := svc.Generate(context.Background(), generator.Request{
		Name:   "btc",
		Coin:   "bitcoin",
		Spec:   "bip84",
		Root:   generator.RootMnemonic,
		Input:  abandonMnemonic,
		Change: ptr(1),
	})
	require.NoError(t, err)
	assert.Equal(t, "btc", w.Name())

	addrs := addresses(t, w)
	assert.Equal(t, []string{"address_0", "address_1", "address_2"}, addrs.Keys())

	addr0, ok := addrs.Sub("address_0")
	require.True(t, ok)
	assert.Equal(t, "bc1q8c6fshw2dlwun7ekn9qwf37cu2rn755upcp6el", addr0.String("address"))
}

func TestGenerateRandom(t *testing.T) {
	svc := generator.NewService(testConfig(), nil)

	w, err := svc.Generate(context.Background(), generator.Request{Coin: "ethereum", Spec: "BIP-0044"})
	require.NoError(t, err)
	assert.NotEmpty(t, w.Name())
	assert.Len(t, strings.Fields(w.Mnemonic()), 12)

	// Algorand has a fixed mnemonic length and no address options
	w, err = svc.Generate(context.Background(), generator.Request{Coin: "algorand", Spec: "algorand", Root: generator.RootRandom})
	require.NoError(t, err)
	assert.Len(t, strings.Fields(w.Mnemonic()), 25)
}

func TestGenerateRawRoots(t *testing.T) {
	svc := generator.NewService(testConfig(), nil)
	ctx := context.Background()

	w, err := svc.Generate(ctx, generator.Request{
		Coin:       "monero",
		Spec:       "monero",
		Root:       generator.RootSeed,
		Input:      "0x" + strings.Repeat("5a", 31) + "05",
		AddressNum: ptr(2),
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"subaddress_0", "subaddress_1"}, mustSub(t, wallet.ToDocument(w), "subaddress").Keys())

	w, err = svc.Generate(ctx, generator.Request{
		Coin:  "polkadot",
		Spec:  "substrate",
		Root:  generator.RootPrivateKey,
		Input: strings.Repeat("07", 32),
		Path:  "//polkadot//0",
	})
	require.NoError(t, err)
	assert.True(t, wallet.ToDocument(w).Has("path_key"))

	full, err := svc.Generate(ctx, generator.Request{Coin: "bitcoin", Spec: "bip84", Root: generator.RootMnemonic, Input: abandonMnemonic})
	require.NoError(t, err)
	tree, ok := full.Tree().(*wallet.BipTree)
	require.True(t, ok)

	w, err = svc.Generate(ctx, generator.Request{
		Coin:  "bitcoin",
		Spec:  "bip84",
		Root:  generator.RootExtendedKey,
		Input: " " + tree.AccountKey.ExPub + "\n",
	})
	require.NoError(t, err)
	assert.True(t, w.IsWatchOnly())
	assert.Equal(t,
		mustSub(t, addresses(t, full), "address_2").String("address"),
		mustSub(t, addresses(t, w), "address_2").String("address"))

	w, err = svc.Generate(ctx, generator.Request{
		Coin:  "bitcoin",
		Spec:  "bip84",
		Root:  generator.RootPublicKey,
		Input: tree.AccountKey.RawComprPub,
	})
	require.NoError(t, err)
	assert.True(t, w.IsWatchOnly())
}

func mustSub(t *testing.T, d wallet.Document, key string) wallet.Document {
	t.Helper()

	sub, ok := d.Sub(key)
	require.True(t, ok, key)

	return sub
}

func TestGenerateErrors(t *testing.T) {
	svc := generator.NewService(testConfig(), nil)
	ctx := context.Background()

	tests := []struct {
		name string
		req  generator.Request
		want error
	}{
		{"unknown coin", generator.Request{Coin: "tron", Spec: "bip44"}, wallet.ErrUnsupportedParameter},
		{"unknown spec", generator.Request{Coin: "bitcoin", Spec: "bip32"}, wallet.ErrUnsupportedParameter},
		{"unknown root", generator.Request{Coin: "bitcoin", Spec: "bip44", Root: "wif"}, wallet.ErrUnsupportedParameter},
		{"bad hex", generator.Request{Coin: "bitcoin", Spec: "bip44", Root: generator.RootSeed, Input: "zz"}, wallet.ErrInvalidKeyMaterial},
		{"too many addresses", generator.Request{Coin: "bitcoin", Spec: "bip44", AddressNum: ptr(101)}, wallet.ErrUnsupportedParameter},
		{"change of monero", generator.Request{Coin: "monero", Spec: "monero", Root: generator.RootSeed, Input: strings.Repeat("01", 32), Change: ptr(1)}, wallet.ErrUnsupportedParameter},
		{"path of bip", generator.Request{Coin: "bitcoin", Spec: "bip44", Path: "m/0"}, wallet.ErrUnsupportedParameter},
		{"account out of range", generator.Request{Coin: "bitcoin", Spec: "bip44", Account: ptr(0x80000000)}, wallet.ErrInvalidDerivationIndex},
		{"bad mnemonic", generator.Request{Coin: "bitcoin", Spec: "bip44", Root: generator.RootMnemonic, Input: "abandon"}, wallet.ErrInvalidKeyMaterial},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, err := svc.Generate(ctx, tt.req)
			require.ErrorIs(t, err, tt.want)
			assert.Nil(t, w)
		})
	}
}

func TestGenerateRecordsMetrics(t *testing.T) {
	recorder := metrics.NewRecorder()
	svc := generator.NewService(testConfig(), recorder)
	ctx := context.Background()

	_, err := svc.Generate(ctx, generator.Request{Coin: "bitcoin", Spec: "bip84", Root: generator.RootMnemonic, Input: abandonMnemonic})
	require.NoError(t, err)

	_, err = svc.Generate(ctx, generator.Request{Coin: "bitcoin", Spec: "bip84", Root: generator.RootSeed, Input: "zz"})
	require.Error(t, err)

	expected := `
# HELP hdwallet_generation_failures_total Number of failed generations by error kind.
# TYPE hdwallet_generation_failures_total counter
hdwallet_generation_failures_total{kind="invalid_key_material"} 1
`
	require.NoError(t, testutil.GatherAndCompare(recorder.Registry(), bytes.NewBufferString(expected), "hdwallet_generation_failures_total"))

	count, err := testutil.GatherAndCount(recorder.Registry(), "hdwallet_wallets_generated_total")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestSave(t *testing.T) {
	svc := generator.NewService(testConfig(), nil)

	w, err := svc.Generate(context.Background(), generator.Request{Name: "../escape", Coin: "bitcoin", Spec: "bip44", Root: generator.RootMnemonic, Input: abandonMnemonic})
	require.NoError(t, err)

	dir := t.TempDir()
	path, err := svc.Save(w, dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "escape.json"), path)

	b, err := os.ReadFile(path)
	require.NoError(t, err)

	want, err := wallet.ToJSONIndent(w, "  ")
	require.NoError(t, err)
	assert.Equal(t, want, b)

	_, err = svc.Save(w, filepath.Join(dir, "missing"))
	require.ErrorIs(t, err, wallet.ErrIOFailure)
}

func TestSaveKeepsExistingFile(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	first, err := generator.NewService(testConfig(), nil).Generate(ctx, generator.Request{Name: "w", Coin: "bitcoin", Spec: "bip44"})
	require.NoError(t, err)
	second, err := generator.NewService(testConfig(), nil).Generate(ctx, generator.Request{Name: "w", Coin: "bitcoin", Spec: "bip44"})
	require.NoError(t, err)

	svc := generator.NewService(testConfig(), nil)
	path, err := svc.Save(first, dir)
	require.NoError(t, err)

	_, err = svc.Save(second, dir)
	require.ErrorIs(t, err, wallet.ErrIOFailure)

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(b), first.Mnemonic())

	conf := testConfig()
	conf.Output.Overwrite = true
	_, err = generator.NewService(conf, nil).Save(second, dir)
	require.NoError(t, err)

	b, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(b), second.Mnemonic())
}

func TestGenerateBatch(t *testing.T) {
	svc := generator.NewService(testConfig(), nil)
	dir := t.TempDir()

	reqs := []generator.Request{
		{Name: "btc", Coin: "bitcoin", Spec: "bip84", Root: generator.RootMnemonic, Input: abandonMnemonic},
		{Name: "eth", Coin: "ethereum", Spec: "bip44", Root: generator.RootMnemonic, Input: abandonMnemonic, AddressNum: ptr(1)},
		{Coin: "algorand", Spec: "algorand"},
		{Name: "ada", Coin: "cardano", Spec: "cardano", Root: generator.RootMnemonic, Input: abandonMnemonic},
	}

	results, err := svc.GenerateBatch(context.Background(), reqs, dir, 2)
	require.NoError(t, err)
	require.Len(t, results, len(reqs))

	assert.Equal(t, "btc", results[0].Wallet.Name())
	assert.Equal(t, "eth", results[1].Wallet.Name())
	assert.NotEmpty(t, results[2].Wallet.Name())
	assert.Equal(t, "ada", results[3].Wallet.Name())
	assert.Empty(t, reqs[2].Name)

	for _, r := range results {
		assert.FileExists(t, r.Path)
		assert.Equal(t, filepath.Join(dir, r.Wallet.Name()+".json"), r.Path)
	}
}

func TestGenerateBatchErrors(t *testing.T) {
	svc := generator.NewService(testConfig(), nil)
	ctx := context.Background()

	_, err := svc.GenerateBatch(ctx, []generator.Request{
		{Name: "a", Coin: "bitcoin", Spec: "bip44"},
		{Name: "a", Coin: "bitcoin", Spec: "bip84"},
	}, t.TempDir(), 1)
	require.ErrorIs(t, err, wallet.ErrUnsupportedParameter)

	results, err := svc.GenerateBatch(ctx, []generator.Request{
		{Name: "ok", Coin: "bitcoin", Spec: "bip44"},
		{Name: "bad", Coin: "bitcoin", Spec: "bip44", Account: ptr(0x80000000)},
	}, t.TempDir(), 0)
	require.ErrorIs(t, err, wallet.ErrInvalidDerivationIndex)
	assert.Nil(t, results)
}

func TestDecodeHex(t *testing.T) {
	b, err := generator.DecodeHex(" 0xdeadBEEF\n")
	require.NoError(t, err)
	assert.Equal(t, []byte{0xde, 0xad, 0xbe, 0xef}, b)

	_, err = generator.DecodeHex("abc")
	require.ErrorIs(t, err, wallet.ErrInvalidKeyMaterial)
}

func TestGenerateIsDeterministic(t *testing.T) {
	svc := generator.NewService(testConfig(), nil)
	ctx := context.Background()

	reqs := []generator.Request{
		{Name: "w", Coin: "litecoin", Spec: "bip84", Root: generator.RootMnemonic, Input: abandonMnemonic, Account: ptr(2), Change: ptr(1)},
		{Name: "w", Coin: "cardano", Spec: "cardano", Root: generator.RootMnemonic, Input: abandonMnemonic, Passphrase: "x"},
		{Name: "w", Coin: "kusama", Spec: "substrate", Root: generator.RootMnemonic, Input: abandonMnemonic, Path: "//1/2"},
		{Name: "w", Coin: "bitcoin", Spec: "electrum_v1", Root: generator.RootSeed, Input: strings.Repeat("ab", 16)},
	}

	for _, req := range reqs {
		t.Run(req.Coin, func(t *testing.T) {
			first, err := svc.Generate(ctx, req)
			require.NoError(t, err)
			second, err := svc.Generate(ctx, req)
			require.NoError(t, err)

			a, err := wallet.ToJSON(first)
			require.NoError(t, err)
			b, err := wallet.ToJSON(second)
			require.NoError(t, err)
			assert.Equal(t, a, b)
		})
	}
}
