package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment variable read by the config
const EnvPrefix = "HDWALLET"

// Logger configures the global zerolog logger
type Logger struct {
	Level              zerolog.Level
	PrettyPrintConsole bool
}

// Generate holds the generation defaults of the CLI
type Generate struct {
	AddressNum    uint32
	WordsNum      int
	MaxAddressNum uint32
}

// Output configures where and how wallets are written
type Output struct {
	Dir       string
	Indent    int
	Overwrite bool
}

// Metrics configures the prometheus textfile export, disabled when TextfilePath is empty
type Metrics struct {
	TextfilePath string
}

// Mnemonic points to the wordlist files of the schemes whose wordlists are
// not built in. An empty path disables mnemonics of that scheme.
type Mnemonic struct {
	MoneroWordlist     string
	MoneroPrefixLen    int
	ElectrumV1Wordlist string
}

// Config is the complete configuration of the hdwallet CLI
type Config struct {
	Logger   Logger
	Generate Generate
	Mnemonic Mnemonic
	Output   Output
	Metrics  Metrics
}

const (
	keyLoggerLevel         = "logger.level"
	keyLoggerPrettyPrint   = "logger.pretty_print_console"
	keyGenerateAddressNum  = "generate.address_num"
	keyGenerateWordsNum    = "generate.words_num"
	keyGenerateMaxAddrNum  = "generate.max_address_num"
	keyMoneroWordlist      = "mnemonic.monero_wordlist"
	keyMoneroPrefixLen     = "mnemonic.monero_prefix_len"
	keyElectrumV1Wordlist  = "mnemonic.electrum_v1_wordlist"
	keyOutputDir           = "output.dir"
	keyOutputIndent        = "output.indent"
	keyOutputOverwrite     = "output.overwrite"
	keyMetricsTextfilePath = "metrics.textfile_path"
)

// New returns a viper instance reading HDWALLET_ prefixed variables, with
// all defaults set
func New() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault(keyLoggerLevel, zerolog.InfoLevel.String())
	v.SetDefault(keyLoggerPrettyPrint, false)
	v.SetDefault(keyGenerateAddressNum, 20)    //nolint:mnd
	v.SetDefault(keyGenerateWordsNum, 24)      //nolint:mnd
	v.SetDefault(keyGenerateMaxAddrNum, 10000) //nolint:mnd
	v.SetDefault(keyMoneroWordlist, "")
	v.SetDefault(keyMoneroPrefixLen, 3) //nolint:mnd
	v.SetDefault(keyElectrumV1Wordlist, "")
	v.SetDefault(keyOutputDir, ".")
	v.SetDefault(keyOutputIndent, 4) //nolint:mnd
	v.SetDefault(keyOutputOverwrite, false)
	v.SetDefault(keyMetricsTextfilePath, "")

	return v
}

// FromViper reads the config out of v, invalid log levels fall back to info
func FromViper(v *viper.Viper) Config {
	level, err := zerolog.ParseLevel(v.GetString(keyLoggerLevel))
	if err != nil {
		level = zerolog.InfoLevel
	}

	return Config{
		Logger: Logger{
			Level:              level,
			PrettyPrintConsole: v.GetBool(keyLoggerPrettyPrint),
		},
		Generate: Generate{
			AddressNum:    v.GetUint32(keyGenerateAddressNum),
			WordsNum:      v.GetInt(keyGenerateWordsNum),
			MaxAddressNum: v.GetUint32(keyGenerateMaxAddrNum),
		},
		Mnemonic: Mnemonic{
			MoneroWordlist:     v.GetString(keyMoneroWordlist),
			MoneroPrefixLen:    v.GetInt(keyMoneroPrefixLen),
			ElectrumV1Wordlist: v.GetString(keyElectrumV1Wordlist),
		},
		Output: Output{
			Dir:       v.GetString(keyOutputDir),
			Indent:    v.GetInt(keyOutputIndent),
			Overwrite: v.GetBool(keyOutputOverwrite),
		},
		Metrics: Metrics{
			TextfilePath: v.GetString(keyMetricsTextfilePath),
		},
	}
}

// DefaultConfigFromEnv loads the optional .env.local of the working directory
// and returns the config of the current environment
func DefaultConfigFromEnv() Config {
	if wd, err := os.Getwd(); err == nil {
		DotEnvTryLoad(filepath.Join(wd, ".env.local"), os.Setenv)
	}

	return FromViper(New())
}
