package seed

// Provider generates, validates and converts the mnemonics of one scheme
type Provider interface {
	// Generate creates a new random mnemonic of wordsNum words
	Generate(wordsNum int) (string, error)

	// Validate checks the mnemonic words and checksum
	Validate(mnemonic string) error

	// ToSeed converts a valid mnemonic and its passphrase into seed bytes
	ToSeed(mnemonic string, passphrase string) ([]byte, error)
}
