package auth

import (
	"crypto/ed25519"

	"github.com/gagliardetto/solana-go"
	"github.com/pkg/errors"
	bip39 "github.com/tyler-smith/go-bip39"
)

var ErrInvalidMnemonic = errors.New("invalid mnemonic")

// NewMnemonic генерирует мнемонику из 12 слов.
func NewMnemonic() (string, error) {
	entropy, err := bip39.NewEntropy(128)
	if err != nil {
		return "", errors.Wrap(err, "generating entropy")
	}
	return bip39.NewMnemonic(entropy)
}

// KeyFromMnemonic выводит ключ подписи из первых 32 байт BIP-39 seed.
func KeyFromMnemonic(mnemonic, passphrase string) (solana.PrivateKey, error) {
	seed, err := bip39.NewSeedWithErrorChecking(mnemonic, passphrase)
	if err != nil {
		return nil, errors.Wrap(ErrInvalidMnemonic, err.Error())
	}
	return solana.PrivateKey(ed25519.NewKeyFromSeed(seed[:ed25519.SeedSize])), nil
}
