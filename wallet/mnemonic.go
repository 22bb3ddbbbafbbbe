package wallet

import (
	"crypto/ed25519"
	"errors"
	"strings"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/tyler-smith/go-bip39"
)

var ErrInvalidMnemonic = errors.New("invalid mnemonic")

// GenerateMnemonic returns a fresh 24-word BIP-39 mnemonic.
func GenerateMnemonic() (string, error) {
	entropy, err := bip39.NewEntropy(256)
	if err != nil {
		return "", err
	}
	return bip39.NewMnemonic(entropy)
}

// ValidateMnemonic reports whether the mnemonic is well formed.
func ValidateMnemonic(mnemonic string) bool {
	return bip39.IsMnemonicValid(strings.TrimSpace(mnemonic))
}

// FromMnemonic derives the wallet deterministically from a BIP-39
// mnemonic: the first 32 bytes of the seed feed the Ed25519 key, the
// next 32 the secp256k1 key. The same mnemonic always restores the same
// addresses.
func FromMnemonic(mnemonic string) (*Wallet, error) {
	mnemonic = strings.TrimSpace(mnemonic)
	if !bip39.IsMnemonicValid(mnemonic) {
		return nil, ErrInvalidMnemonic
	}
	seed := bip39.NewSeed(mnemonic, "")

	privEd := ed25519.NewKeyFromSeed(seed[:32])
	pubEd := privEd.Public().(ed25519.PublicKey)

	privSec := secp256k1.PrivKeyFromBytes(seed[32:64])
	pubSec := privSec.PubKey().SerializeCompressed()

	return &Wallet{
		AddressEd:  addressEd(pubEd),
		PubEd:      pubEd,
		PrivEd:     privEd,
		AddressSec: addressSec(pubSec),
		PubSec:     pubSec,
		PrivSec:    privSec,
	}, nil
}
