package wallet

import (
	"crypto/ed25519"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/decred/dcrd/dcrec/secp256k1/v4/ecdsa"
	"github.com/mr-tron/base58"
)

// Wallet holds two keypairs (Ed25519 + secp256k1). The Ed25519 address
// is the account identity the ledger sees; the secp256k1 pair is kept
// for tooling that expects ECDSA.
type Wallet struct {
	// Ed25519
	AddressEd string
	PubEd     ed25519.PublicKey
	PrivEd    ed25519.PrivateKey

	// secp256k1
	AddressSec string
	PubSec     []byte
	PrivSec    *secp256k1.PrivateKey
}

// Addresses are base58 of a pubkey hash with a short scheme prefix.
func addressEd(pub ed25519.PublicKey) string {
	h := sha256.Sum256(pub)
	return "hlt1" + base58.Encode(h[:20])
}

func addressSec(pubCompressed []byte) string {
	h := sha256.Sum256(pubCompressed)
	return "hltq" + base58.Encode(h[:20])
}

// GenerateWallet creates a wallet with fresh random keypairs.
func GenerateWallet() (*Wallet, error) {
	pubEd, privEd, err := ed25519.GenerateKey(nil)
	if err != nil {
		return nil, err
	}

	privSec, err := secp256k1.GeneratePrivateKey()
	if err != nil {
		return nil, fmt.Errorf("generate secp256k1 key: %w", err)
	}
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

// SaveToFile stores the wallet as plaintext JSON. Use SaveKeystore for
// anything that leaves the machine.
func (w *Wallet) SaveToFile(filename string) error {
	data := map[string]string{
		"address_ed":  w.AddressEd,
		"pub_ed":      hex.EncodeToString(w.PubEd),
		"priv_ed":     hex.EncodeToString(w.PrivEd),
		"address_sec": w.AddressSec,
		"pub_sec":     hex.EncodeToString(w.PubSec),
		"priv_sec":    hex.EncodeToString(w.PrivSec.Serialize()),
	}
	file, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filename, file, 0600)
}

// LoadWallet opens a plaintext JSON wallet file.
func LoadWallet(filename string) (*Wallet, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	var m map[string]string
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, err
	}

	privEd, err := hex.DecodeString(m["priv_ed"])
	if err != nil || len(privEd) != ed25519.PrivateKeySize {
		return nil, fmt.Errorf("wallet %s: bad ed25519 key", filename)
	}
	pubEd, err := hex.DecodeString(m["pub_ed"])
	if err != nil {
		return nil, fmt.Errorf("wallet %s: bad ed25519 pubkey", filename)
	}
	privSecBytes, err := hex.DecodeString(m["priv_sec"])
	if err != nil {
		return nil, fmt.Errorf("wallet %s: bad secp256k1 key", filename)
	}
	privSec := secp256k1.PrivKeyFromBytes(privSecBytes)
	pubSec := privSec.PubKey().SerializeCompressed()

	return &Wallet{
		AddressEd:  m["address_ed"],
		PubEd:      ed25519.PublicKey(pubEd),
		PrivEd:     ed25519.PrivateKey(privEd),
		AddressSec: m["address_sec"],
		PubSec:     pubSec,
		PrivSec:    privSec,
	}, nil
}

// SignEd signs data with the Ed25519 key.
func (w *Wallet) SignEd(data []byte) []byte {
	return ed25519.Sign(w.PrivEd, data)
}

// VerifyEd checks an Ed25519 signature.
func VerifyEd(pub ed25519.PublicKey, data, sig []byte) bool {
	return ed25519.Verify(pub, data, sig)
}

// SignSec signs data with the secp256k1 key (ECDSA).
func (w *Wallet) SignSec(data []byte) []byte {
	sig := ecdsa.Sign(w.PrivSec, data)
	return sig.Serialize()
}
