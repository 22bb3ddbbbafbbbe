package wallet

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/ed25519"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"golang.org/x/crypto/argon2"
)

// Keystore is the encrypted on-disk wallet format. Keys are sealed with
// AES-256-GCM under an argon2id-derived key; each keypair gets its own
// nonce, the file shares one salt.
type Keystore struct {
	Version int    `json:"version"`
	Salt    string `json:"salt"`

	// Ed25519
	AddressEd string `json:"address_ed"`
	CryptoEd  string `json:"crypto_ed"`
	NonceEd   string `json:"nonce_ed"`

	// secp256k1
	AddressSec string `json:"address_sec"`
	CryptoSec  string `json:"crypto_sec"`
	NonceSec   string `json:"nonce_sec"`
}

const (
	keystoreVersion = 1
	saltSize        = 16

	// argon2id parameters
	kdfTime     = 2
	kdfMemoryKB = 64 * 1024
	kdfThreads  = 1
)

func deriveKey(password string, salt []byte) []byte {
	return argon2.IDKey([]byte(password), salt, kdfTime, kdfMemoryKB, kdfThreads, 32)
}

func seal(priv []byte, key []byte) (cipherText, nonce []byte, err error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, nil, err
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, nil, err
	}
	nonce = make([]byte, gcm.NonceSize())
	if _, err = io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, nil, err
	}
	return gcm.Seal(nil, nonce, priv, nil), nonce, nil
}

func open(cipherText, nonce, key []byte) ([]byte, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}
	return gcm.Open(nil, nonce, cipherText, nil)
}

// SaveKeystore writes the wallet to filename encrypted with password.
func (w *Wallet) SaveKeystore(filename, password string) error {
	salt := make([]byte, saltSize)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return err
	}
	key := deriveKey(password, salt)

	cipherEd, nonceEd, err := seal(w.PrivEd, key)
	if err != nil {
		return err
	}
	cipherSec, nonceSec, err := seal(w.PrivSec.Serialize(), key)
	if err != nil {
		return err
	}

	ks := Keystore{
		Version: keystoreVersion,
		Salt:    hex.EncodeToString(salt),

		AddressEd: w.AddressEd,
		CryptoEd:  hex.EncodeToString(cipherEd),
		NonceEd:   hex.EncodeToString(nonceEd),

		AddressSec: w.AddressSec,
		CryptoSec:  hex.EncodeToString(cipherSec),
		NonceSec:   hex.EncodeToString(nonceSec),
	}

	data, err := json.MarshalIndent(ks, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filename, data, 0600)
}

// LoadKeystore opens an encrypted wallet file with password.
func LoadKeystore(filename, password string) (*Wallet, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	var ks Keystore
	if err := json.Unmarshal(data, &ks); err != nil {
		return nil, err
	}
	if ks.Version != keystoreVersion {
		return nil, fmt.Errorf("keystore %s: unsupported version %d", filename, ks.Version)
	}
	salt, err := hex.DecodeString(ks.Salt)
	if err != nil {
		return nil, fmt.Errorf("keystore %s: bad salt", filename)
	}
	key := deriveKey(password, salt)

	cipherEd, _ := hex.DecodeString(ks.CryptoEd)
	nonceEd, _ := hex.DecodeString(ks.NonceEd)
	privEd, err := open(cipherEd, nonceEd, key)
	if err != nil {
		return nil, fmt.Errorf("keystore %s: wrong password", filename)
	}

	cipherSec, _ := hex.DecodeString(ks.CryptoSec)
	nonceSec, _ := hex.DecodeString(ks.NonceSec)
	privSecBytes, err := open(cipherSec, nonceSec, key)
	if err != nil {
		return nil, fmt.Errorf("keystore %s: wrong password", filename)
	}
	privSec := secp256k1.PrivKeyFromBytes(privSecBytes)
	pubSec := privSec.PubKey().SerializeCompressed()

	addrSec := ks.AddressSec
	if addrSec == "" {
		addrSec = addressSec(pubSec)
	}

	if len(privEd) != ed25519.PrivateKeySize {
		return nil, fmt.Errorf("keystore %s: bad ed25519 key", filename)
	}
	return &Wallet{
		AddressEd:  ks.AddressEd,
		PrivEd:     ed25519.PrivateKey(privEd),
		PubEd:      ed25519.PublicKey(privEd[32:]),
		AddressSec: addrSec,
		PrivSec:    privSec,
		PubSec:     pubSec,
	}, nil
}
