// Package keypair generates, validates and persists the Ed25519 keying
// material used to identify and sign for accounts. A Keypair is immutable
// once built; every constructor either returns a fully valid pair or an
// error, never a partial one.
package keypair

import (
	"bytes"
	"crypto/ed25519"
	"crypto/rand"
	"encoding/json"
	"os"

	"github.com/pkg/errors"

	"github.com/solware/gosol/codec"
)

const (
	// PublicKeySize is the byte length of an Ed25519 verify key.
	PublicKeySize = ed25519.PublicKeySize
	// SecretKeySize is the byte length of a packed secret key: the 32-byte
	// signing seed followed by the 32-byte verify key.
	SecretKeySize = ed25519.PrivateKeySize
)

var (
	// ErrBadSecretKeySize is returned when a secret key is not 64 bytes.
	ErrBadSecretKeySize = errors.New("bad secret key size")
	// ErrKeyMismatch is returned when a persisted document's public key does
	// not match the key derived from its secret key.
	ErrKeyMismatch = errors.New("Provided secretKey is invalid")
	// ErrMalformedDocument is returned when a persisted keypair file is not
	// valid JSON.
	ErrMalformedDocument = errors.New("malformed keypair document")
)

// Keypair holds a 32-byte public key and the 64-byte secret key it was
// derived from.
type Keypair struct {
	publicKey ed25519.PublicKey
	secretKey ed25519.PrivateKey
}

// Generate produces a fresh random keypair.
func Generate() (*Keypair, error) {
	publicKey, secretKey, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return nil, errors.Wrap(err, "generate keypair")
	}
	return &Keypair{
		publicKey: publicKey,
		secretKey: secretKey,
	}, nil
}

// FromSecretKey builds a Keypair from a 64-byte packed secret key. The
// public key is derived from the first 32 bytes; the trailing 32 bytes are
// not required to match here, LoadJSON performs that stricter check.
func FromSecretKey(secret []byte) (*Keypair, error) {
	if len(secret) != SecretKeySize {
		return nil, errors.Wrapf(ErrBadSecretKeySize, "got %d bytes, want %d", len(secret), SecretKeySize)
	}
	secretKey := ed25519.NewKeyFromSeed(secret[:ed25519.SeedSize])
	return &Keypair{
		publicKey: secretKey.Public().(ed25519.PublicKey),
		secretKey: secretKey,
	}, nil
}

// FromBase58 builds a Keypair from a Base58-encoded packed secret key.
func FromBase58(secret string) (*Keypair, error) {
	raw, err := codec.Base58Decode(secret)
	if err != nil {
		return nil, err
	}
	return FromSecretKey(raw)
}

// PublicKey returns a copy of the 32-byte public key.
func (k *Keypair) PublicKey() []byte {
	return bytes.Clone(k.publicKey)
}

// SecretKey returns a copy of the 64-byte packed secret key.
func (k *Keypair) SecretKey() []byte {
	return bytes.Clone(k.secretKey)
}

// PublicKeyBase58 returns the Base58 form of the public key.
func (k *Keypair) PublicKeyBase58() string {
	return codec.Base58Encode(k.publicKey)
}

// SecretKeyBase58 returns the Base58 form of the packed secret key.
func (k *Keypair) SecretKeyBase58() string {
	return codec.Base58Encode(k.secretKey)
}

// Sign signs message with the secret key.
func (k *Keypair) Sign(message []byte) []byte {
	return ed25519.Sign(k.secretKey, message)
}

// Verify reports whether signature is a valid signature of message by this
// keypair's public key.
func (k *Keypair) Verify(message, signature []byte) bool {
	return ed25519.Verify(k.publicKey, message, signature)
}

type document struct {
	PublicKey string `json:"public_key"`
	SecretKey string `json:"secret_key"`
}

// SaveJSON writes the keypair to path as a JSON document with both keys
// Base58-encoded. Filesystem errors are returned unmodified.
func (k *Keypair) SaveJSON(path string) error {
	data, err := json.Marshal(document{
		PublicKey: k.PublicKeyBase58(),
		SecretKey: k.SecretKeyBase58(),
	})
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}

// LoadJSON reads a keypair document written by SaveJSON, rebuilds the pair
// from its secret key and verifies the stored public key matches the one
// derived from it. A mismatch means the two fields were not produced from
// the same signing key.
func LoadJSON(path string) (*Keypair, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var doc document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, errors.Wrapf(ErrMalformedDocument, "%s: %v", path, err)
	}
	secret, err := codec.Base58Decode(doc.SecretKey)
	if err != nil {
		return nil, err
	}
	public, err := codec.Base58Decode(doc.PublicKey)
	if err != nil {
		return nil, err
	}
	pair, err := FromSecretKey(secret)
	if err != nil {
		return nil, err
	}
	if !bytes.Equal(public, pair.publicKey) {
		return nil, ErrKeyMismatch
	}
	return pair, nil
}
