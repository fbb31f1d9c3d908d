package dverse

import (
	"crypto/ed25519"
	"crypto/rand"
	"crypto/sha256"
	"fmt"

	"github.com/mr-tron/base58"
)

// Fixed Ed25519 sizes. Anything else is rejected before reaching the
// crypto primitive, which panics on wrong-length input.
const (
	PrivateKeySize = ed25519.SeedSize      // 32
	PublicKeySize  = ed25519.PublicKeySize // 32
	SignatureSize  = ed25519.SignatureSize // 64
)

// PrivateKey is a 32-byte Ed25519 seed. Never serialized into a DID.
type PrivateKey []byte

// PublicKey is a 32-byte Ed25519 public key. Compared byte-wise.
type PublicKey []byte

// Signature is a 64-byte Ed25519 signature.
type Signature []byte

// Equal reports whether two public keys hold the same bytes.
func (pub PublicKey) Equal(other PublicKey) bool {
	return string(pub) == string(other)
}

// Fingerprint returns a short base58 identifier for a public key,
// suitable for display and filesystem names. Not reversible.
func (pub PublicKey) Fingerprint() string {
	sum := sha256.Sum256(pub)
	return base58.Encode(sum[:8])
}

// KeyPair holds an Ed25519 private/public key pair. Only Generate
// guarantees the public half is derived from the private half; a pair
// reconstructed from raw bytes (e.g. public-only verification) carries
// whatever the caller put in it.
type KeyPair struct {
	Private PrivateKey
	Public  PublicKey
}

// Generate creates a fresh Ed25519 keypair from crypto/rand.
func Generate() (*KeyPair, error) {
	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrKeyGeneration, err)
	}
	return &KeyPair{
		Private: PrivateKey(priv.Seed()),
		Public:  PublicKey(pub),
	}, nil
}

// VerifierFor builds a verification-only KeyPair around a public key.
// Sign will fail on it.
func VerifierFor(pub PublicKey) *KeyPair {
	return &KeyPair{Public: pub}
}

// Sign produces a 64-byte signature over message with the private key.
func (kp *KeyPair) Sign(message []byte) (Signature, error) {
	if len(kp.Private) != PrivateKeySize {
		return nil, fmt.Errorf("%w: private key is %d bytes, want %d", ErrInvalidKey, len(kp.Private), PrivateKeySize)
	}
	key := ed25519.NewKeyFromSeed(kp.Private)
	return Signature(ed25519.Sign(key, message)), nil
}

// Verify checks a signature over message against the public key.
// Returns nil on success. Side-effect-free and safe for concurrent use.
func (kp *KeyPair) Verify(message []byte, sig Signature) error {
	if len(kp.Public) != PublicKeySize {
		return fmt.Errorf("%w: public key is %d bytes, want %d", ErrInvalidKey, len(kp.Public), PublicKeySize)
	}
	if len(sig) != SignatureSize {
		return fmt.Errorf("%w: signature is %d bytes, want %d", ErrInvalidSignatureLength, len(sig), SignatureSize)
	}
	if !ed25519.Verify(ed25519.PublicKey(kp.Public), message, sig) {
		return ErrSignatureVerification
	}
	return nil
}
