package dverseconfig

import (
	"crypto/ed25519"
	"encoding/pem"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dversehq/dverse"
)

// SaveKeypair writes a keypair to keysDir as PEM files named by identity.
// Private key: 0600. Public key: 0644.
func SaveKeypair(keysDir, name string, kp *dverse.KeyPair) error {
	base := nameToFileBase(name)
	keyPath := filepath.Join(keysDir, base+".signing.key")
	pubPath := filepath.Join(keysDir, base+".signing.pub")

	if err := writePrivateKey(keyPath, kp.Private); err != nil {
		return err
	}
	return writePublicKey(pubPath, kp.Public)
}

// SigningKeyPath returns the private key path SaveKeypair uses for an
// identity name.
func SigningKeyPath(keysDir, name string) string {
	return filepath.Join(keysDir, nameToFileBase(name)+".signing.key")
}

// LoadSigningKey reads an Ed25519 private key seed from a PEM file.
func LoadSigningKey(path string) (dverse.PrivateKey, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	block, _ := pem.Decode(data)
	if block == nil {
		return nil, fmt.Errorf("no PEM block in %s", path)
	}
	if block.Type != "ED25519 PRIVATE KEY" {
		return nil, fmt.Errorf("unexpected PEM type %q in %s", block.Type, path)
	}
	if len(block.Bytes) != ed25519.SeedSize {
		return nil, fmt.Errorf("invalid seed size %d in %s", len(block.Bytes), path)
	}
	return dverse.PrivateKey(block.Bytes), nil
}

// LoadPublicKey reads an Ed25519 public key from a PEM file.
func LoadPublicKey(path string) (dverse.PublicKey, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	block, _ := pem.Decode(data)
	if block == nil {
		return nil, fmt.Errorf("no PEM block in %s", path)
	}
	if block.Type != "ED25519 PUBLIC KEY" {
		return nil, fmt.Errorf("unexpected PEM type %q in %s", block.Type, path)
	}
	if len(block.Bytes) != ed25519.PublicKeySize {
		return nil, fmt.Errorf("invalid public key size %d in %s", len(block.Bytes), path)
	}
	return dverse.PublicKey(block.Bytes), nil
}

// LoadKeyPair reads a private key seed and rebuilds the full pair.
func LoadKeyPair(path string) (*dverse.KeyPair, error) {
	priv, err := LoadSigningKey(path)
	if err != nil {
		return nil, err
	}
	key := ed25519.NewKeyFromSeed(priv)
	return &dverse.KeyPair{
		Private: priv,
		Public:  dverse.PublicKey(key.Public().(ed25519.PublicKey)),
	}, nil
}

func writePrivateKey(path string, priv dverse.PrivateKey) error {
	data := pem.EncodeToMemory(&pem.Block{
		Type:  "ED25519 PRIVATE KEY",
		Bytes: priv,
	})
	if err := atomicWriteFile(path, data); err != nil {
		return fmt.Errorf("write private key %s: %w", path, err)
	}
	return nil
}

func writePublicKey(path string, pub dverse.PublicKey) error {
	data := pem.EncodeToMemory(&pem.Block{
		Type:  "ED25519 PUBLIC KEY",
		Bytes: pub,
	})
	if err := atomicWriteFileMode(path, data, 0o644); err != nil {
		return fmt.Errorf("write public key %s: %w", path, err)
	}
	return nil
}

// nameToFileBase converts an identity name (e.g. "work/alice") to a
// filesystem-safe base name (e.g. "work-alice").
func nameToFileBase(name string) string {
	name = strings.ReplaceAll(name, "/", "-")
	return strings.ReplaceAll(name, ":", "-")
}

func atomicWriteFile(path string, data []byte) error {
	return atomicWriteFileMode(path, data, 0o600)
}

// atomicWriteFileMode writes via a temp file in the target directory and
// renames it into place. Parent directories are created with 0700.
func atomicWriteFileMode(path string, data []byte, mode os.FileMode) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, ".tmp.*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmpName, mode); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}
