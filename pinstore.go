package dverse

import (
	"errors"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// PinResult describes the outcome of a TOFU pin check.
type PinResult string

const (
	PinOK       PinResult = "ok"       // DID matches stored pin.
	PinNew      PinResult = "new"      // No pin existed; caller should store one.
	PinMismatch PinResult = "mismatch" // DID differs from stored pin.
)

// Pin records a peer's TOFU-pinned identity.
type Pin struct {
	Alias       string `yaml:"alias"`
	Handle      string `yaml:"handle,omitempty"`
	Fingerprint string `yaml:"fingerprint,omitempty"`
	FirstSeen   string `yaml:"first_seen"`
	LastSeen    string `yaml:"last_seen"`
}

// PinStore manages TOFU identity pins for known peers. Pins are keyed
// by DID. The Aliases map is a reverse index from alias to DID for the
// identity-mismatch check.
type PinStore struct {
	Pins    map[string]*Pin   `yaml:"pins"`
	Aliases map[string]string `yaml:"aliases"`
}

// NewPinStore returns an empty pin store.
func NewPinStore() *PinStore {
	return &PinStore{
		Pins:    make(map[string]*Pin),
		Aliases: make(map[string]string),
	}
}

// LoadPinStore reads a pin store from disk. Returns an empty store if
// the file does not exist.
func LoadPinStore(path string) (*PinStore, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return NewPinStore(), nil
		}
		return nil, err
	}
	var ps PinStore
	if err := yaml.Unmarshal(data, &ps); err != nil {
		return nil, err
	}
	if ps.Pins == nil {
		ps.Pins = make(map[string]*Pin)
	}
	if ps.Aliases == nil {
		ps.Aliases = make(map[string]string)
	}
	return &ps, nil
}

// Save writes the pin store to disk atomically. Creates parent
// directories if needed. The file is written with 0600 permissions.
func (ps *PinStore) Save(path string) error {
	data, err := yaml.Marshal(ps)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return err
	}
	tmp := path + ".tmp"
	defer os.Remove(tmp)
	if err := os.WriteFile(tmp, data, 0600); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

// CheckPin checks whether a DID matches the stored pin for an alias.
// If no pin exists for the alias, returns PinNew. If the stored DID
// matches, returns PinOK. If it differs, returns PinMismatch.
func (ps *PinStore) CheckPin(alias string, did DID) PinResult {
	pinnedDID, ok := ps.Aliases[alias]
	if !ok {
		return PinNew
	}
	if pinnedDID == string(did) {
		return PinOK
	}
	return PinMismatch
}

// StorePin records or updates a TOFU pin. If a pin for this DID already
// exists, only last_seen and mutable metadata are updated. Otherwise a
// new pin is created and the reverse index is updated. The fingerprint
// is recorded when the DID decodes; an undecodable DID is still pinned,
// just without one.
func (ps *PinStore) StorePin(did DID, alias, handle string) {
	now := time.Now().UTC().Format(time.RFC3339)
	if existing, ok := ps.Pins[string(did)]; ok {
		if existing.Alias != alias {
			delete(ps.Aliases, existing.Alias)
			ps.Aliases[alias] = string(did)
			existing.Alias = alias
		}
		existing.LastSeen = now
		existing.Handle = handle
		return
	}
	pin := &Pin{
		Alias:     alias,
		Handle:    handle,
		FirstSeen: now,
		LastSeen:  now,
	}
	if pub, err := did.PublicKey(); err == nil {
		pin.Fingerprint = pub.Fingerprint()
	}
	ps.Pins[string(did)] = pin
	ps.Aliases[alias] = string(did)
}
