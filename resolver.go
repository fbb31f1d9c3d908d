package dverse

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// Identity holds resolved identity information for a peer.
type Identity struct {
	DID         DID
	Alias       string
	Handle      string // @alice
	PublicKey   PublicKey
	ResolvedAt  time.Time
	ResolvedVia string // "did", "pin"
}

// Resolver resolves an identifier to an Identity.
type Resolver interface {
	Resolve(ctx context.Context, identifier string) (*Identity, error)
}

// DIDResolver extracts the public key from a did:dverse string.
// No lookup required; the DID is self-certifying.
type DIDResolver struct{}

func (r *DIDResolver) Resolve(_ context.Context, identifier string) (*Identity, error) {
	did := FromString(identifier)
	pub, err := did.PublicKey()
	if err != nil {
		return nil, fmt.Errorf("DIDResolver: %w", err)
	}
	return &Identity{
		DID:         did,
		PublicKey:   pub,
		ResolvedAt:  time.Now().UTC(),
		ResolvedVia: "did",
	}, nil
}

// PinResolver looks up identity from the local TOFU pin store.
type PinResolver struct {
	Store *PinStore
}

func (r *PinResolver) Resolve(_ context.Context, identifier string) (*Identity, error) {
	// Try direct DID lookup.
	if pin, ok := r.Store.Pins[identifier]; ok {
		return &Identity{
			DID:         FromString(identifier),
			Alias:       pin.Alias,
			Handle:      pin.Handle,
			ResolvedAt:  time.Now().UTC(),
			ResolvedVia: "pin",
		}, nil
	}
	// Try reverse lookup by alias.
	if did, ok := r.Store.Aliases[identifier]; ok {
		pin, exists := r.Store.Pins[did]
		if !exists {
			return nil, fmt.Errorf("PinResolver: alias %q maps to DID %q not in pins", identifier, did)
		}
		return &Identity{
			DID:         FromString(did),
			Alias:       pin.Alias,
			Handle:      pin.Handle,
			ResolvedAt:  time.Now().UTC(),
			ResolvedVia: "pin",
		}, nil
	}
	return nil, fmt.Errorf("PinResolver: no pin for %q", identifier)
}

// ChainResolver dispatches resolution by identifier format. did:dverse
// identifiers decode locally via DIDResolver; anything else is treated
// as an alias and looked up in the pin store. When a pinned alias
// resolves, the public key is cross-checked by decoding the pinned DID.
type ChainResolver struct {
	DID *DIDResolver
	Pin *PinResolver
}

func (r *ChainResolver) Resolve(ctx context.Context, identifier string) (*Identity, error) {
	if strings.HasPrefix(identifier, DIDPrefix) {
		identity, err := r.DID.Resolve(ctx, identifier)
		if err != nil {
			return nil, err
		}
		// Supplement with pin metadata if available.
		if r.Pin != nil {
			if pinIdentity, pinErr := r.Pin.Resolve(ctx, identifier); pinErr == nil {
				identity.Alias = pinIdentity.Alias
				identity.Handle = pinIdentity.Handle
			}
		}
		return identity, nil
	}

	if r.Pin == nil {
		return nil, fmt.Errorf("ChainResolver: no pin resolver for alias %q", identifier)
	}
	identity, err := r.Pin.Resolve(ctx, identifier)
	if err != nil {
		return nil, err
	}
	// Cross-check: extract public key from the pinned DID.
	pub, err := identity.DID.PublicKey()
	if err != nil {
		return nil, fmt.Errorf("ChainResolver: pinned DID invalid: %w", err)
	}
	identity.PublicKey = pub
	return identity, nil
}
