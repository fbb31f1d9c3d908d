package dverse

import (
	"context"
	"testing"
)

func TestDIDResolverValidDID(t *testing.T) {
	t.Parallel()

	kp, err := Generate()
	if err != nil {
		t.Fatal(err)
	}
	did := FromPublicKey(kp.Public)

	r := &DIDResolver{}
	identity, err := r.Resolve(context.Background(), did.String())
	if err != nil {
		t.Fatal(err)
	}
	if identity.DID != did {
		t.Fatalf("DID=%q, want %q", identity.DID, did)
	}
	if !identity.PublicKey.Equal(kp.Public) {
		t.Fatal("PublicKey mismatch")
	}
	if identity.ResolvedVia != "did" {
		t.Fatalf("ResolvedVia=%q, want did", identity.ResolvedVia)
	}
	if identity.Alias != "" {
		t.Fatalf("Alias should be empty, got %q", identity.Alias)
	}
}

func TestDIDResolverInvalidDID(t *testing.T) {
	t.Parallel()

	r := &DIDResolver{}
	if _, err := r.Resolve(context.Background(), "not-a-did"); err == nil {
		t.Fatal("expected error for invalid DID")
	}
}

func TestPinResolverByDIDAndAlias(t *testing.T) {
	t.Parallel()

	did := testDID(t)
	ps := NewPinStore()
	ps.StorePin(did, "alice", "@alice")

	r := &PinResolver{Store: ps}

	byDID, err := r.Resolve(context.Background(), did.String())
	if err != nil {
		t.Fatal(err)
	}
	if byDID.Alias != "alice" || byDID.Handle != "@alice" {
		t.Fatalf("byDID=%+v", byDID)
	}

	byAlias, err := r.Resolve(context.Background(), "alice")
	if err != nil {
		t.Fatal(err)
	}
	if byAlias.DID != did {
		t.Fatalf("DID=%q, want %q", byAlias.DID, did)
	}
	if byAlias.ResolvedVia != "pin" {
		t.Fatalf("ResolvedVia=%q, want pin", byAlias.ResolvedVia)
	}
}

func TestPinResolverUnknownIdentifier(t *testing.T) {
	t.Parallel()

	r := &PinResolver{Store: NewPinStore()}
	if _, err := r.Resolve(context.Background(), "nobody"); err == nil {
		t.Fatal("expected error for unknown identifier")
	}
}

func TestChainResolverDIDWithPinMetadata(t *testing.T) {
	t.Parallel()

	kp, err := Generate()
	if err != nil {
		t.Fatal(err)
	}
	did := FromPublicKey(kp.Public)

	ps := NewPinStore()
	ps.StorePin(did, "alice", "@alice")

	r := &ChainResolver{
		DID: &DIDResolver{},
		Pin: &PinResolver{Store: ps},
	}

	identity, err := r.Resolve(context.Background(), did.String())
	if err != nil {
		t.Fatal(err)
	}
	if !identity.PublicKey.Equal(kp.Public) {
		t.Fatal("PublicKey mismatch")
	}
	if identity.Alias != "alice" {
		t.Fatalf("Alias=%q, want alice", identity.Alias)
	}
}

func TestChainResolverAliasCrossChecksKey(t *testing.T) {
	t.Parallel()

	kp, err := Generate()
	if err != nil {
		t.Fatal(err)
	}
	did := FromPublicKey(kp.Public)

	ps := NewPinStore()
	ps.StorePin(did, "alice", "@alice")

	r := &ChainResolver{
		DID: &DIDResolver{},
		Pin: &PinResolver{Store: ps},
	}

	identity, err := r.Resolve(context.Background(), "alice")
	if err != nil {
		t.Fatal(err)
	}
	if !identity.PublicKey.Equal(kp.Public) {
		t.Fatal("cross-checked key mismatch")
	}
}

func TestChainResolverAliasWithInvalidPinnedDID(t *testing.T) {
	t.Parallel()

	ps := NewPinStore()
	// A pin can hold an undecodable DID (e.g. imported by hand); alias
	// resolution must then fail the cross-check.
	ps.Pins["did:dverse:xjunk"] = &Pin{Alias: "mallory"}
	ps.Aliases["mallory"] = "did:dverse:xjunk"

	r := &ChainResolver{
		DID: &DIDResolver{},
		Pin: &PinResolver{Store: ps},
	}

	if _, err := r.Resolve(context.Background(), "mallory"); err == nil {
		t.Fatal("expected cross-check failure")
	}
}
