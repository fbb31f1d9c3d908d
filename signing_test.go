package dverse

import (
	"encoding/base64"
	"strings"
	"testing"
)

func testEnvelope(t *testing.T, kp *KeyPair) *MessageEnvelope {
	t.Helper()
	return &MessageEnvelope{
		From:      "alice",
		FromDID:   FromPublicKey(kp.Public).String(),
		To:        "bob",
		ToDID:     "did:dverse:z6Mkf5rGMoatrSj1f4CyvuHBeXJELe9RPdzo2PKGNCKVtZxP",
		Type:      "mail",
		Subject:   "task complete",
		Body:      "results attached",
		Timestamp: "2026-08-30T15:30:00Z",
	}
}

func TestSignVerifyEnvelopeRoundtrip(t *testing.T) {
	t.Parallel()

	kp, err := Generate()
	if err != nil {
		t.Fatal(err)
	}
	env := testEnvelope(t, kp)

	sig, err := SignMessage(kp, env)
	if err != nil {
		t.Fatalf("SignMessage: %v", err)
	}

	// Signature should be valid base64 no-padding.
	if _, err := base64.RawStdEncoding.DecodeString(sig); err != nil {
		t.Fatalf("signature is not valid base64 no-padding: %v", err)
	}

	env.Signature = sig
	env.SigningKeyID = env.FromDID

	status, err := VerifyMessage(env)
	if err != nil {
		t.Fatalf("VerifyMessage: %v", err)
	}
	if status != Verified {
		t.Fatalf("status=%q, want %q", status, Verified)
	}
}

func TestSignVerifyEnvelopeWithMessageID(t *testing.T) {
	t.Parallel()

	kp, err := Generate()
	if err != nil {
		t.Fatal(err)
	}
	env := testEnvelope(t, kp)
	env.MessageID = "msg-0042"

	sig, err := SignMessage(kp, env)
	if err != nil {
		t.Fatalf("SignMessage: %v", err)
	}
	env.Signature = sig

	status, err := VerifyMessage(env)
	if err != nil {
		t.Fatalf("VerifyMessage: %v", err)
	}
	if status != Verified {
		t.Fatalf("status=%q, want %q", status, Verified)
	}
}

func TestVerifyEnvelopeTamperedBody(t *testing.T) {
	t.Parallel()

	kp, err := Generate()
	if err != nil {
		t.Fatal(err)
	}
	env := testEnvelope(t, kp)

	sig, err := SignMessage(kp, env)
	if err != nil {
		t.Fatal(err)
	}
	env.Signature = sig
	env.Body = "tampered body"

	status, _ := VerifyMessage(env)
	if status != Failed {
		t.Fatalf("status=%q, want %q", status, Failed)
	}
}

func TestVerifyEnvelopeMissingSignature(t *testing.T) {
	t.Parallel()

	kp, err := Generate()
	if err != nil {
		t.Fatal(err)
	}
	env := testEnvelope(t, kp)

	status, err := VerifyMessage(env)
	if err != nil {
		t.Fatalf("VerifyMessage: %v", err)
	}
	if status != Unverified {
		t.Fatalf("status=%q, want %q", status, Unverified)
	}
}

func TestVerifyEnvelopeForeignDIDMethod(t *testing.T) {
	t.Parallel()

	env := &MessageEnvelope{
		FromDID:   "did:key:z6MkhaXgBZDvotDkL5257faiztiGiC2QtKLGpbnnEGta2doK",
		Body:      "hello",
		Signature: "AAAA",
	}
	status, err := VerifyMessage(env)
	if err != nil {
		t.Fatalf("VerifyMessage: %v", err)
	}
	if status != Unverified {
		t.Fatalf("status=%q, want %q", status, Unverified)
	}
}

func TestVerifyEnvelopeMalformedDID(t *testing.T) {
	t.Parallel()

	env := &MessageEnvelope{
		FromDID:   "did:dverse:xnotbase58btc",
		Body:      "hello",
		Signature: "AAAA",
	}
	status, err := VerifyMessage(env)
	if status != Failed {
		t.Fatalf("status=%q, want %q", status, Failed)
	}
	if err == nil {
		t.Fatal("expected error describing the malformed DID")
	}
}

func TestVerifyEnvelopeSigningKeyMismatch(t *testing.T) {
	t.Parallel()

	kp, err := Generate()
	if err != nil {
		t.Fatal(err)
	}
	env := testEnvelope(t, kp)

	sig, err := SignMessage(kp, env)
	if err != nil {
		t.Fatal(err)
	}
	env.Signature = sig
	env.SigningKeyID = "did:dverse:z6Mkf5rGMoatrSj1f4CyvuHBeXJELe9RPdzo2PKGNCKVtZxP"

	status, _ := VerifyMessage(env)
	if status != Failed {
		t.Fatalf("status=%q, want %q", status, Failed)
	}
}

func TestCanonicalJSONFieldOrder(t *testing.T) {
	t.Parallel()

	env := &MessageEnvelope{
		From:      "alice",
		FromDID:   "did:dverse:zAAA",
		To:        "bob",
		ToDID:     "did:dverse:zBBB",
		Type:      "mail",
		Subject:   "s",
		Body:      "b",
		Timestamp: "2026-08-30T15:30:00Z",
	}

	got := canonicalJSON(env)
	want := `{"body":"b","from":"alice","from_did":"did:dverse:zAAA","subject":"s","timestamp":"2026-08-30T15:30:00Z","to":"bob","to_did":"did:dverse:zBBB","type":"mail"}`
	if got != want {
		t.Fatalf("canonicalJSON=\n%s\nwant\n%s", got, want)
	}
}

func TestCanonicalJSONEscaping(t *testing.T) {
	t.Parallel()

	env := &MessageEnvelope{Body: "line1\nline2\t\"quoted\" \\slash\x01"}
	got := canonicalJSON(env)
	if !strings.Contains(got, `line1\nline2\t\"quoted\" \\slash\u0001`) {
		t.Fatalf("escaping wrong: %s", got)
	}
}
