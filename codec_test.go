package dverse

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestEd25519PubTagBytes(t *testing.T) {
	t.Parallel()

	// The uvarint encoding of the Ed25519 public key code, fixed by the
	// multicodec table.
	if !bytes.Equal(ed25519PubTag, []byte{0xed, 0x01}) {
		t.Fatalf("tag=%x, want ed01", ed25519PubTag)
	}
}

func TestEncodePublicKeyUsesBase58BTC(t *testing.T) {
	t.Parallel()

	kp, err := Generate()
	if err != nil {
		t.Fatal(err)
	}
	s := encodePublicKey(kp.Public)
	if !strings.HasPrefix(s, "z") {
		t.Fatalf("encoded text %q does not start with the base58btc indicator", s)
	}
}

func TestDecodeTextReturnsTaggedPayload(t *testing.T) {
	t.Parallel()

	kp, err := Generate()
	if err != nil {
		t.Fatal(err)
	}
	payload, err := decodeText(encodePublicKey(kp.Public))
	if err != nil {
		t.Fatalf("decodeText: %v", err)
	}
	if !bytes.Equal(payload[:2], ed25519PubTag) {
		t.Fatalf("payload tag=%x, want %x", payload[:2], ed25519PubTag)
	}
	if !bytes.Equal(payload[2:], kp.Public) {
		t.Fatal("payload key bytes differ from input")
	}
}

func TestDecodeTextEmptyString(t *testing.T) {
	t.Parallel()

	_, err := decodeText("")
	if !errors.Is(err, ErrDecoding) {
		t.Fatalf("err=%v, want ErrDecoding", err)
	}
}
