package dverse

import (
	"fmt"
	"strings"
)

// DIDPrefix is the method prefix of every dverse DID. No other method
// is accepted.
const DIDPrefix = "did:dverse:"

// DID is a did:dverse identifier. Construction performs no validation;
// the string is checked when PublicKey is called. A DID can be held,
// compared, and transmitted without ever being decoded.
type DID string

// FromPublicKey encodes a public key as a did:dverse DID. Pure: the
// same key always yields the same DID, and it never fails.
func FromPublicKey(pub PublicKey) DID {
	return DID(DIDPrefix + encodePublicKey(pub))
}

// FromString wraps an arbitrary string as a DID without validating it.
func FromString(s string) DID {
	return DID(s)
}

func (d DID) String() string {
	return string(d)
}

// PublicKey decodes the DID back to the 32-byte public key it encodes.
// The prefix, multibase indicator, base58 body, multicodec tag, and key
// length are each checked; any mismatch returns a distinct error.
func (d DID) PublicKey() (PublicKey, error) {
	s := string(d)
	if !strings.HasPrefix(s, DIDPrefix) {
		return nil, fmt.Errorf("%w: missing prefix %q", ErrInvalidDIDFormat, DIDPrefix)
	}
	payload, err := decodeText(s[len(DIDPrefix):])
	if err != nil {
		return nil, err
	}
	key := payload[len(ed25519PubTag):]
	if len(key) != PublicKeySize {
		return nil, fmt.Errorf("%w: decoded key is %d bytes, want %d", ErrInvalidKeyLength, len(key), PublicKeySize)
	}
	return PublicKey(key), nil
}
