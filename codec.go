package dverse

import (
	"encoding/binary"
	"fmt"

	"github.com/multiformats/go-multibase"
	"github.com/multiformats/go-multicodec"
	"github.com/multiformats/go-varint"
)

// ed25519PubTag is the uvarint encoding of the Ed25519 public key
// multicodec code, 0xED 0x01. Every DID payload starts with it.
var ed25519PubTag = func() []byte {
	buf := make([]byte, binary.MaxVarintLen64)
	n := binary.PutUvarint(buf, uint64(multicodec.Ed25519Pub))
	return buf[:n]
}()

// encodePublicKey tags key bytes with the Ed25519 multicodec and encodes
// the result as base58btc multibase text (leading 'z'). Never fails.
func encodePublicKey(pub PublicKey) string {
	buf := make([]byte, 0, len(ed25519PubTag)+len(pub))
	buf = append(buf, ed25519PubTag...)
	buf = append(buf, pub...)
	// Encode only fails for an unknown encoding constant.
	s, _ := multibase.Encode(multibase.Base58BTC, buf)
	return s
}

// decodeText reverses encodePublicKey: it checks the multibase indicator,
// decodes the base58btc body, and verifies the multicodec tag. The
// returned payload still includes the tag; the caller slices it off.
func decodeText(text string) ([]byte, error) {
	if text == "" {
		return nil, fmt.Errorf("%w: empty multibase string", ErrDecoding)
	}
	if rune(text[0]) != rune(multibase.Base58BTC) {
		return nil, fmt.Errorf("%w: indicator %q, want %q", ErrUnsupportedMultibase, text[0], byte(multibase.Base58BTC))
	}
	enc, payload, err := multibase.Decode(text)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecoding, err)
	}
	if enc != multibase.Base58BTC {
		return nil, fmt.Errorf("%w: encoding %q", ErrUnsupportedMultibase, multibase.EncodingToStr[enc])
	}
	code, n, err := varint.FromUvarint(payload)
	if err != nil || multicodec.Code(code) != multicodec.Ed25519Pub {
		return nil, fmt.Errorf("%w: payload does not start with the Ed25519 public key code", ErrUnsupportedMulticodec)
	}
	if n != len(ed25519PubTag) {
		return nil, fmt.Errorf("%w: non-minimal multicodec varint", ErrUnsupportedMulticodec)
	}
	return payload, nil
}
