package dverse

import "errors"

// Sentinel errors for every failure the identity layer can report.
// Callers branch with errors.Is; the concrete message carries detail.
var (
	// ErrKeyGeneration means the system's secure random source or key
	// derivation was unavailable. Not retryable.
	ErrKeyGeneration = errors.New("key generation failed")

	// ErrInvalidKey means held key bytes are not the fixed Ed25519 length.
	// Only reachable with a hand-constructed KeyPair.
	ErrInvalidKey = errors.New("invalid key")

	// ErrInvalidSignatureLength means the supplied signature is not 64 bytes.
	ErrInvalidSignatureLength = errors.New("invalid signature length")

	// ErrSignatureVerification means the cryptographic check rejected the
	// (message, signature, key) triple. Wrong message, wrong key, and
	// corrupted signature are indistinguishable here.
	ErrSignatureVerification = errors.New("signature verification failed")

	// ErrInvalidDIDFormat means the string does not start with did:dverse:.
	ErrInvalidDIDFormat = errors.New("invalid DID format")

	// ErrDecoding means the multibase body is not valid output of the
	// declared alphabet.
	ErrDecoding = errors.New("decoding error")

	// ErrUnsupportedMultibase means the multibase indicator is anything
	// other than base58btc's 'z'.
	ErrUnsupportedMultibase = errors.New("unsupported multibase")

	// ErrUnsupportedMulticodec means the decoded payload does not begin
	// with the Ed25519 public key tag 0xED 0x01.
	ErrUnsupportedMulticodec = errors.New("unsupported multicodec")

	// ErrInvalidKeyLength means the decoded payload carried the right tag
	// but the key material after it is not exactly 32 bytes.
	ErrInvalidKeyLength = errors.New("invalid key length")
)
