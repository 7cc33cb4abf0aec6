package crypto

import "github.com/avoskresensky/go-note-locker/models"

//go:generate mockgen -source=interfaces.go -destination=../mock/keychain_service_mock.go -package=mock

// KeyChainService owns every cryptographic primitive of the note lock
// subsystem. It knows nothing about storage, sessions, or notes as entities;
// its only job is to turn PINs into keys and payloads into envelopes.
//
// Scheme:
//
//	record      = CreateVerifier(pin)                       (setup)
//	key         = CheckSecret(pin, record.Salt, record.Verifier)  (auth)
//	envelope    = EncryptPayload(payload, key)              (lock)
//	payload     = DecryptPayload(envelope, key)             (open)
type KeyChainService interface {
	// GenerateSalt produces a fresh random salt (16 bytes / 128 bits).
	// The salt is not a secret; it is persisted in the clear alongside the
	// verifier. A fresh salt per verifier keeps equal PINs from producing
	// equal keys.
	GenerateSalt() ([]byte, error)

	// DeriveKey stretches secret and salt into a 256-bit key using a slow
	// KDF. Deterministic for fixed inputs; previously locked notes depend
	// on that. The KDF parameters are fixed constants of this build.
	DeriveKey(secret string, salt []byte) []byte

	// CreateVerifier generates a fresh salt, derives a key from secret,
	// and seals a fixed marker under that key. The returned record is safe
	// to persist: it contains neither the secret nor the key.
	CreateVerifier(secret string) (models.SecurityRecord, error)

	// CheckSecret re-derives the key from secret and salt and tries to
	// open the verifier. On success it returns the derived key. Every
	// failure mode (wrong secret, corrupted verifier, malformed fields)
	// returns ErrAuthFailed, with no distinguishing detail.
	CheckSecret(secret string, salt []byte, verifier models.Envelope) ([]byte, error)

	// EncryptPayload seals the plaintext payload under key with a fresh
	// random nonce, producing a self-contained envelope with base64
	// ciphertext and IV fields.
	EncryptPayload(payload models.NotePayload, key []byte) (models.Envelope, error)

	// DecryptPayload opens an envelope produced by EncryptPayload. Any
	// failure (wrong key, malformed IV, authentication-tag mismatch)
	// returns ErrDecryptionFailed. A successful return is the only
	// correctness check for "is this the right key", so it never falsely
	// succeeds.
	DecryptPayload(env models.Envelope, key []byte) (models.NotePayload, error)
}
