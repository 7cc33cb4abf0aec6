// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Artyom Voskresensky

package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"encoding/json"
	"io"

	"golang.org/x/crypto/argon2"

	"github.com/avoskresensky/go-note-locker/models"
)

// verifierMarker is the fixed plaintext sealed into every verifier. Opening
// the verifier and matching this constant is what proves a PIN correct.
// Changing it invalidates every stored verifier, so it never changes.
const verifierMarker = "note-locker/v1 pin ok"

const saltLength = 16

// keyChainService is the private implementation of [KeyChainService].
type keyChainService struct {
	// Argon2id tuning parameters. Stored in the struct so they can be
	// adjusted per deployment target, but note that persisted envelopes
	// carry no version field: changing these on an existing installation
	// makes old notes undecryptable.
	argonTime    uint32
	argonMemory  uint32
	argonThreads uint8
	argonKeyLen  uint32
}

// NewKeyChainService constructs a [KeyChainService] with Argon2id parameters
// sized for short numeric PINs (4-8 digits), where the KDF cost is the only
// real brute-force barrier:
//   - time cost:   3 iterations
//   - memory cost: 64 MiB
//   - parallelism: 4 threads
//   - key length:  32 bytes (256 bits)
func NewKeyChainService() KeyChainService {
	return &keyChainService{
		argonTime:    3,
		argonMemory:  64 * 1024, // 64 MiB
		argonThreads: 4,
		argonKeyLen:  32, // 256 bits
	}
}

// GenerateSalt implements [KeyChainService]. It reads 16 random bytes from
// the OS CSPRNG. Returns an error if the random read fails.
func (k *keyChainService) GenerateSalt() ([]byte, error) {
	salt := make([]byte, saltLength)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return nil, err
	}
	return salt, nil
}

// DeriveKey implements [KeyChainService]. It derives a 256-bit key from
// secret and salt using Argon2id with the parameters stored in the receiver.
// A malformed salt length is a programming error upstream, not a condition
// the caller is expected to recover from, so no validation happens here.
func (k *keyChainService) DeriveKey(secret string, salt []byte) []byte {
	return argon2.IDKey(
		[]byte(secret),
		salt,
		k.argonTime,
		k.argonMemory,
		k.argonThreads,
		k.argonKeyLen,
	)
}

// CreateVerifier implements [KeyChainService]. It generates a fresh salt,
// derives the key, and seals the fixed marker under it. The secret itself is
// never part of the returned record.
func (k *keyChainService) CreateVerifier(secret string) (models.SecurityRecord, error) {
	salt, err := k.GenerateSalt()
	if err != nil {
		return models.SecurityRecord{}, err
	}

	key := k.DeriveKey(secret, salt)
	env, err := k.seal([]byte(verifierMarker), key)
	if err != nil {
		return models.SecurityRecord{}, err
	}

	return models.SecurityRecord{
		Salt:      salt,
		Verifier:  env,
		PINLength: len(secret),
	}, nil
}

// CheckSecret implements [KeyChainService]. It re-derives the key and tries
// to open the verifier. All failures collapse into [ErrAuthFailed]: callers
// must not be able to tell a wrong secret from a corrupted verifier, and no
// low-level crypto error ever escapes.
func (k *keyChainService) CheckSecret(secret string, salt []byte, verifier models.Envelope) ([]byte, error) {
	key := k.DeriveKey(secret, salt)

	marker, err := k.open(verifier, key)
	if err != nil {
		return nil, ErrAuthFailed
	}
	if subtle.ConstantTimeCompare(marker, []byte(verifierMarker)) != 1 {
		return nil, ErrAuthFailed
	}

	return key, nil
}

// EncryptPayload implements [KeyChainService]. It marshals the payload to
// JSON and seals it under key with AES-256-GCM and a fresh random nonce.
func (k *keyChainService) EncryptPayload(payload models.NotePayload, key []byte) (models.Envelope, error) {
	plaintext, err := json.Marshal(payload)
	if err != nil {
		return models.Envelope{}, err
	}
	return k.seal(plaintext, key)
}

// DecryptPayload implements [KeyChainService]. It opens the envelope and
// unmarshals the plaintext back into a payload. Every failure returns
// [ErrDecryptionFailed]; GCM authentication guarantees this never falsely
// succeeds under a wrong key.
func (k *keyChainService) DecryptPayload(env models.Envelope, key []byte) (models.NotePayload, error) {
	plaintext, err := k.open(env, key)
	if err != nil {
		return models.NotePayload{}, ErrDecryptionFailed
	}

	var payload models.NotePayload
	if err := json.Unmarshal(plaintext, &payload); err != nil {
		return models.NotePayload{}, ErrDecryptionFailed
	}

	return payload, nil
}

// seal performs AES-256-GCM encryption with a fresh 12-byte nonce. The nonce
// travels in the envelope's IV field rather than being prepended to the
// ciphertext: the persisted blob format is exactly {cipher_text, iv}.
func (k *keyChainService) seal(plaintext, key []byte) (models.Envelope, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return models.Envelope{}, err
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return models.Envelope{}, err
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return models.Envelope{}, err
	}

	ct := gcm.Seal(nil, nonce, plaintext, nil)
	return models.Envelope{
		CipherText: base64.StdEncoding.EncodeToString(ct),
		IV:         base64.StdEncoding.EncodeToString(nonce),
	}, nil
}

// open reverses seal. The returned error is raw; callers map it to a domain
// sentinel before it crosses a package boundary.
func (k *keyChainService) open(env models.Envelope, key []byte) ([]byte, error) {
	ct, err := base64.StdEncoding.DecodeString(env.CipherText)
	if err != nil {
		return nil, err
	}
	nonce, err := base64.StdEncoding.DecodeString(env.IV)
	if err != nil {
		return nil, err
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}
	if len(nonce) != gcm.NonceSize() {
		return nil, ErrDecryptionFailed
	}

	return gcm.Open(nil, nonce, ct, nil)
}
