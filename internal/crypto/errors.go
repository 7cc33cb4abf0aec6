package crypto

import "errors"

var (
	// ErrAuthFailed means the supplied secret did not validate against a
	// verifier. Wrong PIN and corrupted verifier are deliberately
	// indistinguishable.
	ErrAuthFailed = errors.New("authentication failed")

	// ErrDecryptionFailed means an envelope could not be opened: wrong
	// key, malformed fields, or a tampered ciphertext.
	ErrDecryptionFailed = errors.New("decryption failed")
)
