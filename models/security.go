// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Artyom Voskresensky

package models

// SecurityRecord holds everything needed to re-derive and validate a
// PIN-derived key: the salt (plain), the verifier (ciphertext of a known
// marker under the derived key), and the PIN length for input UIs. The PIN
// and the key themselves are never stored.
type SecurityRecord struct {
	Salt      []byte   `json:"salt"`
	Verifier  Envelope `json:"verifier"`
	PINLength int      `json:"pin_length"`
}

// GlobalSecurityConfig is the single installation-wide security record for
// the app PIN. Created by first-run setup, replaced only by explicit reset.
type GlobalSecurityConfig struct {
	SecurityRecord
	CreatedAtUnix int64 `json:"created_at_unix"`
}
