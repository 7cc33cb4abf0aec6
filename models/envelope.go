// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Artyom Voskresensky

package models

// Envelope is a self-contained authenticated-encryption record. Both fields
// are standard base64 so the envelope crosses the persistence and transport
// boundaries as plain text. The salt is not re-stored here: it lives with the
// verifier that owns the key (global config or the note's security record).
type Envelope struct {
	CipherText string `json:"cipher_text"`
	IV         string `json:"iv"`
}
