// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Artyom Voskresensky

package models

// LockMode names the key source protecting a locked note.
type LockMode string

const (
	// LockModeNone marks an unlocked note.
	LockModeNone LockMode = ""
	// LockModeGlobal marks a note protected by the app-wide PIN-derived
	// session key.
	LockModeGlobal LockMode = "global"
	// LockModeCustom marks a note protected by its own PIN, unrelated to
	// the global session.
	LockModeCustom LockMode = "custom"
)

// LockState is the tagged union of a note's protection state. Security is
// non-nil exactly when Mode is [LockModeCustom]; global-locked notes rely on
// the installation-wide [GlobalSecurityConfig] instead.
type LockState struct {
	Mode     LockMode        `json:"mode,omitempty"`
	Security *SecurityRecord `json:"security,omitempty"`
}

// Unlocked returns the lock state of a plain note.
func Unlocked() LockState {
	return LockState{Mode: LockModeNone}
}

// GlobalLocked returns the lock state of a note protected by the session key.
func GlobalLocked() LockState {
	return LockState{Mode: LockModeGlobal}
}

// CustomLocked returns the lock state of a note protected by its own PIN.
func CustomLocked(sec SecurityRecord) LockState {
	return LockState{Mode: LockModeCustom, Security: &sec}
}
