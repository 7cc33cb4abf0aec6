// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Artyom Voskresensky

// Package session owns the in-memory session key established after a
// successful global-PIN entry. The key lives for the unlocked app session
// and is discarded when the app backgrounds or locks; it is never persisted.
package session

import "sync"

// SecuritySession holds the app-wide session key. Write-once-per-unlock,
// read-many, cleared on background/lock. Components receive it by injection;
// nothing reads it from ambient globals, and no component may retain a copy
// of the key beyond a single operation.
type SecuritySession struct {
	mu  sync.RWMutex
	key []byte
}

func NewSecuritySession() *SecuritySession {
	return &SecuritySession{}
}

// Acquire installs key as the current session key, replacing any previous
// one. The session keeps its own copy so the caller's slice can be reused.
func (s *SecuritySession) Acquire(key []byte) {
	cp := make([]byte, len(key))
	copy(cp, key)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.zeroLocked()
	s.key = cp
}

// Key returns a copy of the session key and true, or nil and false when the
// session is locked.
func (s *SecuritySession) Key() ([]byte, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.key == nil {
		return nil, false
	}
	cp := make([]byte, len(s.key))
	copy(cp, s.key)
	return cp, true
}

// IsActive reports whether a session key is currently held.
func (s *SecuritySession) IsActive() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.key != nil
}

// Clear zeroizes and drops the session key. Safe to call when already
// cleared.
func (s *SecuritySession) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.zeroLocked()
}

func (s *SecuritySession) zeroLocked() {
	for i := range s.key {
		s.key[i] = 0
	}
	s.key = nil
}
