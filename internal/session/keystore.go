package session

import "sync"

// CredentialCache is the optional bridge to a device keystore (biometric
// unlock). The lock subsystem consults it as a pure optimization: with the
// no-op cache every flow falls back to manual PIN entry and behaves
// identically.
type CredentialCache interface {
	// GetGlobalSecret returns the cached global PIN and true, or "" and
	// false when nothing is cached.
	GetGlobalSecret() (string, bool)
	// SetGlobalSecret caches the global PIN after a successful manual entry.
	SetGlobalSecret(secret string)
	// Forget drops the cached secret (PIN change, explicit reset).
	Forget()
}

// NopCredentialCache is the baseline cache for devices without a keystore.
type NopCredentialCache struct{}

func (NopCredentialCache) GetGlobalSecret() (string, bool) { return "", false }
func (NopCredentialCache) SetGlobalSecret(string)          {}
func (NopCredentialCache) Forget()                         {}

// MemoryCredentialCache keeps the secret in process memory. Used in tests
// and on platforms where the OS keystore bridge is unavailable but the user
// opted into convenience unlock.
type MemoryCredentialCache struct {
	mu     sync.Mutex
	secret string
	set    bool
}

func NewMemoryCredentialCache() *MemoryCredentialCache {
	return &MemoryCredentialCache{}
}

func (c *MemoryCredentialCache) GetGlobalSecret() (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.secret, c.set
}

func (c *MemoryCredentialCache) SetGlobalSecret(secret string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.secret = secret
	c.set = true
}

func (c *MemoryCredentialCache) Forget() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.secret = ""
	c.set = false
}
