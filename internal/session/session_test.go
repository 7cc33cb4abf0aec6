package session

import (
	"bytes"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSecuritySession_AcquireAndKey(t *testing.T) {
	s := NewSecuritySession()
	require.False(t, s.IsActive())

	_, ok := s.Key()
	require.False(t, ok)

	key := []byte{1, 2, 3, 4}
	s.Acquire(key)
	require.True(t, s.IsActive())

	got, ok := s.Key()
	require.True(t, ok)
	assert.Equal(t, []byte{1, 2, 3, 4}, got)
}

func TestSecuritySession_CopiesAreIndependent(t *testing.T) {
	s := NewSecuritySession()
	key := []byte{9, 9, 9}
	s.Acquire(key)

	// mutating the caller's slice must not change the session key
	key[0] = 0
	got, _ := s.Key()
	assert.Equal(t, byte(9), got[0])

	// mutating a returned copy must not change the session key either
	got[1] = 0
	again, _ := s.Key()
	assert.Equal(t, byte(9), again[1])
}

func TestSecuritySession_ClearDropsKey(t *testing.T) {
	s := NewSecuritySession()
	s.Acquire([]byte{5, 5, 5})

	s.Clear()
	assert.False(t, s.IsActive())
	_, ok := s.Key()
	assert.False(t, ok)

	// Clear on an already-cleared session is a no-op
	s.Clear()
	assert.False(t, s.IsActive())
}

func TestSecuritySession_AcquireReplacesKey(t *testing.T) {
	s := NewSecuritySession()
	s.Acquire([]byte{1})
	s.Acquire([]byte{2})

	got, ok := s.Key()
	require.True(t, ok)
	assert.True(t, bytes.Equal(got, []byte{2}))
}

func TestSecuritySession_ConcurrentAccess(t *testing.T) {
	s := NewSecuritySession()
	var wg sync.WaitGroup

	for i := 0; i < 16; i++ {
		wg.Add(3)
		go func() { defer wg.Done(); s.Acquire([]byte{1, 2, 3}) }()
		go func() { defer wg.Done(); s.Key() }()
		go func() { defer wg.Done(); s.Clear() }()
	}
	wg.Wait()
}

func TestMemoryCredentialCache(t *testing.T) {
	c := NewMemoryCredentialCache()

	_, ok := c.GetGlobalSecret()
	require.False(t, ok)

	c.SetGlobalSecret("1234")
	got, ok := c.GetGlobalSecret()
	require.True(t, ok)
	assert.Equal(t, "1234", got)

	c.Forget()
	_, ok = c.GetGlobalSecret()
	assert.False(t, ok)
}

func TestNopCredentialCache_AlwaysEmpty(t *testing.T) {
	var c NopCredentialCache
	c.SetGlobalSecret("1234")
	_, ok := c.GetGlobalSecret()
	assert.False(t, ok)
}
