//go:build !zeni_release

package zeni

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMutex_RelockFromOwnerAsserts(t *testing.T) {
	m := NewMutex()
	require.NoError(t, m.Lock())

	defer func() {
		r := recover()
		require.NotNil(t, r, "expected relock to panic")
		a, ok := r.(*LockAssertion)
		require.True(t, ok, "panic value %T", r)
		assert.Equal(t, "lock", a.Operation)
		assert.Equal(t, a.Owner, a.Caller)
		require.NoError(t, m.Unlock())
	}()
	_ = m.Lock()
}

func TestMutex_UnlockFromOtherGoroutineAsserts(t *testing.T) {
	m := NewMutex()
	require.NoError(t, m.Lock())

	got := make(chan any, 1)
	go func() {
		defer func() { got <- recover() }()
		_ = m.Unlock()
	}()
	r := <-got
	a, ok := r.(*LockAssertion)
	require.True(t, ok, "panic value %T", r)
	assert.Equal(t, "unlock", a.Operation)
	assert.NotEqual(t, a.Owner, a.Caller)
	require.NoError(t, m.Unlock())
}

func TestGoroutineID_DistinctPerGoroutine(t *testing.T) {
	here := goroutineID()
	there := make(chan uint64)
	go func() { there <- goroutineID() }()
	assert.NotZero(t, here)
	assert.NotEqual(t, here, <-there)
}
