package database

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func TestManager_ConcurrentCallersShareOneAttempt(t *testing.T) {
	var opens atomic.Int32
	gate := make(chan struct{})

	m := NewManagerWithOpener(func() (*gorm.DB, error) {
		opens.Add(1)
		<-gate
		return gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	})

	const callers = 16
	results := make([]error, callers)
	var wg sync.WaitGroup
	wg.Add(callers)
	for i := 0; i < callers; i++ {
		go func(i int) {
			defer wg.Done()
			_, results[i] = m.EnsureConnected()
		}(i)
	}

	close(gate)
	wg.Wait()

	require.EqualValues(t, 1, opens.Load(), "concurrent callers must share one connection attempt")
	for _, err := range results {
		require.NoError(t, err)
	}
}

func TestManager_MemoizesEstablishedConnection(t *testing.T) {
	var opens atomic.Int32
	m := NewManagerWithOpener(func() (*gorm.DB, error) {
		opens.Add(1)
		return gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	})

	first, err := m.EnsureConnected()
	require.NoError(t, err)
	second, err := m.EnsureConnected()
	require.NoError(t, err)

	require.Same(t, first, second)
	require.EqualValues(t, 1, opens.Load())
	require.Same(t, first, m.DB())
}

func TestManager_RetriesAfterFailure(t *testing.T) {
	var opens atomic.Int32
	m := NewManagerWithOpener(func() (*gorm.DB, error) {
		if opens.Add(1) == 1 {
			return nil, errors.New("connection refused")
		}
		return gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	})

	_, err := m.EnsureConnected()
	require.Error(t, err)
	require.Nil(t, m.DB())

	db, err := m.EnsureConnected()
	require.NoError(t, err)
	require.NotNil(t, db)
	require.EqualValues(t, 2, opens.Load())
}
