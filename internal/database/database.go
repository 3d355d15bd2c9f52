package database

import (
	"fmt"
	"log"
	"sync"

	"github.com/buildly/construction-api/internal/config"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Manager owns the single lazily-established database handle. Concurrent
// callers of EnsureConnected before the first connection completes all wait
// on the same attempt; a failed attempt is discarded so a later call can
// retry.
type Manager struct {
	open func() (*gorm.DB, error)

	mu      sync.Mutex
	db      *gorm.DB
	attempt *connectAttempt
}

type connectAttempt struct {
	done chan struct{}
	db   *gorm.DB
	err  error
}

func NewManager(cfg *config.Config) *Manager {
	return &Manager{open: func() (*gorm.DB, error) { return open(cfg) }}
}

// NewManagerWithOpener is used by tests to substitute the connect function.
func NewManagerWithOpener(open func() (*gorm.DB, error)) *Manager {
	return &Manager{open: open}
}

// EnsureConnected returns the shared handle, connecting on first use.
func (m *Manager) EnsureConnected() (*gorm.DB, error) {
	m.mu.Lock()
	if m.db != nil {
		db := m.db
		m.mu.Unlock()
		return db, nil
	}
	if m.attempt != nil {
		at := m.attempt
		m.mu.Unlock()
		<-at.done
		return at.db, at.err
	}
	at := &connectAttempt{done: make(chan struct{})}
	m.attempt = at
	m.mu.Unlock()

	at.db, at.err = m.open()

	m.mu.Lock()
	if at.err == nil {
		m.db = at.db
	}
	m.attempt = nil
	m.mu.Unlock()

	close(at.done)
	return at.db, at.err
}

// DB returns the handle if connected, nil otherwise.
func (m *Manager) DB() *gorm.DB {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.db
}

func open(cfg *config.Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=UTC",
		cfg.DBHost,
		cfg.DBUser,
		cfg.DBPassword,
		cfg.DBName,
		cfg.DBPort,
		cfg.DBSSLMode,
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	log.Println("Database connection established")
	return db, nil
}
