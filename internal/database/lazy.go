// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package database

import (
	"database/sql"
	"errors"
	"fmt"
	"sync"

	"golang.org/x/sync/singleflight"
)

// ErrNotConfigured is returned by Lazy.DB when no database address was
// configured.
var ErrNotConfigured = errors.New("database: connection string not configured")

// Lazy owns a lazily-established connection pool shared by all callers.
// The first DB() call connects; concurrent first calls collapse into a
// single connect attempt, and every caller receives the same pool. A failed
// attempt is not cached — the next call retries.
type Lazy struct {
	dsn     string
	onReady func(*sql.DB) error // runs once after the first successful connect
	connect func(string) (*sql.DB, error)

	group singleflight.Group

	mu sync.RWMutex
	db *sql.DB
}

// NewLazy creates a lazy handle for the given DSN. onReady, if non-nil, runs
// once against the freshly-opened pool before any caller sees it — used to
// apply migrations on first contact.
func NewLazy(dsn string, onReady func(*sql.DB) error) *Lazy {
	return &Lazy{
		dsn:     dsn,
		onReady: onReady,
		connect: Connect,
	}
}

// DB returns the shared connection pool, establishing it on first use.
// Fails with ErrNotConfigured when the DSN is empty, or with the wrapped
// connect error when the store is unreachable.
func (l *Lazy) DB() (*sql.DB, error) {
	l.mu.RLock()
	db := l.db
	l.mu.RUnlock()
	if db != nil {
		return db, nil
	}

	if l.dsn == "" {
		return nil, ErrNotConfigured
	}

	v, err, _ := l.group.Do("connect", func() (any, error) {
		// A concurrent caller may have won the race before this flight began.
		l.mu.RLock()
		existing := l.db
		l.mu.RUnlock()
		if existing != nil {
			return existing, nil
		}

		db, err := l.connect(l.dsn)
		if err != nil {
			return nil, fmt.Errorf("database connect: %w", err)
		}

		if l.onReady != nil {
			if err := l.onReady(db); err != nil {
				db.Close()
				return nil, fmt.Errorf("database ready hook: %w", err)
			}
		}

		l.mu.Lock()
		l.db = db
		l.mu.Unlock()
		return db, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*sql.DB), nil
}

// Close releases the pool if one was established.
func (l *Lazy) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.db == nil {
		return nil
	}
	err := l.db.Close()
	l.db = nil
	return err
}
