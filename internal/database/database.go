package database

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/ahmetcoskunkizilkaya/provider-directory/internal/config"
	"github.com/ahmetcoskunkizilkaya/provider-directory/internal/models"
	"github.com/glebarez/sqlite"
	"golang.org/x/sync/singleflight"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// ErrClosed is returned once the handle has been torn down.
var ErrClosed = errors.New("database handle closed")

// DefaultRetryAfter is how long a failed connect is reported from cache
// before the next dial.
const DefaultRetryAfter = 5 * time.Second

// Handle is the process-scoped connection to the relational store. The
// connection is opened lazily on first use and reused by every caller.
// Concurrent first calls share one dial; after a failed dial, callers get the
// cached error until retryAfter has passed. Close is called once at shutdown.
type Handle struct {
	dialector  func() gorm.Dialector
	pool       bool
	retryAfter time.Duration
	now        func() time.Time

	connect singleflight.Group

	mu       sync.Mutex
	db       *gorm.DB
	closed   bool
	lastErr  error
	failedAt time.Time
}

// New builds a handle for the configured driver without connecting.
func New(cfg *config.Config) *Handle {
	if cfg.UsesSQLite() {
		path := cfg.SQLitePath
		return newHandle(func() gorm.Dialector { return sqlite.Open(path) }, false)
	}
	dsn := cfg.DSN()
	return newHandle(func() gorm.Dialector { return postgres.Open(dsn) }, true)
}

// NewWithDialector builds a handle over an explicit dialector.
func NewWithDialector(d gorm.Dialector) *Handle {
	return newHandle(func() gorm.Dialector { return d }, false)
}

func newHandle(dialector func() gorm.Dialector, pool bool) *Handle {
	return &Handle{
		dialector:  dialector,
		pool:       pool,
		retryAfter: DefaultRetryAfter,
		now:        time.Now,
	}
}

// Get returns the shared *gorm.DB, connecting and migrating on first use.
func (h *Handle) Get() (*gorm.DB, error) {
	if db, settled, err := h.cached(); settled {
		return db, err
	}

	v, err, _ := h.connect.Do("connect", func() (interface{}, error) {
		if db, settled, err := h.cached(); settled {
			if err != nil {
				return nil, err
			}
			return db, nil
		}
		db, err := h.open()

		h.mu.Lock()
		defer h.mu.Unlock()
		if h.closed {
			if db != nil {
				closeDB(db)
			}
			return nil, ErrClosed
		}
		if err != nil {
			h.lastErr = err
			h.failedAt = h.now()
			return nil, err
		}
		h.db = db
		h.lastErr = nil
		slog.Info("database connected")
		return db, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*gorm.DB), nil
}

// cached reports the settled outcome of Get without dialing: the open
// connection, ErrClosed, or a recent connect failure.
func (h *Handle) cached() (*gorm.DB, bool, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	switch {
	case h.closed:
		return nil, true, ErrClosed
	case h.db != nil:
		return h.db, true, nil
	case h.lastErr != nil && h.now().Sub(h.failedAt) < h.retryAfter:
		return nil, true, h.lastErr
	}
	return nil, false, nil
}

func (h *Handle) open() (*gorm.DB, error) {
	db, err := gorm.Open(h.dialector(), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Warn),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}
	if h.pool {
		sqlDB.SetMaxOpenConns(50)
		sqlDB.SetMaxIdleConns(25)
		sqlDB.SetConnMaxLifetime(30 * time.Minute)
		sqlDB.SetConnMaxIdleTime(5 * time.Minute)
	} else {
		// sqlite serialises writers; one connection avoids "database is locked".
		sqlDB.SetMaxOpenConns(1)
	}

	if err := db.AutoMigrate(models.All()...); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("failed to migrate: %w", err)
	}
	return db, nil
}

func closeDB(db *gorm.DB) {
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}

// Ping checks that the store is reachable.
func (h *Handle) Ping(ctx context.Context) error {
	db, err := h.Get()
	if err != nil {
		return err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// Close tears the connection down. Later calls to Get return ErrClosed.
func (h *Handle) Close() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.closed = true
	if h.db == nil {
		return nil
	}
	sqlDB, err := h.db.DB()
	h.db = nil
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
