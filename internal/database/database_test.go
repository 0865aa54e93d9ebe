package database

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/ahmetcoskunkizilkaya/provider-directory/internal/config"
	"github.com/ahmetcoskunkizilkaya/provider-directory/internal/models"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var errDial = errors.New("dial tcp: connection refused")

// slowDialector fails every Initialize after delay, like an unreachable host.
type slowDialector struct {
	gorm.Dialector
	delay time.Duration
	calls atomic.Int32
}

func (d *slowDialector) Initialize(*gorm.DB) error {
	d.calls.Add(1)
	time.Sleep(d.delay)
	return errDial
}

func TestHandle_LazyInitOnce(t *testing.T) {
	h := NewWithDialector(sqlite.Open(filepath.Join(t.TempDir(), "dir.db")))
	defer h.Close()

	first, err := h.Get()
	require.NoError(t, err)
	second, err := h.Get()
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.True(t, first.Migrator().HasTable(&models.Provider{}))
	assert.NoError(t, h.Ping(context.Background()))
}

func TestHandle_ClosedRejectsUse(t *testing.T) {
	h := NewWithDialector(sqlite.Open(filepath.Join(t.TempDir(), "dir.db")))
	_, err := h.Get()
	require.NoError(t, err)

	require.NoError(t, h.Close())

	_, err = h.Get()
	assert.ErrorIs(t, err, ErrClosed)
	assert.ErrorIs(t, h.Ping(context.Background()), ErrClosed)
}

func TestNew_SQLiteFromConfig(t *testing.T) {
	cfg := &config.Config{DBDriver: "sqlite", SQLitePath: filepath.Join(t.TempDir(), "cfg.db")}
	h := New(cfg)
	defer h.Close()

	_, err := h.Get()
	require.NoError(t, err)
	assert.FileExists(t, cfg.SQLitePath)
}

func TestHandle_ConcurrentConnectsShareOneDial(t *testing.T) {
	d := &slowDialector{Dialector: sqlite.Open(":memory:"), delay: 200 * time.Millisecond}
	h := NewWithDialector(d)
	defer h.Close()

	const callers = 8
	errs := make([]error, callers)
	var wg sync.WaitGroup
	start := time.Now()
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = h.Get()
		}(i)
	}
	wg.Wait()
	elapsed := time.Since(start)

	for _, err := range errs {
		assert.ErrorIs(t, err, errDial)
	}
	assert.Less(t, elapsed, 3*d.delay, "callers waited on each other's dials")
	assert.EqualValues(t, 1, d.calls.Load())

	start = time.Now()
	_, err := h.Get()
	assert.ErrorIs(t, err, errDial)
	assert.Less(t, time.Since(start), d.delay)
	assert.EqualValues(t, 1, d.calls.Load())
}

func TestHandle_RetriesAfterWindow(t *testing.T) {
	d := &slowDialector{Dialector: sqlite.Open(":memory:")}
	h := NewWithDialector(d)
	defer h.Close()

	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	h.now = func() time.Time { return now }

	_, err := h.Get()
	require.ErrorIs(t, err, errDial)

	now = now.Add(DefaultRetryAfter - time.Second)
	_, err = h.Get()
	require.ErrorIs(t, err, errDial)
	assert.EqualValues(t, 1, d.calls.Load())

	now = now.Add(2 * time.Second)
	_, err = h.Get()
	require.ErrorIs(t, err, errDial)
	assert.EqualValues(t, 2, d.calls.Load())
}

func TestHandle_CloseWinsOverCachedFailure(t *testing.T) {
	h := NewWithDialector(&slowDialector{Dialector: sqlite.Open(":memory:")})
	_, err := h.Get()
	require.ErrorIs(t, err, errDial)

	require.NoError(t, h.Close())
	_, err = h.Get()
	assert.ErrorIs(t, err, ErrClosed)
}
