// Package dbtest opens throwaway sqlite-backed handles for tests.
package dbtest

import (
	"path/filepath"
	"testing"

	"github.com/ahmetcoskunkizilkaya/provider-directory/internal/database"
	"github.com/glebarez/sqlite"
)

// NewHandle returns a connected, migrated handle on a temp file that is closed
// when the test ends.
func NewHandle(t testing.TB) *database.Handle {
	t.Helper()
	h := database.NewWithDialector(sqlite.Open(filepath.Join(t.TempDir(), "test.db")))
	if _, err := h.Get(); err != nil {
		t.Fatalf("open test database: %v", err)
	}
	t.Cleanup(func() { _ = h.Close() })
	return h
}
