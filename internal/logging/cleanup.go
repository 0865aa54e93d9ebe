package logging

import (
	"log/slog"
	"time"

	"github.com/ahmetcoskunkizilkaya/provider-directory/internal/database"
	"github.com/ahmetcoskunkizilkaya/provider-directory/internal/models"
)

// Cleanup deletes system_logs older than retention and returns the number of
// rows removed.
func Cleanup(h *database.Handle, retention time.Duration) (int64, error) {
	db, err := h.Get()
	if err != nil {
		return 0, err
	}
	cutoff := time.Now().Add(-retention)
	result := db.Where("timestamp < ?", cutoff).Delete(&models.SystemLog{})
	return result.RowsAffected, result.Error
}

// StartCleanup runs Cleanup once a day until done is closed.
func StartCleanup(h *database.Handle, retention time.Duration, done chan struct{}) {
	go func() {
		ticker := time.NewTicker(24 * time.Hour)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				deleted, err := Cleanup(h, retention)
				if err != nil {
					slog.Warn("log cleanup failed", "error", err)
				} else if deleted > 0 {
					slog.Info("log cleanup completed", "deleted", deleted)
				}
			case <-done:
				return
			}
		}
	}()
}
