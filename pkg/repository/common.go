package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-pkgz/repeater/v2"
)

const (
	retryAttempts = 5
	retryDelay    = 50 * time.Millisecond
	retryMaxDelay = 2 * time.Second
)

// lockMarkers are fragments of modernc sqlite errors raised when another writer holds the lock
var lockMarkers = []string{"SQLITE_BUSY", "SQLITE_LOCKED", "database is locked", "database table is locked"}

// isLockError reports whether the write failed only because the database was busy
func isLockError(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	for _, m := range lockMarkers {
		if strings.Contains(msg, m) {
			return true
		}
	}
	return false
}

// withRetry runs a write, retrying on lock errors with exponential backoff.
// Any other error stops retries and is returned wrapped with op.
func withRetry(ctx context.Context, op string, fn func() error) error {
	var opErr error
	err := repeater.NewBackoff(retryAttempts, retryDelay, repeater.WithMaxDelay(retryMaxDelay)).Do(ctx, func() error {
		opErr = fn()
		if isLockError(opErr) {
			return opErr
		}
		return nil
	})
	if opErr != nil {
		return fmt.Errorf("%s: %w", op, opErr)
	}
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// escapeLike escapes LIKE wildcards, used with ESCAPE '\'
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
