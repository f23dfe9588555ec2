//go:build !darwin

package exportfs

import "time"

// SetCreationTime is a no-op where the filesystem exposes no settable birth time.
func SetCreationTime(string, time.Time) error {
	return nil
}
