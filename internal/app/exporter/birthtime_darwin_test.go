//go:build darwin

package exporter

import (
	"os"
	"syscall"
	"testing"
)

func checkBirthtime(t *testing.T, info os.FileInfo, want int64) {
	t.Helper()
	if got := int64(info.Sys().(*syscall.Stat_t).Birthtimespec.Sec); got != want {
		t.Fatalf("expected note birthtime %d, got %d", want, got)
	}
}
