//go:build darwin

package exportfs

import (
	"fmt"
	"os/exec"
	"time"
)

const setFileLayout = "01/02/2006 15:04:05"

// SetCreationTime sets the birth time of path through the SetFile developer tool.
// Hosts without SetFile keep the time the note was written.
func SetCreationTime(path string, created time.Time) error {
	if created.IsZero() {
		return nil
	}
	bin, err := exec.LookPath("SetFile")
	if err != nil {
		return nil
	}
	if out, err := exec.Command(bin, "-d", created.In(time.Local).Format(setFileLayout), path).CombinedOutput(); err != nil {
		return fmt.Errorf("set creation time of %s: %w: %s", path, err, out)
	}
	return nil
}
