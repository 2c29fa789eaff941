//go:build !windows

package report

import (
	"os"

	"github.com/google/renameio/v2"
)

// writeFileAtomic writes data to path through a temp file and rename, so a
// reader never observes a half-written report.
func writeFileAtomic(path string, data []byte, perm os.FileMode) error {
	return renameio.WriteFile(path, data, perm)
}
