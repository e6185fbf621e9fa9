//go:build !unix

package platform

import (
	"fmt"
	"io/fs"
	"os"
)

// SetFileMetadata applies the permission bits and timestamps of info to an
// open destination file.
func SetFileMetadata(fd *os.File, info fs.FileInfo) error {
	return SetPathMetadata(fd.Name(), info)
}

// SetPathMetadata applies the permission bits and timestamps of info to path.
func SetPathMetadata(path string, info fs.FileInfo) error {
	if err := os.Chmod(path, info.Mode().Perm()); err != nil {
		return fmt.Errorf("chmod %s: %w", path, err)
	}
	atime, mtime := FileTimes(info)
	if err := os.Chtimes(path, atime, mtime); err != nil {
		return fmt.Errorf("chtimes %s: %w", path, err)
	}
	return nil
}
