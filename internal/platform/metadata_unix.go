//go:build unix

package platform

import (
	"fmt"
	"io/fs"
	"os"

	"golang.org/x/sys/unix"
)

// SetFileMetadata applies the permission bits and timestamps of info to an
// open destination file. Times are set by path so the call works whether or
// not the kernel supports AT_EMPTY_PATH.
func SetFileMetadata(fd *os.File, info fs.FileInfo) error {
	if err := unix.Fchmod(int(fd.Fd()), uint32(info.Mode().Perm())); err != nil {
		return fmt.Errorf("fchmod %s: %w", fd.Name(), err)
	}
	return setTimes(fd.Name(), info)
}

// SetPathMetadata applies the permission bits and timestamps of info to
// path. Used for directories, whose times must be set after their contents
// are written.
func SetPathMetadata(path string, info fs.FileInfo) error {
	if err := os.Chmod(path, info.Mode().Perm()); err != nil {
		return fmt.Errorf("chmod %s: %w", path, err)
	}
	return setTimes(path, info)
}

func setTimes(path string, info fs.FileInfo) error {
	atime, mtime := FileTimes(info)
	times := []unix.Timespec{
		unix.NsecToTimespec(atime.UnixNano()),
		unix.NsecToTimespec(mtime.UnixNano()),
	}
	if err := unix.UtimesNanoAt(unix.AT_FDCWD, path, times, 0); err != nil {
		return fmt.Errorf("utimensat %s: %w", path, err)
	}
	return nil
}
