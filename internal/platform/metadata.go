package platform

import (
	"io/fs"
	"time"
)

// FileTimes returns the access and modification times recorded in info.
// Platforms without an access time in their stat data report mtime twice.
func FileTimes(info fs.FileInfo) (atime, mtime time.Time) {
	mtime = info.ModTime()
	if at, ok := accessTime(info); ok {
		return at, mtime
	}
	return mtime, mtime
}
