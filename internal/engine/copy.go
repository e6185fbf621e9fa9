package engine

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/bamsammich/dirsync/internal/platform"
)

const tmpSuffix = ".dirsync-tmp"

// ErrUnsupportedType is returned for entries that are neither regular
// files, directories nor symlinks (devices, sockets, pipes).
var ErrUnsupportedType = errors.New("unsupported file type")

// copyCounts tallies what a single top-level copy wrote.
type copyCounts struct {
	bytes    int64
	verified int64
}

// tmpPath returns a hidden sibling of dst to stage a copy in. The name does
// not embed dst's base name, so it stays short whatever the entry is called.
func tmpPath(dst string) string {
	return filepath.Join(filepath.Dir(dst), "."+uuid.NewString()+tmpSuffix)
}

// copyEntry copies the top-level entry src to dst. The entry is built under
// a staging name and renamed into place, so dst only ever appears complete.
func (s *Syncer) copyEntry(src, dst string) (copyCounts, error) {
	var counts copyCounts

	info, err := os.Lstat(src)
	if err != nil {
		return counts, fmt.Errorf("stat %s: %w", src, err)
	}

	tmp := tmpPath(dst)
	if err := s.copyTree(src, tmp, info, &counts); err != nil {
		_ = os.RemoveAll(tmp)
		return counts, err
	}
	if err := os.Rename(tmp, dst); err != nil {
		_ = os.RemoveAll(tmp)
		return counts, fmt.Errorf("rename %s -> %s: %w", tmp, dst, err)
	}
	return counts, nil
}

func (s *Syncer) copyTree(src, dst string, info fs.FileInfo, counts *copyCounts) error {
	switch mode := info.Mode(); {
	case mode.IsRegular():
		return s.copyRegularFile(src, dst, info, counts)
	case mode.IsDir():
		return s.copyDirectory(src, dst, info, counts)
	case mode&fs.ModeSymlink != 0:
		return copySymlink(src, dst)
	default:
		return fmt.Errorf("%w: %s (%s)", ErrUnsupportedType, src, mode.Type())
	}
}

func (s *Syncer) copyDirectory(src, dst string, info fs.FileInfo, counts *copyCounts) error {
	// Owner-writable until the contents are in; the real mode is applied last.
	if err := os.Mkdir(dst, 0o700); err != nil {
		return fmt.Errorf("mkdir %s: %w", dst, err)
	}

	entries, err := os.ReadDir(src)
	if err != nil {
		return fmt.Errorf("readdir %s: %w", src, err)
	}
	for _, e := range entries {
		childInfo, err := e.Info()
		if err != nil {
			return fmt.Errorf("stat %s: %w", filepath.Join(src, e.Name()), err)
		}
		if err := s.copyTree(filepath.Join(src, e.Name()), filepath.Join(dst, e.Name()), childInfo, counts); err != nil {
			return err
		}
	}

	if err := platform.SetPathMetadata(dst, info); err != nil {
		return fmt.Errorf("set metadata %s: %w", dst, err)
	}
	return nil
}

func copySymlink(src, dst string) error {
	target, err := os.Readlink(src)
	if err != nil {
		return fmt.Errorf("readlink %s: %w", src, err)
	}
	if err := os.Symlink(target, dst); err != nil {
		return fmt.Errorf("symlink %s -> %s: %w", dst, target, err)
	}
	return nil
}

func (s *Syncer) copyRegularFile(src, dst string, info fs.FileInfo, counts *copyCounts) error {
	fd, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, info.Mode().Perm())
	if err != nil {
		return fmt.Errorf("create %s: %w", dst, err)
	}

	n, err := s.copyData(src, fd, info.Size())
	if err != nil {
		fd.Close()
		return fmt.Errorf("copy data %s: %w", src, err)
	}

	if s.cfg.Verify {
		if err := verifyCopy(src, dst); err != nil {
			fd.Close()
			return err
		}
		counts.verified++
	}

	// Metadata last so the verify read does not disturb the times.
	if err := platform.SetFileMetadata(fd, info); err != nil {
		fd.Close()
		return fmt.Errorf("set metadata %s: %w", dst, err)
	}

	if err := fd.Close(); err != nil {
		return fmt.Errorf("close %s: %w", dst, err)
	}

	counts.bytes += n
	return nil
}

// copyData moves the file contents. With a bandwidth limit the bytes go
// through the shared limiter; otherwise the platform picks the fastest
// kernel path.
func (s *Syncer) copyData(src string, dst *os.File, size int64) (int64, error) {
	if size == 0 {
		return 0, nil
	}

	if s.limiter == nil {
		result, err := platform.CopyFile(platform.CopyFileParams{
			DstFd:   dst,
			SrcPath: src,
			SrcSize: size,
		})
		if err == nil {
			s.logger.Debug("copied file data", "file", src, "bytes", result.BytesWritten, "method", result.Method)
		}
		return result.BytesWritten, err
	}

	f, err := os.Open(src)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	// Background context: a stop request never cuts a copy short.
	return s.limiter.Copy(context.Background(), dst, f)
}
