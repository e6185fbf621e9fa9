//go:build linux

package platform

import (
	"errors"
	"os"

	"golang.org/x/sys/unix"
)

// CopyFile fills params.DstFd with the contents of params.SrcPath. The
// bytes stay in the kernel when possible: copy_file_range first, sendfile
// when the filesystem pair refuses it, a user-space loop last.
func CopyFile(params CopyFileParams) (CopyResult, error) {
	preallocate(params.DstFd, params.SrcSize)

	for _, m := range []CopyMethod{CopyFileRange, Sendfile} {
		result, err := kernelCopy(params, m)
		if err == nil || !unsupported(err) {
			return result, err
		}
	}
	return copyReadWrite(params)
}

// kernelCopy runs one offloaded copy method until SrcSize bytes are moved
// or the source reports EOF. An error before any byte is written leaves the
// destination untouched so the caller can try the next method.
func kernelCopy(params CopyFileParams, method CopyMethod) (CopyResult, error) {
	src, err := os.Open(params.SrcPath)
	if err != nil {
		return CopyResult{}, err
	}
	defer src.Close()

	srcFd, dstFd := int(src.Fd()), int(params.DstFd.Fd())
	res := CopyResult{Method: method}
	var off int64

	for res.BytesWritten < params.SrcSize {
		chunk := int(params.SrcSize - res.BytesWritten)

		var n int
		switch method {
		case CopyFileRange:
			woff := off
			n, err = unix.CopyFileRange(srcFd, &off, dstFd, &woff, chunk, 0)
		default:
			n, err = unix.Sendfile(dstFd, srcFd, &off, chunk)
		}
		if err != nil {
			if res.BytesWritten == 0 {
				return CopyResult{}, err
			}
			return res, err
		}
		if n == 0 {
			break
		}
		res.BytesWritten += int64(n)
	}
	return res, nil
}

// unsupported reports errors meaning "this method cannot handle these
// files" rather than a real I/O failure.
func unsupported(err error) bool {
	switch {
	case errors.Is(err, unix.ENOSYS),
		errors.Is(err, unix.EXDEV),
		errors.Is(err, unix.EINVAL),
		errors.Is(err, unix.ENOTSUP),
		errors.Is(err, unix.EOPNOTSUPP):
		return true
	}
	return false
}

// preallocate is a hint; filesystems without fallocate just skip it.
func preallocate(fd *os.File, size int64) {
	if size > 0 {
		_ = unix.Fallocate(int(fd.Fd()), 0, 0, size)
	}
}
