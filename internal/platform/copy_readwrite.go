package platform

import (
	"errors"
	"io"
	"os"
	"sync"
)

const bufferSize = 1 << 20 // 1 MiB

var bufPool = sync.Pool{
	New: func() any {
		b := make([]byte, bufferSize)
		return &b
	},
}

// copyReadWrite copies data using ReadAt/WriteAt with a pooled buffer.
func copyReadWrite(params CopyFileParams) (CopyResult, error) {
	srcFd, err := os.Open(params.SrcPath)
	if err != nil {
		return CopyResult{}, err
	}
	defer srcFd.Close()

	bufp := bufPool.Get().(*[]byte)
	defer bufPool.Put(bufp)
	buf := *bufp

	var offset int64
	remaining := params.SrcSize

	for remaining > 0 {
		toRead := min(remaining, bufferSize)

		n, err := srcFd.ReadAt(buf[:toRead], offset)
		if n > 0 {
			if _, werr := params.DstFd.WriteAt(buf[:n], offset); werr != nil {
				return CopyResult{BytesWritten: offset, Method: ReadWrite}, werr
			}
			offset += int64(n)
			remaining -= int64(n)
		}
		if errors.Is(err, io.EOF) {
			break // source shrank since it was stat'ed
		}
		if err != nil {
			return CopyResult{BytesWritten: offset, Method: ReadWrite}, err
		}
	}

	return CopyResult{BytesWritten: offset, Method: ReadWrite}, nil
}

// CopyReadWrite forces the read/write path regardless of platform.
func CopyReadWrite(params CopyFileParams) (CopyResult, error) {
	return copyReadWrite(params)
}
