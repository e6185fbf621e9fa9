//go:build !linux

package platform

// CopyFile copies with positioned reads and writes; there is no kernel
// offload path outside Linux.
func CopyFile(params CopyFileParams) (CopyResult, error) {
	return copyReadWrite(params)
}
