package engine

import (
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/zeebo/blake3"
)

// ErrVerifyMismatch is returned when a copied file does not hash to the
// same BLAKE3 digest as its source.
var ErrVerifyMismatch = errors.New("checksum mismatch")

// HashFile computes the BLAKE3 hash of the file at path, returning the hex-encoded digest.
func HashFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	h := blake3.New()
	buf := make([]byte, 32*1024)
	if _, err := io.CopyBuffer(h, f, buf); err != nil {
		return "", fmt.Errorf("hash %s: %w", path, err)
	}

	digest := h.Sum(nil)
	return hex.EncodeToString(digest), nil
}

// verifyCopy compares the digests of srcPath and dstPath.
func verifyCopy(srcPath, dstPath string) error {
	srcHash, err := HashFile(srcPath)
	if err != nil {
		return err
	}
	dstHash, err := HashFile(dstPath)
	if err != nil {
		return err
	}
	if srcHash != dstHash {
		return fmt.Errorf("%w: %s (src %s, dst %s)", ErrVerifyMismatch, srcPath, srcHash[:16], dstHash[:16])
	}
	return nil
}
