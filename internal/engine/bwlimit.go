package engine

import (
	"context"
	"errors"
	"io"

	"golang.org/x/time/rate"
)

// maxBurst bounds how many bytes one wait releases.
const maxBurst = 1 << 20

// bandwidthLimit throttles copied bytes across every file of a run.
type bandwidthLimit struct {
	lim *rate.Limiter
}

func newBandwidthLimit(bytesPerSec int64) *bandwidthLimit {
	burst := int(min(bytesPerSec, maxBurst))
	return &bandwidthLimit{lim: rate.NewLimiter(rate.Limit(bytesPerSec), burst)}
}

// Copy moves src to dst in chunks no larger than the limiter's burst,
// waiting for tokens before each write.
func (b *bandwidthLimit) Copy(ctx context.Context, dst io.Writer, src io.Reader) (int64, error) {
	buf := make([]byte, b.lim.Burst())
	var written int64
	for {
		n, rerr := src.Read(buf)
		if n > 0 {
			if err := b.lim.WaitN(ctx, n); err != nil {
				return written, err
			}
			w, werr := dst.Write(buf[:n])
			written += int64(w)
			if werr != nil {
				return written, werr
			}
			if w != n {
				return written, io.ErrShortWrite
			}
		}
		if errors.Is(rerr, io.EOF) {
			return written, nil
		}
		if rerr != nil {
			return written, rerr
		}
	}
}
