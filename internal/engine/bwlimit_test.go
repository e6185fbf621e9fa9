package engine

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chunkWriter records the size of every Write.
type chunkWriter struct {
	bytes.Buffer
	sizes []int
}

func (w *chunkWriter) Write(p []byte) (int, error) {
	w.sizes = append(w.sizes, len(p))
	return w.Buffer.Write(p)
}

func TestNewBandwidthLimit(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 1024, newBandwidthLimit(1024).lim.Burst(), "slow limits burst at the rate")
	assert.Equal(t, maxBurst, newBandwidthLimit(10<<20).lim.Burst())
}

func TestBandwidthLimitCopy(t *testing.T) {
	t.Parallel()

	t.Run("copies everything", func(t *testing.T) {
		t.Parallel()
		data := bytes.Repeat([]byte("x"), 3*maxBurst+17)
		var dst bytes.Buffer

		n, err := newBandwidthLimit(64 << 20).Copy(context.Background(), &dst, bytes.NewReader(data))
		require.NoError(t, err)
		assert.Equal(t, int64(len(data)), n)
		assert.Equal(t, data, dst.Bytes())
	})

	t.Run("writes never exceed the burst", func(t *testing.T) {
		t.Parallel()
		data := bytes.Repeat([]byte("y"), 8*1024)
		bw := newBandwidthLimit(64 * 1024)
		bw.lim.SetBurst(1024)
		var dst chunkWriter

		_, err := bw.Copy(context.Background(), &dst, bytes.NewReader(data))
		require.NoError(t, err)
		require.NotEmpty(t, dst.sizes)
		for _, size := range dst.sizes {
			assert.LessOrEqual(t, size, 1024)
		}
		assert.Equal(t, data, dst.Bytes())
	})

	t.Run("enforces the rate", func(t *testing.T) {
		t.Parallel()
		// 10 KiB at 5 KiB/s: the burst covers the first half, the rest takes ~1s.
		data := bytes.Repeat([]byte("a"), 10*1024)
		var dst bytes.Buffer

		start := time.Now()
		_, err := newBandwidthLimit(5*1024).Copy(context.Background(), &dst, bytes.NewReader(data))
		elapsed := time.Since(start)

		require.NoError(t, err)
		assert.Equal(t, len(data), dst.Len())
		assert.Greater(t, elapsed, 500*time.Millisecond)
	})

	t.Run("stops on a cancelled context", func(t *testing.T) {
		t.Parallel()
		data := bytes.Repeat([]byte("b"), 1<<20)
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		var dst bytes.Buffer

		n, err := newBandwidthLimit(1024).Copy(ctx, &dst, bytes.NewReader(data))
		assert.ErrorIs(t, err, context.Canceled)
		assert.Less(t, n, int64(len(data)))
	})
}
