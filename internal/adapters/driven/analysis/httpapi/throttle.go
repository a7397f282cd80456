package httpapi

import (
	"context"
	"io"

	"golang.org/x/time/rate"
)

// throttleChunk is the largest read granted in one limiter wait.
const throttleChunk = 16 << 10

// Throttle caps upload bandwidth with a token bucket of bytes.
type Throttle struct {
	limiter *rate.Limiter
}

// NewThrottle creates a throttle for kbps KiB/s. Zero or negative disables it.
func NewThrottle(kbps int) *Throttle {
	if kbps <= 0 {
		return &Throttle{}
	}
	bytesPerSec := kbps << 10
	burst := throttleChunk
	if bytesPerSec < burst {
		burst = bytesPerSec
	}
	return &Throttle{limiter: rate.NewLimiter(rate.Limit(bytesPerSec), burst)}
}

// Enabled reports whether uploads are limited.
func (t *Throttle) Enabled() bool {
	return t != nil && t.limiter != nil
}

// Reader wraps r so reads wait for the limiter. A disabled throttle returns r.
func (t *Throttle) Reader(ctx context.Context, r io.Reader) io.Reader {
	if !t.Enabled() {
		return r
	}
	return &throttledReader{ctx: ctx, r: r, limiter: t.limiter}
}

type throttledReader struct {
	ctx     context.Context
	r       io.Reader
	limiter *rate.Limiter
}

func (tr *throttledReader) Read(p []byte) (int, error) {
	if len(p) > tr.limiter.Burst() {
		p = p[:tr.limiter.Burst()]
	}
	n, err := tr.r.Read(p)
	if n > 0 {
		if werr := tr.limiter.WaitN(tr.ctx, n); werr != nil {
			return n, werr
		}
	}
	return n, err
}
