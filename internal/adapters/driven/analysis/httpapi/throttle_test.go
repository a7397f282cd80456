package httpapi

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewThrottle_Disabled(t *testing.T) {
	th := NewThrottle(0)
	src := strings.NewReader("abc")

	assert.False(t, th.Enabled())
	assert.Same(t, src, th.Reader(context.Background(), src))
}

func TestThrottle_ReaderPassesData(t *testing.T) {
	th := NewThrottle(1024)
	data := bytes.Repeat([]byte("q"), 40<<10)

	out, err := io.ReadAll(th.Reader(context.Background(), bytes.NewReader(data)))

	require.NoError(t, err)
	assert.Equal(t, data, out)
}

func TestThrottle_ReaderLimitsRate(t *testing.T) {
	th := NewThrottle(1)
	data := bytes.Repeat([]byte("q"), 2048)

	start := time.Now()
	_, err := io.ReadAll(th.Reader(context.Background(), bytes.NewReader(data)))

	require.NoError(t, err)
	assert.GreaterOrEqual(t, time.Since(start), 900*time.Millisecond)
}

func TestThrottle_ReaderHonoursContext(t *testing.T) {
	th := NewThrottle(1)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := io.ReadAll(th.Reader(ctx, bytes.NewReader(make([]byte, 4096))))

	assert.ErrorIs(t, err, context.Canceled)
}
