package workpool

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRun_RespectsLimit(t *testing.T) {
	var inFlight, peak int32
	err := Run(context.Background(), 3, 20, func(ctx context.Context, i int) error {
		n := atomic.AddInt32(&inFlight, 1)
		for {
			p := atomic.LoadInt32(&peak)
			if n <= p || atomic.CompareAndSwapInt32(&peak, p, n) {
				break
			}
		}
		time.Sleep(5 * time.Millisecond)
		atomic.AddInt32(&inFlight, -1)
		return nil
	})
	assert.NoError(t, err)
	assert.LessOrEqual(t, atomic.LoadInt32(&peak), int32(3))
}

func TestRun_VisitsEveryIndex(t *testing.T) {
	seen := make([]int32, 10)
	err := Run(context.Background(), 0, len(seen), func(ctx context.Context, i int) error {
		atomic.AddInt32(&seen[i], 1)
		return nil
	})
	assert.NoError(t, err)
	for i, n := range seen {
		assert.Equal(t, int32(1), n, "index %d", i)
	}
}

func TestRun_ReturnsFirstError(t *testing.T) {
	boom := errors.New("boom")
	err := Run(context.Background(), 1, 5, func(ctx context.Context, i int) error {
		if i == 2 {
			return boom
		}
		return nil
	})
	assert.True(t, errors.Is(err, boom))
}
