package parallel

import (
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFor_VisitsEveryIndexOnce(t *testing.T) {
	configs := map[string]Config{
		"sequential": Sequential(),
		"default":    DefaultConfig(),
		"workers":    Workers(4),
		"tiny chunk": {Enabled: true, NumWorkers: 3, MinChunkSize: 1},
	}

	for name, cfg := range configs {
		t.Run(name, func(t *testing.T) {
			const n = 1000
			var hits [n]int32
			For(n, func(i int) {
				atomic.AddInt32(&hits[i], 1)
			}, cfg)
			for i := range hits {
				assert.Equal(t, int32(1), hits[i], "index %d", i)
			}
		})
	}
}

func TestFor_Empty(t *testing.T) {
	called := false
	For(0, func(int) { called = true }, Workers(4))
	assert.False(t, called)
}

func TestForBatch(t *testing.T) {
	var sum atomic.Int64
	ForBatch(3, 4, func(b, c int) {
		sum.Add(int64(b*10 + c))
	}, Workers(2))
	// sum over b in 0..2, c in 0..3 of b*10+c = 4*(0+10+20) + 3*(0+1+2+3)
	assert.Equal(t, int64(138), sum.Load())
}

func TestWorkers_Clamp(t *testing.T) {
	cfg := Workers(0)
	assert.False(t, cfg.Enabled)
	assert.Equal(t, 1, cfg.NumWorkers)
}
