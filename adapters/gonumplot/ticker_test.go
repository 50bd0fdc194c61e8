package gonumplot

import (
	"math"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Tick labels undo the log2 transform: a tick at v reads as 2^v.
func TestPow2TickerLabels(t *testing.T) {
	ticks := pow2Ticker{}.Ticks(0, 10)
	require.NotEmpty(t, ticks)

	var labeled int
	for _, tick := range ticks {
		if tick.Label == "" {
			continue
		}
		labeled++
		want, err := strconv.ParseFloat(tick.Label, 64)
		require.NoError(t, err)
		assert.InEpsilon(t, math.Pow(2, tick.Value), want, 1e-3,
			"tick at %v labeled %q", tick.Value, tick.Label)
	}
	assert.Greater(t, labeled, 0)
}

func TestParseHex(t *testing.T) {
	c, err := parseHex("#1F78B4")
	require.NoError(t, err)
	r, g, b, a := c.RGBA()
	assert.Equal(t, uint32(0x1f1f), r)
	assert.Equal(t, uint32(0x7878), g)
	assert.Equal(t, uint32(0xb4b4), b)
	assert.Equal(t, uint32(0xffff), a)

	_, err = parseHex("blue")
	assert.Error(t, err)
	_, err = parseHex("#12345")
	assert.Error(t, err)
}
