package gonumplot

import (
	"math"
	"strconv"

	"gonum.org/v1/plot"
)

// pow2Ticker relabels default ticks from the log2 scale back to the
// linear titer scale: a tick at value v reads as 2^v.
type pow2Ticker struct{}

func (pow2Ticker) Ticks(min, max float64) []plot.Tick {
	ticks := plot.DefaultTicks{}.Ticks(min, max)
	for i, t := range ticks {
		if t.Label == "" {
			continue // minor tick
		}
		ticks[i].Label = strconv.FormatFloat(math.Pow(2, t.Value), 'g', 4, 64)
	}
	return ticks
}
