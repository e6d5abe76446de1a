package render

import (
	"math"
	"strconv"

	"gonum.org/v1/gonum/floats"
)

// DataRange returns the min and max of the finite values in vs.
// ok is false when there are none.
func DataRange(vs []float64) (min, max float64, ok bool) {
	keep := make([]float64, 0, len(vs))
	for _, v := range vs {
		if finite(v) {
			keep = append(keep, v)
		}
	}
	if len(keep) == 0 {
		return 0, 0, false
	}
	return floats.Min(keep), floats.Max(keep), true
}

// PadRange widens [min,max] by pct of its span on both sides. A degenerate range
// is widened by pct of |min|, or by 1 when min is zero.
func PadRange(min, max, pct float64) (float64, float64) {
	if max < min {
		min, max = max, min
	}
	span := max - min
	if span == 0 {
		pad := math.Abs(min) * pct
		if pad == 0 {
			pad = 1
		}
		return min - pad, max + pad
	}
	pad := span * pct
	return min - pad, max + pad
}

// TickStep picks a 1, 2, 2.5, 5 x 10^k step giving close to n ticks across [min,max].
func TickStep(min, max float64, n int) float64 {
	if n < 2 {
		n = 2
	}
	if max <= min {
		max = min + 1
	}
	span := max - min
	mag := math.Pow(10, math.Floor(math.Log10(span/float64(n-1))))
	best := mag
	bestScore := math.MaxFloat64
	for _, c := range []float64{1, 2, 2.5, 5, 10} {
		step := c * mag
		count := math.Ceil(span/step) + 1
		if diff := math.Abs(count - float64(n)); diff < bestScore {
			bestScore = diff
			best = step
		}
	}
	return best
}

// BuildNumericTicks returns tick positions on multiples of TickStep that fall inside [min,max].
// It falls back to the two end points when fewer than two multiples fit.
func BuildNumericTicks(min, max float64, n int) []float64 {
	if math.IsNaN(min) || math.IsNaN(max) || math.IsInf(min, 0) || math.IsInf(max, 0) {
		return nil
	}
	if max < min {
		min, max = max, min
	}
	if max == min {
		return []float64{round6(min)}
	}
	step := TickStep(min, max, n)
	start := math.Ceil(min/step-1e-9) * step
	var out []float64
	for i := 0; ; i++ {
		v := round6(start + float64(i)*step)
		if v > max+step*1e-6 {
			break
		}
		out = append(out, v)
		if i > 100 {
			break
		}
	}
	if len(out) < 2 {
		out = []float64{round6(min), round6(max)}
	}
	return out
}

// FormatTick labels v with just enough decimals to tell ticks spaced step apart.
func FormatTick(v, step float64) string {
	if v == 0 {
		v = 0 // drop the sign of -0
	}
	decimals := 0
	if step > 0 && !math.IsInf(step, 0) {
		for decimals < 10 {
			scaled := step * math.Pow(10, float64(decimals))
			if math.Abs(scaled-math.Round(scaled)) < 1e-6*math.Max(1, scaled) {
				break
			}
			decimals++
		}
	}
	return strconv.FormatFloat(v, 'f', decimals, 64)
}

// round6 rounds to 6 decimal places to keep tick values stable.
func round6(v float64) float64 { return math.Round(v*1e6) / 1e6 }
