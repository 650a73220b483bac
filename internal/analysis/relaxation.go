package analysis

import "math"

// RelaxationTime estimates the slowest time constant of an
// equilibrating trajectory by least-squares fitting log-distance to
// the fixed point against time. concs has one row per time. Returns
// NaN when the trajectory is not decaying.
func RelaxationTime(times []float64, concs [][]float64, eq []float64) float64 {
	var ts, ls []float64
	for i, row := range concs {
		if i >= len(times) {
			break
		}
		d := 0.0
		for j, v := range row {
			if j >= len(eq) {
				break
			}
			diff := v - eq[j]
			d += diff * diff
		}
		d = math.Sqrt(d)
		if d < 1e-12 {
			continue
		}
		ts = append(ts, times[i])
		ls = append(ls, math.Log(d))
	}
	if len(ts) < 2 {
		return math.NaN()
	}

	// least-squares slope of log d over t
	n := float64(len(ts))
	var sumT, sumL, sumTL, sumTT float64
	for i := range ts {
		sumT += ts[i]
		sumL += ls[i]
		sumTL += ts[i] * ls[i]
		sumTT += ts[i] * ts[i]
	}
	denom := n*sumTT - sumT*sumT
	if denom == 0 {
		return math.NaN()
	}
	slope := (n*sumTL - sumT*sumL) / denom
	if slope >= 0 {
		return math.NaN()
	}
	return -1 / slope
}
