// Package analysis provides post-run diagnostics: oscillation spectra
// and relaxation timescales.
package analysis

import (
	"math"
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
)

// PowerSpectrum returns the magnitude spectrum of a species
// trajectory. The input is mean-subtracted and zero-padded to a power
// of two before the transform; only the non-redundant half is
// returned.
func PowerSpectrum(data []float64) []float64 {
	if len(data) == 0 {
		return nil
	}

	mean := 0.0
	for _, v := range data {
		mean += v
	}
	mean /= float64(len(data))

	n := 1
	for n < len(data) {
		n *= 2
	}
	padded := make([]float64, n)
	for i, v := range data {
		padded[i] = v - mean
	}

	spec := fft.FFTReal(padded)
	ps := make([]float64, len(spec)/2)
	for i := range ps {
		ps[i] = cmplx.Abs(spec[i])
	}
	return ps
}

// DominantFrequency locates the strongest non-DC peak. dt is the
// sample spacing. Returns frequency and period; both zero when the
// signal has no usable peak.
func DominantFrequency(data []float64, dt float64) (freq, period float64) {
	ps := PowerSpectrum(data)
	if len(ps) < 2 || dt <= 0 {
		return 0, 0
	}

	maxPower := 0.0
	maxIdx := 0
	for i := 1; i < len(ps); i++ {
		if ps[i] > maxPower {
			maxPower = ps[i]
			maxIdx = i
		}
	}
	if maxIdx == 0 || maxPower == 0 {
		return 0, 0
	}

	n := len(ps) * 2 // padded length
	freq = float64(maxIdx) / (float64(n) * dt)
	if freq > 0 {
		period = 1 / freq
	}
	if math.IsInf(period, 0) {
		period = 0
	}
	return freq, period
}
