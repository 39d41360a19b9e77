// Package analysis provides spatial spectrum tools for inspecting pattern
// formation in simulated fields.
package analysis

import (
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
	"gonum.org/v1/gonum/floats"
)

// PowerSpectrum returns the magnitude spectrum of a spatial profile for the
// nonnegative wavenumbers 0..n/2-1. The mean is removed first so the zero
// mode does not swamp pattern peaks.
func PowerSpectrum(profile []float64) []float64 {
	n := len(profile)
	if n == 0 {
		return nil
	}

	detrended := make([]float64, n)
	copy(detrended, profile)
	floats.AddConst(-floats.Sum(profile)/float64(n), detrended)

	coeffs := fft.FFTReal(detrended)
	ps := make([]float64, n/2)
	for i := range ps {
		ps[i] = cmplx.Abs(coeffs[i])
	}
	return ps
}

// DominantWavenumber returns the index of the strongest nonzero mode, or 0
// when the profile is flat.
func DominantWavenumber(profile []float64) int {
	ps := PowerSpectrum(profile)
	if len(ps) < 2 {
		return 0
	}
	best, bestPower := 0, 0.0
	for k := 1; k < len(ps); k++ {
		if ps[k] > bestPower {
			best, bestPower = k, ps[k]
		}
	}
	return best
}

// DominantWavelength converts the strongest mode to a physical wavelength
// for a profile sampled over a domain of the given length. Returns 0 for a
// flat profile.
func DominantWavelength(profile []float64, length float64) float64 {
	k := DominantWavenumber(profile)
	if k == 0 {
		return 0
	}
	return length / float64(k)
}
