package analysis

import (
	"math/bits"
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
)

// FFT computes the discrete Fourier transform of data zero-padded to the
// next power of two.
func FFT(data []float64) []complex128 {
	n := nextPow2(len(data))
	if n == 0 {
		return []complex128{}
	}
	padded := make([]float64, n)
	copy(padded, data)
	return fft.FFTReal(padded)
}

// PowerSpectrum returns |X_k| for the non-negative frequency bins.
func PowerSpectrum(data []float64) []float64 {
	spectrum := FFT(data)
	ps := make([]float64, len(spectrum)/2)
	for i := range ps {
		ps[i] = cmplx.Abs(spectrum[i])
	}
	return ps
}

// DominantFrequency returns the frequency (in 1/time units) of the strongest
// non-DC bin of series sampled every dt, after removing the mean.
func DominantFrequency(series []float64, dt float64) float64 {
	if len(series) < 2 || dt <= 0 {
		return 0
	}

	mean := 0.0
	for _, v := range series {
		mean += v
	}
	mean /= float64(len(series))

	centered := make([]float64, len(series))
	for i, v := range series {
		centered[i] = v - mean
	}

	ps := PowerSpectrum(centered)
	best := 0
	for i := 1; i < len(ps); i++ {
		if best == 0 || ps[i] > ps[best] {
			best = i
		}
	}
	if best == 0 {
		return 0
	}
	return float64(best) / (float64(2*len(ps)) * dt)
}

func nextPow2(n int) int {
	if n <= 1 {
		return n
	}
	return 1 << bits.Len(uint(n-1))
}
