package analysis

import (
	"math"
	"math/cmplx"
)

// fft is a radix-2 Cooley-Tukey transform. len(x) must be a power of two.
func fft(x []complex128) []complex128 {
	n := len(x)
	if n <= 1 {
		return x
	}

	even := make([]complex128, n/2)
	odd := make([]complex128, n/2)
	for i := 0; i < n/2; i++ {
		even[i] = x[2*i]
		odd[i] = x[2*i+1]
	}
	even = fft(even)
	odd = fft(odd)

	out := make([]complex128, n)
	for k := 0; k < n/2; k++ {
		w := cmplx.Exp(complex(0, -2*math.Pi*float64(k)/float64(n)))
		out[k] = even[k] + w*odd[k]
		out[k+n/2] = even[k] - w*odd[k]
	}
	return out
}

// PowerSpectrum returns the magnitude of each positive-frequency bin of the
// series, zero-padding to the next power of two and removing the mean first
// so the DC bin does not dominate.
func PowerSpectrum(series []float64) []float64 {
	if len(series) == 0 {
		return nil
	}

	mean := 0.0
	for _, v := range series {
		mean += v
	}
	mean /= float64(len(series))

	n := 1
	for n < len(series) {
		n *= 2
	}
	x := make([]complex128, n)
	for i, v := range series {
		x[i] = complex(v-mean, 0)
	}

	spectrum := fft(x)
	ps := make([]float64, n/2)
	for i := range ps {
		ps[i] = cmplx.Abs(spectrum[i])
	}
	return ps
}

// DominantFrequency returns the strongest non-DC frequency in hz of a series
// sampled at sampleRate hz, along with its power. Returns zeros when the
// series is too short to analyze.
func DominantFrequency(series []float64, sampleRate float64) (float64, float64) {
	ps := PowerSpectrum(series)
	if len(ps) < 2 {
		return 0, 0
	}

	maxIdx, maxPower := 0, 0.0
	for i := 1; i < len(ps); i++ {
		if ps[i] > maxPower {
			maxPower = ps[i]
			maxIdx = i
		}
	}

	// The padded length is the transform size; bin width is rate/size.
	n := len(ps) * 2
	freq := float64(maxIdx) * sampleRate / float64(n)
	return freq, maxPower
}
