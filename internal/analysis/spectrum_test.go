package analysis

import (
	"math"
	"testing"
)

func TestPowerSpectrumEmpty(t *testing.T) {
	if got := PowerSpectrum(nil); got != nil {
		t.Errorf("expected nil for empty series, got %v", got)
	}
}

func TestDominantFrequency(t *testing.T) {
	// 4 hz sine sampled at 64 hz for 4 seconds.
	const (
		rate = 64.0
		freq = 4.0
	)
	series := make([]float64, 256)
	for i := range series {
		series[i] = math.Sin(2 * math.Pi * freq * float64(i) / rate)
	}

	got, power := DominantFrequency(series, rate)
	if math.Abs(got-freq) > 0.3 {
		t.Errorf("dominant frequency = %v, want ~%v", got, freq)
	}
	if power <= 0 {
		t.Errorf("expected positive power, got %v", power)
	}
}

func TestDominantFrequencyIgnoresOffset(t *testing.T) {
	// A constant offset must not register as the dominant component.
	const rate = 32.0
	series := make([]float64, 128)
	for i := range series {
		series[i] = 10 + math.Sin(2*math.Pi*2*float64(i)/rate)
	}

	got, _ := DominantFrequency(series, rate)
	if math.Abs(got-2) > 0.3 {
		t.Errorf("dominant frequency = %v, want ~2", got)
	}
}
