package analysis

import (
	"errors"
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
	"gonum.org/v1/gonum/stat"
)

var ErrNoPeriod = errors.New("analysis: no periodic component")

// PowerSpectrum returns the magnitude of the first half of the spectrum of
// data with its mean removed. Any length is accepted.
func PowerSpectrum(data []float64) []float64 {
	mean := stat.Mean(data, nil)
	centred := make([]float64, len(data))
	for i, v := range data {
		centred[i] = v - mean
	}

	spectrum := fft.FFTReal(centred)
	ps := make([]float64, len(spectrum)/2)
	for i := range ps {
		ps[i] = cmplx.Abs(spectrum[i])
	}
	return ps
}

// DominantPeriod estimates the period, in samples, of the strongest
// oscillation in series. The peak bin is refined by parabolic interpolation.
func DominantPeriod(series []float64) (float64, error) {
	n := len(series)
	if n < 4 {
		return 0, ErrNoData
	}
	ps := PowerSpectrum(series)

	peak := 0
	for k := 1; k < len(ps); k++ {
		if peak == 0 || ps[k] > ps[peak] {
			peak = k
		}
	}
	if peak == 0 || ps[peak] < 1e-9*float64(n) {
		return 0, ErrNoPeriod
	}

	bin := float64(peak)
	if peak > 1 && peak < len(ps)-1 {
		a, b, c := ps[peak-1], ps[peak], ps[peak+1]
		if den := a - 2*b + c; den != 0 {
			bin += 0.5 * (a - c) / den
		}
	}
	return float64(n) / bin, nil
}
