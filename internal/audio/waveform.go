package audio

import (
	"errors"
	"math"
	"time"
)

// DefaultSampleRate is the rate Whisper models expect their input at.
const DefaultSampleRate = 16000

// ErrDecode is returned when the bytes are not audio we can decode.
var ErrDecode = errors.New("audio decode failed")

// Waveform is decoded mono audio.
type Waveform struct {
	Samples    []float32 // amplitudes in [-1, 1]
	SampleRate int
}

// Duration returns the playback length of the waveform.
func (w Waveform) Duration() time.Duration {
	if w.SampleRate <= 0 {
		return 0
	}
	return time.Duration(len(w.Samples)) * time.Second / time.Duration(w.SampleRate)
}

// downmix averages interleaved frames into a single channel.
func downmix(interleaved []float32, channels int) []float32 {
	if channels <= 1 {
		return interleaved
	}
	frames := len(interleaved) / channels
	mono := make([]float32, frames)
	for i := 0; i < frames; i++ {
		var sum float32
		for ch := 0; ch < channels; ch++ {
			sum += interleaved[i*channels+ch]
		}
		mono[i] = sum / float32(channels)
	}
	return mono
}

// resample converts samples between rates. Upsampling interpolates linearly.
// Downsampling evaluates a Blackman-windowed sinc low-pass at every output
// position, so content above the new Nyquist frequency does not alias.
func resample(in []float32, from, to int) []float32 {
	if from == to || len(in) == 0 {
		return in
	}
	n := int(int64(len(in)) * int64(to) / int64(from))
	if n == 0 {
		n = 1
	}
	step := float64(from) / float64(to)
	if to > from {
		return interpolate(in, n, step)
	}
	return decimate(in, n, step)
}

func interpolate(in []float32, n int, step float64) []float32 {
	out := make([]float32, n)
	last := len(in) - 1
	for i := range out {
		pos := float64(i) * step
		j := int(pos)
		if j >= last {
			out[i] = in[last]
			continue
		}
		frac := float32(pos - float64(j))
		out[i] = in[j]*(1-frac) + in[j+1]*frac
	}
	return out
}

// sincZeros is the number of kernel zero crossings kept on each side.
const sincZeros = 16

func decimate(in []float32, n int, step float64) []float32 {
	// Cutoff in cycles per input sample, a little below the output Nyquist.
	cutoff := 0.45 / step
	half := float64(sincZeros) / (2 * cutoff)

	out := make([]float32, n)
	for i := range out {
		pos := float64(i) * step
		lo := max(int(math.Ceil(pos-half)), 0)
		hi := min(int(math.Floor(pos+half)), len(in)-1)

		var acc, norm float64
		for k := lo; k <= hi; k++ {
			t := float64(k) - pos
			h := sinc(2*cutoff*t) * blackman(t/half)
			acc += float64(in[k]) * h
			norm += h
		}
		if norm != 0 {
			out[i] = float32(acc / norm)
		}
	}
	return out
}

func sinc(x float64) float64 {
	if x == 0 {
		return 1
	}
	return math.Sin(math.Pi*x) / (math.Pi * x)
}

// blackman is the Blackman window over x in [-1, 1].
func blackman(x float64) float64 {
	return 0.42 + 0.5*math.Cos(math.Pi*x) + 0.08*math.Cos(2*math.Pi*x)
}
