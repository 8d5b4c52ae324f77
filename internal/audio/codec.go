package audio

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/hajimehoshi/go-mp3"
	"github.com/jfreymuth/oggvorbis"
	"github.com/mewkiz/flac"
)

// WAV fmt chunk encodings
const (
	wavFormatPCM   = 1
	wavFormatFloat = 3
)

// decodeWAV reads a PCM or 32-bit IEEE float WAV stream and returns mono
// samples and the source rate.
func decodeWAV(r io.ReadSeeker) ([]float32, int, error) {
	d := wav.NewDecoder(r)
	if !d.IsValidFile() {
		return nil, 0, fmt.Errorf("%w: invalid WAV header", ErrDecode)
	}
	switch d.WavAudioFormat {
	case wavFormatPCM:
	case wavFormatFloat:
		if d.BitDepth != 32 {
			return nil, 0, fmt.Errorf("%w: unsupported float WAV bit depth %d", ErrDecode, d.BitDepth)
		}
	default:
		return nil, 0, fmt.Errorf("%w: unsupported WAV encoding %d", ErrDecode, d.WavAudioFormat)
	}

	buf, err := d.FullPCMBuffer()
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	if buf.Format == nil || buf.Format.SampleRate <= 0 {
		return nil, 0, fmt.Errorf("%w: missing WAV sample rate", ErrDecode)
	}

	depth := buf.SourceBitDepth
	if depth == 0 {
		depth = int(d.BitDepth)
	}
	if depth <= 0 || depth > 32 {
		return nil, 0, fmt.Errorf("%w: unsupported WAV bit depth %d", ErrDecode, depth)
	}
	samples := make([]float32, len(buf.Data))
	switch {
	case d.WavAudioFormat == wavFormatFloat:
		// The decoder hands back the raw 32-bit words as signed integers.
		for i, v := range buf.Data {
			samples[i] = math.Float32frombits(uint32(int32(v)))
		}
	case depth == 8:
		// 8-bit WAV is unsigned
		for i, v := range buf.Data {
			samples[i] = float32(v-128) / 128
		}
	default:
		scale := float32(int64(1) << (depth - 1))
		for i, v := range buf.Data {
			samples[i] = float32(v) / scale
		}
	}

	return downmix(samples, buf.Format.NumChannels), buf.Format.SampleRate, nil
}

// decodeMP3 reads an MPEG audio stream. go-mp3 always yields 16-bit stereo.
func decodeMP3(r io.Reader) ([]float32, int, error) {
	d, err := mp3.NewDecoder(r)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %v", ErrDecode, err)
	}

	pcm, err := io.ReadAll(d)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %v", ErrDecode, err)
	}

	const frameSize = 4
	frames := len(pcm) / frameSize
	samples := make([]float32, frames)
	for i := 0; i < frames; i++ {
		left := int16(binary.LittleEndian.Uint16(pcm[i*frameSize:]))
		right := int16(binary.LittleEndian.Uint16(pcm[i*frameSize+2:]))
		samples[i] = (float32(left) + float32(right)) / 2 / 32768
	}

	return samples, d.SampleRate(), nil
}

// decodeFLAC reads a FLAC stream, averaging channels frame by frame.
func decodeFLAC(r io.Reader) ([]float32, int, error) {
	stream, err := flac.New(r)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	info := stream.Info
	if info.SampleRate == 0 || info.NChannels == 0 {
		return nil, 0, fmt.Errorf("%w: missing FLAC stream info", ErrDecode)
	}
	if info.BitsPerSample == 0 || info.BitsPerSample > 32 {
		return nil, 0, fmt.Errorf("%w: unsupported FLAC bit depth %d", ErrDecode, info.BitsPerSample)
	}
	scale := float32(int64(1) << (info.BitsPerSample - 1))

	var samples []float32
	for {
		f, err := stream.ParseNext()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, 0, fmt.Errorf("%w: %v", ErrDecode, err)
		}
		n := int(f.BlockSize)
		for _, sub := range f.Subframes {
			if len(sub.Samples) < n {
				return nil, 0, fmt.Errorf("%w: short FLAC subframe", ErrDecode)
			}
		}
		channels := float32(len(f.Subframes))
		for i := 0; i < n; i++ {
			var sum float32
			for _, sub := range f.Subframes {
				sum += float32(sub.Samples[i])
			}
			samples = append(samples, sum/channels/scale)
		}
	}

	return samples, int(info.SampleRate), nil
}

// decodeOGG reads an Ogg Vorbis stream.
func decodeOGG(r io.Reader) ([]float32, int, error) {
	samples, format, err := oggvorbis.ReadAll(r)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	if format.SampleRate <= 0 || format.Channels <= 0 {
		return nil, 0, fmt.Errorf("%w: missing Ogg Vorbis format", ErrDecode)
	}
	return downmix(samples, format.Channels), format.SampleRate, nil
}

// EncodeWAV renders a waveform as a 16-bit mono PCM WAV file.
func EncodeWAV(w Waveform) ([]byte, error) {
	if w.SampleRate <= 0 {
		return nil, fmt.Errorf("invalid sample rate %d", w.SampleRate)
	}

	// The WAV encoder patches the header on Close, so it needs a seekable target.
	f, err := os.CreateTemp("", "wave-*.wav")
	if err != nil {
		return nil, fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(f.Name())
	defer f.Close()

	data := make([]int, len(w.Samples))
	for i, s := range w.Samples {
		v := math.Max(-1, math.Min(1, float64(s)))
		data[i] = int(math.Round(v * math.MaxInt16))
	}

	enc := wav.NewEncoder(f, w.SampleRate, 16, 1, wavFormatPCM)
	buf := &goaudio.IntBuffer{
		Format:         &goaudio.Format{NumChannels: 1, SampleRate: w.SampleRate},
		Data:           data,
		SourceBitDepth: 16,
	}
	if err := enc.Write(buf); err != nil {
		return nil, fmt.Errorf("failed to encode wav: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("failed to finalize wav: %w", err)
	}

	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return nil, err
	}
	return io.ReadAll(f)
}
