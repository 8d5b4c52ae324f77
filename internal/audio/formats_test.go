package audio

import (
	"bytes"
	"context"
	"encoding/binary"
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/mewkiz/flac"
	"github.com/mewkiz/flac/frame"
	"github.com/mewkiz/flac/meta"
)

// floatWAV builds a mono 32-bit IEEE float WAV by hand.
func floatWAV(samples []float32, rate int) []byte {
	dataLen := uint32(len(samples) * 4)
	b := &bytes.Buffer{}
	b.WriteString("RIFF")
	binary.Write(b, binary.LittleEndian, 36+dataLen)
	b.WriteString("WAVEfmt ")
	binary.Write(b, binary.LittleEndian, uint32(16))
	binary.Write(b, binary.LittleEndian, uint16(wavFormatFloat))
	binary.Write(b, binary.LittleEndian, uint16(1))
	binary.Write(b, binary.LittleEndian, uint32(rate))
	binary.Write(b, binary.LittleEndian, uint32(rate*4))
	binary.Write(b, binary.LittleEndian, uint16(4))
	binary.Write(b, binary.LittleEndian, uint16(32))
	b.WriteString("data")
	binary.Write(b, binary.LittleEndian, dataLen)
	binary.Write(b, binary.LittleEndian, samples)
	return b.Bytes()
}

// flacTone encodes a mono 16-bit tone with verbatim subframes.
func flacTone(t *testing.T, frames, rate int) []byte {
	t.Helper()
	const blockSize = 4096
	if frames%blockSize != 0 {
		t.Fatalf("frames must be a multiple of %d", blockSize)
	}

	path := filepath.Join(t.TempDir(), "tone.flac")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	defer f.Close()

	info := &meta.StreamInfo{
		BlockSizeMin:  blockSize,
		BlockSizeMax:  blockSize,
		SampleRate:    uint32(rate),
		NChannels:     1,
		BitsPerSample: 16,
		NSamples:      uint64(frames),
	}
	enc, err := flac.NewEncoder(f, info)
	if err != nil {
		t.Fatalf("new encoder: %v", err)
	}

	tone := sine(frames, rate)
	for num := 0; num*blockSize < frames; num++ {
		block := tone[num*blockSize : (num+1)*blockSize]
		samples := make([]int32, len(block))
		for i, s := range block {
			samples[i] = int32(s * math.MaxInt16)
		}
		fr := &frame.Frame{
			Header: frame.Header{
				HasFixedBlockSize: true,
				BlockSize:         blockSize,
				SampleRate:        uint32(rate),
				Channels:          frame.ChannelsMono,
				BitsPerSample:     16,
				Num:               uint64(num),
			},
			Subframes: []*frame.Subframe{{
				SubHeader: frame.SubHeader{Pred: frame.PredVerbatim},
				Samples:   samples,
				NSamples:  len(samples),
			}},
		}
		if err := enc.WriteFrame(fr); err != nil {
			t.Fatalf("write frame %d: %v", num, err)
		}
	}
	if err := enc.Close(); err != nil {
		t.Fatalf("close encoder: %v", err)
	}

	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	return b
}

func peak(s []float32) float32 {
	var p float32
	for _, v := range s {
		if v > p {
			p = v
		}
	}
	return p
}

func TestLoadFloatWAV(t *testing.T) {
	loader, dir := newTestLoader(t)

	wave, err := loader.Load(context.Background(), floatWAV(sine(16000, 16000), 16000))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(wave.Samples) != 16000 {
		t.Fatalf("expected 16000 samples, got %d", len(wave.Samples))
	}
	if p := peak(wave.Samples); p < 0.49 || p > 0.51 {
		t.Fatalf("expected float samples to pass through unscaled, peak %f", p)
	}
	assertEmptyDir(t, dir)
}

func TestLoadFloatWAVResampled(t *testing.T) {
	loader, _ := newTestLoader(t)

	wave, err := loader.Load(context.Background(), floatWAV(sine(48000, 48000), 48000))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(wave.Samples) != 16000 {
		t.Fatalf("expected 16000 samples, got %d", len(wave.Samples))
	}
}

func TestLoadFLAC(t *testing.T) {
	loader, dir := newTestLoader(t)

	wave, err := loader.Load(context.Background(), flacTone(t, 16384, 16000))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(wave.Samples) != 16384 {
		t.Fatalf("expected 16384 samples, got %d", len(wave.Samples))
	}
	if p := peak(wave.Samples); p < 0.45 || p > 0.55 {
		t.Fatalf("expected normalized peak near 0.5, got %f", p)
	}
	assertEmptyDir(t, dir)
}

func TestLoadOggVorbis(t *testing.T) {
	loader, dir := newTestLoader(t)
	data, err := os.ReadFile(filepath.Join("testdata", "mono44k.ogg"))
	if err != nil {
		t.Fatalf("read fixture: %v", err)
	}

	wave, err := loader.Load(context.Background(), data)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	// The fixture is one second of mono audio at 44.1 kHz.
	if len(wave.Samples) != 16000 {
		t.Fatalf("expected 16000 samples, got %d", len(wave.Samples))
	}
	if got := rms(wave.Samples); got < 0.05 {
		t.Fatalf("expected audible signal, rms %f", got)
	}
	assertEmptyDir(t, dir)
}

func TestLoadRejectsCorruptContainers(t *testing.T) {
	ogg, err := os.ReadFile(filepath.Join("testdata", "mono44k.ogg"))
	if err != nil {
		t.Fatalf("read fixture: %v", err)
	}

	cases := map[string][]byte{
		"flac header only":  append([]byte("fLaC"), make([]byte, 64)...),
		"truncated ogg":     ogg[:100],
		"float wav no data": floatWAV(nil, 16000),
	}
	for name, data := range cases {
		t.Run(name, func(t *testing.T) {
			loader, dir := newTestLoader(t)
			if _, err := loader.Load(context.Background(), data); !errors.Is(err, ErrDecode) {
				t.Fatalf("expected ErrDecode, got %v", err)
			}
			assertEmptyDir(t, dir)
		})
	}
}
