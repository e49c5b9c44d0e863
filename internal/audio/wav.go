// Package audio provides WAV decoding and short-time RMS loudness measurement.
package audio

import (
	"fmt"
	"os"

	"github.com/go-audio/wav"

	"github.com/oszuidwest/zwfm-volumecheck/internal/util"
)

// ExtractionError indicates a file could not be decoded or measured.
// It is the only checked failure mode of the measurement pipeline; callers
// convert it into an Error record rather than aborting the scan.
type ExtractionError struct {
	Path string
	Err  error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("extract loudness from %s: %v", e.Path, e.Err)
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}

// DecodeWAV reads a WAV file at its native sample rate and returns the
// waveform as normalized mono samples in [-1, 1) plus the sample rate.
// Multi-channel audio is mixed down by averaging channels per frame.
func DecodeWAV(path string) ([]float64, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, util.WrapError("open audio file", err)
	}
	defer util.SafeCloseFunc(f, "audio file")()

	dec := wav.NewDecoder(f)
	if !dec.IsValidFile() {
		return nil, 0, fmt.Errorf("not a valid WAV file")
	}

	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, 0, util.WrapError("decode PCM data", err)
	}
	if buf == nil || buf.Format == nil || len(buf.Data) == 0 {
		return nil, 0, fmt.Errorf("no audio samples")
	}

	channels := buf.Format.NumChannels
	if channels < 1 {
		channels = 1
	}

	bitDepth := buf.SourceBitDepth
	if bitDepth == 0 {
		bitDepth = int(dec.BitDepth)
	}
	if bitDepth == 0 {
		bitDepth = 16
	}
	scale := float64(int64(1) << (bitDepth - 1))

	frames := len(buf.Data) / channels
	samples := make([]float64, frames)
	for i := 0; i < frames; i++ {
		sum := 0.0
		for ch := 0; ch < channels; ch++ {
			sum += float64(buf.Data[i*channels+ch]) / scale
		}
		samples[i] = sum / float64(channels)
	}

	return samples, buf.Format.SampleRate, nil
}
