package audio

import "math"

// Short-time RMS framing parameters, in samples.
const (
	// FrameLength is the analysis window size.
	FrameLength = 2048
	// HopLength is the step between successive windows.
	HopLength = 512
)

// RMSToDB converts an RMS amplitude to decibels. Silence (rms == 0) maps to
// negative infinity, not an error.
func RMSToDB(rms float64) float64 {
	if rms == 0 {
		return math.Inf(-1)
	}
	return 20 * math.Log10(rms)
}

// FrameRMS computes the RMS energy of each analysis window. Windows start at
// sample 0 and advance by hop; only windows fully inside the signal are used.
// A signal shorter than one window yields a single RMS over all its samples.
func FrameRMS(samples []float64, frameLen, hop int) []float64 {
	if len(samples) == 0 {
		return nil
	}
	if len(samples) < frameLen {
		frameLen = len(samples)
	}

	var frames []float64
	for start := 0; start+frameLen <= len(samples); start += hop {
		sumSquares := 0.0
		for _, s := range samples[start : start+frameLen] {
			sumSquares += s * s
		}
		frames = append(frames, math.Sqrt(sumSquares/float64(frameLen)))
	}
	return frames
}

// meanRMS returns the arithmetic mean of per-frame RMS values.
func meanRMS(frames []float64) float64 {
	if len(frames) == 0 {
		return 0
	}
	sum := 0.0
	for _, f := range frames {
		sum += f
	}
	return sum / float64(len(frames))
}

// ExtractLoudnessDB measures the loudness of a WAV file as the mean short-time
// RMS energy converted to decibels. Decode failures are returned as an
// *ExtractionError; a silent file returns negative infinity.
func ExtractLoudnessDB(path string) (float64, error) {
	samples, _, err := DecodeWAV(path)
	if err != nil {
		return 0, &ExtractionError{Path: path, Err: err}
	}

	frames := FrameRMS(samples, FrameLength, HopLength)
	return RMSToDB(meanRMS(frames)), nil
}
