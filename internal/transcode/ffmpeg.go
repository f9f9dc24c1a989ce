// Package transcode normalizes browser recordings into a canonical WAV the
// cloning provider reliably accepts. Conversion is best-effort: the provider
// sometimes accepts unconverted formats, so failures here never fail a
// request.
package transcode

import (
	"context"
	"os"
	"os/exec"

	"github.com/rs/zerolog"
)

// Transcoder converts an audio file to the canonical WAV format.
type Transcoder interface {
	Available() bool
	// ToWAV converts src and returns the output path. ok is false when no
	// conversion was performed (tool missing, tool failed, output absent);
	// callers proceed with the original file.
	ToWAV(ctx context.Context, src string) (path string, ok bool)
}

// FFmpeg shells out to the ffmpeg binary found on PATH.
type FFmpeg struct {
	bin    string
	logger zerolog.Logger
}

// Detect probes PATH for ffmpeg. The returned adapter reports unavailable
// when the binary is absent.
func Detect(logger zerolog.Logger) *FFmpeg {
	bin, err := exec.LookPath("ffmpeg")
	if err != nil {
		logger.Info().Msg("ffmpeg not found, audio conversion disabled")
		return &FFmpeg{logger: logger}
	}

	logger.Info().Str("bin", bin).Msg("ffmpeg available for audio conversion")
	return &FFmpeg{bin: bin, logger: logger}
}

// Available reports whether conversion can be attempted.
func (f *FFmpeg) Available() bool {
	return f.bin != ""
}

// ToWAV converts src to mono 48 kHz 24-bit PCM WAV with a cleanup filter
// chain: high-pass at 80 Hz, low-pass at 12 kHz, FFT noise reduction.
func (f *FFmpeg) ToWAV(ctx context.Context, src string) (string, bool) {
	if !f.Available() {
		return "", false
	}

	out := src + ".wav"

	cmd := exec.CommandContext(ctx, f.bin,
		"-y",
		"-i", src,
		"-vn",
		"-acodec", "pcm_s24le",
		"-ar", "48000",
		"-ac", "1",
		"-af", "highpass=f=80,lowpass=f=12000,afftdn=nf=-25",
		out,
	)

	if output, err := cmd.CombinedOutput(); err != nil {
		f.logger.Warn().Err(err).Str("src", src).Bytes("ffmpeg_output", output).
			Msg("audio conversion failed")
		_ = os.Remove(out)
		return "", false
	}

	if _, err := os.Stat(out); err != nil {
		f.logger.Warn().Str("out", out).Msg("conversion produced no output file")
		return "", false
	}

	return out, true
}

var _ Transcoder = (*FFmpeg)(nil)
