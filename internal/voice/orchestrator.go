// Package voice contains the upload orchestration pipeline: transcode
// decision, transcript resolution, provider submission, temp-file cleanup.
// It is factored independently of the HTTP layer so any hosting adapter can
// drive it.
package voice

import (
	"context"
	"fmt"
	"os"
	"regexp"
	"time"
	"unicode/utf8"

	"github.com/rs/zerolog"

	"github.com/voxmod/voxmod/internal/audio"
	"github.com/voxmod/voxmod/internal/capability"
	"github.com/voxmod/voxmod/internal/fishaudio"
	"github.com/voxmod/voxmod/internal/tempfile"
	"github.com/voxmod/voxmod/internal/transcode"
	"github.com/voxmod/voxmod/internal/transcribe"
)

// UploadInput is one intake-validated audio asset plus caller options.
// Path points at the saved upload; the caller owns its removal.
type UploadInput struct {
	Path     string
	MimeType string
	Filename string

	// Title for the created model; empty yields a timestamped default.
	Title string
	// Text is the caller-supplied transcript; non-empty wins over
	// auto-transcription.
	Text string
	// AutoTranscribe permits automatic transcription when no Text is given.
	AutoTranscribe bool
}

// FormatOutcome reports what happened to the asset's encoding.
type FormatOutcome struct {
	OriginalMime string
	UploadedMime string
	Converted    bool
}

// UploadResult is the pipeline outcome.
type UploadResult struct {
	ModelID    string
	Format     FormatOutcome
	Transcript Provenance
}

var transcodeExtPattern = regexp.MustCompile(`(?i)\.(webm|ogg)$`)

// Orchestrator runs the voice upload pipeline against injected adapters.
type Orchestrator struct {
	transcoder  transcode.Transcoder
	transcriber transcribe.Transcriber
	provider    fishaudio.Provider
	caps        capability.Snapshot
	logger      zerolog.Logger
}

// NewOrchestrator wires the pipeline. All dependencies are required; the
// capability snapshot gates the optional ones.
func NewOrchestrator(
	tc transcode.Transcoder,
	tr transcribe.Transcriber,
	provider fishaudio.Provider,
	caps capability.Snapshot,
	logger zerolog.Logger,
) *Orchestrator {
	return &Orchestrator{
		transcoder:  tc,
		transcriber: tr,
		provider:    provider,
		caps:        caps,
		logger:      logger,
	}
}

// Upload runs the full pipeline for one asset. Temporary files created here
// (the transcoded copy) are removed on every exit path; the input file
// belongs to the caller.
func (o *Orchestrator) Upload(ctx context.Context, in UploadInput) (*UploadResult, error) {
	if in.Path == "" {
		return nil, fmt.Errorf("no audio file provided")
	}

	var cleanup tempfile.Cleaner
	defer cleanup.Close()

	asset := in
	outcome := FormatOutcome{OriginalMime: in.MimeType, UploadedMime: in.MimeType}

	if audio.Classify(in.MimeType, in.Filename) == audio.ClassNeedsTranscode {
		if converted, ok := o.transcoder.ToWAV(ctx, in.Path); ok {
			cleanup.Add(converted)
			asset.Path = converted
			asset.MimeType = "audio/wav"
			asset.Filename = swapExtension(in.Filename)
			outcome.UploadedMime = "audio/wav"
			outcome.Converted = true
			o.logger.Info().Str("path", converted).Msg("using converted WAV file")
		} else {
			// Best-effort policy: the provider accepts some unconverted
			// formats, so submit the original rather than failing early.
			o.logger.Warn().Str("mime", in.MimeType).Bool("transcoder_available", o.transcoder.Available()).
				Msg("transcode unavailable or failed, submitting original format")
		}
	}

	prov := o.resolveTranscript(ctx, asset, in.Text, in.AutoTranscribe)

	title := in.Title
	if title == "" {
		title = fmt.Sprintf("Voice Clone %d", time.Now().UnixMilli())
	}

	data, err := os.ReadFile(asset.Path)
	if err != nil {
		return nil, fmt.Errorf("read audio asset: %w", err)
	}

	model, err := o.provider.CreateModel(ctx, &fishaudio.CreateModelRequest{
		Title:               title,
		Description:         "Voice clone created via voxmod",
		Visibility:          "private",
		EnhanceAudioQuality: true,
		Tags:                []string{"voxmod", "clone"},
		Voice: fishaudio.VoiceSample{
			Filename:    asset.Filename,
			ContentType: asset.MimeType,
			Data:        data,
		},
		Text: prov.Text,
	})
	if err != nil {
		return nil, err
	}

	o.logger.Info().Str("model_id", model.ModelID()).Str("state", model.State).
		Str("transcript_source", string(prov.Source)).Msg("voice model created")

	return &UploadResult{
		ModelID:    model.ModelID(),
		Format:     outcome,
		Transcript: prov,
	}, nil
}

// resolveTranscript applies the precedence rules: user text wins, then auto
// transcription when permitted and available, else none. Auto failure is
// recorded, not raised.
func (o *Orchestrator) resolveTranscript(ctx context.Context, asset UploadInput, userText string, autoTranscribe bool) Provenance {
	if userText != "" {
		text := TruncateTranscript(userText)
		return Provenance{Source: SourceUser, Text: text, CharacterCount: utf8.RuneCountInString(text)}
	}

	if !autoTranscribe || !o.caps.Transcription {
		return Provenance{Source: SourceNone}
	}

	text, err := o.transcriber.Transcribe(ctx, asset.Path, asset.MimeType)
	if err != nil {
		o.logger.Warn().Err(err).Msg("automatic transcription failed, continuing without transcript")
		return Provenance{Source: SourceFailed, Err: err.Error()}
	}

	text = TruncateTranscript(text)
	return Provenance{Source: SourceAuto, Text: text, CharacterCount: utf8.RuneCountInString(text)}
}

func swapExtension(filename string) string {
	if transcodeExtPattern.MatchString(filename) {
		return transcodeExtPattern.ReplaceAllString(filename, ".wav")
	}
	if filename == "" {
		return "voice.wav"
	}
	return filename + ".wav"
}
