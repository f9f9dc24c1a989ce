// Package transcribe submits audio to the OpenAI Whisper API and returns
// plain text. Absence of a credential is a normal, expected state: every
// call then reports ErrNotConfigured and callers degrade gracefully.
package transcribe

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	openai "github.com/sashabaranov/go-openai"
	"github.com/rs/zerolog"

	"github.com/voxmod/voxmod/internal/audio"
	"github.com/voxmod/voxmod/internal/tempfile"
)

// MaxFileBytes is the Whisper API upload limit. Larger files are rejected
// locally without a network call.
const MaxFileBytes = 25 << 20

var (
	// ErrNotConfigured is returned on every call when no API key is set.
	ErrNotConfigured = errors.New("transcription service not configured")
	// ErrFileTooLarge is returned for files over MaxFileBytes.
	ErrFileTooLarge = errors.New("audio file too large for transcription (max 25MB)")
)

// Transcriber converts an audio file into text.
type Transcriber interface {
	Available() bool
	Transcribe(ctx context.Context, path, mimeType string) (string, error)
}

// Whisper calls the OpenAI audio transcription endpoint.
type Whisper struct {
	client   *openai.Client
	language string
	logger   zerolog.Logger
}

// NewWhisper builds the adapter. An empty apiKey yields an unconfigured
// adapter rather than an error.
func NewWhisper(apiKey, language string, logger zerolog.Logger) *Whisper {
	w := &Whisper{language: language, logger: logger}
	if w.language == "" {
		w.language = "en"
	}
	if apiKey != "" {
		w.client = openai.NewClient(apiKey)
	}
	return w
}

// NewWhisperWithClient injects a preconfigured client; used by tests to
// point at a fake server.
func NewWhisperWithClient(client *openai.Client, language string, logger zerolog.Logger) *Whisper {
	if language == "" {
		language = "en"
	}
	return &Whisper{client: client, language: language, logger: logger}
}

// Available reports whether a credential is configured.
func (w *Whisper) Available() bool {
	return w.client != nil
}

// Transcribe sends the file at path to Whisper and returns the verbatim
// text. mimeType supplies the extension when path has none, since the API
// refuses files without a recognized extension.
func (w *Whisper) Transcribe(ctx context.Context, path, mimeType string) (string, error) {
	if !w.Available() {
		return "", ErrNotConfigured
	}

	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("audio file not found: %w", err)
	}
	if info.Size() > MaxFileBytes {
		return "", ErrFileTooLarge
	}

	if filepath.Ext(path) != "" {
		return w.call(ctx, path)
	}

	ext := audio.ExtensionForMIME(mimeType)
	w.logger.Debug().Str("ext", ext).Str("mime", mimeType).
		Msg("materializing extension copy for transcription")

	var text string
	err = tempfile.WithExtension(path, ext, func(copyPath string) error {
		var callErr error
		text, callErr = w.call(ctx, copyPath)
		return callErr
	})
	return text, err
}

func (w *Whisper) call(ctx context.Context, path string) (string, error) {
	resp, err := w.client.CreateTranscription(ctx, openai.AudioRequest{
		Model:    openai.Whisper1,
		FilePath: path,
		Language: w.language,
		Format:   openai.AudioResponseFormatText,
	})
	if err != nil {
		return "", fmt.Errorf("whisper transcription: %w", err)
	}
	return resp.Text, nil
}

var _ Transcriber = (*Whisper)(nil)
