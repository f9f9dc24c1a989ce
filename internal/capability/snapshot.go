// Package capability exposes which optional features are available in the
// current process. The snapshot is computed once at startup and passed into
// every component that needs it; nothing mutates it afterwards.
package capability

import "github.com/voxmod/voxmod/internal/audio"

// Snapshot is the read-only capability record for one process lifetime.
type Snapshot struct {
	Transcoding   bool
	Transcription bool

	SupportedFormats  []string
	NativeFormats     []string
	ConversionFormats []string
}

// New builds a snapshot from probed availability flags. Format sets come
// from the intake allow-lists.
func New(transcoding, transcription bool) Snapshot {
	return Snapshot{
		Transcoding:       transcoding,
		Transcription:     transcription,
		SupportedFormats:  audio.SupportedFormats,
		NativeFormats:     audio.NativeFormats,
		ConversionFormats: audio.ConversionFormats,
	}
}
