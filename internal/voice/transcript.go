package voice

// TranscriptSource records where an upload's transcript came from.
type TranscriptSource string

const (
	// SourceNone means no transcript was supplied or attempted.
	SourceNone TranscriptSource = "none"
	// SourceUser means the caller supplied the text.
	SourceUser TranscriptSource = "user"
	// SourceAuto means automatic transcription produced the text.
	SourceAuto TranscriptSource = "auto"
	// SourceFailed means automatic transcription was attempted and failed;
	// the model is still created, without a transcript.
	SourceFailed TranscriptSource = "failed"
)

// MaxTranscriptChars is the provider's transcript limit. Longer text is
// truncated, never rejected.
const MaxTranscriptChars = 500

// Provenance describes the transcript attached to a created model.
type Provenance struct {
	Source         TranscriptSource
	Text           string
	CharacterCount int
	// Err carries the auto-transcription failure message when Source is
	// SourceFailed.
	Err string
}

// TruncateTranscript caps text at MaxTranscriptChars characters.
func TruncateTranscript(text string) string {
	runes := []rune(text)
	if len(runes) <= MaxTranscriptChars {
		return text
	}
	return string(runes[:MaxTranscriptChars])
}
