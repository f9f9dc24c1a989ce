package audio

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify_NativeAllowList(t *testing.T) {
	for _, mt := range NativeFormats {
		assert.Equal(t, ClassNative, Classify(mt, "sample"), mt)
	}
}

func TestClassify_ConversionFormats(t *testing.T) {
	assert.Equal(t, ClassNeedsTranscode, Classify("audio/webm", "recording"))
	assert.Equal(t, ClassNeedsTranscode, Classify("audio/ogg", "recording"))
}

func TestClassify_MIMEParametersStripped(t *testing.T) {
	assert.Equal(t, ClassNeedsTranscode, Classify("audio/webm;codecs=opus", "recording"))
}

func TestClassify_ExtensionFallback(t *testing.T) {
	tests := []struct {
		name     string
		mime     string
		filename string
		want     Class
	}{
		{"generic mime, mp3 ext", "application/octet-stream", "voice.mp3", ClassNative},
		{"generic mime, uppercase ext", "application/octet-stream", "voice.WAV", ClassNative},
		{"generic mime, webm ext", "application/octet-stream", "recording.webm", ClassNeedsTranscode},
		{"generic mime, ogg ext", "binary/unknown", "recording.OGG", ClassNeedsTranscode},
		{"unknown mime, unknown ext", "video/avi", "clip.avi", ClassUnsupported},
		{"unknown mime, no ext", "text/plain", "notes", ClassUnsupported},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.mime, tt.filename))
		})
	}
}

func TestExtensionForMIME(t *testing.T) {
	assert.Equal(t, ".mp3", ExtensionForMIME("audio/mpeg"))
	assert.Equal(t, ".wav", ExtensionForMIME("audio/x-wav"))
	assert.Equal(t, ".m4a", ExtensionForMIME("audio/mp4"))
	assert.Equal(t, ".webm", ExtensionForMIME("audio/webm"))

	// Unknown types default to .mp3 so the transcription provider always
	// sees a recognized extension.
	assert.Equal(t, ".mp3", ExtensionForMIME("application/octet-stream"))
	assert.Equal(t, ".mp3", ExtensionForMIME(""))
}

func TestContentTypeForFormat(t *testing.T) {
	assert.Equal(t, "audio/mpeg", ContentTypeForFormat("mp3"))
	assert.Equal(t, "audio/wav", ContentTypeForFormat("wav"))
	assert.Equal(t, "application/octet-stream", ContentTypeForFormat("flv"))
}
