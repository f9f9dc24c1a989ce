package audio

var mimeToExt = map[string]string{
	"audio/mpeg":   ".mp3",
	"audio/mp3":    ".mp3",
	"audio/wav":    ".wav",
	"audio/wave":   ".wav",
	"audio/x-wav":  ".wav",
	"audio/mp4":    ".m4a",
	"audio/x-m4a":  ".m4a",
	"audio/aac":    ".m4a",
	"audio/webm":   ".webm",
	"audio/ogg":    ".ogg",
	"audio/flac":   ".flac",
	"audio/x-flac": ".flac",
}

// ExtensionForMIME returns a filename extension (with leading dot) for the
// given MIME type. The transcription provider requires filenames carrying a
// real extension, so unknown types fall back to ".mp3".
func ExtensionForMIME(mimeType string) string {
	if ext, ok := mimeToExt[normalizeMIME(mimeType)]; ok {
		return ext
	}
	return ".mp3"
}

// ContentTypeForFormat returns the MIME type for a synthesized audio format.
func ContentTypeForFormat(format string) string {
	switch format {
	case "wav":
		return "audio/wav"
	case "mp3":
		return "audio/mpeg"
	case "pcm":
		return "audio/pcm"
	default:
		return "application/octet-stream"
	}
}
