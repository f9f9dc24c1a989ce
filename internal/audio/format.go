package audio

import (
	"regexp"
	"strings"
)

// Class describes how an uploaded audio format relates to the cloning provider.
type Class int

const (
	// ClassNative formats are accepted by the provider as-is.
	ClassNative Class = iota
	// ClassNeedsTranscode formats must be converted to WAV first.
	ClassNeedsTranscode
	// ClassUnsupported formats are rejected at intake.
	ClassUnsupported
)

func (c Class) String() string {
	switch c {
	case ClassNative:
		return "native"
	case ClassNeedsTranscode:
		return "needs-transcode"
	default:
		return "unsupported"
	}
}

// NativeFormats are MIME types the provider accepts without conversion.
var NativeFormats = []string{
	"audio/mpeg",
	"audio/mp3",
	"audio/wav",
	"audio/wave",
	"audio/x-wav",
	"audio/flac",
	"audio/x-flac",
	"audio/mp4",
	"audio/x-m4a",
	"audio/aac",
}

// ConversionFormats are browser recording MIME types that need transcoding.
var ConversionFormats = []string{
	"audio/webm",
	"audio/ogg",
}

// SupportedFormats is the full intake allow-list.
var SupportedFormats = append(append([]string{}, NativeFormats...), ConversionFormats...)

var (
	nativeSet     = toSet(NativeFormats)
	conversionSet = toSet(ConversionFormats)

	// Some browsers report a generic or wrong MIME type, so the filename
	// extension acts as a fallback.
	extPattern = regexp.MustCompile(`(?i)\.(mp3|wav|m4a|mp4|webm|ogg|flac|aac)$`)
)

func toSet(list []string) map[string]struct{} {
	set := make(map[string]struct{}, len(list))
	for _, s := range list {
		set[s] = struct{}{}
	}
	return set
}

// Classify maps a declared MIME type and filename to a format class.
// The MIME type may carry parameters (e.g. "audio/webm;codecs=opus").
func Classify(mimeType, filename string) Class {
	mt := normalizeMIME(mimeType)

	if _, ok := nativeSet[mt]; ok {
		return ClassNative
	}
	if _, ok := conversionSet[mt]; ok {
		return ClassNeedsTranscode
	}

	m := extPattern.FindStringSubmatch(filename)
	if m == nil {
		return ClassUnsupported
	}

	switch strings.ToLower(m[1]) {
	case "webm", "ogg":
		return ClassNeedsTranscode
	default:
		return ClassNative
	}
}

func normalizeMIME(mimeType string) string {
	if i := strings.IndexByte(mimeType, ';'); i >= 0 {
		mimeType = mimeType[:i]
	}
	return strings.ToLower(strings.TrimSpace(mimeType))
}
