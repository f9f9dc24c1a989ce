package api

import (
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/voxmod/voxmod/internal/audio"
)

// maxUploadBytes is the intake size limit. The transcription path applies
// its own, larger limit separately.
const maxUploadBytes = 10 << 20

// HTTPError represents an error with an associated HTTP status code.
type HTTPError struct {
	Status  int
	Message string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// uploadedFile is one accepted audio asset saved to the upload dir. The
// saved file carries no extension, mirroring common upload middleware.
type uploadedFile struct {
	Path     string
	MimeType string
	Filename string
	Size     int64
	Class    audio.Class
}

// saveUpload validates and persists the "audio" multipart field. Callers own
// removal of the returned path.
func (h *Handler) saveUpload(r *http.Request) (*uploadedFile, *HTTPError) {
	file, header, err := r.FormFile("audio")
	if err != nil {
		return nil, &HTTPError{Status: http.StatusBadRequest, Message: "No audio file provided"}
	}
	defer file.Close()

	if header.Size > maxUploadBytes {
		return nil, &HTTPError{Status: http.StatusBadRequest, Message: "Audio file too large (max 10MB)"}
	}

	mimeType := header.Header.Get("Content-Type")
	class := audio.Classify(mimeType, header.Filename)
	if class == audio.ClassUnsupported {
		return nil, &HTTPError{
			Status: http.StatusBadRequest,
			Message: fmt.Sprintf(
				"Unsupported audio format: %s. Supported formats: MP3, WAV, M4A, WebM, OGG, FLAC",
				mimeType),
		}
	}

	if err := os.MkdirAll(h.cfg.Audio.UploadDir, 0o755); err != nil {
		return nil, &HTTPError{Status: http.StatusInternalServerError, Message: "Failed to store upload"}
	}

	tmp, err := os.CreateTemp(h.cfg.Audio.UploadDir, "upload-*")
	if err != nil {
		return nil, &HTTPError{Status: http.StatusInternalServerError, Message: "Failed to store upload"}
	}

	if _, err := io.Copy(tmp, file); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return nil, &HTTPError{Status: http.StatusInternalServerError, Message: "Failed to store upload"}
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return nil, &HTTPError{Status: http.StatusInternalServerError, Message: "Failed to store upload"}
	}

	return &uploadedFile{
		Path:     tmp.Name(),
		MimeType: mimeType,
		Filename: header.Filename,
		Size:     header.Size,
		Class:    class,
	}, nil
}
