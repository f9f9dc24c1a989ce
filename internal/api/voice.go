package api

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"os"
	"path/filepath"
	"unicode/utf8"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/voxmod/voxmod/internal/audio"
	"github.com/voxmod/voxmod/internal/config"
	"github.com/voxmod/voxmod/internal/fishaudio"
	"github.com/voxmod/voxmod/internal/schema"
	"github.com/voxmod/voxmod/internal/voice"
)

// HandleVoiceUpload accepts a voice sample plus options, runs the cloning
// pipeline, and returns the created model id with format and transcript
// provenance.
func (h *Handler) HandleVoiceUpload(w http.ResponseWriter, r *http.Request) {
	up, httpErr := h.saveUpload(r)
	if httpErr != nil {
		WriteError(w, httpErr.Status, httpErr.Message)
		return
	}
	defer os.Remove(up.Path)

	result, err := h.orch.Upload(r.Context(), voice.UploadInput{
		Path:           up.Path,
		MimeType:       up.MimeType,
		Filename:       up.Filename,
		Title:          r.FormValue("name"),
		Text:           r.FormValue("text"),
		AutoTranscribe: r.FormValue("autoTranscribe") != "false",
	})
	if err != nil {
		h.logger.Error().Err(err).Msg("voice upload failed")

		if fishaudio.IsFormatRejection(err) {
			WriteErrorDetails(w, http.StatusInternalServerError,
				"Audio format not accepted by Fish Audio",
				providerDetails(err),
				"Try uploading an MP3 or WAV file, or record using Chrome browser.")
			return
		}
		WriteErrorDetails(w, http.StatusInternalServerError, "Failed to create voice model", providerDetails(err), "")
		return
	}

	WriteJSON(w, http.StatusOK, schema.UploadResponse{
		Success: true,
		ModelID: result.ModelID,
		Message: "Voice model created successfully",
		FormatInfo: schema.FormatInfo{
			OriginalFormat: result.Format.OriginalMime,
			UploadedFormat: result.Format.UploadedMime,
			Converted:      result.Format.Converted,
		},
		Transcription: transcriptionInfo(result.Transcript, h.caps.Transcription),
	})
}

// HandleTranscribe runs standalone speech-to-text on an uploaded file.
func (h *Handler) HandleTranscribe(w http.ResponseWriter, r *http.Request) {
	if !h.caps.Transcription {
		WriteJSON(w, http.StatusServiceUnavailable, schema.TranscribeResponse{
			Error:   "Transcription service not available",
			Message: "OpenAI API key not configured",
		})
		return
	}

	up, httpErr := h.saveUpload(r)
	if httpErr != nil {
		WriteError(w, httpErr.Status, httpErr.Message)
		return
	}
	defer os.Remove(up.Path)

	path := up.Path
	mimeType := up.MimeType
	if up.Class == audio.ClassNeedsTranscode {
		// Whisper handles WebM/OGG, but the cleaned WAV transcribes more
		// reliably for low-bitrate browser recordings.
		if converted, ok := h.transcoder.ToWAV(r.Context(), up.Path); ok {
			defer os.Remove(converted)
			path = converted
			mimeType = "audio/wav"
		}
	}

	text, err := h.transcriber.Transcribe(r.Context(), path, mimeType)
	if err != nil {
		h.logger.Error().Err(err).Msg("transcription failed")
		WriteErrorDetails(w, http.StatusInternalServerError, "Transcription failed", err.Error(), "")
		return
	}

	WriteJSON(w, http.StatusOK, schema.TranscribeResponse{
		Success:        true,
		Text:           text,
		CharacterCount: utf8.RuneCountInString(text),
	})
}

// HandleGenerate synthesizes speech for an existing voice model. Depending
// on deployment mode the audio is either written under the generated dir
// and referenced by path, or inlined as a base64 data URL.
func (h *Handler) HandleGenerate(w http.ResponseWriter, r *http.Request) {
	var req schema.GenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	data, _, err := h.provider.GenerateSpeech(r.Context(), fishaudio.NewTTSRequest(req.ModelID, req.Text))
	if err != nil {
		h.logger.Error().Err(err).Str("model_id", req.ModelID).Msg("speech generation failed")
		WriteErrorDetails(w, http.StatusInternalServerError, "Failed to generate audio", providerDetails(err), "")
		return
	}

	audioURL, err := h.storeGenerated(data)
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to store generated audio")
		WriteError(w, http.StatusInternalServerError, "Failed to store generated audio")
		return
	}

	WriteJSON(w, http.StatusOK, schema.GenerateResponse{
		Success:  true,
		AudioURL: audioURL,
		Message:  "Audio generated successfully",
	})
}

// HandleVoiceDelete removes a provider-side voice model.
func (h *Handler) HandleVoiceDelete(w http.ResponseWriter, r *http.Request) {
	modelID := chi.URLParam(r, "modelId")
	if modelID == "" {
		WriteError(w, http.StatusBadRequest, "Missing modelId")
		return
	}

	if err := h.provider.DeleteModel(r.Context(), modelID); err != nil {
		h.logger.Error().Err(err).Str("model_id", modelID).Msg("model deletion failed")
		WriteErrorDetails(w, http.StatusInternalServerError, "Failed to delete voice model", providerDetails(err), "")
		return
	}

	WriteJSON(w, http.StatusOK, schema.DeleteResponse{Success: true, Message: "Voice model deleted"})
}

// storeGenerated persists synthesized audio per the configured response mode
// and returns the URL clients should fetch.
func (h *Handler) storeGenerated(data []byte) (string, error) {
	if h.cfg.Audio.ResponseMode == config.ResponseModeInline {
		return "data:audio/mp3;base64," + base64.StdEncoding.EncodeToString(data), nil
	}

	if err := os.MkdirAll(h.cfg.Audio.GeneratedDir, 0o755); err != nil {
		return "", err
	}
	name := "voice-" + uuid.NewString() + ".mp3"
	if err := os.WriteFile(filepath.Join(h.cfg.Audio.GeneratedDir, name), data, 0o644); err != nil {
		return "", err
	}
	return "/generated/" + name, nil
}

// transcriptionInfo maps pipeline provenance onto the response shape. Text
// and Error are pointers so absent values serialize as null.
func transcriptionInfo(prov voice.Provenance, available bool) schema.TranscriptionInfo {
	info := schema.TranscriptionInfo{
		Source:                     string(prov.Source),
		CharacterCount:             prov.CharacterCount,
		AutoTranscriptionAvailable: available,
	}
	if prov.Text != "" {
		text := prov.Text
		info.Text = &text
	}
	if prov.Err != "" {
		errMsg := prov.Err
		info.Error = &errMsg
	}
	return info
}
