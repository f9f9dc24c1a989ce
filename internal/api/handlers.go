package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"runtime"
	"time"

	"github.com/rs/zerolog"

	"github.com/voxmod/voxmod/internal/capability"
	"github.com/voxmod/voxmod/internal/config"
	"github.com/voxmod/voxmod/internal/fishaudio"
	"github.com/voxmod/voxmod/internal/schema"
	"github.com/voxmod/voxmod/internal/transcode"
	"github.com/voxmod/voxmod/internal/transcribe"
	"github.com/voxmod/voxmod/internal/voice"
	"github.com/voxmod/voxmod/internal/waitlist"
)

// Version is the reported API version.
const Version = "1.0.0"

// Handler carries the wired dependencies for all routes.
type Handler struct {
	cfg         *config.Config
	provider    fishaudio.Provider
	orch        *voice.Orchestrator
	transcoder  transcode.Transcoder
	transcriber transcribe.Transcriber
	caps        capability.Snapshot
	waitlist    *waitlist.Store
	logger      zerolog.Logger
}

// NewHandler builds the route handler set.
func NewHandler(
	cfg *config.Config,
	provider fishaudio.Provider,
	orch *voice.Orchestrator,
	tc transcode.Transcoder,
	tr transcribe.Transcriber,
	caps capability.Snapshot,
	wl *waitlist.Store,
	logger zerolog.Logger,
) *Handler {
	return &Handler{
		cfg:         cfg,
		provider:    provider,
		orch:        orch,
		transcoder:  tc,
		transcriber: tr,
		caps:        caps,
		waitlist:    wl,
		logger:      logger,
	}
}

// HandleHealth reports liveness plus the capability summary.
func (h *Handler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, schema.HealthResponse{
		Status:  "ok",
		Message: "voxmod API is running",
		Capabilities: schema.HealthCapabilities{
			FFmpegAvailable:   h.caps.Transcoding,
			WhisperAvailable:  h.caps.Transcription,
			SupportedFormats:  h.caps.SupportedFormats,
			NativeFormats:     h.caps.NativeFormats,
			ConversionFormats: h.caps.ConversionFormats,
		},
	})
}

// HandleCapabilities reports the full capability snapshot plus static
// metadata so clients can adapt behavior and messaging up front.
func (h *Handler) HandleCapabilities(w http.ResponseWriter, r *http.Request) {
	audioRec := "Install FFmpeg for WebM/OGG conversion support. Safari and Chrome recordings work best."
	if h.caps.Transcoding {
		audioRec = "All audio formats supported with automatic conversion"
	}
	transcriptionRec := "Set OPENAI_API_KEY to enable automatic transcription"
	if h.caps.Transcription {
		transcriptionRec = "Automatic transcription enabled - improves voice cloning quality"
	}

	providerConfigured := true
	if c, ok := h.provider.(*fishaudio.Client); ok {
		providerConfigured = c.Configured()
	}

	WriteJSON(w, http.StatusOK, schema.CapabilitiesResponse{
		Server: schema.ServerInfo{
			Version:  Version,
			Platform: runtime.GOOS,
		},
		Audio: schema.AudioCapabilities{
			FFmpegAvailable:          h.caps.Transcoding,
			SupportedBrowserFormats:  h.caps.SupportedFormats,
			NativeFormats:            h.caps.NativeFormats,
			FormatsNeedingConversion: h.caps.ConversionFormats,
			ConversionEnabled:        h.caps.Transcoding,
			Recommendation:           audioRec,
		},
		Transcription: schema.TranscriptionCapabilities{
			WhisperAvailable: h.caps.Transcription,
			Service:          "OpenAI Whisper",
			MaxFileSize:      "25MB",
			SupportedFormats: []string{"mp3", "mp4", "m4a", "wav", "webm", "ogg", "flac"},
			Recommendation:   transcriptionRec,
		},
		API: schema.APIInfo{
			ProviderConfigured:    providerConfigured,
			ProviderBaseURL:       h.cfg.Provider.BaseURL,
			TranscriberConfigured: h.caps.Transcription,
		},
	})
}

// HandleVoices lists the caller's provider-side voice models.
func (h *Handler) HandleVoices(w http.ResponseWriter, r *http.Request) {
	voices, err := h.provider.ListModels(r.Context())
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to fetch voices")
		WriteErrorDetails(w, http.StatusInternalServerError, "Failed to fetch voices", providerDetails(err), "")
		return
	}

	WriteJSON(w, http.StatusOK, schema.VoicesResponse{Success: true, Voices: voices})
}

// HandlePresets returns the fixed quality-preset table.
func (h *Handler) HandlePresets(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, schema.Presets())
}

// HandleSignup is a stub: it validates fields and returns a mock user.
// Nothing is persisted and no credentials are verified.
func (h *Handler) HandleSignup(w http.ResponseWriter, r *http.Request) {
	var req schema.SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	now := time.Now()
	h.logger.Info().Str("email", req.Email).Str("type", req.Type).Msg("new user signup")

	WriteJSON(w, http.StatusOK, schema.SignupResponse{
		Success: true,
		Message: "Account created successfully",
		User: schema.SignupUser{
			ID:        fmt.Sprintf("%d", now.UnixMilli()),
			Name:      req.Name,
			Email:     req.Email,
			Type:      req.Type,
			CreatedAt: now.UTC().Format(time.RFC3339),
		},
	})
}

// HandleWaitlist appends to the waitlist log.
func (h *Handler) HandleWaitlist(w http.ResponseWriter, r *http.Request) {
	var req schema.WaitlistRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.waitlist.Add(waitlist.Entry{Email: req.Email, Type: req.Type}); err != nil {
		h.logger.Error().Err(err).Msg("waitlist append failed")
		WriteError(w, http.StatusInternalServerError, "Failed to join waitlist")
		return
	}

	WriteJSON(w, http.StatusOK, schema.WaitlistResponse{Success: true, Message: "Successfully joined waitlist"})
}

// providerDetails extracts the provider diagnostic payload for error
// responses, falling back to the plain error string.
func providerDetails(err error) interface{} {
	if pe, ok := fishaudio.AsProviderError(err); ok {
		var payload interface{}
		if jsonErr := json.Unmarshal([]byte(pe.Message), &payload); jsonErr == nil {
			return payload
		}
		return pe.Message
	}
	return err.Error()
}
