package schema

// ErrorResponse is the client-facing error payload. Details carries the
// provider diagnostic when one exists; Suggestion a remediation hint.
type ErrorResponse struct {
	Error      string      `json:"error"`
	Details    interface{} `json:"details,omitempty"`
	Suggestion string      `json:"suggestion,omitempty"`
}

// TranscriptionInfo records transcript provenance on upload responses.
type TranscriptionInfo struct {
	Source                     string  `json:"source"`
	Text                       *string `json:"text"`
	CharacterCount             int     `json:"characterCount"`
	AutoTranscriptionAvailable bool    `json:"autoTranscriptionAvailable"`
	Error                      *string `json:"error"`
}

// FormatInfo reports what happened to the uploaded audio's encoding.
type FormatInfo struct {
	OriginalFormat string `json:"originalFormat"`
	UploadedFormat string `json:"uploadedFormat"`
	Converted      bool   `json:"converted"`
}

// UploadResponse is returned by a successful voice upload.
type UploadResponse struct {
	Success       bool              `json:"success"`
	ModelID       string            `json:"modelId"`
	Message       string            `json:"message"`
	FormatInfo    FormatInfo        `json:"formatInfo"`
	Transcription TranscriptionInfo `json:"transcription"`
}

// TranscribeResponse is returned by the standalone transcription endpoint.
type TranscribeResponse struct {
	Success        bool   `json:"success"`
	Text           string `json:"text,omitempty"`
	CharacterCount int    `json:"characterCount,omitempty"`
	Error          string `json:"error,omitempty"`
	Message        string `json:"message,omitempty"`
}

// GenerateResponse is returned by speech generation. AudioURL is either a
// path under /generated or a base64 data URL depending on deployment mode.
type GenerateResponse struct {
	Success  bool   `json:"success"`
	AudioURL string `json:"audioUrl"`
	Message  string `json:"message"`
}

// AudioCapabilities describes the format and conversion surface.
type AudioCapabilities struct {
	FFmpegAvailable          bool     `json:"ffmpegAvailable"`
	SupportedBrowserFormats  []string `json:"supportedBrowserFormats"`
	NativeFormats            []string `json:"nativeFormats"`
	FormatsNeedingConversion []string `json:"formatsNeedingConversion"`
	ConversionEnabled        bool     `json:"conversionEnabled"`
	Recommendation           string   `json:"recommendation"`
}

// TranscriptionCapabilities describes the speech-to-text surface.
type TranscriptionCapabilities struct {
	WhisperAvailable bool     `json:"whisperAvailable"`
	Service          string   `json:"service"`
	MaxFileSize      string   `json:"maxFileSize"`
	SupportedFormats []string `json:"supportedFormats"`
	Recommendation   string   `json:"recommendation"`
}

// CapabilitiesResponse is the full /api/capabilities payload.
type CapabilitiesResponse struct {
	Server        ServerInfo                `json:"server"`
	Audio         AudioCapabilities         `json:"audio"`
	Transcription TranscriptionCapabilities `json:"transcription"`
	API           APIInfo                   `json:"api"`
}

// ServerInfo carries static build/platform metadata.
type ServerInfo struct {
	Version  string `json:"version"`
	Platform string `json:"platform"`
}

// APIInfo reports provider configuration state.
type APIInfo struct {
	ProviderConfigured    bool   `json:"providerConfigured"`
	ProviderBaseURL       string `json:"providerBaseUrl"`
	TranscriberConfigured bool   `json:"transcriberConfigured"`
}

// HealthCapabilities is the compact capability summary on /api/health.
type HealthCapabilities struct {
	FFmpegAvailable   bool     `json:"ffmpegAvailable"`
	WhisperAvailable  bool     `json:"whisperAvailable"`
	SupportedFormats  []string `json:"supportedFormats"`
	NativeFormats     []string `json:"nativeFormats"`
	ConversionFormats []string `json:"conversionFormats"`
}

// HealthResponse is the /api/health payload.
type HealthResponse struct {
	Status       string             `json:"status"`
	Message      string             `json:"message"`
	Capabilities HealthCapabilities `json:"capabilities"`
}

// VoicesResponse lists the caller's provider-side models.
type VoicesResponse struct {
	Success bool        `json:"success"`
	Voices  interface{} `json:"voices"`
}

// DeleteResponse acknowledges model deletion.
type DeleteResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// SignupUser is the mock user returned by the signup stub.
type SignupUser struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Type      string `json:"type"`
	CreatedAt string `json:"createdAt"`
}

// SignupResponse is the signup stub payload.
type SignupResponse struct {
	Success bool       `json:"success"`
	Message string     `json:"message"`
	User    SignupUser `json:"user"`
}

// WaitlistResponse acknowledges a waitlist join.
type WaitlistResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
