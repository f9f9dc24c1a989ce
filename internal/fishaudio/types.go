package fishaudio

// Fixed TTS quality profile. These are tuned values, not caller-configurable.
const (
	defaultFormat            = "mp3"
	defaultTemperature       = 0.5
	defaultTopP              = 0.6
	defaultChunkLength       = 250
	defaultLatency           = "normal"
	defaultRepetitionPenalty = 1.2
	defaultMP3Bitrate        = 192
	defaultSpeed             = 1.0
	defaultVolume            = 0

	// ttsModel selects the provider model via request header.
	ttsModel = "s1"
)

// TTSRequest is the provider's /v1/tts wire payload. The endpoint accepts
// msgpack bodies, which is how this client encodes it.
type TTSRequest struct {
	ReferenceID string `json:"reference_id" msgpack:"reference_id"`
	Text        string `json:"text" msgpack:"text"`
	Format      string `json:"format" msgpack:"format"`

	Temperature       float64 `json:"temperature" msgpack:"temperature"`
	TopP              float64 `json:"top_p" msgpack:"top_p"`
	ChunkLength       int     `json:"chunk_length" msgpack:"chunk_length"`
	Normalize         bool    `json:"normalize" msgpack:"normalize"`
	Latency           string  `json:"latency" msgpack:"latency"`
	RepetitionPenalty float64 `json:"repetition_penalty" msgpack:"repetition_penalty"`
	MP3Bitrate        int     `json:"mp3_bitrate" msgpack:"mp3_bitrate"`
	Speed             float64 `json:"speed" msgpack:"speed"`
	Volume            int     `json:"volume" msgpack:"volume"`
}

// NewTTSRequest builds a TTS request carrying the fixed quality profile.
func NewTTSRequest(modelID, text string) *TTSRequest {
	return &TTSRequest{
		ReferenceID:       modelID,
		Text:              text,
		Format:            defaultFormat,
		Temperature:       defaultTemperature,
		TopP:              defaultTopP,
		ChunkLength:       defaultChunkLength,
		Normalize:         true,
		Latency:           defaultLatency,
		RepetitionPenalty: defaultRepetitionPenalty,
		MP3Bitrate:        defaultMP3Bitrate,
		Speed:             defaultSpeed,
		Volume:            defaultVolume,
	}
}

// VoiceSample is the audio payload attached to a model-creation request.
type VoiceSample struct {
	Filename    string
	ContentType string
	Data        []byte
}

// CreateModelRequest describes a voice model to create. Type and TrainMode
// take the only values the provider accepts for cloning.
type CreateModelRequest struct {
	Title               string
	Description         string
	Visibility          string
	EnhanceAudioQuality bool
	Tags                []string
	Voice               VoiceSample
	// Text is the transcript of the sample; omitted from the request when
	// empty.
	Text string
}

// Model is a provider-side voice model. The provider names the identifier
// field "_id" or "id" depending on the endpoint; accept either.
type Model struct {
	ID    string `json:"_id"`
	AltID string `json:"id"`
	Title string `json:"title"`
	State string `json:"state"`
}

// ModelID returns whichever identifier alias the provider populated.
func (m *Model) ModelID() string {
	if m.ID != "" {
		return m.ID
	}
	return m.AltID
}

// listModelsResponse is the paginated /model listing envelope.
type listModelsResponse struct {
	Items []map[string]interface{} `json:"items"`
}
