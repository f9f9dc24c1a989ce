package schema

// QualityPreset is a recommended TTS parameter pairing.
type QualityPreset struct {
	Temperature float64 `json:"temperature"`
	TopP        float64 `json:"top_p"`
	Description string  `json:"description"`
}

// RecordingGuidelines documents how to capture a good voice sample.
type RecordingGuidelines struct {
	Duration    string   `json:"duration"`
	SampleRate  string   `json:"sampleRate"`
	Environment string   `json:"environment"`
	Content     string   `json:"content"`
	Tips        []string `json:"tips"`
}

// PresetsResponse is the static /api/voice/presets payload.
type PresetsResponse struct {
	Presets             map[string]QualityPreset `json:"presets"`
	RecordingGuidelines RecordingGuidelines      `json:"recordingGuidelines"`
	CurrentDefaults     map[string]interface{}   `json:"currentDefaults"`
}

// Presets returns the fixed quality-preset table.
func Presets() PresetsResponse {
	return PresetsResponse{
		Presets: map[string]QualityPreset{
			"consistent": {
				Temperature: 0.4,
				TopP:        0.5,
				Description: "Most consistent with original voice",
			},
			"balanced": {
				Temperature: 0.6,
				TopP:        0.7,
				Description: "Balance of consistency and variation",
			},
			"expressive": {
				Temperature: 0.8,
				TopP:        0.85,
				Description: "More expressive and natural",
			},
		},
		RecordingGuidelines: RecordingGuidelines{
			Duration:    "30-45 seconds per sample",
			SampleRate:  "44.1kHz or 48kHz",
			Environment: "Quiet room, no echo or background noise",
			Content:     "Natural speech with varied intonation",
			Tips: []string{
				"Speak at your natural pace",
				"Include varied emotions and expressions",
				"Avoid background music or noise",
				"Use a quality microphone if available",
				"Multiple samples improve quality (future feature)",
			},
		},
		CurrentDefaults: map[string]interface{}{
			"temperature":        0.5,
			"top_p":              0.6,
			"chunk_length":       250,
			"normalize":          true,
			"latency":            "normal",
			"repetition_penalty": 1.2,
			"mp3_bitrate":        192,
		},
	}
}
