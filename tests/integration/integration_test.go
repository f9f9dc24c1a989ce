//go:build integration
// +build integration

// Integration tests require a running voxmod server.
// Run with: go test -tags=integration ./tests/integration/...
//
// Environment variables:
//   VOXMOD_SERVER_URL - server URL (default: http://localhost:3000)
//   VOXMOD_LIVE_CLONE - set to "1" to run tests that create and delete real
//                       voice models against the configured provider

package integration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	serverURL  string
	httpClient *http.Client
)

func TestMain(m *testing.M) {
	serverURL = os.Getenv("VOXMOD_SERVER_URL")
	if serverURL == "" {
		serverURL = "http://localhost:3000"
	}

	httpClient = &http.Client{
		Timeout: 120 * time.Second,
	}

	if !waitForServer(serverURL, 30*time.Second) {
		fmt.Fprintf(os.Stderr, "Server at %s not ready\n", serverURL)
		os.Exit(1)
	}

	os.Exit(m.Run())
}

func waitForServer(url string, timeout time.Duration) bool {
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		resp, err := http.Get(url + "/api/health")
		if err == nil && resp.StatusCode == http.StatusOK {
			resp.Body.Close()
			return true
		}
		if resp != nil {
			resp.Body.Close()
		}
		time.Sleep(1 * time.Second)
	}
	return false
}

func TestHealth(t *testing.T) {
	resp, err := httpClient.Get(serverURL + "/api/health")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var health map[string]interface{}
	err = json.NewDecoder(resp.Body).Decode(&health)
	require.NoError(t, err)

	assert.Equal(t, "ok", health["status"])

	caps, ok := health["capabilities"].(map[string]interface{})
	require.True(t, ok, "capabilities field should be present")
	assert.Contains(t, caps, "ffmpegAvailable")
	assert.Contains(t, caps, "whisperAvailable")
}

func TestCapabilities(t *testing.T) {
	resp, err := httpClient.Get(serverURL + "/api/capabilities")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var caps map[string]interface{}
	err = json.NewDecoder(resp.Body).Decode(&caps)
	require.NoError(t, err)

	audio, ok := caps["audio"].(map[string]interface{})
	require.True(t, ok)
	assert.NotEmpty(t, audio["supportedBrowserFormats"])

	trans, ok := caps["transcription"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "OpenAI Whisper", trans["service"])
}

func TestPresets(t *testing.T) {
	resp, err := httpClient.Get(serverURL + "/api/voice/presets")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var presets map[string]interface{}
	err = json.NewDecoder(resp.Body).Decode(&presets)
	require.NoError(t, err)

	table, ok := presets["presets"].(map[string]interface{})
	require.True(t, ok)
	assert.Contains(t, table, "consistent")
	assert.Contains(t, table, "balanced")
	assert.Contains(t, table, "expressive")
}

func TestGenerateValidation(t *testing.T) {
	body, _ := json.Marshal(map[string]string{"modelId": "anything"})

	resp, err := httpClient.Post(
		serverURL+"/api/voice/generate",
		"application/json",
		bytes.NewReader(body),
	)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var errResp map[string]interface{}
	json.NewDecoder(resp.Body).Decode(&errResp)
	assert.Equal(t, "Missing modelId or text", errResp["error"])
}

func TestUploadMissingFile(t *testing.T) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	require.NoError(t, mw.WriteField("name", "Integration Voice"))
	require.NoError(t, mw.Close())

	resp, err := httpClient.Post(
		serverURL+"/api/voice/upload",
		mw.FormDataContentType(),
		&buf,
	)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestUploadUnsupportedFormat(t *testing.T) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("audio", "notes.txt")
	require.NoError(t, err)
	part.Write([]byte("not audio at all"))
	require.NoError(t, mw.Close())

	resp, err := httpClient.Post(
		serverURL+"/api/voice/upload",
		mw.FormDataContentType(),
		&buf,
	)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var errResp map[string]interface{}
	json.NewDecoder(resp.Body).Decode(&errResp)
	assert.Contains(t, errResp["error"], "Unsupported audio format")
}

func TestWaitlist(t *testing.T) {
	body, _ := json.Marshal(map[string]string{
		"email": fmt.Sprintf("it-%d@example.com", time.Now().UnixMilli()),
		"type":  "fan",
	})

	resp, err := httpClient.Post(
		serverURL+"/api/waitlist",
		"application/json",
		bytes.NewReader(body),
	)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

// TestLiveCloneAndGenerate runs the full pipeline against the real provider.
// It creates a voice model, synthesizes speech with it, and deletes the model
// again. Guarded because model creation consumes provider credits.
func TestLiveCloneAndGenerate(t *testing.T) {
	if os.Getenv("VOXMOD_LIVE_CLONE") != "1" {
		t.Skip("set VOXMOD_LIVE_CLONE=1 to run provider-backed tests")
	}

	sample := os.Getenv("VOXMOD_SAMPLE_WAV")
	if sample == "" {
		t.Skip("set VOXMOD_SAMPLE_WAV to a local WAV sample")
	}

	data, err := os.ReadFile(sample)
	require.NoError(t, err)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	require.NoError(t, mw.WriteField("name", "Integration Test Voice"))
	require.NoError(t, mw.WriteField("text", "This is a sample recording for integration testing."))
	part, err := mw.CreateFormFile("audio", "sample.wav")
	require.NoError(t, err)
	part.Write(data)
	require.NoError(t, mw.Close())

	resp, err := httpClient.Post(
		serverURL+"/api/voice/upload",
		mw.FormDataContentType(),
		&buf,
	)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var upload struct {
		Success bool   `json:"success"`
		ModelID string `json:"modelId"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&upload))
	require.True(t, upload.Success)
	require.NotEmpty(t, upload.ModelID)
	t.Logf("Created voice model %s", upload.ModelID)

	defer func() {
		req, _ := http.NewRequest(http.MethodDelete, serverURL+"/api/voice/"+upload.ModelID, nil)
		delResp, err := httpClient.Do(req)
		if err == nil {
			delResp.Body.Close()
		}
	}()

	genBody, _ := json.Marshal(map[string]string{
		"modelId": upload.ModelID,
		"text":    "Hello from the integration test.",
	})
	genResp, err := httpClient.Post(
		serverURL+"/api/voice/generate",
		"application/json",
		bytes.NewReader(genBody),
	)
	require.NoError(t, err)
	defer genResp.Body.Close()

	require.Equal(t, http.StatusOK, genResp.StatusCode)

	var gen struct {
		Success  bool   `json:"success"`
		AudioURL string `json:"audioUrl"`
	}
	require.NoError(t, json.NewDecoder(genResp.Body).Decode(&gen))
	require.True(t, gen.Success)
	require.NotEmpty(t, gen.AudioURL)

	audioResp, err := httpClient.Get(serverURL + gen.AudioURL)
	require.NoError(t, err)
	defer audioResp.Body.Close()

	audio, err := io.ReadAll(audioResp.Body)
	require.NoError(t, err)
	assert.True(t, len(audio) > 1000, "synthesized audio should not be empty")
	t.Logf("Generated %d bytes of audio", len(audio))
}
