package fishaudio

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/voxmod/voxmod/internal/config"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(&config.ProviderConfig{
		BaseURL: srv.URL,
		APIKey:  "test-key",
		Timeout: 10 * time.Second,
	})
}

func TestCreateModel_Multipart(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/model", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		require.NoError(t, r.ParseMultipartForm(32<<20))
		assert.Equal(t, "tts", r.FormValue("type"))
		assert.Equal(t, "My Voice", r.FormValue("title"))
		assert.Equal(t, "fast", r.FormValue("train_mode"))
		assert.Equal(t, "private", r.FormValue("visibility"))
		assert.Equal(t, "true", r.FormValue("enhance_audio_quality"))
		assert.Equal(t, []string{"voxmod", "clone"}, r.MultipartForm.Value["tags"])
		assert.Equal(t, "hello world", r.FormValue("texts"))

		files := r.MultipartForm.File["voices"]
		require.Len(t, files, 1)
		assert.Equal(t, "sample.wav", files[0].Filename)
		assert.Equal(t, "audio/wav", files[0].Header.Get("Content-Type"))

		f, err := files[0].Open()
		require.NoError(t, err)
		defer f.Close()
		data, _ := io.ReadAll(f)
		assert.Equal(t, []byte("RIFF..."), data)

		_ = json.NewEncoder(w).Encode(map[string]string{"_id": "model-abc", "state": "training"})
	})

	model, err := client.CreateModel(context.Background(), &CreateModelRequest{
		Title:               "My Voice",
		Description:         "Voice clone",
		Visibility:          "private",
		EnhanceAudioQuality: true,
		Tags:                []string{"voxmod", "clone"},
		Voice: VoiceSample{
			Filename:    "sample.wav",
			ContentType: "audio/wav",
			Data:        []byte("RIFF..."),
		},
		Text: "hello world",
	})
	require.NoError(t, err)
	assert.Equal(t, "model-abc", model.ModelID())
	assert.Equal(t, "training", model.State)
}

func TestCreateModel_OmitsEmptyTranscript(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(32<<20))
		_, present := r.MultipartForm.Value["texts"]
		assert.False(t, present, "empty transcript must not be sent")
		_ = json.NewEncoder(w).Encode(map[string]string{"id": "model-x"})
	})

	model, err := client.CreateModel(context.Background(), &CreateModelRequest{
		Title:      "No Transcript",
		Visibility: "private",
		Voice:      VoiceSample{Filename: "a.mp3", ContentType: "audio/mpeg", Data: []byte("x")},
	})
	require.NoError(t, err)
	assert.Equal(t, "model-x", model.ModelID(), "id alias must be accepted too")
}

func TestCreateModel_ProviderRejection(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnsupportedMediaType)
		_, _ = w.Write([]byte(`{"detail":"bad format"}`))
	})

	_, err := client.CreateModel(context.Background(), &CreateModelRequest{
		Title: "x",
		Voice: VoiceSample{Filename: "a.avi", ContentType: "video/avi", Data: []byte("x")},
	})
	require.Error(t, err)

	pe, ok := AsProviderError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusUnsupportedMediaType, pe.StatusCode)
	assert.True(t, IsFormatRejection(err))
}

func TestGenerateSpeech_MsgpackWire(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/tts", r.URL.Path)
		assert.Equal(t, "application/msgpack", r.Header.Get("Content-Type"))
		assert.Equal(t, "s1", r.Header.Get("model"))

		body, _ := io.ReadAll(r.Body)
		var req TTSRequest
		require.NoError(t, msgpack.Unmarshal(body, &req))
		assert.Equal(t, "model-abc", req.ReferenceID)
		assert.Equal(t, "say this", req.Text)
		assert.Equal(t, "mp3", req.Format)
		assert.Equal(t, 0.5, req.Temperature)
		assert.Equal(t, 0.6, req.TopP)
		assert.Equal(t, 250, req.ChunkLength)
		assert.True(t, req.Normalize)
		assert.Equal(t, 1.2, req.RepetitionPenalty)
		assert.Equal(t, 192, req.MP3Bitrate)

		w.Header().Set("Content-Type", "audio/mpeg")
		_, _ = w.Write([]byte("mp3 audio"))
	})

	audio, contentType, err := client.GenerateSpeech(context.Background(), NewTTSRequest("model-abc", "say this"))
	require.NoError(t, err)
	assert.Equal(t, []byte("mp3 audio"), audio)
	assert.Equal(t, "audio/mpeg", contentType)
}

func TestGenerateSpeech_ProviderError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusPaymentRequired)
		_, _ = w.Write([]byte(`{"detail":"insufficient credit"}`))
	})

	_, _, err := client.GenerateSpeech(context.Background(), NewTTSRequest("m", "t"))
	require.Error(t, err)

	pe, ok := AsProviderError(err)
	require.True(t, ok)
	assert.Contains(t, pe.Message, "insufficient credit")
}

func TestListModels_ItemsEnvelope(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/model", r.URL.Path)
		assert.Equal(t, "100", r.URL.Query().Get("page_size"))
		assert.Equal(t, "true", r.URL.Query().Get("self"))
		_, _ = w.Write([]byte(`{"items":[{"_id":"m1","title":"Voice 1"}]}`))
	})

	voices, err := client.ListModels(context.Background())
	require.NoError(t, err)

	items, ok := voices.([]map[string]interface{})
	require.True(t, ok)
	require.Len(t, items, 1)
	assert.Equal(t, "m1", items[0]["_id"])
}

func TestListModels_RawArrayFallback(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[{"_id":"m2"}]`))
	})

	voices, err := client.ListModels(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, voices)
}

func TestDeleteModel(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/model/model-abc", r.URL.Path)
		w.WriteHeader(http.StatusOK)
	})

	require.NoError(t, client.DeleteModel(context.Background(), "model-abc"))
}

func TestDeleteModel_NotFound(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"detail":"no such model"}`))
	})

	err := client.DeleteModel(context.Background(), "gone")
	require.Error(t, err)
	assert.True(t, func() bool { _, ok := AsProviderError(err); return ok }())
}

func TestClient_Unreachable(t *testing.T) {
	client := NewClient(&config.ProviderConfig{
		BaseURL: "http://127.0.0.1:1",
		APIKey:  "k",
		Timeout: time.Second,
	})

	_, _, err := client.GenerateSpeech(context.Background(), NewTTSRequest("m", "t"))
	assert.ErrorIs(t, err, ErrUnavailable)
}
