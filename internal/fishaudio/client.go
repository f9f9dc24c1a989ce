// Package fishaudio is the client for the Fish Audio voice-cloning and TTS
// API. Model management lives under /model (no version prefix); speech
// generation under /v1/tts.
package fishaudio

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/voxmod/voxmod/internal/audio"
	"github.com/voxmod/voxmod/internal/config"
)

// Provider is the external voice-cloning surface the rest of the server
// depends on.
type Provider interface {
	CreateModel(ctx context.Context, req *CreateModelRequest) (*Model, error)
	GenerateSpeech(ctx context.Context, req *TTSRequest) ([]byte, string, error)
	ListModels(ctx context.Context) (interface{}, error)
	DeleteModel(ctx context.Context, modelID string) error
}

// Client talks to the Fish Audio HTTP API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
}

// NewClient creates a provider client with connection pooling.
func NewClient(cfg *config.ProviderConfig) *Client {
	transport := &http.Transport{
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 100,
		IdleConnTimeout:     90 * time.Second,
	}

	return &Client{
		httpClient: &http.Client{
			Transport: transport,
			Timeout:   cfg.Timeout,
		},
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
	}
}

// Configured reports whether an API credential is present. The key is not
// validated at startup; the provider rejects bad keys per request.
func (c *Client) Configured() bool {
	return c.apiKey != ""
}

// CreateModel uploads a voice sample and creates a cloning model in a single
// multipart request.
func (c *Client) CreateModel(ctx context.Context, req *CreateModelRequest) (*Model, error) {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)

	fields := [][2]string{
		{"type", "tts"},
		{"title", req.Title},
		{"train_mode", "fast"},
		{"visibility", req.Visibility},
		{"description", req.Description},
		{"enhance_audio_quality", fmt.Sprintf("%t", req.EnhanceAudioQuality)},
	}
	for _, f := range fields {
		if err := mw.WriteField(f[0], f[1]); err != nil {
			return nil, fmt.Errorf("encode form field %s: %w", f[0], err)
		}
	}
	// The provider expects repeated "tags" fields for array values.
	for _, tag := range req.Tags {
		if err := mw.WriteField("tags", tag); err != nil {
			return nil, fmt.Errorf("encode tag: %w", err)
		}
	}

	part, err := createAudioPart(mw, "voices", req.Voice.Filename, req.Voice.ContentType)
	if err != nil {
		return nil, fmt.Errorf("encode audio part: %w", err)
	}
	if _, err := part.Write(req.Voice.Data); err != nil {
		return nil, fmt.Errorf("write audio part: %w", err)
	}

	if req.Text != "" {
		if err := mw.WriteField("texts", req.Text); err != nil {
			return nil, fmt.Errorf("encode transcript: %w", err)
		}
	}

	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("finalize multipart body: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/model", &body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	httpReq.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return nil, &ProviderError{StatusCode: resp.StatusCode, Message: string(bodyBytes)}
	}

	var model Model
	if err := json.NewDecoder(resp.Body).Decode(&model); err != nil {
		return nil, fmt.Errorf("decode model response: %w", err)
	}

	return &model, nil
}

// GenerateSpeech synthesizes audio for the given model and text and returns
// the bytes plus their content type. The request body goes over msgpack.
func (c *Client) GenerateSpeech(ctx context.Context, req *TTSRequest) ([]byte, string, error) {
	body, err := msgpack.Marshal(req)
	if err != nil {
		return nil, "", fmt.Errorf("encode tts request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/tts", bytes.NewReader(body))
	if err != nil {
		return nil, "", fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	httpReq.Header.Set("Content-Type", "application/msgpack")
	httpReq.Header.Set("model", ttsModel)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return nil, "", &ProviderError{StatusCode: resp.StatusCode, Message: string(bodyBytes)}
	}

	audioBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", fmt.Errorf("read audio response: %w", err)
	}

	return audioBytes, audio.ContentTypeForFormat(req.Format), nil
}

// ListModels fetches the caller's own voice models.
func (c *Client) ListModels(ctx context.Context) (interface{}, error) {
	u := c.baseURL + "/model?page_size=100&self=true"
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return nil, &ProviderError{StatusCode: resp.StatusCode, Message: string(bodyBytes)}
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read list response: %w", err)
	}

	// Paginated responses wrap models in "items"; fall back to the raw
	// payload otherwise.
	var envelope listModelsResponse
	if err := json.Unmarshal(raw, &envelope); err == nil && envelope.Items != nil {
		return envelope.Items, nil
	}

	var fallback interface{}
	if err := json.Unmarshal(raw, &fallback); err != nil {
		return nil, fmt.Errorf("decode list response: %w", err)
	}
	return fallback, nil
}

// DeleteModel removes a voice model by id.
func (c *Client) DeleteModel(ctx context.Context, modelID string) error {
	u := c.baseURL + "/model/" + url.PathEscape(modelID)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodDelete, u, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return &ProviderError{StatusCode: resp.StatusCode, Message: string(bodyBytes)}
	}

	return nil
}

func createAudioPart(mw *multipart.Writer, field, filename, contentType string) (io.Writer, error) {
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, field, filename))
	h.Set("Content-Type", contentType)
	return mw.CreatePart(h)
}

var _ Provider = (*Client)(nil)
