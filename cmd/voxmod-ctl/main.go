package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
)

var (
	serverURL string
	apiKey    string
	output    string
)

var rootCmd = &cobra.Command{
	Use:   "voxmod-ctl",
	Short: "voxmod server management tool",
	Long: `voxmod-ctl is a management tool for voxmod servers.

Commands:
  health        Check server health
  capabilities  Show server capabilities
  voices        Manage cloned voices
  transcribe    Transcribe an audio file`,
}

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check server health",
	RunE:  runHealth,
}

var capabilitiesCmd = &cobra.Command{
	Use:   "capabilities",
	Short: "Show server capabilities",
	RunE:  runCapabilities,
}

var voicesCmd = &cobra.Command{
	Use:   "voices",
	Short: "Manage cloned voices",
}

var voicesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all cloned voices",
	RunE:  runVoicesList,
}

var voicesDeleteCmd = &cobra.Command{
	Use:   "delete [model-id]",
	Short: "Delete a cloned voice",
	Args:  cobra.ExactArgs(1),
	RunE:  runVoicesDelete,
}

var transcribeCmd = &cobra.Command{
	Use:   "transcribe [audio-file]",
	Short: "Transcribe an audio file",
	Args:  cobra.ExactArgs(1),
	RunE:  runTranscribe,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&serverURL, "server", "s", "http://localhost:3000", "voxmod server URL")
	rootCmd.PersistentFlags().StringVar(&apiKey, "api-key", "", "API key for authentication")
	rootCmd.PersistentFlags().StringVarP(&output, "output", "o", "text", "Output format: text, json")

	rootCmd.AddCommand(healthCmd)
	rootCmd.AddCommand(capabilitiesCmd)
	rootCmd.AddCommand(voicesCmd)
	rootCmd.AddCommand(transcribeCmd)

	voicesCmd.AddCommand(voicesListCmd)
	voicesCmd.AddCommand(voicesDeleteCmd)
}

func runHealth(cmd *cobra.Command, args []string) error {
	resp, err := makeRequest(http.MethodGet, serverURL+"/api/health", nil, "")
	if err != nil {
		return err
	}

	if output == "json" {
		fmt.Println(string(resp))
		return nil
	}

	var health map[string]interface{}
	_ = json.Unmarshal(resp, &health)

	fmt.Printf("Status: %s\n", health["status"])
	if caps, ok := health["capabilities"].(map[string]interface{}); ok {
		fmt.Printf("FFmpeg:  %v\n", caps["ffmpegAvailable"])
		fmt.Printf("Whisper: %v\n", caps["whisperAvailable"])
	}

	return nil
}

func runCapabilities(cmd *cobra.Command, args []string) error {
	resp, err := makeRequest(http.MethodGet, serverURL+"/api/capabilities", nil, "")
	if err != nil {
		return err
	}

	if output == "json" {
		fmt.Println(string(resp))
		return nil
	}

	var caps map[string]interface{}
	_ = json.Unmarshal(resp, &caps)

	if audio, ok := caps["audio"].(map[string]interface{}); ok {
		fmt.Printf("Audio: %s\n", audio["recommendation"])
	}
	if trans, ok := caps["transcription"].(map[string]interface{}); ok {
		fmt.Printf("Transcription: %s\n", trans["recommendation"])
	}

	return nil
}

func runVoicesList(cmd *cobra.Command, args []string) error {
	resp, err := makeRequest(http.MethodGet, serverURL+"/api/voices", nil, "")
	if err != nil {
		return err
	}

	if output == "json" {
		fmt.Println(string(resp))
		return nil
	}

	var list struct {
		Success bool                     `json:"success"`
		Voices  []map[string]interface{} `json:"voices"`
	}
	_ = json.Unmarshal(resp, &list)

	if len(list.Voices) == 0 {
		fmt.Println("No voices found")
		return nil
	}

	fmt.Println("Cloned Voices:")
	for _, v := range list.Voices {
		id := v["_id"]
		if id == nil || id == "" {
			id = v["id"]
		}
		fmt.Printf("  - %v  %v\n", id, v["title"])
	}

	return nil
}

func runVoicesDelete(cmd *cobra.Command, args []string) error {
	modelID := args[0]

	resp, err := makeRequest(http.MethodDelete, serverURL+"/api/voice/"+modelID, nil, "")
	if err != nil {
		return err
	}

	if output == "json" {
		fmt.Println(string(resp))
		return nil
	}

	var result struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}
	_ = json.Unmarshal(resp, &result)

	if result.Success {
		fmt.Printf("✓ Voice '%s' deleted successfully\n", modelID)
	} else {
		fmt.Printf("✗ Failed: %s\n", result.Message)
	}

	return nil
}

func runTranscribe(cmd *cobra.Command, args []string) error {
	audioFile := args[0]

	body, contentType, err := audioForm(audioFile)
	if err != nil {
		return err
	}

	resp, err := makeRequest(http.MethodPost, serverURL+"/api/transcribe", body, contentType)
	if err != nil {
		return err
	}

	if output == "json" {
		fmt.Println(string(resp))
		return nil
	}

	var result struct {
		Success        bool   `json:"success"`
		Text           string `json:"text"`
		CharacterCount int    `json:"characterCount"`
	}
	_ = json.Unmarshal(resp, &result)

	fmt.Println(result.Text)
	fmt.Fprintf(os.Stderr, "(%d characters)\n", result.CharacterCount)

	return nil
}

// audioForm packs a local file into the multipart shape the server expects.
func audioForm(path string) ([]byte, string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, "", fmt.Errorf("failed to read audio file: %w", err)
	}

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("audio", filepath.Base(path))
	if err != nil {
		return nil, "", err
	}
	if _, err := part.Write(data); err != nil {
		return nil, "", err
	}
	if err := mw.Close(); err != nil {
		return nil, "", err
	}

	return buf.Bytes(), mw.FormDataContentType(), nil
}

func makeRequest(method, url string, body []byte, contentType string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 120*time.Second)
	defer cancel()

	var bodyReader io.Reader
	if body != nil {
		bodyReader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, bodyReader)
	if err != nil {
		return nil, err
	}

	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	} else if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+apiKey)
	}

	client := &http.Client{Timeout: 120 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("server error (status %d): %s", resp.StatusCode, string(respBody))
	}

	return respBody, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
