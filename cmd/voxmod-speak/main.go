package main

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/voxmod/voxmod/internal/schema"
)

var (
	serverURL  string
	modelID    string
	outputFile string
	apiKey     string
)

var rootCmd = &cobra.Command{
	Use:   "voxmod-speak [text]",
	Short: "Generate speech in a cloned voice",
	Long: `voxmod-speak synthesizes speech through a voxmod server using a
previously cloned voice model.

Examples:
  # Generate speech and play via stdout pipe
  voxmod-speak --model abc123 "Hello, world!" | mpv -

  # Save to file
  voxmod-speak --model abc123 -o hello.mp3 "Hello, world!"

  # Use custom server
  voxmod-speak --server http://localhost:3000 --model abc123 "Hello"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSpeak,
}

func init() {
	rootCmd.Flags().StringVarP(&serverURL, "server", "s", "http://localhost:3000", "voxmod server URL")
	rootCmd.Flags().StringVarP(&modelID, "model", "m", "", "Voice model id (required)")
	rootCmd.Flags().StringVarP(&outputFile, "output", "o", "", "Output file (default: stdout)")
	rootCmd.Flags().StringVar(&apiKey, "api-key", "", "API key for authentication")

	_ = rootCmd.MarkFlagRequired("model")
}

func runSpeak(cmd *cobra.Command, args []string) error {
	text := strings.Join(args, " ")

	req := schema.GenerateRequest{ModelID: modelID, Text: text}
	body, err := json.Marshal(&req)
	if err != nil {
		return fmt.Errorf("failed to encode request: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 120*time.Second)
	defer cancel()

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, serverURL+"/api/voice/generate", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if apiKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+apiKey)
	}

	client := &http.Client{Timeout: 120 * time.Second}
	resp, err := client.Do(httpReq)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("server error (status %d): %s", resp.StatusCode, string(bodyBytes))
	}

	var result schema.GenerateResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	audio, err := fetchAudio(ctx, client, result.AudioURL)
	if err != nil {
		return err
	}

	if outputFile != "" {
		if err := os.WriteFile(outputFile, audio, 0o644); err != nil {
			return fmt.Errorf("failed to write output file: %w", err)
		}
		fmt.Fprintf(os.Stderr, "Audio saved to %s (%d bytes)\n", outputFile, len(audio))
		return nil
	}

	_, err = os.Stdout.Write(audio)
	return err
}

// fetchAudio resolves the audioUrl the server returned: either a base64 data
// URL (inline mode) or a path under /generated (file mode).
func fetchAudio(ctx context.Context, client *http.Client, audioURL string) ([]byte, error) {
	if strings.HasPrefix(audioURL, "data:") {
		_, encoded, found := strings.Cut(audioURL, ",")
		if !found {
			return nil, fmt.Errorf("malformed data URL in response")
		}
		audio, err := base64.StdEncoding.DecodeString(encoded)
		if err != nil {
			return nil, fmt.Errorf("failed to decode inline audio: %w", err)
		}
		return audio, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, serverURL+audioURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create audio request: %w", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("audio fetch failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("audio fetch failed (status %d)", resp.StatusCode)
	}

	return io.ReadAll(resp.Body)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
