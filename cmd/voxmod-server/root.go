package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile string

	Version   = "dev"
	Commit    = "none"
	BuildDate = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "voxmod-server",
	Short: "Voice cloning and TTS API server",
	Long: `voxmod-server fronts the Fish Audio voice-cloning API for browser
clients. It accepts audio uploads, normalizes formats with FFmpeg,
optionally transcribes samples with Whisper, and relays synthesized
speech back to the caller.

Start the server:
  voxmod-server

Start with custom settings:
  voxmod-server --listen 0.0.0.0:8080 --provider-url https://api.fish.audio

Use environment variables:
  PORT=8080 FISH_AUDIO_API_KEY=... OPENAI_API_KEY=... voxmod-server`,
	RunE: runServer,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("voxmod-server %s\n", Version)
		fmt.Printf("  Commit:     %s\n", Commit)
		fmt.Printf("  Build Date: %s\n", BuildDate)
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./config.yaml)")

	rootCmd.Flags().String("listen", "0.0.0.0:3000", "Server listen address")
	rootCmd.Flags().Duration("read-timeout", 30*time.Second, "HTTP read timeout")
	rootCmd.Flags().Duration("write-timeout", 120*time.Second, "HTTP write timeout")

	rootCmd.Flags().String("provider-url", "https://api.fish.audio", "Fish Audio API base URL")
	rootCmd.Flags().Duration("provider-timeout", 120*time.Second, "Provider request timeout")

	rootCmd.Flags().String("api-key", "", "API key for authentication (empty = no auth)")

	rootCmd.Flags().String("upload-dir", "uploads", "Directory for uploaded audio")
	rootCmd.Flags().String("generated-dir", "generated", "Directory for synthesized audio")
	rootCmd.Flags().String("response-mode", "file", "Generated audio delivery (file, inline)")

	rootCmd.Flags().String("log-level", "info", "Log level (debug, info, warn, error)")
	rootCmd.Flags().String("log-format", "json", "Log format (json, text)")

	bindFlags()

	rootCmd.AddCommand(versionCmd)
}

func bindFlags() {
	bindings := []struct {
		key  string
		flag string
	}{
		{"server.listen", "listen"},
		{"server.read_timeout", "read-timeout"},
		{"server.write_timeout", "write-timeout"},
		{"provider.base_url", "provider-url"},
		{"provider.timeout", "provider-timeout"},
		{"auth.api_key", "api-key"},
		{"audio.upload_dir", "upload-dir"},
		{"audio.generated_dir", "generated-dir"},
		{"audio.response_mode", "response-mode"},
		{"logging.level", "log-level"},
		{"logging.format", "log-format"},
	}

	for _, b := range bindings {
		flag := rootCmd.Flags().Lookup(b.flag)
		if flag == nil {
			continue
		}
		_ = viper.BindPFlag(b.key, flag)
	}
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.AddConfigPath("./configs")
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
	}

	viper.SetEnvPrefix("VOXMOD")
	viper.AutomaticEnv()

	viper.BindEnv("server.listen", "VOXMOD_LISTEN")
	viper.BindEnv("provider.base_url", "FISH_AUDIO_BASE_URL")
	viper.BindEnv("provider.api_key", "FISH_AUDIO_API_KEY")
	viper.BindEnv("transcription.api_key", "OPENAI_API_KEY")
	viper.BindEnv("auth.api_key", "VOXMOD_API_KEY")
	viper.BindEnv("audio.upload_dir", "VOXMOD_UPLOAD_DIR")
	viper.BindEnv("audio.generated_dir", "VOXMOD_GENERATED_DIR")
	viper.BindEnv("audio.response_mode", "VOXMOD_AUDIO_RESPONSE")
	viper.BindEnv("logging.level", "VOXMOD_LOG_LEVEL")
	viper.BindEnv("logging.format", "VOXMOD_LOG_FORMAT")

	viper.SetDefault("server.listen", "0.0.0.0:3000")
	viper.SetDefault("server.read_timeout", 30*time.Second)
	viper.SetDefault("server.write_timeout", 120*time.Second)
	viper.SetDefault("provider.base_url", "https://api.fish.audio")
	viper.SetDefault("provider.timeout", 120*time.Second)
	viper.SetDefault("auth.api_key", "")
	viper.SetDefault("audio.upload_dir", "uploads")
	viper.SetDefault("audio.generated_dir", "generated")
	viper.SetDefault("audio.response_mode", "file")
	viper.SetDefault("logging.level", "info")
	viper.SetDefault("logging.format", "json")

	bindFlags()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
