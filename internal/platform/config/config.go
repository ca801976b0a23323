package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

type Config struct {
	DataDir string
	DBPath  string
	LogPath string

	// Summarization capability. Empty API key means the capability is
	// unconfigured and the reader falls back to a static message.
	SummaryAPIKey string
	SummaryModel  string
}

// New resolves the application data directory. An empty dataDir falls back
// to ~/.lumina. A .env file inside the data directory is loaded if present
// so the summarizer key never has to live in the shell profile.
func New(dataDir string) (Config, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return Config{}, fmt.Errorf("resolve home dir: %w", err)
		}
		dataDir = filepath.Join(home, ".lumina")
	}
	_ = godotenv.Load(filepath.Join(dataDir, ".env"))

	model := os.Getenv("LUMINA_SUMMARY_MODEL")
	if model == "" {
		model = "gpt-4o-mini"
	}
	return Config{
		DataDir:       dataDir,
		DBPath:        filepath.Join(dataDir, "lumina.db"),
		LogPath:       filepath.Join(dataDir, "lumina.log"),
		SummaryAPIKey: os.Getenv("LUMINA_OPENAI_API_KEY"),
		SummaryModel:  model,
	}, nil
}
