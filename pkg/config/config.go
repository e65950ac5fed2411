package config

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

const (
	configFileName = "config.yaml"
	dirMode        = 0700
	fileMode       = 0600

	// GenAIKeyEnvVar gates the LLM license classifier. Absent key
	// means the feature is disabled, not an error.
	GenAIKeyEnvVar      = "GEN_AI_STUDIO_API_KEY"
	genAIModelEnvVar    = "GENAI_MODEL"
	genAIEndpointEnvVar = "GENAI_ENDPOINT"
	gitHubTokenEnvVar   = "GITHUB_TOKEN"
	hubTokenEnvVar      = "HF_TOKEN"
	logLevelEnvVar      = "LOG_LEVEL"
	logFileEnvVar       = "LOG_FILE"

	defaultGenAIModel    = "llama3.1:latest"
	defaultGenAIEndpoint = "https://genai.rcac.purdue.edu/api/chat/completions"
)

// Config holds the process-wide settings, read once at startup.
// Secrets come only from the environment (or OS keychain), never
// from the config file.
type Config struct {
	GenAIModel    string `yaml:"genaiModel"`
	GenAIEndpoint string `yaml:"genaiEndpoint"`
	LogLevel      string `yaml:"logLevel"`
	LogFile       string `yaml:"logFile"`

	GenAIKey    string `yaml:"-"`
	GitHubToken string `yaml:"-"`
	HubToken    string `yaml:"-"`
}

func getDefaultConfig() *Config {
	return &Config{
		GenAIModel:    defaultGenAIModel,
		GenAIEndpoint: defaultGenAIEndpoint,
		LogLevel:      "warn",
	}
}

// Save writes the config to dirPath/config.yaml.
func Save(dirPath string, c *Config) error {
	if dirPath == "" {
		return errors.New("config directory required")
	}
	if c == nil {
		return errors.New("config required")
	}
	b, err := yaml.Marshal(c)
	if err != nil {
		return errors.Wrap(err, "failed to marshal config")
	}
	path := filepath.Join(dirPath, configFileName)
	if err := os.WriteFile(path, b, fileMode); err != nil {
		return errors.Wrapf(err, "failed to write config file: %s", configFileName)
	}
	return nil
}

// ReadOrCreate reads the config from the directory (creating a default one
// on first run), then overlays environment variables on top.
func ReadOrCreate(dirPath string) (*Config, error) {
	if dirPath == "" {
		return nil, errors.New("config directory required")
	}

	if _, err := os.Stat(dirPath); errors.Is(err, os.ErrNotExist) {
		if err := os.MkdirAll(dirPath, dirMode); err != nil {
			return nil, errors.Wrapf(err, "failed to create dir: %s", dirPath)
		}
	}

	path := filepath.Join(dirPath, configFileName)

	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if err := Save(dirPath, getDefaultConfig()); err != nil {
			return nil, errors.Wrap(err, "failed to create default config")
		}
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "error opening config file: %s", path)
	}
	defer f.Close()

	b, err := io.ReadAll(f)
	if err != nil {
		return nil, errors.Wrapf(err, "error reading config file: %s", path)
	}

	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, errors.Wrapf(err, "error unmarshalling config file: %s", path)
	}

	c.applyDefaults()
	c.applyEnv()

	return &c, nil
}

func (c *Config) applyDefaults() {
	d := getDefaultConfig()
	if c.GenAIModel == "" {
		c.GenAIModel = d.GenAIModel
	}
	if c.GenAIEndpoint == "" {
		c.GenAIEndpoint = d.GenAIEndpoint
	}
	if c.LogLevel == "" {
		c.LogLevel = d.LogLevel
	}
}

func (c *Config) applyEnv() {
	if v := strings.TrimSpace(os.Getenv(GenAIKeyEnvVar)); v != "" {
		c.GenAIKey = v
	}
	if v := strings.TrimSpace(os.Getenv(genAIModelEnvVar)); v != "" {
		c.GenAIModel = v
	}
	if v := strings.TrimSpace(os.Getenv(genAIEndpointEnvVar)); v != "" {
		c.GenAIEndpoint = v
	}
	if v := strings.TrimSpace(os.Getenv(gitHubTokenEnvVar)); v != "" {
		c.GitHubToken = v
	}
	if v := strings.TrimSpace(os.Getenv(hubTokenEnvVar)); v != "" {
		c.HubToken = v
	}
	if v := strings.TrimSpace(os.Getenv(logLevelEnvVar)); v != "" {
		c.LogLevel = v
	}
	if v := strings.TrimSpace(os.Getenv(logFileEnvVar)); v != "" {
		c.LogFile = v
	}
}

// GetOrCreateHomeDir returns the app home directory for the current user,
// creating it when missing. The created flag reports whether it was new.
func GetOrCreateHomeDir(name string) (path string, created bool, err error) {
	if name == "" {
		return "", false, errors.New("name cannot be empty")
	}

	if !strings.HasPrefix(name, ".") {
		name = "." + name
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", false, errors.Wrap(err, "failed to get user home dir")
	}

	dir := filepath.Join(home, name)
	if _, err := os.Stat(dir); errors.Is(err, os.ErrNotExist) {
		if err := os.Mkdir(dir, dirMode); err != nil {
			return "", false, errors.Wrapf(err, "failed to create dir: %s", dir)
		}
		created = true
	}
	return dir, created, nil
}
