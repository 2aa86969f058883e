package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/akyairhashvil/studybuddy/internal/pomodoro"
	"github.com/akyairhashvil/studybuddy/internal/util"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Environment overrides.
const (
	BaseURLEnv    = "STUDYBUDDY_BASE_URL"
	ModelEnv      = "STUDYBUDDY_MODEL"
	StorageDirEnv = "STUDYBUDDY_STORAGE_DIR"
)

// Settings is the runtime configuration shared by every host.
type Settings struct {
	APIKey         string        `yaml:"api_key"`
	BaseURL        string        `yaml:"base_url"`
	Model          string        `yaml:"model"`
	RequestTimeout time.Duration `yaml:"request_timeout"`
	StorageDir     string        `yaml:"storage_dir"`
	WorkMinutes    int           `yaml:"work_minutes"`
	BreakMinutes   int           `yaml:"break_minutes"`
	Sound          bool          `yaml:"sound"`
	LogFile        string        `yaml:"log_file"`
	ListenAddr     string        `yaml:"listen_addr"`
}

// Defaults returns settings that work without any config file, apart from
// the API key.
func Defaults() Settings {
	dataDir := util.DataDir(AppName)
	return Settings{
		BaseURL:        DefaultBaseURL,
		Model:          DefaultModel,
		RequestTimeout: DefaultRequestTimeout,
		StorageDir:     filepath.Join(dataDir, StorageDirName),
		WorkMinutes:    pomodoro.DefaultWorkMinutes,
		BreakMinutes:   pomodoro.DefaultBreakMinutes,
		Sound:          true,
		LogFile:        filepath.Join(dataDir, LogFileName),
		ListenAddr:     DefaultListenAddr,
	}
}

// DefaultConfigPath is $XDG_CONFIG_HOME/studybuddy/config.yaml.
func DefaultConfigPath() string {
	return filepath.Join(util.ConfigDir(AppName), ConfigFileName)
}

// Load layers defaults, the YAML file at configPath (DefaultConfigPath when
// empty), the dotenv file at envFile (skipped when empty) and the process
// environment. Missing files are not errors.
func Load(configPath, envFile string) (Settings, error) {
	s := Defaults()
	if configPath == "" {
		configPath = DefaultConfigPath()
	}
	if err := loadFile(configPath, &s); err != nil {
		return s, err
	}
	if envFile != "" {
		// godotenv never overrides variables that are already set.
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return s, fmt.Errorf("load %s: %w", envFile, err)
		}
	}
	applyEnv(&s)
	return s, s.Validate()
}

func loadFile(path string, s *Settings) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, s); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}

func applyEnv(s *Settings) {
	if v := strings.TrimSpace(os.Getenv(APIKeyEnv)); v != "" {
		s.APIKey = v
	}
	if v := strings.TrimSpace(os.Getenv(BaseURLEnv)); v != "" {
		s.BaseURL = v
	}
	if v := strings.TrimSpace(os.Getenv(ModelEnv)); v != "" {
		s.Model = v
	}
	if v := strings.TrimSpace(os.Getenv(StorageDirEnv)); v != "" {
		s.StorageDir = v
	}
}

// Validate checks everything except the API key, which hosts may prompt for.
func (s Settings) Validate() error {
	if err := s.Pomodoro().Validate(); err != nil {
		return err
	}
	if strings.TrimSpace(s.BaseURL) == "" {
		return fmt.Errorf("base_url must not be empty")
	}
	if strings.TrimSpace(s.Model) == "" {
		return fmt.Errorf("model must not be empty")
	}
	if s.RequestTimeout <= 0 {
		return fmt.Errorf("request_timeout must be positive, got %s", s.RequestTimeout)
	}
	if strings.TrimSpace(s.StorageDir) == "" {
		return fmt.Errorf("storage_dir must not be empty")
	}
	return nil
}

// Pomodoro returns the timer durations as a pomodoro.Config.
func (s Settings) Pomodoro() pomodoro.Config {
	return pomodoro.Config{WorkMinutes: s.WorkMinutes, BreakMinutes: s.BreakMinutes}
}

// Save writes the settings as YAML, leaving the API key out.
func (s Settings) Save(path string) error {
	s.APIKey = ""
	data, err := yaml.Marshal(s)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
