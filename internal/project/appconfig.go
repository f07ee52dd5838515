package project

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/piwi3910/fenestra/internal/model"
)

const (
	configDirName  = ".fenestra"
	configFileName = "config.json"
)

// DefaultConfigDir is ~/.fenestra, or .fenestra in the working directory
// when there is no home directory.
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, configDirName)
}

// DefaultConfigPath is where the CLI keeps its config unless --config says
// otherwise.
func DefaultConfigPath() string {
	return filepath.Join(DefaultConfigDir(), configFileName)
}

// SaveAppConfig writes the config as indented JSON, creating its directory.
func SaveAppConfig(path string, config model.AppConfig) error {
	return writeJSON(path, config)
}

// LoadAppConfig reads the config at path over model.DefaultAppConfig, so a
// missing file yields the defaults and a partial one only overrides the keys
// it names. Keys the config does not know fail with model.ErrUnknownKey.
func LoadAppConfig(path string) (model.AppConfig, error) {
	config := model.DefaultAppConfig()

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return config, nil
	}
	if err != nil {
		return model.AppConfig{}, fmt.Errorf("failed to read %s: %w", filepath.Base(path), err)
	}
	if err := decodeStrict(data, &config); err != nil {
		return model.AppConfig{}, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	if config.RecentProjects == nil {
		config.RecentProjects = []string{}
	}
	return config, nil
}
