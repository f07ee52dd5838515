package project

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/piwi3910/fenestra/internal/model"
)

//go:embed styles/default.toml
var defaultStyleTOML []byte

// DefaultStyle returns the built-in style.
func DefaultStyle() (model.Style, error) {
	return ParseStyle(defaultStyleTOML)
}

// ParseStyle decodes a TOML style. Keys the style format does not know are
// rejected so typos do not silently fall back to the error catalog.
func ParseStyle(data []byte) (model.Style, error) {
	var style model.Style
	md, err := toml.Decode(string(data), &style)
	if err != nil {
		return model.Style{}, fmt.Errorf("failed to parse style: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return model.Style{}, fmt.Errorf("%w: %s", model.ErrUnknownKey, strings.Join(keys, ", "))
	}
	if style.Openings == nil {
		style.Openings = map[string]model.OpeningDef{}
	}
	if style.Assets == nil {
		style.Assets = map[string][]model.CatalogEntry{}
	}
	if err := style.Validate(); err != nil {
		return model.Style{}, err
	}
	return style, nil
}

// LoadStyle reads a style file. An empty path returns the built-in style.
func LoadStyle(path string) (model.Style, error) {
	if path == "" {
		return DefaultStyle()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return model.Style{}, fmt.Errorf("failed to read style file: %w", err)
	}
	style, err := ParseStyle(data)
	if err != nil {
		return model.Style{}, fmt.Errorf("%s: %w", path, err)
	}
	if style.Name == "" {
		style.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return style, nil
}

// LoadStyles reads every *.toml file in dir, keyed by style name.
func LoadStyles(dir string) (map[string]model.Style, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*.toml"))
	if err != nil {
		return nil, err
	}
	styles := make(map[string]model.Style, len(paths))
	for _, path := range paths {
		style, err := LoadStyle(path)
		if err != nil {
			return nil, err
		}
		styles[style.Name] = style
	}
	return styles, nil
}

// SaveStyle writes a style as TOML, creating missing parent directories.
func SaveStyle(path string, style model.Style) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(style); err != nil {
		return fmt.Errorf("failed to encode style: %w", err)
	}
	return os.WriteFile(path, buf.Bytes(), 0644)
}
