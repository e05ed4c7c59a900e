package theme

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

type preferenceFile struct {
	Theme Mode `yaml:"theme"`
}

// FilePersister keeps the preference in a small YAML file.
type FilePersister struct {
	Path string
}

func NewFilePersister(path string) *FilePersister {
	return &FilePersister{Path: path}
}

func (p *FilePersister) Load() (Mode, bool, error) {
	raw, err := os.ReadFile(p.Path)
	if errors.Is(err, fs.ErrNotExist) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("read theme preference: %w", err)
	}

	var pref preferenceFile
	if err := yaml.Unmarshal(raw, &pref); err != nil {
		return "", false, fmt.Errorf("unmarshal theme preference: %w", err)
	}

	switch pref.Theme {
	case ModeDark, ModeLight:
		return pref.Theme, true, nil
	default:
		return "", false, nil
	}
}

func (p *FilePersister) Save(mode Mode) error {
	raw, err := yaml.Marshal(preferenceFile{Theme: mode})
	if err != nil {
		return fmt.Errorf("marshal theme preference: %w", err)
	}
	if dir := filepath.Dir(p.Path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create theme preference dir: %w", err)
		}
	}
	if err := os.WriteFile(p.Path, raw, 0o644); err != nil {
		return fmt.Errorf("write theme preference: %w", err)
	}
	return nil
}
