package out

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"physiq/internal/modules/plugin/domain"
	pluginout "physiq/internal/modules/plugin/port/out"
)

// FileManifestStore reads plugins.json from <configDir>/plugins. A
// missing file means no plugins, not an error. Unknown manifest fields
// are rejected so typos surface instead of silently disabling checks.
type FileManifestStore struct {
	basePath string
	path     string
}

func NewFileManifestStore(basePath string) pluginout.ManifestStore {
	return &FileManifestStore{basePath: basePath, path: filepath.Join(basePath, "plugins", "plugins.json")}
}

func (s *FileManifestStore) Load(_ context.Context) ([]domain.Manifest, error) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return []domain.Manifest{}, nil
		}
		return nil, fmt.Errorf("read plugin manifest store: %w", err)
	}

	decoder := json.NewDecoder(bytes.NewReader(raw))
	decoder.DisallowUnknownFields()
	var manifests []domain.Manifest
	if err := decoder.Decode(&manifests); err != nil {
		return nil, fmt.Errorf("decode plugin manifests: %w", err)
	}

	// Relative binary paths are anchored at the config dir so manifests
	// stay portable across machines.
	for i, m := range manifests {
		if m.Binary != "" && !filepath.IsAbs(m.Binary) {
			manifests[i].Binary = filepath.Clean(filepath.Join(s.basePath, m.Binary))
		}
	}
	return manifests, nil
}
