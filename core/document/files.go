package document

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ForExt returns the codec for a file extension (dot included). The
// second result reports whether the extension is known.
func ForExt(ext string) (Codec, bool) {
	switch strings.ToLower(ext) {
	case ".json":
		return JSON{Indent: true}, true
	case ".yaml", ".yml":
		return YAML{}, true
	}
	return nil, false
}

// LoadFile reads one document from path, picking the codec by file
// extension.
func LoadFile(path string) (map[string]any, error) {
	codec, ok := ForExt(filepath.Ext(path))
	if !ok {
		return nil, fmt.Errorf("load %s: unsupported document extension %q", path, filepath.Ext(path))
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("load document: %w", err)
	}
	defer f.Close()

	m, err := codec.Load(f)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return m, nil
}

// DumpFile writes one document to path, picking the codec by file
// extension.
func DumpFile(path string, m map[string]any) error {
	codec, ok := ForExt(filepath.Ext(path))
	if !ok {
		return fmt.Errorf("dump %s: unsupported document extension %q", path, filepath.Ext(path))
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("dump document: %w", err)
	}
	if err := codec.Dump(f, m); err != nil {
		f.Close()
		return fmt.Errorf("dump %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("dump %s: %w", path, err)
	}
	return nil
}
