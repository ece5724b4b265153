package replay

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/vmihailenco/msgpack/v5"
	"gopkg.in/yaml.v3"
)

// Format is a recording encoding.
type Format int

const (
	FormatYAML Format = iota
	FormatMsgpack
)

// FormatFor picks the encoding from a file extension.
func FormatFor(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".msgpack", ".mp":
		return FormatMsgpack, nil
	}
	return 0, fmt.Errorf("replay: unsupported file extension %q", filepath.Ext(path))
}

// Marshal encodes rec.
func Marshal(rec Recording, f Format) ([]byte, error) {
	switch f {
	case FormatYAML:
		return yaml.Marshal(&rec)
	case FormatMsgpack:
		return msgpack.Marshal(&rec)
	}
	return nil, fmt.Errorf("replay: unknown format %d", f)
}

// Unmarshal decodes a recording.
func Unmarshal(data []byte, f Format) (Recording, error) {
	var rec Recording
	var err error
	switch f {
	case FormatYAML:
		err = yaml.Unmarshal(data, &rec)
	case FormatMsgpack:
		err = msgpack.Unmarshal(data, &rec)
	default:
		err = fmt.Errorf("unknown format %d", f)
	}
	if err != nil {
		return Recording{}, fmt.Errorf("replay: cannot decode recording: %w", err)
	}
	return rec, nil
}

// Save writes rec to path in the format its extension names.
func Save(path string, rec Recording) error {
	f, err := FormatFor(path)
	if err != nil {
		return err
	}
	data, err := Marshal(rec, f)
	if err != nil {
		return fmt.Errorf("replay: cannot encode recording: %w", err)
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("replay: cannot create directory %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("replay: cannot write %s: %w", path, err)
	}
	return nil
}

// Load reads a recording from path.
func Load(path string) (Recording, error) {
	f, err := FormatFor(path)
	if err != nil {
		return Recording{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Recording{}, fmt.Errorf("replay: cannot read %s: %w", path, err)
	}
	return Unmarshal(data, f)
}
