package memory

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/hupe1980/synapseflow/core"
)

// FileSink persists the record mapping as indented JSON in a single file,
// rewritten in full on every save. The layout is the human-readable
// user -> [{t, text, meta}] mapping.
type FileSink struct {
	path string
}

// NewFileSink creates a sink backed by the given path. The file is created
// lazily on first save.
func NewFileSink(path string) *FileSink {
	return &FileSink{path: path}
}

// Load implements core.Sink. A missing file yields an empty mapping.
func (s *FileSink) Load() (map[string][]core.Record, error) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return map[string][]core.Record{}, nil
		}
		return nil, fmt.Errorf("read memory file: %w", err)
	}

	records := map[string][]core.Record{}
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, fmt.Errorf("decode memory file: %w", err)
	}
	return records, nil
}

// Save implements core.Sink.
func (s *FileSink) Save(records map[string][]core.Record) error {
	raw, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("encode memory file: %w", err)
	}

	if err := os.WriteFile(s.path, raw, 0o600); err != nil {
		return fmt.Errorf("write memory file: %w", err)
	}
	return nil
}
