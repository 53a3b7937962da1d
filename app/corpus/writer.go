package corpus

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/proxectonos/galnews/app/article"
)

// Writer serializes parsed records to the corpus directory, one JSON file
// per article, mirroring the raw document's key with a .json suffix.
type Writer struct {
	root string
}

func NewWriter(root string) *Writer {
	return &Writer{root: root}
}

// Write stores one record under the path derived from key. Galician text is
// written as-is: no HTML escaping, indented for human inspection.
func (w *Writer) Write(record *article.Record, key string) error {
	path, err := w.path(key)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create corpus directory: %w", err)
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	if err := enc.Encode(record); err != nil {
		return fmt.Errorf("failed to encode record: %w", err)
	}

	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("failed to write record %s: %w", key, err)
	}
	return nil
}

// Path returns the corpus file path a record for key would be written to.
func (w *Writer) Path(key string) (string, error) {
	return w.path(key)
}

func (w *Writer) path(key string) (string, error) {
	clean := filepath.Clean(filepath.FromSlash(key))
	if clean == "." || strings.HasPrefix(clean, "..") || filepath.IsAbs(clean) {
		return "", fmt.Errorf("invalid record key: %q", key)
	}

	ext := filepath.Ext(clean)
	return filepath.Join(w.root, strings.TrimSuffix(clean, ext)+".json"), nil
}
