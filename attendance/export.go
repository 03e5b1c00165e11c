package attendance

import (
	"fmt"
	"os"
	"path/filepath"
)

// WriteBatchFile writes batch to dir under its FileName and returns the path.
// A failed write removes the partial file.
func WriteBatchFile(dir string, batch Batch) (string, error) {
	path := filepath.Join(dir, FileName(batch.Stream, batch.Subject.Name, batch.Period))

	out, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create %s: %w", path, err)
	}

	if err := WriteSheet(out, batch.Records); err != nil {
		out.Close()
		os.Remove(path)
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := out.Close(); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("failed to close %s: %w", path, err)
	}

	return path, nil
}
