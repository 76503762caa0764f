package emit

import (
	"fmt"
	"os"
	"path/filepath"
)

// WriteArtifacts writes each artifact into dir, creating it if needed.
// Every file is replaced atomically, so a reader never sees a partially
// written artifact.
func WriteArtifacts(dir string, arts []Artifact) error {
	if err := os.MkdirAll(dir, os.ModePerm); err != nil {
		return err
	}
	for _, art := range arts {
		if err := writeFile(filepath.Join(dir, art.Name), art.Data); err != nil {
			return fmt.Errorf("failed to write %s: %w", art.Name, err)
		}
	}
	return nil
}

func writeFile(filename string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(filename), "."+filepath.Base(filename)+"-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Chmod(0644); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), filename)
}
