package threejs

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// File is one output file.
type File struct {
	Path string
	Data []byte
}

// WriteFiles persists files all-or-nothing: each file is written to a
// temporary sibling first and the temporaries are renamed into place only
// once every one of them has been written. If a rename fails, files
// already moved into place are removed again.
func WriteFiles(files []File) (err error) {
	temps := make([]string, 0, len(files))
	var renamed []string
	defer func() {
		if err == nil {
			return
		}
		for _, t := range temps {
			os.Remove(t)
		}
		for _, p := range renamed {
			os.Remove(p)
		}
	}()

	for _, f := range files {
		tmp, err := writeTemp(f)
		if err != nil {
			return err
		}
		temps = append(temps, tmp)
	}

	for i, f := range files {
		if err := os.Rename(temps[i], f.Path); err != nil {
			return fmt.Errorf("write %s: %w", f.Path, err)
		}
		renamed = append(renamed, f.Path)
	}
	return nil
}

func writeTemp(f File) (string, error) {
	if f.Path == "" {
		return "", errors.New("empty output path")
	}
	tmp, err := os.CreateTemp(filepath.Dir(f.Path), "."+filepath.Base(f.Path)+".*")
	if err != nil {
		return "", fmt.Errorf("write %s: %w", f.Path, err)
	}
	if _, err := tmp.Write(f.Data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return "", fmt.Errorf("write %s: %w", f.Path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return "", fmt.Errorf("write %s: %w", f.Path, err)
	}
	if err := os.Chmod(tmp.Name(), 0644); err != nil {
		os.Remove(tmp.Name())
		return "", fmt.Errorf("write %s: %w", f.Path, err)
	}
	return tmp.Name(), nil
}
