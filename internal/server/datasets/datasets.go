// Package datasets ships the static JSON datasets the planner runs on:
// the subject catalog, the resource library and the motivation library.
// A directory on disk may override any of them.
package datasets

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/goccy/go-json"
)

const (
	Subjects   = "subjects.json"
	Resources  = "resources.json"
	Motivation = "motivation.json"
)

//go:embed *.json
var embedded embed.FS

// Read returns the named dataset from dir when it exists there, otherwise
// the embedded copy.
func Read(dir, name string) ([]byte, error) {
	if dir != "" {
		b, err := os.ReadFile(filepath.Join(dir, name))
		if err == nil {
			return b, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("read dataset %s: %w", name, err)
		}
	}
	return embedded.ReadFile(name)
}

// Decode reads the named dataset and unmarshals it into v.
func Decode(dir, name string, v any) error {
	b, err := Read(dir, name)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(b, v); err != nil {
		return fmt.Errorf("decode dataset %s: %w", name, err)
	}
	return nil
}
