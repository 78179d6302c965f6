package codegen

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
)

// Built-in C# templates, used when no template path is configured.
var (
	//go:embed templates/class.cs.tmpl
	DefaultClassTemplate string

	//go:embed templates/manager.cs.tmpl
	DefaultManagerTemplate string
)

// ErrTemplateNotFound indicates a configured template file does not exist.
var ErrTemplateNotFound = errors.New("template not found")

// LoadTemplate reads the template at path, or returns fallback when path is empty.
func LoadTemplate(path, fallback string) (string, error) {
	if path == "" {
		return fallback, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("%w: %s", ErrTemplateNotFound, path)
		}
		return "", fmt.Errorf("read template %s: %w", path, err)
	}
	return string(data), nil
}
