// Package sheetgen splits a workbook into per-table JSON files and generated
// class sources.
package sheetgen

import (
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/ukaji3/sheetgen-go/pkg/sheetgen/config"
	"github.com/ukaji3/sheetgen-go/pkg/sheetgen/models"
)

// Format selects the layout of per-table JSON files.
type Format string

const (
	// FormatList writes the records as a JSON array.
	FormatList Format = "list"
	// FormatNested writes an object keyed by Options.KeyField.
	FormatNested Format = "nested"
)

// DefaultExtension is the file extension of generated sources.
const DefaultExtension = ".cs"

// Options configures a split run.
type Options struct {
	// DataDir receives per-table JSON. Split derives it from the input path when empty.
	DataDir string
	// CodeDir receives generated sources. Split derives it from the input path when empty.
	CodeDir string
	// ClassTemplate and ManagerTemplate are template paths; empty uses the built-in templates.
	ClassTemplate   string
	ManagerTemplate string
	// Extension of generated source files, e.g. ".cs".
	Extension string
	// Format of per-table JSON.
	Format Format
	// KeyField keys nested output.
	KeyField string
	// Exclude lists columns dropped from every table.
	Exclude []string
	// Logger receives progress and per-table failures. Nil discards logs.
	Logger *zap.Logger
}

// DefaultOptions returns default split options.
func DefaultOptions() Options {
	return Options{
		Extension: DefaultExtension,
		Format:    FormatList,
	}
}

// OptionsFromConfig maps a loaded configuration onto split options.
func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		DataDir:         cfg.DataDir,
		CodeDir:         cfg.CodeDir,
		ClassTemplate:   cfg.ClassTemplate,
		ManagerTemplate: cfg.ManagerTemplate,
		Extension:       cfg.Extension,
		Format:          Format(cfg.Format),
		KeyField:        cfg.KeyField,
		Exclude:         cfg.ExcludeFields,
	}
}

// ResolveDirs fills in output directories left empty, relative to the input
// file: <dir>/../export/<stem> for data and <dir>/../codegen/<stem>/CodeGen
// for sources.
func (o Options) ResolveDirs(inputPath string) Options {
	if abs, err := filepath.Abs(inputPath); err == nil {
		inputPath = abs
	}
	stem := models.NamespaceFromPath(inputPath)
	root := filepath.Dir(filepath.Dir(inputPath))
	if o.DataDir == "" {
		o.DataDir = filepath.Join(root, "export", stem)
	}
	if o.CodeDir == "" {
		o.CodeDir = filepath.Join(root, "codegen", stem, "CodeGen")
	}
	return o
}

func (o Options) logger() *zap.Logger {
	if o.Logger == nil {
		return zap.NewNop()
	}
	return o.Logger
}

func (o Options) extension() string {
	switch {
	case o.Extension == "":
		return DefaultExtension
	case strings.HasPrefix(o.Extension, "."):
		return o.Extension
	default:
		return "." + o.Extension
	}
}
