// Package main provides the CLI entry point for sheetgen.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/ukaji3/sheetgen-go/pkg/sheetgen"
	"github.com/ukaji3/sheetgen-go/pkg/sheetgen/config"
	"github.com/ukaji3/sheetgen-go/pkg/sheetgen/models"
	"github.com/ukaji3/sheetgen-go/pkg/sheetgen/output"
)

var (
	// Global flags
	configPath string
	verbose    bool
	logFormat  string

	// split flags
	dataDir         string
	codeDir         string
	classTemplate   string
	managerTemplate string
	extension       string
	format          string
	keyField        string
	exclude         []string

	// export flags
	outputPath string
	pretty     bool
	tablesDir  string

	cfg    *config.Config
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "sheetgen",
	Short: "Split workbooks into per-table JSON and generated classes",
	Long: `sheetgen reads a workbook (a JSON object of tables, or an xlsx file),
writes one cleaned JSON file per table and generates a class per table plus a
manager that loads them.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("log-format") {
			cfg.Log.Format = logFormat
		}
		if verbose {
			cfg.Log.Level = "debug"
		}

		logger, err = newLogger(cfg.Log)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

var splitCmd = &cobra.Command{
	Use:   "split [input]",
	Short: "Write per-table JSON files and generated sources",
	Long: `Splits a workbook into <data-dir>/<table>.json files, one class source per
well-formed table and a <Namespace>Manager.Loader source.

Output directories default to <input dir>/../export/<name> and
<input dir>/../codegen/<name>/CodeGen.`,
	Args: cobra.ExactArgs(1),
	RunE: runSplit,
}

var exportCmd = &cobra.Command{
	Use:   "export [input.xlsx]",
	Short: "Convert an xlsx workbook to workbook JSON",
	Args:  cobra.ExactArgs(1),
	RunE:  runExport,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "sheetgen.yaml", "Config file (.yaml or .toml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "console", "Log format: console, json")

	splitCmd.Flags().StringVar(&dataDir, "data-dir", "", "Directory for per-table JSON files")
	splitCmd.Flags().StringVar(&codeDir, "code-dir", "", "Directory for generated sources")
	splitCmd.Flags().StringVar(&classTemplate, "class-template", "", "Class template file (default: built-in C#)")
	splitCmd.Flags().StringVar(&managerTemplate, "manager-template", "", "Manager template file (default: built-in C#)")
	splitCmd.Flags().StringVar(&extension, "ext", sheetgen.DefaultExtension, "Extension of generated sources")
	splitCmd.Flags().StringVar(&format, "format", string(sheetgen.FormatList), "JSON layout: list, nested")
	splitCmd.Flags().StringVar(&keyField, "key-field", "", "Field keying records in nested format")
	splitCmd.Flags().StringSliceVar(&exclude, "exclude", nil, "Columns dropped from every table")

	exportCmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output file path (default: stdout)")
	exportCmd.Flags().BoolVar(&pretty, "pretty", false, "Pretty-print JSON output")
	exportCmd.Flags().StringVar(&tablesDir, "tables-dir", "", "Directory for per-table raw JSON files")

	rootCmd.AddCommand(splitCmd, exportCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// newLogger builds a zap logger for the configured level and format.
func newLogger(lc config.LogConfig) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(lc.Level)
	if err != nil {
		return nil, err
	}

	var zc zap.Config
	switch strings.ToLower(lc.Format) {
	case "json":
		zc = zap.NewProductionConfig()
	case "console", "":
		zc = zap.NewDevelopmentConfig()
		zc.DisableStacktrace = true
	default:
		return nil, fmt.Errorf("unknown log format %q", lc.Format)
	}
	zc.Level = zap.NewAtomicLevelAt(level)
	return zc.Build()
}

// applySplitFlags copies explicitly set split flags over the loaded config.
func applySplitFlags(cmd *cobra.Command, c *config.Config) {
	flags := cmd.Flags()
	overrides := []struct {
		name   string
		value  string
		target *string
	}{
		{"data-dir", dataDir, &c.DataDir},
		{"code-dir", codeDir, &c.CodeDir},
		{"class-template", classTemplate, &c.ClassTemplate},
		{"manager-template", managerTemplate, &c.ManagerTemplate},
		{"ext", extension, &c.Extension},
		{"format", format, &c.Format},
		{"key-field", keyField, &c.KeyField},
	}
	for _, o := range overrides {
		if flags.Changed(o.name) {
			*o.target = o.value
		}
	}
	if flags.Changed("exclude") {
		c.ExcludeFields = exclude
	}
}

func runSplit(cmd *cobra.Command, args []string) error {
	inputPath := args[0]

	applySplitFlags(cmd, cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	opts := sheetgen.OptionsFromConfig(cfg)
	opts.Logger = logger

	res, err := sheetgen.Split(inputPath, opts)
	if err != nil {
		return fmt.Errorf("split failed: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%d tables written to %s\n", len(res.DataFiles), res.DataDir)
	fmt.Fprintf(out, "%d classes and %s written to %s\n",
		len(res.ClassFiles), filepath.Base(res.ManagerFile), res.CodeDir)
	for _, te := range res.Failed {
		fmt.Fprintf(cmd.ErrOrStderr(), "skipped: %v\n", te)
	}
	return nil
}

func runExport(cmd *cobra.Command, args []string) error {
	inputPath := args[0]

	wb, err := sheetgen.Load(inputPath)
	if err != nil {
		return fmt.Errorf("extraction failed: %w", err)
	}
	logger.Debug("workbook loaded", zap.String("path", inputPath), zap.Strings("tables", wb.Names()))

	jsonData, err := output.ToJSON(wb, pretty)
	if err != nil {
		return fmt.Errorf("serialization failed: %w", err)
	}

	if outputPath != "" {
		if err := os.WriteFile(outputPath, jsonData, 0644); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	} else if tablesDir == "" {
		if _, err := cmd.OutOrStdout().Write(jsonData); err != nil {
			return err
		}
	}

	if tablesDir != "" {
		if err := writeTableFiles(wb, tablesDir); err != nil {
			return fmt.Errorf("failed to write table files: %w", err)
		}
	}

	return nil
}

// writeTableFiles writes each table's raw rows to <dir>/<table>.json.
func writeTableFiles(wb *models.Workbook, dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	for _, table := range wb.Tables {
		if err := sheetgen.CheckTableName(table.Name); err != nil {
			return err
		}
		jsonData, err := output.RawToJSON(table.Raw, pretty)
		if err != nil {
			return fmt.Errorf("table %s: %w", table.Name, err)
		}

		filename := filepath.Join(dir, table.Name+".json")
		if err := os.WriteFile(filename, jsonData, 0644); err != nil {
			return err
		}
	}

	return nil
}
