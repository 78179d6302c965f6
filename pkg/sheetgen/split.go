package sheetgen

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/ukaji3/sheetgen-go/pkg/sheetgen/codegen"
	"github.com/ukaji3/sheetgen-go/pkg/sheetgen/models"
	"github.com/ukaji3/sheetgen-go/pkg/sheetgen/normalize"
	"github.com/ukaji3/sheetgen-go/pkg/sheetgen/output"
	"github.com/ukaji3/sheetgen-go/pkg/sheetgen/parser"
)

// File permission constants.
const (
	dirPerm  = 0o755
	filePerm = 0o644
)

// Result describes the files written by a split run.
type Result struct {
	Namespace string
	DataDir   string
	CodeDir   string
	// DataFiles are the per-table JSON files, in table order.
	DataFiles []string
	// ClassFiles are the generated class sources, in table order.
	ClassFiles []string
	// ManagerFile is the generated manager source.
	ManagerFile string
	// Registered lists the tables included in the manager, in table order.
	Registered []string
	// Failed holds the tables that were skipped.
	Failed []*TableError
}

// Load reads a workbook from a JSON file or an xlsx file.
func Load(path string) (*models.Workbook, error) {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		wb, err := parser.ReadWorkbook(path)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidWorkbook, err)
		}
		return wb, nil
	default:
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}
		wb, err := models.ParseWorkbook(models.NamespaceFromPath(path), data)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidWorkbook, err)
		}
		return wb, nil
	}
}

// Split loads the workbook at inputPath and splits it. Output directories left
// empty in opts are derived from inputPath.
func Split(inputPath string, opts Options) (*Result, error) {
	wb, err := Load(inputPath)
	if err != nil {
		return nil, err
	}
	return SplitWorkbook(wb, opts.ResolveDirs(inputPath))
}

// SplitWorkbook writes one JSON file per table, one class source per
// well-formed table and a manager source for the workbook.
//
// Stale JSON files in the data directory are removed first. A failure
// confined to one table is logged and recorded in Result.Failed; only
// unusable templates or unwritable directories fail the run.
func SplitWorkbook(wb *models.Workbook, opts Options) (*Result, error) {
	if opts.DataDir == "" || opts.CodeDir == "" {
		return nil, errors.New("data and code directories are required")
	}
	if opts.Format == FormatNested && opts.KeyField == "" {
		return nil, errors.New("nested format requires a key field")
	}

	log := opts.logger().With(zap.String("namespace", wb.Namespace))
	ext := opts.extension()

	managerTmpl, err := codegen.LoadTemplate(opts.ManagerTemplate, codegen.DefaultManagerTemplate)
	if err != nil {
		return nil, err
	}
	classTmpl, classErr := codegen.LoadTemplate(opts.ClassTemplate, codegen.DefaultClassTemplate)
	if classErr != nil {
		log.Warn("class template unavailable, classes will be skipped", zap.Error(classErr))
	}

	for _, dir := range []string{opts.DataDir, opts.CodeDir} {
		if err := os.MkdirAll(dir, dirPerm); err != nil {
			return nil, fmt.Errorf("creating output directory: %w", err)
		}
	}
	removed, err := clearJSON(opts.DataDir)
	if err != nil {
		return nil, fmt.Errorf("clearing %s: %w", opts.DataDir, err)
	}
	log.Debug("cleared data directory", zap.String("dir", opts.DataDir), zap.Int("removed", removed))

	res := &Result{
		Namespace: wb.Namespace,
		DataDir:   opts.DataDir,
		CodeDir:   opts.CodeDir,
	}
	fail := func(table, stage string, err error) {
		te := NewTableError(table, stage, err)
		res.Failed = append(res.Failed, te)
		log.Warn("table skipped", zap.String("table", table), zap.String("stage", stage), zap.Error(err))
	}

	dataNames := make(map[string]string, len(wb.Tables))
	for _, table := range wb.Tables {
		if err := CheckTableName(table.Name); err != nil {
			fail(table.Name, StageData, err)
			continue
		}
		fileName := strings.ToLower(table.Name) + ".json"
		if prev, dup := dataNames[fileName]; dup {
			fail(table.Name, StageData, fmt.Errorf("output %s already written for table %q", fileName, prev))
			continue
		}
		dataNames[fileName] = table.Name

		norm := normalize.Normalize(table.Raw, normalize.Options{Exclude: opts.Exclude})

		data, err := encodeTable(norm, opts)
		if err != nil {
			fail(table.Name, StageData, err)
			continue
		}
		dataPath := filepath.Join(opts.DataDir, fileName)
		if err := os.WriteFile(dataPath, data, filePerm); err != nil {
			fail(table.Name, StageData, err)
			continue
		}
		res.DataFiles = append(res.DataFiles, dataPath)

		if norm.Malformed {
			log.Warn("malformed table copied without normalization", zap.String("table", table.Name))
			res.Registered = append(res.Registered, table.Name)
			continue
		}
		if norm.Skipped > 0 {
			log.Warn("skipped rows that are not objects", zap.String("table", table.Name), zap.Int("rows", norm.Skipped))
		}

		if classErr != nil {
			fail(table.Name, StageClass, classErr)
			continue
		}
		src, err := codegen.GenerateClass(classTmpl, models.GeneratedClass{
			ClassName: table.Name,
			Namespace: wb.Namespace,
			Fields:    norm.Fields,
		})
		if err != nil {
			fail(table.Name, StageClass, err)
			continue
		}
		classPath := filepath.Join(opts.CodeDir, table.Name+ext)
		if err := os.WriteFile(classPath, []byte(src), filePerm); err != nil {
			fail(table.Name, StageClass, err)
			continue
		}
		res.ClassFiles = append(res.ClassFiles, classPath)
		res.Registered = append(res.Registered, table.Name)

		log.Info("table exported",
			zap.String("table", table.Name),
			zap.Int("records", len(norm.Records)),
			zap.Int("fields", len(norm.Fields)))
	}

	reg := models.NewManagerRegistry(wb.Namespace, res.Registered)
	src, err := codegen.GenerateManager(managerTmpl, reg)
	if err != nil {
		return nil, fmt.Errorf("generating manager: %w", err)
	}
	managerPath := filepath.Join(opts.CodeDir, reg.ClassName+".Loader"+ext)
	if err := os.WriteFile(managerPath, []byte(src), filePerm); err != nil {
		return nil, fmt.Errorf("writing manager: %w", err)
	}
	res.ManagerFile = managerPath

	log.Info("workbook split",
		zap.Int("tables", len(wb.Tables)),
		zap.Int("registered", len(res.Registered)),
		zap.Int("failed", len(res.Failed)))

	return res, nil
}

func encodeTable(norm normalize.Result, opts Options) ([]byte, error) {
	switch {
	case norm.Malformed:
		return output.RawToJSON(norm.Raw, true)
	case opts.Format == FormatNested:
		return output.NestedToJSON(norm.Records, opts.KeyField, true)
	default:
		return output.RecordsToJSON(norm.Records, true)
	}
}

// clearJSON removes the *.json files directly under dir.
func clearJSON(dir string) (int, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0, err
	}
	removed := 0
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ".json") {
			continue
		}
		if err := os.Remove(filepath.Join(dir, e.Name())); err != nil {
			return removed, err
		}
		removed++
	}
	return removed, nil
}

// CheckTableName rejects table names that cannot be used as file names.
func CheckTableName(name string) error {
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return fmt.Errorf("table name %q is not a valid file name", name)
	}
	return nil
}
