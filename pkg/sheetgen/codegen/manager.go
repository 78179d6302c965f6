package codegen

import (
	"strings"

	"github.com/ukaji3/sheetgen-go/pkg/sheetgen/models"
)

// ManagerBlocks names the repeatable regions of a manager template. Every
// region gets the same rows in the same order.
var ManagerBlocks = []string{"accessors", "fields", "registry", "tryload", "getconfig"}

// ManagerContext builds the template context for a manager source.
func ManagerContext(reg models.ManagerRegistry) Context {
	rows := make([]Context, 0, len(reg.Tables))
	for _, t := range reg.Tables {
		rows = append(rows, Context{Values: map[string]string{
			"Table": t.Name,
			"Key":   t.Key,
		}})
	}

	blocks := make(map[string][]Context, len(ManagerBlocks))
	for _, name := range ManagerBlocks {
		blocks[name] = rows
	}

	return Context{
		Values: map[string]string{
			"Namespace": reg.Namespace,
			"ClassName": reg.ClassName,
		},
		Blocks: blocks,
	}
}

// GenerateManager renders the manager source from tmpl.
func GenerateManager(tmpl string, reg models.ManagerRegistry) (string, error) {
	out, err := Render(tmpl, ManagerContext(reg))
	if err != nil {
		return "", err
	}
	return CollapseBlankLines(out), nil
}

// CollapseBlankLines collapses 3+ consecutive line breaks, that is two or more
// blank lines in a row, into a single blank line. A lone blank line is kept.
func CollapseBlankLines(s string) string {
	lines := strings.Split(s, "\n")
	out := make([]string, 0, len(lines))
	blank := 0
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			blank++
			if blank > 1 {
				continue
			}
			line = ""
		} else {
			blank = 0
		}
		out = append(out, line)
	}
	return strings.Join(out, "\n")
}
