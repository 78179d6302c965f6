package codegen

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ukaji3/sheetgen-go/pkg/sheetgen/models"
)

const alignmentTemplate = `{{#accessors}}
A {{Table}}
{{/accessors}}
{{#fields}}
F {{Table}} {{Key}}
{{/fields}}
{{#registry}}
R {{Table}}={{Key}}{{@comma}}
{{/registry}}
{{#tryload}}
T {{Key}}
{{/tryload}}
{{#getconfig}}
G {{Key}}
{{/getconfig}}
`

func TestGenerateManager_Alignment(t *testing.T) {
	reg := models.NewManagerRegistry("Game", []string{"Item", "Skill"})

	got, err := GenerateManager(alignmentTemplate, reg)

	require.NoError(t, err)
	want := "A Item\nA Skill\n" +
		"F Item item\nF Skill skill\n" +
		"R Item=item,\nR Skill=skill\n" +
		"T item\nT skill\n" +
		"G item\nG skill\n"
	assert.Equal(t, want, got)
}

func TestGenerateManager_DefaultTemplate(t *testing.T) {
	reg := models.NewManagerRegistry("Game", []string{"Item", "Skill"})
	require.Equal(t, "GameManager", reg.ClassName)

	got, err := GenerateManager(DefaultManagerTemplate, reg)
	require.NoError(t, err)

	assert.Contains(t, got, "public partial class GameManager\n")
	assert.Contains(t, got, "        public List<Item> ItemList => _itemList;\n        public List<Skill> SkillList => _skillList;\n")
	assert.Contains(t, got, "private List<Skill> _skillList = new List<Skill>();")
	assert.Contains(t, got, "{ typeof(Item), \"item\" },\n")
	assert.Contains(t, got, "{ typeof(Skill), \"skill\" }\n")
	assert.Equal(t, 2, strings.Count(got, `case "item":`))
	assert.Equal(t, 2, strings.Count(got, `case "skill":`))
	assert.NotContains(t, got, "\n\n\n")
}

func TestGenerateManager_NoTables(t *testing.T) {
	reg := models.NewManagerRegistry("Empty", nil)

	got, err := GenerateManager(DefaultManagerTemplate, reg)

	require.NoError(t, err)
	assert.Contains(t, got, "public partial class EmptyManager\n")
	assert.NotContains(t, got, `case "`)
	assert.NotContains(t, got, "\n\n\n")
}

func TestCollapseBlankLines(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"a\n\n\n\nb\n", "a\n\nb\n"},
		{"a\n \n\t\nb", "a\n\nb"},
		{"a\n\nb", "a\n\nb"},
		{"a\n\n\nb", "a\n\nb"},
		{"a\nb\n", "a\nb\n"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, CollapseBlankLines(tt.input), "CollapseBlankLines(%q)", tt.input)
	}
}

func TestLoadTemplate(t *testing.T) {
	got, err := LoadTemplate("", "fallback")
	require.NoError(t, err)
	assert.Equal(t, "fallback", got)

	path := filepath.Join(t.TempDir(), "class.tmpl")
	require.NoError(t, os.WriteFile(path, []byte("{{ClassName}}"), 0o644))
	got, err = LoadTemplate(path, "fallback")
	require.NoError(t, err)
	assert.Equal(t, "{{ClassName}}", got)

	_, err = LoadTemplate(filepath.Join(t.TempDir(), "missing.tmpl"), "fallback")
	assert.ErrorIs(t, err, ErrTemplateNotFound)
}
