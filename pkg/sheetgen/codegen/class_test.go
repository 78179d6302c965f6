package codegen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ukaji3/sheetgen-go/pkg/sheetgen/models"
)

func TestGetterName(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"id", "Id"},
		{"Name", "Name"},
		{"hp2", "Hp2"},
		{"maxHp", "MaxHp"},
		{"élan", "Élan"},
		{"_hidden", "_hidden"},
		{"1st", "1st"},
		{"", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, GetterName(tt.input), "GetterName(%q)", tt.input)
	}
}

func TestTypeName(t *testing.T) {
	tests := []struct {
		tag      models.TypeTag
		expected string
	}{
		{models.TypeNumber, "int"},
		{models.TypeFloat, "float"},
		{models.TypeString, "string"},
		{models.TypeBool, "bool"},
		{models.TypeArrayNumber, "List<int>"},
		{models.TypeArrayString, "List<string>"},
		{models.TypeTag("vector3"), "string"},
		{models.TypeTag(""), "string"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, TypeName(tt.tag), "TypeName(%q)", tt.tag)
	}
}

func TestDocLines(t *testing.T) {
	assert.Equal(t, []string{"Line one", "Line two"}, DocLines("Line one\r\n\n  \nLine two  "))
	assert.Equal(t, []string{"a &lt; b &amp;&amp; c"}, DocLines("a < b && c"))
	assert.Empty(t, DocLines(""))
}

func TestGenerateClass_CustomTemplate(t *testing.T) {
	tmpl := "class {{ClassName}} in {{Namespace}}\n{{#fields}}\n{{Type}} {{Name}};\n{{/fields}}\n"
	class := models.GeneratedClass{
		ClassName: "Item",
		Namespace: "Game",
		Fields: []models.Field{
			{Name: "id", Type: models.TypeNumber},
			{Name: "name", Type: models.TypeString},
		},
	}

	got, err := GenerateClass(tmpl, class)

	require.NoError(t, err)
	assert.Equal(t, "class Item in Game\nint Id;\nstring Name;\n", got)
}

func TestGenerateClass_DefaultTemplate(t *testing.T) {
	class := models.GeneratedClass{
		ClassName: "Item",
		Namespace: "Items",
		Fields: []models.Field{
			{Name: "id", Type: models.TypeNumber, Description: "Unique id"},
			{Name: "name", Type: models.TypeString, Description: "Display name\n\nshown in shops"},
			{Name: "drops", Type: models.TypeArrayNumber},
		},
	}

	got, err := GenerateClass(DefaultClassTemplate, class)
	require.NoError(t, err)

	assert.Contains(t, got, "namespace Items\n")
	assert.Contains(t, got, "public partial class Item\n")
	assert.Contains(t, got, "        /// Unique id\n")
	assert.Contains(t, got, "        [JsonProperty(\"id\")]\n        public int Id { get; set; }\n")
	assert.Contains(t, got, "        /// Display name\n        /// shown in shops\n")
	assert.Contains(t, got, "public string Name { get; set; }")
	assert.Contains(t, got, "        /// drops\n")
	assert.Contains(t, got, "public List<int> Drops { get; set; }")
	assert.NotContains(t, got, "{{")
}

func TestGenerateClass_DocBlock(t *testing.T) {
	tmpl := "{{#fields}}\n{{#doc}}\n# {{Line}}\n{{/doc}}\n{{Name}}: {{TypeTag}}\n{{/fields}}\n"
	class := models.GeneratedClass{
		ClassName: "Skill",
		Fields: []models.Field{
			{Name: "cost", Type: models.TypeFloat, Description: "Mana cost\nper cast"},
		},
	}

	got, err := GenerateClass(tmpl, class)

	require.NoError(t, err)
	assert.Equal(t, "# Mana cost\n# per cast\nCost: float\n", got)
}
