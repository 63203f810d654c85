package codegen

import (
	"go/parser"
	"go/token"
	"testing"

	"github.com/mandelsoft/vfs/pkg/memoryfs"
	"github.com/mandelsoft/vfs/pkg/osfs"
	"github.com/mandelsoft/vfs/pkg/vfs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleRegistry = `package: sample
enums:
  - name: Shape
    doc: Shape is a test enum.
    factory:
      type: ShapeFactory
      result: Drawer
    values:
      - name: Circle
        constructor: newCircle
      - name: Square
        display: box
        platforms: [windows, linux]
`

func TestParse(t *testing.T) {
	reg, err := Parse([]byte(sampleRegistry))
	require.NoError(t, err)

	assert.Equal(t, "sample", reg.Package)
	require.Len(t, reg.Enums, 1)
	e := reg.Enums[0]
	assert.Equal(t, "Shape", e.Name)
	require.NotNil(t, e.Factory)
	assert.Equal(t, "ShapeFactory", e.Factory.Type)
	require.Len(t, e.Values, 2)
	assert.Equal(t, "circle", e.Values[0].Display, "display defaults to the lower-cased name")
	assert.Equal(t, "box", e.Values[1].Display)
	assert.Equal(t, []string{"windows", "linux"}, e.Values[1].Platforms)
}

func TestParse_SchemaViolations(t *testing.T) {
	tests := map[string]string{
		"missing values":   "package: p\nenums:\n  - name: E\n",
		"empty values":     "package: p\nenums:\n  - name: E\n    values: []\n",
		"unknown platform": "package: p\nenums:\n  - name: E\n    values:\n      - name: A\n        platforms: [plan9]\n",
		"unknown field":    "package: p\nenums:\n  - name: E\n    colour: red\n    values:\n      - name: A\n",
		"bad identifier":   "package: p\nenums:\n  - name: 1E\n    values:\n      - name: A\n",
		"bad package":      "package: P\nenums:\n  - name: E\n    values:\n      - name: A\n",
	}
	for name, src := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(src))
			assert.ErrorContains(t, err, "invalid registry")
		})
	}
}

func TestParse_SemanticViolations(t *testing.T) {
	tests := map[string]struct {
		src  string
		want string
	}{
		"duplicate value":   {"package: p\nenums:\n  - name: E\n    values:\n      - name: A\n      - name: A\n        display: other\n", "E: value A declared twice"},
		"duplicate display": {"package: p\nenums:\n  - name: E\n    values:\n      - name: A\n      - name: B\n        display: a\n", `E: display name "a" declared twice`},
		"duplicate enum":    {"package: p\nenums:\n  - name: E\n    values:\n      - name: A\n  - name: E\n    values:\n      - name: A\n", "enum E declared twice"},
		"stray constructor": {"package: p\nenums:\n  - name: E\n    values:\n      - name: A\n        constructor: newA\n", "E: value A has a constructor but the enum has no factory"},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(tc.src))
			require.Error(t, err)
			assert.ErrorContains(t, err, tc.want)
		})
	}
}

func TestLoad(t *testing.T) {
	fs := memoryfs.New()
	require.NoError(t, vfs.WriteFile(fs, "/enums.yaml", []byte(sampleRegistry), 0o644))

	reg, err := Load(fs, "/enums.yaml")
	require.NoError(t, err)
	assert.Equal(t, "sample", reg.Package)

	_, err = Load(fs, "/missing.yaml")
	assert.Error(t, err)
}

func TestGenerate(t *testing.T) {
	reg, err := Parse([]byte(sampleRegistry))
	require.NoError(t, err)

	src, err := Generate(reg)
	require.NoError(t, err)

	file, err := parser.ParseFile(token.NewFileSet(), "zz_generated.go", src, parser.ParseComments)
	require.NoError(t, err)
	assert.Equal(t, "sample", file.Name.Name)

	out := string(src)
	assert.Contains(t, out, "ShapeCircle Shape = iota")
	assert.Contains(t, out, "const ShapeCount = 2")
	assert.Contains(t, out, `{"linux", "windows"},`, "platforms are sorted")
	assert.Contains(t, out, "var shapeFactories = [ShapeCount]ShapeFactory{")
	assert.Contains(t, out, "ShapeCircle: newCircle,")
	assert.Contains(t, out, "func newShape(e Shape) (Drawer, error) {")
	assert.Contains(t, out, `"box",`)
}

func TestGenerate_NoFactory(t *testing.T) {
	reg, err := Parse([]byte("package: p\nenums:\n  - name: E\n    values:\n      - name: A\n"))
	require.NoError(t, err)

	src, err := Generate(reg)
	require.NoError(t, err)
	assert.NotContains(t, string(src), "Factories")
	assert.Contains(t, string(src), "func ParseE(s string) (E, error) {")
}

func TestGenerate_Nil(t *testing.T) {
	_, err := Generate(nil)
	assert.Error(t, err)
}

// The checked-in tables must match what the registry generates.
func TestGenerate_RepositoryRegistryUpToDate(t *testing.T) {
	fs := osfs.New()
	reg, err := Load(fs, "../../enums.yaml")
	require.NoError(t, err)

	src, err := Generate(reg)
	require.NoError(t, err)

	current, err := vfs.ReadFile(fs, "../../zz_generated_enums.go")
	require.NoError(t, err)
	assert.Equal(t, string(current), string(src), "run go generate in the repository root")
}
