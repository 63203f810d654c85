package codegen

import (
	"bytes"
	_ "embed"
	"go/format"
	"text/template"

	"github.com/Masterminds/sprig/v3"
	"github.com/pkg/errors"
)

//go:embed enums.go.tmpl
var enumsTemplate string

var tmpl = template.Must(template.New("enums").Funcs(sprig.TxtFuncMap()).Parse(enumsTemplate))

// Generate renders reg into gofmt'ed Go source. The target package must
// declare fatalf and, for table enums, ErrBackendNotAvailable.
func Generate(reg *Registry) ([]byte, error) {
	if reg == nil {
		return nil, errors.New("nil registry")
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, reg); err != nil {
		return nil, errors.Wrap(err, "executing template")
	}
	src, err := format.Source(buf.Bytes())
	if err != nil {
		return nil, errors.Wrapf(err, "formatting generated source:\n%s", buf.String())
	}
	return src, nil
}
