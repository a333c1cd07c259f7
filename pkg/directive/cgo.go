// pkg/directive/cgo.go
package directive

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/arc-language/cudabind/pkg/core"
	"github.com/arc-language/cudabind/pkg/env"
	"github.com/arc-language/cudabind/pkg/platform"
)

// CgoFlagsFile is the file name of the generated cgo flags source
const CgoFlagsFile = "zcgo_flags.go"

var cgoTemplate = template.Must(template.New("cgo").Parse(`// Code generated by cudabind. DO NOT EDIT.

//go:build {{.GOOS}}

package {{.Package}}

/*
#cgo CFLAGS: {{.CFLAGS}}
#cgo LDFLAGS: {{.LDFLAGS}}
*/
import "C"
`))

// RenderCgoFlags renders a Go source file carrying the compiler and linker
// flags for a toolkit root. The output depends only on its arguments.
func RenderCgoFlags(pkg, root string, target platform.Triple, lib string) ([]byte, error) {
	flags := env.New(root, target).GetCompilerFlags(lib)

	var buf bytes.Buffer
	err := cgoTemplate.Execute(&buf, struct {
		GOOS    string
		Package string
		CFLAGS  string
		LDFLAGS string
	}{
		GOOS:    target.GOOS(),
		Package: pkg,
		CFLAGS:  cgoArgs(flags.CFLAGS()),
		LDFLAGS: cgoArgs(flags.LDFLAGS()),
	})
	if err != nil {
		return nil, fmt.Errorf("rendering cgo flags: %w", err)
	}
	return buf.Bytes(), nil
}

// WriteCgoFlags renders the cgo flags file into dir
func WriteCgoFlags(dir, pkg, root string, target platform.Triple, lib string) (string, error) {
	data, err := RenderCgoFlags(pkg, root, target, lib)
	if err != nil {
		return "", err
	}

	path := filepath.Join(dir, CgoFlagsFile)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", &core.Error{Op: "write", Value: dir, Err: fmt.Errorf("%w: %v", core.ErrOutputWrite, err)}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", &core.Error{Op: "write", Value: path, Err: fmt.Errorf("%w: %v", core.ErrOutputWrite, err)}
	}
	return path, nil
}

// cgoArgs formats flags for a #cgo line. cgo treats a backslash as an escape
// and splits on spaces, so Windows separators become slashes and paths with
// spaces (Program Files) are quoted.
func cgoArgs(flags []string) string {
	quoted := make([]string, len(flags))
	for i, f := range flags {
		f = strings.ReplaceAll(f, `\`, "/")
		if strings.ContainsAny(f, " \t") {
			f = `"` + f + `"`
		}
		quoted[i] = f
	}
	return strings.Join(quoted, " ")
}
