// pkg/directive/directive.go
package directive

import (
	"fmt"
	"io"

	"github.com/arc-language/cudabind/pkg/env"
	"github.com/arc-language/cudabind/pkg/platform"
)

// Kind identifies a build directive
type Kind string

const (
	// KindLinkSearch adds a native library search path
	KindLinkSearch Kind = "link-search"
	// KindLinkLib links a library by name
	KindLinkLib Kind = "link-lib"
	// KindRerunIfChanged ties regeneration to a file's contents
	KindRerunIfChanged Kind = "rerun-if-changed"
)

// Prefix starts every emitted directive line
const Prefix = "cudabind:"

// Directive is a single instruction to the build pipeline
type Directive struct {
	Kind  Kind
	Value string
}

func (d Directive) String() string {
	return Prefix + string(d.Kind) + "=" + d.Value
}

// LinkSearch returns a native search path directive
func LinkSearch(dir string) Directive {
	return Directive{Kind: KindLinkSearch, Value: "native=" + dir}
}

// LinkLib returns a dynamic link-by-name directive
func LinkLib(name string) Directive {
	return Directive{Kind: KindLinkLib, Value: "dylib=" + name}
}

// RerunIfChanged returns a rebuild trigger directive for path
func RerunIfChanged(path string) Directive {
	return Directive{Kind: KindRerunIfChanged, Value: path}
}

// ForToolkit returns the linker directives for a resolved toolkit root
func ForToolkit(root string, target platform.Triple, lib string) []Directive {
	tk := env.New(root, target)
	return []Directive{
		LinkSearch(tk.GetLibraryPath()),
		LinkLib(lib),
	}
}

// Emitter writes directives, one per line
type Emitter struct {
	w       io.Writer
	emitted []Directive
}

// NewEmitter creates an Emitter writing to w
func NewEmitter(w io.Writer) *Emitter {
	return &Emitter{w: w}
}

// Emit writes the directives in order
func (e *Emitter) Emit(ds ...Directive) error {
	for _, d := range ds {
		if _, err := fmt.Fprintln(e.w, d.String()); err != nil {
			return fmt.Errorf("emitting %s: %w", d.Kind, err)
		}
		e.emitted = append(e.emitted, d)
	}
	return nil
}

// Emitted returns every directive written so far
func (e *Emitter) Emitted() []Directive {
	return append([]Directive(nil), e.emitted...)
}
