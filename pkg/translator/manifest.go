// pkg/translator/manifest.go
package translator

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Enum representation styles
const (
	// EnumFlat emits enums as typed Go constants with evaluated values
	EnumFlat = "eval"
	// EnumCgo references the C enum values through cgo
	EnumCgo = "cgo"
)

// Options controls binding generation
type Options struct {
	PackageName    string   // Go package of the bindings
	Description    string   // Package doc line
	UmbrellaHeader string   // Parse root, e.g. cuda.h
	IncludeDirs    []string // Header search path
	CFlags         []string // Extra compile flags recorded in the bindings
	EnumStyle      string   // EnumFlat or EnumCgo
	DefineStyle    string   // How #defines are translated: expand or eval
	// ConstCharIsString maps const char* to Go string instead of *byte
	ConstCharIsString bool
	// SizeTNative maps size_t to the platform-width uint
	SizeTNative bool
}

// DefaultOptions returns options for the CUDA driver API
func DefaultOptions() Options {
	return Options{
		PackageName:    "cuda",
		Description:    "Package cuda provides Go bindings for the CUDA driver API.",
		UmbrellaHeader: "cuda.h",
		EnumStyle:      EnumFlat,
		DefineStyle:    "expand",
		SizeTNative:    true,
	}
}

// Manifest is the translator's declarative configuration
type Manifest struct {
	Generator  GeneratorConfig  `yaml:"GENERATOR"`
	Parser     ParserConfig     `yaml:"PARSER"`
	Translator TranslatorConfig `yaml:"TRANSLATOR"`
}

type GeneratorConfig struct {
	PackageName        string      `yaml:"PackageName"`
	PackageDescription string      `yaml:"PackageDescription"`
	Includes           []string    `yaml:"Includes"`
	FlagGroups         []FlagGroup `yaml:"FlagGroups,omitempty"`
}

type FlagGroup struct {
	Name  string   `yaml:"name"`
	Flags []string `yaml:"flags"`
}

type ParserConfig struct {
	IncludePaths []string `yaml:"IncludePaths"`
	SourcesPaths []string `yaml:"SourcesPaths"`
}

type TranslatorConfig struct {
	ConstCharIsString bool              `yaml:"ConstCharIsString"`
	ConstRules        map[string]string `yaml:"ConstRules"`
	Rules             map[string][]Rule `yaml:"Rules"`
	Typemap           Typemap           `yaml:"Typemap,omitempty"`
}

// TypeSpec names a C or Go type in a typemap entry
type TypeSpec struct {
	Base     string `yaml:"base"`
	Pointers int    `yaml:"pointers,omitempty"`
}

// TypeMapping overrides the Go type chosen for a C type
type TypeMapping struct {
	C  TypeSpec
	Go TypeSpec
}

// Typemap is encoded as a mapping keyed by C type specs, the form the
// translator reads.
type Typemap []TypeMapping

// MarshalYAML implements yaml.Marshaler
func (tm Typemap) MarshalYAML() (interface{}, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}
	for _, m := range tm {
		var key, value yaml.Node
		if err := key.Encode(m.C); err != nil {
			return nil, err
		}
		if err := value.Encode(m.Go); err != nil {
			return nil, err
		}
		key.Style = yaml.FlowStyle
		value.Style = yaml.FlowStyle
		node.Content = append(node.Content, &key, &value)
	}
	return node, nil
}

// Rule accepts or ignores symbols matching From
type Rule struct {
	Action string `yaml:"action"`
	From   string `yaml:"from"`
}

// BuildManifest assembles the translator configuration
func BuildManifest(opts Options, allow Allowlist) (*Manifest, error) {
	if opts.PackageName == "" {
		return nil, fmt.Errorf("package name is required")
	}
	if opts.UmbrellaHeader == "" {
		return nil, fmt.Errorf("umbrella header is required")
	}
	if len(opts.IncludeDirs) == 0 {
		return nil, fmt.Errorf("at least one include directory is required")
	}
	if err := allow.Validate(); err != nil {
		return nil, err
	}

	enumStyle := opts.EnumStyle
	switch enumStyle {
	case "":
		enumStyle = EnumFlat
	case EnumFlat, EnumCgo:
	default:
		return nil, fmt.Errorf("unknown enum style %q (want %q or %q)", enumStyle, EnumFlat, EnumCgo)
	}
	defineStyle := opts.DefineStyle
	if defineStyle == "" {
		defineStyle = "expand"
	}

	m := &Manifest{
		Generator: GeneratorConfig{
			PackageName:        opts.PackageName,
			PackageDescription: opts.Description,
			Includes:           []string{opts.UmbrellaHeader},
		},
		Parser: ParserConfig{
			IncludePaths: append([]string(nil), opts.IncludeDirs...),
			SourcesPaths: []string{opts.UmbrellaHeader},
		},
		Translator: TranslatorConfig{
			ConstCharIsString: opts.ConstCharIsString,
			ConstRules: map[string]string{
				"defines": defineStyle,
				"enum":    enumStyle,
			},
			Rules: make(map[string][]Rule),
		},
	}
	if opts.SizeTNative {
		m.Translator.Typemap = Typemap{{C: TypeSpec{Base: "size_t"}, Go: TypeSpec{Base: "uint"}}}
	}
	if len(opts.CFlags) > 0 {
		m.Generator.FlagGroups = []FlagGroup{{Name: "CFLAGS", Flags: append([]string(nil), opts.CFlags...)}}
	}

	for _, g := range allow.Groups() {
		for _, p := range allow[g] {
			m.Translator.Rules[g] = append(m.Translator.Rules[g], Rule{Action: "accept", From: p})
		}
	}

	return m, nil
}

// Marshal encodes the manifest as YAML. Map keys are sorted, so equal
// manifests always encode to identical bytes.
func (m *Manifest) Marshal() ([]byte, error) {
	data, err := yaml.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("marshaling manifest: %w", err)
	}
	return append([]byte("---\n"), data...), nil
}
