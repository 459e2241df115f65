// Package codegen writes Go capability stubs to disk from free-text
// descriptions. A generated file compiles as-is and exposes a descriptor
// ready for registry discovery; the body is a placeholder for a human to
// replace with a real implementation.
package codegen

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/template"
	"unicode"

	"github.com/hupe1980/synapseflow/logging"
)

const maxNameLength = 60

// Options configures a Generator.
type Options struct {
	// Package is the package name written into generated files. Defaults to "tools".
	Package string
	// Logger defaults to NoOpLogger.
	Logger logging.Logger
}

// Generator renders capability stubs into a target directory.
type Generator struct {
	dir    string
	pkg    string
	logger logging.Logger
	tmpl   *template.Template
}

var stubTemplate = template.Must(template.New("capability").Parse(`// Code generated from a capability description. Replace the body with a
// real implementation before shipping.
package {{.Package}}

import (
	"context"

	"github.com/hupe1980/synapseflow/core"
)

// {{.FuncName}} is an auto-generated stub for the {{.Name}} capability.
func {{.FuncName}}(_ context.Context, input string) (string, error) {
	return "AUTO-GEN: " + input, nil
}

// {{.DescriptorName}} describes the {{.Name}} capability for discovery.
var {{.DescriptorName}} = core.Descriptor{
	Name:        {{printf "%q" .Name}},
	Description: {{printf "%q" .Description}},
	Parameters: []core.Parameter{
{{- range .Parameters}}
		{Name: {{printf "%q" .Name}}, Type: {{printf "%q" .Type}}, Description: {{printf "%q" .Description}}},
{{- end}}
	},
	EntryPoint: {{.FuncName}},
}
`))

type templateData struct {
	Package        string
	Name           string
	Description    string
	FuncName       string
	DescriptorName string
	Parameters     []templateParam
}

type templateParam struct {
	Name        string
	Type        string
	Description string
}

// New creates a Generator targeting dir, creating it if necessary.
func New(dir string, optFns ...func(o *Options)) (*Generator, error) {
	opts := Options{
		Package: "tools",
		Logger:  logging.NoOpLogger{},
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create capability dir: %w", err)
	}

	return &Generator{dir: dir, pkg: opts.Package, logger: opts.Logger, tmpl: stubTemplate}, nil
}

// Create renders a stub from a free-text description and returns the path of
// the written file. The first non-empty line names the capability; lines
// starting with "use:" become input parameter descriptions.
func (g *Generator) Create(description string) (string, error) {
	var lines []string
	for _, l := range strings.Split(description, "\n") {
		if l = strings.TrimSpace(l); l != "" {
			lines = append(lines, l)
		}
	}

	name := "generated_capability"
	if len(lines) > 0 {
		name = lines[0]
		if len(name) > maxNameLength {
			name = name[:maxNameLength]
		}
	}

	data := templateData{
		Package:        g.pkg,
		Name:           name,
		Description:    description,
		FuncName:       exportedName(name),
		DescriptorName: exportedName(name) + "Descriptor",
	}

	for _, l := range lines {
		if strings.HasPrefix(strings.ToLower(l), "use:") {
			data.Parameters = append(data.Parameters, templateParam{
				Name:        "input_text",
				Type:        "string",
				Description: strings.TrimSpace(l[4:]),
			})
		}
	}

	var buf bytes.Buffer
	if err := g.tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render capability stub: %w", err)
	}

	path := filepath.Join(g.dir, Slugify(name)+".go")
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return "", fmt.Errorf("write capability stub: %w", err)
	}

	g.logger.Info("codegen.created", "capability", name, "path", path)

	return path, nil
}

// Slugify converts a capability name into a lower_snake identifier usable as
// a file name.
func Slugify(name string) string {
	var b strings.Builder
	lastUnderscore := false
	for _, r := range strings.ToLower(name) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			lastUnderscore = false
		case !lastUnderscore && b.Len() > 0:
			b.WriteByte('_')
			lastUnderscore = true
		}
	}

	s := strings.Trim(b.String(), "_")
	if s == "" {
		return "generated_capability"
	}
	if unicode.IsDigit(rune(s[0])) {
		s = "_" + s
	}
	return s
}

// exportedName turns a capability name into an exported Go identifier.
func exportedName(name string) string {
	parts := strings.Split(Slugify(name), "_")
	var b strings.Builder
	for _, p := range parts {
		if p == "" {
			continue
		}
		b.WriteString(strings.ToUpper(p[:1]))
		b.WriteString(p[1:])
	}
	if b.Len() == 0 {
		return "GeneratedCapability"
	}
	return b.String()
}
