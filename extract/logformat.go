package extract

import (
	"strings"

	"github.com/urwithajit9/nginx-discovery/ast"
	"github.com/urwithajit9/nginx-discovery/token"
)

// LogFormat is a named access_log template recognized from a
// log_format directive.
type LogFormat struct {
	Name      string
	Pattern   string
	Variables []string
	Position  token.Position
}

// LogFormats walks cfg depth-first and returns every log_format
// directive found, at any nesting level.
func LogFormats(cfg *ast.Config, opts ...Option) ([]LogFormat, []error) {
	o := applyOptions(opts)
	var formats []LogFormat
	var warnings []error
	walkAll(cfg.Directives, func(d *ast.Directive) {
		if d.Name != "log_format" {
			return
		}
		lf, err := parseLogFormat(d)
		if err != nil {
			warnings = append(warnings, err)
			return
		}
		formats = append(formats, lf)
	})
	if o.strict && len(warnings) > 0 {
		return nil, warnings
	}
	return formats, warnings
}

func parseLogFormat(d *ast.Directive) (LogFormat, *Error) {
	if len(d.Args) < 1 {
		return LogFormat{}, newError(MalformedLogFormat, d.Name, d.Position, "log_format requires a name and a pattern")
	}
	name := d.Args[0].Value
	if len(d.Args) < 2 {
		return LogFormat{}, newError(MalformedLogFormat, d.Name, d.Position, "log_format %q has no pattern", name)
	}

	parts := make([]string, 0, len(d.Args)-1)
	for _, a := range d.Args[1:] {
		parts = append(parts, a.Value)
	}
	pattern := strings.Join(parts, " ")

	return LogFormat{
		Name:      name,
		Pattern:   pattern,
		Variables: Variables(pattern),
		Position:  d.Position,
	}, nil
}

// Variables scans pattern for $name and ${name} references and
// returns the de-duplicated, insertion-ordered list of variable names
// it finds. Running it twice on the same pattern yields the same
// slice (variable extraction is idempotent).
func Variables(pattern string) []string {
	var out []string
	seen := make(map[string]bool)

	add := func(name string) {
		if name == "" || seen[name] {
			return
		}
		seen[name] = true
		out = append(out, name)
	}

	i := 0
	for i < len(pattern) {
		if pattern[i] != '$' {
			i++
			continue
		}
		i++
		if i < len(pattern) && pattern[i] == '{' {
			j := i + 1
			for j < len(pattern) && pattern[j] != '}' {
				j++
			}
			if j < len(pattern) {
				add(pattern[i+1 : j])
				i = j + 1
				continue
			}
			// unterminated ${...}: stop scanning, nothing more to find
			break
		}
		j := i
		for j < len(pattern) && isVarNameByte(pattern[j]) {
			j++
		}
		add(pattern[i:j])
		i = j
	}
	return out
}

func isVarNameByte(b byte) bool {
	return b == '_' ||
		(b >= 'a' && b <= 'z') ||
		(b >= 'A' && b <= 'Z') ||
		(b >= '0' && b <= '9')
}
