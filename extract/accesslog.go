package extract

import (
	"strings"

	"github.com/urwithajit9/nginx-discovery/ast"
	"github.com/urwithajit9/nginx-discovery/token"
)

// AccessLog is one access_log directive, tagged with the context it
// was found in.
type AccessLog struct {
	Path       string
	FormatName *string
	Conditions []string
	Context    Context
	Position   token.Position
}

// AccessLogs walks cfg tracking the Main/Http/Server/Location context
// stack and returns every access_log directive found, in encounter
// order.
func AccessLogs(cfg *ast.Config, opts ...Option) ([]AccessLog, []error) {
	o := applyOptions(opts)
	var logs []AccessLog
	var warnings []error
	walkContext(cfg.Directives, Context{Kind: ContextMain}, func(d *ast.Directive, ctx Context) {
		if d.Name != "access_log" {
			return
		}
		al, err := parseAccessLog(d, ctx)
		if err != nil {
			warnings = append(warnings, err)
			return
		}
		logs = append(logs, al)
	})
	if o.strict && len(warnings) > 0 {
		return nil, warnings
	}
	return logs, warnings
}

func parseAccessLog(d *ast.Directive, ctx Context) (AccessLog, *Error) {
	if len(d.Args) == 0 {
		return AccessLog{}, newError(MissingArgument, d.Name, d.Position, "access_log requires at least a path")
	}

	path := d.Args[0].Value
	if path == "off" {
		return AccessLog{Path: "off", Context: ctx, Position: d.Position}, nil
	}

	al := AccessLog{Path: path, Context: ctx, Position: d.Position}
	rest := d.Args[1:]

	// "if=$cond" is unquoted in source, so the lexer splits it into a
	// bareword "if=" argument immediately followed by a Variable
	// argument; a quoted "if=$cond" stays a single Quoted argument. Only
	// the "if=" prefix is meant to be stripped, so the reassembled form
	// gets its "$" sigil back to agree with the quoted form.
	isCondition := func(i int) (string, int, bool) {
		a := rest[i]
		if a.Kind == ast.Bareword && a.Value == "if=" && i+1 < len(rest) && rest[i+1].Kind == ast.Var {
			return "$" + rest[i+1].Value, 2, true
		}
		if cond, ok := strings.CutPrefix(a.Value, "if="); ok {
			return cond, 1, true
		}
		return "", 0, false
	}

	if len(rest) > 0 {
		if _, _, ok := isCondition(0); !ok {
			name := rest[0].Value
			al.FormatName = &name
			rest = rest[1:]
		}
	}

	for i := 0; i < len(rest); {
		if cond, n, ok := isCondition(i); ok {
			al.Conditions = append(al.Conditions, cond)
			i += n
			continue
		}
		i++
	}
	return al, nil
}
