package extract

import (
	"github.com/urwithajit9/nginx-discovery/ast"
	"github.com/urwithajit9/nginx-discovery/token"
)

// ErrorLog is one error_log directive, tagged with the context it was
// found in.
type ErrorLog struct {
	Path     string
	Level    *string
	Context  Context
	Position token.Position
}

var errorLogLevels = map[string]bool{
	"debug": true, "info": true, "notice": true,
	"warn": true, "error": true, "crit": true, "alert": true, "emerg": true,
}

// ErrorLogs walks cfg tracking the Main/Http/Server/Location context
// stack and returns every error_log directive found, in encounter
// order.
func ErrorLogs(cfg *ast.Config, opts ...Option) ([]ErrorLog, []error) {
	o := applyOptions(opts)
	var logs []ErrorLog
	var warnings []error
	walkContext(cfg.Directives, Context{Kind: ContextMain}, func(d *ast.Directive, ctx Context) {
		if d.Name != "error_log" {
			return
		}
		el, err := parseErrorLog(d, ctx)
		if err != nil {
			warnings = append(warnings, err)
			return
		}
		if w := unrecognizedLevelWarning(d, el); w != nil {
			warnings = append(warnings, w)
		}
		logs = append(logs, el)
	})
	if o.strict && len(warnings) > 0 {
		return nil, warnings
	}
	return logs, warnings
}

func parseErrorLog(d *ast.Directive, ctx Context) (ErrorLog, *Error) {
	if len(d.Args) == 0 {
		return ErrorLog{}, newError(MissingArgument, d.Name, d.Position, "error_log requires at least a path")
	}
	el := ErrorLog{Path: d.Args[0].Value, Context: ctx, Position: d.Position}
	if len(d.Args) > 1 {
		level := d.Args[1].Value
		el.Level = &level
	}
	return el, nil
}

// unrecognizedLevelWarning flags an error_log level that isn't one of
// the documented severities. The value is still recorded on Level as
// written; this only notes that it's non-standard.
func unrecognizedLevelWarning(d *ast.Directive, el ErrorLog) *Error {
	if el.Level == nil || errorLogLevels[*el.Level] {
		return nil
	}
	return newError(UnrecognizedLevel, d.Name, d.Position, "error_log level %q is not a recognized severity, recorded as-is", *el.Level)
}
