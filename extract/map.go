package extract

import (
	"github.com/urwithajit9/nginx-discovery/ast"
	"github.com/urwithajit9/nginx-discovery/token"
)

// MapEntry is one "source result" pair inside a map block.
type MapEntry struct {
	Source string
	Result string
}

// MapBlock is a map directive: a named variable derived from another
// variable by table lookup.
type MapBlock struct {
	SourceVariable string
	TargetVariable string
	Entries        []MapEntry
	Default        *string
	Position       token.Position
}

// Maps walks cfg and returns every map block found, at any nesting
// depth.
func Maps(cfg *ast.Config, opts ...Option) ([]MapBlock, []error) {
	o := applyOptions(opts)
	var maps []MapBlock
	var warnings []error

	walkAll(cfg.Directives, func(d *ast.Directive) {
		if d.Name != "map" || d.Block == nil {
			return
		}
		mb, err := buildMap(d)
		if err != nil {
			warnings = append(warnings, err)
			return
		}
		maps = append(maps, mb)
	})

	if o.strict && len(warnings) > 0 {
		return nil, warnings
	}
	return maps, warnings
}

func buildMap(d *ast.Directive) (MapBlock, *Error) {
	if len(d.Args) < 2 {
		return MapBlock{}, newError(MissingArgument, d.Name, d.Position, "map requires a source and target variable")
	}
	mb := MapBlock{
		SourceVariable: d.Args[0].Value,
		TargetVariable: d.Args[1].Value,
		Position:       d.Position,
	}
	for _, child := range d.Block.Directives {
		if len(child.Args) == 0 {
			continue
		}
		result := child.Args[0].Value
		if child.Name == "default" {
			mb.Default = &result
			continue
		}
		mb.Entries = append(mb.Entries, MapEntry{Source: child.Name, Result: result})
	}
	return mb, nil
}
