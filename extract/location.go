package extract

import (
	"strings"

	"github.com/PuerkitoBio/purell"
	"github.com/urwithajit9/nginx-discovery/ast"
	"github.com/urwithajit9/nginx-discovery/token"
)

// Modifier is a location block's match modifier, per §4.5.
type Modifier int

const (
	ModifierPrefix Modifier = iota
	ModifierExact
	ModifierPreferential
	ModifierRegex
	ModifierRegexInsensitive
)

func (m Modifier) String() string {
	switch m {
	case ModifierExact:
		return "="
	case ModifierPreferential:
		return "^~"
	case ModifierRegex:
		return "~"
	case ModifierRegexInsensitive:
		return "~*"
	default:
		return ""
	}
}

// Location is one location block recognized inside a server.
type Location struct {
	Path          string
	Modifier      Modifier
	AccessLogs    []AccessLog
	ProxyPass     *string
	Root          *string
	Alias         *string
	TryFiles      []string
	RawDirectives []*ast.Directive
	Position      token.Position
}

// IsProxy reports whether the location proxies to an upstream, per
// spec §4.5's is_proxy = proxy_pass.is_some().
func (l Location) IsProxy() bool {
	return l.ProxyPass != nil
}

// IsStatic reports whether the location serves from the filesystem
// rather than proxying, per spec §4.5's
// is_static = !is_proxy && (root.is_some() || alias.is_some() || try_files.non_empty()).
func (l Location) IsStatic() bool {
	return !l.IsProxy() && (l.Root != nil || l.Alias != nil || len(l.TryFiles) > 0)
}

// reconstructArgText re-materializes an argument's original surface
// form for the purpose of rebuilding a location pattern: a Variable
// argument gets its stripped '$' sigil back, everything else is
// already the literal text.
func reconstructArgText(a ast.Argument) string {
	if a.Kind == ast.Var {
		return "$" + a.Value
	}
	return a.Value
}

// parseLocationHead splits a location directive's arguments into the
// match modifier and the path, per the five forms nginx recognizes:
// "location path", "location = path", "location ^~ path",
// "location ~ pattern" and "location ~* pattern".
//
// A regex pattern that uses the "$" end-of-line anchor (e.g. "\.php$")
// is split by the lexer into a bareword followed by an empty Variable
// token, since "$" always starts a new token and "\.php$" isn't
// followed by a name. Every argument after the modifier is therefore
// reconstructed and concatenated, rather than taking only the first
// one, so the anchor isn't silently dropped.
func parseLocationHead(args []ast.Argument) (path string, modifier Modifier) {
	if len(args) == 0 {
		return "", ModifierPrefix
	}

	rest := args
	modifier = ModifierPrefix
	if len(args) > 1 {
		switch args[0].Value {
		case "=":
			modifier, rest = ModifierExact, args[1:]
		case "^~":
			modifier, rest = ModifierPreferential, args[1:]
		case "~":
			modifier, rest = ModifierRegex, args[1:]
		case "~*":
			modifier, rest = ModifierRegexInsensitive, args[1:]
		}
	}

	var sb strings.Builder
	for _, a := range rest {
		sb.WriteString(reconstructArgText(a))
	}
	return sb.String(), modifier
}

// Locations walks cfg and returns every location block found at any
// nesting depth, including nested locations and locations outside any
// server block, flattened into a single list.
func Locations(cfg *ast.Config, opts ...Option) ([]Location, []error) {
	o := applyOptions(opts)
	var locs []Location
	var warnings []error
	walkAll(cfg.Directives, func(d *ast.Directive) {
		if d.Name != "location" || d.Block == nil {
			return
		}
		loc, errs := buildLocation(d)
		warnings = append(warnings, errs...)
		locs = append(locs, loc)
	})
	if o.strict && len(warnings) > 0 {
		return nil, warnings
	}
	return locs, warnings
}

// collectLocations returns the location blocks found directly or
// nested within directives, used by the server extractor to populate
// Server.Locations without re-walking the whole config.
func collectLocations(directives []*ast.Directive) []Location {
	var out []Location
	for _, d := range directives {
		if d.Name == "location" && d.Block != nil {
			loc, _ := buildLocation(d)
			out = append(out, loc)
		}
		if d.Block != nil {
			out = append(out, collectLocations(d.Block.Directives)...)
		}
	}
	return out
}

func buildLocation(d *ast.Directive) (Location, []error) {
	path, modifier := parseLocationHead(d.Args)
	loc := Location{
		Path:          path,
		Modifier:      modifier,
		RawDirectives: d.Block.Directives,
		Position:      d.Position,
	}
	var warnings []error

	for _, child := range d.Block.Directives {
		switch child.Name {
		case "proxy_pass":
			if len(child.Args) == 0 {
				warnings = append(warnings, newError(MissingArgument, child.Name, child.Position, "proxy_pass requires a URL"))
				continue
			}
			normalized, err := purell.NormalizeURLString(child.Args[0].Value,
				purell.FlagsSafe|purell.FlagRemoveTrailingSlash)
			if err != nil {
				normalized = child.Args[0].Value
			}
			loc.ProxyPass = &normalized
		case "root":
			if len(child.Args) > 0 {
				v := child.Args[0].Value
				loc.Root = &v
			}
		case "alias":
			if len(child.Args) > 0 {
				v := child.Args[0].Value
				loc.Alias = &v
			}
		case "try_files":
			for _, a := range child.Args {
				loc.TryFiles = append(loc.TryFiles, a.Value)
			}
		case "access_log":
			al, err := parseAccessLog(child, Context{Kind: ContextLocation, Path: path})
			if err != nil {
				warnings = append(warnings, err)
				continue
			}
			loc.AccessLogs = append(loc.AccessLogs, al)
		}
	}

	return loc, warnings
}
