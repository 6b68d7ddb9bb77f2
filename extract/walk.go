package extract

import "github.com/urwithajit9/nginx-discovery/ast"

// walkAll visits every directive in the tree, depth-first preorder,
// regardless of context. Used by extractors (like log_format) that
// don't care which scope a directive was found in.
func walkAll(directives []*ast.Directive, visit func(*ast.Directive)) {
	for _, d := range directives {
		visit(d)
		if d.Block != nil {
			walkAll(d.Block.Directives, visit)
		}
	}
}

// walkContext visits every directive depth-first preorder, tracking a
// Context stack the way §4.3 specifies: entering http/server/location
// pushes a new Context; every other block passes the current Context
// through unchanged.
func walkContext(directives []*ast.Directive, ctx Context, visit func(*ast.Directive, Context)) {
	for _, d := range directives {
		visit(d, ctx)
		if d.Block == nil {
			continue
		}
		switch d.Name {
		case "http":
			walkContext(d.Block.Directives, Context{Kind: ContextHTTP}, visit)
		case "server":
			name := firstServerName(d.Block.Directives)
			walkContext(d.Block.Directives, Context{Kind: ContextServer, Name: name}, visit)
		case "location":
			path, _ := parseLocationHead(d.Args)
			walkContext(d.Block.Directives, Context{Kind: ContextLocation, Path: path}, visit)
		default:
			walkContext(d.Block.Directives, ctx, visit)
		}
	}
}

// firstServerName returns the first argument of the first server_name
// directive found directly inside a server block's directives (not
// descending into nested blocks such as locations), or the synthetic
// UnnamedServer label if none is present.
func firstServerName(directives []*ast.Directive) string {
	for _, d := range directives {
		if d.Name == "server_name" && len(d.Args) > 0 {
			return d.Args[0].Value
		}
	}
	return UnnamedServer
}
