package extract

import "fmt"

// ContextKind tags which kind of enclosing scope a directive was
// found in.
type ContextKind int

const (
	// ContextMain is the top level of the configuration, outside any
	// http/server/location block.
	ContextMain ContextKind = iota
	// ContextHTTP is directly inside an http { } block.
	ContextHTTP
	// ContextServer is directly inside a server { } block. Name holds
	// the block's first server_name, or the synthetic "<unnamed>" when
	// none was declared.
	ContextServer
	// ContextLocation is directly inside a location { } block. Path
	// holds the location's path literal (including any "@" prefix for
	// named locations).
	ContextLocation
)

// UnnamedServer is the synthetic server_name substituted for a server
// block that declares none.
const UnnamedServer = "<unnamed>"

// Context is the innermost enclosing scope of a directive: the tag of
// a closed union over Main/Http/Server(name)/Location(path).
type Context struct {
	Kind ContextKind
	Name string // meaningful when Kind == ContextServer
	Path string // meaningful when Kind == ContextLocation
}

func (c Context) String() string {
	switch c.Kind {
	case ContextMain:
		return "main"
	case ContextHTTP:
		return "http"
	case ContextServer:
		return fmt.Sprintf("server(%s)", c.Name)
	case ContextLocation:
		return fmt.Sprintf("location(%s)", c.Path)
	default:
		return "unknown"
	}
}
