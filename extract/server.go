package extract

import (
	"golang.org/x/net/idna"

	"github.com/urwithajit9/nginx-discovery/ast"
	"github.com/urwithajit9/nginx-discovery/token"
)

// Server is one server block recognized inside an http block, with
// its listens, locations and logs flattened out of RawDirectives for
// convenient access.
type Server struct {
	ServerNames   []string
	Listens       []ListenDirective
	Locations     []Location
	AccessLogs    []AccessLog
	ErrorLogs     []ErrorLog
	Root          *string
	Index         []string
	RawDirectives []*ast.Directive
	Position      token.Position
}

// HasSSL reports whether any of the server's listen directives enable
// SSL/TLS termination.
func (s Server) HasSSL() bool {
	for _, l := range s.Listens {
		if l.SSL {
			return true
		}
	}
	return false
}

// Ports returns the distinct, non-nil ports the server listens on, in
// encounter order.
func (s Server) Ports() []uint16 {
	var ports []uint16
	seen := make(map[uint16]bool)
	for _, l := range s.Listens {
		if l.Port == nil || seen[*l.Port] {
			continue
		}
		seen[*l.Port] = true
		ports = append(ports, *l.Port)
	}
	return ports
}

// Servers walks cfg at any nesting depth and returns every server
// block found, with its own listens/locations/logs populated.
func Servers(cfg *ast.Config, opts ...Option) ([]Server, []error) {
	o := applyOptions(opts)
	var servers []Server
	var warnings []error

	walkAll(cfg.Directives, func(d *ast.Directive) {
		if d.Name != "server" || d.Block == nil {
			return
		}
		srv, errs := buildServer(d)
		warnings = append(warnings, errs...)
		servers = append(servers, srv)
	})

	if o.strict && len(warnings) > 0 {
		return nil, warnings
	}
	return servers, warnings
}

func buildServer(d *ast.Directive) (Server, []error) {
	srv := Server{RawDirectives: d.Block.Directives, Position: d.Position}
	var warnings []error

	for _, child := range d.Block.Directives {
		switch child.Name {
		case "server_name":
			for _, a := range child.Args {
				srv.ServerNames = append(srv.ServerNames, normalizeServerName(a.Value))
			}
		case "listen":
			ld, err := parseListen(child)
			if err != nil {
				warnings = append(warnings, err)
				continue
			}
			srv.Listens = append(srv.Listens, ld)
		case "root":
			if len(child.Args) > 0 {
				v := child.Args[0].Value
				srv.Root = &v
			}
		case "index":
			for _, a := range child.Args {
				srv.Index = append(srv.Index, a.Value)
			}
		case "access_log":
			ctx := Context{Kind: ContextServer, Name: firstServerName(d.Block.Directives)}
			al, err := parseAccessLog(child, ctx)
			if err != nil {
				warnings = append(warnings, err)
				continue
			}
			srv.AccessLogs = append(srv.AccessLogs, al)
		case "error_log":
			ctx := Context{Kind: ContextServer, Name: firstServerName(d.Block.Directives)}
			el, err := parseErrorLog(child, ctx)
			if err != nil {
				warnings = append(warnings, err)
				continue
			}
			srv.ErrorLogs = append(srv.ErrorLogs, el)
		}
	}

	srv.Locations = collectLocations(d.Block.Directives)
	return srv, warnings
}

// normalizeServerName applies IDNA ToASCII to non-pattern server_name
// entries (wildcards like "*.example.com" and regex names starting
// with "~" are passed through unchanged, since idna doesn't know what
// to do with them).
func normalizeServerName(name string) string {
	if name == "" || name[0] == '~' || name == "_" {
		return name
	}
	ascii, err := idna.Lookup.ToASCII(name)
	if err != nil {
		return name
	}
	return ascii
}
