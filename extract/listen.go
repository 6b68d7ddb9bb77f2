package extract

import (
	"strconv"
	"strings"

	"github.com/miekg/dns"
	"github.com/urwithajit9/nginx-discovery/ast"
	"github.com/urwithajit9/nginx-discovery/token"
)

// ListenDirective is a single listen directive recognized inside a
// server block, per §4.4.
type ListenDirective struct {
	Address       string
	Port          *uint16
	SSL           bool
	HTTP2         bool
	HTTP3         bool
	DefaultServer bool
	Reuseport     bool
	Backlog       *uint32
	IPv6Only      *bool
	Raw           []string
	Position      token.Position
}

var listenFlagKeywords = map[string]bool{
	"ssl": true, "http2": true, "http3": true, "quic": true,
	"default_server": true, "default": true, "reuseport": true,
	"backlog": true, "ipv6only": true, "so_keepalive": true,
	"fastopen": true, "deferred": true, "bind": true, "accept_filter": true,
}

func isListenFlagKeyword(s string) bool {
	name, _, _ := strings.Cut(s, "=")
	return listenFlagKeywords[name]
}

// Listens walks cfg and returns every listen directive found at any
// nesting depth; it does not check that the directive sits inside a
// server block.
func Listens(cfg *ast.Config, opts ...Option) ([]ListenDirective, []error) {
	o := applyOptions(opts)
	var listens []ListenDirective
	var warnings []error
	walkAll(cfg.Directives, func(d *ast.Directive) {
		if d.Name != "listen" {
			return
		}
		ld, err := parseListen(d)
		if err != nil {
			warnings = append(warnings, err)
			return
		}
		if w := suspiciousHostnameWarning(d, ld); w != nil {
			warnings = append(warnings, w)
		}
		listens = append(listens, ld)
	})
	if o.strict && len(warnings) > 0 {
		return nil, warnings
	}
	return listens, warnings
}

func parseListen(d *ast.Directive) (ListenDirective, *Error) {
	if len(d.Args) == 0 {
		return ListenDirective{}, newError(MissingArgument, d.Name, d.Position, "listen requires an endpoint")
	}

	ld := ListenDirective{Position: d.Position}
	args := d.Args
	first := args[0].Value

	if isListenFlagKeyword(first) {
		ld.Address = "*"
	} else {
		address, port, err := parseEndpoint(first)
		if err != nil {
			return ListenDirective{}, newError(InvalidListen, d.Name, d.Position, "%s", err)
		}
		ld.Address = address
		ld.Port = port
		args = args[1:]
	}

	for _, a := range args {
		ld.Raw = append(ld.Raw, a.Value)
		name, value, hasValue := strings.Cut(a.Value, "=")
		switch name {
		case "ssl":
			ld.SSL = true
		case "http2":
			ld.HTTP2 = true
		case "http3", "quic":
			ld.HTTP3 = true
		case "default_server", "default":
			ld.DefaultServer = true
		case "reuseport":
			ld.Reuseport = true
		case "backlog":
			if hasValue {
				n, err := strconv.ParseUint(value, 10, 32)
				if err != nil {
					return ListenDirective{}, newError(InvalidListen, d.Name, d.Position, "invalid backlog %q: %s", value, err)
				}
				v := uint32(n)
				ld.Backlog = &v
			}
		case "ipv6only":
			if hasValue {
				b := value == "on"
				ld.IPv6Only = &b
			}
		}
	}

	return ld, nil
}

// suspiciousHostnameWarning flags a listen address that is neither an
// IP literal, a unix socket path, nor a syntactically valid hostname.
// It never withholds the record: the listen directive is still
// reported with the address as written, this is advisory only.
func suspiciousHostnameWarning(d *ast.Directive, ld ListenDirective) *Error {
	if ld.Address == "*" || ld.Address == "" || strings.HasPrefix(ld.Address, "unix:") {
		return nil
	}
	if isIPLiteral(ld.Address) || dns.IsDomainName(ld.Address) {
		return nil
	}
	return newError(InvalidListen, d.Name, d.Position, "listen address %q is not a valid IP literal or hostname", ld.Address)
}

// parseEndpoint splits a listen directive's first argument into an
// address and an optional port, per the forms nginx accepts:
// "address:port", "address", "port", "[::]:port", "unix:path".
func parseEndpoint(s string) (string, *uint16, error) {
	if strings.HasPrefix(s, "unix:") {
		return s, nil, nil
	}

	if strings.HasPrefix(s, "[") {
		end := strings.IndexByte(s, ']')
		if end < 0 {
			return "", nil, errEndpointSyntax(s)
		}
		addr := s[:end+1]
		rest := s[end+1:]
		if rest == "" {
			return addr, nil, nil
		}
		if !strings.HasPrefix(rest, ":") {
			return "", nil, errEndpointSyntax(s)
		}
		p, err := parsePort(rest[1:])
		if err != nil {
			return "", nil, err
		}
		return addr, p, nil
	}

	if idx := strings.LastIndexByte(s, ':'); idx >= 0 {
		addr, portStr := s[:idx], s[idx+1:]
		p, err := parsePort(portStr)
		if err != nil {
			return "", nil, err
		}
		return addr, p, nil
	}

	// bare "80" means "*" on that port; anything else is an address
	// with no port.
	if p, err := parsePort(s); err == nil {
		return "*", p, nil
	}
	return s, nil, nil
}

func parsePort(s string) (*uint16, error) {
	n, err := strconv.ParseUint(s, 10, 16)
	if err != nil {
		return nil, err
	}
	p := uint16(n)
	return &p, nil
}

func errEndpointSyntax(s string) error {
	return &endpointSyntaxError{s}
}

type endpointSyntaxError struct{ s string }

func (e *endpointSyntaxError) Error() string {
	return "malformed listen endpoint: " + e.s
}

func isIPLiteral(s string) bool {
	s = strings.TrimPrefix(strings.TrimSuffix(s, "]"), "[")
	return strings.ContainsAny(s, ".:") && !strings.Contains(s, "/")
}
