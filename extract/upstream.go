package extract

import (
	"strings"

	"github.com/urwithajit9/nginx-discovery/ast"
	"github.com/urwithajit9/nginx-discovery/token"
)

// UpstreamServer is one "server" entry inside an upstream block.
type UpstreamServer struct {
	Address     string
	Weight      *int
	MaxFails    *int
	FailTimeout string
	Backup      bool
	Down        bool
	Position    token.Position
}

// Upstream is one upstream block, recognized at http or stream level.
type Upstream struct {
	Name     string
	Servers  []UpstreamServer
	Position token.Position
}

// Upstreams walks cfg and returns every upstream block found, at any
// nesting depth.
func Upstreams(cfg *ast.Config, opts ...Option) ([]Upstream, []error) {
	o := applyOptions(opts)
	var upstreams []Upstream
	var warnings []error

	walkAll(cfg.Directives, func(d *ast.Directive) {
		if d.Name != "upstream" || d.Block == nil {
			return
		}
		up, errs := buildUpstream(d)
		warnings = append(warnings, errs...)
		upstreams = append(upstreams, up)
	})

	if o.strict && len(warnings) > 0 {
		return nil, warnings
	}
	return upstreams, warnings
}

func buildUpstream(d *ast.Directive) (Upstream, []error) {
	up := Upstream{Position: d.Position}
	if len(d.Args) > 0 {
		up.Name = d.Args[0].Value
	}

	var warnings []error
	for _, child := range d.Block.Directives {
		if child.Name != "server" {
			continue
		}
		us, err := parseUpstreamServer(child)
		if err != nil {
			warnings = append(warnings, err)
			continue
		}
		up.Servers = append(up.Servers, us)
	}
	return up, warnings
}

func parseUpstreamServer(d *ast.Directive) (UpstreamServer, *Error) {
	if len(d.Args) == 0 {
		return UpstreamServer{}, newError(MissingArgument, d.Name, d.Position, "upstream server requires an address")
	}
	us := UpstreamServer{Address: d.Args[0].Value, Position: d.Position}
	for _, a := range d.Args[1:] {
		switch {
		case a.Value == "backup":
			us.Backup = true
		case a.Value == "down":
			us.Down = true
		case hasIntParam(a.Value, "weight=", &us.Weight):
		case hasIntParam(a.Value, "max_fails=", &us.MaxFails):
		default:
			if timeout, ok := strings.CutPrefix(a.Value, "fail_timeout="); ok {
				us.FailTimeout = timeout
			}
		}
	}
	return us, nil
}

func hasIntParam(s, prefix string, dst **int) bool {
	if len(s) <= len(prefix) || s[:len(prefix)] != prefix {
		return false
	}
	n := 0
	for _, c := range s[len(prefix):] {
		if c < '0' || c > '9' {
			return false
		}
		n = n*10 + int(c-'0')
	}
	*dst = &n
	return true
}
