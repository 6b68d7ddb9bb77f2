package discovery

import (
	"net/url"
	"path"
	"strings"

	"github.com/urwithajit9/nginx-discovery/extract"
)

// ByPort returns the servers listening on the given port.
func (d *Discovery) ByPort(port uint16) []extract.Server {
	var out []extract.Server
	for _, s := range d.Servers() {
		for _, p := range s.Ports() {
			if p == port {
				out = append(out, s)
				break
			}
		}
	}
	return out
}

// ByName returns the servers with at least one server_name matching
// pattern, a shell-style glob where '*' matches any sequence of
// characters and '?' matches exactly one.
func (d *Discovery) ByName(pattern string) []extract.Server {
	var out []extract.Server
	for _, s := range d.Servers() {
		for _, name := range s.ServerNames {
			if globMatch(pattern, name) {
				out = append(out, s)
				break
			}
		}
	}
	return out
}

// ProxyOnly returns the servers that have at least one proxying
// location.
func (d *Discovery) ProxyOnly() []extract.Server {
	var out []extract.Server
	for _, s := range d.Servers() {
		for _, loc := range s.Locations {
			if loc.IsProxy() {
				out = append(out, s)
				break
			}
		}
	}
	return out
}

// globMatch reports whether name matches the shell-style glob pattern:
// '*' matches any sequence (including empty), '?' matches exactly one
// character. It's implemented with path.Match, which supports the
// same two wildcards over arbitrary strings (not just path segments
// here, since server names never contain '/').
func globMatch(pattern, name string) bool {
	ok, err := path.Match(pattern, name)
	return err == nil && ok
}

// upstreamHost extracts the host:port component out of a proxy_pass
// target URL, the form upstream blocks are named by.
func upstreamHost(target string) string {
	u, err := url.Parse(target)
	if err != nil || u.Host == "" {
		return strings.TrimSuffix(target, "/")
	}
	return u.Host
}
