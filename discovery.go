// Package discovery is the top-level, read-only façade over a parsed
// NGINX configuration: it owns a Config, composes the extract package
// into typed records, memoizes each extraction exactly once, and adds
// the handful of filters a caller typically wants (by port, by SSL,
// by shell-style name glob, proxy-only).
package discovery

import (
	"sort"
	"sync"

	"go.uber.org/zap"

	"github.com/urwithajit9/nginx-discovery/ast"
	"github.com/urwithajit9/nginx-discovery/extract"
	"github.com/urwithajit9/nginx-discovery/parser"
)

// Option configures a Discovery at construction time.
type Option func(*Discovery)

// WithLogger attaches a structured logger that receives extractor
// warnings at Warn level. A nil logger (the default) is a no-op
// logger, mirroring caddy.Log()'s nil-safety.
func WithLogger(log *zap.Logger) Option {
	return func(d *Discovery) { d.logger = log }
}

// WithExtractOptions forwards options (e.g. extract.WithStrict()) to
// every extractor the façade calls internally.
func WithExtractOptions(opts ...extract.Option) Option {
	return func(d *Discovery) { d.extractOpts = opts }
}

// Discovery is a read-only view over a Config. It is safe for
// concurrent use by multiple goroutines: every memoized field is
// computed at most once, behind a sync.Once, and published as an
// immutable snapshot.
type Discovery struct {
	cfg         *ast.Config
	logger      *zap.Logger
	extractOpts []extract.Option

	serversOnce sync.Once
	servers     []extract.Server
	serversWarn []error

	logFormatsOnce sync.Once
	logFormats     []extract.LogFormat
	logFormatsWarn []error

	accessLogsOnce sync.Once
	accessLogs     []extract.AccessLog
	accessLogsWarn []error

	errorLogsOnce sync.Once
	errorLogs     []extract.ErrorLog
	errorLogsWarn []error

	upstreamsOnce sync.Once
	upstreams     []extract.Upstream
	upstreamsWarn []error

	mapsOnce sync.Once
	maps     []extract.MapBlock
	mapsWarn []error
}

// New wraps an already-parsed Config in a Discovery façade.
func New(cfg *ast.Config, opts ...Option) *Discovery {
	d := &Discovery{cfg: cfg, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(d)
	}
	if d.logger == nil {
		d.logger = zap.NewNop()
	}
	return d
}

// FromText parses text and wraps the result in a Discovery façade, in
// one call.
func FromText(text []byte, opts ...Option) (*Discovery, error) {
	cfg, err := parser.Parse(text)
	if err != nil {
		return nil, err
	}
	return New(cfg, opts...), nil
}

// FromFile reads path and parses it, attaching path to every token's
// Position so that errors and records reference the real file name.
func FromFile(path string, readFile func(string) ([]byte, error), opts ...Option) (*Discovery, error) {
	text, err := readFile(path)
	if err != nil {
		return nil, err
	}
	cfg, err := parser.ParseWithSource(text, path)
	if err != nil {
		return nil, err
	}
	return New(cfg, opts...), nil
}

// Config returns the underlying syntax tree the façade was built from.
func (d *Discovery) Config() *ast.Config { return d.cfg }

func (d *Discovery) logWarnings(kind string, warnings []error) {
	for _, w := range warnings {
		d.logger.Warn("extraction warning", zap.String("kind", kind), zap.Error(w))
	}
}

// Servers returns every server block found in the configuration,
// computed at most once.
func (d *Discovery) Servers() []extract.Server {
	d.serversOnce.Do(func() {
		d.servers, d.serversWarn = extract.Servers(d.cfg, d.extractOpts...)
		d.logWarnings("server", d.serversWarn)
	})
	return d.servers
}

// SSLServers returns the subset of Servers() with at least one SSL
// listen directive.
func (d *Discovery) SSLServers() []extract.Server {
	var out []extract.Server
	for _, s := range d.Servers() {
		if s.HasSSL() {
			out = append(out, s)
		}
	}
	return out
}

// ListeningPorts returns the sorted, de-duplicated union of every
// port any server listens on.
func (d *Discovery) ListeningPorts() []uint16 {
	seen := make(map[uint16]bool)
	var ports []uint16
	for _, s := range d.Servers() {
		for _, p := range s.Ports() {
			if !seen[p] {
				seen[p] = true
				ports = append(ports, p)
			}
		}
	}
	sort.Slice(ports, func(i, j int) bool { return ports[i] < ports[j] })
	return ports
}

// NamedLocation pairs a Location with the server_name of the server it
// was found in, for callers that want proxy_pass targets without
// walking Servers() themselves.
type NamedLocation struct {
	ServerName string
	Location   extract.Location
}

// ProxyLocations returns every location with ProxyPass set, paired
// with its owning server's first server_name (or extract.UnnamedServer).
func (d *Discovery) ProxyLocations() []NamedLocation {
	var out []NamedLocation
	for _, s := range d.Servers() {
		name := extract.UnnamedServer
		if len(s.ServerNames) > 0 {
			name = s.ServerNames[0]
		}
		for _, loc := range s.Locations {
			if loc.IsProxy() {
				out = append(out, NamedLocation{ServerName: name, Location: loc})
			}
		}
	}
	return out
}

// LocationCount returns the total number of locations across every
// server.
func (d *Discovery) LocationCount() int {
	n := 0
	for _, s := range d.Servers() {
		n += len(s.Locations)
	}
	return n
}

// AccessLogs returns every access_log directive found anywhere in the
// configuration, computed at most once.
func (d *Discovery) AccessLogs() []extract.AccessLog {
	d.accessLogsOnce.Do(func() {
		d.accessLogs, d.accessLogsWarn = extract.AccessLogs(d.cfg, d.extractOpts...)
		d.logWarnings("access_log", d.accessLogsWarn)
	})
	return d.accessLogs
}

// ErrorLogs returns every error_log directive found anywhere in the
// configuration, computed at most once.
func (d *Discovery) ErrorLogs() []extract.ErrorLog {
	d.errorLogsOnce.Do(func() {
		d.errorLogs, d.errorLogsWarn = extract.ErrorLogs(d.cfg, d.extractOpts...)
		d.logWarnings("error_log", d.errorLogsWarn)
	})
	return d.errorLogs
}

// LogFormats returns every log_format directive found anywhere in the
// configuration, computed at most once.
func (d *Discovery) LogFormats() []extract.LogFormat {
	d.logFormatsOnce.Do(func() {
		d.logFormats, d.logFormatsWarn = extract.LogFormats(d.cfg, d.extractOpts...)
		d.logWarnings("log_format", d.logFormatsWarn)
	})
	return d.logFormats
}

// Upstreams returns every upstream block found anywhere in the
// configuration, computed at most once.
func (d *Discovery) Upstreams() []extract.Upstream {
	d.upstreamsOnce.Do(func() {
		d.upstreams, d.upstreamsWarn = extract.Upstreams(d.cfg, d.extractOpts...)
		d.logWarnings("upstream", d.upstreamsWarn)
	})
	return d.upstreams
}

// UpstreamFor returns the Upstream block named by loc.ProxyPass's host
// component, if any upstream with that name exists. It's a best-effort
// cross-reference: nginx only resolves proxy_pass against an upstream
// name when the URL has no port and the host isn't a literal address,
// which this does not attempt to distinguish.
func (d *Discovery) UpstreamFor(loc extract.Location) (extract.Upstream, bool) {
	if loc.ProxyPass == nil {
		return extract.Upstream{}, false
	}
	host := upstreamHost(*loc.ProxyPass)
	for _, u := range d.Upstreams() {
		if u.Name == host {
			return u, true
		}
	}
	return extract.Upstream{}, false
}

// Maps returns every map block found anywhere in the configuration,
// computed at most once.
func (d *Discovery) Maps() []extract.MapBlock {
	d.mapsOnce.Do(func() {
		d.maps, d.mapsWarn = extract.Maps(d.cfg, d.extractOpts...)
		d.logWarnings("map", d.mapsWarn)
	})
	return d.maps
}

// ServerNames returns the de-duplicated union of every server's
// server_names, preserving first-occurrence order.
func (d *Discovery) ServerNames() []string {
	seen := make(map[string]bool)
	var out []string
	for _, s := range d.Servers() {
		for _, name := range s.ServerNames {
			if !seen[name] {
				seen[name] = true
				out = append(out, name)
			}
		}
	}
	return out
}

// AllLogFiles returns the de-duplicated union of every access_log and
// error_log path, excluding the literal "off".
func (d *Discovery) AllLogFiles() []string {
	seen := make(map[string]bool)
	var out []string
	add := func(path string) {
		if path == "off" || seen[path] {
			return
		}
		seen[path] = true
		out = append(out, path)
	}
	for _, a := range d.AccessLogs() {
		add(a.Path)
	}
	for _, e := range d.ErrorLogs() {
		add(e.Path)
	}
	return out
}

// Warnings combines every warning collected across every extractor
// call made so far on this façade. Extractors that haven't been
// invoked yet (their accessor hasn't been called) contribute nothing.
func (d *Discovery) Warnings() error {
	var all []error
	all = append(all, d.serversWarn...)
	all = append(all, d.accessLogsWarn...)
	all = append(all, d.errorLogsWarn...)
	all = append(all, d.logFormatsWarn...)
	all = append(all, d.upstreamsWarn...)
	all = append(all, d.mapsWarn...)
	return extract.Combine(all)
}
