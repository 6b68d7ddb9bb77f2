package extract

import "testing"

func TestParseEndpointForms(t *testing.T) {
	cases := []struct {
		in       string
		wantAddr string
		wantPort uint16
		hasPort  bool
	}{
		{"80", "*", 80, true},
		{"127.0.0.1:8080", "127.0.0.1", 8080, true},
		{"[::1]:8080", "[::1]", 8080, true},
		{"[::]", "[::]", 0, false},
		{"unix:/var/run/nginx.sock", "unix:/var/run/nginx.sock", 0, false},
		{"example.com", "example.com", 0, false},
	}
	for _, c := range cases {
		addr, port, err := parseEndpoint(c.in)
		if err != nil {
			t.Errorf("parseEndpoint(%q) error: %v", c.in, err)
			continue
		}
		if addr != c.wantAddr {
			t.Errorf("parseEndpoint(%q) addr = %q, want %q", c.in, addr, c.wantAddr)
		}
		if c.hasPort {
			if port == nil || *port != c.wantPort {
				t.Errorf("parseEndpoint(%q) port = %v, want %d", c.in, port, c.wantPort)
			}
		} else if port != nil {
			t.Errorf("parseEndpoint(%q) port = %v, want nil", c.in, *port)
		}
	}
}

func TestListensFromServerBlock(t *testing.T) {
	src := `
server {
    listen 80 default_server;
    listen 443 ssl http2;
    listen [::]:8080 backlog=1024;
}
`
	cfg := parseOrFail(t, src)
	listens, warnings := Listens(cfg)
	if len(warnings) != 0 {
		t.Fatalf("unexpected warnings: %v", warnings)
	}
	if len(listens) != 3 {
		t.Fatalf("got %d listens, want 3", len(listens))
	}
	if !listens[0].DefaultServer {
		t.Errorf("listens[0].DefaultServer = false, want true")
	}
	if !listens[1].SSL || !listens[1].HTTP2 {
		t.Errorf("listens[1] = %+v, want SSL and HTTP2", listens[1])
	}
	if listens[2].Backlog == nil || *listens[2].Backlog != 1024 {
		t.Errorf("listens[2].Backlog = %v, want 1024", listens[2].Backlog)
	}
}

func TestListenMissingArgumentWarns(t *testing.T) {
	src := `listen;`
	cfg := parseOrFail(t, src)
	_, warnings := Listens(cfg)
	if len(warnings) != 1 {
		t.Fatalf("got %d warnings, want 1", len(warnings))
	}
}
