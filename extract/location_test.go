package extract

import "testing"

func TestParseLocationHeadModifiers(t *testing.T) {
	src := `
server {
    location / { root /var/www; }
    location = /health { return 200; }
    location ^~ /static/ { root /var/www/static; }
    location ~ \.php$ { proxy_pass http://php; }
    location ~* \.(jpg|png)$ { root /var/www/images; }
}
`
	cfg := parseOrFail(t, src)
	locs, warnings := Locations(cfg)
	if len(warnings) != 0 {
		t.Fatalf("unexpected warnings: %v", warnings)
	}
	if len(locs) != 5 {
		t.Fatalf("got %d locations, want 5", len(locs))
	}
	want := []struct {
		path string
		mod  Modifier
	}{
		{"/", ModifierPrefix},
		{"/health", ModifierExact},
		{"/static/", ModifierPreferential},
		{`\.php$`, ModifierRegex},
		{`\.(jpg|png)$`, ModifierRegexInsensitive},
	}
	for i, w := range want {
		if locs[i].Path != w.path || locs[i].Modifier != w.mod {
			t.Errorf("locs[%d] = {%q, %v}, want {%q, %v}", i, locs[i].Path, locs[i].Modifier, w.path, w.mod)
		}
	}
}

func TestLocationProxyPassNormalized(t *testing.T) {
	src := `
location /api/ {
    proxy_pass http://Backend.Example.com:8080/;
}
`
	cfg := parseOrFail(t, src)
	locs, _ := Locations(cfg)
	if len(locs) != 1 || locs[0].ProxyPass == nil {
		t.Fatalf("expected one location with ProxyPass set, got %+v", locs)
	}
	if *locs[0].ProxyPass != "http://backend.example.com:8080" {
		t.Errorf("ProxyPass = %q, want http://backend.example.com:8080", *locs[0].ProxyPass)
	}
}

func TestLocationIsProxyIsStatic(t *testing.T) {
	src := `
server {
    location /api/ {
        proxy_pass http://backend;
    }
    location / {
        root /var/www/html;
        try_files $uri $uri/ =404;
    }
}
`
	cfg := parseOrFail(t, src)
	locs, warnings := Locations(cfg)
	if len(warnings) != 0 {
		t.Fatalf("unexpected warnings: %v", warnings)
	}
	if len(locs) != 2 {
		t.Fatalf("got %d locations, want 2", len(locs))
	}
	if !locs[0].IsProxy() || locs[0].IsStatic() {
		t.Errorf("locs[0] IsProxy=%v IsStatic=%v, want true/false", locs[0].IsProxy(), locs[0].IsStatic())
	}
	if locs[1].IsProxy() || !locs[1].IsStatic() {
		t.Errorf("locs[1] IsProxy=%v IsStatic=%v, want false/true", locs[1].IsProxy(), locs[1].IsStatic())
	}
}

func TestNestedLocationsAreFlattened(t *testing.T) {
	src := `
server {
    location /a/ {
        location /a/b/ {
            root /var/www;
        }
    }
}
`
	cfg := parseOrFail(t, src)
	servers, warnings := Servers(cfg)
	if len(warnings) != 0 {
		t.Fatalf("unexpected warnings: %v", warnings)
	}
	if len(servers) != 1 {
		t.Fatalf("got %d servers, want 1", len(servers))
	}
	if len(servers[0].Locations) != 2 {
		t.Fatalf("got %d locations, want 2 (outer + nested)", len(servers[0].Locations))
	}
}
