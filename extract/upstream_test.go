package extract

import "testing"

func TestUpstreamsBasic(t *testing.T) {
	src := `
http {
    upstream backend {
        server 10.0.0.1:8080 weight=5;
        server 10.0.0.2:8080 max_fails=3 fail_timeout=30s backup;
        server 10.0.0.3:8080 down;
    }
}
`
	cfg := parseOrFail(t, src)
	ups, warnings := Upstreams(cfg)
	if len(warnings) != 0 {
		t.Fatalf("unexpected warnings: %v", warnings)
	}
	if len(ups) != 1 {
		t.Fatalf("got %d upstreams, want 1", len(ups))
	}
	u := ups[0]
	if u.Name != "backend" {
		t.Errorf("Name = %q, want backend", u.Name)
	}
	if len(u.Servers) != 3 {
		t.Fatalf("got %d upstream servers, want 3", len(u.Servers))
	}
	if u.Servers[0].Weight == nil || *u.Servers[0].Weight != 5 {
		t.Errorf("Servers[0].Weight = %v, want 5", u.Servers[0].Weight)
	}
	if !u.Servers[1].Backup || u.Servers[1].MaxFails == nil || *u.Servers[1].MaxFails != 3 {
		t.Errorf("Servers[1] = %+v, want Backup=true MaxFails=3", u.Servers[1])
	}
	if u.Servers[1].FailTimeout != "30s" {
		t.Errorf("Servers[1].FailTimeout = %q, want 30s", u.Servers[1].FailTimeout)
	}
	if !u.Servers[2].Down {
		t.Errorf("Servers[2].Down = false, want true")
	}
}
