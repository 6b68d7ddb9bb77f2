package extract

import "testing"

func TestMapsBasic(t *testing.T) {
	src := `
http {
    map $http_upgrade $connection_upgrade {
        default upgrade;
        close close;
    }
}
`
	cfg := parseOrFail(t, src)
	maps, warnings := Maps(cfg)
	if len(warnings) != 0 {
		t.Fatalf("unexpected warnings: %v", warnings)
	}
	if len(maps) != 1 {
		t.Fatalf("got %d maps, want 1", len(maps))
	}
	m := maps[0]
	if m.SourceVariable != "http_upgrade" || m.TargetVariable != "connection_upgrade" {
		t.Errorf("got source=%q target=%q", m.SourceVariable, m.TargetVariable)
	}
	if m.Default == nil || *m.Default != "upgrade" {
		t.Errorf("Default = %v, want upgrade", m.Default)
	}
	if len(m.Entries) != 1 || m.Entries[0].Source != "close" || m.Entries[0].Result != "close" {
		t.Errorf("Entries = %+v, want one {close, close}", m.Entries)
	}
}
