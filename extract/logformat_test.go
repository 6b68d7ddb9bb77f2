package extract

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/urwithajit9/nginx-discovery/ast"
	"github.com/urwithajit9/nginx-discovery/parser"
)

func parseOrFail(t *testing.T, src string) *ast.Config {
	t.Helper()
	cfg, err := parser.Parse([]byte(src))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	return cfg
}

func TestLogFormats(t *testing.T) {
	src := `
http {
    log_format main '$remote_addr - $remote_user [$time_local] "$request"';
    log_format json escape=json '{"addr":"$remote_addr"}';
}
`
	cfg := parseOrFail(t, src)
	formats, warnings := LogFormats(cfg)
	if len(warnings) != 0 {
		t.Fatalf("unexpected warnings: %v", warnings)
	}
	if len(formats) != 2 {
		t.Fatalf("got %d formats, want 2", len(formats))
	}
	if formats[0].Name != "main" {
		t.Errorf("formats[0].Name = %q, want main", formats[0].Name)
	}
	wantVars := []string{"remote_addr", "remote_user", "time_local", "request"}
	if diff := cmp.Diff(wantVars, formats[0].Variables); diff != "" {
		t.Errorf("Variables mismatch (-want +got):\n%s", diff)
	}
}

func TestLogFormatMissingPatternWarns(t *testing.T) {
	src := `log_format onlyname;`
	cfg := parseOrFail(t, src)
	_, warnings := LogFormats(cfg)
	if len(warnings) != 1 {
		t.Fatalf("got %d warnings, want 1", len(warnings))
	}
}

func TestVariablesIdempotent(t *testing.T) {
	pattern := `$remote_addr $remote_addr ${http_x_forwarded_for}`
	first := Variables(pattern)
	second := Variables(pattern)
	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("Variables not idempotent (-first +second):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"remote_addr", "http_x_forwarded_for"}, first); diff != "" {
		t.Errorf("Variables dedup mismatch (-want +got):\n%s", diff)
	}
}
