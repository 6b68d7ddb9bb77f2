package extract

import "testing"

func TestAccessLogsWithFormatAndCondition(t *testing.T) {
	src := `
http {
    server {
        access_log /var/log/nginx/access.log main;
        access_log /var/log/nginx/api.log json if=$api_request;
        access_log off;
    }
}
`
	cfg := parseOrFail(t, src)
	logs, warnings := AccessLogs(cfg)
	if len(warnings) != 0 {
		t.Fatalf("unexpected warnings: %v", warnings)
	}
	if len(logs) != 3 {
		t.Fatalf("got %d access logs, want 3", len(logs))
	}
	if logs[0].FormatName == nil || *logs[0].FormatName != "main" {
		t.Errorf("logs[0].FormatName = %v, want main", logs[0].FormatName)
	}
	if logs[1].FormatName == nil || *logs[1].FormatName != "json" {
		t.Errorf("logs[1].FormatName = %v, want json", logs[1].FormatName)
	}
	if len(logs[1].Conditions) != 1 || logs[1].Conditions[0] != "$api_request" {
		t.Errorf("logs[1].Conditions = %v, want [$api_request]", logs[1].Conditions)
	}
	if logs[2].Path != "off" {
		t.Errorf("logs[2].Path = %q, want off", logs[2].Path)
	}
	if logs[0].Context.Kind != ContextServer {
		t.Errorf("logs[0].Context.Kind = %v, want ContextServer", logs[0].Context.Kind)
	}
}

func TestAccessLogQuotedConditionAgreesWithUnquoted(t *testing.T) {
	src := `access_log /var/log/nginx/api.log json "if=$api_request";`
	cfg := parseOrFail(t, src)
	logs, warnings := AccessLogs(cfg)
	if len(warnings) != 0 {
		t.Fatalf("unexpected warnings: %v", warnings)
	}
	if len(logs) != 1 || len(logs[0].Conditions) != 1 || logs[0].Conditions[0] != "$api_request" {
		t.Fatalf("Conditions = %v, want [$api_request]", logs[0].Conditions)
	}
}

func TestErrorLogUnrecognizedLevelWarns(t *testing.T) {
	src := `error_log /var/log/nginx/error.log trace;`
	cfg := parseOrFail(t, src)
	logs, warnings := ErrorLogs(cfg)
	if len(logs) != 1 || logs[0].Level == nil || *logs[0].Level != "trace" {
		t.Fatalf("logs = %+v, want one record with Level=trace", logs)
	}
	if len(warnings) != 1 {
		t.Fatalf("got %d warnings, want 1", len(warnings))
	}
}

func TestErrorLogWithLevel(t *testing.T) {
	src := `error_log /var/log/nginx/error.log warn;`
	cfg := parseOrFail(t, src)
	logs, warnings := ErrorLogs(cfg)
	if len(warnings) != 0 {
		t.Fatalf("unexpected warnings: %v", warnings)
	}
	if len(logs) != 1 {
		t.Fatalf("got %d error logs, want 1", len(logs))
	}
	if logs[0].Level == nil || *logs[0].Level != "warn" {
		t.Errorf("Level = %v, want warn", logs[0].Level)
	}
	if logs[0].Context.Kind != ContextMain {
		t.Errorf("Context.Kind = %v, want ContextMain", logs[0].Context.Kind)
	}
}
