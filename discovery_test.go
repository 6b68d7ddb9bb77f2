package discovery

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

const sampleConfig = `
user nginx;
worker_processes auto;

http {
    log_format main '$remote_addr - $remote_user [$time_local] "$request"';

    upstream backend {
        server 10.0.0.1:8080 weight=5;
        server 10.0.0.2:8080 backup;
    }

    server {
        listen 80;
        listen 443 ssl;
        server_name example.com www.example.com;
        access_log /var/log/nginx/access.log main;
        error_log /var/log/nginx/error.log warn;

        location / {
            root /var/www/html;
        }

        location /api/ {
            proxy_pass http://backend;
        }
    }

    server {
        listen 8080;
        server_name admin.example.com;
    }
}
`

func TestDiscoveryBasicQueries(t *testing.T) {
	d, err := FromText([]byte(sampleConfig))
	if err != nil {
		t.Fatalf("FromText: %v", err)
	}

	if len(d.Servers()) != 2 {
		t.Fatalf("got %d servers, want 2", len(d.Servers()))
	}
	if len(d.SSLServers()) != 1 {
		t.Fatalf("got %d ssl servers, want 1", len(d.SSLServers()))
	}
	if diff := cmp.Diff([]uint16{80, 443, 8080}, d.ListeningPorts()); diff != "" {
		t.Errorf("ListeningPorts mismatch (-want +got):\n%s", diff)
	}
	if d.LocationCount() != 2 {
		t.Errorf("LocationCount() = %d, want 2", d.LocationCount())
	}
	if len(d.ProxyLocations()) != 1 {
		t.Fatalf("got %d proxy locations, want 1", len(d.ProxyLocations()))
	}
	if len(d.LogFormats()) != 1 {
		t.Errorf("got %d log formats, want 1", len(d.LogFormats()))
	}
	if len(d.Upstreams()) != 1 {
		t.Fatalf("got %d upstreams, want 1", len(d.Upstreams()))
	}

	up, ok := d.UpstreamFor(d.ProxyLocations()[0].Location)
	if !ok || up.Name != "backend" {
		t.Errorf("UpstreamFor = %+v, %v, want backend, true", up, ok)
	}

	if files := d.AllLogFiles(); len(files) != 2 {
		t.Errorf("got %d log files, want 2: %v", len(files), files)
	}
}

func TestDiscoveryFilters(t *testing.T) {
	d, err := FromText([]byte(sampleConfig))
	if err != nil {
		t.Fatalf("FromText: %v", err)
	}

	if got := d.ByPort(8080); len(got) != 1 {
		t.Errorf("ByPort(8080) returned %d servers, want 1", len(got))
	}
	if got := d.ByName("admin.*"); len(got) != 1 {
		t.Errorf("ByName(admin.*) returned %d servers, want 1", len(got))
	}
	if got := d.ProxyOnly(); len(got) != 1 {
		t.Errorf("ProxyOnly() returned %d servers, want 1", len(got))
	}
}

func TestDiscoveryAccessLogOff(t *testing.T) {
	d, err := FromText([]byte("server { access_log off; }"))
	if err != nil {
		t.Fatalf("FromText: %v", err)
	}
	logs := d.AccessLogs()
	if len(logs) != 1 || logs[0].Path != "off" || logs[0].FormatName != nil {
		t.Errorf("AccessLogs() = %+v, want one {off, nil}", logs)
	}
}

func TestDiscoveryMemoizesServers(t *testing.T) {
	d, err := FromText([]byte(sampleConfig))
	if err != nil {
		t.Fatalf("FromText: %v", err)
	}
	first := d.Servers()
	second := d.Servers()
	if len(first) != len(second) {
		t.Fatalf("Servers() not stable across calls")
	}
	if len(first) > 0 && &first[0] != &second[0] {
		t.Errorf("Servers() recomputed on the second call, want the memoized slice")
	}
}
