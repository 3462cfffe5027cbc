package influxdb

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/nerrad567/pulselink-core/internal/infrastructure/config"
)

// fakeServer answers /ping and records every line-protocol body
// posted to /api/v2/write, answering writes with writeStatus.
type fakeServer struct {
	*httptest.Server
	mu          sync.Mutex
	bodies      []string
	queries     []string
	writeStatus int
}

func newFakeServer(t *testing.T) *fakeServer {
	return newFakeServerWithStatus(t, http.StatusNoContent)
}

func newFakeServerWithStatus(t *testing.T, writeStatus int) *fakeServer {
	t.Helper()
	fs := &fakeServer{writeStatus: writeStatus}
	fs.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/ping":
			w.WriteHeader(http.StatusNoContent)
		case "/api/v2/write":
			b, _ := io.ReadAll(r.Body)
			fs.mu.Lock()
			fs.bodies = append(fs.bodies, string(b))
			fs.queries = append(fs.queries, r.URL.RawQuery)
			fs.mu.Unlock()
			if fs.writeStatus >= http.StatusBadRequest {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(fs.writeStatus)
				_, _ = w.Write([]byte(`{"code":"invalid","message":"rejected"}`))
				return
			}
			w.WriteHeader(fs.writeStatus)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(fs.Close)
	return fs
}

func (fs *fakeServer) written() string {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	return strings.Join(fs.bodies, "\n")
}

func testConfig(url string) config.InfluxDBConfig {
	return config.InfluxDBConfig{
		Enabled:       true,
		URL:           url,
		Token:         "test-token",
		Org:           "pulselink",
		Bucket:        "metrics",
		BatchSize:     10,
		FlushInterval: 1,
	}
}

func TestConnect_Disabled(t *testing.T) {
	cfg := testConfig("http://127.0.0.1:8086")
	cfg.Enabled = false

	if _, err := Connect(cfg); !errors.Is(err, ErrDisabled) {
		t.Errorf("Connect() error = %v, want ErrDisabled", err)
	}
}

func TestConnect_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	if _, err := Connect(testConfig(url)); !errors.Is(err, ErrConnectionFailed) {
		t.Errorf("Connect() error = %v, want ErrConnectionFailed", err)
	}
}

func TestWriteRequest(t *testing.T) {
	fs := newFakeServer(t)

	client, err := Connect(testConfig(fs.URL))
	if err != nil {
		t.Fatalf("Connect() error = %v", err)
	}
	defer client.Close()

	if !client.IsConnected() {
		t.Fatal("IsConnected() = false after Connect()")
	}

	client.WriteRequest(Request{
		Method:   "GET",
		Route:    "/api/roles/id/{id}",
		Status:   200,
		Duration: 1500 * time.Microsecond,
	})
	client.Flush()

	got := fs.written()
	for _, want := range []string{"api_requests,", "method=GET", "service=pulselink", "status=200", "duration_ms=1.5"} {
		if !strings.Contains(got, want) {
			t.Errorf("written line protocol %q does not contain %q", got, want)
		}
	}

	fs.mu.Lock()
	queries := strings.Join(fs.queries, "&")
	fs.mu.Unlock()
	for _, want := range []string{"bucket=metrics", "org=pulselink", "precision=ms"} {
		if !strings.Contains(queries, want) {
			t.Errorf("write query %q does not contain %q", queries, want)
		}
	}
	if n := client.FailedWrites(); n != 0 {
		t.Errorf("FailedWrites() = %d, want 0", n)
	}
}

func TestWriteRequest_RejectedBatch(t *testing.T) {
	fs := newFakeServerWithStatus(t, http.StatusBadRequest)

	client, err := Connect(testConfig(fs.URL))
	if err != nil {
		t.Fatalf("Connect() error = %v", err)
	}
	defer client.Close()

	reported := make(chan error, 1)
	client.SetOnError(func(err error) {
		select {
		case reported <- err:
		default:
		}
	})

	client.WriteRequest(Request{Method: "GET", Route: "/api/health", Status: 200})
	client.Flush()

	select {
	case err := <-reported:
		if err == nil {
			t.Error("OnError callback received nil error")
		}
	case <-time.After(5 * time.Second):
		t.Fatal("OnError callback not invoked for rejected batch")
	}
	if n := client.FailedWrites(); n < 1 {
		t.Errorf("FailedWrites() = %d, want >= 1", n)
	}
}

func TestClientOptions(t *testing.T) {
	tests := []struct {
		name      string
		batch     int
		flushSecs int
		wantBatch uint
		wantFlush uint
	}{
		{"configured", 25, 3, 25, 3000},
		{"defaults", 0, 0, 100, 10000},
		{"negative falls back", -1, -5, 100, 10000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig("http://127.0.0.1:8086")
			cfg.BatchSize = tt.batch
			cfg.FlushInterval = tt.flushSecs

			opts := clientOptions(cfg)
			if opts.BatchSize() != tt.wantBatch {
				t.Errorf("BatchSize() = %d, want %d", opts.BatchSize(), tt.wantBatch)
			}
			if opts.FlushInterval() != tt.wantFlush {
				t.Errorf("FlushInterval() = %d, want %d", opts.FlushInterval(), tt.wantFlush)
			}
			if opts.Precision() != time.Millisecond {
				t.Errorf("Precision() = %v, want 1ms", opts.Precision())
			}
			if got := opts.WriteOptions().DefaultTags()[ServiceTag]; got != "pulselink" {
				t.Errorf("default %s tag = %q, want pulselink", ServiceTag, got)
			}
		})
	}
}

func TestWriteRequest_AfterClose(t *testing.T) {
	fs := newFakeServer(t)

	client, err := Connect(testConfig(fs.URL))
	if err != nil {
		t.Fatalf("Connect() error = %v", err)
	}
	if err := client.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	client.WriteRequest(Request{Method: "GET", Route: "/api/health", Status: 200})
	client.Flush()

	if got := fs.written(); got != "" {
		t.Errorf("write after Close sent %q", got)
	}
	if err := client.HealthCheck(t.Context()); !errors.Is(err, ErrNotConnected) {
		t.Errorf("HealthCheck() error = %v, want ErrNotConnected", err)
	}
}

func TestWriteRequest_NilClient(t *testing.T) {
	var c *Client
	c.WriteRequest(Request{Method: "GET"})
	c.Flush()
	if c.IsConnected() || c.FailedWrites() != 0 {
		t.Error("nil client reports state")
	}
	if err := c.Close(); err != nil {
		t.Errorf("Close() on nil client error = %v", err)
	}
}

func TestRequestPoint(t *testing.T) {
	at := time.Date(2026, 10, 18, 9, 0, 0, 0, time.UTC)
	p := requestPoint(Request{Method: "POST", Status: 201, Duration: 2 * time.Millisecond, At: at})

	if p.Name() != RequestMeasurement {
		t.Errorf("Name() = %q, want %q", p.Name(), RequestMeasurement)
	}
	if !p.Time().Equal(at) {
		t.Errorf("Time() = %v, want %v", p.Time(), at)
	}

	tags := map[string]string{}
	for _, tag := range p.TagList() {
		tags[tag.Key] = tag.Value
	}
	want := map[string]string{"method": "POST", "route": "unmatched", "status": "201"}
	for k, v := range want {
		if tags[k] != v {
			t.Errorf("tag %s = %q, want %q", k, tags[k], v)
		}
	}

	fields := p.FieldList()
	if len(fields) != 1 || fields[0].Key != "duration_ms" || fields[0].Value != 2.0 {
		t.Errorf("fields = %+v, want duration_ms=2", fields)
	}
}
