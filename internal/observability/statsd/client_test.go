package statsd

import (
	"net"
	"strings"
	"testing"
	"time"
)

func TestNormalizeMetricName(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		" render/job ": "render_job",
		"foo..bar":     "foo.bar",
		".edge.":       "edge",
		"":             "",
	}

	for input, want := range tests {
		if got := normalizeMetricName(input); got != want {
			t.Fatalf("normalizeMetricName(%q) = %q, want %q", input, got, want)
		}
	}
}

func TestFormatTags(t *testing.T) {
	t.Parallel()

	global := map[string]string{
		"env":       "prod",
		" service ": " catalog ",
	}
	local := map[string]string{
		"result": " success ",
		"":       "ignored",
		"env":    "stage",
	}

	got := formatTags(global, local)
	want := "|#env:stage,result:success,service:catalog"
	if got != want {
		t.Fatalf("formatTags() = %q, want %q", got, want)
	}

	if formatTags(nil, nil) != "" {
		t.Fatal("expected empty tag suffix for no tags")
	}
}

func TestClientDisabledSwallowsWrites(t *testing.T) {
	t.Parallel()

	client, err := NewClient(Config{Enabled: false, Address: "127.0.0.1:8125"})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}

	// Must not panic even though no socket was opened.
	client.Count("render.completed", 1, nil)
	client.Gauge("jobs.active", 3, nil)

	var nilClient *Client
	nilClient.Count("render.completed", 1, nil)

	if err := client.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
}

func TestClientEmitsOverUDP(t *testing.T) {
	t.Parallel()

	laddr, err := net.ResolveUDPAddr("udp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	server, err := net.ListenUDP("udp", laddr)
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	defer server.Close()

	client, err := NewClient(Config{
		Enabled: true,
		Address: server.LocalAddr().String(),
		Prefix:  "cata",
	})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	defer client.Close()

	client.Count("render.completed", 2, map[string]string{"result": "success"})

	if err := server.SetReadDeadline(time.Now().Add(2 * time.Second)); err != nil {
		t.Fatalf("deadline: %v", err)
	}
	buf := make([]byte, 512)
	n, _, err := server.ReadFromUDP(buf)
	if err != nil {
		t.Fatalf("read: %v", err)
	}

	line := string(buf[:n])
	if !strings.HasPrefix(line, "cata.render.completed:2|c") {
		t.Fatalf("unexpected metric line %q", line)
	}
	if !strings.Contains(line, "result:success") {
		t.Fatalf("missing tag in %q", line)
	}
}
