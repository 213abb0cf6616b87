package cli

import (
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/vadim-stepanov/grid/pkg/cache"
)

const testSpec = `
[grid]
tracks = 2
width = 200
height = 100

[[track]]
fraction = 1.0

[[track]]
fraction = 1.0

[[item]]
id = "a"

[[item]]
id = "b"
`

func writeTestSpec(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "layout.toml")
	if err := os.WriteFile(path, []byte(testSpec), 0o644); err != nil {
		t.Fatalf("write spec: %v", err)
	}
	return path
}

func runCommand(t *testing.T, args ...string) error {
	t.Helper()
	c := New(io.Discard, log.WarnLevel)
	root := c.RootCommand()
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)
	root.SetArgs(args)
	return root.Execute()
}

func TestArrangeCommand(t *testing.T) {
	spec := writeTestSpec(t)
	out := filepath.Join(t.TempDir(), "out.arrangement.json")

	if err := runCommand(t, "arrange", spec, "--no-cache", "-o", out); err != nil {
		t.Fatalf("arrange: %v", err)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	var arr struct {
		Items []json.RawMessage `json:"items"`
	}
	if err := json.Unmarshal(data, &arr); err != nil {
		t.Fatalf("decode output: %v", err)
	}
	if len(arr.Items) != 2 {
		t.Errorf("items = %d, want 2", len(arr.Items))
	}
}

func TestLayoutCommand(t *testing.T) {
	spec := writeTestSpec(t)
	out := filepath.Join(t.TempDir(), "out.layout.json")

	if err := runCommand(t, "layout", spec, "--no-cache", "-o", out); err != nil {
		t.Fatalf("layout: %v", err)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	var l struct {
		Blocks []json.RawMessage `json:"blocks"`
	}
	if err := json.Unmarshal(data, &l); err != nil {
		t.Fatalf("decode output: %v", err)
	}
	if len(l.Blocks) != 2 {
		t.Errorf("blocks = %d, want 2", len(l.Blocks))
	}
}

func TestRenderCommand(t *testing.T) {
	spec := writeTestSpec(t)
	stem := filepath.Join(t.TempDir(), "out")

	err := runCommand(t, "render", spec, "--no-cache", "-f", "svg,text", "-o", stem)
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	svg, err := os.ReadFile(stem + ".svg")
	if err != nil {
		t.Fatalf("read svg: %v", err)
	}
	if !strings.Contains(string(svg), "<svg") {
		t.Error("svg output is not SVG")
	}
	if _, err := os.Stat(stem + ".txt"); err != nil {
		t.Errorf("text output missing: %v", err)
	}
}

func TestRenderCommandUnknownFormat(t *testing.T) {
	spec := writeTestSpec(t)

	if err := runCommand(t, "render", spec, "--no-cache", "-f", "bmp"); err == nil {
		t.Fatal("expected error for unknown format")
	}
}

func TestArrangeCommandMissingFile(t *testing.T) {
	if err := runCommand(t, "arrange", "/nonexistent/layout.toml", "--no-cache"); err == nil {
		t.Fatal("expected error for missing spec file")
	}
}

func TestParseFormats(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"", []string{"svg"}},
		{"svg", []string{"svg"}},
		{"svg, json ,text", []string{"svg", "json", "text"}},
	}
	for _, tt := range tests {
		if got := parseFormats(tt.in); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("parseFormats(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestOutputStem(t *testing.T) {
	tests := []struct {
		input, suffix, want string
	}{
		{"layout.toml", ".arrangement.json", "layout.arrangement.json"},
		{"dir/spec.toml", ".layout.json", "dir/spec.layout.json"},
		{"noext", ".svg", "noext.svg"},
	}
	for _, tt := range tests {
		if got := outputStem(tt.input, tt.suffix); got != tt.want {
			t.Errorf("outputStem(%q, %q) = %q, want %q", tt.input, tt.suffix, got, tt.want)
		}
	}
}

func TestServeKeyer(t *testing.T) {
	if serveKeyer("") != nil {
		t.Error("local backends should use the default keyer")
	}

	keyer := serveKeyer("localhost:6379")
	if keyer == nil {
		t.Fatal("redis backend should get a namespaced keyer")
	}
	key := keyer.ArrangementKey("abc", cache.ArrangementKeyOpts{FixedTracks: 2, Flow: "rows"})
	if !strings.HasPrefix(key, "grid:arrangement:") {
		t.Errorf("key = %q, want grid:arrangement:... prefix", key)
	}
}

func TestCacheDirXDG(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "/tmp/xdg-test")

	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir: %v", err)
	}
	if dir != "/tmp/xdg-test/grid" {
		t.Errorf("cacheDir = %q, want /tmp/xdg-test/grid", dir)
	}
}
