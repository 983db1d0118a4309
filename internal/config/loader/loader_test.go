package loader

import (
	"errors"
	"io/fs"
	"reflect"
	"strings"
	"testing"
)

// MemFS is an in-memory file system for testing.
type MemFS struct {
	files map[string][]byte
}

func NewMemFS() *MemFS {
	return &MemFS{files: make(map[string][]byte)}
}

func (m *MemFS) AddFile(path string, content string) {
	m.files[path] = []byte(content)
}

func (m *MemFS) ReadFile(path string) ([]byte, error) {
	data, ok := m.files[path]
	if !ok {
		return nil, fs.ErrNotExist
	}
	return data, nil
}

const tomlConfig = `
[isearch]
statusKey = "search"
restoreOnEmptyQuery = false

[mark]
ringSize = 4

[commands]
movement = ["move", "move_to", "page"]
`

const yamlConfig = `
isearch:
  statusKey: search
  restoreOnEmptyQuery: false
mark:
  ringSize: 4
commands:
  movement: [move, move_to, page]
`

func TestFileLoaders(t *testing.T) {
	memfs := NewMemFS()
	memfs.AddFile("/config.toml", tomlConfig)
	memfs.AddFile("/config.yaml", yamlConfig)

	for _, path := range []string{"/config.toml", "/config.yaml"} {
		t.Run(path, func(t *testing.T) {
			l, err := ForPath(memfs, path)
			if err != nil {
				t.Fatal(err)
			}
			config, err := l.Load()
			if err != nil {
				t.Fatalf("Load failed: %v", err)
			}

			isearch, ok := config["isearch"].(map[string]any)
			if !ok {
				t.Fatalf("expected isearch to be a map, got %T", config["isearch"])
			}
			if isearch["statusKey"] != "search" {
				t.Errorf("statusKey = %v", isearch["statusKey"])
			}
			if isearch["restoreOnEmptyQuery"] != false {
				t.Errorf("restoreOnEmptyQuery = %v", isearch["restoreOnEmptyQuery"])
			}

			mark := config["mark"].(map[string]any)
			switch n := mark["ringSize"].(type) {
			case int64:
				if n != 4 {
					t.Errorf("ringSize = %d", n)
				}
			case int:
				if n != 4 {
					t.Errorf("ringSize = %d", n)
				}
			default:
				t.Errorf("ringSize has type %T", n)
			}

			movement, ok := config["commands"].(map[string]any)["movement"].([]any)
			if !ok || len(movement) != 3 || movement[2] != "page" {
				t.Errorf("movement = %v", movement)
			}
		})
	}
}

func TestForPathUnsupported(t *testing.T) {
	if _, err := ForPath(NewMemFS(), "/config.json"); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("expected ErrUnsupportedFormat, got %v", err)
	}
	if l, err := ForPath(NewMemFS(), "/CONFIG.YML"); err != nil || l.format.Name != "yaml" || l.Path() != "/CONFIG.YML" {
		t.Errorf("expected YAML loader for .YML, got %v", err)
	}
}

func TestLoadNonExistent(t *testing.T) {
	memfs := NewMemFS()
	for _, l := range []Loader{
		NewFile(memfs, "/missing.toml", TOML),
		NewFile(memfs, "/missing.yaml", YAML),
	} {
		config, err := l.Load()
		if err != nil {
			t.Errorf("missing file should not be an error: %v", err)
		}
		if config != nil {
			t.Errorf("expected nil config, got %v", config)
		}
	}
}

func TestTOMLLoadInvalid(t *testing.T) {
	memfs := NewMemFS()
	memfs.AddFile("/bad.toml", "[isearch]\nstatusKey = \n")

	_, err := NewFile(memfs, "/bad.toml", TOML).Load()
	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("expected ParseError, got %v", err)
	}
	if pe.Path != "/bad.toml" {
		t.Errorf("Path = %q", pe.Path)
	}
	if pe.Line == 0 {
		t.Error("expected a line number")
	}
	if !strings.Contains(pe.Error(), "line") {
		t.Errorf("Error() = %q", pe.Error())
	}
}

func TestYAMLLoadInvalid(t *testing.T) {
	memfs := NewMemFS()
	memfs.AddFile("/bad.yaml", "isearch:\n  statusKey: [unclosed\n")

	_, err := NewFile(memfs, "/bad.yaml", YAML).Load()
	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("expected ParseError, got %v", err)
	}
	if pe.Unwrap() == nil {
		t.Error("expected wrapped yaml error")
	}
	if pe.Path != "/bad.yaml" {
		t.Errorf("Path = %q", pe.Path)
	}
}

func TestLoadFromReader(t *testing.T) {
	config, err := NewFile(nil, "", TOML).LoadFromReader(strings.NewReader("[logging]\nlevel = \"debug\"\n"))
	if err != nil {
		t.Fatal(err)
	}
	if config["logging"].(map[string]any)["level"] != "debug" {
		t.Errorf("unexpected config %v", config)
	}

	config, err = NewFile(nil, "", YAML).LoadFromReader(strings.NewReader("logging:\n  level: info\n"))
	if err != nil {
		t.Fatal(err)
	}
	if config["logging"].(map[string]any)["level"] != "info" {
		t.Errorf("unexpected config %v", config)
	}
}

func TestDeepMerge(t *testing.T) {
	dst := map[string]any{
		"isearch": map[string]any{"statusKey": "a", "restoreOnEmptyQuery": true},
		"mark":    map[string]any{"ringSize": 16},
	}
	src := map[string]any{
		"isearch": map[string]any{"statusKey": "b"},
		"mark":    "replaced",
		"logging": map[string]any{"level": "debug"},
	}

	got := DeepMerge(dst, src)
	want := map[string]any{
		"isearch": map[string]any{"statusKey": "b", "restoreOnEmptyQuery": true},
		"mark":    "replaced",
		"logging": map[string]any{"level": "debug"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("DeepMerge = %v, want %v", got, want)
	}

	// src values are copied, not shared.
	src["logging"].(map[string]any)["level"] = "error"
	if got["logging"].(map[string]any)["level"] != "debug" {
		t.Error("merged map shares nested values with src")
	}

	if got := DeepMerge(nil, nil); got == nil || len(got) != 0 {
		t.Errorf("DeepMerge(nil, nil) = %v", got)
	}
}

func TestClone(t *testing.T) {
	src := map[string]any{
		"commands": map[string]any{"movement": []any{"move"}},
	}
	clone := Clone(src)
	clone["commands"].(map[string]any)["movement"].([]any)[0] = "changed"

	if src["commands"].(map[string]any)["movement"].([]any)[0] != "move" {
		t.Error("modifying clone should not affect original")
	}
	if Clone(nil) != nil {
		t.Error("Clone(nil) should be nil")
	}
}

func TestEnvLoader(t *testing.T) {
	t.Setenv("MSTEST_LOG_LEVEL", "debug")
	t.Setenv("MSTEST_ISEARCH_STATUS_KEY", "find")
	t.Setenv("MSTEST_DISPATCH_MAX_REWRITES", "3")
	t.Setenv("MSTEST_COMMANDS_MOVEMENT", `["move","page"]`)

	l := NewEnvLoader("MSTEST_")
	config, err := l.Load()
	if err != nil {
		t.Fatal(err)
	}

	want := map[string]any{
		"logging":  map[string]any{"level": "debug"},
		"isearch":  map[string]any{"statusKey": "find"},
		"dispatch": map[string]any{"maxRewrites": int64(3)},
		"commands": map[string]any{"movement": []any{"move", "page"}},
	}
	if !reflect.DeepEqual(config, want) {
		t.Errorf("Load() = %v, want %v", config, want)
	}
}

func TestEnvLoaderCustomMapping(t *testing.T) {
	t.Setenv("MSMAP_X", "yes")

	l := NewEnvLoaderWithMapping("MSMAP_", map[string]string{})
	l.AddMapping("MSMAP_X", "isearch.indirectCancelCommits")
	config, _ := l.Load()

	if config["isearch"].(map[string]any)["indirectCancelCommits"] != true {
		t.Errorf("unexpected config %v", config)
	}
}

func TestEnvToPath(t *testing.T) {
	l := NewEnvLoader(DefaultEnvPrefix)
	tests := map[string]string{
		"MARKSEARCH_LOGGING":                     "logging",
		"MARKSEARCH_LOGGING_LEVEL":               "logging.level",
		"MARKSEARCH_ISEARCH_STATUS_KEY":          "isearch.statusKey",
		"MARKSEARCH_DISPATCH_RECOVER_FROM_PANIC": "dispatch.recoverFromPanic",
	}
	for env, want := range tests {
		if got := l.envToPath(env); got != want {
			t.Errorf("envToPath(%q) = %q, want %q", env, got, want)
		}
	}
}

func TestParseValue(t *testing.T) {
	tests := []struct {
		in   string
		want any
	}{
		{"", ""},
		{"true", true},
		{"Off", false},
		{"12", int64(12)},
		{"1.5", "1.5"},
		{`["a"]`, []any{"a"}},
		{"[oops", "[oops"},
		{"warn", "warn"},
	}
	for _, tt := range tests {
		if got := parseValue(tt.in); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("parseValue(%q) = %#v, want %#v", tt.in, got, tt.want)
		}
	}
}
