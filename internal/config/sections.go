package config

import (
	"fmt"
	"strings"
)

// ISearchConfig configures incremental search sessions.
type ISearchConfig struct {
	// IndirectCancelCommits makes a cancel caused by a replayed movement
	// command remember the query like a commit does.
	IndirectCancelCommits bool

	// RestoreOnEmptyQuery returns the cursor to where the search started
	// when the query is erased.
	RestoreOnEmptyQuery bool

	// StatusKey is the status slot used for match counts.
	StatusKey string
}

// MarkConfig configures the mark.
type MarkConfig struct {
	// RingSize is the capacity of the per-view mark ring.
	RingSize int
}

// CommandsConfig classifies host commands for interception.
type CommandsConfig struct {
	// Movement commands extend the selection while the mark is active.
	Movement []string

	// Structural commands keep the mark across their modification.
	Structural []string

	// CollapseAfter commands collapse the selection once they finish.
	CollapseAfter []string
}

// StyleConfig describes one highlight style.
type StyleConfig struct {
	Scope   string
	Outline bool
}

// HighlightConfig holds the search decoration styles.
type HighlightConfig struct {
	Found StyleConfig
	Focus StyleConfig
	Extra StyleConfig
}

// DispatchConfig configures the command pipeline.
type DispatchConfig struct {
	MaxRewrites      int
	MaxRepeatCount   int
	RecoverFromPanic bool
	EnableMetrics    bool
}

// LoggingConfig configures structured logging.
type LoggingConfig struct {
	// Level is one of debug, info, warn or error.
	Level string

	// Format is "text" or "json".
	Format string
}

// decoder overlays values from a generic map onto typed sections.
// Missing settings keep their defaults; malformed ones are recorded.
type decoder struct {
	data map[string]any
	errs []error
}

func (d *decoder) get(path string) (any, bool) {
	current := any(d.data)
	for _, part := range strings.Split(path, ".") {
		m, ok := current.(map[string]any)
		if !ok {
			return nil, false
		}
		current, ok = m[part]
		if !ok {
			return nil, false
		}
	}
	return current, true
}

func (d *decoder) mismatch(path, expected string, v any) {
	d.errs = append(d.errs, &TypeError{Path: path, Expected: expected, Actual: typeName(v)})
}

func (d *decoder) stringOr(path, def string) string {
	v, ok := d.get(path)
	if !ok {
		return def
	}
	s, ok := v.(string)
	if !ok {
		d.mismatch(path, "string", v)
		return def
	}
	return s
}

func (d *decoder) intOr(path string, def int) int {
	v, ok := d.get(path)
	if !ok {
		return def
	}
	switch n := v.(type) {
	case int:
		return n
	case int64:
		return int(n)
	case float64:
		if n == float64(int(n)) {
			return int(n)
		}
	}
	d.mismatch(path, "int", v)
	return def
}

func (d *decoder) boolOr(path string, def bool) bool {
	v, ok := d.get(path)
	if !ok {
		return def
	}
	b, ok := v.(bool)
	if !ok {
		d.mismatch(path, "bool", v)
		return def
	}
	return b
}

// stringSliceOr accepts a list of strings or a comma-separated string.
func (d *decoder) stringSliceOr(path string, def []string) []string {
	v, ok := d.get(path)
	if !ok {
		return append([]string(nil), def...)
	}
	switch s := v.(type) {
	case []string:
		return append([]string(nil), s...)
	case string:
		var out []string
		for _, part := range strings.Split(s, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
		return out
	case []any:
		out := make([]string, 0, len(s))
		for i, item := range s {
			str, ok := item.(string)
			if !ok {
				d.mismatch(fmt.Sprintf("%s[%d]", path, i), "string", item)
				return append([]string(nil), def...)
			}
			out = append(out, str)
		}
		return out
	}
	d.mismatch(path, "[]string", v)
	return append([]string(nil), def...)
}

func (d *decoder) stringMap(path string) map[string]string {
	v, ok := d.get(path)
	if !ok {
		return nil
	}
	m, ok := v.(map[string]any)
	if !ok {
		d.mismatch(path, "table", v)
		return nil
	}
	out := make(map[string]string, len(m))
	for k, item := range m {
		s, ok := item.(string)
		if !ok {
			d.mismatch(path+"."+k, "string", item)
			continue
		}
		out[k] = s
	}
	return out
}

func (d *decoder) style(path string, def StyleConfig) StyleConfig {
	return StyleConfig{
		Scope:   d.stringOr(path+".scope", def.Scope),
		Outline: d.boolOr(path+".outline", def.Outline),
	}
}

func typeName(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case string:
		return "string"
	case bool:
		return "bool"
	case int, int64:
		return "int"
	case float64:
		return "float"
	case []any:
		return "array"
	case map[string]any:
		return "table"
	default:
		return fmt.Sprintf("%T", v)
	}
}
