package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strings"

	"github.com/dshills/marksearch/internal/config/loader"
	"github.com/dshills/marksearch/internal/input/keymap"
)

// Config is a snapshot of all settings. It is a plain value; reloading
// produces a new Config rather than mutating a shared one.
type Config struct {
	ISearch   ISearchConfig
	Mark      MarkConfig
	Commands  CommandsConfig
	Highlight HighlightConfig
	Dispatch  DispatchConfig
	Logging   LoggingConfig

	// Keys maps key sequences to action names, layered over the
	// default keymap. The action "unbound" removes a binding.
	Keys map[string]string
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		ISearch: ISearchConfig{
			IndirectCancelCommits: true,
			RestoreOnEmptyQuery:   true,
			StatusKey:             "marksearch",
		},
		Mark: MarkConfig{
			RingSize: 16,
		},
		Commands: CommandsConfig{
			Movement:      []string{"move", "move_to"},
			Structural:    []string{"swap_line_up", "swap_line_down", "indent", "unindent"},
			CollapseAfter: []string{"copy"},
		},
		Highlight: HighlightConfig{
			Found: StyleConfig{Scope: "isearch.found", Outline: true},
			Focus: StyleConfig{Scope: "isearch.focus"},
			Extra: StyleConfig{Scope: "isearch.extra"},
		},
		Dispatch: DispatchConfig{
			MaxRewrites:      8,
			MaxRepeatCount:   10000,
			RecoverFromPanic: true,
		},
		Logging: LoggingConfig{
			Level:  "warn",
			Format: "text",
		},
	}
}

// FromMap overlays a generic settings map onto the defaults. Every
// malformed setting is reported; well-formed ones still apply.
func FromMap(data map[string]any) (Config, error) {
	def := Default()
	d := &decoder{data: data}

	cfg := Config{
		ISearch: ISearchConfig{
			IndirectCancelCommits: d.boolOr("isearch.indirectCancelCommits", def.ISearch.IndirectCancelCommits),
			RestoreOnEmptyQuery:   d.boolOr("isearch.restoreOnEmptyQuery", def.ISearch.RestoreOnEmptyQuery),
			StatusKey:             d.stringOr("isearch.statusKey", def.ISearch.StatusKey),
		},
		Mark: MarkConfig{
			RingSize: d.intOr("mark.ringSize", def.Mark.RingSize),
		},
		Commands: CommandsConfig{
			Movement:      d.stringSliceOr("commands.movement", def.Commands.Movement),
			Structural:    d.stringSliceOr("commands.structural", def.Commands.Structural),
			CollapseAfter: d.stringSliceOr("commands.collapseAfter", def.Commands.CollapseAfter),
		},
		Highlight: HighlightConfig{
			Found: d.style("highlight.found", def.Highlight.Found),
			Focus: d.style("highlight.focus", def.Highlight.Focus),
			Extra: d.style("highlight.extra", def.Highlight.Extra),
		},
		Dispatch: DispatchConfig{
			MaxRewrites:      d.intOr("dispatch.maxRewrites", def.Dispatch.MaxRewrites),
			MaxRepeatCount:   d.intOr("dispatch.maxRepeatCount", def.Dispatch.MaxRepeatCount),
			RecoverFromPanic: d.boolOr("dispatch.recoverFromPanic", def.Dispatch.RecoverFromPanic),
			EnableMetrics:    d.boolOr("dispatch.enableMetrics", def.Dispatch.EnableMetrics),
		},
		Logging: LoggingConfig{
			Level:  d.stringOr("logging.level", def.Logging.Level),
			Format: d.stringOr("logging.format", def.Logging.Format),
		},
		Keys: d.stringMap("keys"),
	}

	return cfg, errors.Join(d.errs...)
}

// Validate checks settings that decode cleanly but cannot work.
func (c Config) Validate() error {
	var errs []error
	invalid := func(path, msg string, v any) {
		errs = append(errs, &ValidationError{Path: path, Message: msg, Value: v})
	}

	if len(c.Commands.Movement) == 0 {
		invalid("commands.movement", "at least one movement command is required", c.Commands.Movement)
	}
	for _, name := range c.Commands.Structural {
		if slices.Contains(c.Commands.Movement, name) {
			invalid("commands.structural", "command is also a movement command", name)
		}
	}
	if c.Mark.RingSize < 1 {
		invalid("mark.ringSize", "must be at least 1", c.Mark.RingSize)
	}
	if c.Dispatch.MaxRewrites < 1 {
		invalid("dispatch.maxRewrites", "must be at least 1", c.Dispatch.MaxRewrites)
	}
	if c.Dispatch.MaxRepeatCount < 0 {
		invalid("dispatch.maxRepeatCount", "must not be negative", c.Dispatch.MaxRepeatCount)
	}
	if c.ISearch.StatusKey == "" {
		invalid("isearch.statusKey", "must not be empty", c.ISearch.StatusKey)
	}
	if _, err := c.Logging.SlogLevel(); err != nil {
		invalid("logging.level", "unknown level", c.Logging.Level)
	}
	if f := strings.ToLower(c.Logging.Format); f != "text" && f != "json" {
		invalid("logging.format", "must be text or json", c.Logging.Format)
	}
	if len(c.Keys) > 0 {
		if err := keymap.NewKeymap("config").ApplyOverrides(c.Keys); err != nil {
			invalid("keys", err.Error(), len(c.Keys))
		}
	}

	return errors.Join(errs...)
}

// Keymap returns the key overrides as a keymap layered above priority.
func (c Config) Keymap(priority int) (*keymap.Keymap, error) {
	km := keymap.NewKeymap("config").WithPriority(priority).WithSource("config")
	if err := km.ApplyOverrides(c.Keys); err != nil {
		return nil, err
	}
	return km, nil
}

// SlogLevel parses Level.
func (l LoggingConfig) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(l.Level)); err != nil {
		return slog.LevelWarn, err
	}
	return level, nil
}

// NewLogger builds a logger writing to w. A nil writer discards output.
func (l LoggingConfig) NewLogger(w io.Writer) *slog.Logger {
	if w == nil {
		return slog.New(slog.DiscardHandler)
	}
	level, _ := l.SlogLevel()
	opts := &slog.HandlerOptions{Level: level}
	if strings.EqualFold(l.Format, "json") {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// Option configures Load.
type Option func(*loadOptions)

type loadOptions struct {
	fs        loader.FileSystem
	envPrefix string
	useEnv    bool
}

// WithFS reads config files through fsys.
func WithFS(fsys loader.FileSystem) Option {
	return func(o *loadOptions) { o.fs = fsys }
}

// WithEnvPrefix sets the environment variable prefix.
func WithEnvPrefix(prefix string) Option {
	return func(o *loadOptions) { o.envPrefix = prefix }
}

// WithoutEnv ignores environment variables.
func WithoutEnv() Option {
	return func(o *loadOptions) { o.useEnv = false }
}

// Load builds a Config from defaults, the file at path (TOML or YAML by
// extension, skipped when path is empty or missing) and environment
// variables, in increasing precedence. The result is validated.
func Load(path string, opts ...Option) (Config, error) {
	o := loadOptions{fs: loader.DefaultFS(), envPrefix: loader.DefaultEnvPrefix, useEnv: true}
	for _, opt := range opts {
		opt(&o)
	}

	data := make(map[string]any)

	if path != "" {
		l, err := loader.ForPath(o.fs, path)
		if err != nil {
			return Config{}, err
		}
		file, err := l.Load()
		if err != nil {
			return Config{}, err
		}
		data = loader.DeepMerge(data, file)
	}

	if o.useEnv {
		env, err := loader.NewEnvLoader(o.envPrefix).Load()
		if err != nil {
			return Config{}, fmt.Errorf("loading environment: %w", err)
		}
		data = loader.DeepMerge(data, env)
	}

	cfg, err := FromMap(data)
	if err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
