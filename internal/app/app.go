// Package app ties the mark and incremental search state machines to a host
// editor. It owns the per-view and per-window registries, routes every
// command through the dispatcher, resolves keys against layered keymaps and
// relays host notifications.
//
// An App is driven from the host's event loop and is not safe for
// concurrent use.
package app

import (
	"io"
	"log/slog"

	"github.com/dshills/marksearch/internal/config"
	"github.com/dshills/marksearch/internal/dispatcher"
	"github.com/dshills/marksearch/internal/dispatcher/hook"
	"github.com/dshills/marksearch/internal/host"
	"github.com/dshills/marksearch/internal/input/keymap"
	"github.com/dshills/marksearch/internal/isearch"
	"github.com/dshills/marksearch/internal/marksel"
	"github.com/dshills/marksearch/internal/plugin/lua"
)

// Keymap layer priorities. Higher layers shadow lower ones.
const (
	ConfigKeymapPriority = 50
	ScriptKeymapPriority = 100
)

// Interceptor priorities. Prompt commands are claimed by the search session
// before movement coercion sees them.
const (
	searchInterceptPriority = 200
	markInterceptPriority   = 100
)

// App is the host integration layer.
type App struct {
	exec host.Executor
	cfg  config.Config

	logger    *slog.Logger
	events    *slog.Logger
	logOutput io.Writer
	logFixed  bool

	marks      *marksel.Registry
	searches   *isearch.Registry
	dispatcher *dispatcher.Dispatcher

	keymaps    *keymap.Registry
	resolver   *keymap.Resolver
	scriptKeys *keymap.Keymap

	scripting    bool
	scriptOpts   []lua.StateOption
	scripts      *lua.State
	scriptWindow host.Window
}

// Option configures an App.
type Option func(*App)

// WithLogger uses l for all components, ignoring the logging section of
// the configuration.
func WithLogger(l *slog.Logger) Option {
	return func(a *App) {
		a.logger = l
		a.logFixed = l != nil
	}
}

// WithLogOutput writes logs to w, formatted and filtered by the logging
// section of the configuration.
func WithLogOutput(w io.Writer) Option {
	return func(a *App) { a.logOutput = w }
}

// WithScripting enables Lua scripts run through RunScript.
func WithScripting(opts ...lua.StateOption) Option {
	return func(a *App) {
		a.scripting = true
		a.scriptOpts = opts
	}
}

// New creates an App executing commands through exec. The caller installs
// the App as the host's listener.
func New(exec host.Executor, cfg config.Config, opts ...Option) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, NewOperationError("configure", "", err)
	}
	cfgKeys, err := cfg.Keymap(ConfigKeymapPriority)
	if err != nil {
		return nil, NewOperationError("configure", "keys", err)
	}

	a := &App{
		exec:       exec,
		cfg:        cfg,
		keymaps:    keymap.NewRegistry(),
		scriptKeys: keymap.NewKeymap("script").WithPriority(ScriptKeymapPriority).WithSource("script"),
	}
	for _, opt := range opts {
		opt(a)
	}
	a.setLogger(cfg.Logging)

	if err := keymap.LoadDefaults(a.keymaps); err != nil {
		return nil, NewOperationError("configure", "keys", err)
	}
	if err := a.keymaps.Register(cfgKeys); err != nil {
		return nil, NewOperationError("configure", "keys", err)
	}
	a.resolver = keymap.NewResolver(a.keymaps)

	a.marks = marksel.NewRegistry(a.markOptions(cfg))
	a.searches = isearch.NewRegistry(a.marks, a.replay, a.searchOptions(cfg))
	a.dispatcher = a.newDispatcher(cfg)

	if a.scripting {
		a.scripts = lua.NewState(a.scriptOpts...)
		lua.NewModule(scriptTarget{a}).Register(a.scripts)
	}
	return a, nil
}

// ApplyConfig switches to cfg. An invalid configuration is rejected and the
// current one stays in effect. Live marks, rings and sessions are kept.
func (a *App) ApplyConfig(cfg config.Config) error {
	if err := cfg.Validate(); err != nil {
		return NewOperationError("apply config", "", err)
	}
	cfgKeys, err := cfg.Keymap(ConfigKeymapPriority)
	if err != nil {
		return NewOperationError("apply config", "keys", err)
	}
	if err := a.keymaps.Register(cfgKeys); err != nil {
		return NewOperationError("apply config", "keys", err)
	}

	a.cfg = cfg
	a.setLogger(cfg.Logging)
	a.marks.SetOptions(a.markOptions(cfg))
	a.searches.SetOptions(a.searchOptions(cfg))
	a.dispatcher = a.newDispatcher(cfg)
	a.resolver.Reset()

	a.events.Info("configuration applied",
		"ringSize", cfg.Mark.RingSize,
		"maxRewrites", cfg.Dispatch.MaxRewrites,
		"keys", len(cfg.Keys))
	return nil
}

// Config returns the configuration in effect.
func (a *App) Config() config.Config { return a.cfg }

// Dispatcher returns the command dispatcher.
func (a *App) Dispatcher() *dispatcher.Dispatcher { return a.dispatcher }

// Keymaps returns the layered keymap registry.
func (a *App) Keymaps() *keymap.Registry { return a.keymaps }

// Marks returns the mark state of v.
func (a *App) Marks(v host.View) *marksel.MarkSel { return a.marks.Get(v) }

// Session returns the search session of w.
func (a *App) Session(w host.Window) *isearch.Session { return a.searches.Get(w) }

// Close logs the dispatch counters, when collected, and releases the script
// state.
func (a *App) Close() error {
	if m := a.dispatcher.Metrics(); m != nil {
		s := m.Snapshot()
		a.events.Info("dispatch totals",
			"dispatches", s.TotalDispatches,
			"errors", s.TotalErrors,
			"panics", s.TotalPanics,
			"rewrites", s.TotalRewrites,
			"consumed", s.TotalConsumed,
			"commands", s.ActionCount)
	}
	if a.scripts == nil {
		return nil
	}
	return a.scripts.Close()
}

func (a *App) setLogger(lc config.LoggingConfig) {
	if !a.logFixed {
		a.logger = lc.NewLogger(a.logOutput)
	}
	if a.logger == nil {
		a.logger = slog.New(slog.DiscardHandler)
	}
	a.events = a.logger.With("component", "events")
}

func (a *App) markOptions(cfg config.Config) marksel.Options {
	return marksel.Options{
		Policy: marksel.NewPolicy(
			cfg.Commands.Movement,
			cfg.Commands.Structural,
			cfg.Commands.CollapseAfter,
		),
		RingSize: cfg.Mark.RingSize,
		Logger:   a.logger,
	}
}

func (a *App) searchOptions(cfg config.Config) isearch.Options {
	policy := marksel.NewPolicy(cfg.Commands.Movement, nil, nil)
	return isearch.Options{
		IndirectCancelCommits: cfg.ISearch.IndirectCancelCommits,
		RestoreOnEmptyQuery:   cfg.ISearch.RestoreOnEmptyQuery,
		StatusKey:             cfg.ISearch.StatusKey,
		FoundStyle:            style(cfg.Highlight.Found),
		FocusStyle:            style(cfg.Highlight.Focus),
		ExtraStyle:            style(cfg.Highlight.Extra),
		Movement:              policy.Movement,
		Logger:                a.logger,
	}
}

func style(s config.StyleConfig) host.Style {
	return host.Style{Scope: s.Scope, Outline: s.Outline}
}

// newDispatcher builds a dispatcher for cfg with the command handlers,
// interceptors and hooks installed.
func (a *App) newDispatcher(cfg config.Config) *dispatcher.Dispatcher {
	dc := dispatcher.DefaultConfig().
		WithMaxRewrites(cfg.Dispatch.MaxRewrites).
		WithMaxRepeatCount(cfg.Dispatch.MaxRepeatCount).
		WithPanicRecovery(cfg.Dispatch.RecoverFromPanic).
		WithLogger(a.logger)
	if cfg.Dispatch.EnableMetrics {
		dc = dc.WithMetrics()
	}

	d := dispatcher.New(dc)
	d.SetExecutor(a.exec)
	a.registerCommands(d)

	d.AddInterceptor(dispatcher.NewInterceptorFunc("isearch", searchInterceptPriority, a.interceptPrompt))
	d.AddInterceptor(dispatcher.NewInterceptorFunc("marksel", markInterceptPriority, a.interceptMovement))

	hooks := d.HookManager()
	hooks.Register(hook.NewAuditHook(a.logger.With("component", "dispatch")))
	hooks.Register(hook.NewPreDispatchFunc("marksel.before", hook.PriorityCore, a.beforeCommand))
	hooks.Register(hook.NewPostDispatchFunc("marksel.after", hook.PriorityCore, a.afterCommand))
	hooks.Register(hook.NewModifiedFunc("marksel.modified", hook.PriorityCore, func(v host.View) {
		a.marks.Get(v).OnModified()
	}))
	hooks.Register(hook.NewSelectionFunc("marksel.selection", hook.PriorityCore, func(v host.View) {
		a.marks.Get(v).OnSelectionModified()
	}))
	return d
}
