// Package main runs a terminal editor demonstrating transient mark mode and
// incremental search over the in-memory host.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/marksearch/internal/app"
	"github.com/dshills/marksearch/internal/config"
	"github.com/dshills/marksearch/internal/host/memhost"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
)

const sampleText = `Transient mark mode and incremental search.

C-SPC sets the mark, movement extends the region and C-g drops it.
C-s searches forward, C-r backward. Typing in the prompt narrows the
search, RET keeps the match and C-g goes back to where it started.
C-q quits.
`

type options struct {
	configPath string
	scriptPath string
	logPath    string
	file       string
}

func main() {
	os.Exit(run())
}

func run() int {
	opts, ok := parseFlags()
	if !ok {
		return 0
	}

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: loading configuration: %v\n", err)
		return 1
	}

	text := sampleText
	if opts.file != "" {
		data, err := os.ReadFile(opts.file)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		text = string(data)
	}

	var logOut io.Writer = io.Discard
	if opts.logPath != "" {
		f, err := os.OpenFile(opts.logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: opening log: %v\n", err)
			return 1
		}
		defer f.Close()
		logOut = f
	}

	h := memhost.New()
	a, err := app.New(h, cfg, app.WithLogOutput(logOut), app.WithScripting())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize: %v\n", err)
		return 1
	}
	defer a.Close()
	h.SetListener(a)
	win := h.NewWindow(text)

	if opts.scriptPath != "" {
		code, err := os.ReadFile(opts.scriptPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		if err := a.RunScript(context.Background(), win, string(code)); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
	}

	var reloads *config.Reloader
	if opts.configPath != "" {
		reloads, err = watchConfig(opts.configPath, cfg, logOut)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: watching configuration: %v\n", err)
			return 1
		}
		defer reloads.Close()
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to create terminal: %v\n", err)
		return 1
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize terminal: %v\n", err)
		return 1
	}
	defer screen.Fini()

	if reloads != nil {
		done := make(chan struct{})
		defer close(done)
		go forwardReloads(screen, reloads, done)
	}

	newEditor(screen, a, h, win).run()
	return 0
}

// watchConfig watches path and logs reloads through the configured logger
// on logOut.
func watchConfig(path string, cfg config.Config, logOut io.Writer, opts ...config.Option) (*config.Reloader, error) {
	return config.Watch(path, cfg.Logging.NewLogger(logOut), opts...)
}

// forwardReloads posts reloaded configurations to the event loop, which
// owns the App.
func forwardReloads(screen tcell.Screen, r *config.Reloader, done <-chan struct{}) {
	for {
		select {
		case <-done:
			return
		case cfg := <-r.Updates():
			_ = screen.PostEvent(tcell.NewEventInterrupt(cfg))
		case err := <-r.Errors():
			_ = screen.PostEvent(tcell.NewEventInterrupt(err))
		}
	}
}

func parseFlags() (options, bool) {
	var opts options
	var showVersion bool

	flag.StringVar(&opts.configPath, "config", "", "Path to configuration file (TOML or YAML)")
	flag.StringVar(&opts.configPath, "c", "", "Path to configuration file (shorthand)")
	flag.StringVar(&opts.scriptPath, "script", "", "Lua script run before the editor starts")
	flag.StringVar(&opts.logPath, "log", "", "Append logs to this file")
	flag.BoolVar(&showVersion, "version", false, "Show version information")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "marksearch - transient mark and incremental search demo\n\n")
		fmt.Fprintf(os.Stderr, "Usage: marksearch [options] [file]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if showVersion {
		fmt.Printf("marksearch %s (%s)\n", version, commit)
		return opts, false
	}
	if flag.NArg() > 0 {
		opts.file = flag.Arg(0)
	}
	return opts, true
}
