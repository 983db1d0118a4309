// Package config loads the settings of the mark and search core.
//
// A Config is built in layers, lowest precedence first:
//
//  1. Built-in defaults (Default)
//  2. A TOML or YAML file, chosen by extension
//  3. Environment variables prefixed with MARKSEARCH_
//
// Each layer is read into a generic map by the loader package, the maps
// are deep-merged, and the result is decoded onto the defaults:
//
//	cfg, err := config.Load("~/.config/marksearch/config.toml")
//
// Environment variables name a section and a setting, for example
// MARKSEARCH_ISEARCH_STATUS_KEY sets isearch.statusKey and
// MARKSEARCH_LOG_LEVEL sets logging.level.
//
// # Live reload
//
// Watch follows the config file with fsnotify and sends each reloaded,
// validated Config on a channel. A file that fails to load is reported on
// the error channel and the previous settings stay in effect.
//
// # Key bindings
//
// The [keys] table maps key sequences to action names:
//
//	[keys]
//	"C-c m" = "set_mark"
//	"C-x C-x" = "unbound"
package config
