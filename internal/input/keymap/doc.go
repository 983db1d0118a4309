// Package keymap binds emacs-style key sequences to named actions.
//
// A Keymap is a list of Bindings from a key sequence ("C-x C-x") to an
// action name ("reverse_selection"). Action names resolve to typed
// input.Actions through ActionByName, so user configuration and scripts
// can refer to the same names.
//
// Keymaps are layered in a Registry by priority. User overrides usually
// live in their own keymap above the defaults:
//
//	reg := keymap.NewRegistry()
//	reg.Register(keymap.Default())
//	user := keymap.NewKeymap("user").WithPriority(10).WithSource("config")
//	user.Add("C-c m", "set_mark")
//	reg.Register(user)
//
// A Resolver feeds key events through the registry one at a time and
// reports when a sequence is pending, matched or unbound. Unbound
// printable characters self-insert.
package keymap
