package host

import "errors"

// Host errors.
var (
	// ErrUnknownCommand indicates the host cannot execute a command.
	ErrUnknownCommand = errors.New("host: unknown command")

	// ErrNoPrompt indicates a prompt command arrived with no prompt open.
	ErrNoPrompt = errors.New("host: no prompt open")
)
