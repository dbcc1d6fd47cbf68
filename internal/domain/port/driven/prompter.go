package driven

import "errors"

// ErrPromptUnavailable indicates interactive input could not be collected:
// either no prompt capability was wired into the manager, or the adapter's
// input was exhausted (closed stdin, no terminal).
var ErrPromptUnavailable = errors.New("interactive prompt unavailable")

// Prompter defines the driven port for interactive secret entry. The
// adapter renders the label and reads one line from the operator. There is
// no cancellation: a waiting prompt blocks until input arrives or the
// input source is exhausted.
type Prompter interface {
	Prompt(label string) (string, error)
}
