// Package terminal implements the Prompter port over an input/output
// stream pair, with echo suppressed when the input is a real terminal.
package terminal

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/ericfisherdev/keyvault/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.Prompter = (*Prompter)(nil)

// Prompter collects values interactively. A single buffered reader is
// shared across calls so consecutive prompts on the same stream do not
// drop buffered input.
type Prompter struct {
	out    io.Writer
	reader *bufio.Reader
	fd     int
}

// New builds a Prompter over the given streams. When in is a terminal
// file descriptor, entered values are read without echo; otherwise input
// is consumed line by line, which is what tests and piped invocations use.
func New(in io.Reader, out io.Writer) *Prompter {
	p := &Prompter{out: out, reader: bufio.NewReader(in), fd: -1}
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		p.fd = int(f.Fd())
	}
	return p
}

// Prompt writes the label and reads one value. Input exhaustion before
// any value is entered reports driven.ErrPromptUnavailable so callers can
// distinguish a closed stream from an entered empty string.
func (p *Prompter) Prompt(label string) (string, error) {
	if _, err := fmt.Fprintf(p.out, "Enter value for %s: ", label); err != nil {
		return "", fmt.Errorf("write prompt: %w", err)
	}

	if p.fd >= 0 {
		raw, err := term.ReadPassword(p.fd)
		if err != nil {
			return "", fmt.Errorf("read secret input: %w", err)
		}
		fmt.Fprintln(p.out)
		return strings.TrimSpace(string(raw)), nil
	}

	line, err := p.reader.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) {
			if trimmed := strings.TrimSpace(line); trimmed != "" {
				return trimmed, nil
			}
			return "", fmt.Errorf("%w: input closed", driven.ErrPromptUnavailable)
		}
		return "", fmt.Errorf("read input: %w", err)
	}
	return strings.TrimSpace(line), nil
}
