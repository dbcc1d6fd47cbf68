// Package envsource implements the EnvSource port on the process
// environment.
package envsource

import (
	"os"

	"github.com/ericfisherdev/keyvault/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.EnvSource = OS{}

// OS looks secrets up in the process environment. The zero value is ready
// to use; the composition root wires it only when the override path is
// enabled in configuration.
type OS struct{}

// Lookup reports the named environment variable via os.LookupEnv.
func (OS) Lookup(name string) (string, bool) {
	return os.LookupEnv(name)
}
