package driven

// EnvSource defines the driven port for environment variable lookup.
// The resolver treats the capability itself as optional: a nil EnvSource
// means the environment branch does not exist, which is how the
// override path is switched off (not by answering "absent" at runtime).
type EnvSource interface {
	// Lookup reports the value of the named variable and whether it is
	// set at all. An empty value with ok=true is treated as absent by
	// the resolver.
	Lookup(name string) (value string, ok bool)
}
