package dbug

import "sync"

var defaultRegistry = sync.OnceValue(func() *Registry {
	return RegistryFromEnv()
})

// Default returns the process-wide Registry. It is built from the
// environment (see RegistryFromEnv) the first time it is needed and never
// rebuilt, so changing DEBUG after that point has no effect.
func Default() *Registry {
	return defaultRegistry()
}

// Enabled reports whether namespace is enabled in the Default registry.
func Enabled(namespace string) bool {
	return Default().Enabled(namespace)
}
