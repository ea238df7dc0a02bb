package reader

import (
	"github.com/go-kit/log"
	"github.com/spf13/afero"

	"mapping-io/diagnostic"
	"mapping-io/format"
)

// Config controls how mappings are read.
type Config struct {
	// Format forces a dialect; Unknown means detect.
	Format format.Format
	// Sink receives data problems. Nil discards them.
	Sink diagnostic.Sink
	// Logger receives debug logs about dispatching.
	Logger log.Logger
	// SourceNamespace and TargetNamespace name the namespaces of dialects
	// that do not declare their own.
	SourceNamespace string
	TargetNamespace string
	// FS resolves paths for the *Path functions.
	FS afero.Fs
}

// DefaultConfig returns a config detecting the format, discarding
// diagnostics and reading from the OS file system.
func DefaultConfig() Config {
	return Config{
		Sink:            diagnostic.Discard(),
		Logger:          log.NewNopLogger(),
		SourceNamespace: format.SrcNamespaceFallback,
		TargetNamespace: format.DstNamespaceFallback,
		FS:              afero.NewOsFs(),
	}
}

// applyDefaults fills zero fields from DefaultConfig.
func (c Config) applyDefaults() Config {
	def := DefaultConfig()

	if c.Sink == nil {
		c.Sink = def.Sink
	}

	if c.Logger == nil {
		c.Logger = def.Logger
	}

	if c.SourceNamespace == "" {
		c.SourceNamespace = def.SourceNamespace
	}

	if c.TargetNamespace == "" {
		c.TargetNamespace = def.TargetNamespace
	}

	if c.FS == nil {
		c.FS = def.FS
	}

	return c
}
