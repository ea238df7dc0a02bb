package commands

import (
	"io"
	"os"

	"github.com/alecthomas/kingpin/v2"
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/spf13/afero"

	"mapping-io/diagnostic"
	"mapping-io/internal/config"
	"mapping-io/reader"
)

// Globals carries the flags and resources shared by every command.
type Globals struct {
	// FS is where inputs are read and outputs written.
	FS afero.Fs
	// Out receives command output, Err receives logs.
	Out io.Writer
	Err io.Writer

	logLevel   string
	configFile string

	logger log.Logger
	cfg    *config.File
}

// NewGlobals returns globals bound to the OS file system and standard streams.
func NewGlobals() *Globals {
	return &Globals{FS: afero.NewOsFs(), Out: os.Stdout, Err: os.Stderr}
}

// Register adds the global flags. Its pre-action runs before any command so
// the logger and configuration are ready when commands execute.
func (g *Globals) Register(app *kingpin.Application) {
	app.Flag("log.level", "Log level: debug, info, warn or error. Overrides the config file.").
		EnumVar(&g.logLevel, "debug", "info", "warn", "error")
	app.Flag("config.file", "YAML configuration file.").StringVar(&g.configFile)

	app.PreAction(g.setup)
}

func (g *Globals) setup(*kingpin.ParseContext) error {
	cfg := config.Default()

	if g.configFile != "" {
		var err error

		cfg, err = config.LoadFile(g.FS, g.configFile)
		if err != nil {
			return err
		}
	}

	g.cfg = cfg

	lvl := cfg.LogLevel
	if g.logLevel != "" {
		lvl = g.logLevel
	}

	logger := log.NewLogfmtLogger(log.NewSyncWriter(g.Err))
	g.logger = level.NewFilter(logger, level.Allow(level.ParseDefault(lvl, level.InfoValue())))

	return nil
}

// Logger returns the configured logger.
func (g *Globals) Logger() log.Logger {
	if g.logger == nil {
		return log.NewNopLogger()
	}

	return g.logger
}

// Config returns the loaded configuration.
func (g *Globals) Config() *config.File {
	if g.cfg == nil {
		return config.Default()
	}

	return g.cfg
}

// readerConfig builds a reader configuration from the loaded file. formatID
// overrides the configured format when set.
func (g *Globals) readerConfig(formatID string, sink diagnostic.Sink) (reader.Config, error) {
	cfg := g.Config()

	if formatID != "" {
		override := *cfg
		override.Format = formatID
		cfg = &override
	}

	f, err := cfg.FormatValue()
	if err != nil {
		return reader.Config{}, err
	}

	return reader.Config{
		Format:          f,
		Sink:            diagnostic.Logging(g.Logger(), sink),
		Logger:          g.Logger(),
		SourceNamespace: cfg.Namespaces.Source,
		TargetNamespace: cfg.Namespaces.Target,
		FS:              g.FS,
	}, nil
}
