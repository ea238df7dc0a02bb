package commands

import (
	"fmt"

	"github.com/alecthomas/kingpin/v2"

	"mapping-io/reader"
)

// NamespacesCommand prints the namespaces of a mapping.
type NamespacesCommand struct {
	g      *Globals
	path   string
	format string
}

// Register the namespaces command with the kingpin application.
func (c *NamespacesCommand) Register(app *kingpin.Application, g *Globals) {
	c.g = g

	cmd := app.Command("namespaces", "Print the source and destination namespaces.").Action(c.run)
	cmd.Arg("path", "Mapping file or directory.").Required().StringVar(&c.path)
	cmd.Flag("format", "Format ID; detected when empty.").StringVar(&c.format)
}

func (c *NamespacesCommand) run(*kingpin.ParseContext) error {
	cfg, err := c.g.readerConfig(c.format, nil)
	if err != nil {
		return err
	}

	src, dst, err := reader.NamespacesPath(c.path, cfg)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintf(c.g.Out, "source: %s\n", src)
	for i, ns := range dst {
		if err != nil {
			break
		}

		_, err = fmt.Fprintf(c.g.Out, "destination %d: %s\n", i, ns)
	}

	return err
}
