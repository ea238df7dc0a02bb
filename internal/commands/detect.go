package commands

import (
	"fmt"

	"github.com/alecthomas/kingpin/v2"

	"mapping-io/format"
)

// DetectCommand prints the dialect of a file or directory.
type DetectCommand struct {
	g    *Globals
	path string
}

// Register the detect command with the kingpin application.
func (c *DetectCommand) Register(app *kingpin.Application, g *Globals) {
	c.g = g

	cmd := app.Command("detect", "Print the detected mapping format.").Action(c.run)
	cmd.Arg("path", "Mapping file or directory.").Required().StringVar(&c.path)
}

func (c *DetectCommand) run(*kingpin.ParseContext) error {
	f, err := format.DetectPath(c.g.FS, c.path)
	if err != nil {
		return err
	}

	if f == format.Unknown {
		return fmt.Errorf("%w: %s", format.ErrUnknownFormat, c.path)
	}

	_, err = fmt.Fprintf(c.g.Out, "%s (%s)\n", f.Info().Name, f)

	return err
}
