package commands

import (
	"fmt"

	"github.com/alecthomas/kingpin/v2"
	"github.com/go-kit/log/level"
	"go.uber.org/multierr"

	"mapping-io/adapter"
	"mapping-io/format"
	"mapping-io/reader"
	"mapping-io/tree"
	"mapping-io/visitor"
	"mapping-io/writer"
)

// ConvertCommand re-encodes a mapping in another dialect.
type ConvertCommand struct {
	g      *Globals
	in     string
	out    string
	format string
	to     string
}

// Register the convert command with the kingpin application.
func (c *ConvertCommand) Register(app *kingpin.Application, g *Globals) {
	c.g = g

	cmd := app.Command("convert", "Convert a mapping to another format.").Action(c.run)
	cmd.Arg("in", "Input file or directory.").Required().StringVar(&c.in)
	cmd.Arg("out", "Output file or directory.").Required().StringVar(&c.out)
	cmd.Flag("format", "Input format ID; detected when empty.").StringVar(&c.format)
	cmd.Flag("to", "Output format ID.").Required().StringVar(&c.to)
}

func (c *ConvertCommand) run(*kingpin.ParseContext) error {
	to, err := format.Parse(c.to)
	if err != nil {
		return err
	}

	cfg, err := c.g.readerConfig(c.format, nil)
	if err != nil {
		return err
	}

	mt := tree.New()

	err = reader.ReadPath(c.in, mt, cfg)
	if err != nil {
		return err
	}

	level.Info(c.g.Logger()).Log("msg", "converting", "in", c.in, "out", c.out, "to", to, "classes", len(mt.Classes))

	return c.write(mt, to)
}

func (c *ConvertCommand) write(mt *tree.Tree, to format.Format) (err error) {
	var w writer.Writer

	if to.IsDirectory() {
		w, err = writer.NewDir(c.g.FS, c.out, to)
		if err != nil {
			return err
		}
	} else {
		f, createErr := c.g.FS.Create(c.out)
		if createErr != nil {
			return fmt.Errorf("create %s: %w", c.out, createErr)
		}
		defer multierr.AppendInvoke(&err, multierr.Close(f))

		w, err = writer.New(f, to)
		if err != nil {
			return err
		}
	}

	var v visitor.Visitor = w
	if rename := c.g.Config().Rename; len(rename) > 0 {
		v = adapter.NewNsRenamer(w, rename)
	}

	err = mt.Accept(v)

	return multierr.Append(err, w.Close())
}
