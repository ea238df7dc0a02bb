package commands

import (
	"errors"
	"fmt"

	"github.com/alecthomas/kingpin/v2"
	"github.com/dustin/go-humanize"

	"mapping-io/diagnostic"
	"mapping-io/reader"
	"mapping-io/tree"
)

// ErrInvalidMapping is returned by check when error diagnostics were found.
var ErrInvalidMapping = errors.New("mapping has errors")

// CheckCommand decodes a mapping and reports every diagnostic.
type CheckCommand struct {
	g      *Globals
	path   string
	format string
	failAt string
}

// Register the check command with the kingpin application.
func (c *CheckCommand) Register(app *kingpin.Application, g *Globals) {
	c.g = g

	cmd := app.Command("check", "Decode a mapping and list its problems.").Action(c.run)
	cmd.Arg("path", "Mapping file or directory.").Required().StringVar(&c.path)
	cmd.Flag("format", "Format ID; detected when empty.").StringVar(&c.format)
	cmd.Flag("fail-at", "Abort on the first diagnostic of this severity: info, warning or error.").StringVar(&c.failAt)
}

func (c *CheckCommand) run(*kingpin.ParseContext) error {
	col := diagnostic.NewCollector()

	var sink diagnostic.Sink = col

	if c.failAt != "" {
		sev, err := diagnostic.ParseSeverity(c.failAt)
		if err != nil {
			return err
		}

		sink = diagnostic.Tee(col, diagnostic.FailAt(sev))
	}

	cfg, err := c.g.readerConfig(c.format, sink)
	if err != nil {
		return err
	}

	mt := tree.New()
	readErr := reader.ReadPath(c.path, mt, cfg)

	for _, d := range col.Diagnostics {
		_, err = fmt.Fprintf(c.g.Out, "%s:%d:%d: %s: %s\n", c.path, d.Line, d.Column, d.Severity, d)
		if err != nil {
			return err
		}
	}

	var derr *diagnostic.Error
	if readErr != nil && !errors.As(readErr, &derr) {
		return readErr
	}

	s := mt.Stats()
	_, err = fmt.Fprintf(c.g.Out, "%s classes, %s fields, %s methods, %s args, %s vars, %s comments; %s errors, %s warnings\n",
		humanize.Comma(int64(s.Classes)), humanize.Comma(int64(s.Fields)), humanize.Comma(int64(s.Methods)),
		humanize.Comma(int64(s.Args)), humanize.Comma(int64(s.Vars)), humanize.Comma(int64(s.Comments)),
		humanize.Comma(int64(len(col.Errors()))), humanize.Comma(int64(len(col.Warnings()))))
	if err != nil {
		return err
	}

	if readErr != nil || col.HasErrors() {
		return ErrInvalidMapping
	}

	return nil
}
