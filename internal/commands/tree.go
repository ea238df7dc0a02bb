package commands

import (
	"fmt"
	"strings"

	"github.com/alecthomas/kingpin/v2"
	"github.com/xlab/treeprint"
	"gopkg.in/yaml.v3"

	"mapping-io/reader"
	"mapping-io/tree"
)

// TreeCommand prints a decoded mapping as a tree.
type TreeCommand struct {
	g      *Globals
	path   string
	format string
	output string
}

// Register the tree command with the kingpin application.
func (c *TreeCommand) Register(app *kingpin.Application, g *Globals) {
	c.g = g

	cmd := app.Command("tree", "Print the decoded mapping.").Action(c.run)
	cmd.Arg("path", "Mapping file or directory.").Required().StringVar(&c.path)
	cmd.Flag("format", "Format ID; detected when empty.").StringVar(&c.format)
	cmd.Flag("output", "Output style.").Default("text").EnumVar(&c.output, "text", "yaml")
}

func (c *TreeCommand) run(*kingpin.ParseContext) error {
	cfg, err := c.g.readerConfig(c.format, nil)
	if err != nil {
		return err
	}

	mt := tree.New()

	err = reader.ReadPath(c.path, mt, cfg)
	if err != nil {
		return err
	}

	if c.output == "yaml" {
		enc := yaml.NewEncoder(c.g.Out)
		enc.SetIndent(2)

		err = enc.Encode(mt)
		if err != nil {
			return err
		}

		return enc.Close()
	}

	_, err = fmt.Fprint(c.g.Out, render(mt).String())

	return err
}

// render builds a printable tree of mt.
func render(mt *tree.Tree) treeprint.Tree {
	root := treeprint.NewWithRoot(mt.SrcNamespace + " -> " + strings.Join(mt.DstNamespaces, ", "))

	for _, p := range mt.Packages {
		root.AddNode("package " + label(&p.Entry, ""))
	}

	for _, c := range mt.Classes {
		cb := root.AddBranch("class " + label(&c.Entry, ""))

		for _, f := range c.Fields {
			cb.AddNode("field " + label(&f.Entry, f.SrcDesc))
		}

		for _, m := range c.Methods {
			if len(m.Args) == 0 && len(m.Vars) == 0 {
				cb.AddNode("method " + label(&m.Entry, m.SrcDesc))

				continue
			}

			mb := cb.AddBranch("method " + label(&m.Entry, m.SrcDesc))

			for _, a := range m.Args {
				mb.AddNode(fmt.Sprintf("arg %d/%d %s", a.ArgPosition, a.LvIndex, label(&a.Entry, "")))
			}

			for _, v := range m.Vars {
				mb.AddNode(fmt.Sprintf("var %d %s", v.LvIndex, label(&v.Entry, "")))
			}
		}
	}

	return root
}

func label(e *tree.Entry, desc string) string {
	var b strings.Builder

	b.WriteString(e.SrcName)

	if desc != "" {
		b.WriteString(" " + desc)
	}

	if len(e.DstNames) > 0 {
		b.WriteString(" => " + strings.Join(e.DstNames, ", "))
	}

	return b.String()
}
