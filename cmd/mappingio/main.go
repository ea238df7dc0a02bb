// Package main provides the CLI entrypoint for mappingio.
//
// mappingio inspects and converts JVM obfuscation mapping files:
//   - detect the dialect of a file or directory
//   - print the namespaces it declares
//   - check it and list every problem with its position
//   - print it as a tree or YAML
//   - convert it to another dialect
package main

import (
	"os"

	"github.com/alecthomas/kingpin/v2"

	"mapping-io/internal/commands"
)

var (
	detectCommand     commands.DetectCommand
	namespacesCommand commands.NamespacesCommand
	checkCommand      commands.CheckCommand
	treeCommand       commands.TreeCommand
	convertCommand    commands.ConvertCommand
)

func main() {
	app := kingpin.New("mappingio", "Inspect and convert JVM mapping files.")

	globals := commands.NewGlobals()

	// Register globals first so their PreAction runs before the commands.
	globals.Register(app)

	detectCommand.Register(app, globals)
	namespacesCommand.Register(app, globals)
	checkCommand.Register(app, globals)
	treeCommand.Register(app, globals)
	convertCommand.Register(app, globals)

	kingpin.MustParse(app.Parse(os.Args[1:]))
}
