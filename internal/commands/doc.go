// Package commands implements the sub-commands of the mappingio CLI.
package commands
