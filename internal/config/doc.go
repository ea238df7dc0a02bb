// Package config loads the YAML configuration file of the mappingio CLI.
package config
