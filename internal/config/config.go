package config

import (
	"fmt"
	"strings"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	"mapping-io/diagnostic"
	"mapping-io/format"
)

// Error policies.
const (
	PolicyCollect = "collect"
	PolicyFail    = "fail"
	PolicyDiscard = "discard"
)

// File is the CLI configuration.
type File struct {
	// Format forces a dialect by ID; empty means detect.
	Format     string     `yaml:"format,omitempty"`
	Namespaces Namespaces `yaml:"namespaces"`
	// Rename maps namespace names to the names handed to writers.
	Rename   map[string]string `yaml:"rename,omitempty"`
	Errors   ErrorPolicy       `yaml:"errors"`
	LogLevel string            `yaml:"log_level"`
}

// Namespaces names the namespaces of dialects that do not declare their own.
type Namespaces struct {
	Source string `yaml:"source"`
	Target string `yaml:"target"`
}

// ErrorPolicy decides what happens to diagnostics.
type ErrorPolicy struct {
	// Policy is one of collect, fail or discard.
	Policy string `yaml:"policy"`
	// Threshold is the lowest severity the fail policy aborts on.
	Threshold string `yaml:"threshold"`
}

// Default returns the configuration used without a file.
func Default() *File {
	var f File

	applyDefaults(&f)

	return &f
}

// LoadFile loads and parses a YAML configuration file from fsys.
func LoadFile(fsys afero.Fs, path string) (*File, error) {
	data, err := afero.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	return Parse(data)
}

// Parse parses YAML data into a File and validates it.
func Parse(data []byte) (*File, error) {
	var f File

	err := yaml.Unmarshal(data, &f)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config YAML: %w", err)
	}

	applyDefaults(&f)

	err = f.Validate()
	if err != nil {
		return nil, err
	}

	return &f, nil
}

// applyDefaults fills in default values for optional fields.
func applyDefaults(f *File) {
	if f.Namespaces.Source == "" {
		f.Namespaces.Source = format.SrcNamespaceFallback
	}

	if f.Namespaces.Target == "" {
		f.Namespaces.Target = format.DstNamespaceFallback
	}

	if f.Errors.Policy == "" {
		f.Errors.Policy = PolicyCollect
	}

	if f.Errors.Threshold == "" {
		f.Errors.Threshold = diagnostic.SeverityError.String()
	}

	if f.LogLevel == "" {
		f.LogLevel = "info"
	}

	f.Errors.Policy = strings.ToLower(f.Errors.Policy)
}

// Validate checks enumerated values.
func (f *File) Validate() error {
	_, err := f.FormatValue()
	if err != nil {
		return err
	}

	switch f.Errors.Policy {
	case PolicyCollect, PolicyFail, PolicyDiscard:
	default:
		return fmt.Errorf("invalid errors.policy %q: want %s, %s or %s", f.Errors.Policy, PolicyCollect, PolicyFail, PolicyDiscard)
	}

	_, err = diagnostic.ParseSeverity(f.Errors.Threshold)
	if err != nil {
		return fmt.Errorf("invalid errors.threshold: %w", err)
	}

	return nil
}

// FormatValue resolves Format; empty yields format.Unknown.
func (f *File) FormatValue() (format.Format, error) {
	var v format.Format

	err := v.UnmarshalText([]byte(f.Format))

	return v, err
}

// Sink builds the diagnostic sink for the configured policy. Collected
// diagnostics end up in col for every policy but discard.
func (f *File) Sink(col *diagnostic.Collector) (diagnostic.Sink, error) {
	switch f.Errors.Policy {
	case PolicyDiscard:
		return diagnostic.Discard(), nil
	case PolicyFail:
		sev, err := diagnostic.ParseSeverity(f.Errors.Threshold)
		if err != nil {
			return nil, err
		}

		return diagnostic.Tee(col, diagnostic.FailAt(sev)), nil
	default:
		return col, nil
	}
}

// Marshal serializes a File to YAML.
func Marshal(f *File) ([]byte, error) {
	return yaml.Marshal(f)
}
