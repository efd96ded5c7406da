// Package config loads tmplvars.yaml, the per-project rewrite settings.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/rubiojr/tmplvars/printer"
	"github.com/rubiojr/tmplvars/rewrite"
)

// FileName is the configuration file looked up in a project directory.
const FileName = "tmplvars.yaml"

// Config represents tmplvars.yaml.
type Config struct {
	// Marker function names
	Markers MarkersConfig `yaml:"markers"`

	// Static property that holds the descriptor list
	DescriptorProperty string `yaml:"descriptor_property"`

	// Prop that carries the render context into components
	ContextAttribute string `yaml:"context_attribute"`

	// Prefix for the duplicated value attribute of text inputs
	ValueAttributePrefix string `yaml:"value_attribute_prefix"`

	// Calls that start a repeated block
	RepeatMethods []string `yaml:"repeat_methods"`

	// Context used when no parent supplies one
	RootContext int `yaml:"root_context"`

	// Fail when diagnostics are reported
	Strict bool `yaml:"strict"`

	// Output formatting
	Output OutputConfig `yaml:"output"`

	// Source of the configuration, empty for defaults
	Path string `yaml:"-"`
}

// MarkersConfig names the marker functions.
type MarkersConfig struct {
	Value   string `yaml:"value"`
	List    string `yaml:"list"`
	Control string `yaml:"control"`
}

// OutputConfig controls how rewritten sources are printed.
type OutputConfig struct {
	Indent      int    `yaml:"indent"`
	Quote       string `yaml:"quote"` // "single" or "double"
	Prelude     string `yaml:"prelude"`
	Extension   string `yaml:"extension"`
	Concurrency int    `yaml:"concurrency"`
}

// Default returns the built-in configuration.
func Default() *Config {
	o := rewrite.DefaultOptions()
	return &Config{
		Markers: MarkersConfig{
			Value:   o.Markers.Value,
			List:    o.Markers.List,
			Control: o.Markers.Control,
		},
		DescriptorProperty:   o.DescriptorProperty,
		ContextAttribute:     o.ContextAttribute,
		ValueAttributePrefix: o.ValueAttributePrefix,
		RepeatMethods:        o.RepeatMethods,
		RootContext:          o.RootContext,
		Output: OutputConfig{
			Indent:    2,
			Quote:     "single",
			Extension: ".jsx",
		},
	}
}

// Load reads tmplvars.yaml from dir. A missing file yields the defaults;
// keys present in the file override them.
func Load(dir string) (*Config, error) {
	path := filepath.Join(dir, FileName)
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return Default(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	cfg.Path = path
	return cfg, nil
}

// Parse decodes YAML configuration over the defaults and validates it.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks values the rewrite cannot work with.
func (c *Config) Validate() error {
	for key, name := range map[string]string{
		"markers.value":   c.Markers.Value,
		"markers.list":    c.Markers.List,
		"markers.control": c.Markers.Control,
	} {
		if name == "" {
			return fmt.Errorf("%s must not be empty", key)
		}
	}
	if c.DescriptorProperty == "" {
		return fmt.Errorf("descriptor_property must not be empty")
	}
	if c.ContextAttribute == "" {
		return fmt.Errorf("context_attribute must not be empty")
	}
	if len(c.RepeatMethods) == 0 {
		return fmt.Errorf("repeat_methods must list at least one method")
	}
	switch c.Output.Quote {
	case "", "single", "double":
	default:
		return fmt.Errorf("output.quote must be \"single\" or \"double\", got %q", c.Output.Quote)
	}
	if c.Output.Indent < 0 {
		return fmt.Errorf("output.indent must not be negative")
	}
	return nil
}

// Options converts the configuration into rewrite options reporting to r.
func (c *Config) Options(r rewrite.Reporter) rewrite.Options {
	return rewrite.Options{
		Markers: rewrite.Markers{
			Value:   c.Markers.Value,
			List:    c.Markers.List,
			Control: c.Markers.Control,
		},
		DescriptorProperty:   c.DescriptorProperty,
		ContextAttribute:     c.ContextAttribute,
		ValueAttributePrefix: c.ValueAttributePrefix,
		RepeatMethods:        c.RepeatMethods,
		RootContext:          c.RootContext,
		Reporter:             r,
	}
}

// PrinterOptions converts the output settings into printer options.
func (c *Config) PrinterOptions() printer.Options {
	opts := printer.Options{Quote: '\''}
	if c.Output.Quote == "double" {
		opts.Quote = '"'
	}
	if c.Output.Indent > 0 {
		opts.Indent = strings.Repeat(" ", c.Output.Indent)
	}
	return opts
}
