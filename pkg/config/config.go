package config

import (
	"bytes"
	"io"
	"path/filepath"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/spf13/afero"
	"github.com/zclconf/go-cty/cty"
	"gitlab.com/tozd/go/errors"
	"gopkg.in/yaml.v3"

	"github.com/walteh/textesc/pkg/escape"
)

const DefaultBufferSize = 4096

// FileNames are looked up, in order, by Find.
var FileNames = []string{".textesc.hcl", ".textesc.yaml", ".textesc.yml"}

// Config is the project configuration file structure
type Config struct {
	// Policy names the escape policy, see escape.PolicyByName
	Policy string `json:"policy,omitempty" hcl:"policy,optional" yaml:"policy,omitempty"`
	// BufferSize is the size of the fixed output buffer escape output is staged in
	BufferSize int `json:"buffer_size,omitempty" hcl:"buffer_size,optional" yaml:"buffer_size,omitempty"`
	// Include holds the default globs validated when none are given
	Include []string `json:"include,omitempty" hcl:"include,optional" yaml:"include,omitempty"`
	// IgnoreEditorconfig validates files even when .editorconfig declares a non UTF-8 charset
	IgnoreEditorconfig bool `json:"ignore_editorconfig,omitempty" hcl:"ignore_editorconfig,optional" yaml:"ignore_editorconfig,omitempty"`
}

func Default() *Config {
	return &Config{
		Policy:     "default",
		BufferSize: DefaultBufferSize,
		Include:    []string{"**/*"},
	}
}

// Load reads a config file (supports YAML and HCL)
func Load(fs afero.Fs, path string) (*Config, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, errors.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml") {
		decoder := yaml.NewDecoder(bytes.NewReader(data))
		decoder.KnownFields(true)
		if err := decoder.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
			return nil, errors.Errorf("parsing YAML: %w", err)
		}
	} else {
		parser := hclparse.NewParser()
		file, diags := parser.ParseHCL(data, path)
		if diags.HasErrors() {
			return nil, errors.Errorf("parsing HCL: %s", diags.Error())
		}

		ctx := &hcl.EvalContext{
			Variables: map[string]cty.Value{},
		}

		diags = gohcl.DecodeBody(file.Body, ctx, &cfg)
		if diags.HasErrors() {
			return nil, errors.Errorf("decoding HCL: %s", diags.Error())
		}
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, errors.Errorf("config %s: %w", path, err)
	}
	return &cfg, nil
}

// Find loads the first of FileNames present in dir, or returns Default with
// an empty path when there is none.
func Find(fs afero.Fs, dir string) (*Config, string, error) {
	for _, name := range FileNames {
		path := filepath.Join(dir, name)
		ok, err := afero.Exists(fs, path)
		if err != nil {
			return nil, "", errors.Errorf("checking for %s: %w", path, err)
		}
		if !ok {
			continue
		}
		cfg, err := Load(fs, path)
		if err != nil {
			return nil, "", err
		}
		return cfg, path, nil
	}
	return Default(), "", nil
}

func (c *Config) applyDefaults() {
	def := Default()
	if c.Policy == "" {
		c.Policy = def.Policy
	}
	if c.BufferSize == 0 {
		c.BufferSize = def.BufferSize
	}
	if len(c.Include) == 0 {
		c.Include = def.Include
	}
}

func (c *Config) Validate() error {
	if _, err := escape.PolicyByName(c.Policy); err != nil {
		return err
	}
	if c.BufferSize < escape.MaxSequenceLen {
		return errors.Errorf("buffer_size %d is smaller than the longest escape sequence (%d)", c.BufferSize, escape.MaxSequenceLen)
	}
	return nil
}

// EscapePolicy resolves the configured policy name.
func (c *Config) EscapePolicy() (escape.Policy, error) {
	return escape.PolicyByName(c.Policy)
}
