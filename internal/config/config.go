/*
   Copyright 2025 The DIRPX Authors

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

// Package config loads the CLI configuration: defaults, then an optional
// YAML rules file, then COREERR_* environment variables, then flags that
// were set explicitly.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"dirpx.dev/coreerr/apis"
	"dirpx.dev/coreerr/mapper"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/rs/zerolog"
	"github.com/spf13/pflag"
)

// EnvPrefix is the prefix of environment overrides, e.g.
// COREERR_FALLBACK_HTTP=502.
const EnvPrefix = "COREERR_"

// DefaultFiles are tried in order when no file is given.
var DefaultFiles = []string{"coreerr.yaml", "coreerr.yml"}

// Config is the CLI configuration. The mapper rules sit at the top level
// of the file:
//
//	log_level: debug
//	fallback_http: 500
//	rules:
//	  - type: conflict
//	    reason: coupon.use
//	    grpc: FAILED_PRECONDITION
type Config struct {
	Verbose  bool   `koanf:"verbose"`
	LogLevel string `koanf:"log_level"`

	Mapper mapper.Config `koanf:",squash"`

	// File is the rules file that was loaded, if any.
	File string `koanf:"-"`
}

// ErrNotFound is returned when an explicitly named file does not exist.
var ErrNotFound = errors.New("config: file not found")

// Load builds a Config. path may be empty, in which case DefaultFiles are
// looked up in the working directory. flags may be nil.
func Load(path string, flags *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(map[string]any{
		"verbose":   false,
		"log_level": zerolog.InfoLevel.String(),
	}, "."), nil); err != nil {
		return nil, fmt.Errorf("load defaults: %w", err)
	}

	used, err := findFile(path)
	if err != nil {
		return nil, err
	}
	if used != "" {
		if err := k.Load(file.Provider(used), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("read config file %s: %w", used, err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	}), nil); err != nil {
		return nil, fmt.Errorf("load env: %w", err)
	}

	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, any) {
			if !f.Changed || f.Name == "config" {
				return "", nil
			}
			return strings.ReplaceAll(f.Name, "-", "_"), posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return nil, fmt.Errorf("load flags: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	cfg.File = used
	return &cfg, nil
}

func findFile(explicit string) (string, error) {
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			return "", fmt.Errorf("%w: %s", ErrNotFound, explicit)
		}
		return explicit, nil
	}
	for _, name := range DefaultFiles {
		if _, err := os.Stat(name); err == nil {
			return name, nil
		}
	}
	return "", nil
}

// Level parses LogLevel, defaulting to info. Verbose forces debug.
func (c *Config) Level() zerolog.Level {
	if c.Verbose {
		return zerolog.DebugLevel
	}
	lvl, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil || c.LogLevel == "" {
		return zerolog.InfoLevel
	}
	return lvl
}

// BuildMapper builds the mapper described by the rules.
func (c *Config) BuildMapper() (apis.Mapper, error) {
	opts, err := c.Mapper.Options()
	if err != nil {
		return nil, err
	}
	return mapper.New(opts...)
}
