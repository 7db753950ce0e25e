/*
Copyright © 2025 Honoka Toda, Shinya Ishitobi

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
package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// defaultConfigFile is read from the working directory when --config is not set.
const defaultConfigFile = ".oasgen.yaml"

// config holds the settings of the generate command. Values from the config
// file are overridden by flags set on the command line.
type config struct {
	Output   string `yaml:"output"`
	Package  string `yaml:"package"`
	BaseURL  string `yaml:"baseURL"`
	Seed     uint64 `yaml:"seed"`
	FailFast bool   `yaml:"failFast"`
	Strict   bool   `yaml:"strict"`
	Verify   bool   `yaml:"verify"`
}

func defaultConfig() config {
	return config{
		Output:  "./api",
		Package: "api",
	}
}

// loadConfig reads path into the defaults. A missing default config file is
// not an error; a missing explicit one is.
func loadConfig(path string) (config, error) {
	cfg := defaultConfig()

	explicit := path != ""
	if !explicit {
		path = defaultConfigFile
	}

	// #nosec G304 - path is supplied by the user on the command line
	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return cfg, nil
}

// applyFlags overrides cfg with every flag that was set explicitly.
func applyFlags(cmd *cobra.Command, cfg *config) error {
	flags := cmd.Flags()

	var err error
	if flags.Changed("output") {
		if cfg.Output, err = flags.GetString("output"); err != nil {
			return err
		}
	}
	if flags.Changed("package") {
		if cfg.Package, err = flags.GetString("package"); err != nil {
			return err
		}
	}
	if flags.Changed("base-url") {
		if cfg.BaseURL, err = flags.GetString("base-url"); err != nil {
			return err
		}
	}
	if flags.Changed("seed") {
		if cfg.Seed, err = flags.GetUint64("seed"); err != nil {
			return err
		}
	}
	if flags.Changed("fail-fast") {
		if cfg.FailFast, err = flags.GetBool("fail-fast"); err != nil {
			return err
		}
	}
	if flags.Changed("strict") {
		if cfg.Strict, err = flags.GetBool("strict"); err != nil {
			return err
		}
	}
	if flags.Changed("verify") {
		if cfg.Verify, err = flags.GetBool("verify"); err != nil {
			return err
		}
	}
	return nil
}
