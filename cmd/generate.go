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
	"strings"

	"github.com/goatx/oasgen"
	"github.com/goatx/oasgen/gocode"
	"github.com/goatx/oasgen/internal/load"
	"github.com/spf13/cobra"
)

// generateCmd represents the generate command
var generateCmd = &cobra.Command{
	Use:   "generate <document>",
	Short: "Generate types, routes and smoke tests",
	Long: `Read an OpenAPI document and write a Go package containing one file per component
schema, routes.go with the Routes interface and routes_test.go with one smoke test per operation.
Components and routes that cannot be resolved are skipped with a warning unless --fail-fast is set.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		configPath, err := cmd.Flags().GetString("config")
		if err != nil {
			return err
		}
		cfg, err := loadConfig(configPath)
		if err != nil {
			return err
		}
		if err := applyFlags(cmd, &cfg); err != nil {
			return err
		}
		check, err := cmd.Flags().GetBool("check")
		if err != nil {
			return err
		}

		logger := newLogger(cmd)

		doc, err := oasgen.Load(args[0])
		if err != nil {
			return err
		}

		if cfg.Strict {
			issues, err := oasgen.Lint(doc)
			if err != nil {
				return err
			}
			for _, issue := range issues {
				logger.Error(issue.Message, "path", issue.Path)
			}
			if len(issues) > 0 {
				return fmt.Errorf("%s has %d lint issue(s)", args[0], len(issues))
			}
		}

		res, err := oasgen.Generate(doc, oasgen.Options{
			FailFast: cfg.FailFast,
			BaseURL:  cfg.BaseURL,
			Seed:     cfg.Seed,
			Logger:   logger,
		})
		if err != nil {
			return err
		}

		files, err := res.Emit(gocode.NewRenderer(cfg.Package))
		if err != nil {
			return err
		}

		writer := oasgen.NewWriter(cfg.Output)
		if check {
			stale, err := writer.Check(files)
			if err != nil {
				return err
			}
			if len(stale) > 0 {
				return fmt.Errorf("generated files are out of date in %s: %s", cfg.Output, strings.Join(stale, ", "))
			}
			logger.Info("generated files are up to date", "dir", cfg.Output)
			return nil
		}

		if err := writer.Write(files); err != nil {
			return err
		}
		logger.Info("generated package",
			"dir", cfg.Output,
			"components", len(res.Components),
			"routes", len(res.Routes.Routes),
			"skipped", len(res.Failures),
		)

		if cfg.Verify {
			pkg, err := load.Check(cfg.Output)
			if err != nil {
				return errors.Join(errors.New("generated package does not type-check"), err)
			}
			logger.Info("verified package", "package", pkg.Name, "files", len(pkg.Files))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(generateCmd)

	generateCmd.Flags().StringP("output", "o", "./api", "directory to write the generated package to")
	generateCmd.Flags().String("package", "api", "name of the generated package")
	generateCmd.Flags().String("base-url", "", "base URL of the smoke tests (defaults to servers[0].url)")
	generateCmd.Flags().String("config", "", "config file (defaults to "+defaultConfigFile+" when present)")
	generateCmd.Flags().Uint64("seed", 0, "seed for sample values; 0 picks a random seed")
	generateCmd.Flags().Bool("fail-fast", false, "abort on the first component or route that fails")
	generateCmd.Flags().Bool("strict", false, "lint the document before generating and fail on issues")
	generateCmd.Flags().Bool("verify", false, "type-check the generated package")
	generateCmd.Flags().Bool("check", false, "compare with the files on disk instead of writing")
}
