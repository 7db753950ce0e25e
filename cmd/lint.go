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
	"fmt"

	"github.com/goatx/oasgen"
	"github.com/spf13/cobra"
)

// lintCmd represents the lint command
var lintCmd = &cobra.Command{
	Use:   "lint <document>",
	Short: "Check that a document has the shape oasgen understands",
	Long: `Validate the subset of an OpenAPI document that oasgen reads: component schemas,
operations with operationId, parameters and responses. Each issue is printed as "<pointer>: <message>".`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		doc, err := oasgen.Load(args[0])
		if err != nil {
			return err
		}

		issues, err := oasgen.Lint(doc)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		for _, issue := range issues {
			if _, err := fmt.Fprintln(out, issue.String()); err != nil {
				return err
			}
		}
		if len(issues) > 0 {
			return fmt.Errorf("%s has %d lint issue(s)", args[0], len(issues))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(lintCmd)
}
