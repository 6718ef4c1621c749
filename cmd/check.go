/*
Copyright © 2020 NAME HERE <EMAIL ADDRESS>

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
	"io"

	"github.com/spf13/cobra"

	"github.com/notargets/itkloaders/extension"
	"github.com/notargets/itkloaders/loader"
)

// CheckCmd represents the check command
var CheckCmd = &cobra.Command{
	Use:   "check FILE...",
	Short: "Report whether a registered loader would accept each file",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		lp, err := loaderParameters()
		if err != nil {
			return err
		}
		if missing := checkFiles(cmd.OutOrStdout(), newRegistry(lp), args); missing > 0 {
			return fmt.Errorf("%d of %d files have no loader", missing, len(args))
		}
		return nil
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.AddCommand(CheckCmd)
}

// checkFiles returns the number of files no loader accepts
func checkFiles(w io.Writer, r *loader.Registry, files []string) (missing int) {
	for _, f := range files {
		e, ok := r.Lookup(f)
		if !ok {
			fmt.Fprintf(w, "%s\t%s\tunsupported\n", f, extension.Resolve(f))
			missing++
			continue
		}
		fmt.Fprintf(w, "%s\t%s\t-> %s\n", f, e.From, e.To)
	}
	return
}
