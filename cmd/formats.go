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

	"github.com/notargets/itkloaders/InputParameters"
	"github.com/notargets/itkloaders/loader"
)

// FormatsCmd represents the formats command
var FormatsCmd = &cobra.Command{
	Use:   "formats",
	Short: "List the loader registrations, source extension to target extension",
	RunE: func(cmd *cobra.Command, args []string) error {
		lp, err := loaderParameters()
		if err != nil {
			fmt.Printf("Example File:%s\n", InputParameters.ExampleFile)
			return err
		}
		if lp.Title != "" {
			lp.Print(cmd.OutOrStdout())
		}
		printEntries(cmd.OutOrStdout(), newRegistry(lp))
		return nil
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.AddCommand(FormatsCmd)
}

func printEntries(w io.Writer, r *loader.Registry) {
	for _, e := range r.Entries() {
		fmt.Fprintf(w, "%-14s -> %-5s %s\n", e.From, e.To, e.Kind)
	}
	fmt.Fprintf(w, "%d loaders\n", r.Len())
}
