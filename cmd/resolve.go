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
)

// ResolveCmd represents the resolve command
var ResolveCmd = &cobra.Command{
	Use:   "resolve FILE...",
	Short: "Print the extension token used to select a loader for each file",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		printTokens(cmd.OutOrStdout(), args)
	},
}

func init() {
	rootCmd.AddCommand(ResolveCmd)
}

func printTokens(w io.Writer, files []string) {
	for _, f := range files {
		fmt.Fprintf(w, "%s\t%s\n", f, extension.Resolve(f))
	}
}
