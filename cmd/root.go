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
	"io/ioutil"
	"os"
	"strings"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/pkg/profile"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/notargets/itkloaders/InputParameters"
	"github.com/notargets/itkloaders/loader"
)

var (
	cfgFile  string
	profiler interface{ Stop() }
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "itkloaders",
	Short: "Resolve file extensions and list the loaders registered with the viewer",
	Long: `
Maps file names to the extension tokens used to pick a loader, and shows which
toolkit loaders are registered for each format,

itkloaders resolve scan.nii.gz cow.vtk`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if viper.GetBool("profile") {
			profiler = profile.Start(profile.CPUProfile, profile.ProfilePath("."), profile.Quiet)
		}
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		stopProfiler()
	},
	SilenceErrors: true,
}

// stopProfiler flushes the CPU profile. Cobra skips PersistentPostRun when a
// command fails, so Execute calls it too.
func stopProfiler() {
	if profiler != nil {
		profiler.Stop()
		profiler = nil
	}
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	stopProfiler()
	if err != nil {
		fmt.Printf("error: %s\n", err.Error())
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.itkloaders.yaml)")
	rootCmd.PersistentFlags().BoolP("all", "a", false, "register loaders for every toolkit format, including those the viewer reads itself")
	rootCmd.PersistentFlags().StringP("inputParametersFile", "I", "", "YAML file for loader parameters like:\n\t- extra image and mesh extensions\n\t- target extensions")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "log every loader registration")
	rootCmd.PersistentFlags().Bool("profile", false, "write a CPU profile to the working directory")
	for _, name := range []string{"all", "inputParametersFile", "verbose", "profile"} {
		_ = viper.BindPFlag(name, rootCmd.PersistentFlags().Lookup(name))
	}
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := homedir.Dir()
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}

		// Search config in home directory with name ".itkloaders" (without extension).
		viper.AddConfigPath(home)
		viper.SetConfigName(".itkloaders")
	}

	viper.SetEnvPrefix("itkloaders")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv() // read in environment variables that match

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// loaderParameters merges the parameters file, if any, with the --all flag
func loaderParameters() (lp *InputParameters.LoaderParameters, err error) {
	lp = &InputParameters.LoaderParameters{}
	if fileName := viper.GetString("inputParametersFile"); fileName != "" {
		var data []byte
		if data, err = ioutil.ReadFile(fileName); err != nil {
			return nil, err
		}
		if err = lp.Parse(data); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", fileName, err)
		}
		if err = lp.Validate(); err != nil {
			return nil, fmt.Errorf("%s: %w", fileName, err)
		}
	}
	lp.All = lp.All || viper.GetBool("all")
	return
}

// newRegistry registers the configured loaders. The CLI has no decoding
// backend, so the loaders only fail when called.
func newRegistry(lp *InputParameters.LoaderParameters) *loader.Registry {
	r := loader.NewRegistry(newLogger(viper.GetBool("verbose")))
	loader.UseLoaderSet(r, loader.Toolkit{}, lp.Set(), lp.Targets())
	return r
}

// newLogger writes console formatted logs to stderr, debug and up when
// verbose, warnings and up otherwise
func newLogger(verbose bool) *zap.Logger {
	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	logger, err := cfg.Build()
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %s\n", err.Error())
		return zap.NewNop()
	}
	return logger
}
