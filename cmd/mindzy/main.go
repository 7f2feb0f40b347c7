// Package main implements the mindzy server CLI.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"mindzy/internal/config"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:           "mindzy",
	Short:         "Mindzy - student wellbeing backend",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", config.DefaultPath, "path to a YAML or TOML config file")
	rootCmd.AddCommand(serveCmd, migrateCmd, versionCmd)
	setFlagAliases(rootCmd, map[string]string{"cfg": "config"})
}

// setFlagAliases lets old or short flag spellings resolve on cmd and its children.
func setFlagAliases(cmd *cobra.Command, aliases map[string]string) {
	cmd.SetGlobalNormalizationFunc(func(f *pflag.FlagSet, name string) pflag.NormalizedName {
		if alias, ok := aliases[name]; ok {
			name = alias
		}
		return pflag.NormalizedName(name)
	})
}

// @title        Mindzy API
// @version      1.0
// @description  Tasks, coins, rewards, the Mindzy chat companion and campus events.
// @BasePath     /
// @securityDefinitions.apikey BearerAuth
// @in   header
// @name Authorization
func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
