// filepath: internal/cli/config_command.go
package cli

import (
	"fmt"
	"os"

	"github.com/knkgun/gallery/internal/config"
	"github.com/knkgun/gallery/internal/logging"
	"github.com/spf13/cobra"
)

var forceConfigInit bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Configuration tools",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the effective configuration to the config file",
	Long: `Writes the configuration resolved from the existing file, environment and flags, with
defaults filled in, to the path given by --config_path.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runConfigInit(v.GetString("config_path"), forceConfigInit)
	},
}

func init() {
	configInitCmd.Flags().BoolVar(&forceConfigInit, "force", false, "Overwrite an existing file.")
	configCmd.AddCommand(configInitCmd)
	RootCmd.AddCommand(configCmd)
}

func runConfigInit(path string, force bool) error {
	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("%s already exists, use --force to overwrite it", path)
	}
	if err := config.SaveConfig(path, cfg); err != nil {
		return err
	}
	logging.Log.Infof("Configuration written to %s", path)
	return nil
}
