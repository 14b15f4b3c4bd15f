package cli

import (
	"errors"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
	Long: `View and change persisted defaults.

Keys:
  parse.precision   default precision: day, hour, minute or second
  parse.chunk_size  bytes read from the input at a time
  output.format     default output format: text, json or sqlite
  output.color      text styling: auto, always or never
  storage.path      directory of the sqlite run database

Settings are stored in config.toml under $STS_HOME (default ~/.shorttimeseries).`,
	RunE: runConfigList,
}

var configListCmd = &cobra.Command{
	Use:   "list",
	Short: "Show all settings",
	Args:  usageArgs(cobra.NoArgs),
	RunE:  runConfigList,
}

var configGetCmd = &cobra.Command{
	Use:   "get KEY",
	Short: "Print the effective value of a setting",
	Args:  usageArgs(cobra.ExactArgs(1)),
	RunE:  runConfigGet,
}

var configSetCmd = &cobra.Command{
	Use:   "set KEY VALUE",
	Short: "Store a setting",
	Args:  usageArgs(cobra.ExactArgs(2)),
	RunE:  runConfigSet,
}

var configUnsetCmd = &cobra.Command{
	Use:   "unset KEY",
	Short: "Remove a setting, restoring its default",
	Args:  usageArgs(cobra.ExactArgs(1)),
	RunE:  runConfigUnset,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the configuration file path",
	Args:  usageArgs(cobra.NoArgs),
	RunE:  runConfigPath,
}

func init() {
	configCmd.AddCommand(configListCmd)
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configUnsetCmd)
	configCmd.AddCommand(configPathCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigList(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	for _, key := range settingsService.Keys() {
		value, err := settingsService.Lookup(key)
		if err != nil {
			return err
		}
		cmd.Printf("%s = %s\n", key, value)
	}
	return nil
}

func runConfigGet(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	value, err := settingsService.Lookup(args[0])
	if err != nil {
		return usageError{err}
	}
	cmd.Println(value)
	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	if err := settingsService.Set(args[0], args[1]); err != nil {
		return usageError{err}
	}
	cmd.Printf("%s set to %s\n", args[0], args[1])
	return nil
}

func runConfigUnset(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	if err := settingsService.Unset(args[0]); err != nil {
		return usageError{err}
	}
	cmd.Printf("%s unset\n", args[0])
	return nil
}

func runConfigPath(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	cmd.Println(settingsService.Path())
	return nil
}
