package cmd

import (
	"fmt"

	"prefect-manager/internal/configdoc"

	"github.com/spf13/cobra"
)

func (a *app) addConfigCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "add-config [config_name]",
		Short: "Track an existing config file under a name",
		Long: `Add a new config setup to the tracked config files from an already
created config. Defaults to the current prefect config.toml. To write a new
config from the command line, use edit-config.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.mgr.AddConfig(args[0], configPath); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Config '%s' added.\n", args[0])
			return nil
		},
	}

	cmd.Flags().StringVar(&configPath, "config-path", "", "config file to import (default: the active prefect config)")
	return cmd
}

func (a *app) listConfigsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list-configs",
		Short: "List all the configurations available for use",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			names, err := a.mgr.ListConfigs()
			if err != nil {
				return err
			}
			printList(cmd.OutOrStdout(), "Configs", names)
			return nil
		},
	}
}

func (a *app) editConfigCmd() *cobra.Command {
	var configName string

	cmd := &cobra.Command{
		Use:   "edit-config",
		Short: "Edit an existing configuration or write a new one",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.mgr.EditConfig(commandContext(cmd), configName)
		},
	}

	cmd.Flags().StringVar(&configName, "config-name", configdoc.DefaultName, "config template to edit")
	return cmd
}
