package cmd

import (
	"fmt"

	"prefect-manager/internal/configdoc"

	"github.com/spf13/cobra"
)

func (a *app) activateCmd() *cobra.Command {
	var configName string

	cmd := &cobra.Command{
		Use:   "activate [account_name]",
		Short: "Switch prefect accounts and login",
		Long: `Switch prefect accounts and login.
The chosen config template is written to the prefect config file with the
account's token in the agent token field, then 'prefect auth login --token'
runs with that token. See list-accounts and list-configs for the options.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			account := args[0]
			if err := a.mgr.Activate(commandContext(cmd), account, configName); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Activated '%s' with config '%s'.\n", account, configName)
			return nil
		},
	}

	cmd.Flags().StringVar(&configName, "config-name", configdoc.DefaultName, "config template to activate")
	return cmd
}
