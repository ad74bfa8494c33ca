package cmd

import (
	"fmt"
	"io"

	"prefect-manager/internal/prompt"

	"github.com/spf13/cobra"
)

func (a *app) addAccountCmd() *cobra.Command {
	var name, token string

	cmd := &cobra.Command{
		Use:   "add-account",
		Short: "Add a new account to prefect-manager",
		Long: `Add a new account to prefect-manager.
Values not given as flags are prompted for until a non-empty answer is
entered. Adding an existing name replaces its token.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p := a.prompter(cmd.OutOrStdout())

			var err error
			if name == "" {
				if name, err = prompt.AskNonEmpty(p, "Name of Account", false, 0); err != nil {
					return err
				}
			}
			if token == "" {
				if token, err = prompt.AskNonEmpty(p, "Access Token", true, 0); err != nil {
					return err
				}
			}

			if err := a.mgr.AddAccount(name, token); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Account '%s' saved.\n", name)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "account name")
	cmd.Flags().StringVar(&token, "token", "", "Prefect Cloud access token")
	return cmd
}

func (a *app) listAccountsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list-accounts",
		Short: "List all the accounts tracked by prefect-manager",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			names, err := a.mgr.ListAccounts()
			if err != nil {
				return err
			}
			printList(cmd.OutOrStdout(), "Accounts", names)
			return nil
		},
	}
}

// prompter picks promptui on a terminal and a plain line reader otherwise.
func (a *app) prompter(out io.Writer) prompt.Prompter {
	if a.isTerminal() {
		return prompt.TerminalPrompter{}
	}
	return prompt.NewLinePrompter(a.in, out)
}
